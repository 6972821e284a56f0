package main

import (
	"fmt"

	"github.com/akmonengine/armature"
	"github.com/akmonengine/armature/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// A planar walker: a floating torso with one actuated leg, standing on
// an infinite floor plane.
const characterYAML = `model: walker
worldbody:
  geoms:
    - name: floor
      type: plane
  bodies:
    - name: torso
      pos: [0, 0, 1.3]
      joints:
        - name: root
          type: free
      geoms:
        - name: trunk
          type: capsule
          size: [0.07, 0.3]
      sites:
        - name: imu
          pos: [0, 0, 0.2]
          size: 0.01
      bodies:
        - name: thigh
          pos: [0, 0, -0.35]
          joints:
            - name: hip
              type: hinge
              axis: [0, 1, 0]
              stiffness: 10
          geoms:
            - name: upper_leg
              type: cylinder
              size: [0.04, 0.2]
          bodies:
            - name: shin
              pos: [0, 0, -0.45]
              joints:
                - name: knee
                  type: hinge
                  axis: [0, 1, 0]
              geoms:
                - name: lower_leg
                  type: capsule
                  size: [0.03, 0.2]
actuators:
  - name: hip
    joint: hip
    kp: 40
  - name: knee
    joint: knee
    kp: 25
`

func main() {
	armature.ConfigureLogging(true)

	model, err := armature.ModelFromYAML([]byte(characterYAML))
	if err != nil {
		armature.Log.Fatalf("loading character: %v", err)
	}

	fmt.Println("=== Character tree ===")
	fmt.Print(model.TreeString(false))
	fmt.Println()

	model.Events.Subscribe(armature.BODY_REFRAMED, func(event armature.Event) {
		reframe := event.(armature.ReframeEvent)
		fmt.Printf("reframed %q, local pos was %v\n", reframe.Body.Name(), reframe.OldPos)
	})
	model.Events.Subscribe(armature.STATE_CAPTURED, func(event armature.Event) {
		capture := event.(armature.CaptureEvent)
		fmt.Printf("captured %d bodies, %d joints, nq=%d nv=%d\n",
			len(capture.Snapshot.Bodies()), len(capture.Snapshot.Joints()),
			capture.Snapshot.Nq(), capture.Snapshot.Nv())
	})

	// Move the thigh frame to its hip end; the shin and the leg geometry
	// keep their world placement.
	thigh := model.FindBody("thigh")
	newFrame := mgl64.Vec3{0, 0, -0.15}
	model.Reframe(thigh, &newFrame, nil)

	fmt.Println("=== Captured state ===")
	snapshot, err := model.Capture()
	if err != nil {
		armature.Log.Fatalf("capturing state: %v", err)
	}
	for _, body := range snapshot.Bodies() {
		fmt.Printf("%-8s world pos %v\n", body.Name, body.Pos)
	}
	fmt.Println()

	imu, err := snapshot.SitePosInBodyFrame("torso", nil, "imu")
	if err != nil {
		armature.Log.Fatalf("locating imu: %v", err)
	}
	fmt.Printf("imu in torso frame: %v\n", imu)

	for _, name := range []string{"root", "hip", "knee"} {
		ids, err := snapshot.JointDofIndices(name)
		if err != nil {
			armature.Log.Fatalf("resolving %s dofs: %v", name, err)
		}
		fmt.Printf("joint %-5s dof indices %v\n", name, ids)
	}

	servo, err := snapshot.IsPositionActuator("hip")
	if err != nil {
		armature.Log.Fatalf("inspecting hip actuator: %v", err)
	}
	fmt.Printf("hip actuator is a position servo: %v\n", servo)

	// Diagonal inertia as a simulator would report it at qpos0, one entry
	// per degree of freedom.
	dofM0 := []float64{11, 11, 11, 0.9, 0.9, 0.9, 0.35, 0.2}
	if err := snapshot.SetDofM0(dofM0); err != nil {
		armature.Log.Fatalf("setting dof inertia: %v", err)
	}
	damping, err := snapshot.CriticalDamping("hip", "hip", true, true)
	if err != nil {
		armature.Log.Fatalf("computing hip damping: %v", err)
	}
	fmt.Printf("critically damped hip: damping = %.3f\n", damping)

	if box, ok := physics.Extent(model.World); ok {
		fmt.Printf("character extent: min %v max %v\n", box.Min, box.Max)
	}
}
