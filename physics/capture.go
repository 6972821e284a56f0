package physics

import (
	"github.com/akmonengine/armature/element"
	"github.com/akmonengine/armature/quat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

type bodyPose struct {
	body *element.Body
	pos  mgl64.Vec3
	quat mgl64.Quat
}

// CaptureState computes the world pose of every body in the tree and
// records the bodies, their sites and joints, and the given actuators
// into a fresh snapshot. Bodies are recorded in depth-first order, which
// fixes the joint addressing. The per-dof inertia is not captured; install
// it with SetDofM0 when a calculation needs it.
func CaptureState(world *element.Body, actuators []*element.Actuator, workers int) (*Snapshot, error) {
	if world.Kind() != element.KindWorldbody {
		return nil, errors.Errorf("state capture starts at a world body, got %s %q", world.Kind(), world.Name())
	}
	workers = max(1, workers)

	bodies := append([]*element.Body{world}, world.Descendants()...)
	poses := make([]*bodyPose, len(bodies))
	for i, b := range bodies {
		poses[i] = &bodyPose{body: b}
	}

	// Each world pose depends only on its own ancestor chain
	task(workers, poses, func(p *bodyPose) {
		p.pos = p.body.WorldPos()
		p.quat = p.body.WorldQuat()
	})

	snapshot := NewSnapshot()
	for _, p := range poses {
		if err := snapshot.AddBody(BodyState{Name: p.body.Name(), Pos: p.pos, Quat: p.quat}); err != nil {
			return nil, err
		}
	}
	for _, p := range poses {
		if err := captureAttachments(snapshot, p); err != nil {
			return nil, err
		}
	}
	for _, a := range actuators {
		state := ActuatorState{
			Name:     a.Name,
			Joint:    a.Joint,
			BiasType: a.BiasType,
			GainPrm:  a.GainPrm,
			BiasPrm:  a.BiasPrm,
		}
		if err := snapshot.AddActuator(state); err != nil {
			return nil, err
		}
	}

	return snapshot, nil
}

func captureAttachments(s *Snapshot, p *bodyPose) error {
	for _, c := range p.body.Children() {
		switch child := c.(type) {
		case *element.Site:
			state := SiteState{
				Name: child.Name(),
				Body: p.body.Name(),
				Pos:  p.pos.Add(quat.RotateVec(child.Pos(), p.quat)),
				Quat: quat.Mul(p.quat, child.Quat()),
			}
			if err := s.AddSite(state); err != nil {
				return err
			}
		case *element.Joint:
			state := JointState{
				Name:      child.Name(),
				Body:      p.body.Name(),
				Type:      child.Type,
				Axis:      child.Axis,
				Stiffness: child.Stiffness,
				Damping:   child.Damping,
			}
			if err := s.AddJoint(state); err != nil {
				return err
			}
		case *element.Freejoint:
			state := JointState{
				Name: child.Name(),
				Body: p.body.Name(),
				Type: element.JointFree,
			}
			if err := s.AddJoint(state); err != nil {
				return err
			}
		}
	}
	return nil
}

// Extent returns the world axis-aligned bounds over every geom below the
// given body, reporting false when there is none. Infinite plane geoms
// are excluded.
func Extent(root *element.Body) (element.AABB, bool) {
	bodies := append([]*element.Body{root}, root.Descendants()...)

	var bounds element.AABB
	found := false
	for _, b := range bodies {
		bodyPos := b.WorldPos()
		bodyQuat := b.WorldQuat()
		for _, c := range b.Children() {
			geom, ok := c.(*element.Geom)
			if !ok {
				continue
			}
			if _, infinite := geom.Shape.(element.Plane); infinite {
				continue
			}

			pos := bodyPos.Add(quat.RotateVec(geom.Pos(), bodyQuat))
			aabb := geom.Shape.ComputeAABB(pos, quat.Mul(bodyQuat, geom.Quat()))
			if !found {
				bounds, found = aabb, true
			} else {
				bounds = bounds.Union(aabb)
			}
		}
	}
	return bounds, found
}
