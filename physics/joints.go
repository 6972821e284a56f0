package physics

import (
	"math"

	"github.com/akmonengine/armature/element"
)

// JointDofIndices returns the dof addresses spanned by the named joint,
// usable to index velocity and force vectors: six for a free joint,
// three for a ball, one for a hinge or slide.
func (s *Snapshot) JointDofIndices(name string) ([]int, error) {
	joint, err := s.Joint(name)
	if err != nil {
		return nil, err
	}
	return jointDofIndices(joint), nil
}

// JointDofIndicesByID is JointDofIndices for a joint registration index.
func (s *Snapshot) JointDofIndicesByID(id int) ([]int, error) {
	joint, err := s.JointByID(id)
	if err != nil {
		return nil, err
	}
	return jointDofIndices(joint), nil
}

func jointDofIndices(j JointState) []int {
	ids := make([]int, j.Type.Nv())
	for i := range ids {
		ids[i] = j.DofAdr + i
	}
	return ids
}

// IsPositionActuator reports whether the named actuator is a pure
// position servo: affine bias with gainprm (kp, 0, 0) and biasprm
// (0, -kp, 0).
// TODO: also recognize position servos with velocity feedback, biasprm
// (0, -kp, -kv).
func (s *Snapshot) IsPositionActuator(name string) (bool, error) {
	a, err := s.Actuator(name)
	if err != nil {
		return false, err
	}
	return a.BiasType == element.BiasAffine &&
		isClose(a.GainPrm[0], -a.BiasPrm[1]) &&
		a.GainPrm[1] == 0 && a.GainPrm[2] == 0 &&
		a.BiasPrm[0] == 0 && a.BiasPrm[2] == 0, nil
}

func isClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}

// CriticalDamping returns the damping value 2*sqrt(k*m) that critically
// damps the named joint, with the spring constant k collected from the
// joint stiffness and the gain of the driving position actuator and m
// the joint's reference dof inertia. actuatorName defaults to jointName
// when empty; jointSpring and actuatorSpring select which spring terms
// contribute. Requires the dof inertia to be installed.
func (s *Snapshot) CriticalDamping(jointName, actuatorName string, jointSpring, actuatorSpring bool) (float64, error) {
	if actuatorName == "" {
		actuatorName = jointName
	}

	joint, err := s.Joint(jointName)
	if err != nil {
		return 0, err
	}
	inertia, err := s.DofM0(joint.DofAdr)
	if err != nil {
		return 0, err
	}

	springConst := 0.0
	if jointSpring {
		springConst += joint.Stiffness
	}
	if actuatorSpring {
		actuator, err := s.Actuator(actuatorName)
		if err != nil {
			return 0, err
		}
		springConst += actuator.GainPrm[0]
	}

	return 2 * math.Sqrt(springConst*inertia), nil
}
