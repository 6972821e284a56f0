// Package physics exposes compiled-state queries over a kinematic tree:
// world poses captured per body, joint and actuator addressing, frame
// transforms and damping calculations. A Snapshot is the bridge between
// the editable tree and anything that consumes absolute coordinates.
package physics

import (
	"github.com/akmonengine/armature/element"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// BodyState is the captured world pose of one body.
type BodyState struct {
	Name string
	Pos  mgl64.Vec3
	Quat mgl64.Quat
}

// SiteState is the captured world pose of one site, with the body it is
// attached to.
type SiteState struct {
	Name string
	Body string
	Pos  mgl64.Vec3
	Quat mgl64.Quat
}

// JointState is the captured definition of one joint. QposAdr and DofAdr
// are the joint's first indices into the position and velocity vectors;
// they are assigned by the snapshot in registration order.
type JointState struct {
	Name      string
	Body      string
	Type      element.JointType
	Axis      mgl64.Vec3
	QposAdr   int
	DofAdr    int
	Stiffness float64
	Damping   float64
}

// ActuatorState is the captured definition of one actuator.
type ActuatorState struct {
	Name     string
	Joint    string
	BiasType element.BiasType
	GainPrm  [3]float64
	BiasPrm  [3]float64
}

// Snapshot is an immutable record of a tree at capture time. Later edits
// to the tree do not show up in a snapshot; capture again to refresh it.
type Snapshot struct {
	bodies    []BodyState
	sites     []SiteState
	joints    []JointState
	actuators []ActuatorState

	// Diagonal of the mass matrix in the reference configuration, one
	// entry per degree of freedom. Supplied externally, never derived.
	dofM0 []float64

	nq int
	nv int

	bodyIndex     map[string]int
	siteIndex     map[string]int
	jointIndex    map[string]int
	actuatorIndex map[string]int
}

// NewSnapshot returns an empty snapshot ready for registration.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		bodyIndex:     map[string]int{},
		siteIndex:     map[string]int{},
		jointIndex:    map[string]int{},
		actuatorIndex: map[string]int{},
	}
}

// AddBody registers a body pose. Body names must be unique.
func (s *Snapshot) AddBody(b BodyState) error {
	if b.Name == "" {
		return errors.New("cannot record an unnamed body")
	}
	if _, ok := s.bodyIndex[b.Name]; ok {
		return errors.Errorf("body %q is already recorded", b.Name)
	}
	s.bodyIndex[b.Name] = len(s.bodies)
	s.bodies = append(s.bodies, b)
	return nil
}

// AddSite registers a site pose. The owning body, when named, must
// already be recorded.
func (s *Snapshot) AddSite(site SiteState) error {
	if site.Name == "" {
		return errors.New("cannot record an unnamed site")
	}
	if _, ok := s.siteIndex[site.Name]; ok {
		return errors.Errorf("site %q is already recorded", site.Name)
	}
	if site.Body != "" {
		if _, ok := s.bodyIndex[site.Body]; !ok {
			return errors.Errorf("site %q references unknown body %q", site.Name, site.Body)
		}
	}
	s.siteIndex[site.Name] = len(s.sites)
	s.sites = append(s.sites, site)
	return nil
}

// AddJoint registers a joint and assigns its position and dof addresses
// from the running totals. Any addresses set on the argument are ignored.
func (s *Snapshot) AddJoint(j JointState) error {
	if j.Name == "" {
		return errors.New("cannot record an unnamed joint")
	}
	if _, ok := s.jointIndex[j.Name]; ok {
		return errors.Errorf("joint %q is already recorded", j.Name)
	}
	if j.Body != "" {
		if _, ok := s.bodyIndex[j.Body]; !ok {
			return errors.Errorf("joint %q references unknown body %q", j.Name, j.Body)
		}
	}

	j.QposAdr = s.nq
	j.DofAdr = s.nv
	s.nq += j.Type.Nq()
	s.nv += j.Type.Nv()

	s.jointIndex[j.Name] = len(s.joints)
	s.joints = append(s.joints, j)
	return nil
}

// AddActuator registers an actuator acting on an already recorded joint.
func (s *Snapshot) AddActuator(a ActuatorState) error {
	if a.Name == "" {
		return errors.New("cannot record an unnamed actuator")
	}
	if _, ok := s.actuatorIndex[a.Name]; ok {
		return errors.Errorf("actuator %q is already recorded", a.Name)
	}
	if _, ok := s.jointIndex[a.Joint]; !ok {
		return errors.Errorf("actuator %q references unknown joint %q", a.Name, a.Joint)
	}
	s.actuatorIndex[a.Name] = len(s.actuators)
	s.actuators = append(s.actuators, a)
	return nil
}

// Body returns the recorded world pose of the named body.
func (s *Snapshot) Body(name string) (BodyState, error) {
	i, ok := s.bodyIndex[name]
	if !ok {
		return BodyState{}, errors.Errorf("unknown body %q", name)
	}
	return s.bodies[i], nil
}

// Site returns the recorded world pose of the named site.
func (s *Snapshot) Site(name string) (SiteState, error) {
	i, ok := s.siteIndex[name]
	if !ok {
		return SiteState{}, errors.Errorf("unknown site %q", name)
	}
	return s.sites[i], nil
}

// Joint returns the named joint record.
func (s *Snapshot) Joint(name string) (JointState, error) {
	i, ok := s.jointIndex[name]
	if !ok {
		return JointState{}, errors.Errorf("unknown joint %q", name)
	}
	return s.joints[i], nil
}

// JointByID returns the joint record at the given registration index.
func (s *Snapshot) JointByID(id int) (JointState, error) {
	if id < 0 || id >= len(s.joints) {
		return JointState{}, errors.Errorf("joint id %d out of range, snapshot has %d joints", id, len(s.joints))
	}
	return s.joints[id], nil
}

// Actuator returns the named actuator record.
func (s *Snapshot) Actuator(name string) (ActuatorState, error) {
	i, ok := s.actuatorIndex[name]
	if !ok {
		return ActuatorState{}, errors.Errorf("unknown actuator %q", name)
	}
	return s.actuators[i], nil
}

// Bodies returns the body records in registration order.
func (s *Snapshot) Bodies() []BodyState {
	return s.bodies
}

// Sites returns the site records in registration order.
func (s *Snapshot) Sites() []SiteState {
	return s.sites
}

// Joints returns the joint records in registration order.
func (s *Snapshot) Joints() []JointState {
	return s.joints
}

// Actuators returns the actuator records in registration order.
func (s *Snapshot) Actuators() []ActuatorState {
	return s.actuators
}

// Nq returns the total number of generalized coordinates.
func (s *Snapshot) Nq() int {
	return s.nq
}

// Nv returns the total number of degrees of freedom.
func (s *Snapshot) Nv() int {
	return s.nv
}

// SetDofM0 installs the per-dof reference inertia, one value per degree
// of freedom.
func (s *Snapshot) SetDofM0(m0 []float64) error {
	if len(m0) != s.nv {
		return errors.Errorf("dof inertia has %d entries, snapshot has %d degrees of freedom", len(m0), s.nv)
	}
	s.dofM0 = append([]float64(nil), m0...)
	return nil
}

// DofM0 returns the reference inertia of the given degree of freedom.
func (s *Snapshot) DofM0(dofAdr int) (float64, error) {
	if s.dofM0 == nil {
		return 0, errors.New("snapshot carries no dof inertia")
	}
	if dofAdr < 0 || dofAdr >= len(s.dofM0) {
		return 0, errors.Errorf("dof address %d out of range, snapshot has %d degrees of freedom", dofAdr, len(s.dofM0))
	}
	return s.dofM0[dofAdr], nil
}
