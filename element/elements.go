package element

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Site is a massless marker attached to a body, typically a sensor or
// attachment frame.
type Site struct {
	node
	Pose

	Size float64
}

func NewSite(name string) *Site {
	return &Site{node: node{name: name}}
}

func (s *Site) Kind() Kind {
	return KindSite
}

// JointType represents the degrees of freedom a joint grants.
type JointType int

const (
	JointFree JointType = iota
	JointBall
	JointHinge
	JointSlide
)

func (t JointType) String() string {
	switch t {
	case JointFree:
		return "free"
	case JointBall:
		return "ball"
	case JointHinge:
		return "hinge"
	case JointSlide:
		return "slide"
	}
	return "unknown"
}

// ParseJointType converts a joint type name to its JointType.
func ParseJointType(s string) (JointType, error) {
	switch s {
	case "free":
		return JointFree, nil
	case "ball":
		return JointBall, nil
	case "hinge":
		return JointHinge, nil
	case "slide":
		return JointSlide, nil
	}
	return 0, errors.Errorf("unknown joint type %q", s)
}

// Nq returns the number of generalized coordinates of the joint type.
func (t JointType) Nq() int {
	switch t {
	case JointFree:
		return 7
	case JointBall:
		return 4
	}
	return 1
}

// Nv returns the number of degrees of freedom of the joint type.
func (t JointType) Nv() int {
	switch t {
	case JointFree:
		return 6
	case JointBall:
		return 3
	}
	return 1
}

// Joint connects its body to the body's parent. The optional position is
// the joint anchor in the body frame; joints carry an axis but no
// orientation of their own.
type Joint struct {
	node

	pos       *mgl64.Vec3
	Type      JointType
	Axis      mgl64.Vec3
	Stiffness float64
	Damping   float64
}

func NewJoint(name string, jointType JointType) *Joint {
	return &Joint{node: node{name: name}, Type: jointType, Axis: mgl64.Vec3{0, 0, 1}}
}

func (j *Joint) Kind() Kind {
	return KindJoint
}

// Pos returns the joint anchor in the body frame, the zero vector when
// unset.
func (j *Joint) Pos() mgl64.Vec3 {
	if j.pos == nil {
		return mgl64.Vec3{}
	}
	return *j.pos
}

func (j *Joint) SetPos(pos mgl64.Vec3) {
	j.pos = &pos
}

func (j *Joint) HasPos() bool {
	return j.pos != nil
}

// Freejoint grants its body all six degrees of freedom. It carries no
// position or orientation of its own.
type Freejoint struct {
	node
}

func NewFreejoint(name string) *Freejoint {
	return &Freejoint{node: node{name: name}}
}

func (f *Freejoint) Kind() Kind {
	return KindFreejoint
}

// DefaultDensity is the geom density assumed when none is given, in kg/m³.
const DefaultDensity = 1000.0

// Geom attaches geometry to a body. Its mass follows from the shape volume
// and density unless overridden with SetMass.
type Geom struct {
	node
	Pose

	Shape   Shape
	Density float64
	mass    *float64
}

func NewGeom(name string, shape Shape) *Geom {
	return &Geom{node: node{name: name}, Shape: shape, Density: DefaultDensity}
}

func (g *Geom) Kind() Kind {
	return KindGeom
}

// Mass returns the geom mass: the explicit override when set, otherwise
// density times shape volume.
func (g *Geom) Mass() float64 {
	if g.mass != nil {
		return *g.mass
	}
	return g.Shape.ComputeMass(g.Density)
}

// SetMass overrides the density-derived mass.
func (g *Geom) SetMass(mass float64) {
	g.mass = &mass
}

// HasMass reports whether an explicit mass override is set.
func (g *Geom) HasMass() bool {
	return g.mass != nil
}

// Camera is a viewpoint attached to a body.
type Camera struct {
	node
	Pose

	Fovy float64
}

func NewCamera(name string) *Camera {
	return &Camera{node: node{name: name}, Fovy: 45}
}

func (c *Camera) Kind() Kind {
	return KindCamera
}

// Light is a light source attached to a body. Lights carry a position and
// a direction but no orientation.
type Light struct {
	node

	pos *mgl64.Vec3
	Dir mgl64.Vec3
}

func NewLight(name string) *Light {
	return &Light{node: node{name: name}, Dir: mgl64.Vec3{0, 0, -1}}
}

func (l *Light) Kind() Kind {
	return KindLight
}

func (l *Light) Pos() mgl64.Vec3 {
	if l.pos == nil {
		return mgl64.Vec3{}
	}
	return *l.pos
}

func (l *Light) SetPos(pos mgl64.Vec3) {
	l.pos = &pos
}

func (l *Light) HasPos() bool {
	return l.pos != nil
}

// Inertial overrides its body's mass distribution: a mass and diagonal
// inertia located by the inertial pose. Inertials are unnamed.
type Inertial struct {
	node
	Pose

	Mass        float64
	DiagInertia mgl64.Vec3
}

func NewInertial(mass float64) *Inertial {
	return &Inertial{Mass: mass}
}

func (i *Inertial) Kind() Kind {
	return KindInertial
}

// BiasType selects the actuator force law.
type BiasType int

const (
	BiasNone BiasType = iota
	BiasAffine
)

func (t BiasType) String() string {
	switch t {
	case BiasNone:
		return "none"
	case BiasAffine:
		return "affine"
	}
	return "unknown"
}

// ParseBiasType converts a bias type name to its BiasType.
func ParseBiasType(s string) (BiasType, error) {
	switch s {
	case "", "none":
		return BiasNone, nil
	case "affine":
		return BiasAffine, nil
	}
	return 0, errors.Errorf("unknown bias type %q", s)
}

// Actuator acts on a named joint. Force is gain*ctrl + bias, with gain
// GainPrm[0] and, for the affine bias type, bias BiasPrm[0] +
// BiasPrm[1]*length + BiasPrm[2]*velocity. Actuators are not tree nodes.
type Actuator struct {
	Name     string
	Joint    string
	BiasType BiasType
	GainPrm  [3]float64
	BiasPrm  [3]float64
}

// NewPositionActuator builds a position servo on the given joint: affine
// bias with gain kp and bias -kp*length.
func NewPositionActuator(name, joint string, kp float64) *Actuator {
	return &Actuator{
		Name:     name,
		Joint:    joint,
		BiasType: BiasAffine,
		GainPrm:  [3]float64{kp, 0, 0},
		BiasPrm:  [3]float64{0, -kp, 0},
	}
}
