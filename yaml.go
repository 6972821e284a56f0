package armature

import (
	"strconv"

	"github.com/akmonengine/armature/element"
	"github.com/akmonengine/armature/quat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// floats is a numeric sequence rendered in flow style: [1, 0, 0]
type floats []float64

var _ yaml.Marshaler = floats(nil)

func (f floats) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range f {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(v, 'g', -1, 64),
		})
	}
	return node, nil
}

type modelDesc struct {
	Model     string         `yaml:"model"`
	Worldbody childrenDesc   `yaml:"worldbody"`
	Actuators []actuatorDesc `yaml:"actuators,omitempty"`
}

// childrenDesc groups a body's attachments by kind; the interleaved
// attachment order is not preserved, only the order within each kind.
type childrenDesc struct {
	Joints   []jointDesc   `yaml:"joints,omitempty"`
	Geoms    []geomDesc    `yaml:"geoms,omitempty"`
	Sites    []siteDesc    `yaml:"sites,omitempty"`
	Cameras  []cameraDesc  `yaml:"cameras,omitempty"`
	Lights   []lightDesc   `yaml:"lights,omitempty"`
	Inertial *inertialDesc `yaml:"inertial,omitempty"`
	Bodies   []bodyDesc    `yaml:"bodies,omitempty"`
}

type bodyDesc struct {
	Name string `yaml:"name"`
	Pos  floats `yaml:"pos,omitempty"`
	Quat floats `yaml:"quat,omitempty"`

	childrenDesc `yaml:",inline"`
}

type jointDesc struct {
	Name      string  `yaml:"name"`
	Type      string  `yaml:"type"`
	Pos       floats  `yaml:"pos,omitempty"`
	Axis      floats  `yaml:"axis,omitempty"`
	Stiffness float64 `yaml:"stiffness,omitempty"`
	Damping   float64 `yaml:"damping,omitempty"`
}

type geomDesc struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Size    floats   `yaml:"size,omitempty"`
	Pos     floats   `yaml:"pos,omitempty"`
	Quat    floats   `yaml:"quat,omitempty"`
	Density float64  `yaml:"density,omitempty"`
	Mass    *float64 `yaml:"mass,omitempty"`
}

type siteDesc struct {
	Name string  `yaml:"name"`
	Pos  floats  `yaml:"pos,omitempty"`
	Quat floats  `yaml:"quat,omitempty"`
	Size float64 `yaml:"size,omitempty"`
}

type cameraDesc struct {
	Name string  `yaml:"name"`
	Pos  floats  `yaml:"pos,omitempty"`
	Quat floats  `yaml:"quat,omitempty"`
	Fovy float64 `yaml:"fovy,omitempty"`
}

type lightDesc struct {
	Name string `yaml:"name"`
	Pos  floats `yaml:"pos,omitempty"`
	Dir  floats `yaml:"dir,omitempty"`
}

type inertialDesc struct {
	Mass        float64 `yaml:"mass"`
	Pos         floats  `yaml:"pos,omitempty"`
	Quat        floats  `yaml:"quat,omitempty"`
	DiagInertia floats  `yaml:"diaginertia,omitempty"`
}

type actuatorDesc struct {
	Name     string   `yaml:"name"`
	Joint    string   `yaml:"joint"`
	Kp       *float64 `yaml:"kp,omitempty"`
	BiasType string   `yaml:"biastype,omitempty"`
	GainPrm  floats   `yaml:"gainprm,omitempty"`
	BiasPrm  floats   `yaml:"biasprm,omitempty"`
}

// ModelFromYAML builds a model from a YAML description: a "model" name,
// a "worldbody" block with nested bodies and their attachments, and an
// "actuators" list. Absent poses default to the identity; "kp" declares
// a position servo on the named joint.
func ModelFromYAML(data []byte) (*Model, error) {
	var desc modelDesc
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, errors.Wrap(err, "decode model description")
	}

	m := NewModel(desc.Model)
	if err := buildChildren(m.World, desc.Worldbody); err != nil {
		return nil, err
	}
	for _, a := range desc.Actuators {
		actuator, err := actuatorFromDesc(a)
		if err != nil {
			return nil, err
		}
		if err := m.AddActuator(actuator); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ToYAML renders the model as a YAML description that ModelFromYAML
// accepts back.
func (m *Model) ToYAML() ([]byte, error) {
	children, err := childrenToDesc(m.World)
	if err != nil {
		return nil, err
	}
	desc := modelDesc{Model: m.Name, Worldbody: children}
	for _, a := range m.Actuators {
		desc.Actuators = append(desc.Actuators, actuatorToDesc(a))
	}
	return yaml.Marshal(&desc)
}

func buildChildren(parent *element.Body, desc childrenDesc) error {
	for _, d := range desc.Joints {
		joint, err := jointFromDesc(d)
		if err != nil {
			return err
		}
		if err := parent.Append(joint); err != nil {
			return err
		}
	}
	for _, d := range desc.Geoms {
		geom, err := geomFromDesc(d)
		if err != nil {
			return err
		}
		if err := parent.Append(geom); err != nil {
			return err
		}
	}
	for _, d := range desc.Sites {
		site := element.NewSite(d.Name)
		site.Size = d.Size
		if err := applyPose(site, site, d.Pos, d.Quat, "site", d.Name); err != nil {
			return err
		}
		if err := parent.Append(site); err != nil {
			return err
		}
	}
	for _, d := range desc.Cameras {
		camera := element.NewCamera(d.Name)
		if d.Fovy != 0 {
			camera.Fovy = d.Fovy
		}
		if err := applyPose(camera, camera, d.Pos, d.Quat, "camera", d.Name); err != nil {
			return err
		}
		if err := parent.Append(camera); err != nil {
			return err
		}
	}
	for _, d := range desc.Lights {
		light := element.NewLight(d.Name)
		if err := applyPose(light, nil, d.Pos, nil, "light", d.Name); err != nil {
			return err
		}
		if d.Dir != nil {
			dir, err := descVec3(d.Dir, "light", d.Name, "dir")
			if err != nil {
				return err
			}
			light.Dir = *dir
		}
		if err := parent.Append(light); err != nil {
			return err
		}
	}
	if d := desc.Inertial; d != nil {
		inertial := element.NewInertial(d.Mass)
		if err := applyPose(inertial, inertial, d.Pos, d.Quat, "inertial", ""); err != nil {
			return err
		}
		if d.DiagInertia != nil {
			diag, err := descVec3(d.DiagInertia, "inertial", "", "diaginertia")
			if err != nil {
				return err
			}
			inertial.DiagInertia = *diag
		}
		if err := parent.Append(inertial); err != nil {
			return err
		}
	}
	for _, d := range desc.Bodies {
		if d.Name == "" {
			return errors.Errorf("body under %q has no name", parent.Name())
		}
		body := element.NewBody(d.Name)
		if err := applyPose(body, body, d.Pos, d.Quat, "body", d.Name); err != nil {
			return err
		}
		if err := parent.Append(body); err != nil {
			return err
		}
		if err := buildChildren(body, d.childrenDesc); err != nil {
			return err
		}
	}
	return nil
}

func jointFromDesc(d jointDesc) (element.Node, error) {
	if d.Name == "" {
		return nil, errors.New("joint without a name")
	}
	jointType, err := element.ParseJointType(d.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "joint %q", d.Name)
	}

	if jointType == element.JointFree {
		if d.Pos != nil || d.Axis != nil || d.Stiffness != 0 || d.Damping != 0 {
			return nil, errors.Errorf("free joint %q takes no pose or spring parameters", d.Name)
		}
		return element.NewFreejoint(d.Name), nil
	}

	joint := element.NewJoint(d.Name, jointType)
	if d.Pos != nil {
		pos, err := descVec3(d.Pos, "joint", d.Name, "pos")
		if err != nil {
			return nil, err
		}
		joint.SetPos(*pos)
	}
	if d.Axis != nil {
		axis, err := descVec3(d.Axis, "joint", d.Name, "axis")
		if err != nil {
			return nil, err
		}
		joint.Axis = *axis
	}
	joint.Stiffness = d.Stiffness
	joint.Damping = d.Damping
	return joint, nil
}

func geomFromDesc(d geomDesc) (*element.Geom, error) {
	shape, err := shapeFromDesc(d.Type, d.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "geom %q", d.Name)
	}

	geom := element.NewGeom(d.Name, shape)
	if err := applyPose(geom, geom, d.Pos, d.Quat, "geom", d.Name); err != nil {
		return nil, err
	}
	if d.Density != 0 {
		geom.Density = d.Density
	}
	if d.Mass != nil {
		geom.SetMass(*d.Mass)
	}
	return geom, nil
}

func actuatorFromDesc(d actuatorDesc) (*element.Actuator, error) {
	if d.Name == "" {
		return nil, errors.New("actuator without a name")
	}
	if d.Joint == "" {
		return nil, errors.Errorf("actuator %q names no joint", d.Name)
	}

	if d.Kp != nil {
		if d.BiasType != "" || d.GainPrm != nil || d.BiasPrm != nil {
			return nil, errors.Errorf("actuator %q mixes kp with explicit parameters", d.Name)
		}
		return element.NewPositionActuator(d.Name, d.Joint, *d.Kp), nil
	}

	biasType, err := element.ParseBiasType(d.BiasType)
	if err != nil {
		return nil, errors.Wrapf(err, "actuator %q", d.Name)
	}
	gainPrm, err := descPrm(d.GainPrm, d.Name, "gainprm")
	if err != nil {
		return nil, err
	}
	biasPrm, err := descPrm(d.BiasPrm, d.Name, "biasprm")
	if err != nil {
		return nil, err
	}
	return &element.Actuator{
		Name:     d.Name,
		Joint:    d.Joint,
		BiasType: biasType,
		GainPrm:  gainPrm,
		BiasPrm:  biasPrm,
	}, nil
}

func childrenToDesc(body *element.Body) (childrenDesc, error) {
	var desc childrenDesc
	for _, c := range body.Children() {
		switch child := c.(type) {
		case *element.Joint:
			desc.Joints = append(desc.Joints, jointToDesc(child))
		case *element.Freejoint:
			desc.Joints = append(desc.Joints, jointDesc{Name: child.Name(), Type: "free"})
		case *element.Geom:
			d, err := geomToDesc(child)
			if err != nil {
				return childrenDesc{}, err
			}
			desc.Geoms = append(desc.Geoms, d)
		case *element.Site:
			desc.Sites = append(desc.Sites, siteDesc{
				Name: child.Name(),
				Pos:  poseVec(child),
				Quat: poseQuat(child),
				Size: child.Size,
			})
		case *element.Camera:
			d := cameraDesc{Name: child.Name(), Pos: poseVec(child), Quat: poseQuat(child)}
			if child.Fovy != 45 {
				d.Fovy = child.Fovy
			}
			desc.Cameras = append(desc.Cameras, d)
		case *element.Light:
			d := lightDesc{Name: child.Name()}
			if child.HasPos() {
				pos := child.Pos()
				d.Pos = floats{pos.X(), pos.Y(), pos.Z()}
			}
			if child.Dir != (mgl64.Vec3{0, 0, -1}) {
				d.Dir = floats{child.Dir.X(), child.Dir.Y(), child.Dir.Z()}
			}
			desc.Lights = append(desc.Lights, d)
		case *element.Inertial:
			d := inertialDesc{Mass: child.Mass, Pos: poseVec(child), Quat: poseQuat(child)}
			if child.DiagInertia != (mgl64.Vec3{}) {
				diag := child.DiagInertia
				d.DiagInertia = floats{diag.X(), diag.Y(), diag.Z()}
			}
			desc.Inertial = &d
		case *element.Body:
			d := bodyDesc{Name: child.Name(), Pos: poseVec(child), Quat: poseQuat(child)}
			children, err := childrenToDesc(child)
			if err != nil {
				return childrenDesc{}, err
			}
			d.childrenDesc = children
			desc.Bodies = append(desc.Bodies, d)
		}
	}
	return desc, nil
}

func jointToDesc(j *element.Joint) jointDesc {
	d := jointDesc{
		Name:      j.Name(),
		Type:      j.Type.String(),
		Stiffness: j.Stiffness,
		Damping:   j.Damping,
	}
	if j.HasPos() {
		pos := j.Pos()
		d.Pos = floats{pos.X(), pos.Y(), pos.Z()}
	}
	if j.Axis != (mgl64.Vec3{0, 0, 1}) {
		d.Axis = floats{j.Axis.X(), j.Axis.Y(), j.Axis.Z()}
	}
	return d
}

func geomToDesc(g *element.Geom) (geomDesc, error) {
	geomType, size, err := shapeToDesc(g.Shape)
	if err != nil {
		return geomDesc{}, errors.Wrapf(err, "geom %q", g.Name())
	}

	d := geomDesc{
		Name: g.Name(),
		Type: geomType,
		Size: size,
		Pos:  poseVec(g),
		Quat: poseQuat(g),
	}
	if g.Density != element.DefaultDensity {
		d.Density = g.Density
	}
	if g.HasMass() {
		mass := g.Mass()
		d.Mass = &mass
	}
	return d, nil
}

func actuatorToDesc(a *element.Actuator) actuatorDesc {
	d := actuatorDesc{Name: a.Name, Joint: a.Joint}

	kp := a.GainPrm[0]
	if a.BiasType == element.BiasAffine &&
		a.GainPrm == [3]float64{kp, 0, 0} &&
		a.BiasPrm == [3]float64{0, -kp, 0} {
		d.Kp = &kp
		return d
	}

	if a.BiasType != element.BiasNone {
		d.BiasType = a.BiasType.String()
	}
	if a.GainPrm != ([3]float64{}) {
		d.GainPrm = floats{a.GainPrm[0], a.GainPrm[1], a.GainPrm[2]}
	}
	if a.BiasPrm != ([3]float64{}) {
		d.BiasPrm = floats{a.BiasPrm[0], a.BiasPrm[1], a.BiasPrm[2]}
	}
	return d
}

func shapeFromDesc(geomType string, size floats) (element.Shape, error) {
	switch geomType {
	case "sphere":
		if len(size) != 1 {
			return nil, errors.Errorf("sphere size wants 1 value, got %d", len(size))
		}
		return element.Sphere{Radius: size[0]}, nil
	case "capsule":
		if len(size) != 2 {
			return nil, errors.Errorf("capsule size wants 2 values, got %d", len(size))
		}
		return element.Capsule{Radius: size[0], HalfLength: size[1]}, nil
	case "cylinder":
		if len(size) != 2 {
			return nil, errors.Errorf("cylinder size wants 2 values, got %d", len(size))
		}
		return element.Cylinder{Radius: size[0], HalfLength: size[1]}, nil
	case "box":
		if len(size) != 3 {
			return nil, errors.Errorf("box size wants 3 values, got %d", len(size))
		}
		return element.Box{HalfExtents: mgl64.Vec3{size[0], size[1], size[2]}}, nil
	case "plane":
		if len(size) != 0 {
			return nil, errors.Errorf("plane takes no size values, got %d", len(size))
		}
		return element.Plane{}, nil
	}
	return nil, errors.Errorf("unknown geom type %q", geomType)
}

func shapeToDesc(s element.Shape) (string, floats, error) {
	switch shape := s.(type) {
	case element.Sphere:
		return "sphere", floats{shape.Radius}, nil
	case element.Capsule:
		return "capsule", floats{shape.Radius, shape.HalfLength}, nil
	case element.Cylinder:
		return "cylinder", floats{shape.Radius, shape.HalfLength}, nil
	case element.Box:
		return "box", floats{shape.HalfExtents.X(), shape.HalfExtents.Y(), shape.HalfExtents.Z()}, nil
	case element.Plane:
		return "plane", nil, nil
	}
	return "", nil, errors.Errorf("unsupported shape %T", s)
}

func applyPose(p element.Positioned, o element.Oriented, pos, quatValues floats, kind, name string) error {
	if pos != nil {
		v, err := descVec3(pos, kind, name, "pos")
		if err != nil {
			return err
		}
		p.SetPos(*v)
	}
	if quatValues != nil {
		q, err := descQuat(quatValues, kind, name)
		if err != nil {
			return err
		}
		o.SetQuat(*q)
	}
	return nil
}

func descVec3(values floats, kind, name, field string) (*mgl64.Vec3, error) {
	if len(values) != 3 {
		return nil, errors.Errorf("%s %q %s wants 3 components, got %d", kind, name, field, len(values))
	}
	v := mgl64.Vec3{values[0], values[1], values[2]}
	return &v, nil
}

func descQuat(values floats, kind, name string) (*mgl64.Quat, error) {
	if len(values) != 4 {
		return nil, errors.Errorf("%s %q quat wants 4 components, got %d", kind, name, len(values))
	}
	q := quat.FromWXYZ([4]float64{values[0], values[1], values[2], values[3]})
	return &q, nil
}

func descPrm(values floats, name, field string) ([3]float64, error) {
	var prm [3]float64
	if len(values) > 3 {
		return prm, errors.Errorf("actuator %q %s wants at most 3 values, got %d", name, field, len(values))
	}
	copy(prm[:], values)
	return prm, nil
}

func poseVec(p element.Positioned) floats {
	if !p.HasPos() {
		return nil
	}
	pos := p.Pos()
	return floats{pos.X(), pos.Y(), pos.Z()}
}

func poseQuat(o element.Oriented) floats {
	if !o.HasQuat() {
		return nil
	}
	wxyz := quat.WXYZ(o.Quat())
	return floats{wxyz[0], wxyz[1], wxyz[2], wxyz[3]}
}
