package physics

import (
	"github.com/akmonengine/armature/element"
	"github.com/akmonengine/armature/quat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// SnapshotFromJSON builds a snapshot from a compiled-state dump. The dump
// carries "bodies", "sites", "joints" and "actuators" arrays plus an
// optional "dof_m0" array; world poses use the xpos/xquat field names of
// the source state, with quaternions ordered (w, x, y, z). Absent poses
// default to the identity. Joint qposadr/dofadr entries, when present,
// are checked against the addresses implied by the joint order.
func SnapshotFromJSON(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("state dump is not valid json")
	}
	dump := gjson.ParseBytes(data)
	s := NewSnapshot()

	for _, b := range dump.Get("bodies").Array() {
		name := b.Get("name").String()
		pos, err := dumpVec3(b.Get("xpos"))
		if err != nil {
			return nil, errors.Wrapf(err, "body %q xpos", name)
		}
		q, err := dumpQuat(b.Get("xquat"))
		if err != nil {
			return nil, errors.Wrapf(err, "body %q xquat", name)
		}
		if err := s.AddBody(BodyState{Name: name, Pos: pos, Quat: q}); err != nil {
			return nil, err
		}
	}

	for _, site := range dump.Get("sites").Array() {
		name := site.Get("name").String()
		pos, err := dumpVec3(site.Get("xpos"))
		if err != nil {
			return nil, errors.Wrapf(err, "site %q xpos", name)
		}
		q, err := dumpQuat(site.Get("xquat"))
		if err != nil {
			return nil, errors.Wrapf(err, "site %q xquat", name)
		}
		state := SiteState{
			Name: name,
			Body: site.Get("body").String(),
			Pos:  pos,
			Quat: q,
		}
		if err := s.AddSite(state); err != nil {
			return nil, err
		}
	}

	for _, j := range dump.Get("joints").Array() {
		name := j.Get("name").String()
		jointType, err := element.ParseJointType(j.Get("type").String())
		if err != nil {
			return nil, errors.Wrapf(err, "joint %q", name)
		}
		axis, err := dumpVec3(j.Get("axis"))
		if err != nil {
			return nil, errors.Wrapf(err, "joint %q axis", name)
		}
		state := JointState{
			Name:      name,
			Body:      j.Get("body").String(),
			Type:      jointType,
			Axis:      axis,
			Stiffness: j.Get("stiffness").Float(),
			Damping:   j.Get("damping").Float(),
		}

		qposAdr, dofAdr := s.Nq(), s.Nv()
		if err := s.AddJoint(state); err != nil {
			return nil, err
		}
		if adr := j.Get("qposadr"); adr.Exists() && int(adr.Int()) != qposAdr {
			return nil, errors.Errorf("joint %q declares qpos address %d, expected %d", name, adr.Int(), qposAdr)
		}
		if adr := j.Get("dofadr"); adr.Exists() && int(adr.Int()) != dofAdr {
			return nil, errors.Errorf("joint %q declares dof address %d, expected %d", name, adr.Int(), dofAdr)
		}
	}

	for _, a := range dump.Get("actuators").Array() {
		name := a.Get("name").String()
		biasType, err := element.ParseBiasType(a.Get("biastype").String())
		if err != nil {
			return nil, errors.Wrapf(err, "actuator %q", name)
		}
		gainPrm, err := dumpPrm(a.Get("gainprm"))
		if err != nil {
			return nil, errors.Wrapf(err, "actuator %q gainprm", name)
		}
		biasPrm, err := dumpPrm(a.Get("biasprm"))
		if err != nil {
			return nil, errors.Wrapf(err, "actuator %q biasprm", name)
		}
		state := ActuatorState{
			Name:     name,
			Joint:    a.Get("joint").String(),
			BiasType: biasType,
			GainPrm:  gainPrm,
			BiasPrm:  biasPrm,
		}
		if err := s.AddActuator(state); err != nil {
			return nil, err
		}
	}

	if m0 := dump.Get("dof_m0"); m0.Exists() {
		values := m0.Array()
		inertia := make([]float64, len(values))
		for i, v := range values {
			inertia[i] = v.Float()
		}
		if err := s.SetDofM0(inertia); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func dumpVec3(res gjson.Result) (mgl64.Vec3, error) {
	if !res.Exists() {
		return mgl64.Vec3{}, nil
	}
	values := res.Array()
	if len(values) != 3 {
		return mgl64.Vec3{}, errors.Errorf("want 3 components, got %d", len(values))
	}
	return mgl64.Vec3{values[0].Float(), values[1].Float(), values[2].Float()}, nil
}

func dumpQuat(res gjson.Result) (mgl64.Quat, error) {
	if !res.Exists() {
		return mgl64.QuatIdent(), nil
	}
	values := res.Array()
	if len(values) != 4 {
		return mgl64.Quat{}, errors.Errorf("want 4 components, got %d", len(values))
	}
	wxyz := [4]float64{values[0].Float(), values[1].Float(), values[2].Float(), values[3].Float()}
	return quat.FromWXYZ(wxyz), nil
}

// dumpPrm reads an actuator parameter vector. Source dumps pad the
// vectors past three entries; the padding must be zero.
func dumpPrm(res gjson.Result) ([3]float64, error) {
	var prm [3]float64
	if !res.Exists() {
		return prm, nil
	}
	for i, v := range res.Array() {
		if i < 3 {
			prm[i] = v.Float()
		} else if v.Float() != 0 {
			return prm, errors.Errorf("non-zero entry %v past the first three components", v.Float())
		}
	}
	return prm, nil
}
