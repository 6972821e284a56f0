package element

import "github.com/go-gl/mathgl/mgl64"

// Pose is an optional local position and orientation relative to the parent
// frame. Either component may be unset, which denotes the identity value:
// the zero vector or the identity quaternion. The accessors resolve that
// default in one place; HasPos and HasQuat report whether a value was
// explicitly set.
type Pose struct {
	pos  *mgl64.Vec3
	quat *mgl64.Quat
}

// Pos returns the local position, the zero vector when unset.
func (p *Pose) Pos() mgl64.Vec3 {
	if p.pos == nil {
		return mgl64.Vec3{}
	}
	return *p.pos
}

// Quat returns the local orientation, the identity quaternion when unset.
func (p *Pose) Quat() mgl64.Quat {
	if p.quat == nil {
		return mgl64.QuatIdent()
	}
	return *p.quat
}

// SetPos sets the local position. The value counts as explicitly set even
// when it equals the default.
func (p *Pose) SetPos(pos mgl64.Vec3) {
	p.pos = &pos
}

// SetQuat sets the local orientation.
func (p *Pose) SetQuat(q mgl64.Quat) {
	p.quat = &q
}

// HasPos reports whether a position was explicitly set.
func (p *Pose) HasPos() bool {
	return p.pos != nil
}

// HasQuat reports whether an orientation was explicitly set.
func (p *Pose) HasQuat() bool {
	return p.quat != nil
}
