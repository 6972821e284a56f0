package armature

import (
	"github.com/akmonengine/armature/element"
	"github.com/akmonengine/armature/quat"
	"github.com/go-gl/mathgl/mgl64"
)

// ReframeBody rewrites body's local pose to the given position and
// orientation while keeping the world pose of everything below the body
// fixed, by folding the difference into the local poses of the direct
// children. Nil arguments select the identity, so ReframeBody(body, nil,
// nil) zeroes the body's own transform.
//
// Compensation is single level: each grandchild is expressed relative to
// its own corrected parent and needs no update. Children that carry no
// position, such as free joints, are left untouched.
func ReframeBody(body *element.Body, newPos *mgl64.Vec3, newQuat *mgl64.Quat) {
	framePos := mgl64.Vec3{}
	if newPos != nil {
		framePos = *newPos
	}
	frameQuat := quat.Ident()
	if newQuat != nil {
		frameQuat = *newQuat
	}

	oldPos := body.Pos()
	oldQuat := body.Quat()

	// Rotation taking vectors from the old local frame into the new one,
	// and the displacement of the old origin in the parent frame
	dquat := quat.Mul(quat.Reciprocal(frameQuat), oldQuat)
	dpos := oldPos.Sub(framePos)

	body.SetPos(framePos)
	body.SetQuat(frameQuat)

	for _, c := range body.Children() {
		positioned, ok := c.(element.Positioned)
		if !ok {
			continue
		}
		if oriented, ok := c.(element.Oriented); ok {
			oriented.SetQuat(quat.Mul(dquat, oriented.Quat()))
		}
		// Into the parent frame under the old pose, back out under the new
		inParent := quat.RotateVec(positioned.Pos(), oldQuat).Add(dpos)
		positioned.SetPos(quat.RotateVec(inParent, quat.Reciprocal(frameQuat)))
	}
}
