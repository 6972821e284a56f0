package physics

import (
	"github.com/akmonengine/armature/quat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// PointInBodyFrame expresses a world point in the local frame of a body
// whose world pose is given, as if the point were a direct child of that
// body.
func PointInBodyFrame(worldPoint, bodyPos mgl64.Vec3, bodyQuat mgl64.Quat) mgl64.Vec3 {
	return quat.RotateVec(worldPoint.Sub(bodyPos), quat.Reciprocal(bodyQuat))
}

// SitePosInBodyFrame expresses a site position in the local frame of the
// named body. The site may live anywhere in the tree. The point is taken
// from worldPoint when non-nil, otherwise resolved from the named site;
// one of the two must be supplied.
func (s *Snapshot) SitePosInBodyFrame(bodyName string, worldPoint *mgl64.Vec3, siteName string) (mgl64.Vec3, error) {
	point := worldPoint
	if point == nil {
		if siteName == "" {
			return mgl64.Vec3{}, errors.New("either a world point or a site name is required")
		}
		site, err := s.Site(siteName)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		point = &site.Pos
	}

	body, err := s.Body(bodyName)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return PointInBodyFrame(*point, body.Pos, body.Quat), nil
}
