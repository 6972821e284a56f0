package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Frame Transform Tests
// =============================================================================

func TestPointInBodyFrame(t *testing.T) {
	rotZ := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})

	tests := []struct {
		name       string
		worldPoint mgl64.Vec3
		bodyPos    mgl64.Vec3
		bodyQuat   mgl64.Quat
		want       mgl64.Vec3
	}{
		{
			name:       "translated body",
			worldPoint: mgl64.Vec3{2, 0, 0},
			bodyPos:    mgl64.Vec3{1, 0, 0},
			bodyQuat:   mgl64.QuatIdent(),
			want:       mgl64.Vec3{1, 0, 0},
		},
		{
			name:       "rotated body",
			worldPoint: mgl64.Vec3{0, 1, 0},
			bodyPos:    mgl64.Vec3{},
			bodyQuat:   rotZ,
			want:       mgl64.Vec3{1, 0, 0},
		},
		{
			name:       "translated and rotated body",
			worldPoint: mgl64.Vec3{1, 1, 3},
			bodyPos:    mgl64.Vec3{1, 0, 3},
			bodyQuat:   rotZ,
			want:       mgl64.Vec3{1, 0, 0},
		},
		{
			name:       "point at the body origin",
			worldPoint: mgl64.Vec3{4, -2, 7},
			bodyPos:    mgl64.Vec3{4, -2, 7},
			bodyQuat:   rotZ,
			want:       mgl64.Vec3{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointInBodyFrame(tt.worldPoint, tt.bodyPos, tt.bodyQuat)
			if !vec3Equal(got, tt.want, epsilon) {
				t.Errorf("PointInBodyFrame() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointInBodyFrame_InvertsComposition(t *testing.T) {
	bodyPos := mgl64.Vec3{0.3, -1.2, 2}
	bodyQuat := mgl64.QuatRotate(1.1, mgl64.Vec3{1, 2, -1}.Normalize())
	local := mgl64.Vec3{0.5, 0.25, -0.75}

	world := bodyQuat.Rotate(local).Add(bodyPos)
	if got := PointInBodyFrame(world, bodyPos, bodyQuat); !vec3Equal(got, local, epsilon) {
		t.Errorf("PointInBodyFrame() = %v, want the original local %v", got, local)
	}
}

func frameSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	s := NewSnapshot()
	rotZ := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	records := []BodyState{
		{Name: "world", Quat: mgl64.QuatIdent()},
		{Name: "torso", Pos: mgl64.Vec3{1, 0, 0}, Quat: rotZ},
		{Name: "head", Pos: mgl64.Vec3{1, 0, 1}, Quat: rotZ},
	}
	for _, b := range records {
		if err := s.AddBody(b); err != nil {
			t.Fatalf("AddBody failed: %v", err)
		}
	}
	site := SiteState{Name: "beacon", Body: "head", Pos: mgl64.Vec3{2, 0, 1}, Quat: rotZ}
	if err := s.AddSite(site); err != nil {
		t.Fatalf("AddSite failed: %v", err)
	}
	return s
}

func TestSitePosInBodyFrame_ResolvesSiteName(t *testing.T) {
	s := frameSnapshot(t)

	// The beacon sits on the head; express it in the torso frame instead
	pos, err := s.SitePosInBodyFrame("torso", nil, "beacon")
	if err != nil {
		t.Fatalf("SitePosInBodyFrame failed: %v", err)
	}
	// World offset (1,0,1) undone by the torso's z rotation
	if !vec3Equal(pos, mgl64.Vec3{0, -1, 1}, epsilon) {
		t.Errorf("pos = %v, want (0,-1,1)", pos)
	}
}

func TestSitePosInBodyFrame_WorldPointTakesPrecedence(t *testing.T) {
	s := frameSnapshot(t)

	point := mgl64.Vec3{2, 0, 0}
	pos, err := s.SitePosInBodyFrame("torso", &point, "no-such-site")
	if err != nil {
		t.Fatalf("an explicit point should bypass the site lookup, got %v", err)
	}
	if !vec3Equal(pos, mgl64.Vec3{0, -1, 0}, epsilon) {
		t.Errorf("pos = %v, want (0,-1,0)", pos)
	}
}

func TestSitePosInBodyFrame_Errors(t *testing.T) {
	s := frameSnapshot(t)
	point := mgl64.Vec3{1, 2, 3}

	tests := []struct {
		name       string
		bodyName   string
		worldPoint *mgl64.Vec3
		siteName   string
	}{
		{name: "neither point nor site", bodyName: "torso"},
		{name: "unknown site", bodyName: "torso", siteName: "antenna"},
		{name: "unknown body", bodyName: "pelvis", worldPoint: &point},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.SitePosInBodyFrame(tt.bodyName, tt.worldPoint, tt.siteName); err == nil {
				t.Error("SitePosInBodyFrame should have failed")
			}
		})
	}
}
