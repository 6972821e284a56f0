package element

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func mat3Equal(a, b mgl64.Mat3, tolerance float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) >= tolerance {
				return false
			}
		}
	}
	return true
}

func quatEqual(a, b mgl64.Quat, tolerance float64) bool {
	return floatEqual(a.W, b.W, tolerance) && vec3Equal(a.V, b.V, tolerance)
}

// =============================================================================
// Volume and Mass Tests
// =============================================================================

func TestShapeVolume(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  float64
	}{
		{
			name:  "unit sphere",
			shape: Sphere{Radius: 1},
			want:  (4.0 / 3.0) * math.Pi,
		},
		{
			name:  "box 2x4x6",
			shape: Box{HalfExtents: mgl64.Vec3{1, 2, 3}},
			want:  48,
		},
		{
			name:  "cylinder r=1 l=2",
			shape: Cylinder{Radius: 1, HalfLength: 1},
			want:  2 * math.Pi,
		},
		{
			name:  "capsule is cylinder plus sphere",
			shape: Capsule{Radius: 1, HalfLength: 1},
			want:  2*math.Pi + (4.0/3.0)*math.Pi,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Volume(); !floatEqual(got, tt.want, 1e-9) {
				t.Errorf("Volume() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShapeComputeMass_ScalesWithDensity(t *testing.T) {
	shapes := []Shape{
		Sphere{Radius: 0.3},
		Box{HalfExtents: mgl64.Vec3{0.1, 0.2, 0.3}},
		Cylinder{Radius: 0.2, HalfLength: 0.5},
		Capsule{Radius: 0.1, HalfLength: 0.4},
	}

	for _, shape := range shapes {
		single := shape.ComputeMass(1)
		double := shape.ComputeMass(2)
		if !floatEqual(double, 2*single, 1e-9) {
			t.Errorf("%T: mass at density 2 = %v, want %v", shape, double, 2*single)
		}
		if !floatEqual(single, shape.Volume(), 1e-9) {
			t.Errorf("%T: mass at density 1 = %v, want volume %v", shape, single, shape.Volume())
		}
	}
}

func TestPlaneComputeMass_IsInfinite(t *testing.T) {
	plane := Plane{}

	if !math.IsInf(plane.ComputeMass(1000), 1) {
		t.Errorf("plane mass = %v, want +Inf", plane.ComputeMass(1000))
	}
}

// =============================================================================
// Inertia Tests
// =============================================================================

func TestBoxComputeInertia(t *testing.T) {
	tests := []struct {
		name         string
		box          Box
		mass         float64
		expectedDiag mgl64.Vec3
	}{
		{
			name:         "unit cube",
			box:          Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			mass:         12.0,
			expectedDiag: mgl64.Vec3{8, 8, 8},
		},
		{
			name:         "rectangular box 2x3x4",
			box:          Box{HalfExtents: mgl64.Vec3{2, 3, 4}},
			mass:         12.0,
			expectedDiag: mgl64.Vec3{100, 80, 52},
		},
		{
			name:         "thin box",
			box:          Box{HalfExtents: mgl64.Vec3{0.1, 5, 0.1}},
			mass:         60.0,
			expectedDiag: mgl64.Vec3{500.2, 0.4, 500.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.box.ComputeInertia(tt.mass)

			if !vec3Equal(result.Diag(), tt.expectedDiag, 1e-6) {
				t.Errorf("ComputeInertia() diagonal = %v, want %v", result.Diag(), tt.expectedDiag)
			}
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					if i != j && !floatEqual(result.At(i, j), 0, 1e-9) {
						t.Errorf("ComputeInertia() returned non-diagonal matrix: %v", result)
					}
				}
			}
		})
	}
}

func TestSphereComputeInertia(t *testing.T) {
	tests := []struct {
		name      string
		sphere    Sphere
		mass      float64
		expectedI float64
	}{
		{
			name:      "unit sphere",
			sphere:    Sphere{Radius: 1.0},
			mass:      5.0,
			expectedI: 2.0,
		},
		{
			name:      "sphere radius 2",
			sphere:    Sphere{Radius: 2.0},
			mass:      10.0,
			expectedI: 16.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.sphere.ComputeInertia(tt.mass)

			expected := mgl64.Mat3{
				tt.expectedI, 0, 0,
				0, tt.expectedI, 0,
				0, 0, tt.expectedI,
			}
			if !mat3Equal(result, expected, 1e-9) {
				t.Errorf("ComputeInertia() = %v, want %v", result, expected)
			}
		})
	}
}

func TestCylinderComputeInertia(t *testing.T) {
	// r=1, l=2, m=12: across the axis 12*(3+4)/12 = 7, along it 12*1/2 = 6
	cylinder := Cylinder{Radius: 1, HalfLength: 1}
	result := cylinder.ComputeInertia(12)

	if !vec3Equal(result.Diag(), mgl64.Vec3{7, 7, 6}, 1e-9) {
		t.Errorf("ComputeInertia() diagonal = %v, want (7, 7, 6)", result.Diag())
	}
}

func TestCapsuleComputeInertia_ZeroLengthMatchesSphere(t *testing.T) {
	capsule := Capsule{Radius: 0.5, HalfLength: 0}
	sphere := Sphere{Radius: 0.5}

	if !mat3Equal(capsule.ComputeInertia(3), sphere.ComputeInertia(3), 1e-9) {
		t.Errorf("zero-length capsule inertia %v differs from sphere %v",
			capsule.ComputeInertia(3), sphere.ComputeInertia(3))
	}
}

func TestCapsuleComputeInertia_Symmetry(t *testing.T) {
	capsule := Capsule{Radius: 0.2, HalfLength: 0.6}
	result := capsule.ComputeInertia(4)

	if !floatEqual(result.At(0, 0), result.At(1, 1), 1e-9) {
		t.Errorf("capsule inertia not symmetric across the axis: %v vs %v",
			result.At(0, 0), result.At(1, 1))
	}
	if result.At(2, 2) >= result.At(0, 0) {
		t.Errorf("elongated capsule should have the smallest inertia along its axis, got %v",
			result.Diag())
	}
}

// =============================================================================
// Bounding Box Tests
// =============================================================================

func TestSphereComputeAABB(t *testing.T) {
	sphere := Sphere{Radius: 2}

	aabb := sphere.ComputeAABB(mgl64.Vec3{1, 2, 3}, mgl64.QuatRotate(1.2, mgl64.Vec3{0, 1, 0}))

	if !vec3Equal(aabb.Min, mgl64.Vec3{-1, 0, 1}, 1e-9) || !vec3Equal(aabb.Max, mgl64.Vec3{3, 4, 5}, 1e-9) {
		t.Errorf("sphere AABB = [%v, %v], want [(-1,0,1), (3,4,5)]", aabb.Min, aabb.Max)
	}
}

func TestBoxComputeAABB(t *testing.T) {
	tests := []struct {
		name    string
		box     Box
		pos     mgl64.Vec3
		q       mgl64.Quat
		wantMin mgl64.Vec3
		wantMax mgl64.Vec3
	}{
		{
			name:    "axis aligned",
			box:     Box{HalfExtents: mgl64.Vec3{1, 2, 3}},
			pos:     mgl64.Vec3{10, 0, 0},
			q:       mgl64.QuatIdent(),
			wantMin: mgl64.Vec3{9, -2, -3},
			wantMax: mgl64.Vec3{11, 2, 3},
		},
		{
			name:    "rotated 45 degrees about z",
			box:     Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			pos:     mgl64.Vec3{0, 0, 0},
			q:       mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}),
			wantMin: mgl64.Vec3{-math.Sqrt2, -math.Sqrt2, -1},
			wantMax: mgl64.Vec3{math.Sqrt2, math.Sqrt2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aabb := tt.box.ComputeAABB(tt.pos, tt.q)

			if !vec3Equal(aabb.Min, tt.wantMin, 1e-9) || !vec3Equal(aabb.Max, tt.wantMax, 1e-9) {
				t.Errorf("box AABB = [%v, %v], want [%v, %v]", aabb.Min, aabb.Max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestCapsuleComputeAABB(t *testing.T) {
	capsule := Capsule{Radius: 0.5, HalfLength: 1}

	upright := capsule.ComputeAABB(mgl64.Vec3{}, mgl64.QuatIdent())
	if !vec3Equal(upright.Min, mgl64.Vec3{-0.5, -0.5, -1.5}, 1e-9) ||
		!vec3Equal(upright.Max, mgl64.Vec3{0.5, 0.5, 1.5}, 1e-9) {
		t.Errorf("upright capsule AABB = [%v, %v]", upright.Min, upright.Max)
	}

	// Rotated 90 degrees about x, the axis lies along y
	sideways := capsule.ComputeAABB(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}))
	if !vec3Equal(sideways.Min, mgl64.Vec3{-0.5, -1.5, -0.5}, 1e-9) ||
		!vec3Equal(sideways.Max, mgl64.Vec3{0.5, 1.5, 0.5}, 1e-9) {
		t.Errorf("sideways capsule AABB = [%v, %v]", sideways.Min, sideways.Max)
	}
}

func TestCylinderComputeAABB(t *testing.T) {
	cylinder := Cylinder{Radius: 0.5, HalfLength: 2}

	upright := cylinder.ComputeAABB(mgl64.Vec3{0, 0, 3}, mgl64.QuatIdent())
	if !vec3Equal(upright.Min, mgl64.Vec3{-0.5, -0.5, 1}, 1e-9) ||
		!vec3Equal(upright.Max, mgl64.Vec3{0.5, 0.5, 5}, 1e-9) {
		t.Errorf("upright cylinder AABB = [%v, %v]", upright.Min, upright.Max)
	}

	sideways := cylinder.ComputeAABB(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}))
	if !vec3Equal(sideways.Min, mgl64.Vec3{-2, -0.5, -0.5}, 1e-9) ||
		!vec3Equal(sideways.Max, mgl64.Vec3{2, 0.5, 0.5}, 1e-9) {
		t.Errorf("sideways cylinder AABB = [%v, %v]", sideways.Min, sideways.Max)
	}
}

func TestPlaneComputeAABB(t *testing.T) {
	plane := Plane{}

	aabb := plane.ComputeAABB(mgl64.Vec3{0, 0, 0.5}, mgl64.QuatIdent())

	if aabb.Min.X() > -1e9 || aabb.Max.X() < 1e9 || aabb.Min.Y() > -1e9 || aabb.Max.Y() < 1e9 {
		t.Errorf("plane AABB should span the surface directions, got [%v, %v]", aabb.Min, aabb.Max)
	}
	if !floatEqual(aabb.Max.Z(), 0.5, 1e-9) || !floatEqual(aabb.Min.Z(), -0.5, 1e-9) {
		t.Errorf("plane AABB z range = [%v, %v], want [-0.5, 0.5]", aabb.Min.Z(), aabb.Max.Z())
	}
}
