package element

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape describes the geometry of a geom. All shapes are centered on the
// geom frame origin with their symmetry axis, where one exists, along Z.
type Shape interface {
	// Volume returns the enclosed volume.
	Volume() float64
	// ComputeMass calculates the shape mass for a given density.
	ComputeMass(density float64) float64
	// ComputeInertia calculates the inertia tensor about the shape origin
	// in shape axes, for the given mass.
	ComputeInertia(mass float64) mgl64.Mat3
	// ComputeAABB calculates the axis-aligned bounding box of the shape
	// placed at the given world position and orientation.
	ComputeAABB(pos mgl64.Vec3, q mgl64.Quat) AABB
}

// Sphere is a ball of the given radius.
type Sphere struct {
	Radius float64
}

func (s Sphere) Volume() float64 {
	// Volume of sphere = (4/3) * π * r³
	return (4.0 / 3.0) * math.Pi * math.Pow(s.Radius, 3)
}

func (s Sphere) ComputeMass(density float64) float64 {
	return density * s.Volume()
}

func (s Sphere) ComputeInertia(mass float64) mgl64.Mat3 {
	// I = (2/5) * m * r², identical on every axis
	i := (2.0 / 5.0) * mass * s.Radius * s.Radius

	return mgl64.Mat3{
		i, 0, 0,
		0, i, 0,
		0, 0, i,
	}
}

func (s Sphere) ComputeAABB(pos mgl64.Vec3, q mgl64.Quat) AABB {
	// Sphere bounds are not affected by rotation, only by position
	radiusVec := mgl64.Vec3{s.Radius, s.Radius, s.Radius}

	return AABB{
		Min: pos.Sub(radiusVec),
		Max: pos.Add(radiusVec),
	}
}

// Capsule is a cylinder of half-length HalfLength along Z, capped with
// hemispheres of radius Radius.
type Capsule struct {
	Radius     float64
	HalfLength float64
}

func (c Capsule) Volume() float64 {
	cylinder := math.Pi * c.Radius * c.Radius * (2 * c.HalfLength)
	caps := (4.0 / 3.0) * math.Pi * math.Pow(c.Radius, 3)
	return cylinder + caps
}

func (c Capsule) ComputeMass(density float64) float64 {
	return density * c.Volume()
}

func (c Capsule) ComputeInertia(mass float64) mgl64.Mat3 {
	r := c.Radius
	h := c.HalfLength
	cylinderMass := mass * (math.Pi * r * r * 2 * h) / c.Volume()
	capsMass := mass - cylinderMass

	// Cylinder about its center plus the two caps transported from their
	// own center of mass, which sits 3r/8 above the flat face
	capOffset := h + (3.0/8.0)*r
	iz := cylinderMass*r*r/2 + capsMass*(2.0/5.0)*r*r
	ixy := cylinderMass*(r*r/4+h*h/3) +
		capsMass*((83.0/320.0)*r*r+capOffset*capOffset)

	return mgl64.Mat3{
		ixy, 0, 0,
		0, ixy, 0,
		0, 0, iz,
	}
}

func (c Capsule) ComputeAABB(pos mgl64.Vec3, q mgl64.Quat) AABB {
	halfAxis := q.Rotate(mgl64.Vec3{0, 0, c.HalfLength})
	radiusVec := mgl64.Vec3{c.Radius, c.Radius, c.Radius}

	top := pos.Add(halfAxis)
	bottom := pos.Sub(halfAxis)

	return AABB{
		Min: vec3Min(top, bottom).Sub(radiusVec),
		Max: vec3Max(top, bottom).Add(radiusVec),
	}
}

// Cylinder has half-length HalfLength along Z.
type Cylinder struct {
	Radius     float64
	HalfLength float64
}

func (c Cylinder) Volume() float64 {
	return math.Pi * c.Radius * c.Radius * (2 * c.HalfLength)
}

func (c Cylinder) ComputeMass(density float64) float64 {
	return density * c.Volume()
}

func (c Cylinder) ComputeInertia(mass float64) mgl64.Mat3 {
	r := c.Radius
	l := 2 * c.HalfLength

	// I = (m/12) * (3r² + l²) across the axis, (m/2) * r² along it
	ixy := mass * (3*r*r + l*l) / 12.0
	iz := mass * r * r / 2.0

	return mgl64.Mat3{
		ixy, 0, 0,
		0, ixy, 0,
		0, 0, iz,
	}
}

func (c Cylinder) ComputeAABB(pos mgl64.Vec3, q mgl64.Quat) AABB {
	axis := q.Rotate(mgl64.Vec3{0, 0, 1})

	// Extent per world axis: |h*a| for the axis plus r*sqrt(1-a²) for the
	// disc cross-section
	var extent mgl64.Vec3
	for i := 0; i < 3; i++ {
		s := 1 - axis[i]*axis[i]
		if s < 0 {
			s = 0
		}
		extent[i] = math.Abs(axis[i])*c.HalfLength + c.Radius*math.Sqrt(s)
	}

	return AABB{
		Min: pos.Sub(extent),
		Max: pos.Add(extent),
	}
}

// Box is defined by its half-extents (half-width, half-height, half-depth).
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b Box) Volume() float64 {
	// Volume = 8 * hx * hy * hz (full dimensions are 2*halfExtents)
	return 8.0 * b.HalfExtents.X() * b.HalfExtents.Y() * b.HalfExtents.Z()
}

func (b Box) ComputeMass(density float64) float64 {
	return density * b.Volume()
}

func (b Box) ComputeInertia(mass float64) mgl64.Mat3 {
	x := b.HalfExtents.X() * 2
	y := b.HalfExtents.Y() * 2
	z := b.HalfExtents.Z() * 2

	// I = (m/12) * (dimension1² + dimension2²)
	factor := mass / 12.0
	ix := factor * (y*y + z*z)
	iy := factor * (x*x + z*z)
	iz := factor * (x*x + y*y)

	return mgl64.Mat3{
		ix, 0, 0,
		0, iy, 0,
		0, 0, iz,
	}
}

func (b Box) ComputeAABB(pos mgl64.Vec3, q mgl64.Quat) AABB {
	corners := [8]mgl64.Vec3{
		{-b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{+b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{-b.HalfExtents.X(), +b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{+b.HalfExtents.X(), +b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{-b.HalfExtents.X(), -b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{+b.HalfExtents.X(), -b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{-b.HalfExtents.X(), +b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{+b.HalfExtents.X(), +b.HalfExtents.Y(), +b.HalfExtents.Z()},
	}

	worldCorner := q.Rotate(corners[0]).Add(pos)
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = q.Rotate(corners[i]).Add(pos)
		min = vec3Min(min, worldCorner)
		max = vec3Max(max, worldCorner)
	}

	return AABB{Min: min, Max: max}
}

// Plane is an infinite static plane spanning the local XY axes with its
// normal along local Z. Planes have infinite mass and no inertia; mass
// property and extent calculations skip them.
type Plane struct{}

func (p Plane) Volume() float64 {
	return math.Inf(1)
}

func (p Plane) ComputeMass(density float64) float64 {
	// Static planes have infinite mass
	return math.Inf(1)
}

func (p Plane) ComputeInertia(mass float64) mgl64.Mat3 {
	return mgl64.Mat3{}
}

func (p Plane) ComputeAABB(pos mgl64.Vec3, q mgl64.Quat) AABB {
	const thickness = 1.0 // detection slab below the surface
	const infinity = 1e10

	normal := q.Rotate(mgl64.Vec3{0, 0, 1})
	surface := pos
	below := pos.Sub(normal.Mul(thickness))

	min := vec3Min(surface, below)
	max := vec3Max(surface, below)

	// Extend to infinity in the directions the plane spans
	for i := 0; i < 3; i++ {
		if math.Abs(normal[i]) < 1.0 {
			min[i] = -infinity
			max[i] = infinity
		}
	}

	return AABB{Min: min, Max: max}
}

func vec3Min(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Min(a.X(), b.X()),
		math.Min(a.Y(), b.Y()),
		math.Min(a.Z(), b.Z()),
	}
}

func vec3Max(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Max(a.X(), b.X()),
		math.Max(a.Y(), b.Y()),
		math.Max(a.Z(), b.Z()),
	}
}
