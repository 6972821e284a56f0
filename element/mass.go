package element

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MassProperties returns the combined mass, center of mass and inertia
// tensor of b's own geoms, about the body frame origin in body axes. An
// explicit Inertial child overrides the geom-derived values. Static plane
// geoms are skipped; child bodies are not included.
func (b *Body) MassProperties() (mass float64, com mgl64.Vec3, inertia mgl64.Mat3) {
	for _, c := range b.children {
		if inertial, ok := c.(*Inertial); ok {
			rotation := inertial.Quat().Mat4().Mat3()
			diag := mgl64.Mat3{
				inertial.DiagInertia.X(), 0, 0,
				0, inertial.DiagInertia.Y(), 0,
				0, 0, inertial.DiagInertia.Z(),
			}
			aligned := rotation.Mul3(diag).Mul3(rotation.Transpose())
			return inertial.Mass, inertial.Pos(), parallelAxis(aligned, inertial.Mass, inertial.Pos())
		}
	}

	for _, c := range b.children {
		geom, ok := c.(*Geom)
		if !ok {
			continue
		}
		m := geom.Mass()
		if math.IsInf(m, 1) {
			continue
		}
		mass += m
		com = com.Add(geom.Pos().Mul(m))
	}
	if mass == 0 {
		return 0, mgl64.Vec3{}, mgl64.Mat3{}
	}
	com = com.Mul(1 / mass)

	for _, c := range b.children {
		geom, ok := c.(*Geom)
		if !ok {
			continue
		}
		m := geom.Mass()
		if math.IsInf(m, 1) {
			continue
		}
		rotation := geom.Quat().Mat4().Mat3()
		aligned := rotation.Mul3(geom.Shape.ComputeInertia(m)).Mul3(rotation.Transpose())
		inertia = inertia.Add(parallelAxis(aligned, m, geom.Pos()))
	}

	return mass, com, inertia
}

// parallelAxis shifts an inertia tensor to a parallel frame whose origin
// sits at offset -d, i.e. the mass center moves to d.
func parallelAxis(inertia mgl64.Mat3, mass float64, d mgl64.Vec3) mgl64.Mat3 {
	d2 := d.Dot(d)
	shift := mgl64.Mat3{
		d2 - d.X()*d.X(), -d.Y() * d.X(), -d.Z() * d.X(),
		-d.X() * d.Y(), d2 - d.Y()*d.Y(), -d.Z() * d.Y(),
		-d.X() * d.Z(), -d.Y() * d.Z(), d2 - d.Z()*d.Z(),
	}
	return inertia.Add(shift.Mul(mass))
}
