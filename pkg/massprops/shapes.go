package massprops

import (
	"github.com/bxrne/artidyn/pkg/dynerrors"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

// FromBox returns the mass properties of a solid rectangular box of mass m
// and dimensions w, h, t (x, y, z extents), CoM at the geometric center, in
// the given unit system. The box's own axes are its principal axes:
//
//	I_xx = m/12 * (h^2 + t^2), I_yy = m/12 * (w^2 + t^2), I_zz = m/12 * (w^2 + h^2)
func FromBox(units string, m, w, h, t float64) MassProps {
	return MassProps{
		Mass: m,
		InertiaCG: vecmath.M3{
			M11: m / 12 * (h*h + t*t),
			M22: m / 12 * (w*w + t*t),
			M33: m / 12 * (w*w + h*h),
		},
		CG:         vecmath.Zero,
		UnitSystem: units,
	}
}

// FromCylinder returns the mass properties of a solid cylinder of mass m,
// radius r, and height hgt, axis along z, CoM at the geometric center:
//
//	I_xx = I_yy = m/12 * (3*r^2 + hgt^2), I_zz = m*r^2/2
func FromCylinder(units string, m, r, hgt float64) MassProps {
	ixy := m / 12 * (3*r*r + hgt*hgt)
	return MassProps{
		Mass: m,
		InertiaCG: vecmath.M3{
			M11: ixy,
			M22: ixy,
			M33: m * r * r / 2,
		},
		CG:         vecmath.Zero,
		UnitSystem: units,
	}
}

// FromSphere returns the mass properties of a solid sphere of mass m and
// radius r, CoM at the center: I = 2/5 * m * r^2 on every axis.
func FromSphere(units string, m, r float64) MassProps {
	i := 2.0 / 5.0 * m * r * r
	return MassProps{
		Mass: m,
		InertiaCG: vecmath.M3{
			M11: i,
			M22: i,
			M33: i,
		},
		CG:         vecmath.Zero,
		UnitSystem: units,
	}
}

// Mesh is the minimal surface representation FromMesh would need: a closed
// triangle mesh given as a flat list of vertices and a list of
// (v0, v1, v2) index triples.
type Mesh struct {
	Vertices  []vecmath.V3
	Triangles [][3]int
}

// FromMesh is a stub: mesh-derived mass properties are out of scope for
// this engine (mesh import is an external collaborator per §1/§6). It
// always fails with a NumericError rather than silently approximating.
func FromMesh(_ Mesh, _ float64, _ string) (MassProps, error) {
	return MassProps{}, &dynerrors.NumericError{
		Op:     "FromMesh",
		Reason: "mesh-derived inertia is out of scope; supply analytic mass properties instead",
	}
}
