// Package massprops implements rigid-body mass properties, their
// mass-weighted composition via the parallel-axis theorem, and the services
// that turn them into spatial-algebra objects (§3, §4.4).
package massprops

import (
	"github.com/bxrne/artidyn/pkg/dynerrors"
	"github.com/bxrne/artidyn/pkg/spatial"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

// MassProps is the mass, inertia-at-CoM and CoM offset of a rigid body, all
// expressed in one unit system (§3). UnitSystem is an opaque tag compared by
// equality; combining two MassProps tagged with different systems is a
// dynerrors.UnitMismatchError, surfaced by the caller of Combine/Subtract.
type MassProps struct {
	Mass       float64
	InertiaCG  vecmath.M3
	CG         vecmath.V3
	UnitSystem string
}

// Zero is the mass properties of nothing: zero mass, zero inertia, CoM at
// the origin, no unit system tag (matches any).
var Zero = MassProps{}

// SameUnits reports whether a and b can be combined without conversion.
func (a MassProps) SameUnits(b MassProps) bool {
	return a.UnitSystem == "" || b.UnitSystem == "" || a.UnitSystem == b.UnitSystem
}

// Combine returns the mass properties of a and b taken together, via
// mass-weighted CoM and parallel-axis composition (§3):
//
//	m = m_a + m_b
//	c = (m_a*c_a + m_b*c_b) / m
//	I = I_a + m_a*MomentTensor(c_a) + I_b + m_b*MomentTensor(c_b) - m*MomentTensor(c)
//
// Combining with Zero is the identity. If a and b are tagged with different,
// non-empty unit systems, Combine refuses the operation and returns a
// dynerrors.UnitMismatchError rather than silently mixing units (§7); the
// caller must normalize both operands into the same unit system first.
func (a MassProps) Combine(b MassProps) (MassProps, error) {
	if !a.SameUnits(b) {
		return MassProps{}, &dynerrors.UnitMismatchError{A: a.UnitSystem, B: b.UnitSystem}
	}
	if a.Mass == 0 && a.CG.IsZero() && a.InertiaCG == (vecmath.M3{}) {
		return b, nil
	}
	if b.Mass == 0 && b.CG.IsZero() && b.InertiaCG == (vecmath.M3{}) {
		return a, nil
	}
	m := a.Mass + b.Mass
	c := a.CG.Scale(a.Mass).Add(b.CG.Scale(b.Mass)).Scale(1 / m)
	I := a.InertiaCG.
		Add(a.CG.MomentTensor().Scale(a.Mass)).
		Add(b.InertiaCG).
		Add(b.CG.MomentTensor().Scale(b.Mass)).
		Sub(c.MomentTensor().Scale(m))
	units := a.UnitSystem
	if units == "" {
		units = b.UnitSystem
	}
	return MassProps{Mass: m, InertiaCG: I, CG: c, UnitSystem: units}, nil
}

// Subtract returns the mass properties of whole minus part, the inverse of
// Combine: whole.Subtract(part) then Combine(part) reconstructs whole within
// floating-point tolerance (§8, §9 — subtraction uses MomentTensor(c), not
// ||c||^2, matching the addition rule). Not checked for physical validity
// (§3): a non-physical result (negative mass, non-PSD inertia) is the
// caller's problem. Like Combine, a unit-system mismatch between whole and
// part is refused with a dynerrors.UnitMismatchError (§7).
func (whole MassProps) Subtract(part MassProps) (MassProps, error) {
	if !whole.SameUnits(part) {
		return MassProps{}, &dynerrors.UnitMismatchError{A: whole.UnitSystem, B: part.UnitSystem}
	}
	m := whole.Mass - part.Mass
	if m == 0 {
		return Zero, nil
	}
	c := whole.CG.Scale(whole.Mass).Sub(part.CG.Scale(part.Mass)).Scale(1 / m)
	I := whole.InertiaCG.
		Add(whole.CG.MomentTensor().Scale(whole.Mass)).
		Sub(part.InertiaCG).
		Sub(part.CG.MomentTensor().Scale(part.Mass)).
		Sub(c.MomentTensor().Scale(m))
	return MassProps{Mass: m, InertiaCG: I, CG: c, UnitSystem: whole.UnitSystem}, nil
}

// WorldInertiaAtCG rotates a body-frame inertia tensor at CoM into the world
// frame: R * I_body * Rᵀ (§4.4).
func WorldInertiaAtCG(bodyInertia vecmath.M3, worldRotation vecmath.M3) vecmath.M3 {
	return bodyInertia.WorldFrom(worldRotation)
}

// WeightWrench returns the gravity wrench acting at a body's world-frame
// CoM (§4.4): (m*g, cgWorld x (m*g)).
func WeightWrench(mass float64, cgWorld, gravity vecmath.V3) spatial.Vec6 {
	force := gravity.Scale(mass)
	return spatial.Vec6{
		Linear:  force,
		Angular: cgWorld.Cross(force),
	}
}

// SpatialInertia builds the 6x6 spatial inertia of a body of mass m, with
// world-frame inertia-at-CoM inertiaWorldCG, whose CoM sits at worldCG
// relative to the evaluation origin (§3):
//
//	I = [ m*E            -m*[c]x          ]
//	    [ m*[c]x    I_C - m*[c]x*[c]x     ]
func SpatialInertia(mass float64, inertiaWorldCG vecmath.M3, worldCG vecmath.V3) spatial.M66 {
	skew := worldCG.Skew()
	mSkew := skew.Scale(mass)
	return spatial.M66{
		A11: vecmath.Identity3.Scale(mass),
		A12: mSkew.Scale(-1),
		A21: mSkew,
		A22: inertiaWorldCG.Sub(skew.Mul(skew).Scale(mass)),
	}
}
