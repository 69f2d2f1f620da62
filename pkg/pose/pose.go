// Package pose implements rigid-body transforms built from vecmath
// primitives (§3, §4.1).
package pose

import "github.com/bxrne/artidyn/pkg/vecmath"

// Pose is a rigid transform (position, orientation).
type Pose struct {
	Position    vecmath.V3
	Orientation vecmath.Q
}

// Identity is the identity pose.
var Identity = Pose{Position: vecmath.Zero, Orientation: vecmath.IdentityQ}

// Compose returns p ∘ l: position = p.Position + rotate(p.Orientation, l.Position),
// orientation = p.Orientation * l.Orientation.
func (p Pose) Compose(l Pose) Pose {
	return Pose{
		Position:    p.Position.Add(p.Orientation.RotateVector(l.Position)),
		Orientation: p.Orientation.Mul(l.Orientation),
	}
}

// Inverse returns p⁻¹ such that p.Compose(p.Inverse()) == Identity.
func (p Pose) Inverse() Pose {
	qInv := p.Orientation.Conjugate()
	return Pose{
		Position:    qInv.RotateVector(p.Position).Neg(),
		Orientation: qInv,
	}
}

// Normalized returns p with its orientation re-normalized, re-establishing
// the quaternion-normality invariant after integration (§3, §8).
func (p Pose) Normalized() Pose {
	q := p.Orientation.Normalize()
	if q.IsZero() {
		q = vecmath.IdentityQ
	}
	return Pose{Position: p.Position, Orientation: q}
}
