// Package spatial implements 6-D spatial vectors (twists and wrenches) and
// 6x6 block matrices, the species-tagged algebra §4.2 and §9 call for: one
// storage shape, named operations that fix the species at the call site.
package spatial

import "github.com/bxrne/artidyn/pkg/vecmath"

// Vec6 is a spatial 6-vector: a twist or a wrench depending on the role it
// plays at the call site (§4.2). Storage never encodes which.
type Vec6 struct {
	Linear  vecmath.V3
	Angular vecmath.V3
}

// Zero6 is the additive identity.
var Zero6 = Vec6{}

// Add returns the component-wise sum.
func (v Vec6) Add(o Vec6) Vec6 {
	return Vec6{v.Linear.Add(o.Linear), v.Angular.Add(o.Angular)}
}

// Sub returns the component-wise difference.
func (v Vec6) Sub(o Vec6) Vec6 {
	return Vec6{v.Linear.Sub(o.Linear), v.Angular.Sub(o.Angular)}
}

// Scale returns v scaled by s.
func (v Vec6) Scale(s float64) Vec6 {
	return Vec6{v.Linear.Scale(s), v.Angular.Scale(s)}
}

// Dot returns the twist/wrench pairing linear_t.linear_w + angular_t.angular_w
// (GLOSSARY), used for power/generalized-force projections.
func (v Vec6) Dot(o Vec6) float64 {
	return v.Linear.Dot(o.Linear) + v.Angular.Dot(o.Angular)
}

// CrossTwistTwist computes the spatial cross product of two twists, itself a
// twist (§4.2):
//
//	(a.angular x b.linear + a.linear x b.angular, a.angular x b.angular)
func CrossTwistTwist(a, b Vec6) Vec6 {
	return Vec6{
		Linear:  a.Angular.Cross(b.Linear).Add(a.Linear.Cross(b.Angular)),
		Angular: a.Angular.Cross(b.Angular),
	}
}

// CrossTwistWrench computes the spatial cross product of a twist against a
// wrench, itself a wrench (§4.2):
//
//	(v.angular x w.linear, v.angular x w.angular + v.linear x w.linear)
func CrossTwistWrench(v, w Vec6) Vec6 {
	return Vec6{
		Linear:  v.Angular.Cross(w.Linear),
		Angular: v.Angular.Cross(w.Angular).Add(v.Linear.Cross(w.Linear)),
	}
}

// Outer returns the outer product of two 6-vectors as an M66:
// [[a_l b_lᵀ, a_l b_aᵀ], [a_a b_lᵀ, a_a b_aᵀ]].
func Outer(a, b Vec6) M66 {
	return M66{
		A11: a.Linear.Outer(b.Linear),
		A12: a.Linear.Outer(b.Angular),
		A21: a.Angular.Outer(b.Linear),
		A22: a.Angular.Outer(b.Angular),
	}
}

// Twist builds the twist of a joint with axis omegaHat (unit), through point
// r (relative to the evaluation origin), of pitch h:
// (h*omegaHat + r x omegaHat, omegaHat). (§3)
func Twist(omegaHat, r vecmath.V3, h float64) Vec6 {
	return Vec6{
		Linear:  omegaHat.Scale(h).Add(r.Cross(omegaHat)),
		Angular: omegaHat,
	}
}

// Wrench builds a wrench with line force f through point r, moment pitch h:
// (f, h*f + r x f). (§3)
func Wrench(f, r vecmath.V3, h float64) Vec6 {
	return Vec6{
		Linear:  f,
		Angular: f.Scale(h).Add(r.Cross(f)),
	}
}
