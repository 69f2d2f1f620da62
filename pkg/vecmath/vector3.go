// Package vecmath provides the 3-D linear-algebra primitives (vectors,
// quaternions, matrices) that the rest of the engine is built from.
package vecmath

import (
	"fmt"
	"math"
)

// V3 is a 3-D vector.
type V3 struct {
	X, Y, Z float64
}

// Zero is the additive identity.
var Zero = V3{}

// Add returns the component-wise sum.
func (v V3) Add(o V3) V3 {
	return V3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference.
func (v V3) Sub(o V3) V3 {
	return V3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by a scalar.
func (v V3) Scale(s float64) V3 {
	return V3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v V3) Neg() V3 {
	return V3{-v.X, -v.Y, -v.Z}
}

// Dot returns the scalar (inner) product.
func (v V3) Dot(o V3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector (cross) product v x o.
func (v V3) Cross(o V3) V3 {
	return V3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// NormSq returns the squared Euclidean length.
func (v V3) NormSq() float64 {
	return v.Dot(v)
}

// Norm returns the Euclidean length.
func (v V3) Norm() float64 {
	return math.Sqrt(v.NormSq())
}

// Normalize returns v scaled to unit length. Per §4.1 it returns the zero
// vector when v has zero magnitude; callers must check for axis validity.
func (v V3) Normalize() V3 {
	n := v.Norm()
	if n == 0 {
		return Zero
	}
	return v.Scale(1 / n)
}

// IsZero reports whether v is exactly the zero vector.
func (v V3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Outer returns the outer product v * oᵀ as an M3.
func (v V3) Outer(o V3) M3 {
	return M3{
		v.X * o.X, v.X * o.Y, v.X * o.Z,
		v.Y * o.X, v.Y * o.Y, v.Y * o.Z,
		v.Z * o.X, v.Z * o.Y, v.Z * o.Z,
	}
}

// Skew returns the 3x3 cross-product (skew-symmetric) matrix [v]x such that
// [v]x * u == v.Cross(u) for any u.
func (v V3) Skew() M3 {
	return M3{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	}
}

// MomentTensor returns ||v||^2 * E - v*vᵀ, the moment-of-inertia contribution
// of a point mass at offset v (§3).
func (v V3) MomentTensor() M3 {
	return Identity3.Scale(v.NormSq()).Sub(v.Outer(v))
}

func (v V3) String() string {
	return fmt.Sprintf("V3(%.6g, %.6g, %.6g)", v.X, v.Y, v.Z)
}
