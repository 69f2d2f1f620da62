package spatial

import "github.com/bxrne/artidyn/pkg/vecmath"

// M66 is a 6x6 block matrix built from four 3x3 blocks, laid out
//
//	[ A11  A12 ]
//	[ A21  A22 ]
//
// acting on (linear, angular) pairs (§4.2).
type M66 struct {
	A11, A12, A21, A22 vecmath.M3
}

// Zero66 is the additive identity.
var Zero66 = M66{}

// Identity66 is the 6x6 identity.
var Identity66 = M66{A11: vecmath.Identity3, A22: vecmath.Identity3}

// Add returns m + o.
func (m M66) Add(o M66) M66 {
	return M66{
		A11: m.A11.Add(o.A11),
		A12: m.A12.Add(o.A12),
		A21: m.A21.Add(o.A21),
		A22: m.A22.Add(o.A22),
	}
}

// Sub returns m - o.
func (m M66) Sub(o M66) M66 {
	return M66{
		A11: m.A11.Sub(o.A11),
		A12: m.A12.Sub(o.A12),
		A21: m.A21.Sub(o.A21),
		A22: m.A22.Sub(o.A22),
	}
}

// Scale returns m scaled by s.
func (m M66) Scale(s float64) M66 {
	return M66{
		A11: m.A11.Scale(s),
		A12: m.A12.Scale(s),
		A21: m.A21.Scale(s),
		A22: m.A22.Scale(s),
	}
}

// MulVec applies m to a spatial 6-vector (§4.2):
//
//	result.linear  = A11*x_lin + A12*x_ang
//	result.angular = A21*x_lin + A22*x_ang
func (m M66) MulVec(x Vec6) Vec6 {
	return Vec6{
		Linear:  m.A11.MulV(x.Linear).Add(m.A12.MulV(x.Angular)),
		Angular: m.A21.MulV(x.Linear).Add(m.A22.MulV(x.Angular)),
	}
}

// Mul computes the block product m * o.
func (m M66) Mul(o M66) M66 {
	return M66{
		A11: m.A11.Mul(o.A11).Add(m.A12.Mul(o.A21)),
		A12: m.A11.Mul(o.A12).Add(m.A12.Mul(o.A22)),
		A21: m.A21.Mul(o.A11).Add(m.A22.Mul(o.A21)),
		A22: m.A21.Mul(o.A12).Add(m.A22.Mul(o.A22)),
	}
}

// SwapTranspose returns the transpose of m under the block-swapped pairing
// used by the spatial-inertia symmetry test (§8): swap off-diagonal blocks,
// then transpose each block. For a true spatial inertia this equals m.
func (m M66) SwapTranspose() M66 {
	return M66{
		A11: m.A11.Transpose(),
		A12: m.A21.Transpose(),
		A21: m.A12.Transpose(),
		A22: m.A22.Transpose(),
	}
}
