package vecmath

import "fmt"

// M3 is a 3x3 matrix, stored row-major as the teacher's Matrix3x3 is.
type M3 struct {
	M11, M12, M13 float64
	M21, M22, M23 float64
	M31, M32, M33 float64
}

// Identity3 is the 3x3 identity matrix.
var Identity3 = M3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// RowsM3 builds a matrix from three row vectors.
func RowsM3(r1, r2, r3 V3) M3 {
	return M3{
		r1.X, r1.Y, r1.Z,
		r2.X, r2.Y, r2.Z,
		r3.X, r3.Y, r3.Z,
	}
}

// ColsM3 builds a matrix from three column vectors.
func ColsM3(c1, c2, c3 V3) M3 {
	return M3{
		c1.X, c2.X, c3.X,
		c1.Y, c2.Y, c3.Y,
		c1.Z, c2.Z, c3.Z,
	}
}

// Add returns m + o.
func (m M3) Add(o M3) M3 {
	return M3{
		m.M11 + o.M11, m.M12 + o.M12, m.M13 + o.M13,
		m.M21 + o.M21, m.M22 + o.M22, m.M23 + o.M23,
		m.M31 + o.M31, m.M32 + o.M32, m.M33 + o.M33,
	}
}

// Sub returns m - o.
func (m M3) Sub(o M3) M3 {
	return M3{
		m.M11 - o.M11, m.M12 - o.M12, m.M13 - o.M13,
		m.M21 - o.M21, m.M22 - o.M22, m.M23 - o.M23,
		m.M31 - o.M31, m.M32 - o.M32, m.M33 - o.M33,
	}
}

// Scale returns m scaled by s.
func (m M3) Scale(s float64) M3 {
	return M3{
		m.M11 * s, m.M12 * s, m.M13 * s,
		m.M21 * s, m.M22 * s, m.M23 * s,
		m.M31 * s, m.M32 * s, m.M33 * s,
	}
}

// MulV multiplies m by a column vector: result = m * v.
func (m M3) MulV(v V3) V3 {
	return V3{
		m.M11*v.X + m.M12*v.Y + m.M13*v.Z,
		m.M21*v.X + m.M22*v.Y + m.M23*v.Z,
		m.M31*v.X + m.M32*v.Y + m.M33*v.Z,
	}
}

// Mul multiplies two matrices: result = m * o.
func (m M3) Mul(o M3) M3 {
	return M3{
		m.M11*o.M11 + m.M12*o.M21 + m.M13*o.M31,
		m.M11*o.M12 + m.M12*o.M22 + m.M13*o.M32,
		m.M11*o.M13 + m.M12*o.M23 + m.M13*o.M33,

		m.M21*o.M11 + m.M22*o.M21 + m.M23*o.M31,
		m.M21*o.M12 + m.M22*o.M22 + m.M23*o.M32,
		m.M21*o.M13 + m.M22*o.M23 + m.M23*o.M33,

		m.M31*o.M11 + m.M32*o.M21 + m.M33*o.M31,
		m.M31*o.M12 + m.M32*o.M22 + m.M33*o.M32,
		m.M31*o.M13 + m.M32*o.M23 + m.M33*o.M33,
	}
}

// Transpose returns mᵀ.
func (m M3) Transpose() M3 {
	return M3{
		m.M11, m.M21, m.M31,
		m.M12, m.M22, m.M32,
		m.M13, m.M23, m.M33,
	}
}

// Determinant returns det(m).
func (m M3) Determinant() float64 {
	return m.M11*(m.M22*m.M33-m.M23*m.M32) -
		m.M12*(m.M21*m.M33-m.M23*m.M31) +
		m.M13*(m.M21*m.M32-m.M22*m.M31)
}

// TryInvert returns the inverse of m via the adjugate method, and false when
// m is singular (|det| below eps), per §4.1's fails-with contract.
func (m M3) TryInvert() (M3, bool) {
	det := m.Determinant()
	const eps = 1e-12
	if det > -eps && det < eps {
		return M3{}, false
	}
	invDet := 1 / det
	return M3{
		(m.M22*m.M33 - m.M23*m.M32) * invDet,
		(m.M13*m.M32 - m.M12*m.M33) * invDet,
		(m.M12*m.M23 - m.M13*m.M22) * invDet,

		(m.M23*m.M31 - m.M21*m.M33) * invDet,
		(m.M11*m.M33 - m.M13*m.M31) * invDet,
		(m.M13*m.M21 - m.M11*m.M23) * invDet,

		(m.M21*m.M32 - m.M22*m.M31) * invDet,
		(m.M12*m.M31 - m.M11*m.M32) * invDet,
		(m.M11*m.M22 - m.M12*m.M21) * invDet,
	}, true
}

// WorldFrom transforms a body-frame tensor into the world frame:
// R * body * Rᵀ. Used both for inertia tensors and, with R⁻¹ == Rᵀ for a
// rotation, their inverses.
func (m M3) WorldFrom(r M3) M3 {
	return r.Mul(m).Mul(r.Transpose())
}

func (m M3) String() string {
	return fmt.Sprintf("M3[[%.6g %.6g %.6g] [%.6g %.6g %.6g] [%.6g %.6g %.6g]]",
		m.M11, m.M12, m.M13, m.M21, m.M22, m.M23, m.M31, m.M32, m.M33)
}
