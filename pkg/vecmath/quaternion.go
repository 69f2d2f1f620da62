package vecmath

import (
	"fmt"
	"math"
)

// Q is a unit quaternion using the scalar-first Hamilton convention
// w + x*i + y*j + z*k (§4.1).
type Q struct {
	W, X, Y, Z float64
}

// IdentityQ is the identity rotation.
var IdentityQ = Q{W: 1}

// NewQ builds a quaternion from components.
func NewQ(w, x, y, z float64) Q {
	return Q{W: w, X: x, Y: y, Z: z}
}

// FromAxisAngle builds the unit quaternion for a rotation of theta radians
// about axis (which must already be unit length): (cos(theta/2), sin(theta/2)*axis).
func FromAxisAngle(axis V3, theta float64) Q {
	half := theta * 0.5
	s := math.Sin(half)
	return Q{W: math.Cos(half), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// Mul returns the Hamilton product q * o.
func (q Q) Mul(o Q) Q {
	return Q{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Add returns the component-wise sum.
func (q Q) Add(o Q) Q {
	return Q{q.W + o.W, q.X + o.X, q.Y + o.Y, q.Z + o.Z}
}

// Scale returns q scaled by s.
func (q Q) Scale(s float64) Q {
	return Q{q.W * s, q.X * s, q.Y * s, q.Z * s}
}

// Conjugate returns the conjugate (w, -x, -y, -z).
func (q Q) Conjugate() Q {
	return Q{q.W, -q.X, -q.Y, -q.Z}
}

// MagnitudeSq returns the squared magnitude.
func (q Q) MagnitudeSq() float64 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

// Magnitude returns the magnitude.
func (q Q) Magnitude() float64 {
	return math.Sqrt(q.MagnitudeSq())
}

// IsZero reports whether q is exactly the zero quaternion. Per §4.1,
// Normalize returns the zero quaternion on zero magnitude input; callers
// must check IsZero before relying on the result as a rotation.
func (q Q) IsZero() bool {
	return q.W == 0 && q.X == 0 && q.Y == 0 && q.Z == 0
}

// Normalize returns q scaled to unit magnitude, or the zero quaternion if q
// has zero (or NaN) magnitude.
func (q Q) Normalize() Q {
	m := q.Magnitude()
	if !(m > 0) { // catches zero, NaN and negative-impossible cases uniformly
		return Q{}
	}
	return q.Scale(1 / m)
}

// RotateVector rotates v by q using v' = v + 2*qv x (qv x v + w*v), the
// vector part of q*[0,v]*q_conj without building the intermediate
// quaternions (§4.1).
func (q Q) RotateVector(v V3) V3 {
	qv := V3{q.X, q.Y, q.Z}
	t := qv.Cross(v).Add(v.Scale(q.W))
	return v.Add(qv.Cross(t).Scale(2))
}

// ToRotationMatrix converts q to its equivalent 3x3 rotation matrix.
func (q Q) ToRotationMatrix() M3 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return M3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// FromRotationMatrix recovers a unit quaternion from an orthonormal rotation
// matrix, using the standard trace-based branch selection for numerical
// stability. Round-trips ToRotationMatrix up to an overall sign (§8).
func FromRotationMatrix(r M3) Q {
	tr := r.M11 + r.M22 + r.M33
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		return Q{
			W: 0.25 * s,
			X: (r.M32 - r.M23) / s,
			Y: (r.M13 - r.M31) / s,
			Z: (r.M21 - r.M12) / s,
		}
	case r.M11 > r.M22 && r.M11 > r.M33:
		s := math.Sqrt(1+r.M11-r.M22-r.M33) * 2
		return Q{
			W: (r.M32 - r.M23) / s,
			X: 0.25 * s,
			Y: (r.M12 + r.M21) / s,
			Z: (r.M13 + r.M31) / s,
		}
	case r.M22 > r.M33:
		s := math.Sqrt(1+r.M22-r.M11-r.M33) * 2
		return Q{
			W: (r.M13 - r.M31) / s,
			X: (r.M12 + r.M21) / s,
			Y: 0.25 * s,
			Z: (r.M23 + r.M32) / s,
		}
	default:
		s := math.Sqrt(1+r.M33-r.M11-r.M22) * 2
		return Q{
			W: (r.M21 - r.M12) / s,
			X: (r.M13 + r.M31) / s,
			Y: (r.M23 + r.M32) / s,
			Z: 0.25 * s,
		}
	}
}

// Integrate advances q by angular velocity omega (rad/s, world frame) over
// dt using q_{k+1} = normalize(q_k + 0.5*(omega_quat * q_k)*dt), and
// re-normalizes per the orientation invariant (§4.1).
func (q Q) Integrate(omega V3, dt float64) Q {
	omegaQ := Q{W: 0, X: omega.X, Y: omega.Y, Z: omega.Z}
	derivative := omegaQ.Mul(q).Scale(0.5 * dt)
	next := q.Add(derivative).Normalize()
	if next.IsZero() {
		return q
	}
	return next
}

func (q Q) String() string {
	return fmt.Sprintf("Q(%.6g + %.6gi + %.6gj + %.6gk)", q.W, q.X, q.Y, q.Z)
}
