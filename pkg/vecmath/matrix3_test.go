package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestM3_MulV_Identity(t *testing.T) {
	v := V3{1, 2, 3}
	got := Identity3.MulV(v)
	assert.InDelta(t, v.X, got.X, 1e-12)
	assert.InDelta(t, v.Y, got.Y, 1e-12)
	assert.InDelta(t, v.Z, got.Z, 1e-12)
}

func TestM3_Mul_Associativity(t *testing.T) {
	a := M3{1, 2, 0, 0, 1, 3, 4, 0, 1}
	b := Identity3.Scale(2)
	c := RowsM3(V3{1, 0, 0}, V3{0, 0, 1}, V3{0, 1, 0})

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))

	assertM3Close(t, left, right, 1e-9)
}

func TestM3_TryInvert(t *testing.T) {
	t.Run("invertible matrix round-trips", func(t *testing.T) {
		m := M3{2, 0, 0, 0, 3, 0, 0, 0, 4}
		inv, ok := m.TryInvert()
		assert.True(t, ok)
		assertM3Close(t, m.Mul(inv), Identity3, 1e-9)
	})

	t.Run("singular matrix fails", func(t *testing.T) {
		m := M3{1, 2, 3, 2, 4, 6, 1, 1, 1}
		_, ok := m.TryInvert()
		assert.False(t, ok)
	})
}

func TestM3_Transpose(t *testing.T) {
	m := M3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	tr := m.Transpose()
	assert.InDelta(t, m.M12, tr.M21, 1e-12)
	assert.InDelta(t, m.M13, tr.M31, 1e-12)
	assert.InDelta(t, m.M23, tr.M32, 1e-12)
}

func TestM3_WorldFrom(t *testing.T) {
	// Rotating an isotropic tensor by any rotation leaves it unchanged.
	isotropic := Identity3.Scale(5)
	q := FromAxisAngle(V3{0, 0, 1}, 1.2345)
	r := q.ToRotationMatrix()
	rotated := isotropic.WorldFrom(r)
	assertM3Close(t, isotropic, rotated, 1e-9)
}

func assertM3Close(t *testing.T, a, b M3, tol float64) {
	t.Helper()
	assert.InDelta(t, a.M11, b.M11, tol)
	assert.InDelta(t, a.M12, b.M12, tol)
	assert.InDelta(t, a.M13, b.M13, tol)
	assert.InDelta(t, a.M21, b.M21, tol)
	assert.InDelta(t, a.M22, b.M22, tol)
	assert.InDelta(t, a.M23, b.M23, tol)
	assert.InDelta(t, a.M31, b.M31, tol)
	assert.InDelta(t, a.M32, b.M32, tol)
	assert.InDelta(t, a.M33, b.M33, tol)
}
