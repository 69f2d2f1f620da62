package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV3_Cross(t *testing.T) {
	x := V3{1, 0, 0}
	y := V3{0, 1, 0}
	z := x.Cross(y)
	assert.InDelta(t, 0, z.X, 1e-12)
	assert.InDelta(t, 0, z.Y, 1e-12)
	assert.InDelta(t, 1, z.Z, 1e-12)
}

func TestV3_Dot(t *testing.T) {
	a := V3{1, 2, 3}
	b := V3{4, 5, 6}
	assert.InDelta(t, 32, a.Dot(b), 1e-12)
}

func TestV3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   V3
		want V3
	}{
		{"unit x stays unit", V3{1, 0, 0}, V3{1, 0, 0}},
		{"scaled vector normalizes", V3{0, 3, 4}, V3{0, 0.6, 0.8}},
		{"zero vector returns zero", Zero, Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-12)
		})
	}
}

func TestV3_MomentTensor(t *testing.T) {
	v := V3{1, 0, 0}
	m := v.MomentTensor()
	// ||v||^2 * E - v*vT for v = (1,0,0) is diag(0, 1, 1).
	assert.InDelta(t, 0, m.M11, 1e-12)
	assert.InDelta(t, 1, m.M22, 1e-12)
	assert.InDelta(t, 1, m.M33, 1e-12)
}

func TestV3_Skew(t *testing.T) {
	v := V3{1, 2, 3}
	u := V3{4, 5, 6}
	skewed := v.Skew().MulV(u)
	crossed := v.Cross(u)
	assert.InDelta(t, crossed.X, skewed.X, 1e-12)
	assert.InDelta(t, crossed.Y, skewed.Y, 1e-12)
	assert.InDelta(t, crossed.Z, skewed.Z, 1e-12)
}

func TestV3_Norm(t *testing.T) {
	v := V3{3, 4, 0}
	assert.InDelta(t, 5, v.Norm(), 1e-12)
	assert.False(t, math.IsNaN(v.Norm()))
}

func TestV3_IsZero(t *testing.T) {
	assert.True(t, Zero.IsZero())
	assert.False(t, V3{0, 0, 1e-9}.IsZero())
}
