package massprops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBox_UnitCube(t *testing.T) {
	mp := FromBox("si", 1, 1, 1, 1)
	assert.InDelta(t, 1, mp.Mass, 1e-12)
	assert.InDelta(t, 1.0/6, mp.InertiaCG.M11, 1e-12)
	assert.InDelta(t, 1.0/6, mp.InertiaCG.M22, 1e-12)
	assert.InDelta(t, 1.0/6, mp.InertiaCG.M33, 1e-12)
}

func TestFromSphere(t *testing.T) {
	mp := FromSphere("si", 5, 2)
	want := 2.0 / 5.0 * 5 * 4
	assert.InDelta(t, want, mp.InertiaCG.M11, 1e-9)
}

func TestFromCylinder(t *testing.T) {
	mp := FromCylinder("si", 1, 1, 2)
	assert.InDelta(t, 0.5, mp.InertiaCG.M33, 1e-12)
}

func TestFromMesh_OutOfScope(t *testing.T) {
	_, err := FromMesh(Mesh{}, 1, "si")
	require.Error(t, err)
}
