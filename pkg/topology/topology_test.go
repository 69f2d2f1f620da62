package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bxrne/artidyn/pkg/joint"
	"github.com/bxrne/artidyn/pkg/massprops"
	"github.com/bxrne/artidyn/pkg/pose"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

func sampleJoint() joint.Joint {
	return joint.New(joint.Revolute, pose.Identity, vecmath.V3{Z: 1}, 0, massprops.Zero)
}

func TestValidate_AcceptsValidChain(t *testing.T) {
	joints := []joint.Joint{sampleJoint(), sampleJoint(), sampleJoint()}
	parent := []int{-1, 0, 1}
	errs := Validate(joints, parent)
	assert.Empty(t, errs)
}

func TestValidate_RejectsDanglingParent(t *testing.T) {
	joints := []joint.Joint{sampleJoint(), sampleJoint()}
	parent := []int{-1, 5}
	errs := Validate(joints, parent)
	require.Len(t, errs, 1)
}

func TestValidate_RejectsSelfOrForwardParent(t *testing.T) {
	joints := []joint.Joint{sampleJoint(), sampleJoint()}
	parent := []int{-1, 1} // joint 1 claims itself as parent
	errs := Validate(joints, parent)
	require.Len(t, errs, 1)
}

func TestValidate_RejectsZeroLengthAxis(t *testing.T) {
	j := joint.New(joint.Revolute, pose.Identity, vecmath.V3{}, 0, massprops.Zero)
	errs := Validate([]joint.Joint{j}, []int{-1})
	require.Len(t, errs, 1)
}

func TestBuild_DerivesChildren(t *testing.T) {
	joints := []joint.Joint{sampleJoint(), sampleJoint(), sampleJoint(), sampleJoint()}
	parent := []int{-1, 0, 0, 2}
	top := Build(joints, parent, vecmath.V3{Y: -9.81})

	assert.ElementsMatch(t, []int{1, 2}, top.Children[0])
	assert.ElementsMatch(t, []int{3}, top.Children[2])
	assert.Empty(t, top.Children[1])
	assert.Equal(t, 4, top.N())
}
