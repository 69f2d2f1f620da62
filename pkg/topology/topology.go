// Package topology represents a rooted tree of joints flattened into
// parallel arrays indexed in topological order, the shape the dynamics core
// sweeps over (§3, §9).
package topology

import (
	"github.com/bxrne/artidyn/pkg/dynerrors"
	"github.com/bxrne/artidyn/pkg/joint"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

// Topology is the frozen, flattened tree: joints in topological order
// (parent strictly before any child), a parent index per joint (-1 for the
// world/ground), a children list per joint, and the world-frame gravity
// vector.
type Topology struct {
	Joints   []joint.Joint
	Parent   []int
	Children [][]int
	Gravity  vecmath.V3
}

const axisUnitTolerance = 1e-8

// Validate checks the structural invariants of §3/§7: parent indices refer
// only to earlier joints (or -1 for ground), and every joint axis is unit
// length. It returns every violation found, not just the first, so the
// caller can aggregate them with multierr.
func Validate(joints []joint.Joint, parent []int) []error {
	var errs []error
	n := len(joints)
	if len(parent) != n {
		errs = append(errs, dynerrors.NewStructural(-1, "parent array length does not match joint count"))
		return errs
	}
	for i, j := range joints {
		p := parent[i]
		if p < -1 || p >= i {
			errs = append(errs, dynerrors.NewStructural(i, "parent index must be -1 or a strictly earlier joint (cycle or dangling parent)"))
		}
		axisLen := j.LocalAxis.Norm()
		if axisLen == 0 {
			errs = append(errs, dynerrors.NewStructural(i, "joint axis has zero length"))
		} else if diff := axisLen - 1; diff > axisUnitTolerance || diff < -axisUnitTolerance {
			errs = append(errs, dynerrors.NewStructural(i, "joint axis is not unit length"))
		}
	}
	return errs
}

// Build assembles a Topology from joints already placed in topological
// order with validated parent indices, deriving the children lists by a
// single forward scan.
func Build(joints []joint.Joint, parent []int, gravity vecmath.V3) Topology {
	children := make([][]int, len(joints))
	for i, p := range parent {
		if p >= 0 {
			children[p] = append(children[p], i)
		}
	}
	return Topology{
		Joints:   joints,
		Parent:   parent,
		Children: children,
		Gravity:  gravity,
	}
}

// N returns the number of joints.
func (t Topology) N() int { return len(t.Joints) }
