// Package model implements the builder/immutable-model split called for in
// the design notes: ModelBuilder mutates freely while assembling a tree of
// joints; Build freezes it into a Model that Simulation consumes (§6, §9).
package model

import (
	"math"

	"github.com/EngoEngine/ecs"
	"go.uber.org/multierr"

	"github.com/bxrne/artidyn/pkg/joint"
	"github.com/bxrne/artidyn/pkg/massprops"
	"github.com/bxrne/artidyn/pkg/motor"
	"github.com/bxrne/artidyn/pkg/pose"
	"github.com/bxrne/artidyn/pkg/topology"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

// Handle addresses a joint added to a ModelBuilder. It is the index the
// joint will occupy in the built Model's arrays, plus the joint's ecs
// identity for external bookkeeping.
type Handle struct {
	Index  int
	Entity ecs.BasicEntity
}

// ModelBuilder accumulates joints before the tree is frozen into a Model.
// Joints must be added parent-before-child; every AddXxx call appends to
// the end of the joint list, so the array index order is already the
// topological order the dynamics core requires.
type ModelBuilder struct {
	units    string
	gravity  vecmath.V3
	joints   []joint.Joint
	parent   []int
}

// NewWorld starts a ModelBuilder in the given unit system with the supplied
// world-frame gravity vector (§6 new_world).
func NewWorld(units string, gravity vecmath.V3) *ModelBuilder {
	return &ModelBuilder{units: units, gravity: gravity}
}

// add stores axis exactly as given, unnormalized: a non-unit axis is a
// modeling mistake topology.Validate must catch at Build time (§7), not
// something the builder silently corrects.
func (b *ModelBuilder) add(kind joint.Kind, parent Handle, isRoot bool, localOffset pose.Pose, axis vecmath.V3, pitch float64) Handle {
	j := joint.New(kind, localOffset, axis, pitch, massprops.MassProps{UnitSystem: b.units})
	idx := len(b.joints)
	b.joints = append(b.joints, j)
	if isRoot {
		b.parent = append(b.parent, -1)
	} else {
		b.parent = append(b.parent, parent.Index)
	}
	return Handle{Index: idx, Entity: j.Handle}
}

// rootHandle is the sentinel handle meaning "attach to the world/ground".
var rootHandle = Handle{Index: -1}

// Root returns the handle representing the world/ground, to be passed as
// the parent of a base joint.
func (b *ModelBuilder) Root() Handle { return rootHandle }

// AddRevolute adds a revolute joint with the given parent handle, local
// offset, and rotation axis (§6 add_revolute).
func (b *ModelBuilder) AddRevolute(parent Handle, localOffset pose.Pose, axis vecmath.V3) Handle {
	return b.add(joint.Revolute, parent, parent == rootHandle, localOffset, axis, 0)
}

// AddPrismatic adds a prismatic joint (§6 add_prismatic). Pitch is stored as
// +Inf per §3's tag convention, though it is never read for this kind.
func (b *ModelBuilder) AddPrismatic(parent Handle, localOffset pose.Pose, axis vecmath.V3) Handle {
	return b.add(joint.Prismatic, parent, parent == rootHandle, localOffset, axis, math.Inf(1))
}

// AddScrew adds a screw joint with the given pitch (translation per radian)
// (§6 add_screw).
func (b *ModelBuilder) AddScrew(parent Handle, localOffset pose.Pose, axis vecmath.V3, pitch float64) Handle {
	return b.add(joint.Screw, parent, parent == rootHandle, localOffset, axis, pitch)
}

// SetMassProperties assigns mass properties to a previously added joint
// (§6 set_mass_properties).
func (b *ModelBuilder) SetMassProperties(h Handle, mp massprops.MassProps) {
	if mp.UnitSystem == "" {
		mp.UnitSystem = b.units
	}
	b.joints[h.Index].MassProps = mp
}

// SetMotor assigns a motor to a previously added joint (§6 set_motor).
func (b *ModelBuilder) SetMotor(h Handle, m motor.Motor) {
	b.joints[h.Index].Motor = m
}

// SetInitialConditions assigns the initial coordinate and velocity for a
// joint (§6 set_initial_conditions).
func (b *ModelBuilder) SetInitialConditions(h Handle, q0, qdot0 float64) {
	b.joints[h.Index].InitialQ = q0
	b.joints[h.Index].InitialQdot = qdot0
}

// Model is a frozen, validated tree of joints ready to drive a Simulation.
// It is immutable: every field is a copy taken at Build time.
type Model struct {
	Units    string
	Topology topology.Topology
}

// Build validates the accumulated joints and freezes them into a Model.
// Every structural problem found (cycles, dangling parents, invalid axes)
// is aggregated into a single returned error via multierr, rather than
// stopping at the first.
func (b *ModelBuilder) Build() (*Model, error) {
	parentCopy := make([]int, len(b.parent))
	copy(parentCopy, b.parent)

	var errs error
	for _, e := range topology.Validate(b.joints, parentCopy) {
		errs = multierr.Append(errs, e)
	}
	if errs != nil {
		return nil, errs
	}

	jointsCopy := make([]joint.Joint, len(b.joints))
	copy(jointsCopy, b.joints)

	return &Model{
		Units:    b.units,
		Topology: topology.Build(jointsCopy, parentCopy, b.gravity),
	}, nil
}

// N returns the number of joints in the model.
func (m *Model) N() int { return m.Topology.N() }
