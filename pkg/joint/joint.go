// Package joint implements 1-DoF joint kinematics: the local step pose
// contributed by a coordinate, and the joint's spatial motion subspace in
// world frame (§4.3).
package joint

import (
	"github.com/EngoEngine/ecs"

	"github.com/bxrne/artidyn/pkg/massprops"
	"github.com/bxrne/artidyn/pkg/motor"
	"github.com/bxrne/artidyn/pkg/pose"
	"github.com/bxrne/artidyn/pkg/spatial"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

// Kind enumerates the supported 1-DoF joint kinds.
type Kind int

const (
	Revolute Kind = iota
	Prismatic
	Screw
)

func (k Kind) String() string {
	switch k {
	case Revolute:
		return "revolute"
	case Prismatic:
		return "prismatic"
	case Screw:
		return "screw"
	default:
		return "unknown"
	}
}

// Joint is a single degree-of-freedom joint: its kind, its fixed attachment
// relative to its parent, its mass properties, its initial conditions and
// its motor (§3). Handle is the ecs entity identity used to address this
// joint from outside the model, mirroring how the teacher tags kinematic
// state with ecs.BasicEntity.
type Joint struct {
	Handle ecs.BasicEntity

	Kind         Kind
	LocalOffset  pose.Pose
	LocalAxis    vecmath.V3 // must be unit length; topology.Validate checks this at Build time
	Pitch        float64    // 0 for Revolute, ignored (+Inf tag) for Prismatic
	MassProps    massprops.MassProps
	InitialQ     float64
	InitialQdot  float64
	Motor        motor.Motor
}

// New builds a Joint with a fresh ecs handle.
func New(kind Kind, localOffset pose.Pose, axis vecmath.V3, pitch float64, mp massprops.MassProps) Joint {
	return Joint{
		Handle:      ecs.NewBasic(),
		Kind:        kind,
		LocalOffset: localOffset,
		LocalAxis:   axis,
		Pitch:       pitch,
		MassProps:   mp,
		Motor:       motor.Constant(0),
	}
}

// LocalStep returns the local-frame pose contributed by coordinate q, to be
// composed onto the parent's world pose after the joint's fixed local
// offset (§4.3 step table).
func (j Joint) LocalStep(q float64) pose.Pose {
	switch j.Kind {
	case Revolute:
		return pose.Pose{
			Position:    vecmath.Zero,
			Orientation: vecmath.FromAxisAngle(j.LocalAxis, q),
		}
	case Prismatic:
		return pose.Pose{
			Position:    j.LocalAxis.Scale(q),
			Orientation: vecmath.IdentityQ,
		}
	case Screw:
		return pose.Pose{
			Position:    j.LocalAxis.Scale(q * j.Pitch),
			Orientation: vecmath.FromAxisAngle(j.LocalAxis, q),
		}
	default:
		return pose.Identity
	}
}

// MotionSubspace returns the spatial motion subspace vector s (a twist), in
// world frame, for a joint whose world-frame top pose is worldPose (§4.3):
//
//	Revolute:  s = (p x axis_world,               axis_world)
//	Screw:     s = (pitch*axis_world + p x axis_world, axis_world)
//	Prismatic: s = (axis_world,                    0)
func (j Joint) MotionSubspace(worldPose pose.Pose) spatial.Vec6 {
	axisWorld := worldPose.Orientation.RotateVector(j.LocalAxis)
	p := worldPose.Position
	switch j.Kind {
	case Revolute:
		return spatial.Vec6{Linear: p.Cross(axisWorld), Angular: axisWorld}
	case Screw:
		return spatial.Vec6{
			Linear:  axisWorld.Scale(j.Pitch).Add(p.Cross(axisWorld)),
			Angular: axisWorld,
		}
	case Prismatic:
		return spatial.Vec6{Linear: axisWorld, Angular: vecmath.Zero}
	default:
		return spatial.Zero6
	}
}
