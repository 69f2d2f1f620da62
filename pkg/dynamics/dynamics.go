// Package dynamics implements the three-pass articulated-body algorithm
// that is the core of this engine (§4.5): a forward kinematic sweep, a
// backward articulated-inertia/bias assembly, and a forward acceleration
// propagation.
package dynamics

import (
	"github.com/bxrne/artidyn/pkg/dynerrors"
	"github.com/bxrne/artidyn/pkg/massprops"
	"github.com/bxrne/artidyn/pkg/pose"
	"github.com/bxrne/artidyn/pkg/spatial"
	"github.com/bxrne/artidyn/pkg/topology"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

const singularEps = 1e-12

// Scratch holds the per-joint working arrays the three passes read and
// write, sized once for a topology and reused across every call (§4.5, §5,
// §9): the rate function is called four times per RK4 step and must not
// allocate.
type Scratch struct {
	n int

	worldPose []pose.Pose
	cg        []vecmath.V3
	s         []spatial.Vec6 // motion subspace, twist
	v         []spatial.Vec6 // body velocity, twist
	kappa     []spatial.Vec6 // bias acceleration, twist
	spi       []spatial.M66  // spatial inertia
	momentum  []spatial.Vec6 // wrench
	bias      []spatial.Vec6 // bias force, wrench
	weight    []spatial.Vec6 // weight wrench

	articulatedInertia []spatial.M66
	articulatedBias    []spatial.Vec6 // wrench

	accel    []spatial.Vec6 // body spatial acceleration, twist
	reaction []spatial.Vec6 // joint reaction wrench

	qddot []float64
}

// NewScratch allocates a Scratch sized for n joints.
func NewScratch(n int) *Scratch {
	return &Scratch{
		n:                  n,
		worldPose:          make([]pose.Pose, n),
		cg:                 make([]vecmath.V3, n),
		s:                  make([]spatial.Vec6, n),
		v:                  make([]spatial.Vec6, n),
		kappa:              make([]spatial.Vec6, n),
		spi:                make([]spatial.M66, n),
		momentum:           make([]spatial.Vec6, n),
		bias:               make([]spatial.Vec6, n),
		weight:             make([]spatial.Vec6, n),
		articulatedInertia: make([]spatial.M66, n),
		articulatedBias:    make([]spatial.Vec6, n),
		accel:              make([]spatial.Vec6, n),
		reaction:           make([]spatial.Vec6, n),
		qddot:              make([]float64, n),
	}
}

// QddotOf returns the last computed generalized acceleration array. The
// caller must not retain it across another call to Evaluate.
func (s *Scratch) QddotOf() []float64 { return s.qddot }

// ReactionAt returns the joint reaction wrench computed for joint i by the
// last Evaluate call: Iᴬ[i]*a[i] + pᴬ[i], which at a correct solution
// satisfies s[i] . ReactionAt(i) == tau[i] (§4.5 Pass 3, §8 Pass-3 balance).
func (s *Scratch) ReactionAt(i int) spatial.Vec6 { return s.reaction[i] }

// MotionSubspaceAt returns joint i's motion subspace vector s, as computed
// by the last Evaluate call's Pass 1.
func (s *Scratch) MotionSubspaceAt(i int) spatial.Vec6 { return s.s[i] }

// VelocityAt returns joint i's body spatial velocity (a twist), as computed
// by the last Evaluate call's Pass 1.
func (s *Scratch) VelocityAt(i int) spatial.Vec6 { return s.v[i] }

// MomentumAt returns joint i's body spatial momentum (a wrench), as
// computed by the last Evaluate call's Pass 1.
func (s *Scratch) MomentumAt(i int) spatial.Vec6 { return s.momentum[i] }

// Evaluate runs the three-pass algorithm for the given topology, filling
// Scratch.qddot with the resulting generalized accelerations. q, qdot, tau
// must each have length topology.N(); a length mismatch is a
// DimensionalError. A joint whose projected articulated inertia vanishes
// (J_i <= eps) is a SingularJointError, raised from whichever pass hits it
// first.
func Evaluate(top topology.Topology, q, qdot, tau []float64, s *Scratch) error {
	n := top.N()
	if s.n != n {
		return &dynerrors.DimensionalError{Field: "scratch", Got: s.n, Expected: n}
	}
	if len(q) != n {
		return &dynerrors.DimensionalError{Field: "q", Got: len(q), Expected: n}
	}
	if len(qdot) != n {
		return &dynerrors.DimensionalError{Field: "qdot", Got: len(qdot), Expected: n}
	}
	if len(tau) != n {
		return &dynerrors.DimensionalError{Field: "tau", Got: len(tau), Expected: n}
	}

	pass1(top, q, qdot, s)
	if err := pass2(top, tau, s); err != nil {
		return err
	}
	if err := pass3(top, tau, s); err != nil {
		return err
	}
	return nil
}

func pass1(top topology.Topology, q, qdot []float64, s *Scratch) {
	for i := 0; i < top.N(); i++ {
		j := top.Joints[i]

		var basePose pose.Pose
		var baseVel spatial.Vec6
		if p := top.Parent[i]; p >= 0 {
			basePose = s.worldPose[p]
			baseVel = s.v[p]
		} else {
			basePose = pose.Identity
			baseVel = spatial.Zero6
		}

		s.worldPose[i] = basePose.Compose(j.LocalOffset).Compose(j.LocalStep(q[i])).Normalized()
		s.cg[i] = s.worldPose[i].Position.Add(s.worldPose[i].Orientation.RotateVector(j.MassProps.CG))

		worldRot := s.worldPose[i].Orientation.ToRotationMatrix()
		worldInertia := massprops.WorldInertiaAtCG(j.MassProps.InertiaCG, worldRot)

		s.s[i] = j.MotionSubspace(s.worldPose[i])
		jointContribution := s.s[i].Scale(qdot[i])
		s.v[i] = baseVel.Add(jointContribution)
		s.kappa[i] = spatial.CrossTwistTwist(s.v[i], jointContribution)

		s.spi[i] = massprops.SpatialInertia(j.MassProps.Mass, worldInertia, s.cg[i])
		s.momentum[i] = s.spi[i].MulVec(s.v[i])
		s.bias[i] = spatial.CrossTwistWrench(s.v[i], s.momentum[i])
		s.weight[i] = massprops.WeightWrench(j.MassProps.Mass, s.cg[i], top.Gravity)
	}
}

func pass2(top topology.Topology, tau []float64, s *Scratch) error {
	for i := top.N() - 1; i >= 0; i-- {
		s.articulatedInertia[i] = s.spi[i]
		s.articulatedBias[i] = s.bias[i].Sub(s.weight[i])

		for _, c := range top.Children[i] {
			l := s.articulatedInertia[c].MulVec(s.s[c])
			j := s.s[c].Dot(l)
			if j > -singularEps && j < singularEps {
				return &dynerrors.SingularJointError{JointIndex: c, J: j, Pass: 2}
			}
			t := l.Scale(1 / j)

			projector := spatial.Identity66.Sub(spatial.Outer(t, s.s[c]))
			s.articulatedInertia[i] = s.articulatedInertia[i].Add(projector.Mul(s.articulatedInertia[c]))

			childTerm := s.articulatedInertia[c].MulVec(s.kappa[c]).Add(s.articulatedBias[c])
			s.articulatedBias[i] = s.articulatedBias[i].
				Add(t.Scale(tau[c])).
				Add(projector.MulVec(childTerm))
		}
	}
	return nil
}

func pass3(top topology.Topology, tau []float64, s *Scratch) error {
	// Gravity already enters through the weight wrench folded into the
	// articulated bias in Pass 2, so the base is seeded with zero acceleration.
	gAccel := spatial.Vec6{}

	for i := 0; i < top.N(); i++ {
		var aParent spatial.Vec6
		if p := top.Parent[i]; p >= 0 {
			aParent = s.accel[p]
		} else {
			aParent = gAccel
		}

		aP := aParent.Add(s.kappa[i])
		l := s.articulatedInertia[i].MulVec(s.s[i])
		j := s.s[i].Dot(l)
		if j > -singularEps && j < singularEps {
			return &dynerrors.SingularJointError{JointIndex: i, J: j, Pass: 3}
		}

		rhs := s.articulatedInertia[i].MulVec(aP).Add(s.articulatedBias[i])
		s.qddot[i] = (tau[i] - s.s[i].Dot(rhs)) / j

		s.accel[i] = s.s[i].Scale(s.qddot[i]).Add(aP)
		s.reaction[i] = s.articulatedInertia[i].MulVec(s.accel[i]).Add(s.articulatedBias[i])
	}
	return nil
}
