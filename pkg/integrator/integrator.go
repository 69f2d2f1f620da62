// Package integrator advances simulation state forward in time by
// repeatedly evaluating the dynamics core's rate function (§4.6).
package integrator

import (
	"github.com/bxrne/artidyn/pkg/dynamics"
	"github.com/bxrne/artidyn/pkg/topology"
)

// Kind selects the integration scheme.
type Kind int

const (
	RK4 Kind = iota
	Euler
)

// State is the simulation state vector Y = (q, qdot).
type State struct {
	Q    []float64
	Qdot []float64
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	q := make([]float64, len(s.Q))
	copy(q, s.Q)
	qd := make([]float64, len(s.Qdot))
	copy(qd, s.Qdot)
	return State{Q: q, Qdot: qd}
}

// Derivative is Ydot = (qdot, qddot(t, q, qdot, tau(t,q,qdot))), the rate
// function of §4.6. It evaluates each joint's motor, then the three-pass
// dynamics core, reusing scratch.
func Derivative(top topology.Topology, t float64, y State, scratch *dynamics.Scratch, tau []float64) (State, error) {
	for i, j := range top.Joints {
		tau[i] = j.Motor.Tau(t, y.Q[i], y.Qdot[i])
	}
	if err := dynamics.Evaluate(top, y.Q, y.Qdot, tau, scratch); err != nil {
		return State{}, err
	}
	qddot := scratch.QddotOf()
	out := State{Q: make([]float64, len(y.Q)), Qdot: make([]float64, len(y.Qdot))}
	copy(out.Q, y.Qdot)
	copy(out.Qdot, qddot)
	return out, nil
}

// Stepper advances one State forward by a fixed time step, reusing owned
// scratch so steady-state stepping performs no dynamic allocation beyond
// the small per-call State values returned from Derivative.
type Stepper struct {
	Kind     Kind
	Topology topology.Topology
	Scratch  *dynamics.Scratch

	// tau is reused across Step calls and every Derivative call within one
	// step; Scratch is likewise overwritten by every Derivative call, which
	// is safe because each stage's result is copied into a fresh State.
	tau []float64
}

// NewStepper builds a Stepper for the given topology and integration kind.
func NewStepper(top topology.Topology, kind Kind) *Stepper {
	n := top.N()
	return &Stepper{
		Kind:     kind,
		Topology: top,
		Scratch:  dynamics.NewScratch(n),
		tau:      make([]float64, n),
	}
}

// Step advances y by dt at time t, returning the new state. Reused motor
// instances satisfy the pure-function contract of §4.7, which is what lets
// RK4 safely evaluate the rate function four times per step.
func (st *Stepper) Step(t float64, y State, dt float64) (State, error) {
	switch st.Kind {
	case Euler:
		return st.stepEuler(t, y, dt)
	default:
		return st.stepRK4(t, y, dt)
	}
}

func (st *Stepper) stepEuler(t float64, y State, dt float64) (State, error) {
	k1, err := Derivative(st.Topology, t, y, st.Scratch, st.tau)
	if err != nil {
		return State{}, err
	}
	return axpy(y, k1, dt), nil
}

func (st *Stepper) stepRK4(t float64, y State, dt float64) (State, error) {
	k1, err := Derivative(st.Topology, t, y, st.Scratch, st.tau)
	if err != nil {
		return State{}, err
	}
	k2, err := Derivative(st.Topology, t+dt/2, axpy(y, k1, dt/2), st.Scratch, st.tau)
	if err != nil {
		return State{}, err
	}
	k3, err := Derivative(st.Topology, t+dt/2, axpy(y, k2, dt/2), st.Scratch, st.tau)
	if err != nil {
		return State{}, err
	}
	k4, err := Derivative(st.Topology, t+dt, axpy(y, k3, dt), st.Scratch, st.tau)
	if err != nil {
		return State{}, err
	}

	n := len(y.Q)
	out := State{Q: make([]float64, n), Qdot: make([]float64, n)}
	for i := 0; i < n; i++ {
		out.Q[i] = y.Q[i] + dt/6*(k1.Q[i]+2*k2.Q[i]+2*k3.Q[i]+k4.Q[i])
		out.Qdot[i] = y.Qdot[i] + dt/6*(k1.Qdot[i]+2*k2.Qdot[i]+2*k3.Qdot[i]+k4.Qdot[i])
	}
	return out, nil
}

// axpy returns y + dt*k.
func axpy(y, k State, dt float64) State {
	n := len(y.Q)
	out := State{Q: make([]float64, n), Qdot: make([]float64, n)}
	for i := 0; i < n; i++ {
		out.Q[i] = y.Q[i] + dt*k.Q[i]
		out.Qdot[i] = y.Qdot[i] + dt*k.Qdot[i]
	}
	return out
}
