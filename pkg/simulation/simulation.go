// Package simulation owns a built Model's topology, its integration state,
// and its history, and drives it forward in time through a Stepper (§3 "Simulation
// state", §6 Simulation operations).
package simulation

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/bxrne/artidyn/pkg/dynamics"
	"github.com/bxrne/artidyn/pkg/integrator"
	"github.com/bxrne/artidyn/pkg/model"
)

// Lifecycle states, mirroring the build-once/run-many-times contract of a
// Simulation (§3, §9).
const (
	StateIdle      = "idle"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Sample is one recorded (t, q, qdot) entry in a Simulation's history.
type Sample struct {
	T    float64
	Q    []float64
	Qdot []float64
}

// Simulation drives a Model forward in time. Its scratch arrays (owned by
// the embedded Stepper) are allocated once at construction and reused
// across every integrate call, so steady-state stepping performs no
// allocation beyond the returned State and the appended history Sample
// (§5, §9).
type Simulation struct {
	model    *model.Model
	stepper  *integrator.Stepper
	lifecycle *fsm.FSM

	t       float64
	current integrator.State
	history []Sample

	initialQ    []float64
	initialQdot []float64
}

// New builds a Simulation for m using the given integration scheme
// (§6 build_simulation).
func New(m *model.Model, kind integrator.Kind) *Simulation {
	n := m.N()
	q0 := make([]float64, n)
	qd0 := make([]float64, n)
	for i, j := range m.Topology.Joints {
		q0[i] = j.InitialQ
		qd0[i] = j.InitialQdot
	}

	sim := &Simulation{
		model:       m,
		stepper:     integrator.NewStepper(m.Topology, kind),
		initialQ:    q0,
		initialQdot: qd0,
		lifecycle: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				{Name: "run", Src: []string{StateIdle, StateCompleted, StateFailed}, Dst: StateRunning},
				{Name: "complete", Src: []string{StateRunning}, Dst: StateCompleted},
				{Name: "fail", Src: []string{StateRunning}, Dst: StateFailed},
				{Name: "reset", Src: []string{StateIdle, StateRunning, StateCompleted, StateFailed}, Dst: StateIdle},
			},
			fsm.Callbacks{},
		),
	}
	sim.Reset()
	return sim
}

// Status returns the current lifecycle state.
func (s *Simulation) Status() string { return s.lifecycle.Current() }

// Time returns the current integration time (§6 sim.time()).
func (s *Simulation) Time() float64 { return s.t }

// Current returns the current (q, qdot) (§6 sim.current()). The returned
// slices are copies; mutating them does not affect the Simulation.
func (s *Simulation) Current() ([]float64, []float64) {
	c := s.current.Clone()
	return c.Q, c.Qdot
}

// History returns the recorded (t, q, qdot) samples (§6 sim.history()).
func (s *Simulation) History() []Sample { return s.history }

// Model returns the Model this Simulation drives.
func (s *Simulation) Model() *model.Model { return s.model }

// Reset returns the Simulation to its initial conditions and clears
// history, transitioning the lifecycle back to idle (§6 sim.reset()).
func (s *Simulation) Reset() {
	_ = s.lifecycle.Event(context.Background(), "reset")
	s.t = 0
	s.current = integrator.State{Q: cloneFloats(s.initialQ), Qdot: cloneFloats(s.initialQdot)}
	s.history = []Sample{{T: 0, Q: cloneFloats(s.initialQ), Qdot: cloneFloats(s.initialQdot)}}
}

// Integrate advances the simulation by one step of size dt, recording the
// resulting sample (§6 sim.integrate(dt)). On a dynamics failure (a
// singular joint, a dimensional mismatch), history is left unchanged at the
// current time and the error is returned (§7 propagation rule).
func (s *Simulation) Integrate(dt float64) error {
	if s.lifecycle.Current() != StateRunning {
		if err := s.lifecycle.Event(context.Background(), "run"); err != nil {
			return fmt.Errorf("simulation: cannot start integrating: %w", err)
		}
	}

	next, err := s.stepper.Step(s.t, s.current, dt)
	if err != nil {
		_ = s.lifecycle.Event(context.Background(), "fail")
		return err
	}

	s.t += dt
	s.current = next
	s.history = append(s.history, Sample{T: s.t, Q: cloneFloats(next.Q), Qdot: cloneFloats(next.Qdot)})
	return nil
}

// RunTo subdivides [current time, tEnd] into nSteps equal substeps and
// calls Integrate repeatedly, shortening the final substep so the last
// sample lands exactly at tEnd (§4.6, §6 sim.run_to).
func (s *Simulation) RunTo(tEnd float64, nSteps int) error {
	if nSteps <= 0 {
		return fmt.Errorf("simulation: run_to requires nSteps > 0, got %d", nSteps)
	}
	if err := s.lifecycle.Event(context.Background(), "run"); err != nil {
		return fmt.Errorf("simulation: cannot start run: %w", err)
	}

	dt := (tEnd - s.t) / float64(nSteps)
	for i := 0; i < nSteps; i++ {
		remaining := tEnd - s.t
		step := dt
		if i == nSteps-1 || step > remaining {
			step = remaining
		}
		if err := s.Integrate(step); err != nil {
			return err
		}
	}
	return s.lifecycle.Event(context.Background(), "complete")
}

func cloneFloats(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	return out
}

// KineticEnergy returns the total kinetic energy of m at generalized state
// (q, qdot): the sum over joints of 1/2 * v_i . p_i, where v_i is body
// spatial velocity and p_i its spatial momentum (§8 energy-conservation
// testable property). Generalized force plays no role in kinetic energy, so
// it is evaluated with zero tau.
func KineticEnergy(m *model.Model, q, qdot []float64) (float64, error) {
	n := m.N()
	scratch := dynamics.NewScratch(n)
	tau := make([]float64, n)
	if err := dynamics.Evaluate(m.Topology, q, qdot, tau, scratch); err != nil {
		return 0, err
	}

	var ke float64
	for i := 0; i < n; i++ {
		ke += 0.5 * scratch.VelocityAt(i).Dot(scratch.MomentumAt(i))
	}
	return ke, nil
}
