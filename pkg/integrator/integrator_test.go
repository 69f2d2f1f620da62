package integrator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bxrne/artidyn/pkg/integrator"
	"github.com/bxrne/artidyn/pkg/massprops"
	"github.com/bxrne/artidyn/pkg/model"
	"github.com/bxrne/artidyn/pkg/motor"
	"github.com/bxrne/artidyn/pkg/pose"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

func freeFallModel(t *testing.T) *model.Model {
	t.Helper()
	b := model.NewWorld("si", vecmath.V3{Y: -9.81})
	h := b.AddPrismatic(b.Root(), pose.Identity, vecmath.V3{Y: 1})
	b.SetMassProperties(h, massprops.FromSphere("si", 1, 0.01))
	b.SetMotor(h, motor.Constant(0))
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestStepper_RK4_MatchesExactQuadratic(t *testing.T) {
	b := model.NewWorld("si", vecmath.V3{})
	h := b.AddPrismatic(b.Root(), pose.Identity, vecmath.V3{X: 1})
	b.SetMassProperties(h, massprops.FromSphere("si", 1, 0.01))
	b.SetMotor(h, motor.Constant(5))
	m, err := b.Build()
	require.NoError(t, err)

	st := integrator.NewStepper(m.Topology, integrator.RK4)
	y := integrator.State{Q: []float64{0}, Qdot: []float64{0}}
	y, err = st.Step(0, y, 1.0)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, y.Q[0], 1e-9)
	assert.InDelta(t, 5, y.Qdot[0], 1e-9)
}

func TestStepper_EulerVsRK4_DisagreeOnConstantAcceleration(t *testing.T) {
	m := freeFallModel(t)
	rk4 := integrator.NewStepper(m.Topology, integrator.RK4)
	euler := integrator.NewStepper(m.Topology, integrator.Euler)

	y0 := integrator.State{Q: []float64{0}, Qdot: []float64{0}}
	rk4Out, err := rk4.Step(0, y0, 0.1)
	require.NoError(t, err)
	eulerOut, err := euler.Step(0, y0, 0.1)
	require.NoError(t, err)

	// Constant acceleration: both should agree on velocity, but Euler's
	// position update misses the half-step correction RK4 applies.
	assert.InDelta(t, rk4Out.Qdot[0], eulerOut.Qdot[0], 1e-9)
	assert.NotEqual(t, rk4Out.Q[0], eulerOut.Q[0])
}

func TestState_Clone_IsIndependent(t *testing.T) {
	s := integrator.State{Q: []float64{1, 2}, Qdot: []float64{3, 4}}
	clone := s.Clone()
	clone.Q[0] = 99
	assert.Equal(t, 1.0, s.Q[0])
}
