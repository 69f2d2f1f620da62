package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bxrne/artidyn/pkg/integrator"
	"github.com/bxrne/artidyn/pkg/massprops"
	"github.com/bxrne/artidyn/pkg/model"
	"github.com/bxrne/artidyn/pkg/motor"
	"github.com/bxrne/artidyn/pkg/pose"
	"github.com/bxrne/artidyn/pkg/simulation"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

func buildFreeFall(t *testing.T) *model.Model {
	t.Helper()
	b := model.NewWorld("si", vecmath.V3{Y: -9.81})
	h := b.AddPrismatic(b.Root(), pose.Identity, vecmath.V3{Y: 1})
	b.SetMassProperties(h, massprops.FromSphere("si", 1, 0.01))
	b.SetMotor(h, motor.Constant(0))
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestSimulation_RunTo_LandsExactlyAtTEnd(t *testing.T) {
	m := buildFreeFall(t)
	sim := simulation.New(m, integrator.RK4)

	require.NoError(t, sim.RunTo(1.0, 20))
	assert.InDelta(t, 1.0, sim.Time(), 1e-12)

	q, qdot := sim.Current()
	assert.InDelta(t, -4.905, q[0], 1e-6)
	assert.InDelta(t, -9.81, qdot[0], 1e-6)
	assert.Equal(t, simulation.StateCompleted, sim.Status())
}

func TestSimulation_History_RecordsEverySample(t *testing.T) {
	m := buildFreeFall(t)
	sim := simulation.New(m, integrator.RK4)
	require.NoError(t, sim.RunTo(1.0, 10))
	assert.Len(t, sim.History(), 11) // initial sample plus 10 steps
}

func TestSimulation_Reset_IsDeterministic(t *testing.T) {
	m := buildFreeFall(t)
	sim := simulation.New(m, integrator.RK4)

	require.NoError(t, sim.RunTo(1.0, 37))
	first := sim.History()

	sim.Reset()
	assert.Equal(t, simulation.StateIdle, sim.Status())
	require.NoError(t, sim.RunTo(1.0, 37))
	second := sim.History()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].T, second[i].T)
		assert.Equal(t, first[i].Q, second[i].Q)
		assert.Equal(t, first[i].Qdot, second[i].Qdot)
	}
}

func TestSimulation_RunTo_RejectsNonPositiveSteps(t *testing.T) {
	m := buildFreeFall(t)
	sim := simulation.New(m, integrator.RK4)
	require.Error(t, sim.RunTo(1.0, 0))
}

func TestKineticEnergy_ZeroAtRest(t *testing.T) {
	m := buildFreeFall(t)
	ke, err := simulation.KineticEnergy(m, []float64{0}, []float64{0})
	require.NoError(t, err)
	assert.InDelta(t, 0, ke, 1e-12)
}

func TestKineticEnergy_PositiveWhenMoving(t *testing.T) {
	m := buildFreeFall(t)
	ke, err := simulation.KineticEnergy(m, []float64{0}, []float64{3})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, ke, 1e-9) // 1/2 * 1kg * 3^2
}
