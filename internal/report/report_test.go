package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bxrne/artidyn/internal/report"
	"github.com/bxrne/artidyn/internal/storage"
	"github.com/bxrne/artidyn/pkg/massprops"
	"github.com/bxrne/artidyn/pkg/model"
	"github.com/bxrne/artidyn/pkg/motor"
	"github.com/bxrne/artidyn/pkg/pose"
	"github.com/bxrne/artidyn/pkg/simulation"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

func buildFreeFallModel(t *testing.T) *model.Model {
	t.Helper()
	b := model.NewWorld("si", vecmath.V3{})
	h := b.AddPrismatic(b.Root(), pose.Identity, vecmath.V3{X: 1})
	b.SetMassProperties(h, massprops.FromSphere("si", 1, 0.01))
	b.SetMotor(h, motor.Constant(0))
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestGenerator_Build_RendersPlotsAndProperties(t *testing.T) {
	m := buildFreeFallModel(t)

	history := []simulation.Sample{
		{T: 0, Q: []float64{0}, Qdot: []float64{1}},
		{T: 1, Q: []float64{1}, Qdot: []float64{1}},
	}

	dir := t.TempDir()
	gen, err := report.NewGenerator(nil, dir)
	require.NoError(t, err)

	data, err := gen.Build(m, storage.SimulationData{ModelName: "free-fall", NumJoints: 1, TEnd: 1, Steps: 2}, history)
	require.NoError(t, err)

	require.Len(t, data.Plots, 2) // one joint + energy
	require.Len(t, data.Properties, 1)
	assert.Equal(t, "energy-conservation", data.Properties[0].Name)
	assert.True(t, data.Properties[0].Passed)

	for _, p := range data.Plots {
		_, statErr := os.Stat(filepath.Join(dir, p.FileName))
		assert.NoError(t, statErr)
	}
}

func TestGenerator_Build_RejectsEmptyHistory(t *testing.T) {
	m := buildFreeFallModel(t)
	gen, err := report.NewGenerator(nil, t.TempDir())
	require.NoError(t, err)

	_, err = gen.Build(m, storage.SimulationData{}, nil)
	require.Error(t, err)
}

func TestRenderHTML_ContainsSummaryAndPlots(t *testing.T) {
	data := &report.ReportData{
		Summary: storage.SimulationData{ModelName: "pendulum", NumJoints: 1, Steps: 10, TEnd: 2},
		Plots:   []report.PlotInfo{{Title: "Joint 0 q(t)", FileName: "joint_0_position.svg"}},
		Properties: []report.TestableProperty{
			{Name: "energy-conservation", Passed: true, Detail: "ok"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.RenderHTML(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "pendulum")
	assert.Contains(t, out, "joint_0_position.svg")
	assert.Contains(t, out, "PASS")
}

func TestWriteHTMLFile_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	data := &report.ReportData{Summary: storage.SimulationData{ModelName: "test"}}

	path, err := report.WriteHTMLFile(dir, data)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
