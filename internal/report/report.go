// Package report renders a completed run's recorded history into a
// human-readable summary: per-joint trajectory and kinetic-energy plots
// (plot.go) embedded in an HTML page (template.go), adapting the teacher's
// reporting pipeline (plot generation feeding a template renderer) to this
// engine's history instead of flight telemetry.
package report

import (
	"fmt"
	"os"

	"github.com/zerodha/logf"

	"github.com/bxrne/artidyn/internal/storage"
	"github.com/bxrne/artidyn/pkg/model"
	"github.com/bxrne/artidyn/pkg/simulation"
)

// TestableProperty is one of the §8 invariants a run can be checked
// against, with a pass/fail verdict computed from its recorded history.
type TestableProperty struct {
	Name   string
	Passed bool
	Detail string
}

// ReportData is everything a rendered report needs: the run's summary
// metadata, its recorded samples, the generated plot file names, and the
// outcome of the testable-property checks.
type ReportData struct {
	Summary    storage.SimulationData
	History    []simulation.Sample
	Plots      []PlotInfo
	Properties []TestableProperty
}

// PlotInfo names a generated plot asset for embedding in a report.
type PlotInfo struct {
	Title    string
	FileName string
}

// Generator builds ReportData from a run and renders it to disk.
type Generator struct {
	log       *logf.Logger
	assetsDir string
}

// NewGenerator returns a Generator that writes plot assets under assetsDir,
// creating the directory if it does not already exist.
func NewGenerator(log *logf.Logger, assetsDir string) (*Generator, error) {
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return nil, fmt.Errorf("report: failed to create assets directory %s: %w", assetsDir, err)
	}
	return &Generator{log: log, assetsDir: assetsDir}, nil
}

// Build assembles ReportData for a completed run: it renders per-joint
// trajectory and kinetic-energy plots, then checks the §8
// energy-conservation testable property against the recorded history.
func (g *Generator) Build(m *model.Model, summary storage.SimulationData, history []simulation.Sample) (*ReportData, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("report: cannot build from empty history")
	}

	energy, err := kineticEnergySeries(m, history)
	if err != nil {
		return nil, fmt.Errorf("report: failed to evaluate kinetic energy: %w", err)
	}

	plots, err := g.generatePlots(history, energy, summary.NumJoints)
	if err != nil {
		return nil, fmt.Errorf("report: failed to generate plots: %w", err)
	}

	return &ReportData{
		Summary:    summary,
		History:    history,
		Plots:      plots,
		Properties: checkEnergyDrift(energy),
	}, nil
}

func kineticEnergySeries(m *model.Model, history []simulation.Sample) ([]float64, error) {
	energy := make([]float64, len(history))
	for i, sample := range history {
		ke, err := simulation.KineticEnergy(m, sample.Q, sample.Qdot)
		if err != nil {
			return nil, err
		}
		energy[i] = ke
	}
	return energy, nil
}

// checkEnergyDrift reports the relative drift between the first and last
// recorded kinetic energy samples (§8 energy-conservation testable
// property). Large drift signals a model driven by motors or gravity,
// where conservation does not apply, rather than a defect; callers are
// expected to only trust this check for motor-free, gravity-free models.
func checkEnergyDrift(energy []float64) []TestableProperty {
	first := energy[0]
	last := energy[len(energy)-1]

	drift := 0.0
	if first > 1e-12 {
		drift = (last - first) / first
	}

	return []TestableProperty{
		{
			Name:   "energy-conservation",
			Passed: drift > -0.01 && drift < 0.01,
			Detail: fmt.Sprintf("relative kinetic energy drift = %.6f", drift),
		},
	}
}
