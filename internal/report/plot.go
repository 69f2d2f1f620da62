package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/bxrne/artidyn/pkg/simulation"
)

// generatePlots renders one q(t) vs. time SVG per joint plus one kinetic
// energy vs. time SVG, saving each under the Generator's assets directory.
// Per-joint plots are independent of one another, so they render
// concurrently; the energy plot is appended last to keep Plots ordering
// stable regardless of goroutine scheduling.
func (g *Generator) generatePlots(history []simulation.Sample, energy []float64, numJoints int) ([]PlotInfo, error) {
	jointPlots := make([]PlotInfo, numJoints)

	var eg errgroup.Group
	for j := 0; j < numJoints; j++ {
		j := j
		eg.Go(func() error {
			info, err := g.generateJointPlot(history, j)
			if err != nil {
				return err
			}
			jointPlots[j] = info
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	energyPlot, err := g.generateEnergyPlot(history, energy)
	if err != nil {
		return nil, err
	}

	return append(jointPlots, energyPlot), nil
}

func (g *Generator) generateJointPlot(history []simulation.Sample, joint int) (PlotInfo, error) {
	pts := make(plotter.XYs, len(history))
	for i, sample := range history {
		pts[i].X = sample.T
		pts[i].Y = sample.Q[joint]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Joint %d position", joint)
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "q"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return PlotInfo{}, fmt.Errorf("failed to create line plotter: %w", err)
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)

	fileName := fmt.Sprintf("joint_%d_position.svg", joint)
	plotPath := filepath.Join(g.assetsDir, fileName)
	if err := p.Save(4*vg.Inch, 4*vg.Inch, plotPath); err != nil {
		return PlotInfo{}, fmt.Errorf("failed to save plot %s: %w", plotPath, err)
	}
	if g.log != nil {
		g.log.Info("generated joint position plot", "joint", joint, "path", plotPath)
	}

	return PlotInfo{Title: fmt.Sprintf("Joint %d q(t)", joint), FileName: fileName}, nil
}

func (g *Generator) generateEnergyPlot(history []simulation.Sample, energy []float64) (PlotInfo, error) {
	pts := make(plotter.XYs, len(history))
	for i, sample := range history {
		pts[i].X = sample.T
		pts[i].Y = energy[i]
	}

	p := plot.New()
	p.Title.Text = "Kinetic energy"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Energy (J)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return PlotInfo{}, fmt.Errorf("failed to create line plotter: %w", err)
	}
	line.Color = color.RGBA{R: 200, A: 255}
	p.Add(line)

	fileName := "kinetic_energy.svg"
	plotPath := filepath.Join(g.assetsDir, fileName)
	if err := p.Save(4*vg.Inch, 4*vg.Inch, plotPath); err != nil {
		return PlotInfo{}, fmt.Errorf("failed to save plot %s: %w", plotPath, err)
	}
	if g.log != nil {
		g.log.Info("generated kinetic energy plot", "path", plotPath)
	}

	return PlotInfo{Title: "Kinetic energy", FileName: fileName}, nil
}
