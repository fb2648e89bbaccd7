// Package viz renders trajectories in the terminal: static asciigraph plots
// and an interactive parameter explorer.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/eahenle/spudsim/internal/cannon"
	"github.com/eahenle/spudsim/internal/sweep"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// PlotSeries renders one series as an ASCII line chart.
func PlotSeries(vals []float64, caption string) string {
	if len(vals) < 2 {
		return fmt.Sprintf("(not enough samples for %s)", caption)
	}
	return asciigraph.Plot(vals,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotRun renders the four run series stacked vertically.
func PlotRun(res *cannon.Result) string {
	var b strings.Builder

	b.WriteString(PlotSeries(res.Trajectory.Positions(), "position (m)"))
	b.WriteString("\n\n")
	b.WriteString(PlotSeries(res.Trajectory.Velocities(), "velocity (m/s)"))
	b.WriteString("\n\n")
	b.WriteString(PlotSeries(res.Energy, "kinetic energy (J)"))
	b.WriteString("\n\n")
	b.WriteString(PlotSeries(res.Entropy, "entropy change (J/K)"))
	b.WriteString("\n")

	return b.String()
}

// PlotSweep renders muzzle velocity against the swept parameter.
func PlotSweep(res *sweep.Result) string {
	vals := make([]float64, len(res.Points))
	for i, pt := range res.Points {
		vals[i] = pt.MuzzleVelocity
	}
	caption := fmt.Sprintf("muzzle velocity (m/s) vs %s [%.4g .. %.4g]",
		res.Parameter, res.Points[0].Value, res.Points[len(res.Points)-1].Value)
	return PlotSeries(vals, caption)
}
