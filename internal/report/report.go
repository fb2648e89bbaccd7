// Package report renders simulation output as self-contained HTML pages
// built with go-echarts.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/eahenle/spudsim/internal/cannon"
	"github.com/eahenle/spudsim/internal/sweep"
)

func timeAxis(tr cannon.Trajectory) []string {
	xs := make([]string, len(tr))
	for i, s := range tr {
		xs[i] = fmt.Sprintf("%.5f", s.T)
	}
	return xs
}

func lineData(vals []float64) []opts.LineData {
	data := make([]opts.LineData, len(vals))
	for i, v := range vals {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func newLine(title, subtitle, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, NameLocation: "middle", NameGap: 45}),
	)
	return line
}

// Render writes a full run report: position, velocity, kinetic energy and
// entropy change against time.
func Render(w io.Writer, res *cannon.Result) error {
	if len(res.Trajectory) == 0 {
		return fmt.Errorf("report: empty trajectory")
	}

	axis := timeAxis(res.Trajectory)
	subtitle := fmt.Sprintf("muzzle velocity %.2f m/s, exit time %.4f s",
		res.Summary.MuzzleVelocity, res.Summary.ExitTime)

	position := newLine("Projectile Position", subtitle, "x (m)")
	position.SetXAxis(axis).AddSeries("position", lineData(res.Trajectory.Positions()),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	velocity := newLine("Projectile Velocity", subtitle, "v (m/s)")
	velocity.SetXAxis(axis).AddSeries("velocity", lineData(res.Trajectory.Velocities()),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	energy := newLine("Kinetic Energy", subtitle, "U (J)")
	energy.SetXAxis(axis).AddSeries("energy", lineData(res.Energy),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	entropy := newLine("Entropy Change", subtitle, "dS (J/K)")
	entropy.SetXAxis(axis).AddSeries("entropy", lineData(res.Entropy),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	page := components.NewPage()
	page.PageTitle = "Pneumatic Cannon Run"
	page.AddCharts(position, velocity, energy, entropy)

	return page.Render(w)
}

// RenderSweep writes a sweep report: muzzle velocity and energy against the
// swept parameter value.
func RenderSweep(w io.Writer, res *sweep.Result) error {
	if len(res.Points) == 0 {
		return fmt.Errorf("report: empty sweep")
	}

	axis := make([]string, len(res.Points))
	velocities := make([]opts.LineData, len(res.Points))
	energies := make([]opts.LineData, len(res.Points))
	for i, pt := range res.Points {
		axis[i] = fmt.Sprintf("%.4g", pt.Value)
		velocities[i] = opts.LineData{Value: pt.MuzzleVelocity}
		energies[i] = opts.LineData{Value: pt.MuzzleEnergy}
	}

	subtitle := fmt.Sprintf("mean %.2f m/s, best %.2f m/s at %s = %.4g",
		res.MeanVelocity, res.Best.MuzzleVelocity, res.Parameter, res.Best.Value)

	velocity := newLine("Muzzle Velocity vs "+res.Parameter, subtitle, "v (m/s)")
	velocity.SetXAxis(axis).AddSeries("muzzle velocity", velocities)

	energy := newLine("Muzzle Energy vs "+res.Parameter, subtitle, "U (J)")
	energy.SetXAxis(axis).AddSeries("muzzle energy", energies)

	page := components.NewPage()
	page.PageTitle = "Pneumatic Cannon Sweep"
	page.AddCharts(velocity, energy)

	return page.Render(w)
}

// WriteFile renders a run report to the given path.
func WriteFile(path string, res *cannon.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Render(f, res)
}

// WriteSweepFile renders a sweep report to the given path.
func WriteSweepFile(path string, res *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return RenderSweep(f, res)
}
