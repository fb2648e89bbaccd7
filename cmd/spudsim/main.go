package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/eahenle/spudsim/internal/cannon"
	"github.com/eahenle/spudsim/internal/config"
	"github.com/eahenle/spudsim/internal/dynamo"
	"github.com/eahenle/spudsim/internal/integrators"
	"github.com/eahenle/spudsim/internal/metrics"
	"github.com/eahenle/spudsim/internal/report"
	"github.com/eahenle/spudsim/internal/sim"
	"github.com/eahenle/spudsim/internal/storage"
	"github.com/eahenle/spudsim/internal/sweep"
	"github.com/eahenle/spudsim/internal/viz"
)

var (
	dataDir string
	// Scenario flags, in the engineering units of the config file
	massG      float64
	diameterMM float64
	barrelCM   float64
	tankL      float64
	tankAtm    float64
	ambientAtm float64
	tMax       float64
	tolerance  float64
	infinite   bool
	configFile string
	preset     string
	label      string
	// sweep flags
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
	htmlOut     string
	// compare flags
	compareDt float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spudsim",
		Short: "pneumatic potato cannon simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive explorer when no command given
			return viz.RunInteractive(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spudsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "run", "label for the stored run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	reportCmd := &cobra.Command{
		Use:   "report [run_id]",
		Short: "render a stored run as an HTML report",
		Args:  cobra.ExactArgs(1),
		RunE:  reportRun,
	}
	reportCmd.Flags().StringVar(&htmlOut, "out", "report.html", "output HTML path")

	sweepCmd := &cobra.Command{
		Use:   "sweep [parameter]",
		Short: "sweep one physical parameter (SI units)",
		Long:  "sweep one of: mass, diameter, barrel, tank_volume, tank_pressure, ambient_pressure",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "sweep start (SI)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "sweep end (SI)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "grid points")
	sweepCmd.Flags().StringVar(&htmlOut, "out", "", "optional HTML report path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive parameter explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg)
		},
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare fixed-step integrators on the same scenario",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)
	compareCmd.Flags().Float64Var(&compareDt, "dt", 1e-5, "fixed timestep")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, reportCmd, sweepCmd, liveCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&massG, "mass", 100, "projectile mass [g]")
	cmd.Flags().Float64Var(&diameterMM, "diameter", 40, "bore diameter [mm]")
	cmd.Flags().Float64Var(&barrelCM, "barrel", 100, "barrel length [cm]")
	cmd.Flags().Float64Var(&tankL, "tank", 10, "tank volume [L]")
	cmd.Flags().Float64Var(&tankAtm, "pressure", 2, "tank pressure [atm]")
	cmd.Flags().Float64Var(&ambientAtm, "ambient", 1, "ambient pressure [atm]")
	cmd.Flags().Float64Var(&tMax, "time", config.DefaultTMax, "integration window [s]")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTol, "solver tolerance")
	cmd.Flags().BoolVar(&infinite, "infinite", false, "disable barrel-exit truncation")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario")
}

// resolveConfig layers the scenario sources: preset, then config file, then
// explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mass") {
		cfg.MassGrams = massG
	}
	if cmd.Flags().Changed("diameter") {
		cfg.BoreDiameterMM = diameterMM
	}
	if cmd.Flags().Changed("barrel") {
		cfg.BarrelLengthCM = barrelCM
	}
	if cmd.Flags().Changed("tank") {
		cfg.TankLiters = tankL
	}
	if cmd.Flags().Changed("pressure") {
		cfg.TankAtm = tankAtm
	}
	if cmd.Flags().Changed("ambient") {
		cfg.AmbientAtm = ambientAtm
	}
	if cmd.Flags().Changed("time") {
		cfg.TMax = tMax
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("infinite") {
		cfg.InfiniteBarrel = infinite
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	p := cfg.ToPhysical()
	opts := cfg.ToOptions()
	opts.Metrics = []dynamo.Metric{
		metrics.NewMuzzleEnergy(p.Mass),
		metrics.NewPeakVelocity(),
		metrics.NewBarrelTime(p.BarrelLength),
	}

	fmt.Println("running cannon simulation...")
	start := time.Now()

	result, err := cannon.Simulate(context.Background(), p, opts)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(label, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Trajectory))
	fmt.Printf("muzzle velocity: %.3f m/s\n", result.Summary.MuzzleVelocity)
	fmt.Printf("exit time: %.5f s\n", result.Summary.ExitTime)
	fmt.Printf("muzzle energy: %.3f J\n", result.Summary.MuzzleEnergy)
	fmt.Printf("final pressure: %.0f Pa\n", result.Summary.FinalPressure)
	if !result.Summary.Exited && !opts.InfiniteBarrel {
		fmt.Println("note: projectile did not reach the muzzle in the window")
	}
	if result.Summary.PressureWarning {
		fmt.Println("warning: final pressure below ambient, projectile may stall")
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tV_MUZZLE\tT_EXIT\tEXITED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f m/s\t%.5fs\t%v\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Summary.MuzzleVelocity,
			run.Summary.ExitTime,
			run.Summary.Exited,
		)
	}

	return w.Flush()
}

// loadResult rebuilds a cannon.Result from a stored run.
func loadResult(st *storage.Store, runID string) (*cannon.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	tr, energy, entropy, err := st.LoadSeries(runID)
	if err != nil {
		return nil, err
	}
	return &cannon.Result{
		Params:     meta.Params,
		Options:    meta.Options,
		Trajectory: tr,
		Energy:     energy,
		Entropy:    entropy,
		Summary:    meta.Summary,
		Metrics:    meta.Metrics,
	}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	res, err := loadResult(st, args[0])
	if err != nil {
		return err
	}

	if len(res.Trajectory) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("samples: %d\n\n", len(res.Trajectory))
	fmt.Println(viz.PlotRun(res))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, energy, entropy, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	if len(tr) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "velocity", "energy", "entropy"}); err != nil {
		return err
	}

	for i, s := range tr {
		row := []string{
			strconv.FormatFloat(s.T, 'g', 12, 64),
			strconv.FormatFloat(s.X, 'g', 12, 64),
			strconv.FormatFloat(s.V, 'g', 12, 64),
			strconv.FormatFloat(energy[i], 'g', 12, 64),
			strconv.FormatFloat(entropy[i], 'g', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, energy, entropy, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	out := struct {
		*storage.RunMetadata
		Trajectory cannon.Trajectory `json:"trajectory"`
		Energy     []float64         `json:"energy"`
		Entropy    []float64         `json:"entropy"`
	}{meta, tr, energy, entropy}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func reportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	res, err := loadResult(st, args[0])
	if err != nil {
		return err
	}

	if err := report.WriteFile(htmlOut, res); err != nil {
		return err
	}
	fmt.Printf("report written to %s\n", htmlOut)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepFrom >= sweepTo {
		return fmt.Errorf("sweep range must satisfy from < to")
	}

	s := sweep.New(cfg.ToPhysical(), cfg.ToOptions())
	res, err := s.Run(context.Background(), args[0], sweepFrom, sweepTo, sweepPoints)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotSweep(res))
	fmt.Printf("\nmean muzzle velocity: %.3f m/s (std %.3f)\n", res.MeanVelocity, res.StdVelocity)
	fmt.Printf("best: %.3f m/s at %s = %.6g\n", res.Best.MuzzleVelocity, res.Parameter, res.Best.Value)

	if htmlOut != "" {
		if err := report.WriteSweepFile(htmlOut, res); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", htmlOut)
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	p := cfg.ToPhysical()
	if err := p.Validate(); err != nil {
		return err
	}

	fmt.Printf("comparing integrators (dt=%.2e, window=%.3fs)\n\n", compareDt, cfg.TMax)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_X\tFINAL_V\tSTEPS\tTIME")

	for _, name := range args {
		integ, err := integrators.Get(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		solver := sim.New(cannon.NewCannon(p), integ)
		runCfg := dynamo.DefaultConfig()
		runCfg.Adaptive = false
		runCfg.Dt = compareDt
		runCfg.Duration = cfg.TMax

		start := time.Now()
		result, err := solver.Run(context.Background(), dynamo.State{0, 0}, runCfg)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		final := result.States[len(result.States)-1]
		fmt.Fprintf(w, "%s\t%.6f\t%.4f\t%d\t%v\n",
			name, final[0], final[1], result.StepsTaken, elapsed)
	}

	return w.Flush()
}
