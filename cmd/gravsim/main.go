package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/integrate"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	dt         float64
	steps      int
	gConst     float64
	epsilon    float64
	integName  string
	configFile string
	preset     string
	outPath    string
	fps        int
	gifSize    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "gravitational n-body merge simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log merge events")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and persist its history",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot trajectories and the energy curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run history as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectory and energy SVGs",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	gifCmd := &cobra.Command{
		Use:   "gif [run_id]",
		Short: "render run history as an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  exportGIF,
	}
	gifCmd.Flags().StringVar(&outPath, "out", "", "output file (default <run_id>.gif)")
	gifCmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	gifCmd.Flags().IntVar(&gifSize, "size", 480, "image size in pixels")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the engine across body counts and timesteps",
		RunE:  benchEngine,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, gifCmd, liveCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "tick count")
	cmd.Flags().Float64Var(&gConst, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&epsilon, "eps", config.DefaultEpsilon, "regularization/merge threshold")
	cmd.Flags().StringVar(&integName, "integrator", "leapfrog", "integrator (leapfrog, euler)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")
}

// buildConfig layers preset, config file and explicit flags, flags winning.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("g") {
		cfg.G = gConst
	}
	if cmd.Flags().Changed("eps") {
		cfg.Epsilon = epsilon
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := integrate.New(cfg.Integrator)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(integ)
	s.AddMetric(metrics.NewEnergyDrift(cfg.Params()))
	s.AddMetric(metrics.NewMomentumDrift())
	s.AddMetric(metrics.NewBodyCount())

	runCfg := sim.Config{
		Params:        cfg.Params(),
		Dt:            cfg.Dt,
		Steps:         cfg.Steps,
		ValidateState: true,
	}

	fmt.Printf("running %d bodies for %d steps...\n", len(cfg.Bodies), cfg.Steps)
	start := time.Now()

	result, err := s.Run(context.Background(), cfg.InitialBodies(), runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	name := "run"
	if preset != "" {
		name = preset
	}
	runID, err := st.Save(name, cfg.Integrator, runCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("merges: %d\n", result.Merges)
	fmt.Printf("bodies: %d -> %d\n", result.States[0].N(), result.FinalBodies().N())
	fmt.Printf("energy: %.4f -> %.4f (drift %.2e)\n",
		result.Energies[0], result.Energies[len(result.Energies)-1], result.EnergyDrift())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	for _, runErr := range result.Errors {
		fmt.Printf("warning: %v\n", runErr)
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
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tDT\tG\tBODIES\tMERGES\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.2f\t%d->%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.G,
			run.BodiesIn,
			run.BodiesOut,
			run.Merges,
			run.Integrator,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	energies, err := st.LoadEnergies(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d -> %d, merges: %d\n\n", meta.BodiesIn, meta.BodiesOut, meta.Merges)

	fmt.Println(viz.TrajectoryPlot(states, 80, 24))
	fmt.Println(viz.EnergyPlot(energies, 80, 10))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	energies, err := st.LoadEnergies(runID)
	if err != nil {
		return err
	}

	if outPath == "" {
		return export.WriteJSON(os.Stdout, meta.G, meta.Epsilon, meta.Dt, meta.Integrator, states, times, energies)
	}
	if err := export.ExportJSON(outPath, meta.G, meta.Epsilon, meta.Dt, meta.Integrator, states, times, energies); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	states, _, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	energies, err := st.LoadEnergies(runID)
	if err != nil {
		return err
	}

	trajPath := runID + "_trajectories.svg"
	if err := os.WriteFile(trajPath, []byte(export.TrajectoriesToSVG(states, 800, 800)), 0644); err != nil {
		return err
	}
	energyPath := runID + "_energy.svg"
	if err := os.WriteFile(energyPath, []byte(export.EnergyToSVG(energies, 800, 300)), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s and %s\n", trajPath, energyPath)
	return nil
}

func exportGIF(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	states, _, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = runID + ".gif"
	}

	if err := export.HistoryGIF(path, states, gifSize, fps); err != nil {
		// Animation export is presentation-only, so a failure is a warning.
		fmt.Printf("warning: gif export failed: %v\n", err)
		fmt.Printf("try 'gravsim export-svg %s' for a static rendering\n", runID)
		return nil
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := integrate.New(cfg.Integrator)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, integ)
}

func benchEngine(cmd *cobra.Command, args []string) error {
	counts := []int{3, 8, 32, 64}
	dts := []float64{0.001, 0.01}
	benchSteps := 2000

	integ := integrate.NewLeapfrog()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, stepDt := range dts {
			b := ringBodies(n)
			runCfg := sim.Config{
				Params:        sim.DefaultConfig().Params,
				Dt:            stepDt,
				Steps:         benchSteps,
				ValidateState: false,
			}

			start := time.Now()
			result, err := sim.New(integ).Run(context.Background(), b, runCfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.4f\t%d\t%v\t%.0f\n",
				n, stepDt, result.StepsTaken, elapsed,
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

// ringBodies places n unit masses on a circle with tangential velocities.
func ringBodies(n int) body.Bodies {
	b := body.New(n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		pos := body.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
		vel := body.Vec2{X: -math.Sin(angle) * 0.5, Y: math.Cos(angle) * 0.5}
		b.Append(1.0, pos, vel)
	}
	return b
}
