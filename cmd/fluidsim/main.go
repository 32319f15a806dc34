package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Rrrinav/webgl-fluid-sim/internal/analysis"
	"github.com/Rrrinav/webgl-fluid-sim/internal/config"
	"github.com/Rrrinav/webgl-fluid-sim/internal/export"
	"github.com/Rrrinav/webgl-fluid-sim/internal/metrics"
	"github.com/Rrrinav/webgl-fluid-sim/internal/sim"
	"github.com/Rrrinav/webgl-fluid-sim/internal/solver"
	"github.com/Rrrinav/webgl-fluid-sim/internal/storage"
	"github.com/Rrrinav/webgl-fluid-sim/internal/viz"
)

var (
	dataDir       string
	gridSize      int
	dt            float64
	viscosity     float64
	iterations    int
	pressureIters int
	frames        int
	radius        float64
	strength      float64
	dirX          float64
	dirY          float64
	configFile    string
	preset        string
	frameRate     int
	themeName     string
	outputPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluidsim",
		Short: "2D incompressible fluid simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fluidsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation and save the result",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&themeName, "theme", "", "color theme")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's energy curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run's energy series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solver throughput",
		RunE:  benchSolver,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 60, "frames per configuration")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the velocity field to a PNG heat map",
		RunE:  snapshotField,
	}
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outputPath, "output", "o", "field.png", "output path")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			fmt.Println("presets:")
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, benchCmd,
		exportCSVCmd, exportJSONCmd, snapshotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridSize, "size", config.DefaultGridSize, "grid resolution (N x N)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&viscosity, "viscosity", config.DefaultViscosity, "kinematic viscosity")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "solver steps per frame")
	cmd.Flags().IntVar(&pressureIters, "pressure-iters", config.DefaultPressureIterations, "jacobi sweeps per projection")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "splat radius in cells")
	cmd.Flags().Float64Var(&strength, "strength", config.DefaultStrength, "splat strength")
	cmd.Flags().Float64Var(&dirX, "dir-x", 0, "splat direction x")
	cmd.Flags().Float64Var(&dirY, "dir-y", -1, "splat direction y")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the effective configuration: preset, then config
// file, then explicit CLI flags, later sources winning.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("size") {
		cfg.GridSize = gridSize
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("viscosity") {
		cfg.Viscosity = viscosity
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("pressure-iters") {
		cfg.PressureIterations = pressureIters
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}
	if cmd.Flags().Changed("radius") {
		cfg.Splat.Radius = radius
	}
	if cmd.Flags().Changed("strength") {
		cfg.Splat.Strength = strength
	}
	if cmd.Flags().Changed("dir-x") {
		cfg.Splat.DirX = dirX
	}
	if cmd.Flags().Changed("dir-y") {
		cfg.Splat.DirY = dirY
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRunner(cfg *config.Config) (*sim.Runner, *solver.Solver, error) {
	s, err := cfg.NewSolver()
	if err != nil {
		return nil, nil, err
	}

	runner := sim.New(s)
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewMaxSpeed())
	div, err := metrics.NewMeanDivergence(cfg.GridSize)
	if err != nil {
		return nil, nil, err
	}
	runner.AddMetric(div)

	return runner, s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner, _, err := newRunner(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %dx%d simulation for %d frames...\n", cfg.GridSize, cfg.GridSize, cfg.Frames)
	start := time.Now()

	result, err := runner.Run(context.Background(), cfg.Frames)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.GridSize, cfg.Params(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.FramesTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := cfg.NewSolver()
	if err != nil {
		return err
	}

	if themeName != "" {
		viz.SetTheme(themeName)
	} else if cfg.Theme != "" {
		viz.SetTheme(cfg.Theme)
	}

	m := viz.NewModel(s, cfg, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tDT\tVISC\tITERS\tP-ITERS\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2g\t%.2g\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridSize,
			run.Dt,
			run.Viscosity,
			run.Iterations,
			run.PressureIterations,
			run.Frames,
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

	_, energies, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(energies) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n", meta.GridSize, meta.GridSize)
	fmt.Printf("samples: %d\n\n", len(energies))

	graph := asciigraph.Plot(energies,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy vs frame"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, energies, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(energies) < 4 {
		return fmt.Errorf("not enough data to analyze")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(energies)
	plotData := ps[:len(ps)/4+1]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (energy)"),
	)
	fmt.Println(graph)
	fmt.Println()

	duration := times[len(times)-1] - times[0]
	freq := analysis.DominantFrequency(ps, duration)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	sizes := []int{64, 128, 256}
	sweeps := []int{10, 20, 40}

	fmt.Println("benchmarking solver")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tP-ITERS\tFRAMES\tTIME\tFRAMES/SEC")

	for _, size := range sizes {
		for _, sweepCount := range sweeps {
			cfg := config.DefaultConfig()
			cfg.GridSize = size
			cfg.PressureIterations = sweepCount
			cfg.Frames = frames
			cfg.Splat.Radius = float64(size) / 6

			runner, _, err := newRunner(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := runner.Run(context.Background(), cfg.Frames)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			framesPerSec := float64(result.FramesTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
				size, size, sweepCount, result.FramesTaken, elapsed.Round(time.Millisecond), framesPerSec)
		}
	}

	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, energies, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "energy"}); err != nil {
		return err
	}

	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(energies[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, energies, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, times, energies)
}

func snapshotField(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := cfg.NewSolver()
	if err != nil {
		return err
	}

	for i := 0; i < cfg.Frames; i++ {
		s.StepFrame()
	}

	velX, velY := s.Velocity()
	if err := export.WritePNG(outputPath, velX, velY); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d frames simulated)\n", outputPath, cfg.Frames)
	return nil
}
