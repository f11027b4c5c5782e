package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springsim/internal/anim"
	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/metrics"
	"github.com/san-kum/springsim/internal/node"
	"github.com/san-kum/springsim/internal/reference"
	"github.com/san-kum/springsim/internal/sim"
	"github.com/san-kum/springsim/internal/storage"
	"github.com/san-kum/springsim/internal/viz"
	"github.com/spf13/cobra"
)

// main registers the springsim commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "springsim",
		Short:         "spring animation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a spring animation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runAnimation,
	}
	addSpringFlags(runCmd)
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "step on the wall clock instead of a synthetic one")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&plotVelocity, "velocity", false, "plot velocity instead of value")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&phasePlot, "phase", false, "plot velocity against value")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a spring animation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSpringFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare steppers and a reference spring on the same configuration",
		Args:  cobra.NoArgs,
		RunE:  compareSteppers,
	}
	addSpringFlags(compareCmd)

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file from flags or a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addSpringFlags(initCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd, compareCmd, initCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runAnimation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := node.New(cfg.FromValue)
	a := anim.New(cfg.Anim(), out)
	r := sim.New(a, out)
	for _, m := range metrics.Default(a.Params()) {
		r.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	var result *dynamo.Result
	if realtime {
		result, err = r.RunRealtime(ctx, cfg.Sim())
	} else {
		result, err = r.Run(ctx, cfg.Sim())
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runInfo(cfg), result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("model: %s (%s)\n", cfg.Model(), stepperName(cfg))
	fmt.Printf("frames: %d  loops: %d  finished: %v\n", result.Frames, result.Loops, result.Finished)
	fmt.Printf("final value: %.6f\n", result.Last().Value)
	fmt.Printf("wall time: %s\n", elapsed.Round(time.Microsecond))
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println()
	return printMetrics(result.Metrics)
}

func runInfo(cfg *config.Config) storage.RunInfo {
	return storage.RunInfo{
		Name:       cfg.Name,
		Model:      cfg.Model(),
		FPS:        cfg.FPS,
		Duration:   cfg.Duration,
		Iterations: cfg.Iterations,
		ClassicRK4: cfg.ClassicRK4,
		Params:     cfg.Params(),
	}
}

func stepperName(cfg *config.Config) string {
	if cfg.Anim().Kind() == anim.ModelDHO {
		return "closed form"
	}
	if cfg.ClassicRK4 {
		return "classic rk4"
	}
	return "midpoint rk4"
}

func printMetrics(m map[string]float64) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, m[name])
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tNAME\tMODEL\tTIME\tFPS\tFRAMES\tLOOPS\tFINISHED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%v\n",
			run.ID,
			run.Name,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.FPS,
			run.Frames,
			run.Loops,
			run.Finished,
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

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	data := make([]float64, len(samples))
	caption := "value"
	for i, s := range samples {
		data[i] = s.Value
		if plotVelocity {
			data[i] = s.Velocity
		}
	}
	if plotVelocity {
		caption = "velocity"
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s  frames: %d  loops: %d\n\n", meta.Model, meta.Frames, meta.Loops)

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s over %.2fs", caption, samples[len(samples)-1].Time)),
	)
	fmt.Println(graph)
	fmt.Println()

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.WriteSamplesCSV(os.Stdout, samples)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := storage.WriteSamplesCSV(f, samples); err != nil {
		return err
	}
	fmt.Printf("wrote %d samples to %s\n", len(samples), outFile)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	points := storage.ValuePoints(samples)
	if phasePlot {
		points = storage.PhasePoints(samples)
	}

	if outFile == "" {
		return storage.WriteSVG(os.Stdout, points, 800, 400, "#00ff9f")
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return storage.WriteSVG(f, points, 800, 400, "#00ff9f")
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Anim(), cfg.FromValue, cfg.FPS, cfg.Name)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

type comparison struct {
	name   string
	values []float64
	result *dynamo.Result
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	variants := []*config.Config{cfg}
	if cfg.Anim().Kind() == anim.ModelRK4 {
		other := cfg.Clone()
		other.ClassicRK4 = !cfg.ClassicRK4
		variants = append(variants, other)
	}

	jobs := make([]sim.Job, 0, len(variants))
	for _, v := range variants {
		ac := v.Anim()
		jobs = append(jobs, sim.Job{
			Name: stepperName(v),
			Build: func() (sim.Animation, dynamo.Sink) {
				out := node.New(cfg.FromValue)
				return anim.New(ac, out), out
			},
			Metrics: func() []dynamo.Metric {
				p, _ := ac.Resolve(cfg.FromValue)
				return metrics.Default(p)
			},
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := sim.NewEnsemble(jobs...).Run(ctx, cfg.Sim())
	if err != nil {
		return err
	}

	rows := make([]comparison, 0, len(results)+1)
	for i, res := range results {
		rows = append(rows, comparison{name: jobs[i].Name, values: res.Values(), result: res})
	}

	params, err := cfg.Anim().Resolve(cfg.FromValue)
	if err != nil {
		return err
	}
	if ref, err := reference.FromParams(params, cfg.FPS); err == nil {
		rows = append(rows, comparison{
			name:   "harmonica",
			values: ref.Trajectory(len(rows[0].values) - 1),
		})
	} else {
		fmt.Printf("reference spring unavailable: %v\n", err)
	}

	fmt.Printf("comparing steppers for %s (fps=%d, duration=%.1fs)\n\n", cfg.Name, cfg.FPS, cfg.Duration)
	fmt.Printf("%-14s  %-10s  %-12s  %-12s  %-12s\n", "stepper", "frames", "settle_s", "overshoot", "max_dev")
	fmt.Println(strings.Repeat("-", 68))

	base := rows[0].values
	for _, row := range rows {
		frames, settle, overshoot := "-", "-", "-"
		if row.result != nil {
			frames = fmt.Sprintf("%d", row.result.Frames)
			settle = fmt.Sprintf("%.4f", row.result.Metrics["settle_time"])
			overshoot = fmt.Sprintf("%.4f", row.result.Metrics["peak_overshoot"])
		}
		fmt.Printf("%-14s  %-10s  %-12s  %-12s  %12.3e\n", row.name, frames, settle, overshoot, reference.MaxDeviation(base, row.values))
	}

	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s config to %s\n", cfg.Model(), args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	models := config.ListModels()
	if len(args) == 1 {
		models = args[:1]
	}

	for _, m := range models {
		presets := config.ListPresets(m)
		if len(presets) == 0 {
			fmt.Printf("no presets for model: %s\n", m)
			continue
		}
		fmt.Printf("presets for %s:\n", m)
		for _, p := range presets {
			cfg := config.GetPreset(m, p)
			fmt.Printf("  %-12s %s\n", p, describe(cfg))
		}
	}
	return nil
}

func describe(cfg *config.Config) string {
	params := cfg.Params()
	switch cfg.Model() {
	case "dho":
		return fmt.Sprintf("stiffness=%g damping=%g mass=%g", params["stiffness"], params["damping"], params["mass"])
	default:
		return fmt.Sprintf("tension=%g friction=%g", params["tension"], params["friction"])
	}
}
