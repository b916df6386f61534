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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/tirelab/tiresim/internal/automation"
	"github.com/tirelab/tiresim/internal/config"
	"github.com/tirelab/tiresim/internal/experiment"
	"github.com/tirelab/tiresim/internal/export"
	"github.com/tirelab/tiresim/internal/profile"
	"github.com/tirelab/tiresim/internal/storage"
	"github.com/tirelab/tiresim/internal/tire"
	"github.com/tirelab/tiresim/internal/viz"
)

var (
	dataDir string
	mu      float64
	ck      float64
	speed   float64
	// sweep
	loads    []float64
	kappaMin float64
	kappaMax float64
	points   int
	// trace
	duration  float64
	steps     int
	fz        float64
	profName  string
	kappaPeak float64
	rampTime  float64
	stepTime  float64
	amplitude float64
	frequency float64
	// config file / preset
	configFile string
	preset     string
	// export-svg
	svgX   string
	svgY   string
	svgOut string
)

// main registers the tiresim commands. With no subcommand both experiments
// run with the calibration defaults, mirroring a plain invocation of the lab.
func main() {
	rootCmd := &cobra.Command{
		Use:   "tiresim",
		Short: "tire slip force and energy dissipation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runSweep(cmd, args); err != nil {
				return err
			}
			fmt.Println()
			return runTrace(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tiresim", "data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep slip ratio across normal loads",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&loads, "loads", []float64{600, 900, 1200}, "normal loads (N)")
	sweepCmd.Flags().Float64Var(&kappaMin, "kappa-min", config.DefaultKappaMin, "sweep lower slip bound")
	sweepCmd.Flags().Float64Var(&kappaMax, "kappa-max", config.DefaultKappaMax, "sweep upper slip bound")
	sweepCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "sweep grid points")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run a time-domain slip profile",
		RunE:  runTrace,
	}
	addModelFlags(traceCmd)
	addProfileFlags(traceCmd)
	traceCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	traceCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view of a slip profile",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	addProfileFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run channels",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one run channel against another as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgX, "x", "kappa", "channel for the x axis")
	exportSVGCmd.Flags().StringVar(&svgY, "y", "", "channel for the y axis")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets [profile]",
		Short: "list preset scenarios for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for profile: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(sweepCmd, traceCmd, liveCmd, listCmd, plotCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "peak friction coefficient")
	cmd.Flags().Float64Var(&ck, "ck", config.DefaultCk, "longitudinal stiffness (N per unit slip)")
	cmd.Flags().Float64Var(&speed, "v", config.DefaultV, "forward speed (m/s)")
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "time grid points")
	cmd.Flags().Float64Var(&fz, "fz", config.DefaultTraceFz, "normal load (N)")
	cmd.Flags().StringVar(&profName, "profile", "ramp", "slip profile (ramp, step, sine, constant)")
	cmd.Flags().Float64Var(&kappaPeak, "kappa-peak", config.DefaultRampMax, "profile peak slip ratio")
	cmd.Flags().Float64Var(&rampTime, "ramp-time", config.DefaultRampTime, "ramp duration (s)")
	cmd.Flags().Float64Var(&stepTime, "step-time", 1.0, "step onset time (s)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 0.1, "sine amplitude")
	cmd.Flags().Float64Var(&frequency, "frequency", 1.0, "sine frequency (hz)")
}

// applyConfig overlays file values onto flags the user did not set, matching
// the precedence preset < file < explicit flag.
func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("mu") {
		mu = cfg.Mu
	}
	if !cmd.Flags().Changed("ck") {
		ck = cfg.Ck
	}
	if !cmd.Flags().Changed("v") {
		speed = cfg.V
	}
	if f := cmd.Flags().Lookup("loads"); f != nil && !f.Changed {
		loads = cfg.Loads
	}
	if f := cmd.Flags().Lookup("kappa-min"); f != nil && !f.Changed {
		kappaMin = cfg.Sweep.KappaMin
	}
	if f := cmd.Flags().Lookup("kappa-max"); f != nil && !f.Changed {
		kappaMax = cfg.Sweep.KappaMax
	}
	if f := cmd.Flags().Lookup("points"); f != nil && !f.Changed {
		points = cfg.Sweep.Points
	}
	if f := cmd.Flags().Lookup("time"); f != nil && !f.Changed {
		duration = cfg.Trace.Duration
	}
	if f := cmd.Flags().Lookup("steps"); f != nil && !f.Changed {
		steps = cfg.Trace.Steps
	}
	if f := cmd.Flags().Lookup("fz"); f != nil && !f.Changed {
		fz = cfg.Trace.Fz
	}
	if f := cmd.Flags().Lookup("profile"); f != nil && !f.Changed && cfg.Trace.Profile != "" {
		profName = cfg.Trace.Profile
	}
	if f := cmd.Flags().Lookup("kappa-peak"); f != nil && !f.Changed && cfg.Trace.KappaMax != 0 {
		kappaPeak = cfg.Trace.KappaMax
	}
	if f := cmd.Flags().Lookup("ramp-time"); f != nil && !f.Changed && cfg.Trace.RampTime != 0 {
		rampTime = cfg.Trace.RampTime
	}
	if f := cmd.Flags().Lookup("step-time"); f != nil && !f.Changed && cfg.Trace.StepTime != 0 {
		stepTime = cfg.Trace.StepTime
	}
	if f := cmd.Flags().Lookup("amplitude"); f != nil && !f.Changed && cfg.Trace.Amplitude != 0 {
		amplitude = cfg.Trace.Amplitude
	}
	if f := cmd.Flags().Lookup("frequency"); f != nil && !f.Changed && cfg.Trace.Frequency != 0 {
		frequency = cfg.Trace.Frequency
	}
}

func loadOverlays(cmd *cobra.Command) error {
	if preset != "" {
		cfg := config.GetPreset(profName, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(profName))
		}
		applyConfig(cmd, cfg)
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
	}
	return nil
}

func modelParams() (tire.Params, error) {
	return tire.NewParams(mu, ck)
}

func profileParams() map[string]float64 {
	return map[string]float64{
		"kappa_max": kappaPeak,
		"ramp_time": rampTime,
		"step_time": stepTime,
		"amplitude": amplitude,
		"frequency": frequency,
		"kappa":     kappaPeak,
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	if err := loadOverlays(cmd); err != nil {
		return err
	}
	params, err := modelParams()
	if err != nil {
		return err
	}

	if len(loads) == 0 {
		loads = []float64{600, 900, 1200}
	}
	if points == 0 {
		points = config.DefaultPoints
	}
	if kappaMax == kappaMin {
		kappaMin, kappaMax = config.DefaultKappaMin, config.DefaultKappaMax
	}

	cfg := experiment.SweepConfig{
		KappaMin: kappaMin,
		KappaMax: kappaMax,
		Points:   points,
		Loads:    loads,
		V:        speed,
		Params:   params,
	}

	fmt.Printf("sweeping kappa in [%g, %g] for loads %v...\n", cfg.KappaMin, cfg.KappaMax, cfg.Loads)
	start := time.Now()

	result, err := experiment.RunSweep(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	for _, curve := range result.Curves {
		graph := asciigraph.Plot(curve.Fx,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("Fx vs kappa (Fz = %g N)", curve.Fz)),
		)
		fmt.Println(graph)
		fmt.Println()

		graph = asciigraph.Plot(curve.Pdiss,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("Pdiss vs kappa (Fz = %g N)", curve.Fz)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveSweep(cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)

	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	if err := loadOverlays(cmd); err != nil {
		return err
	}
	params, err := modelParams()
	if err != nil {
		return err
	}

	registry := profile.NewRegistry()
	prof, err := registry.Get(profName, profileParams())
	if err != nil {
		return err
	}

	cfg := experiment.TraceConfig{
		Duration: duration,
		Steps:    steps,
		Fz:       fz,
		V:        speed,
		Profile:  prof,
		Params:   params,
	}

	fmt.Printf("running %s profile for %.1fs (Fz = %g N, V = %g m/s)...\n",
		prof.Name(), cfg.Duration, cfg.Fz, cfg.V)
	start := time.Now()

	result, err := experiment.RunTrace(context.Background(), cfg, experiment.DefaultMetrics(cfg.Fz, params))
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	channels := []struct {
		name string
		data []float64
	}{
		{"kappa(t)", result.Kappa},
		{"Pdiss(t) (W)", result.Pdiss},
		{"Ediss(t) (J)", result.Ediss},
	}
	for _, ch := range channels {
		graph := asciigraph.Plot(ch.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ch.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Println("metrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveTrace(cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	params, err := modelParams()
	if err != nil {
		return err
	}

	registry := profile.NewRegistry()
	prof, err := registry.Get(profName, profileParams())
	if err != nil {
		return err
	}

	dt := duration / float64(steps)
	m := viz.NewModel(params, fz, speed, dt, prof)

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
	fmt.Fprintln(w, "ID\tKIND\tTIME\tMU\tCK\tV\tPROFILE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.0f\t%.1f\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mu,
			run.Ck,
			run.V,
			run.Profile,
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

	header, columns, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(columns) == 0 || len(columns[0]) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(columns[0]))

	// first column is the abscissa (time or kappa); plot the rest against it
	maxPlots := 6
	plotted := 0
	for i := 1; i < len(header) && plotted < maxPlots; i++ {
		graph := asciigraph.Plot(columns[i],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", header[i], header[0])),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++
	}

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
	header, columns, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(columns))
	for i := 0; i < len(columns[0]); i++ {
		for j, col := range columns {
			row[j] = strconv.FormatFloat(col[i], 'f', 6, 64)
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
	header, columns, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	return export.WriteJSON(os.Stdout, meta, header, columns)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	header, columns, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	yName := svgY
	if yName == "" {
		// sensible defaults per kind
		if meta.Kind == "trace" {
			yName = "pdiss"
		} else if len(header) > 1 {
			yName = header[1]
		}
	}

	var xs, ys []float64
	for i, name := range header {
		if name == svgX {
			xs = columns[i]
		}
		if name == yName {
			ys = columns[i]
		}
	}
	if xs == nil || ys == nil {
		return fmt.Errorf("channels not found (have %v)", header)
	}

	svg := export.CurveToSVG(xs, ys, 800, 500, "#00ff00")
	if svg == "" {
		return fmt.Errorf("not enough data to render")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s vs %s)\n", out, yName, svgX)

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%d steps)\n", scenario.Name, len(scenario.Steps))

	outcomes, err := automation.RunScenario(context.Background(), scenario, st, profile.NewRegistry())
	for _, o := range outcomes {
		fmt.Printf("  %s -> %s\n", o.Kind, o.RunID)
	}
	if err != nil {
		return err
	}

	fmt.Println("scenario completed")
	return nil
}
