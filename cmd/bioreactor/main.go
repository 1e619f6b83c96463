package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bioreactor/internal/chart"
	"github.com/san-kum/bioreactor/internal/config"
	"github.com/san-kum/bioreactor/internal/export"
	"github.com/san-kum/bioreactor/internal/integrators"
	"github.com/san-kum/bioreactor/internal/logging"
	"github.com/san-kum/bioreactor/internal/metrics"
	"github.com/san-kum/bioreactor/internal/reactor"
	"github.com/san-kum/bioreactor/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	warning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// main runs the bioreactor CLI and exits with status 1 if the command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.Logger().Error("command failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bioreactor",
		Short:        "continuous stirred-tank bioreactor simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := logging.Init(logLevel)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Logger().Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the reactor and print the trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&integratorName, "integrator", config.DefaultIntegrator, fmt.Sprintf("integrator %v", integrators.Names()))
	runCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")
	runCmd.Flags().IntVar(&every, "every", 10, "print every nth row in table format")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved configuration to a yaml file")

	plotCmd := &cobra.Command{
		Use:       "plot [phase|time]",
		Short:     "plot the trajectory as a phase plane or time series",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"phase", "time"},
		RunE:      plotTrajectory,
	}
	addModelFlags(plotCmd)
	plotCmd.Flags().StringVarP(&out, "out", "o", "", "write the chart to a .png or .svg file instead of the terminal")
	plotCmd.Flags().IntVar(&width, "width", 80, "terminal chart width")
	plotCmd.Flags().IntVar(&height, "height", 20, "terminal chart height")

	steadyCmd := &cobra.Command{
		Use:   "steady",
		Short: "analytic steady state and washout check",
		Args:  cobra.NoArgs,
		RunE:  steadyState,
	}
	addModelFlags(steadyCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "integrate once per feed flow rate, in parallel",
		Args:  cobra.NoArgs,
		RunE:  sweepFeeds,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&feeds, "feeds", []float64{2, 5, 10, 20, 30, 40}, "feed flow rates in L/h")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same run",
		RunE:  compareIntegrators,
	}
	addModelFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive parameter explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg.Params, cfg.InitPoint(), cfg.H, cfg.Steps, logging.Logger())
		},
	}
	addModelFlags(exploreCmd)

	rootCmd.AddCommand(runCmd, plotCmd, steadyCmd, sweepCmd, compareCmd, presetsCmd, exploreCmd)
	return rootCmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integratorName
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	log := logging.Logger()
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		log.Info("config saved", zap.String("path", saveConfig))
	}

	start := time.Now()
	traj, err := reactor.RunWith(cfg.Params, cfg.InitPoint(), cfg.H, cfg.Steps, integ)
	if err != nil {
		return fmt.Errorf("integration failed: %w", err)
	}
	log.Info("integrated",
		zap.String("integrator", cfg.Integrator),
		zap.Int("steps", cfg.Steps),
		zap.Float64("h", cfg.H),
		zap.Duration("elapsed", time.Since(start)))
	if last := traj.Last(); !last.State().IsValid() {
		log.Warn("trajectory diverged", zap.Float64("t", last.T), zap.Float64("x", last.X), zap.Float64("s", last.S))
	}

	values := metrics.Evaluate(traj, metrics.Defaults(cfg.Params)...)
	w := cmd.OutOrStdout()

	switch format {
	case "csv":
		return export.WriteCSV(w, traj)
	case "json":
		return export.WriteJSON(w, export.NewRun(cfg.Integrator, cfg.H, cfg.Params, traj, values))
	case "table":
		fmt.Fprintln(w, heading.Render(fmt.Sprintf("%s, h=%g, %d steps, D=%.4f 1/h", cfg.Integrator, cfg.H, cfg.Steps, cfg.Params.Dilution())))
		if err := export.WriteTable(w, traj, every); err != nil {
			return err
		}
		fmt.Fprintln(w)
		printMetrics(w, values)
		return nil
	default:
		return fmt.Errorf("unknown format: %s (available: table, csv, json)", format)
	}
}

func printMetrics(w io.Writer, values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, heading.Render("metrics:"))
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, values[name])
	}
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if kind != "phase" && kind != "time" {
		return fmt.Errorf("unknown plot: %s (available: phase, time)", kind)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	traj, err := reactor.Run(cfg.Params, cfg.InitPoint(), cfg.H, cfg.Steps)
	if err != nil {
		return fmt.Errorf("integration failed: %w", err)
	}

	if out != "" {
		var d chart.Drawer
		switch kind {
		case "phase":
			d, err = chart.PhasePlane(traj)
		default:
			d, err = chart.TimeSeries(traj)
		}
		if err != nil {
			return err
		}
		if err := chart.Save(out, d, chart.DefaultWidth, chart.DefaultHeight); err != nil {
			return err
		}
		logging.Logger().Info("chart written", zap.String("path", out), zap.String("kind", kind))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	}

	var graph string
	if kind == "phase" {
		graph, err = chart.TerminalPhase(traj, width, height)
	} else {
		graph, err = chart.TerminalTimeSeries(traj, width, height)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func steadyState(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params
	if err := p.Validate(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "dilution rate D:        %.6f 1/h\n", p.Dilution())
	fmt.Fprintf(w, "critical dilution μ(Sr): %.6f 1/h\n", p.CriticalDilution())

	xs, ss, ok := p.SteadyState()
	if !ok {
		fmt.Fprintln(w, warning.Render("washout: biomass cannot be sustained at this dilution rate"))
		fmt.Fprintf(w, "steady state: X* = 0, S* = %.6f g/L\n", ss)
		return nil
	}
	fmt.Fprintf(w, "steady state: X* = %.6f g/L, S* = %.6f g/L\n", xs, ss)
	fmt.Fprintf(w, "productivity D·X*: %.6f g/L/h\n", p.Dilution()*xs)
	return nil
}

func sweepFeeds(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(feeds) == 0 {
		return fmt.Errorf("no feed rates given")
	}

	start := time.Now()
	results, err := reactor.Sweep(cmd.Context(), cfg.Params, cfg.InitPoint(), cfg.H, cfg.Steps, feeds)
	if err != nil {
		return err
	}
	logging.Logger().Info("sweep finished", zap.Int("runs", len(results)), zap.Duration("elapsed", time.Since(start)))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEED (L/h)\tD (1/h)\tX FINAL\tS FINAL\tD·X\tWASHOUT")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.6f\t%.6f\t%.6f\t%v\n",
			r.Feed, r.Dilution, r.Final.X, r.Final.S, r.Dilution*r.Final.X, r.Washout)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = []string{"rk4", "euler"}
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	type result struct {
		name    string
		last    reactor.Point
		elapsed time.Duration
		err     error
	}

	// The first integrator that completes is the reference for |Δ|.
	results := make([]result, 0, len(names))
	refName := ""
	var ref reactor.Point
	for _, name := range names {
		r := result{name: name}
		integ, err := integrators.New(name)
		if err != nil {
			r.err = err
			results = append(results, r)
			continue
		}

		start := time.Now()
		traj, err := reactor.RunWith(cfg.Params, cfg.InitPoint(), cfg.H, cfg.Steps, integ)
		r.elapsed = time.Since(start)
		if err != nil {
			r.err = err
		} else {
			r.last = traj.Last()
			if refName == "" {
				refName, ref = name, r.last
			}
		}
		results = append(results, r)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "comparing integrators (h=%g, steps=%d)\n\n", cfg.H, cfg.Steps)
	deltaLabel := "|Δ|"
	if refName != "" {
		deltaLabel = "|Δ| vs " + refName
	}
	fmt.Fprintf(w, "%-12s  %-12s  %-12s  %-12s  %-12s\n", "integrator", "final_x", "final_s", deltaLabel, "time_ms")
	fmt.Fprintln(w, strings.Repeat("-", 68))

	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "%-12s  error: %v\n", r.name, r.err)
			continue
		}
		delta := r.last.State().Sub(ref.State()).Norm()
		fmt.Fprintf(w, "%-12s  %12.6f  %12.6f  %12.2e  %12.2f\n", r.name, r.last.X, r.last.S, delta, float64(r.elapsed.Microseconds())/1000)
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTEPS\tH\tX0\tS0\tF (L/h)\tWASHOUT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%g\t%g\t%v\n",
			name, p.Steps, p.H, p.Init.X, p.Init.S, p.Params.Feed, p.Params.Washout())
	}
	return w.Flush()
}

