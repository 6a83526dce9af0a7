package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gaussquad/gaussquad/convergence"
	"github.com/gaussquad/gaussquad/plot"
)

type sweepFlags struct {
	a, b       float64
	start, end int
	step       int
	workers    int
	policy     string
	integrand  string
	highlight  []int
	tail       int
	tolerance  float64
	config     string
	plot       string
	json       bool
	dumpConfig bool
}

func newSweepCmd() *cobra.Command {

	var flags sweepFlags

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Approximate an integral for a range of orders N",
		Long: "sweep approximates the integral of the selected integrand over [a, b] with the\n" +
			"Gauss-Legendre rules of orders start, start+step, ..., end and reports the\n" +
			"highlighted approximations, a convergence summary and the series fingerprint.\n\n" +
			"Integrands: " + fmt.Sprint(convergence.IntegrandNames()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, &flags)
		},
	}

	def := defaultConfig()

	f := cmd.Flags()
	f.Float64Var(&flags.a, "a", def.Sweep.A, "Lower integration bound")
	f.Float64Var(&flags.b, "b", def.Sweep.B, "Upper integration bound")
	f.IntVar(&flags.start, "start", def.Sweep.Start, "First order N")
	f.IntVar(&flags.end, "end", def.Sweep.End, "Last order N")
	f.IntVar(&flags.step, "step", def.Sweep.Step, "Increment between orders")
	f.IntVar(&flags.workers, "workers", def.Sweep.Workers, "Orders evaluated concurrently")
	f.StringVar(&flags.policy, "policy", def.Sweep.Policy.String(), "Behavior on a failed order: abort or skip")
	f.StringVar(&flags.integrand, "integrand", def.Integrand, "Integrand name")
	f.IntSliceVar(&flags.highlight, "highlight", def.Highlight, "Orders whose approximation is printed")
	f.IntVar(&flags.tail, "tail", def.Tail, "Number of trailing differences summarised, 0 for all")
	f.Float64Var(&flags.tolerance, "tolerance", def.Tolerance, "Convergence tolerance on the trailing differences")
	f.StringVarP(&flags.config, "config", "c", "", "YAML configuration file, overridden by explicit flags")
	f.StringVar(&flags.plot, "plot", "", "Write the convergence chart to this PNG file")
	f.BoolVar(&flags.json, "json", false, "Print the series as JSON")
	f.BoolVar(&flags.dumpConfig, "dump-config", false, "Print the effective configuration as YAML and exit")

	return cmd
}

// resolveConfig merges the configuration file and the explicitly set flags.
func resolveConfig(cmd *cobra.Command, flags *sweepFlags) (cfg config, err error) {

	cfg = defaultConfig()

	if flags.config != "" {
		if cfg, err = loadConfig(flags.config); err != nil {
			return
		}
	}

	f := cmd.Flags()

	if f.Changed("a") {
		cfg.Sweep.A = flags.a
	}
	if f.Changed("b") {
		cfg.Sweep.B = flags.b
	}
	if f.Changed("start") {
		cfg.Sweep.Start = flags.start
	}
	if f.Changed("end") {
		cfg.Sweep.End = flags.end
	}
	if f.Changed("step") {
		cfg.Sweep.Step = flags.step
	}
	if f.Changed("workers") {
		cfg.Sweep.Workers = flags.workers
	}
	if f.Changed("policy") {
		if err = cfg.Sweep.Policy.UnmarshalText([]byte(flags.policy)); err != nil {
			return cfg, fmt.Errorf("invalid --policy: %w", err)
		}
	}
	if f.Changed("integrand") {
		cfg.Integrand = flags.integrand
	}
	if f.Changed("highlight") {
		cfg.Highlight = flags.highlight
	}
	if f.Changed("tail") {
		cfg.Tail = flags.tail
	}
	if f.Changed("tolerance") {
		cfg.Tolerance = flags.tolerance
	}
	if f.Changed("plot") {
		cfg.Plot = flags.plot
	}

	return cfg, nil
}

type sweepOutput struct {
	Parameters  convergence.Parameters `json:"parameters"`
	Integrand   string                 `json:"integrand"`
	Series      convergence.Series     `json:"series"`
	Report      *convergence.Report    `json:"report,omitempty"`
	Fingerprint string                 `json:"fingerprint"`
}

func runSweep(cmd *cobra.Command, flags *sweepFlags) error {

	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flags.dumpConfig {
		data, err := marshalConfig(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	params, err := convergence.NewParametersFromLiteral(cfg.Sweep)
	if err != nil {
		return err
	}

	f, err := convergence.Lookup(cfg.Integrand)
	if err != nil {
		return err
	}

	series, err := convergence.Sweep(cmd.Context(), params, f)
	if err != nil {
		return err
	}

	fingerprint, err := series.Digest()
	if err != nil {
		return err
	}

	var report *convergence.Report
	if r, err := convergence.NewReport(series, cfg.Tail, cfg.Tolerance); err == nil {
		report = &r
	} else {
		convergence.Logger().Warn("no convergence report", "err", err)
	}

	if cfg.Plot != "" {
		if err = plot.SavePNG(cfg.Plot, series, plot.DefaultOptions); err != nil {
			return err
		}
		convergence.Logger().Info("chart written", "path", cfg.Plot)
	}

	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sweepOutput{
			Parameters:  params,
			Integrand:   cfg.Integrand,
			Series:      series,
			Report:      report,
			Fingerprint: fingerprint,
		})
	}

	printSweep(out, cfg, series, report, fingerprint)

	return nil
}

func printSweep(out io.Writer, cfg config, series convergence.Series, report *convergence.Report, fingerprint string) {

	for _, n := range cfg.Highlight {
		p, ok := series.At(n)
		switch {
		case !ok:
			fmt.Fprintf(out, "Result with N=%d: not in sweep\n", n)
		case !p.Succeeded():
			fmt.Fprintf(out, "Result with N=%d: failed: %v\n", n, p.Err)
		default:
			fmt.Fprintf(out, "Result with N=%d: %.8f\n", n, p.Value)
		}
	}

	if failures := series.Failures(); len(failures) > 0 {
		fmt.Fprintf(out, "Failed orders: %d of %d\n", len(failures), series.Len())
	}

	if report != nil {
		fmt.Fprintf(out, "Convergence: %s\n", report)
	}

	fmt.Fprintf(out, "Fingerprint: %s\n", fingerprint)

	if cfg.Plot != "" {
		fmt.Fprintf(out, "Chart: %s\n", cfg.Plot)
	}
}
