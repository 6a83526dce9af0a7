// gaussquad approximates definite integrals with Gauss-Legendre rules and
// studies how the approximations converge as the number of points grows.
//
// Usage:
//
//	gaussquad sweep [--a=0 --b=3.14159 --start=1 --end=20 --workers=4 --plot=out.png]
//	gaussquad sweep --config=sweep.yaml --json
//	gaussquad nodes 5 [--a=-1 --b=1]
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/gaussquad/gaussquad/convergence"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {

	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "gaussquad",
		Short: "Gauss-Legendre quadrature and convergence sweeps",
		Long: "gaussquad approximates definite integrals with n-point Gauss-Legendre rules\n" +
			"and reports how the approximations settle as n grows.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogging(cmd.ErrOrStderr(), flags.logLevel, flags.logFormat)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(newSweepCmd())
	cmd.AddCommand(newNodesCmd())

	return cmd
}

// initLogging installs a slog logger on w for the convergence and gg packages.
func initLogging(w io.Writer, level, format string) error {

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("invalid --log-format %q: must be text or json", format)
	}

	logger := slog.New(handler)
	convergence.SetLogger(logger.With(slog.String("component", "convergence")))
	gg.SetLogger(logger.With(slog.String("component", "gg")))

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
