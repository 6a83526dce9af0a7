package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gaussquad/gaussquad/legendre"
)

type nodesFlags struct {
	a, b float64
	json bool
}

func newNodesCmd() *cobra.Command {

	var flags nodesFlags

	cmd := &cobra.Command{
		Use:   "nodes N",
		Short: "Print the nodes and weights of the N-point rule",
		Long: "nodes prints the N-point Gauss-Legendre nodes and weights, mapped to [a, b].\n" +
			"The default interval is the canonical [-1, 1].",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNodes(cmd, args[0], &flags)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&flags.a, "a", legendre.CanonicalInterval.A, "Lower bound")
	f.Float64Var(&flags.b, "b", legendre.CanonicalInterval.B, "Upper bound")
	f.BoolVar(&flags.json, "json", false, "Print the rule as JSON")

	return cmd
}

func runNodes(cmd *cobra.Command, arg string, flags *nodesFlags) error {

	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid N %q: %w", arg, err)
	}

	interval := legendre.Interval{A: flags.a, B: flags.b}
	if err = interval.Validate(); err != nil {
		return err
	}

	rule, err := legendre.NewRule(n)
	if err != nil {
		return err
	}

	mapped := interval.Map(rule)
	out := cmd.OutOrStdout()

	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Interval legendre.Interval `json:"interval"`
			Nodes    []float64         `json:"nodes"`
			Weights  []float64         `json:"weights"`
		}{mapped.Interval, mapped.Nodes, mapped.Weights})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "i\tnode\tweight\t")
	for i := range mapped.Nodes {
		fmt.Fprintf(tw, "%d\t%.17g\t%.17g\t\n", i, mapped.Nodes[i], mapped.Weights[i])
	}
	return tw.Flush()
}
