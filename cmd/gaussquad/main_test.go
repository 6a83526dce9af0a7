package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gaussquad/gaussquad/convergence"
	"github.com/gaussquad/gaussquad/legendre"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Cleanup(func() {
		convergence.SetLogger(nil)
		gg.SetLogger(nil)
	})

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSweepCmd(t *testing.T) {

	t.Run("Default", func(t *testing.T) {
		out, _, err := execute(t, "sweep")
		require.NoError(t, err)
		require.Contains(t, out, "Result with N=5: 0.78580903\n")
		require.Contains(t, out, "Result with N=20: 0.77265171\n")
		require.Contains(t, out, "converged=true")
		require.Contains(t, out, "Fingerprint: ")
		require.NotContains(t, out, "Failed orders")
	})

	t.Run("Workers", func(t *testing.T) {
		serial, _, err := execute(t, "sweep")
		require.NoError(t, err)

		parallel, _, err := execute(t, "sweep", "--workers=4")
		require.NoError(t, err)

		require.Equal(t, serial, parallel)
	})

	t.Run("JSON", func(t *testing.T) {
		out, _, err := execute(t, "sweep", "--json", "--end=12", "--integrand=exp", "--a=0", "--b=1")
		require.NoError(t, err)

		var res sweepOutput
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		require.Equal(t, "exp", res.Integrand)
		require.Equal(t, 12, res.Series.Len())
		require.Len(t, res.Fingerprint, 64)
		require.NotNil(t, res.Report)
		require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, res.Parameters.Orders())

		last, ok := res.Series.Last()
		require.True(t, ok)
		require.InDelta(t, 1.718281828459045, last.Value, 1e-14)

		fingerprint, err := res.Series.Digest()
		require.NoError(t, err)
		require.Equal(t, res.Fingerprint, fingerprint)
	})

	t.Run("Highlight", func(t *testing.T) {
		out, _, err := execute(t, "sweep", "--end=6", "--highlight=2,9")
		require.NoError(t, err)
		require.Contains(t, out, "Result with N=2: 0.44440551\n")
		require.Contains(t, out, "Result with N=9: not in sweep\n")
	})

	t.Run("Config", func(t *testing.T) {
		path := writeFile(t, "sweep.yaml", `
sweep:
  a: 0
  b: 1
  start: 2
  end: 8
  step: 2
  policy: skip
integrand: cos
highlight: [4]
`)
		out, _, err := execute(t, "sweep", "--config", path, "--dump-config", "--end=10")
		require.NoError(t, err)

		var cfg config
		require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
		require.Equal(t, 10, cfg.Sweep.End)
		require.Equal(t, 2, cfg.Sweep.Step)
		require.Equal(t, convergence.Skip, cfg.Sweep.Policy)
		require.Equal(t, "cos", cfg.Integrand)
		require.Equal(t, []int{4}, cfg.Highlight)
		require.Equal(t, 5, cfg.Tail)

		out, _, err = execute(t, "sweep", "-c", path, "--end=10")
		require.NoError(t, err)
		require.Contains(t, out, "Result with N=4: 0.84147")
	})

	t.Run("UnknownConfigKey", func(t *testing.T) {
		path := writeFile(t, "sweep.yaml", "sweep:\n  stop: 3\n")
		_, _, err := execute(t, "sweep", "--config", path)
		require.Error(t, err)
	})

	t.Run("Plot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "convergence.png")
		out, _, err := execute(t, "sweep", "--plot", path)
		require.NoError(t, err)
		require.Contains(t, out, "Chart: "+path)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	})

	t.Run("Logging", func(t *testing.T) {
		_, logs, err := execute(t, "sweep", "--log-level=debug", "--end=3")
		require.NoError(t, err)
		require.Contains(t, logs, "sweep started")
		require.Contains(t, logs, "component=convergence")

		_, logs, err = execute(t, "sweep", "--log-level=info", "--log-format=json", "--end=3")
		require.NoError(t, err)
		require.Contains(t, logs, `"msg":"sweep done"`)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, stderr, err := execute(t, "sweep", "--start=0")
		require.ErrorIs(t, err, legendre.ErrInvalidOrder)
		require.NotContains(t, stderr, "Error:")

		_, _, err = execute(t, "sweep", "--start=5", "--end=2")
		require.ErrorIs(t, err, convergence.ErrInvalidRange)

		_, _, err = execute(t, "sweep", "--policy=retry")
		require.Error(t, err)

		_, _, err = execute(t, "sweep", "--integrand=tan")
		require.Error(t, err)

		_, _, err = execute(t, "sweep", "--log-level=verbose")
		require.Error(t, err)

		_, _, err = execute(t, "sweep", "extra")
		require.Error(t, err)
	})
}

func TestNodesCmd(t *testing.T) {

	t.Run("Table", func(t *testing.T) {
		out, _, err := execute(t, "nodes", "2")
		require.NoError(t, err)
		require.Contains(t, out, "weight")
		require.Contains(t, out, "0.57735026918962")
	})

	t.Run("JSON", func(t *testing.T) {
		out, _, err := execute(t, "nodes", "5", "--json", "--a=0", "--b=2")
		require.NoError(t, err)

		var rule struct {
			Interval legendre.Interval `json:"interval"`
			Nodes    []float64         `json:"nodes"`
			Weights  []float64         `json:"weights"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &rule))
		require.Equal(t, legendre.Interval{A: 0, B: 2}, rule.Interval)
		require.Len(t, rule.Nodes, 5)
		require.InDelta(t, 1.906179845938664, rule.Nodes[4], 1e-15)
		require.InDelta(t, 1.0, rule.Nodes[2], 1e-15)
		require.InDelta(t, 0.5688888888888889, rule.Weights[2], 1e-15)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, stderr, err := execute(t, "nodes", "0")
		require.ErrorIs(t, err, legendre.ErrInvalidOrder)
		// main prints the error once, the command stays silent.
		require.Empty(t, stderr)

		_, _, err = execute(t, "nodes", "five")
		require.Error(t, err)

		_, _, err = execute(t, "nodes")
		require.Error(t, err)

		_, _, err = execute(t, "nodes", "3", "--a=NaN")
		require.ErrorIs(t, err, legendre.ErrInvalidInterval)
	})
}
