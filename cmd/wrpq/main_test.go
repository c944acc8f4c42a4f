package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wrpq/dataset"
	"github.com/katalvlaran/wrpq/rpq"
)

// execute runs a fresh command tree and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestClassic(t *testing.T) {
	out, _, err := execute(t, "--sample", "social", "classic")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out,
		"(bob, cat) with cost 0\n"+
			"(ann, bob) with cost 1\n"+
			"(ann, cat) with cost 1\n"+
			"(bob, dan) with cost 2\n"+
			"(cat, dan) with cost 2\n"+
			"(ann, dan) with cost 3\n"+
			"total answers: 6\n"), out)
	require.Contains(t, out, "number of max nodes possible: 8\n")
	require.Contains(t, out, "possible inf run: false\n")
}

func TestTopKUnoptimized(t *testing.T) {
	out, _, err := execute(t, "--sample", "social", "topKUO", "2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out,
		"(bob, cat) with cost 0\n(ann, bob) with cost 1\ntotal answers: 2\n"), out)
}

func TestThresholdUnoptimized(t *testing.T) {
	out, _, err := execute(t, "--sample", "social", "threshold-uo", "1")
	require.NoError(t, err)
	require.Contains(t, out, "total answers: 3\n")
	require.NotContains(t, out, "dan")
}

func TestLargest(t *testing.T) {
	out, _, err := execute(t, "--sample", "social", "largest")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "largest weight: 3\n"), out)
}

func TestRun_UsesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wrpq.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("query:\n  mode: topKUO\n  k: 1\n"), 0o600))

	out, _, err := execute(t, "--config", cfgPath, "--sample", "travel", "run")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "(Kyiv, Lviv) with cost 4\ntotal answers: 1\n"), out)

	out, _, err = execute(t, "--config", cfgPath, "--sample", "travel", "run", "--mode", "classic")
	require.NoError(t, err)
	require.Contains(t, out, "(Kyiv, Krakow) with cost 5\n")
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "out")
	metricsPath := filepath.Join(dir, "wrpq.prom")

	_, stderr, err := execute(t,
		"--sample", "travel",
		"--output", results,
		"--metrics-file", metricsPath,
		"--log-format", "json",
		"classic")
	require.NoError(t, err)
	require.Contains(t, stderr, `"msg":"query evaluated"`)

	data, err := os.ReadFile(filepath.Join(results, resultsFile))
	require.NoError(t, err)
	require.Equal(t,
		"query processed.\n(Kyiv, Lviv) with cost 4\n(Kyiv, Krakow) with cost 5\ntotal answers: 2\n",
		string(data))

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(prom), `wrpq_session_total{mode="classic"} 1`)
}

func TestGeneratedTransducer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	doc := `
query:
  initial: [q0]
  final: [q1]
  transitions:
    - {from: q0, to: q1, label: a}
    - {from: q1, to: q1, label: a}
database:
  start: [x]
  edges:
    - {from: x, to: y, label: a, weight: 1}
    - {from: y, to: z, label: a, weight: 1}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, _, err := execute(t, "--input", path, "--transducer", "generate", "--generated-cost", "1", "classic")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "(x, y) with cost 2\n(x, z) with cost 4\n"), out)
}

func TestSamplesCommand(t *testing.T) {
	out, _, err := execute(t, "samples")
	require.NoError(t, err)
	require.Equal(t, strings.Join(dataset.Samples(), "\n")+"\n", out)
}

func TestErrors(t *testing.T) {
	_, _, err := execute(t, "classic")
	require.ErrorIs(t, err, errNoInput)

	_, _, err = execute(t, "--sample", "social", "topk", "0")
	require.ErrorIs(t, err, rpq.ErrBadK)

	_, _, err = execute(t, "--sample", "social", "topk", "many")
	require.Error(t, err)

	_, _, err = execute(t, "--sample", "nope", "classic")
	require.ErrorIs(t, err, dataset.ErrUnknownSample)

	_, _, err = execute(t, "--sample", "social", "--transducer", "magic", "classic")
	require.Error(t, err)

	_, _, err = execute(t, "--sample", "social", "--input", "x.yaml", "classic")
	require.Error(t, err)

	_, _, err = execute(t, "--sample", "social", "run", "--mode", "fastest")
	require.ErrorIs(t, err, rpq.ErrUnknownMode)
}
