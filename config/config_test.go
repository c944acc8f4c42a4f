package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wrpq/config"
	"github.com/katalvlaran/wrpq/rpq"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, rpq.ModeClassic, cfg.Query.Mode)
	require.False(t, cfg.GenerateTransducer())
	require.Equal(t, rpq.Query{Mode: rpq.ModeClassic, K: 1}, cfg.RPQQuery())
}

func TestDecode(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(`
max_iterations: 500
output_dir: out/
query:
  mode: thresholdUO
  threshold: 2.5
transducer:
  mode: generate
  cost: 1
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	require.Equal(t, 500, cfg.MaxIterations)
	require.Equal(t, "out/", cfg.OutputDir)
	require.Equal(t, rpq.ModeThresholdUnoptimized, cfg.Query.Mode)
	require.Equal(t, 1, cfg.Query.K, "unset keys keep their defaults")
	require.True(t, cfg.GenerateTransducer())
	require.Equal(t, 1.0, cfg.Transducer.Cost)
	require.Equal(t, rpq.Query{
		Mode:          rpq.ModeThresholdUnoptimized,
		K:             1,
		Threshold:     2.5,
		MaxIterations: 500,
	}, cfg.RPQQuery())
}

func TestDecode_Empty(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestDecode_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":        "bogus: 1\n",
		"unknown mode":       "query:\n  mode: fastest\n",
		"negative cap":       "max_iterations: -1\n",
		"negative k":         "query:\n  k: -2\n",
		"negative threshold": "query:\n  threshold: -0.5\n",
		"transducer mode":    "transducer:\n  mode: inferred\n",
		"transducer cost":    "transducer:\n  cost: -1\n",
		"log level":          "log:\n  level: loud\n",
		"log format":         "log:\n  format: xml\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestValidate_WrapsErrInvalid(t *testing.T) {
	cfg := config.Default()
	cfg.MaxIterations = -3
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrpq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_iterations: 10\nlog:\n  level: warn\n"), 0o600))

	t.Setenv("WRPQ_MAX_ITERATIONS", "42")
	t.Setenv("WRPQ_OUTPUT_DIR", "/tmp/results")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 42, cfg.MaxIterations, "environment overrides the file")
	require.Equal(t, "/tmp/results", cfg.OutputDir)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("WRPQ_MAX_ITERATIONS", "many")
	_, err := config.Load("")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `"msg":"shown"`)
	require.Contains(t, out, `"k":1`)

	_, err = config.LogConfig{Level: "info", Format: "xml"}.NewLogger(&buf)
	require.ErrorIs(t, err, config.ErrInvalid)
}
