// Package config holds the process configuration of wrpq.
//
// Values are layered: Default, then an optional YAML file, then WRPQ_*
// environment variables. Command-line flags are applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wrpq/rpq"
)

// Transducer modes.
const (
	// TransducerProvided reads the transducer from the input file.
	TransducerProvided = "provided"
	// TransducerGenerate builds an identity transducer over the query labels.
	TransducerGenerate = "generate"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Sentinel errors for configuration problems.
var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the full process configuration.
type Config struct {
	// MaxIterations caps search iterations per session; 0 selects the automatic cap.
	MaxIterations int `yaml:"max_iterations"`

	// OutputDir receives queryResults.txt when set.
	OutputDir string `yaml:"output_dir"`

	// MetricsFile receives the Prometheus text exposition when set.
	MetricsFile string `yaml:"metrics_file"`

	Query      QueryConfig      `yaml:"query"`
	Transducer TransducerConfig `yaml:"transducer"`
	Log        LogConfig        `yaml:"log"`
}

// QueryConfig selects the default query mode and its parameters.
type QueryConfig struct {
	Mode      rpq.Mode `yaml:"mode"`
	K         int      `yaml:"k"`
	Threshold float64  `yaml:"threshold"`
}

// TransducerConfig selects where the transducer comes from.
type TransducerConfig struct {
	Mode string `yaml:"mode"`
	// Cost is the translation cost of a generated identity transducer.
	Cost float64 `yaml:"cost"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Query:      QueryConfig{Mode: rpq.ModeClassic, K: 1},
		Transducer: TransducerConfig{Mode: TransducerProvided},
		Log:        LogConfig{Level: "info", Format: FormatText},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()
		if err := cfg.decode(f); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overrides fields from WRPQ_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("WRPQ_MAX_ITERATIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: WRPQ_MAX_ITERATIONS: %v", ErrInvalid, err)
		}
		c.MaxIterations = n
	}
	if v, ok := lookup("WRPQ_OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := lookup("WRPQ_METRICS_FILE"); ok {
		c.MetricsFile = v
	}
	if v, ok := lookup("WRPQ_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("WRPQ_LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	return nil
}

// Validate reports the first invalid field, wrapped in ErrInvalid.
func (c Config) Validate() error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations must be non-negative, got %d", ErrInvalid, c.MaxIterations)
	}
	if _, err := c.Query.Mode.MarshalText(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Query.K < 0 {
		return fmt.Errorf("%w: query.k must be non-negative, got %d", ErrInvalid, c.Query.K)
	}
	if math.IsNaN(c.Query.Threshold) || c.Query.Threshold < 0 {
		return fmt.Errorf("%w: query.threshold must be a non-negative number, got %v", ErrInvalid, c.Query.Threshold)
	}
	switch c.Transducer.Mode {
	case TransducerProvided, TransducerGenerate:
	default:
		return fmt.Errorf("%w: transducer.mode must be %q or %q, got %q",
			ErrInvalid, TransducerProvided, TransducerGenerate, c.Transducer.Mode)
	}
	if math.IsNaN(c.Transducer.Cost) || math.IsInf(c.Transducer.Cost, 0) || c.Transducer.Cost < 0 {
		return fmt.Errorf("%w: transducer.cost must be a finite non-negative number, got %v", ErrInvalid, c.Transducer.Cost)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q, got %q", ErrInvalid, FormatText, FormatJSON, c.Log.Format)
	}
	return nil
}

// RPQQuery converts the query section into an rpq.Query.
func (c Config) RPQQuery() rpq.Query {
	return rpq.Query{
		Mode:          c.Query.Mode,
		K:             c.Query.K,
		Threshold:     c.Query.Threshold,
		MaxIterations: c.MaxIterations,
	}
}

// GenerateTransducer reports whether the transducer is generated.
func (c Config) GenerateTransducer() bool {
	return c.Transducer.Mode == TransducerGenerate
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return lvl, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return lvl, nil
}

// NewLogger builds a slog.Logger writing to w with the configured level and format.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(l.Format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	case FormatText:
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: log.format %q", ErrInvalid, l.Format)
	}
	return slog.New(handler), nil
}
