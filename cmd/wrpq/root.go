package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/wrpq/config"
	"github.com/katalvlaran/wrpq/dataset"
	"github.com/katalvlaran/wrpq/rpq"
)

var errNoInput = errors.New("no input: pass --input or --sample")

// app carries the state shared by all subcommands of one invocation.
type app struct {
	flags struct {
		configPath    string
		input         string
		sample        string
		transducer    string
		generatedCost float64
		maxIterations int
		outputDir     string
		metricsFile   string
		logLevel      string
		logFormat     string
	}

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "wrpq",
		Short: "Evaluate weighted regular-path queries",
		Long: "wrpq combines a query automaton, a cost-labeled transducer and a database\n" +
			"graph into a product automaton and searches it for (source, target) answers\n" +
			"with their minimal cost.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVarP(&a.flags.input, "input", "i", "", "YAML dataset file")
	pf.StringVar(&a.flags.sample, "sample", "", "bundled dataset name (see 'wrpq samples')")
	pf.StringVar(&a.flags.transducer, "transducer", config.TransducerProvided,
		"transducer source: provided or generate")
	pf.Float64Var(&a.flags.generatedCost, "generated-cost", 0, "translation cost of a generated transducer")
	pf.IntVar(&a.flags.maxIterations, "max-iterations", 0, "search iteration cap per session (0 = automatic)")
	pf.StringVarP(&a.flags.outputDir, "output", "o", "", "directory receiving queryResults.txt")
	pf.StringVar(&a.flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	pf.StringVar(&a.flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", config.FormatText, "log format: text or json")

	root.AddCommand(
		a.classicCmd(),
		a.topKCmd(rpq.ModeTopK, "topk", "topK"),
		a.topKCmd(rpq.ModeTopKUnoptimized, "topk-uo", "topKUO"),
		a.thresholdCmd(rpq.ModeThreshold, "threshold", ""),
		a.thresholdCmd(rpq.ModeThresholdUnoptimized, "threshold-uo", "thresholdUO"),
		a.largestCmd(),
		a.runCmd(),
		a.samplesCmd(),
	)
	root.Version = version

	return root
}

// setup loads the configuration, applies explicitly set flags over it and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("max-iterations") {
		cfg.MaxIterations = a.flags.maxIterations
	}
	if f.Changed("transducer") {
		cfg.Transducer.Mode = a.flags.transducer
	}
	if f.Changed("generated-cost") {
		cfg.Transducer.Cost = a.flags.generatedCost
	}
	if f.Changed("output") {
		cfg.OutputDir = a.flags.outputDir
	}
	if f.Changed("metrics-file") {
		cfg.MetricsFile = a.flags.metricsFile
	}
	if f.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger

	return nil
}

// inputs reads the dataset selected by --sample or --input.
func (a *app) inputs() (rpq.Inputs, error) {
	opts := dataset.Options{
		GenerateTransducer: a.cfg.GenerateTransducer(),
		GeneratedCost:      a.cfg.Transducer.Cost,
	}
	switch {
	case a.flags.sample != "" && a.flags.input != "":
		return rpq.Inputs{}, fmt.Errorf("--input and --sample are mutually exclusive")
	case a.flags.sample != "":
		return dataset.LoadSample(a.flags.sample, opts)
	case a.flags.input != "":
		return dataset.Load(a.flags.input, opts)
	default:
		return rpq.Inputs{}, errNoInput
	}
}
