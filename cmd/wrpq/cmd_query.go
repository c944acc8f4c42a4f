package main

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/wrpq/metrics"
	"github.com/katalvlaran/wrpq/rpq"
)

func (a *app) classicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classic",
		Short: "Find every answer with its minimal cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.evaluate(cmd, rpq.Query{Mode: rpq.ModeClassic})
		},
	}
}

func (a *app) topKCmd(mode rpq.Mode, use, alias string) *cobra.Command {
	short := "Find the K cheapest answers, stopping each search after K final nodes"
	if mode == rpq.ModeTopKUnoptimized {
		short = "Find the K cheapest answers from an exhaustive search"
	}
	cmd := &cobra.Command{
		Use:   use + " K",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse K %q: %w", args[0], err)
			}
			return a.evaluate(cmd, rpq.Query{Mode: mode, K: k})
		},
	}
	if alias != "" {
		cmd.Aliases = []string{alias}
	}
	return cmd
}

func (a *app) thresholdCmd(mode rpq.Mode, use, alias string) *cobra.Command {
	short := "Find answers within a cost bound, stopping each search past it"
	if mode == rpq.ModeThresholdUnoptimized {
		short = "Find answers within a cost bound from an exhaustive search"
	}
	cmd := &cobra.Command{
		Use:   use + " BOUND",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse bound %q: %w", args[0], err)
			}
			return a.evaluate(cmd, rpq.Query{Mode: mode, Threshold: bound})
		},
	}
	if alias != "" {
		cmd.Aliases = []string{alias}
	}
	return cmd
}

func (a *app) largestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "largest",
		Aliases: []string{"thresholdLW"},
		Short:   "Report the largest minimal answer cost",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.evaluate(cmd, rpq.Query{Mode: rpq.ModeLargestWeight})
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	var runFlags struct {
		mode      string
		k         int
		threshold float64
	}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the query configured in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := a.cfg.RPQQuery()
			f := cmd.Flags()
			if f.Changed("mode") {
				m, err := rpq.ParseMode(runFlags.mode)
				if err != nil {
					return err
				}
				q.Mode = m
			}
			if f.Changed("k") {
				q.K = runFlags.k
			}
			if f.Changed("threshold") {
				q.Threshold = runFlags.threshold
			}
			return a.evaluate(cmd, q)
		},
	}
	f := cmd.Flags()
	f.StringVar(&runFlags.mode, "mode", "", "query mode: classic, topK, topKUO, threshold, thresholdUO, thresholdLW")
	f.IntVar(&runFlags.k, "k", 0, "K for the top-K modes")
	f.Float64Var(&runFlags.threshold, "threshold", 0, "bound for the threshold modes")

	return cmd
}

// evaluate runs one session and reports it.
func (a *app) evaluate(cmd *cobra.Command, q rpq.Query) error {
	q.MaxIterations = a.cfg.MaxIterations

	in, err := a.inputs()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}
	ev := rpq.NewEvaluator(rpq.WithLogger(a.logger), rpq.WithRecorder(m))
	res, err := ev.Evaluate(in, q)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), res)

	if a.cfg.OutputDir != "" {
		path, err := writeResults(a.cfg.OutputDir, res)
		if err != nil {
			return err
		}
		a.logger.Info("wrote results", "path", path)
	}
	if a.cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		a.logger.Info("wrote metrics", "path", a.cfg.MetricsFile)
	}

	return nil
}
