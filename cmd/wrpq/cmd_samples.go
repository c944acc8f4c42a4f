package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/wrpq/dataset"
)

func (a *app) samplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the bundled datasets usable with --sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range dataset.Samples() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
