package main

import (
	"github.com/spf13/cobra"

	"github.com/vinrisk/vinrisk/pkg/surface"
)

func newStatsCmd(global *globalOpts) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the loaded dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := surface.New(outputFmt)
			if err != nil {
				return err
			}

			a, _, err := loadAnalyzer(cmd.Context(), global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return renderer.RenderStats(cmd.OutOrStdout(), a.Stats())
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}
