package main

import (
	"github.com/spf13/cobra"

	"github.com/vinrisk/vinrisk/pkg/surface"
)

func newShowCmd(global *globalOpts) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "show VIN",
		Short: "Print the stored record for a VIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := surface.New(outputFmt)
			if err != nil {
				return err
			}

			a, _, err := loadAnalyzer(cmd.Context(), global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			rec, err := a.GetRecord(args[0])
			if err != nil {
				return err
			}
			return renderer.RenderRecord(cmd.OutOrStdout(), rec)
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}
