package main

import (
	"github.com/spf13/cobra"

	"github.com/vinrisk/vinrisk/pkg/surface"
)

func newAnalyzeCmd(global *globalOpts) *cobra.Command {
	var (
		outputFmt   string
		showFactors bool
	)

	cmd := &cobra.Command{
		Use:   "analyze VIN",
		Short: "Score a vehicle and explain the result",
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

			assessment, err := a.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rec, err := a.GetRecord(args[0])
			if err != nil {
				return err
			}

			report := &surface.Report{Record: rec, Assessment: assessment}
			if showFactors {
				_, f, err := a.Factors(args[0])
				if err != nil {
					return err
				}
				report.Factors = &f
			}
			return renderer.RenderReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&showFactors, "factors", false, "Include the per-factor score breakdown")

	return cmd
}
