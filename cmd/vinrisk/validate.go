package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

func newValidateCmd(global *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "validate VIN",
		Short: "Check whether a VIN is in the dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vin, err := vehicle.ValidateVIN(args[0])
			if err != nil {
				return err
			}

			a, _, err := loadAnalyzer(cmd.Context(), global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if a.Exists(vin) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: VIN found in database\n", vin)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: VIN not found in database\n", vin)
			}
			return nil
		},
	}
}
