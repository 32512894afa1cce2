package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinrisk/vinrisk/pkg/llm"
)

func newPingCmd(global *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the text generator API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			client, err := llm.NewClient(llm.Options{
				APIKey:    cfg.Generator.APIKey,
				Model:     cfg.Generator.Model,
				MaxTokens: cfg.Generator.MaxTokens,
				Timeout:   cfg.Generator.TimeoutDuration(),
			})
			if err != nil {
				return err
			}
			if err := client.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("generator unreachable: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generator reachable (model %s).\n", client.Model())
			return nil
		},
	}
}
