// Package main provides the vinrisk CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// globalOpts holds the persistent flags shared by every subcommand.
type globalOpts struct {
	configPath string
	dataSource string
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:   "vinrisk",
		Short: "Risk scoring for dealer vehicle inventory",
		Long: `vinrisk looks up a vehicle by VIN in an inventory dataset, scores how likely
it is to sit on the lot, and explains the score.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: .vinrisk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.dataSource, "data", "", "Dataset source: path, s3://, gs:// or postgres:// URL")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newValidateCmd(opts),
		newShowCmd(opts),
		newStatsCmd(opts),
		newMigrateCmd(),
		newServeCmd(opts),
		newPingCmd(opts),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
