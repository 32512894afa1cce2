package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/vinrisk/vinrisk/internal/analyzer"
	"github.com/vinrisk/vinrisk/pkg/config"
)

// loadConfig resolves the config file, applies environment overrides and
// then the --data flag.
func loadConfig(opts *globalOpts) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if opts.dataSource != "" {
		cfg.Dataset.Source = opts.dataSource
	}
	return cfg, nil
}

// loadAnalyzer builds an analyzer from the resolved config. Load progress
// and generator fallbacks are logged to stderr.
func loadAnalyzer(ctx context.Context, opts *globalOpts, stderr io.Writer) (*analyzer.Analyzer, *config.Config, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	wd, _ := os.Getwd()
	a, err := analyzer.Build(ctx, cfg, analyzer.BuildOptions{
		Dir:    wd,
		Logger: log.New(stderr, "", 0),
	})
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}
