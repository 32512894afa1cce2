// Command vinriskd is the vinrisk API service.
// It loads the inventory dataset once at startup and serves the REST API
// until SIGINT or SIGTERM.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vinrisk/vinrisk/internal/analyzer"
	"github.com/vinrisk/vinrisk/internal/api"
	"github.com/vinrisk/vinrisk/pkg/config"
)

// loadConfig reads VINRISK_CONFIG when set, then applies the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := os.Getenv("VINRISK_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wd, _ := os.Getwd()
	a, err := analyzer.Build(ctx, cfg, analyzer.BuildOptions{Dir: wd, Logger: log.Default()})
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	if a.UsesGenerator() {
		log.Printf("text generator enabled (model %s)", cfg.Generator.Model)
	} else {
		log.Printf("text generator disabled, using algorithmic assessments")
	}

	h := api.NewHandler(a,
		api.WithLogger(log.Default()),
		api.WithAllowedOrigins(cfg.Server.AllowedOrigins),
	)

	log.Printf("starting vinriskd on %s", cfg.Server.Addr())
	if err := api.Serve(ctx, cfg.Server.Addr(), h.Routes(), log.Default()); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
