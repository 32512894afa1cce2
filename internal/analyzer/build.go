package analyzer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vinrisk/vinrisk/internal/datasource"
	"github.com/vinrisk/vinrisk/pkg/config"
	"github.com/vinrisk/vinrisk/pkg/inventory"
	"github.com/vinrisk/vinrisk/pkg/llm"
	"github.com/vinrisk/vinrisk/pkg/scoring"
)

// BuildOptions tune Build. Zero values are fine.
type BuildOptions struct {
	// Dir is where sample data discovery starts when no source is configured.
	Dir string
	// Logger receives skipped-row and generator fallback messages.
	Logger *log.Logger
	// Generator replaces the Claude client; used by tests.
	Generator scoring.GeneratorFactory
}

// Build loads the configured dataset and assembles an Analyzer.
func Build(ctx context.Context, cfg *config.Config, opts BuildOptions) (*Analyzer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	uri, err := cfg.ResolveSource(opts.Dir)
	if err != nil {
		return nil, err
	}

	src, err := datasource.Open(ctx, uri, cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer src.Close()

	store, err := inventory.Load(ctx, src,
		inventory.WithColumns(cfg.Dataset.Columns),
		inventory.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	report := store.Report()
	logger.Printf("loaded %d vehicles from %s (%d rows read, %d skipped)",
		report.Stored, src.Describe(), report.RowsRead, report.Skipped)

	engine := scoring.NewEngine(EngineOptions(cfg, logger, opts.Generator)...)
	return New(store, engine), nil
}

// EngineOptions translates cfg into scoring options. When the generator is
// enabled and no override is given, the Claude client is used.
func EngineOptions(cfg *config.Config, logger *log.Logger, override scoring.GeneratorFactory) []scoring.Option {
	opts := []scoring.Option{
		scoring.WithLogger(logger),
		scoring.WithTimeout(cfg.Generator.TimeoutDuration()),
	}

	if year := cfg.Scoring.ReferenceYear; year > 0 {
		opts = append(opts, scoring.WithClock(func() time.Time {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}))
	}

	if !cfg.Generator.Enabled {
		return opts
	}
	factory := override
	if factory == nil {
		g := cfg.Generator
		factory = func() (scoring.TextGenerator, error) {
			client, err := llm.NewClient(llm.Options{
				APIKey:    g.APIKey,
				Model:     g.Model,
				MaxTokens: g.MaxTokens,
				Timeout:   g.TimeoutDuration(),
			})
			if err != nil {
				return nil, err
			}
			return client, nil
		}
	}
	return append(opts, scoring.WithGenerator(factory))
}
