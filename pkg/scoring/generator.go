package scoring

import (
	"context"
	"fmt"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// TextGenerator writes the summary and reasoning for a computed score.
// Implementations may call external services; the engine bounds each call
// with a timeout and falls back to the algorithmic narrative on any error.
type TextGenerator interface {
	Generate(ctx context.Context, rec vehicle.Record, factors RiskFactors) (Narrative, error)
}

// GeneratorFactory constructs a TextGenerator. It is called once per engine.
type GeneratorFactory func() (TextGenerator, error)

// GenerationError reports a failed or unusable generator result.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text generation failed: %s: %v", e.Reason, e.Err)
	}
	return "text generation failed: " + e.Reason
}

func (e *GenerationError) Unwrap() error { return e.Err }
