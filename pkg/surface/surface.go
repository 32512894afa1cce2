// Package surface defines output rendering for vinrisk results.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"fmt"
	"io"

	"github.com/vinrisk/vinrisk/internal/analyzer"
	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// Report is one analyzed vehicle ready for display.
type Report struct {
	Record     vehicle.Record
	Assessment scoring.RiskAssessment
	Factors    *scoring.RiskFactors // nil unless a breakdown was requested
}

// Renderer produces formatted output from analysis results.
type Renderer interface {
	// RenderReport writes an assessment.
	RenderReport(w io.Writer, report *Report) error
	// RenderRecord writes a raw vehicle record.
	RenderRecord(w io.Writer, rec vehicle.Record) error
	// RenderStats writes dataset statistics.
	RenderStats(w io.Writer, stats analyzer.DatabaseStats) error
}

// New returns the renderer for an output format: "text" or "json".
func New(format string) (Renderer, error) {
	switch format {
	case "", "text":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}
