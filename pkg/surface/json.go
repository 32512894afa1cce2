package surface

import (
	"encoding/json"
	"io"

	"github.com/vinrisk/vinrisk/internal/analyzer"
	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

type jsonReport struct {
	VIN       string               `json:"vin"`
	Summary   string               `json:"summary"`
	RiskScore int                  `json:"risk_score"`
	Reasoning string               `json:"reasoning"`
	Source    scoring.Source       `json:"source,omitempty"`
	Level     scoring.RiskLevel    `json:"risk_level,omitempty"`
	Factors   *scoring.RiskFactors `json:"factors,omitempty"`
}

func (r *JSONRenderer) RenderReport(w io.Writer, report *Report) error {
	out := jsonReport{
		VIN:       report.Record.VIN,
		Summary:   report.Assessment.Summary,
		RiskScore: report.Assessment.RiskScore,
		Reasoning: report.Assessment.Reasoning,
	}
	if report.Factors != nil {
		out.Source = report.Assessment.Source
		out.Level = scoring.LevelFromScore(report.Assessment.RiskScore)
		out.Factors = report.Factors
	}
	return encode(w, out)
}

func (r *JSONRenderer) RenderRecord(w io.Writer, rec vehicle.Record) error {
	return encode(w, rec)
}

func (r *JSONRenderer) RenderStats(w io.Writer, stats analyzer.DatabaseStats) error {
	return encode(w, stats)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
