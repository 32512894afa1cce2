// Package scoring implements the vinrisk risk scoring engine.
// It maps a vehicle record to a bounded 1-10 risk score and explains how the
// score was reached, optionally delegating the prose to an external generator.
package scoring

// RiskFactors is the full derivation of a score. Immutable once computed.
type RiskFactors struct {
	DaysOnLotImpact          int `json:"days_on_lot_impact"`
	PriceToMarketImpact      int `json:"price_to_market_impact"`
	VDPViewsImpact           int `json:"vdp_views_impact"`
	MileageImpact            int `json:"mileage_impact"`
	SalesOpportunitiesImpact int `json:"sales_opportunities_impact"`
	MissingDataAdjustment    int `json:"missing_data_adjustment"`

	MissingDataNote string `json:"missing_data_note,omitempty"`

	BaselineScore    int `json:"baseline_score"`
	TotalAdjustments int `json:"total_adjustments"`
	RawScore         int `json:"raw_score"` // before clamping
	FinalScore       int `json:"final_score"`

	ReferenceYear int            `json:"reference_year"`
	Breakdown     []FactorResult `json:"breakdown"`
}

// Clamped reports whether clamping changed the score.
func (f RiskFactors) Clamped() bool {
	return f.RawScore != f.FinalScore
}

// FactorResult is the output of a single scoring factor.
type FactorResult struct {
	Key         string   `json:"key"`  // machine key: "days_on_lot"
	Name        string   `json:"name"` // human name: "Days on lot"
	Impact      int      `json:"impact"`
	Severity    Severity `json:"severity"`
	Explanation string   `json:"explanation"`
}

// Severity indicates which way a factor pushed the score.
type Severity string

const (
	SeverityHigh    Severity = "HIGH"    // raised risk
	SeverityNeutral Severity = "NEUTRAL" // no effect
	SeverityLow     Severity = "LOW"     // lowered risk
)

// SeverityFromImpact maps a signed impact to a Severity.
func SeverityFromImpact(impact int) Severity {
	switch {
	case impact > 0:
		return SeverityHigh
	case impact < 0:
		return SeverityLow
	default:
		return SeverityNeutral
	}
}

// Source identifies which path produced the text of an assessment.
type Source string

const (
	SourceAlgorithmic Source = "algorithmic"
	SourceGenerator   Source = "generator"
)

// RiskAssessment is the result returned to callers. Never cached.
type RiskAssessment struct {
	Summary   string `json:"summary"`
	RiskScore int    `json:"risk_score"`
	Reasoning string `json:"reasoning"`
	Source    Source `json:"-"`
}

// Narrative is the text produced for an assessment, algorithmically or by a
// TextGenerator. RiskScore is advisory and gets clamped by the engine.
type Narrative struct {
	Summary   string
	RiskScore int
	Reasoning string
}

// RiskLevel buckets a final score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// LevelFromScore maps a final score to a RiskLevel.
func LevelFromScore(score int) RiskLevel {
	switch {
	case score <= 3:
		return RiskLow
	case score <= 6:
		return RiskModerate
	default:
		return RiskHigh
	}
}
