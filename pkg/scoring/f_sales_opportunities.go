package scoring

import (
	"fmt"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// SalesOpportunitiesFactor scores buyer interest by lifetime leads.
type SalesOpportunitiesFactor struct {
	Many int // opportunities > Many: -1
	Few  int // opportunities <= Few: +1
}

func (f *SalesOpportunitiesFactor) Key() string  { return "sales_opportunities" }
func (f *SalesOpportunitiesFactor) Name() string { return "Sales opportunities" }

func (f *SalesOpportunitiesFactor) Evaluate(rec vehicle.Record, _ int) FactorResult {
	n := rec.SalesOpportunities

	var impact int
	var detail string
	switch {
	case n > f.Many:
		impact = -1
		detail = "strong buyer interest"
	case n > f.Few:
		impact = 0
		detail = "moderate buyer interest"
	default:
		impact = 1
		detail = "little buyer interest"
	}

	return FactorResult{
		Key:         f.Key(),
		Name:        f.Name(),
		Impact:      impact,
		Severity:    SeverityFromImpact(impact),
		Explanation: fmt.Sprintf("Sales opportunities (%s) show %s (%s).", FormatCount(n), detail, signed(impact)),
	}
}
