package llm

import (
	"fmt"
	"strings"

	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// buildAssessmentPrompt lays out the vehicle data and the already computed
// factors. The model explains the score; it does not recompute it.
func buildAssessmentPrompt(rec vehicle.Record, f scoring.RiskFactors) (prompt string) {
	price := "not listed"
	if rec.HasPrice() {
		price = scoring.FormatPrice(rec.CurrentPrice)
	}
	ptm := "not available"
	if rec.HasMarketComparison() {
		ptm = scoring.FormatPercent(rec.PriceToMarketPercent) + "%"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this vehicle's inventory risk and explain the calculated score.\n\n")
	fmt.Fprintf(&b, "VEHICLE DATA:\n")
	fmt.Fprintf(&b, "- VIN: %s\n", rec.VIN)
	fmt.Fprintf(&b, "- Vehicle: %d %s %s\n", rec.Year, scoring.Title(rec.Make), scoring.Title(rec.Model))
	fmt.Fprintf(&b, "- Current Price: %s\n", price)
	fmt.Fprintf(&b, "- Price to Market: %s\n", ptm)
	fmt.Fprintf(&b, "- Days on Lot: %s\n", scoring.FormatCount(rec.DaysOnLot))
	fmt.Fprintf(&b, "- Mileage: %s\n", scoring.FormatCount(rec.Mileage))
	fmt.Fprintf(&b, "- Total VDP Views: %s\n", scoring.FormatCount(rec.TotalVDPs))
	fmt.Fprintf(&b, "- Sales Opportunities: %s\n\n", scoring.FormatCount(rec.SalesOpportunities))

	fmt.Fprintf(&b, "RISK FACTORS (baseline %d):\n", f.BaselineScore)
	fmt.Fprintf(&b, "- Days on Lot Impact: %+d\n", f.DaysOnLotImpact)
	fmt.Fprintf(&b, "- Price to Market Impact: %+d\n", f.PriceToMarketImpact)
	fmt.Fprintf(&b, "- VDP Views Impact: %+d\n", f.VDPViewsImpact)
	fmt.Fprintf(&b, "- Mileage Impact: %+d\n", f.MileageImpact)
	fmt.Fprintf(&b, "- Sales Opportunities Impact: %+d\n", f.SalesOpportunitiesImpact)
	fmt.Fprintf(&b, "- Missing Data Adjustment: %+d\n", f.MissingDataAdjustment)
	fmt.Fprintf(&b, "- Calculated Risk Score: %d\n\n", f.FinalScore)

	fmt.Fprintf(&b, `Respond with a JSON object only, no markdown, in this exact shape:
{
  "summary": "one or two sentences describing the vehicle's market position",
  "risk_score": %d,
  "reasoning": "one sentence per factor, ending with the score arithmetic"
}

risk_score must be an integer from 1 to 10 and should match the calculated score.`, f.FinalScore)

	prompt = b.String()
	return prompt
}
