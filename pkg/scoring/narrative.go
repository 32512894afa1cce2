package scoring

import (
	"fmt"
	"strings"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// Narrator produces the deterministic summary and reasoning for a score.
type Narrator struct {
	Thresholds Thresholds
}

// Narrate renders the algorithmic narrative. The same inputs always give the
// same text.
func (n *Narrator) Narrate(rec vehicle.Record, f RiskFactors) Narrative {
	return Narrative{
		Summary:   n.summary(rec, f),
		RiskScore: f.FinalScore,
		Reasoning: n.reasoning(f),
	}
}

func (n *Narrator) summary(rec vehicle.Record, f RiskFactors) string {
	return fmt.Sprintf("This %d %s %s is %s, with %s and %s, %s.",
		rec.Year, Title(rec.Make), Title(rec.Model),
		n.pricePhrase(rec), n.engagementPhrase(rec), n.daysPhrase(rec), riskPhrase(f.FinalScore))
}

func (n *Narrator) pricePhrase(rec vehicle.Record) string {
	ptm := rec.PriceToMarketPercent
	switch {
	case !rec.HasMarketComparison():
		return "priced without market comparison data"
	case ptm <= n.Thresholds.PriceBelowMarket:
		return "priced below market value"
	case ptm <= n.Thresholds.PriceAboveMarket:
		return "priced at market value"
	default:
		return "priced above market value"
	}
}

func (n *Narrator) engagementPhrase(rec vehicle.Record) string {
	switch {
	case rec.TotalVDPs > n.Thresholds.ViewsStrong:
		return "strong online engagement"
	case rec.TotalVDPs >= n.Thresholds.ViewsWeak:
		return "moderate online engagement"
	default:
		return "weak online engagement"
	}
}

func (n *Narrator) daysPhrase(rec vehicle.Record) string {
	switch {
	case rec.DaysOnLot < n.Thresholds.DaysFresh:
		return "a fresh arrival on the lot"
	case rec.DaysOnLot <= n.Thresholds.DaysStale:
		return "a typical time on the lot"
	default:
		return "an extended time on the lot"
	}
}

func riskPhrase(score int) string {
	switch LevelFromScore(score) {
	case RiskLow:
		return "indicating a low-risk position"
	case RiskModerate:
		return "indicating a moderate-risk position"
	default:
		return "indicating a high-risk position"
	}
}

func (n *Narrator) reasoning(f RiskFactors) string {
	var sentences []string
	for _, fr := range f.Breakdown {
		sentences = append(sentences, fr.Explanation)
	}
	if f.MissingDataNote != "" {
		sentences = append(sentences, f.MissingDataNote)
	}
	sentences = append(sentences, ScoreLine(f))
	return strings.Join(sentences, " ")
}

// ScoreLine renders the arithmetic behind the final score, for example
// "Overall score = 5 baseline +0 (days_on_lot) -2 (price_to_market) = 3."
func ScoreLine(f RiskFactors) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall score = %d baseline", f.BaselineScore)
	for _, fr := range f.Breakdown {
		fmt.Fprintf(&b, " %s (%s)", signed(fr.Impact), fr.Key)
	}
	if f.MissingDataAdjustment != 0 {
		fmt.Fprintf(&b, " %s (missing_data)", signed(f.MissingDataAdjustment))
	}
	fmt.Fprintf(&b, " = %d", f.RawScore)
	if f.Clamped() {
		fmt.Fprintf(&b, ", clamped to %d", f.FinalScore)
	}
	b.WriteString(".")
	return b.String()
}
