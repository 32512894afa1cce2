package scoring

import (
	"fmt"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// PriceToMarketFactor scores the asking price against the market average.
// A zero percentage means "no comparison available" but still falls into the
// lowest bracket; the missing-data adjustment accounts for it separately.
type PriceToMarketFactor struct {
	Below float64 // ptm <= Below: -2
	Above float64 // ptm > Above: +2
}

func (f *PriceToMarketFactor) Key() string  { return "price_to_market" }
func (f *PriceToMarketFactor) Name() string { return "Price to market" }

func (f *PriceToMarketFactor) Evaluate(rec vehicle.Record, _ int) FactorResult {
	ptm := rec.PriceToMarketPercent

	var impact int
	switch {
	case ptm <= f.Below:
		impact = -2
	case ptm <= f.Above:
		impact = 0
	default:
		impact = 2
	}

	var text string
	switch {
	case !rec.HasMarketComparison():
		text = fmt.Sprintf("Price to market is unavailable and is scored as at or below market (%s).", signed(impact))
	case impact < 0:
		text = fmt.Sprintf("Price is %s%% of market, at or below %s%% (%s).", FormatPercent(ptm), FormatPercent(f.Below), signed(impact))
	case impact == 0:
		text = fmt.Sprintf("Price is %s%% of market, in line with the market (%s).", FormatPercent(ptm), signed(impact))
	default:
		text = fmt.Sprintf("Price is %s%% of market, above %s%% (%s).", FormatPercent(ptm), FormatPercent(f.Above), signed(impact))
	}

	return FactorResult{
		Key:         f.Key(),
		Name:        f.Name(),
		Impact:      impact,
		Severity:    SeverityFromImpact(impact),
		Explanation: text,
	}
}
