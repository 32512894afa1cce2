package scoring

import (
	"fmt"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// DaysOnLotFactor rewards fresh inventory and penalizes stale inventory.
type DaysOnLotFactor struct {
	Fresh int // days < Fresh: -2
	Stale int // days > Stale: +2
}

func (f *DaysOnLotFactor) Key() string  { return "days_on_lot" }
func (f *DaysOnLotFactor) Name() string { return "Days on lot" }

func (f *DaysOnLotFactor) Evaluate(rec vehicle.Record, _ int) FactorResult {
	days := rec.DaysOnLot

	var impact int
	var detail string
	switch {
	case days < f.Fresh:
		impact = -2
		detail = fmt.Sprintf("a fresh arrival under %d days", f.Fresh)
	case days <= f.Stale:
		impact = 0
		detail = fmt.Sprintf("within the normal %d-%d day range", f.Fresh, f.Stale)
	default:
		impact = 2
		detail = fmt.Sprintf("beyond %d days and aging", f.Stale)
	}

	return FactorResult{
		Key:         f.Key(),
		Name:        f.Name(),
		Impact:      impact,
		Severity:    SeverityFromImpact(impact),
		Explanation: fmt.Sprintf("Days on lot (%s) is %s (%s).", FormatCount(days), detail, signed(impact)),
	}
}
