package scoring

import (
	"fmt"
	"strings"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// missingData computes the adjustment for absent price or market data.
// The rules are independent and their effects add up.
func missingData(rec vehicle.Record, t Thresholds) (int, string) {
	var adj int
	var notes []string

	if !rec.HasPrice() {
		adj++
		notes = append(notes, "no listed price (+1)")
	}
	if !rec.HasMarketComparison() {
		switch {
		case rec.DaysOnLot > t.MissingDaysHigh:
			adj++
			notes = append(notes, fmt.Sprintf("no market comparison after %s days on lot (+1)", FormatCount(rec.DaysOnLot)))
		case rec.DaysOnLot < t.MissingDaysLow:
			adj--
			notes = append(notes, fmt.Sprintf("no market comparison yet with only %s days on lot (-1)", FormatCount(rec.DaysOnLot)))
		}
	}

	if len(notes) == 0 {
		return 0, ""
	}
	return adj, "Missing data adjustment: " + strings.Join(notes, "; ") + "."
}
