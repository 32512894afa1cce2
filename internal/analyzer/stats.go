package analyzer

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// DatabaseStats summarizes the loaded dataset.
type DatabaseStats struct {
	TotalVehicles int         `json:"total_vehicles"`
	Makes         []string    `json:"makes"`
	YearRange     *YearRange  `json:"year_range"`
	PriceRange    *PriceRange `json:"price_range"`
}

// YearRange is the span of model years.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PriceRange covers records with a listed (non-zero) price. Avg is rounded
// to cents.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
	Avg decimal.Decimal
}

// MarshalJSON writes the amounts as JSON numbers rather than strings.
func (p PriceRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min json.Number `json:"min"`
		Max json.Number `json:"max"`
		Avg json.Number `json:"avg"`
	}{
		Min: json.Number(p.Min.String()),
		Max: json.Number(p.Max.String()),
		Avg: json.Number(p.Avg.StringFixed(2)),
	})
}

// Stats computes dataset statistics. It never fails; an empty store gives
// zero counts and nil ranges.
func (a *Analyzer) Stats() DatabaseStats {
	records := a.store.All()
	stats := DatabaseStats{
		TotalVehicles: len(records),
		Makes:         []string{},
	}
	if len(records) == 0 {
		return stats
	}

	makes := make(map[string]bool)
	years := YearRange{Min: records[0].Year, Max: records[0].Year}

	var priced int
	var total decimal.Decimal
	var prices PriceRange

	for _, rec := range records {
		makes[rec.Make] = true
		if rec.Year < years.Min {
			years.Min = rec.Year
		}
		if rec.Year > years.Max {
			years.Max = rec.Year
		}

		if !rec.HasPrice() {
			continue
		}
		if priced == 0 || rec.CurrentPrice.LessThan(prices.Min) {
			prices.Min = rec.CurrentPrice
		}
		if priced == 0 || rec.CurrentPrice.GreaterThan(prices.Max) {
			prices.Max = rec.CurrentPrice
		}
		total = total.Add(rec.CurrentPrice)
		priced++
	}

	for m := range makes {
		stats.Makes = append(stats.Makes, m)
	}
	sort.Strings(stats.Makes)
	stats.YearRange = &years

	if priced > 0 {
		prices.Avg = total.Div(decimal.NewFromInt(int64(priced))).Round(2)
		stats.PriceRange = &prices
	}

	return stats
}
