// Package vehicle defines the dealer inventory record scored by vinrisk,
// along with VIN normalization, raw field cleaning and the error taxonomy
// shared by the store, the engine and the transports.
package vehicle

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// VINLength is the fixed length of a vehicle identification number.
const VINLength = 17

// Valid model year range.
const (
	MinYear = 1980
	MaxYear = 2030
)

// Record is a single vehicle on the lot. Immutable once constructed via New.
type Record struct {
	VIN                  string          `json:"vin"`
	Year                 int             `json:"year"`
	Make                 string          `json:"make"`
	Model                string          `json:"model"`
	CurrentPrice         decimal.Decimal `json:"current_price"`
	PriceToMarketPercent float64         `json:"price_to_market_percent"` // 0 = unavailable
	DaysOnLot            int             `json:"days_on_lot"`
	Mileage              int             `json:"mileage"` // 0 = new vehicle
	TotalVDPs            int             `json:"total_vdps"`
	SalesOpportunities   int             `json:"sales_opportunities"`
}

// Fields holds the raw, already-typed inputs for a Record.
type Fields struct {
	VIN                  string
	Year                 int
	Make                 string
	Model                string
	CurrentPrice         decimal.Decimal
	PriceToMarketPercent float64
	DaysOnLot            int
	Mileage              int
	TotalVDPs            int
	SalesOpportunities   int
}

// NormalizeVIN trims surrounding whitespace and uppercases a VIN.
func NormalizeVIN(vin string) string {
	return strings.ToUpper(strings.TrimSpace(vin))
}

// ValidateVIN normalizes vin and checks its length.
func ValidateVIN(vin string) (string, error) {
	normalized := NormalizeVIN(vin)
	if utf8.RuneCountInString(normalized) != VINLength {
		return normalized, &ValidationError{Field: "vin", Reason: "VIN must be exactly 17 characters"}
	}
	return normalized, nil
}

// New validates f and builds a Record. VIN, make and model are normalized to
// uppercase.
func New(f Fields) (Record, error) {
	vin, err := ValidateVIN(f.VIN)
	if err != nil {
		return Record{}, err
	}
	if f.Year < MinYear || f.Year > MaxYear {
		return Record{}, &ValidationError{Field: "year", Reason: "year must be between 1980 and 2030"}
	}

	mfr := strings.ToUpper(strings.TrimSpace(f.Make))
	model := strings.ToUpper(strings.TrimSpace(f.Model))
	if mfr == "" {
		return Record{}, &ValidationError{Field: "make", Reason: "make is required"}
	}
	if model == "" {
		return Record{}, &ValidationError{Field: "model", Reason: "model is required"}
	}

	if f.CurrentPrice.IsNegative() {
		return Record{}, &ValidationError{Field: "current_price", Reason: "price must be non-negative"}
	}
	if f.PriceToMarketPercent < 0 {
		return Record{}, &ValidationError{Field: "price_to_market_percent", Reason: "price to market must be non-negative"}
	}

	counters := []struct {
		field string
		value int
	}{
		{"days_on_lot", f.DaysOnLot},
		{"mileage", f.Mileage},
		{"total_vdps", f.TotalVDPs},
		{"sales_opportunities", f.SalesOpportunities},
	}
	for _, c := range counters {
		if c.value < 0 {
			return Record{}, &ValidationError{Field: c.field, Reason: c.field + " must be non-negative"}
		}
	}

	return Record{
		VIN:                  vin,
		Year:                 f.Year,
		Make:                 mfr,
		Model:                model,
		CurrentPrice:         f.CurrentPrice,
		PriceToMarketPercent: f.PriceToMarketPercent,
		DaysOnLot:            f.DaysOnLot,
		Mileage:              f.Mileage,
		TotalVDPs:            f.TotalVDPs,
		SalesOpportunities:   f.SalesOpportunities,
	}, nil
}

// Age returns the vehicle age in whole years relative to referenceYear.
// It may be negative for next-model-year stock.
func (r Record) Age(referenceYear int) int {
	return referenceYear - r.Year
}

// HasPrice reports whether the record carries a non-zero asking price.
func (r Record) HasPrice() bool {
	return !r.CurrentPrice.IsZero()
}

// HasMarketComparison reports whether price-to-market data is available.
func (r Record) HasMarketComparison() bool {
	return r.PriceToMarketPercent != 0
}
