package scoring

import (
	"fmt"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// MileageFactor compares mileage with MilesPerYear per year of age.
// Zero mileage is a new vehicle and always scores -1.
type MileageFactor struct {
	MilesPerYear int
	LowTenths    int // 10*miles < LowTenths*expected: -1
	HighTenths   int // 10*miles > HighTenths*expected: +1
}

func (f *MileageFactor) Key() string  { return "mileage" }
func (f *MileageFactor) Name() string { return "Mileage" }

// Expected returns the expected mileage at referenceYear.
func (f *MileageFactor) Expected(rec vehicle.Record, referenceYear int) int {
	return f.MilesPerYear * rec.Age(referenceYear)
}

func (f *MileageFactor) Evaluate(rec vehicle.Record, referenceYear int) FactorResult {
	result := FactorResult{Key: f.Key(), Name: f.Name()}

	if rec.Mileage == 0 {
		result.Impact = -1
		result.Severity = SeverityFromImpact(-1)
		result.Explanation = "Mileage is 0 miles, a new vehicle (-1)."
		return result
	}

	expected := f.Expected(rec, referenceYear)
	scaled := 10 * rec.Mileage

	var detail string
	switch {
	case scaled < f.LowTenths*expected:
		result.Impact = -1
		detail = "below average"
	case scaled <= f.HighTenths*expected:
		result.Impact = 0
		detail = "about average"
	default:
		result.Impact = 1
		detail = "above average"
	}

	result.Severity = SeverityFromImpact(result.Impact)
	result.Explanation = fmt.Sprintf("Mileage of %s miles is %s against %s expected for a %d model year (%s).",
		FormatCount(rec.Mileage), detail, FormatCount(expected), rec.Year, signed(result.Impact))
	return result
}
