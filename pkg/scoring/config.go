package scoring

// Thresholds holds the cut-offs and bounds used by every factor.
type Thresholds struct {
	BaselineScore int
	MinScore      int
	MaxScore      int

	// Days on lot
	DaysFresh int // below this: fresh arrival
	DaysStale int // above this: extended stay

	// Price to market, in percent
	PriceBelowMarket float64 // at or below: competitively priced
	PriceAboveMarket float64 // above: overpriced

	// VDP views (lifetime)
	ViewsStrong int // above: strong engagement
	ViewsWeak   int // below: weak engagement

	// Mileage against MilesPerYear * age, as tenths of the expectation
	MilesPerYear      int
	MileageLowTenths  int
	MileageHighTenths int

	// Sales opportunities (lifetime)
	OpportunitiesMany int // above: many leads
	OpportunitiesFew  int // at or below: few leads

	// Missing data
	MissingDaysHigh int // no market data and more days than this: +1
	MissingDaysLow  int // no market data and fewer days than this: -1
}

// Defaults returns the standard thresholds.
func Defaults() Thresholds {
	return Thresholds{
		BaselineScore: 5,
		MinScore:      1,
		MaxScore:      10,

		DaysFresh: 15,
		DaysStale: 45,

		PriceBelowMarket: 95,
		PriceAboveMarket: 105,

		ViewsStrong: 200,
		ViewsWeak:   50,

		MilesPerYear:      12000,
		MileageLowTenths:  8,
		MileageHighTenths: 12,

		OpportunitiesMany: 10,
		OpportunitiesFew:  2,

		MissingDaysHigh: 100,
		MissingDaysLow:  10,
	}
}
