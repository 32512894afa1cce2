package scoring

// DefaultFactors returns the five standard factors in explanation order.
func DefaultFactors() []Factor {
	return FactorsFor(Defaults())
}

// FactorsFor builds the standard factors from custom thresholds.
func FactorsFor(t Thresholds) []Factor {
	return []Factor{
		&DaysOnLotFactor{Fresh: t.DaysFresh, Stale: t.DaysStale},
		&PriceToMarketFactor{Below: t.PriceBelowMarket, Above: t.PriceAboveMarket},
		&VDPViewsFactor{Strong: t.ViewsStrong, Weak: t.ViewsWeak},
		&MileageFactor{
			MilesPerYear: t.MilesPerYear,
			LowTenths:    t.MileageLowTenths,
			HighTenths:   t.MileageHighTenths,
		},
		&SalesOpportunitiesFactor{Many: t.OpportunitiesMany, Few: t.OpportunitiesFew},
	}
}
