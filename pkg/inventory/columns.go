package inventory

import "strings"

// Row is one source row: column name to raw string value.
type Row map[string]string

// Columns maps source column headers onto record fields.
type Columns struct {
	VIN                  string `yaml:"vin"`
	Year                 string `yaml:"year"`
	Make                 string `yaml:"make"`
	Model                string `yaml:"model"`
	CurrentPrice         string `yaml:"current_price"`
	PriceToMarketPercent string `yaml:"price_to_market_percent"`
	DaysOnLot            string `yaml:"days_on_lot"`
	Mileage              string `yaml:"mileage"`
	TotalVDPs            string `yaml:"total_vdps"`
	SalesOpportunities   string `yaml:"sales_opportunities"`
}

// DefaultColumns returns the headers used by the dealer inventory export.
func DefaultColumns() Columns {
	return Columns{
		VIN:                  "VIN",
		Year:                 "Year",
		Make:                 "Make",
		Model:                "Model",
		CurrentPrice:         "Current price",
		PriceToMarketPercent: "Current price to market %",
		DaysOnLot:            "DOL",
		Mileage:              "Mileage",
		TotalVDPs:            "Total VDPs (lifetime)",
		SalesOpportunities:   "Total sales opportunities (lifetime)",
	}
}

// SQLColumns returns snake_case names used by the vehicle_inventory table.
func SQLColumns() Columns {
	return Columns{
		VIN:                  "vin",
		Year:                 "year",
		Make:                 "make",
		Model:                "model",
		CurrentPrice:         "current_price",
		PriceToMarketPercent: "price_to_market_percent",
		DaysOnLot:            "days_on_lot",
		Mileage:              "mileage",
		TotalVDPs:            "total_vdps",
		SalesOpportunities:   "sales_opportunities",
	}
}

// withDefaults fills any empty mapping from DefaultColumns.
func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.VIN, d.VIN)
	fill(&c.Year, d.Year)
	fill(&c.Make, d.Make)
	fill(&c.Model, d.Model)
	fill(&c.CurrentPrice, d.CurrentPrice)
	fill(&c.PriceToMarketPercent, d.PriceToMarketPercent)
	fill(&c.DaysOnLot, d.DaysOnLot)
	fill(&c.Mileage, d.Mileage)
	fill(&c.TotalVDPs, d.TotalVDPs)
	fill(&c.SalesOpportunities, d.SalesOpportunities)
	return c
}

// lookup returns the value of column name in row. An exact match wins;
// otherwise headers are compared case-insensitively after trimming.
func (r Row) lookup(name string) (string, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for k, v := range r {
		if strings.ToLower(strings.TrimSpace(k)) == want {
			return v, true
		}
	}
	return "", false
}

// get is lookup with a default for absent columns.
func (r Row) get(name, def string) string {
	if v, ok := r.lookup(name); ok {
		return v
	}
	return def
}
