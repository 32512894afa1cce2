package scoring

import (
	"fmt"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// VDPViewsFactor scores online engagement by lifetime detail-page views.
type VDPViewsFactor struct {
	Strong int // views > Strong: -1
	Weak   int // views < Weak: +1
}

func (f *VDPViewsFactor) Key() string  { return "vdp_views" }
func (f *VDPViewsFactor) Name() string { return "VDP views" }

func (f *VDPViewsFactor) Evaluate(rec vehicle.Record, _ int) FactorResult {
	views := rec.TotalVDPs

	var impact int
	var detail string
	switch {
	case views > f.Strong:
		impact = -1
		detail = "high"
	case views >= f.Weak:
		impact = 0
		detail = "moderate"
	default:
		impact = 1
		detail = "low"
	}

	return FactorResult{
		Key:         f.Key(),
		Name:        f.Name(),
		Impact:      impact,
		Severity:    SeverityFromImpact(impact),
		Explanation: fmt.Sprintf("VDP views (%s) are %s (%s).", FormatCount(views), detail, signed(impact)),
	}
}
