package scoring_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

func TestSummaryAccord(t *testing.T) {
	a := newEngine().Assess(context.Background(), accord(t))

	want := "This 2018 Honda Accord is priced below market value, with moderate online engagement and a typical time on the lot, indicating a low-risk position."
	if a.Summary != want {
		t.Errorf("Summary =\n  %q\nwant\n  %q", a.Summary, want)
	}
}

func TestSummaryPhrases(t *testing.T) {
	tests := []struct {
		name   string
		rec    func(*testing.T) vehicle.Record
		substr []string
	}{
		{"low risk", lowRisk, []string{"2023 Honda Accord", "strong online engagement", "a fresh arrival on the lot", "low-risk"}},
		{"high risk", highRisk, []string{"2020 Toyota Camry", "priced above market value", "weak online engagement", "an extended time on the lot", "high-risk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newEngine().Assess(context.Background(), tt.rec(t))
			for _, s := range tt.substr {
				if !strings.Contains(a.Summary, s) {
					t.Errorf("summary %q missing %q", a.Summary, s)
				}
			}
		})
	}
}

func TestSummaryWithoutMarketData(t *testing.T) {
	rec := mustRecord(t, vehicle.Fields{
		VIN: "3HGCM82633A123458", Year: 2020, Make: "NISSAN", Model: "ALTIMA",
		DaysOnLot: 100, TotalVDPs: 60, SalesOpportunities: 4,
	})
	a := newEngine().Assess(context.Background(), rec)
	if !strings.Contains(a.Summary, "priced without market comparison data") {
		t.Errorf("summary %q should mention missing market data", a.Summary)
	}
	if !strings.Contains(a.Reasoning, "Missing data adjustment: no listed price (+1).") {
		t.Errorf("reasoning %q should explain the missing price", a.Reasoning)
	}
	if !strings.Contains(a.Reasoning, "unavailable") {
		t.Errorf("reasoning %q should note the unavailable market comparison", a.Reasoning)
	}
}

func TestReasoningCoversEveryFactor(t *testing.T) {
	a := newEngine().Assess(context.Background(), accord(t))

	for _, s := range []string{"Days on lot", "Price is", "VDP views", "miles", "opportunities", "Overall score"} {
		if !strings.Contains(a.Reasoning, s) {
			t.Errorf("reasoning missing %q:\n%s", s, a.Reasoning)
		}
	}
	for _, s := range []string{"50,000", "84,000"} {
		if !strings.Contains(a.Reasoning, s) {
			t.Errorf("reasoning should format %s with separators:\n%s", s, a.Reasoning)
		}
	}
}

func TestScoreLine(t *testing.T) {
	f := newEngine().Factors(accord(t))
	want := "Overall score = 5 baseline +0 (days_on_lot) -2 (price_to_market) +0 (vdp_views) -1 (mileage) +0 (sales_opportunities) = 2."
	if got := scoring.ScoreLine(f); got != want {
		t.Errorf("ScoreLine =\n  %q\nwant\n  %q", got, want)
	}

	a := newEngine().Assess(context.Background(), accord(t))
	if !strings.HasSuffix(a.Reasoning, want) {
		t.Errorf("reasoning should end with the score line:\n%s", a.Reasoning)
	}
}

func TestScoreLineClamped(t *testing.T) {
	f := newEngine().Factors(highRisk(t))
	if got := scoring.ScoreLine(f); !strings.HasSuffix(got, "= 12, clamped to 10.") {
		t.Errorf("ScoreLine = %q, want clamp note", got)
	}

	rec := mustRecord(t, vehicle.Fields{
		VIN: "3HGCM82633A123458", Year: 2020, Make: "NISSAN", Model: "ALTIMA",
		CurrentPrice: decimal.Zero, DaysOnLot: 150, Mileage: 50000, TotalVDPs: 100, SalesOpportunities: 5,
	})
	if got := scoring.ScoreLine(newEngine().Factors(rec)); !strings.Contains(got, "+2 (missing_data)") {
		t.Errorf("ScoreLine = %q, want missing_data term", got)
	}
}

func TestLevelFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  scoring.RiskLevel
	}{
		{1, scoring.RiskLow},
		{3, scoring.RiskLow},
		{4, scoring.RiskModerate},
		{6, scoring.RiskModerate},
		{7, scoring.RiskHigh},
		{10, scoring.RiskHigh},
	}
	for _, tt := range tests {
		if got := scoring.LevelFromScore(tt.score); got != tt.want {
			t.Errorf("LevelFromScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestFormatting(t *testing.T) {
	if got := scoring.FormatCount(1234567); got != "1,234,567" {
		t.Errorf("FormatCount = %q", got)
	}
	if got := scoring.FormatPercent(98.5); got != "98.5" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := scoring.Title("HONDA"); got != "Honda" {
		t.Errorf("Title = %q", got)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"25000", "$25,000"},
		{"0", "$0"},
		{"1234.5", "$1,234.50"},
		{"999.99", "$999.99"},
	}
	for _, tt := range tests {
		if got := scoring.FormatPrice(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatPrice(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
