package scoring_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) }
}

func mustRecord(t *testing.T, f vehicle.Fields) vehicle.Record {
	t.Helper()
	rec, err := vehicle.New(f)
	if err != nil {
		t.Fatalf("vehicle.New: %v", err)
	}
	return rec
}

func accord(t *testing.T) vehicle.Record {
	return mustRecord(t, vehicle.Fields{
		VIN:                  "1HGCM82633A123456",
		Year:                 2018,
		Make:                 "HONDA",
		Model:                "ACCORD",
		CurrentPrice:         decimal.NewFromInt(25000),
		PriceToMarketPercent: 95,
		DaysOnLot:            25,
		Mileage:              50000,
		TotalVDPs:            150,
		SalesOpportunities:   5,
	})
}

func lowRisk(t *testing.T) vehicle.Record {
	return mustRecord(t, vehicle.Fields{
		VIN:                  "1HGCM82633A000001",
		Year:                 2023,
		Make:                 "HONDA",
		Model:                "ACCORD",
		CurrentPrice:         decimal.NewFromInt(28000),
		PriceToMarketPercent: 90,
		DaysOnLot:            10,
		Mileage:              0,
		TotalVDPs:            250,
		SalesOpportunities:   15,
	})
}

func highRisk(t *testing.T) vehicle.Record {
	return mustRecord(t, vehicle.Fields{
		VIN:                  "1HGCM82633A000002",
		Year:                 2020,
		Make:                 "TOYOTA",
		Model:                "CAMRY",
		CurrentPrice:         decimal.NewFromInt(31000),
		PriceToMarketPercent: 110,
		DaysOnLot:            60,
		Mileage:              120000,
		TotalVDPs:            30,
		SalesOpportunities:   1,
	})
}

func newEngine(opts ...scoring.Option) *scoring.Engine {
	base := []scoring.Option{scoring.WithClock(fixedClock(2025)), scoring.WithLogger(log.New(&bytes.Buffer{}, "", 0))}
	return scoring.NewEngine(append(base, opts...)...)
}

func TestAccordScenario(t *testing.T) {
	f := newEngine().Factors(accord(t))

	if f.ReferenceYear != 2025 {
		t.Errorf("ReferenceYear = %d, want 2025", f.ReferenceYear)
	}
	if f.DaysOnLotImpact != 0 || f.PriceToMarketImpact != -2 || f.VDPViewsImpact != 0 || f.SalesOpportunitiesImpact != 0 {
		t.Errorf("unexpected impacts: %+v", f)
	}
	// 50,000 miles against 84,000 expected is below 0.8x.
	if f.MileageImpact != -1 {
		t.Errorf("MileageImpact = %d, want -1", f.MileageImpact)
	}
	if f.MissingDataAdjustment != 0 {
		t.Errorf("MissingDataAdjustment = %d, want 0", f.MissingDataAdjustment)
	}
	if f.BaselineScore != 5 || f.TotalAdjustments != -3 || f.FinalScore != 2 {
		t.Errorf("baseline/total/final = %d/%d/%d, want 5/-3/2", f.BaselineScore, f.TotalAdjustments, f.FinalScore)
	}
	if len(f.Breakdown) != 5 {
		t.Errorf("expected 5 breakdown entries, got %d", len(f.Breakdown))
	}
}

func TestLowRiskClampsToOne(t *testing.T) {
	f := newEngine().Factors(lowRisk(t))

	if f.DaysOnLotImpact != -2 || f.PriceToMarketImpact != -2 || f.VDPViewsImpact != -1 ||
		f.MileageImpact != -1 || f.SalesOpportunitiesImpact != -1 {
		t.Errorf("unexpected impacts: %+v", f)
	}
	if f.RawScore != -2 || f.FinalScore != 1 || !f.Clamped() {
		t.Errorf("raw/final = %d/%d, want -2/1 clamped", f.RawScore, f.FinalScore)
	}
}

func TestHighRiskClampsToTen(t *testing.T) {
	f := newEngine().Factors(highRisk(t))

	if f.DaysOnLotImpact != 2 || f.PriceToMarketImpact != 2 || f.VDPViewsImpact != 1 ||
		f.MileageImpact != 1 || f.SalesOpportunitiesImpact != 1 {
		t.Errorf("unexpected impacts: %+v", f)
	}
	if f.RawScore != 12 || f.FinalScore != 10 {
		t.Errorf("raw/final = %d/%d, want 12/10", f.RawScore, f.FinalScore)
	}
}

func TestMissingDataAdjustment(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		ptm   float64
		days  int
		want  int
	}{
		{"complete data", 20000, 100, 50, 0},
		{"no price", 0, 100, 50, 1},
		{"no market data, long stay", 20000, 0, 150, 1},
		{"no market data, fresh", 20000, 0, 5, -1},
		{"no market data, middle", 20000, 0, 50, 0},
		{"no price, no market data, long stay", 0, 0, 150, 2},
		{"no market data at 100 days", 20000, 0, 100, 0},
		{"no market data at 10 days", 20000, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := mustRecord(t, vehicle.Fields{
				VIN: "1HGCM82633A123456", Year: 2020, Make: "HONDA", Model: "ACCORD",
				CurrentPrice: decimal.NewFromInt(tt.price), PriceToMarketPercent: tt.ptm,
				DaysOnLot: tt.days, Mileage: 50000, TotalVDPs: 100, SalesOpportunities: 5,
			})
			f := newEngine().Factors(rec)
			if f.MissingDataAdjustment != tt.want {
				t.Errorf("MissingDataAdjustment = %d, want %d", f.MissingDataAdjustment, tt.want)
			}
			if tt.want == 0 && f.MissingDataNote != "" {
				t.Errorf("unexpected note %q", f.MissingDataNote)
			}
		})
	}
}

func TestZeroPriceToMarketKeepsTableImpact(t *testing.T) {
	rec := mustRecord(t, vehicle.Fields{
		VIN: "3HGCM82633A123458", Year: 2020, Make: "NISSAN", Model: "ALTIMA",
		DaysOnLot: 150, Mileage: 50000, TotalVDPs: 100, SalesOpportunities: 5,
	})
	f := newEngine().Factors(rec)

	if f.PriceToMarketImpact != -2 {
		t.Errorf("PriceToMarketImpact = %d, want -2", f.PriceToMarketImpact)
	}
	if f.MissingDataAdjustment != 2 {
		t.Errorf("MissingDataAdjustment = %d, want 2", f.MissingDataAdjustment)
	}
	// +2 days, -2 price, +0 views, +0 mileage, +0 opportunities, +2 missing
	if f.FinalScore != 7 {
		t.Errorf("FinalScore = %d, want 7", f.FinalScore)
	}
}

func TestFactorsDeterministic(t *testing.T) {
	e := newEngine()
	rec := accord(t)

	a := e.Factors(rec)
	b := e.Factors(rec)
	if a.FinalScore != b.FinalScore || a.TotalAdjustments != b.TotalAdjustments {
		t.Error("repeated computation should give identical factors")
	}

	x := e.Assess(context.Background(), rec)
	y := e.Assess(context.Background(), rec)
	if x != y {
		t.Errorf("algorithmic assessment should be deterministic:\n%+v\n%+v", x, y)
	}
}

func TestReferenceYearComesFromClock(t *testing.T) {
	rec := accord(t)

	// In 2022 the expectation is 48,000 miles, so 50,000 is about average.
	f := newEngine(scoring.WithClock(fixedClock(2022))).Factors(rec)
	if f.ReferenceYear != 2022 || f.MileageImpact != 0 {
		t.Errorf("ReferenceYear/MileageImpact = %d/%d, want 2022/0", f.ReferenceYear, f.MileageImpact)
	}
	if got := newEngine().FactorsAt(rec, 2022); got.MileageImpact != 0 {
		t.Errorf("FactorsAt(2022) mileage impact = %d, want 0", got.MileageImpact)
	}
}

func TestCustomThresholds(t *testing.T) {
	th := scoring.Defaults()
	th.DaysStale = 20
	f := newEngine(scoring.WithThresholds(th)).Factors(accord(t))
	if f.DaysOnLotImpact != 2 {
		t.Errorf("DaysOnLotImpact = %d, want 2 with a 20-day stale cut-off", f.DaysOnLotImpact)
	}
}

func TestAssessAlgorithmic(t *testing.T) {
	e := newEngine()
	if e.UsesGenerator() {
		t.Fatal("engine without generator should be algorithmic")
	}

	a := e.Assess(context.Background(), accord(t))
	if a.Source != scoring.SourceAlgorithmic {
		t.Errorf("Source = %s, want algorithmic", a.Source)
	}
	if a.RiskScore != 2 {
		t.Errorf("RiskScore = %d, want 2", a.RiskScore)
	}
	if a.Summary == "" || a.Reasoning == "" {
		t.Error("expected non-empty summary and reasoning")
	}
}

func TestAssessConcurrent(t *testing.T) {
	e := newEngine()
	recs := []vehicle.Record{
		accord(t),
		highRisk(t),
		mustRecord(t, vehicle.Fields{
			VIN:                  "WD3PE8CC5E5123456",
			Year:                 2014,
			Make:                 "MERCEDES-BENZ",
			Model:                "SPRINTER CARGO VAN",
			CurrentPrice:         decimal.NewFromInt(21500),
			PriceToMarketPercent: 93,
			DaysOnLot:            40,
			Mileage:              140000,
			TotalVDPs:            90,
			SalesOpportunities:   3,
		}),
	}

	want := make([]scoring.RiskAssessment, len(recs))
	for i, rec := range recs {
		want[i] = e.Assess(context.Background(), rec)
	}

	const workers, rounds = 16, 200
	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				idx := (w + i) % len(recs)
				got := e.Assess(context.Background(), recs[idx])
				if got != want[idx] {
					errs <- fmt.Sprintf("worker %d: got %+v, want %+v", w, got, want[idx])
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}

func TestTitleConcurrent(t *testing.T) {
	inputs := map[string]string{
		"HONDA ACCORD":       "Honda Accord",
		"MERCEDES-BENZ":      "Mercedes-Benz",
		"SPRINTER CARGO VAN": "Sprinter Cargo Van",
	}
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				for in, want := range inputs {
					if got := scoring.Title(in); got != want {
						t.Errorf("Title(%q) = %q, want %q", in, got, want)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

// fakeGenerator returns a canned narrative or error.
type fakeGenerator struct {
	n     scoring.Narrative
	err   error
	block bool
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context, rec vehicle.Record, f scoring.RiskFactors) (scoring.Narrative, error) {
	g.calls++
	if g.block {
		<-ctx.Done()
		return scoring.Narrative{}, ctx.Err()
	}
	return g.n, g.err
}

func factory(g scoring.TextGenerator) scoring.GeneratorFactory {
	return func() (scoring.TextGenerator, error) { return g, nil }
}

func TestAssessUsesGenerator(t *testing.T) {
	gen := &fakeGenerator{n: scoring.Narrative{Summary: "Generated summary.", RiskScore: 4, Reasoning: "Generated reasoning."}}
	e := newEngine(scoring.WithGenerator(factory(gen)))
	if !e.UsesGenerator() {
		t.Fatal("expected generator mode")
	}

	a := e.Assess(context.Background(), accord(t))
	if a.Source != scoring.SourceGenerator || a.Summary != "Generated summary." || a.RiskScore != 4 {
		t.Errorf("unexpected assessment: %+v", a)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestAssessClampsGeneratorScore(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{15, 10},
		{0, 1},
		{-3, 1},
		{7, 7},
	}
	for _, tt := range tests {
		gen := &fakeGenerator{n: scoring.Narrative{Summary: "s", RiskScore: tt.in, Reasoning: "r"}}
		a := newEngine(scoring.WithGenerator(factory(gen))).Assess(context.Background(), accord(t))
		if a.RiskScore != tt.want {
			t.Errorf("generator score %d: RiskScore = %d, want %d", tt.in, a.RiskScore, tt.want)
		}
	}
}

func TestAssessFallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"error", &fakeGenerator{err: &scoring.GenerationError{Reason: "bad JSON"}}},
		{"empty summary", &fakeGenerator{n: scoring.Narrative{Summary: " ", RiskScore: 5, Reasoning: "r"}}},
		{"empty reasoning", &fakeGenerator{n: scoring.Narrative{Summary: "s", RiskScore: 5}}},
		{"timeout", &fakeGenerator{block: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := scoring.NewEngine(
				scoring.WithClock(fixedClock(2025)),
				scoring.WithLogger(log.New(&buf, "", 0)),
				scoring.WithTimeout(20*time.Millisecond),
				scoring.WithGenerator(factory(tt.gen)),
			)

			a := e.Assess(context.Background(), accord(t))
			want := e.Narrate(accord(t), e.Factors(accord(t)))
			if a.Source != scoring.SourceAlgorithmic {
				t.Errorf("Source = %s, want algorithmic", a.Source)
			}
			if a.Summary != want.Summary || a.Reasoning != want.Reasoning || a.RiskScore != 2 {
				t.Errorf("fallback mismatch: %+v", a)
			}
			if !strings.Contains(buf.String(), "text generator failed") {
				t.Errorf("expected fallback to be logged, got %q", buf.String())
			}
		})
	}
}

func TestGeneratorInitFailureStaysAlgorithmic(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	e := scoring.NewEngine(
		scoring.WithClock(fixedClock(2025)),
		scoring.WithLogger(log.New(&buf, "", 0)),
		scoring.WithGenerator(func() (scoring.TextGenerator, error) {
			calls++
			return nil, errors.New("ANTHROPIC_API_KEY is not set")
		}),
	)

	if e.UsesGenerator() {
		t.Error("engine should be algorithmic after init failure")
	}
	if calls != 1 {
		t.Errorf("factory called %d times, want 1", calls)
	}
	if !strings.Contains(buf.String(), "ANTHROPIC_API_KEY") {
		t.Errorf("expected init failure to be logged, got %q", buf.String())
	}

	a := e.Assess(context.Background(), accord(t))
	if a.Source != scoring.SourceAlgorithmic || a.RiskScore != 2 {
		t.Errorf("unexpected assessment: %+v", a)
	}
}

func TestGenerationErrorUnwraps(t *testing.T) {
	cause := context.DeadlineExceeded
	err := error(&scoring.GenerationError{Reason: "timed out", Err: cause})
	if !errors.Is(err, cause) {
		t.Error("GenerationError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("Error() = %q", err.Error())
	}
}
