package scoring

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// DefaultGeneratorTimeout bounds a single TextGenerator call.
const DefaultGeneratorTimeout = 30 * time.Second

// Factor is the interface that all scoring factors implement.
type Factor interface {
	// Key returns the machine-readable factor identifier.
	Key() string
	// Name returns the human-readable factor name.
	Name() string
	// Evaluate computes the factor's impact for a record. referenceYear is
	// the calendar year used for age-based expectations.
	Evaluate(rec vehicle.Record, referenceYear int) FactorResult
}

// Engine computes risk factors and assessments. It holds no mutable state
// after construction and is safe for concurrent use.
type Engine struct {
	factors    []Factor
	thresholds Thresholds
	narrator   *Narrator
	clock      func() time.Time
	logger     *log.Logger
	timeout    time.Duration

	factory   GeneratorFactory
	generator TextGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithThresholds replaces the default thresholds and rebuilds the factors.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = t
		e.factors = FactorsFor(t)
	}
}

// WithClock sets the time source used to derive the reference year.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLogger sets the logger used for generator fallbacks.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTimeout bounds each generator call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithGenerator enables the external text path. The factory is called once
// by NewEngine; if it fails the engine stays algorithmic for its lifetime.
func WithGenerator(factory GeneratorFactory) Option {
	return func(e *Engine) { e.factory = factory }
}

// NewEngine creates a scoring engine with the default factors.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		factors:    DefaultFactors(),
		thresholds: Defaults(),
		clock:      time.Now,
		logger:     log.Default(),
		timeout:    DefaultGeneratorTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.narrator = &Narrator{Thresholds: e.thresholds}

	if e.factory != nil {
		gen, err := e.factory()
		switch {
		case err != nil:
			e.logger.Printf("text generator unavailable, using algorithmic output: %v", err)
		case gen == nil:
			e.logger.Printf("text generator factory returned nil, using algorithmic output")
		default:
			e.generator = gen
		}
	}

	return e
}

// UsesGenerator reports whether assessments are written by the external
// generator. Fixed at construction.
func (e *Engine) UsesGenerator() bool {
	return e.generator != nil
}

// ReferenceYear returns the current year according to the engine's clock.
func (e *Engine) ReferenceYear() int {
	return e.clock().Year()
}

// Factors computes the risk factors for rec at the clock's current year.
func (e *Engine) Factors(rec vehicle.Record) RiskFactors {
	return e.FactorsAt(rec, e.ReferenceYear())
}

// FactorsAt computes the risk factors for rec with an explicit reference
// year. It is pure: equal inputs always give equal results.
func (e *Engine) FactorsAt(rec vehicle.Record, referenceYear int) RiskFactors {
	f := RiskFactors{
		BaselineScore: e.thresholds.BaselineScore,
		ReferenceYear: referenceYear,
	}

	for _, factor := range e.factors {
		fr := factor.Evaluate(rec, referenceYear)
		f.Breakdown = append(f.Breakdown, fr)
		f.TotalAdjustments += fr.Impact

		switch fr.Key {
		case "days_on_lot":
			f.DaysOnLotImpact = fr.Impact
		case "price_to_market":
			f.PriceToMarketImpact = fr.Impact
		case "vdp_views":
			f.VDPViewsImpact = fr.Impact
		case "mileage":
			f.MileageImpact = fr.Impact
		case "sales_opportunities":
			f.SalesOpportunitiesImpact = fr.Impact
		}
	}

	f.MissingDataAdjustment, f.MissingDataNote = missingData(rec, e.thresholds)
	f.TotalAdjustments += f.MissingDataAdjustment

	f.RawScore = f.BaselineScore + f.TotalAdjustments
	f.FinalScore = e.clamp(f.RawScore)

	return f
}

func (e *Engine) clamp(score int) int {
	if score < e.thresholds.MinScore {
		return e.thresholds.MinScore
	}
	if score > e.thresholds.MaxScore {
		return e.thresholds.MaxScore
	}
	return score
}

// Narrate returns the algorithmic narrative for already-computed factors.
func (e *Engine) Narrate(rec vehicle.Record, f RiskFactors) Narrative {
	return e.narrator.Narrate(rec, f)
}

// Assess scores rec and writes its explanation. Generator failures are
// logged and replaced by the algorithmic narrative; they never reach the
// caller.
func (e *Engine) Assess(ctx context.Context, rec vehicle.Record) RiskAssessment {
	f := e.Factors(rec)

	if e.generator != nil {
		n, err := e.generate(ctx, rec, f)
		if err == nil {
			return RiskAssessment{
				Summary:   n.Summary,
				RiskScore: e.clamp(n.RiskScore),
				Reasoning: n.Reasoning,
				Source:    SourceGenerator,
			}
		}
		e.logger.Printf("text generator failed for %s, using algorithmic output: %v", rec.VIN, err)
	}

	n := e.narrator.Narrate(rec, f)
	return RiskAssessment{
		Summary:   n.Summary,
		RiskScore: f.FinalScore,
		Reasoning: n.Reasoning,
		Source:    SourceAlgorithmic,
	}
}

type generated struct {
	n   Narrative
	err error
}

// generate calls the generator under the engine timeout and validates what
// comes back.
func (e *Engine) generate(ctx context.Context, rec vehicle.Record, f RiskFactors) (Narrative, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan generated, 1)
	go func() {
		n, err := e.generator.Generate(ctx, rec, f)
		done <- generated{n: n, err: err}
	}()

	var res generated
	select {
	case res = <-done:
	case <-ctx.Done():
		return Narrative{}, &GenerationError{Reason: "timed out", Err: ctx.Err()}
	}

	if res.err != nil {
		return Narrative{}, res.err
	}
	if strings.TrimSpace(res.n.Summary) == "" || strings.TrimSpace(res.n.Reasoning) == "" {
		return Narrative{}, &GenerationError{Reason: "empty summary or reasoning"}
	}
	return res.n, nil
}
