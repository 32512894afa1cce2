// Package analyzer ties the record store and the scoring engine together.
// An Analyzer is constructed once and passed to whatever serves requests;
// it holds no mutable state.
package analyzer

import (
	"context"

	"github.com/vinrisk/vinrisk/pkg/inventory"
	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// Analyzer answers VIN queries against a loaded store.
type Analyzer struct {
	store  *inventory.Store
	engine *scoring.Engine
}

// New creates an Analyzer.
func New(store *inventory.Store, engine *scoring.Engine) *Analyzer {
	return &Analyzer{store: store, engine: engine}
}

// Analyze scores the vehicle identified by vin. A malformed VIN yields a
// *vehicle.ValidationError and an unknown one a *vehicle.NotFoundError.
func (a *Analyzer) Analyze(ctx context.Context, vin string) (scoring.RiskAssessment, error) {
	rec, err := a.GetRecord(vin)
	if err != nil {
		return scoring.RiskAssessment{}, err
	}
	return a.engine.Assess(ctx, rec), nil
}

// Factors returns the record and its factor breakdown without generating text.
func (a *Analyzer) Factors(vin string) (vehicle.Record, scoring.RiskFactors, error) {
	rec, err := a.GetRecord(vin)
	if err != nil {
		return vehicle.Record{}, scoring.RiskFactors{}, err
	}
	return rec, a.engine.Factors(rec), nil
}

// GetRecord returns the stored record for vin.
func (a *Analyzer) GetRecord(vin string) (vehicle.Record, error) {
	normalized, err := vehicle.ValidateVIN(vin)
	if err != nil {
		return vehicle.Record{}, err
	}
	return a.store.Get(normalized)
}

// Exists reports whether vin is in the store. Malformed VINs are simply absent.
func (a *Analyzer) Exists(vin string) bool {
	normalized, err := vehicle.ValidateVIN(vin)
	if err != nil {
		return false
	}
	return a.store.Contains(normalized)
}

// UsesGenerator reports whether assessments come from the external generator.
func (a *Analyzer) UsesGenerator() bool {
	return a.engine.UsesGenerator()
}

// LoadReport returns the ingestion summary of the underlying store.
func (a *Analyzer) LoadReport() inventory.LoadReport {
	return a.store.Report()
}
