// Package inventory implements the read-only vehicle record store. A Store is
// built once from a dataset source and then only queried, so it is safe for
// concurrent readers without locking.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// AverageMilesPerYear is the default annual mileage assumption.
const AverageMilesPerYear = 12000

// Source yields the raw rows of a dataset.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
	Describe() string
}

// LoadReport summarizes an ingestion run.
type LoadReport struct {
	RowsRead int `json:"rows_read"`
	Stored   int `json:"stored"`
	Skipped  int `json:"skipped"`
}

// Option configures ingestion.
type Option func(*loader)

type loader struct {
	columns Columns
	logger  *log.Logger
}

// WithColumns overrides the column mapping. Empty entries keep their default.
func WithColumns(c Columns) Option {
	return func(l *loader) { l.columns = c.withDefaults() }
}

// WithLogger sets the logger used for skipped rows.
func WithLogger(logger *log.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Store maps normalized VINs to records. Never mutated after construction.
type Store struct {
	records map[string]vehicle.Record
	report  LoadReport
}

// Load reads every row from src and builds a Store. A source that cannot be
// read at all yields a *vehicle.DatasetUnavailableError; individual bad rows
// are logged and skipped.
func Load(ctx context.Context, src Source, opts ...Option) (*Store, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		var due *vehicle.DatasetUnavailableError
		if errors.As(err, &due) {
			return nil, err
		}
		return nil, &vehicle.DatasetUnavailableError{Source: src.Describe(), Err: err}
	}
	return NewStore(rows, opts...), nil
}

// NewStore builds a Store from already-fetched rows. Later rows overwrite
// earlier rows with the same VIN.
func NewStore(rows []Row, opts ...Option) *Store {
	l := &loader{columns: DefaultColumns(), logger: log.Default()}
	for _, opt := range opts {
		opt(l)
	}

	s := &Store{records: make(map[string]vehicle.Record, len(rows))}
	for i, row := range rows {
		s.report.RowsRead++
		rec, err := l.parseRow(row)
		if err != nil {
			s.report.Skipped++
			l.logger.Printf("skipping row %d: %v", i+1, err)
			continue
		}
		s.records[rec.VIN] = rec
	}
	s.report.Stored = len(s.records)

	return s
}

func (l *loader) parseRow(row Row) (vehicle.Record, error) {
	c := l.columns

	vin := strings.TrimSpace(row.get(c.VIN, ""))
	if vin == "" {
		return vehicle.Record{}, fmt.Errorf("missing VIN")
	}

	year := vehicle.CleanInt(row.get(c.Year, "0"))
	if year == 0 {
		return vehicle.Record{}, fmt.Errorf("VIN %s: missing or unparsable year", vin)
	}

	rec, err := vehicle.New(vehicle.Fields{
		VIN:                  vin,
		Year:                 year,
		Make:                 row.get(c.Make, ""),
		Model:                row.get(c.Model, ""),
		CurrentPrice:         vehicle.CleanPrice(row.get(c.CurrentPrice, "")),
		PriceToMarketPercent: vehicle.CleanPercent(row.get(c.PriceToMarketPercent, "0%")),
		DaysOnLot:            vehicle.CleanInt(row.get(c.DaysOnLot, "0")),
		Mileage:              vehicle.CleanInt(row.get(c.Mileage, "0")),
		TotalVDPs:            vehicle.CleanInt(row.get(c.TotalVDPs, "0")),
		SalesOpportunities:   vehicle.CleanInt(row.get(c.SalesOpportunities, "0")),
	})
	if err != nil {
		return vehicle.Record{}, fmt.Errorf("VIN %s: %w", vin, err)
	}
	return rec, nil
}

// Report returns the ingestion summary.
func (s *Store) Report() LoadReport {
	return s.report
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Get looks up a record by VIN, ignoring case and surrounding whitespace.
func (s *Store) Get(vin string) (vehicle.Record, error) {
	key := vehicle.NormalizeVIN(vin)
	rec, ok := s.records[key]
	if !ok {
		return vehicle.Record{}, &vehicle.NotFoundError{VIN: key}
	}
	return rec, nil
}

// Contains reports whether vin is present.
func (s *Store) Contains(vin string) bool {
	_, ok := s.records[vehicle.NormalizeVIN(vin)]
	return ok
}

// All returns every record in unspecified order.
func (s *Store) All() []vehicle.Record {
	out := make([]vehicle.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out
}

// ByMake returns records whose make matches name, case-insensitively.
func (s *Store) ByMake(name string) []vehicle.Record {
	want := strings.ToUpper(strings.TrimSpace(name))
	return s.filter(func(r vehicle.Record) bool { return r.Make == want })
}

// ByYear returns records of the given model year.
func (s *Store) ByYear(year int) []vehicle.Record {
	return s.filter(func(r vehicle.Record) bool { return r.Year == year })
}

func (s *Store) filter(keep func(vehicle.Record) bool) []vehicle.Record {
	var out []vehicle.Record
	for _, rec := range s.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// AverageMileageForAge returns the mean mileage of vehicles that are age
// years old at referenceYear, ignoring zero-mileage (new) vehicles. With no
// such vehicles it falls back to AverageMilesPerYear * age.
func (s *Store) AverageMileageForAge(age, referenceYear int) float64 {
	var total, count int
	for _, rec := range s.records {
		if rec.Age(referenceYear) == age && rec.Mileage > 0 {
			total += rec.Mileage
			count++
		}
	}
	if count == 0 {
		return float64(AverageMilesPerYear * age)
	}
	return float64(total) / float64(count)
}
