package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/vinrisk/vinrisk/pkg/inventory"
)

// LocalCSV reads a CSV file from the local filesystem.
type LocalCSV struct {
	Path string
}

// NewLocalCSV creates a LocalCSV for path.
func NewLocalCSV(path string) *LocalCSV {
	return &LocalCSV{Path: path}
}

// Describe returns the file path.
func (s *LocalCSV) Describe() string { return s.Path }

// Rows opens and parses the file.
func (s *LocalCSV) Rows(ctx context.Context) ([]inventory.Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, unavailable(s.Path, fmt.Errorf("open csv: %w", err))
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return nil, unavailable(s.Path, err)
	}
	return rows, nil
}

// Close is a no-op.
func (s *LocalCSV) Close() error { return nil }
