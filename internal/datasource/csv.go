package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vinrisk/vinrisk/pkg/inventory"
)

// ParseCSV reads a header row followed by data rows. Short rows leave the
// missing columns absent and extra fields are ignored, so a ragged export
// still loads; the record store decides which rows are usable.
func ParseCSV(r io.Reader) ([]inventory.Row, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		names[i] = strings.TrimSpace(h)
	}

	var rows []inventory.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}

		row := make(inventory.Row, len(names))
		for i, name := range names {
			if name == "" || i >= len(rec) {
				continue
			}
			row[name] = rec[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
