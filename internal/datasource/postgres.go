package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"

	"github.com/vinrisk/vinrisk/pkg/inventory"
)

// DefaultTable is the table created by the vehicle_inventory migration.
const DefaultTable = "vehicle_inventory"

// PostgresTable reads vehicle rows from a Postgres table. Columns use the
// snake_case names of the migration; each value is emitted under the key the
// record store expects, so both paths share the same cleaning rules.
type PostgresTable struct {
	db    *sql.DB
	dsn   string
	table string
	keys  inventory.Columns
}

// NewPostgresTable opens a connection pool for dsn. No connection is made
// until Rows is called.
func NewPostgresTable(dsn, table string, keys inventory.Columns) (*PostgresTable, error) {
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &PostgresTable{db: db, dsn: dsn, table: table, keys: keys}, nil
}

// Describe returns the DSN without credentials, plus the table.
func (s *PostgresTable) Describe() string {
	desc := "postgres"
	if u, err := url.Parse(s.dsn); err == nil {
		desc = u.Redacted()
	}
	return desc + "#" + s.table
}

// selectQuery builds the SELECT for table. Every value is cast to text so
// numeric, integer and text column types scan the same way.
func selectQuery(table string) string {
	sqlCols := inventory.SQLColumns()
	cols := []string{
		sqlCols.VIN, sqlCols.Year, sqlCols.Make, sqlCols.Model,
		sqlCols.CurrentPrice, sqlCols.PriceToMarketPercent, sqlCols.DaysOnLot,
		sqlCols.Mileage, sqlCols.TotalVDPs, sqlCols.SalesOpportunities,
	}
	for i, c := range cols {
		cols[i] = pq.QuoteIdentifier(c) + "::text"
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), quoteTable(table))
}

// quoteTable quotes a possibly schema-qualified table name.
func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// Rows queries the table and converts each row.
func (s *PostgresTable) Rows(ctx context.Context) ([]inventory.Row, error) {
	rs, err := s.db.QueryContext(ctx, selectQuery(s.table))
	if err != nil {
		return nil, unavailable(s.Describe(), fmt.Errorf("query %s: %w", s.table, err))
	}
	defer rs.Close()

	var rows []inventory.Row
	for rs.Next() {
		var v [10]sql.NullString
		if err := rs.Scan(&v[0], &v[1], &v[2], &v[3], &v[4], &v[5], &v[6], &v[7], &v[8], &v[9]); err != nil {
			return nil, unavailable(s.Describe(), fmt.Errorf("scan row %d: %w", len(rows)+1, err))
		}
		rows = append(rows, s.toRow(v))
	}
	if err := rs.Err(); err != nil {
		return nil, unavailable(s.Describe(), fmt.Errorf("iterate %s: %w", s.table, err))
	}

	return rows, nil
}

// toRow keys scanned values by the store's column names. NULLs are left out
// so the store applies its defaults.
func (s *PostgresTable) toRow(v [10]sql.NullString) inventory.Row {
	k := s.keys
	names := []string{
		k.VIN, k.Year, k.Make, k.Model,
		k.CurrentPrice, k.PriceToMarketPercent, k.DaysOnLot,
		k.Mileage, k.TotalVDPs, k.SalesOpportunities,
	}
	row := make(inventory.Row, len(names))
	for i, name := range names {
		if v[i].Valid {
			row[name] = v[i].String
		}
	}
	return row
}

// Close closes the connection pool.
func (s *PostgresTable) Close() error { return s.db.Close() }
