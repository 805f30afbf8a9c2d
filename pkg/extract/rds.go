// pkg/extract/rds.go
package extract

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/config"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/connector"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// identPattern restricts table names to plain SQL identifiers, since
// table names cannot be bound as query parameters.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RDSReader reads whole tables from the remote source database.
type RDSReader struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRDSReader connects to the source database.
func NewRDSReader(ctx context.Context, cfg *config.PostgresConfig) (*RDSReader, error) {
	db, err := connector.Connect(ctx, "pgx", cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to source database: %w", err)
	}

	return &RDSReader{
		db:     db,
		logger: zap.L().Named("rds-reader"),
	}, nil
}

// Close releases the source connection pool.
func (r *RDSReader) Close() error {
	return r.db.Close()
}

// ListTables returns the base table names in the source's public schema.
func (r *RDSReader) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	var tables []string
	if err := r.db.SelectContext(ctx, &tables, query); err != nil {
		return nil, fmt.Errorf("failed to list source tables: %w", err)
	}

	return tables, nil
}

// ReadTable reads an entire source table into a dataset.
func (r *RDSReader) ReadTable(ctx context.Context, name string) (*dataset.Dataset, error) {
	if !identPattern.MatchString(name) {
		return nil, fmt.Errorf("invalid table name %q", name)
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}

	ds := dataset.New(columns...)

	for rows.Next() {
		values := make([]interface{}, len(columns))
		scanArgs := make([]interface{}, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", name, err)
		}

		cells := make([]dataset.Value, len(values))
		for i, v := range values {
			cells[i] = dataset.FromAny(v)
		}
		if err := ds.AppendRow(cells...); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", name, err)
	}

	r.logger.Info("Read source table",
		zap.String("table", name),
		zap.Int("rows", ds.Len()))

	return ds, nil
}
