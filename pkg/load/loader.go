// pkg/load/loader.go
package load

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/config"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/connector"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// insertBatchSize bounds the number of rows per multi-row INSERT.
const insertBatchSize = 1000

// Loader writes cleaned datasets into the local analytical database
// with drop/replace semantics.
type Loader struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLoader connects to the local database.
func NewLoader(ctx context.Context, cfg *config.PostgresConfig) (*Loader, error) {
	db, err := connector.Connect(ctx, "postgres", cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to local database: %w", err)
	}

	return &Loader{
		db:     db,
		logger: zap.L().Named("loader"),
	}, nil
}

// Close releases the local connection pool.
func (l *Loader) Close() error {
	return l.db.Close()
}

// Replace drops the named table if it exists and recreates it from the
// dataset, primary key included. The replacement is wholesale, not an
// upsert: the destination always mirrors the latest successful run.
func (l *Loader) Replace(ctx context.Context, table string, ds *dataset.Dataset) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				l.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	quoted := pq.QuoteIdentifier(table)

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoted)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}

	if _, err = tx.ExecContext(ctx, createTableSQL(table, ds)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	if err = insertRows(ctx, tx, table, ds); err != nil {
		return fmt.Errorf("failed to load table %s: %w", table, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load of %s: %w", table, err)
	}

	l.logger.Info("Replaced destination table",
		zap.String("table", table),
		zap.Int("rows", ds.Len()))

	return nil
}

// createTableSQL builds the CREATE TABLE statement for a dataset. The
// promoted key column, when present, becomes the primary key.
func createTableSQL(table string, ds *dataset.Dataset) string {
	columns := ds.Columns()
	defs := make([]string, 0, len(columns))

	for _, col := range columns {
		defs = append(defs, fmt.Sprintf("%s %s",
			pq.QuoteIdentifier(col),
			sqlType(ds.ColumnKind(col))))
	}

	if key := ds.Key(); key != "" {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", pq.QuoteIdentifier(key)))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)",
		pq.QuoteIdentifier(table),
		strings.Join(defs, ",\n\t"))
}

// sqlType maps dataset kinds onto PostgreSQL column types.
func sqlType(k dataset.Kind) string {
	switch k {
	case dataset.KindInt:
		return "BIGINT"
	case dataset.KindFloat:
		return "DOUBLE PRECISION"
	case dataset.KindBool:
		return "BOOLEAN"
	case dataset.KindDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

// insertRows loads the dataset in bounded multi-row INSERT batches.
func insertRows(ctx context.Context, tx *sqlx.Tx, table string, ds *dataset.Dataset) error {
	columns := ds.Columns()
	if len(columns) == 0 || ds.Len() == 0 {
		return nil
	}

	quotedCols := make([]string, len(columns))
	for i, col := range columns {
		quotedCols[i] = pq.QuoteIdentifier(col)
	}
	columnList := strings.Join(quotedCols, ", ")

	for start := 0; start < ds.Len(); start += insertBatchSize {
		end := start + insertBatchSize
		if end > ds.Len() {
			end = ds.Len()
		}

		placeholders := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*len(columns))

		for row := start; row < end; row++ {
			rowPlaceholders := make([]string, len(columns))
			for i, col := range columns {
				rowPlaceholders[i] = fmt.Sprintf("$%d", len(args)+1)
				args = append(args, ds.Get(row, col).Interface())
			}
			placeholders = append(placeholders, fmt.Sprintf("(%s)", strings.Join(rowPlaceholders, ", ")))
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			pq.QuoteIdentifier(table), columnList, strings.Join(placeholders, ", "))

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("batch insert failed: %w", err)
		}
	}

	return nil
}
