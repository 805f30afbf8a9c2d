// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/clean"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/config"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// Source table names in the remote database.
const (
	usersSourceTable  = "legacy_users"
	ordersSourceTable = "orders_table"
)

// Destination table names in the local database.
const (
	usersTable    = "dim_users"
	cardsTable    = "dim_card_details"
	storesTable   = "dim_store_details"
	productsTable = "dim_products"
	ordersTable   = "orders_table"
	datesTable    = "dim_date_times"
)

// TableReader reads whole tables from the remote relational source.
type TableReader interface {
	ReadTable(ctx context.Context, name string) (*dataset.Dataset, error)
}

// DocumentExtractor pulls tabular data out of a remote document.
type DocumentExtractor interface {
	Retrieve(ctx context.Context, url string) (*dataset.Dataset, error)
}

// StoreFetcher retrieves every store record from the stores API.
type StoreFetcher interface {
	RetrieveStores(ctx context.Context) (*dataset.Dataset, error)
}

// ObjectFetcher downloads and parses an object-storage file.
type ObjectFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*dataset.Dataset, error)
}

// TableWriter replaces a destination table with a dataset.
type TableWriter interface {
	Replace(ctx context.Context, table string, ds *dataset.Dataset) error
}

// Pipeline runs the full extract, clean and load cycle for every
// entity, one entity at a time.
type Pipeline struct {
	rds     TableReader
	pdf     DocumentExtractor
	stores  StoreFetcher
	objects ObjectFetcher
	cleaner *clean.Cleaner
	writer  TableWriter
	cfg     *config.Config
	logger  *zap.Logger
}

// NewPipeline creates a pipeline over the given sources and sink.
func NewPipeline(
	rds TableReader,
	pdf DocumentExtractor,
	stores StoreFetcher,
	objects ObjectFetcher,
	cleaner *clean.Cleaner,
	writer TableWriter,
	cfg *config.Config,
	logger *zap.Logger,
) (*Pipeline, error) {
	if rds == nil || pdf == nil || stores == nil || objects == nil {
		return nil, errors.New("all data sources are required")
	}
	if cleaner == nil {
		return nil, errors.New("cleaner is required")
	}
	if writer == nil {
		return nil, errors.New("writer is required")
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = zap.L()
	}

	return &Pipeline{
		rds:     rds,
		pdf:     pdf,
		stores:  stores,
		objects: objects,
		cleaner: cleaner,
		writer:  writer,
		cfg:     cfg,
		logger:  logger.Named("pipeline"),
	}, nil
}

// jobs builds the entity jobs in load order.
func (p *Pipeline) jobs(ctx context.Context) []EntityJob {
	return []EntityJob{
		{
			Entity: "users",
			Table:  usersTable,
			Fetch:  func() (*dataset.Dataset, error) { return p.rds.ReadTable(ctx, usersSourceTable) },
			Clean:  p.cleaner.CleanUserData,
		},
		{
			Entity: "cards",
			Table:  cardsTable,
			Fetch:  func() (*dataset.Dataset, error) { return p.pdf.Retrieve(ctx, p.cfg.CardDetailsPDFURL) },
			Clean:  p.cleaner.CleanCardData,
		},
		{
			Entity: "stores",
			Table:  storesTable,
			Fetch:  func() (*dataset.Dataset, error) { return p.stores.RetrieveStores(ctx) },
			Clean:  p.cleaner.CleanStoreData,
		},
		{
			Entity: "products",
			Table:  productsTable,
			Fetch:  func() (*dataset.Dataset, error) { return p.objects.Fetch(ctx, p.cfg.S3.ProductsURL) },
			Clean:  p.cleaner.CleanProductData,
		},
		{
			Entity: "orders",
			Table:  ordersTable,
			Fetch:  func() (*dataset.Dataset, error) { return p.rds.ReadTable(ctx, ordersSourceTable) },
			Clean:  p.cleaner.CleanOrdersData,
		},
		{
			Entity: "dates",
			Table:  datesTable,
			Fetch:  func() (*dataset.Dataset, error) { return p.objects.Fetch(ctx, p.cfg.S3.DateTimesURL) },
			Clean:  p.cleaner.CleanDateData,
		},
	}
}

// Run executes every entity job in order. A failing entity is recorded
// and skipped; the remaining entities still run. The returned summary
// covers the whole run, and the error reports which entities failed.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	summary := NewRunSummary()
	summary.StartTime = time.Now()

	for _, job := range p.jobs(ctx) {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run aborted: %w", err)
		}
		summary.addResult(p.runJob(ctx, job))
	}

	summary.complete()

	if !summary.Succeeded() {
		return summary, fmt.Errorf("entities failed: %v", summary.FailedJobs)
	}

	return summary, nil
}

// runJob executes one extract/clean/load cycle.
func (p *Pipeline) runJob(ctx context.Context, job EntityJob) *JobResult {
	result := newJobResult(job)
	logger := p.logger.With(zap.String("entity", job.Entity), zap.String("table", job.Table))

	logger.Info("Starting entity job")

	ds, err := job.Fetch()
	if err != nil {
		result.complete(fmt.Errorf("extract failed: %w", err))
		logger.Error("Extraction failed", zap.Error(err))
		return result
	}
	result.RowsRead = ds.Len()

	if err := job.Clean(ds); err != nil {
		result.complete(fmt.Errorf("clean failed: %w", err))
		logger.Error("Cleaning failed", zap.Error(err))
		return result
	}
	result.RowsLoaded = ds.Len()
	result.RowsDropped = result.RowsRead - result.RowsLoaded

	if err := p.writer.Replace(ctx, job.Table, ds); err != nil {
		result.complete(fmt.Errorf("load failed: %w", err))
		logger.Error("Load failed", zap.Error(err))
		return result
	}

	result.complete(nil)
	logger.Info("Entity job complete",
		zap.Int("rowsRead", result.RowsRead),
		zap.Int("rowsLoaded", result.RowsLoaded),
		zap.Int("rowsDropped", result.RowsDropped),
		zap.Duration("duration", result.Duration))

	return result
}
