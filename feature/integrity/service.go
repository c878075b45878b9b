package integrity

import (
	"context"

	"par-manager/core/storage"
	"par-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	logger  *zap.Logger
	db      *gorm.DB
}

// NewService creates a new integrity service. folders are the bucket
// folders that must exist; nil uses checks.DefaultFolders.
func NewService(client storage.Client, bucket string, folders []string, logger *zap.Logger, db *gorm.DB) *Service {
	if len(folders) == 0 {
		folders = checks.DefaultFolders
	}
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: folders,
		logger:  logger,
		db:      db,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the live database schema to the catalog models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckCatalog reports catalog rows the purchase list treats specially.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	return checks.CheckCatalog(ctx, s.db)
}

// Report is the combined result of every check. A check that fails carries
// its error in place of its result.
type Report struct {
	Structure map[string]any `json:"structure"`
	Schema    any            `json:"schema"`
	Catalog   any            `json:"catalog"`
}

func failed(err error) map[string]any {
	return map[string]any{"status": "error", "error": err.Error()}
}

// RunAll runs the structure, schema and catalog checks concurrently.
func (s *Service) RunAll(ctx context.Context) *Report {
	report := &Report{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		missing, err := s.CheckStructure(gctx)
		if err != nil {
			report.Structure = failed(err)
			return nil
		}
		report.Structure = map[string]any{"status": "ok", "missing": missing}
		return nil
	})
	g.Go(func() error {
		schema, err := s.CheckSchema()
		if err != nil {
			report.Schema = failed(err)
			return nil
		}
		report.Schema = schema
		return nil
	})
	g.Go(func() error {
		catalog, err := s.CheckCatalog(gctx)
		if err != nil {
			report.Catalog = failed(err)
			return nil
		}
		report.Catalog = catalog
		return nil
	})

	_ = g.Wait()
	return report
}
