package purchasing

import (
	"context"
	"io"
	"strings"

	"par-manager/core/catalog"
	"par-manager/core/metrics"
	"par-manager/core/reconcile"
	"par-manager/core/storage"

	"go.uber.org/zap"
)

var errNoArchive = catalog.NotFound("key", "export archiving is not configured")

// Export is a generated purchase-list workbook.
type Export struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
	// Key is the object key when the export was archived.
	Key string `json:"key,omitempty"`
}

// Service builds purchase lists.
type Service struct {
	cache    *reconcile.Cache
	archiver *storage.Archiver
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new purchasing service. archiver and m may be nil.
func NewService(cache *reconcile.Cache, archiver *storage.Archiver, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{cache: cache, archiver: archiver, metrics: m, logger: logger}
}

// Report returns the grouped purchase list.
func (s *Service) Report(ctx context.Context) (*reconcile.Report, error) {
	report, err := s.cache.Report(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveReport(report.TotalLines, report.TotalUnits)
	return report, nil
}

// Text returns the purchase list as an order sheet.
func (s *Service) Text(ctx context.Context) (string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return "", err
	}
	return Text(report), nil
}

// Export renders the purchase list to XLSX. With archive set and an
// archiver configured the workbook is also stored under the exports folder.
func (s *Service) Export(ctx context.Context, archive bool) (*Export, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	data, err := WriteXLSX(report)
	if err != nil {
		return nil, err
	}

	export := &Export{Name: ExportName(report), Data: data}
	if archive && s.archiver != nil {
		key, err := s.archiver.Put(ctx, export.Name, data, XLSXContentType)
		if err != nil {
			return nil, err
		}
		export.Key = key
		s.logger.Info("Purchase list archived", zap.String("key", key), zap.Int("lines", report.TotalLines))
	}
	return export, nil
}

// Archiving reports whether exports can be archived.
func (s *Service) Archiving() bool {
	return s.archiver != nil
}

// ListExports returns archived exports, newest first.
func (s *Service) ListExports(ctx context.Context) ([]storage.Object, error) {
	if s.archiver == nil {
		return []storage.Object{}, nil
	}
	return s.archiver.List(ctx)
}

// OpenExport streams one archived export.
func (s *Service) OpenExport(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.archiver == nil {
		return nil, errNoArchive
	}
	if !strings.HasPrefix(key, s.archiver.Prefix()) || strings.Contains(key, "..") {
		return nil, catalog.Validation("key", "key is not an export")
	}
	return s.archiver.Open(ctx, key)
}

// PruneExports keeps the newest keep exports and removes the rest.
func (s *Service) PruneExports(ctx context.Context, keep int) (int, error) {
	if s.archiver == nil {
		return 0, nil
	}
	return s.archiver.Prune(ctx, keep)
}

// Invalidate drops the cached catalog so the next report reads storage.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}
