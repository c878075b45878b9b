package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"par-manager/core/catalog"
	"par-manager/core/metrics"
	"par-manager/core/storage"

	"go.uber.org/zap"
)

// Result is what an import reports back to its caller.
type Result struct {
	Mode            catalog.DedupMode `json:"mode"`
	DryRun          bool              `json:"dry_run"`
	Summary         Summary           `json:"summary"`
	DefaultLocation string            `json:"default_location,omitempty"`
	// FailedStage and Error are set when a commit stopped partway.
	FailedStage Stage          `json:"failed_stage,omitempty"`
	Error       *catalog.Error `json:"error,omitempty"`
	// Archive is the object key of the archived source file.
	Archive string `json:"archive,omitempty"`
}

// Failed reports whether a commit stopped at a stage.
func (r *Result) Failed() bool {
	return r.FailedStage != ""
}

// Options configures the import service.
type Options struct {
	// DefaultMode applies when a caller passes no mode.
	DefaultMode catalog.DedupMode
	// Archiver stores committed source files. Nil disables archiving.
	Archiver *storage.Archiver
	Metrics  *metrics.Metrics
	// OnCommit runs after every commit that reached the store.
	OnCommit func()
}

// Service runs previews and commits against an import store.
type Service struct {
	store  catalog.ImportStore
	logger *zap.Logger
	opts   Options
}

// NewService creates a new import service.
func NewService(store catalog.ImportStore, logger *zap.Logger, opts Options) *Service {
	if opts.DefaultMode == "" {
		opts.DefaultMode = catalog.ModeUpdate
	}
	return &Service{store: store, logger: logger, opts: opts}
}

// Mode parses a caller supplied mode, falling back to the default.
func (s *Service) Mode(raw string) (catalog.DedupMode, error) {
	if strings.TrimSpace(raw) == "" {
		return s.opts.DefaultMode, nil
	}
	return catalog.ParseDedupMode(raw)
}

// Plan computes the full plan of an import against the current catalog.
func (s *Service) Plan(ctx context.Context, raws []RawRow, mode catalog.DedupMode) (*Plan, error) {
	snapshot, err := s.store.ImportSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load import snapshot: %w", err)
	}
	return BuildPlan(snapshot, raws, mode), nil
}

// Preview reports what Commit would do with the same rows and catalog state.
func (s *Service) Preview(ctx context.Context, raws []RawRow, mode catalog.DedupMode) (*Result, error) {
	start := time.Now()
	plan, err := s.Plan(ctx, raws, mode)
	if err != nil {
		return nil, err
	}
	s.opts.Metrics.ObserveDuration("preview", time.Since(start).Seconds())

	return &Result{
		Mode:            mode,
		DryRun:          true,
		Summary:         plan.Summary,
		DefaultLocation: plan.DefaultLocation,
	}, nil
}

// Commit applies the rows. A stage failure is reported in the result, not
// as an error; earlier stages stay committed.
func (s *Service) Commit(ctx context.Context, raws []RawRow, mode catalog.DedupMode) (*Result, error) {
	start := time.Now()
	plan, err := s.Plan(ctx, raws, mode)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Mode:            mode,
		Summary:         plan.Summary,
		DefaultLocation: plan.DefaultLocation,
	}

	applyErr := Apply(ctx, s.store, plan)
	if s.opts.OnCommit != nil {
		s.opts.OnCommit()
	}

	var stageErr *StageError
	switch {
	case errors.As(applyErr, &stageErr):
		result.FailedStage = stageErr.Stage
		result.Error = stageErr.Err
		s.opts.Metrics.ObserveStageFailure(string(stageErr.Stage))
		s.logger.Warn("Import stopped",
			zap.String("stage", string(stageErr.Stage)),
			zap.String("kind", string(stageErr.Err.Kind)),
			zap.String("field", stageErr.Err.Field),
			zap.String("message", stageErr.Err.Message),
		)
	case applyErr != nil:
		return nil, applyErr
	default:
		s.observe(plan.Summary)
		s.logger.Info("Import committed",
			zap.String("mode", string(mode)),
			zap.Int("rows_accepted", plan.Summary.RowsAccepted),
			zap.Int("products_inserted", plan.Summary.ProductsInserted),
			zap.Int("products_updated", plan.Summary.ProductsUpdated),
			zap.Int("on_hand_upserts", plan.Summary.OnHandUpserts),
		)
	}

	s.opts.Metrics.ObserveDuration("commit", time.Since(start).Seconds())
	return result, nil
}

func (s *Service) observe(sum Summary) {
	m := s.opts.Metrics
	m.ObserveRows(sum.RowsAccepted, sum.RowsReceived-sum.RowsAccepted)
	m.ObserveProducts(sum.ProductsInserted, sum.ProductsUpdated, sum.ProductUpdatesSkipped)
	m.ObserveEntities(string(catalog.KindLocation), sum.LocationsCreated)
	m.ObserveEntities(string(catalog.KindMaterialType), sum.MaterialTypesCreated)
	m.ObserveEntities(string(catalog.KindVendor), sum.VendorsCreated)
}

// ImportFile parses a CSV, TSV, XLSX or JSON file and previews or commits
// its rows. Committed files are archived when an archiver is configured.
func (s *Service) ImportFile(ctx context.Context, name string, data []byte, mode catalog.DedupMode, dryRun bool) (*Result, error) {
	raws, format, err := ParseFile(name, data)
	if err != nil {
		return nil, err
	}

	if dryRun {
		return s.Preview(ctx, raws, mode)
	}

	result, err := s.Commit(ctx, raws, mode)
	if err != nil {
		return nil, err
	}

	if s.opts.Archiver != nil {
		key, err := s.opts.Archiver.Put(ctx, name, data, format.ContentType())
		if err != nil {
			s.logger.Warn("Failed to archive import file", zap.String("file", name), zap.Error(err))
		} else {
			result.Archive = key
		}
	}
	return result, nil
}
