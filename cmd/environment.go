package cmd

import (
	"fmt"
	"strings"
	"time"

	"par-manager/core/catalog"
	"par-manager/core/config"
	"par-manager/core/database"
	"par-manager/core/logger"
	"par-manager/core/metrics"
	"par-manager/core/reconcile"
	"par-manager/core/storage"
	"par-manager/feature/importer"
	"par-manager/feature/inventory"
	"par-manager/feature/purchasing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment is the wiring shared by every command.
type environment struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   *inventory.Store
	client  storage.Client
	metrics *metrics.Metrics
	cache   *reconcile.Cache
}

// bootstrap loads configuration and opens connections. When requireDB is
// false a failed database connection only disables the catalog features.
// migrate applies database.auto_migrate; the schema check passes false so
// it inspects the schema as it is.
func bootstrap(requireDB, migrate bool) (*environment, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &environment{cfg: cfg, logger: logg, metrics: metrics.New()}

	if conn, err := database.Connect(cfg.Database); err != nil {
		if requireDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		rt.db = conn
		rt.logger = logg.With(zap.String("driver", cfg.Database.Driver))
		if migrate && cfg.Database.AutoMigrate {
			if err := inventory.Migrate(conn); err != nil {
				return nil, fmt.Errorf("failed to migrate schema: %w", err)
			}
		}
		rt.store = inventory.NewStore(conn)
		rt.cache = reconcile.NewCache(rt.store, time.Duration(cfg.Report.CacheTTLSeconds)*time.Second)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	rt.client = client

	return rt, nil
}

// importStore returns the store as an interface, nil when no database is open.
func (rt *environment) importStore() catalog.ImportStore {
	if rt.store == nil {
		return nil
	}
	return rt.store
}

// invalidate drops the purchase-list cache after catalog writes.
func (rt *environment) invalidate() {
	if rt.cache != nil {
		rt.cache.Invalidate()
	}
}

func (rt *environment) importOptions() (importer.Options, error) {
	mode, err := catalog.ParseDedupMode(rt.cfg.Import.DefaultMode)
	if err != nil {
		return importer.Options{}, fmt.Errorf("invalid import.default_mode: %w", err)
	}
	opts := importer.Options{
		DefaultMode: mode,
		Metrics:     rt.metrics,
		OnCommit:    rt.invalidate,
	}
	if rt.cfg.Import.Archive {
		opts.Archiver = storage.NewArchiver(rt.client, rt.cfg.Storage.Bucket, rt.cfg.Import.Prefix)
	}
	return opts, nil
}

func (rt *environment) importService() (*importer.Service, error) {
	opts, err := rt.importOptions()
	if err != nil {
		return nil, err
	}
	return importer.NewService(rt.importStore(), rt.logger, opts), nil
}

func (rt *environment) purchasingService() *purchasing.Service {
	archiver := storage.NewArchiver(rt.client, rt.cfg.Storage.Bucket, rt.cfg.Report.ExportPrefix)
	return purchasing.NewService(rt.cache, archiver, rt.metrics, rt.logger)
}

// folders lists the bucket folders the integrity check expects.
func (rt *environment) folders() []string {
	return []string{
		strings.Trim(rt.cfg.Import.Prefix, "/"),
		strings.Trim(rt.cfg.Report.ExportPrefix, "/"),
	}
}

func (rt *environment) close() {
	_ = rt.logger.Sync()
	if rt.db == nil {
		return
	}
	if sqlDB, err := rt.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
