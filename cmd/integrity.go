package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"par-manager/core/storage"
	"par-manager/feature/integrity"
	"par-manager/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and the catalog",
	Long:  `Checks the bucket folder structure, the database schema and catalog rows the purchase list silently ignores.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix bucket folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the database schema to the catalog models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// catalogCmd represents the integrity catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Report orphan on-hand rows and unassigned products",
	Long:  `Lists on-hand rows without a matching assignment, active products with no location and products without a vendor. Use --json to save the full report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd, catalogCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	catalogCmd.Flags().BoolVar(&jsonFlag, "json", false, "Save the detailed report as JSON")
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema, runCatalog bool) error {
	rt, err := bootstrap(false, false)
	if err != nil {
		return err
	}
	defer rt.close()
	logg := rt.logger

	svc := integrity.NewService(rt.client, rt.cfg.Storage.Bucket, rt.folders(), logg, rt.db)

	if runStructure {
		if fixFlag {
			created, err := storage.EnsureBucket(ctx, rt.client, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region)
			if err != nil {
				return err
			}
			if created {
				logg.Info("Created storage bucket", zap.String("bucket", rt.cfg.Storage.Bucket))
			}
		}
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		switch {
		case len(missing) == 0:
			logg.Info("Structure is intact.")
		case fixFlag:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if err := svc.FixStructure(ctx, missing); err != nil {
				return fmt.Errorf("failed to fix structure: %w", err)
			}
			logg.Info("Structure fixed successfully.")
		default:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			logg.Info("Run 'integrity structure --fix' to create missing folders.")
		}
	}

	if (runSchema || runCatalog) && rt.db == nil {
		return fmt.Errorf("database connection required for schema and catalog checks")
	}

	if runSchema {
		logg.Info("Checking database schema...", zap.String("driver", rt.cfg.Database.Driver))
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Schema matches the catalog models.")
		} else {
			for table, tbl := range report.Tables {
				if tbl.Status == checks.StatusOK {
					continue
				}
				logg.Warn("Table mismatch",
					zap.String("table", table),
					zap.String("status", tbl.Status),
					zap.Strings("missing_columns", tbl.MissingColumns),
				)
			}
			for _, e := range report.Errors {
				logg.Error("Inspection error", zap.String("error", e))
			}
		}
	}

	if runCatalog {
		start := time.Now()
		logg.Info("Checking catalog consistency...")
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			return fmt.Errorf("catalog check failed: %w", err)
		}

		if jsonFlag {
			filename := fmt.Sprintf("integrity_catalog_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		logg.Info("Catalog check completed",
			zap.Bool("clean", report.Clean),
			zap.Int("orphan_on_hand", len(report.OrphanOnHand)),
			zap.Int("unassigned", len(report.Unassigned)),
			zap.Int("no_vendor", len(report.NoVendor)),
			zap.Duration("execution_time", time.Since(start)),
		)
	}

	return nil
}
