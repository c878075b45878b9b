package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"par-manager/core/loader"
	"par-manager/core/logger"
	"par-manager/core/middleware/auth"
	"par-manager/core/middleware/rayid"
	"par-manager/core/storage"

	"par-manager/feature/importer"
	"par-manager/feature/integrity"
	"par-manager/feature/inventory"
	"par-manager/feature/purchasing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "par-manager/docs/swagger"
)

// @title PAR Manager API
// @version 1.0
// @description Catalog, purchase list and bulk import API for PAR stock management.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the PAR manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false, true)
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger
		zap.ReplaceGlobals(logg)

		if rt.cfg.Storage.CreateBucket {
			if created, err := storage.EnsureBucket(cmd.Context(), rt.client, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
				logg.Warn("Failed to ensure storage bucket", zap.Error(err))
			} else if created {
				logg.Info("Created storage bucket", zap.String("bucket", rt.cfg.Storage.Bucket))
			}
		}

		opts, err := rt.importOptions()
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             rt.cfg.Server.BodyLimit(),
			ReadTimeout:           rt.cfg.Server.ReadTimeout(),
		})

		mgr := loader.NewManager()
		mgr.Register(inventory.NewFeature(rt.db, logg, rt.invalidate))
		mgr.Register(importer.NewFeature(rt.importStore(), logg, opts))
		mgr.Register(purchasing.NewFeature(rt.purchasingService()))
		mgr.Register(integrity.NewFeature(rt.client, rt.cfg.Storage.Bucket, rt.folders(), logg, rt.db))

		// RayID first so every log line carries it.
		app.Use(rayid.New())

		app.Use(logger.Requests(logg))

		// Public routes
		app.Get("/swagger/*", swagger.HandlerDefault)
		rt.metrics.Register(app)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("address", rt.cfg.Server.Address()))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
