package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fnum/core/config"
	"fnum/core/loader"
	"fnum/core/logger"
	"fnum/core/middleware/auth"
	"fnum/core/middleware/rayid"
	"fnum/feature/gallery"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "fnum/docs/swagger"
)

// @title fnum API
// @version 1.0
// @description API for renumbering gallery directories.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gallery HTTP server",
	Long: `Starts the HTTP server exposing the galleries below NUMBERING_ROOT.
Each gallery is a directory that can be inspected and renumbered remotely.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Optional journal and bucket
		j := openJournal(cfg.Database, logg)

		var publisher *gallery.Publisher
		if cfg.Storage.Enabled {
			if publisher, err = openPublisher(cmd.Context(), cfg.Storage); err != nil {
				logg.Fatal("Failed to connect storage", zap.Error(err))
			}
			logg.Info("Publishing enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 4. Initialize Fiber App
		timeout := time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           timeout,
			WriteTimeout:          timeout,
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		svc := gallery.NewService(afero.NewOsFs(), cfg.Numbering, publisher, j, logg)
		mgr.Register(gallery.NewFeature(svc))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey:         cfg.Server.ApiKey,
			PublicPrefixes: []string{"/health", "/swagger"},
		}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded",
			zap.Strings("features", loaded),
			zap.String("root", cfg.Numbering.Root),
			zap.Bool("auth", cfg.Server.AuthEnabled()),
			zap.Bool("journal", j != nil),
		)

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
