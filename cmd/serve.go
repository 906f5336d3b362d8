package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/config"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/infoblox"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/logger"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/middleware/rayid"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/feature/zonesync"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service exposing sync, status and preflight endpoints",
	Long: `serve starts an HTTP server where a sync run can be triggered on
demand and the last run's outcome inspected. Only one run executes at a
time; a trigger during a running sync is rejected.`,
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

		if err := cfg.DNS.Validate(); err != nil {
			logg.Fatal("Invalid sync configuration", zap.Error(err))
		}

		// 3. Initialize Infoblox client and sync service
		client := infoblox.NewClient(cfg.Infoblox, logg)
		service := zonesync.NewService(cfg.DNS, client, logg)

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 5. Register Routes
		zonesync.NewHandler(service).RegisterRoutes(app)

		// 6. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("zone", cfg.DNS.ZoneName))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
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
