package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"blogpessoal/docs"
	"blogpessoal/internal/config"
	handlers "blogpessoal/internal/http/handler"
	"blogpessoal/internal/http/middleware"
	"blogpessoal/internal/logging"
	"blogpessoal/internal/otel"
	"blogpessoal/internal/service"
	"blogpessoal/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.Stdout(cfg.Location())

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Error("tracing_shutdown_failed", err, nil)
		}
	}()

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.migrate(ctx); err != nil {
		return err
	}

	// Photo storage is optional; without it the photo routes answer 503.
	var store storage.Storage
	if cfg.MinIO.Enabled() {
		store, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
	} else {
		log.Info("object_storage_disabled", map[string]any{"component": "storage"})
	}

	validate := service.NewValidator()
	svc := handlers.Services{
		Posts:  service.NewPostService(b.posts, validate),
		Topics: service.NewTopicService(b.topics, validate),
		Users:  service.NewUserService(b.users, store, validate),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:               "blogpessoal",
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID runs first so every later middleware can read it.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.Logger(log))
	app.Use(middleware.CORS(cfg.CORS))
	app.Use(prom.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(app, b.db, svc)

	mountSwagger(app)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_started", map[string]any{"port": cfg.Port, "db_driver": cfg.Database.Driver})
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_stopping", nil)
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("server_shutdown_failed", err, nil)
	}
	return nil
}

// mountSwagger serves the UI and doc.json. docs.SwaggerInfo is shared, so it
// is never written per request; an empty host and scheme list make the UI
// call whichever host served it.
func mountSwagger(app *fiber.App) {
	docs.SwaggerInfo.Host = ""
	docs.SwaggerInfo.Schemes = []string{}
	app.Get("/swagger/*", swagger.HandlerDefault)
}
