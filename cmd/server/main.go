package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"drying-engine/internal/config"
	"drying-engine/internal/drying"
	"drying-engine/internal/handlers"
	"drying-engine/internal/repository"
	"drying-engine/internal/services"
	"drying-engine/internal/validation"
	"drying-engine/pkg/database"
	"drying-engine/pkg/logging"
	"drying-engine/pkg/metrics"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger("drying-api", version, logging.ParseLevel(cfg.Logging.Level))
	defer logger.Sync()

	ctx := context.Background()
	logger.Info(ctx, "[STARTUP] Starting drying engine API server", logging.Fields{
		"server_host":    cfg.Server.Host,
		"server_port":    cfg.Server.Port,
		"catalog_source": cfg.Engine.CatalogSource,
		"engine_config":  cfg.Engine.ConfigFile,
	})

	engineConfig, err := drying.LoadConfig(cfg.Engine.ConfigFile)
	if err != nil {
		logger.Fatal(ctx, "[STARTUP_ERROR] Invalid engine configuration", logging.Fields{
			"path": cfg.Engine.ConfigFile,
		}, err)
	}

	metricsCollector := metrics.NewCollector("drying_engine", prometheus.DefaultRegisterer)

	var (
		source services.CatalogSource
		health handlers.HealthChecker
	)

	if cfg.NeedsDatabase() {
		db, err := database.NewPostgresDB(ctx, cfg.PostgresConfig(), logger, metricsCollector)
		if err != nil {
			logger.Fatal(ctx, "[STARTUP_ERROR] Failed to connect to database", logging.Fields{
				"db_host": cfg.Database.Host,
				"db_name": cfg.Database.Database,
			}, err)
		}
		defer db.Close()

		repo := repository.NewCatalogRepository(db, logger)
		source = services.RepositorySource{Repo: repo}
		health = repo
	} else if cfg.Engine.CatalogSource == config.CatalogFile {
		source = services.FileSource{Path: cfg.Engine.CatalogFile}
	} else {
		source = services.ReferenceSource{}
	}

	assessmentService, err := services.NewAssessmentService(ctx, engineConfig, source, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[STARTUP_ERROR] Failed to load equipment catalog", logging.Fields{
			"catalog_source": source.Name(),
		}, err)
	}

	handler := handlers.NewAssessmentHandler(
		assessmentService,
		validation.New(),
		health,
		logger,
		metricsCollector,
		cfg.Server.MaxBodyBytes,
	)
	router := handlers.NewRouter(handler, promhttp.Handler(), metricsCollector, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info(ctx, "[SERVER_START] HTTP server listening", logging.Fields{
			"address": server.Addr,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "[SERVER_ERROR] Server failed", logging.Fields{}, err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range signals {
		if sig != syscall.SIGHUP {
			break
		}
		// SIGHUP reloads the catalog; a failed reload keeps serving the old one.
		logger.Info(ctx, "[CATALOG_RELOAD_SIGNAL] Reloading equipment catalog", logging.Fields{})
		assessmentService.ReloadCatalog(ctx)
	}

	logger.Info(ctx, "[SHUTDOWN] Shutting down server...", logging.Fields{})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "[SHUTDOWN_ERROR] Server forced to shutdown", logging.Fields{}, err)
	}

	logger.Info(ctx, "[SHUTDOWN_COMPLETE] Server stopped", logging.Fields{})
}
