package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"drying-engine/internal/catalog"
	"drying-engine/internal/config"
	"drying-engine/internal/migrations"
	"drying-engine/internal/repository"
	"drying-engine/internal/services"
	"drying-engine/pkg/database"
	"drying-engine/pkg/logging"
	"drying-engine/pkg/metrics"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up, down or status")
	seed := flag.Bool("seed", false, "Upsert an equipment catalog after migrating up")
	catalogFile := flag.String("catalog", "", "Catalog YAML to seed; the built-in reference catalog when empty")
	batchSize := flag.Int("batch-size", services.DefaultImportBatchSize, "Catalog rows written per transaction")
	remove := flag.String("delete", "", "Comma-separated equipment ids to delete after migrating up")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	dir, err := migrations.ParseDirection(*direction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger("drying-migrate", "1.0.0", logging.ParseLevel(cfg.Logging.Level))
	defer logger.Sync()

	ctx := context.Background()
	metricsCollector := metrics.NewCollector("drying_migrate", prometheus.NewRegistry())

	db, err := database.NewPostgresDB(ctx, cfg.PostgresConfig(), logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[MIGRATE_ERROR] Failed to connect to database", logging.Fields{
			"db_host": cfg.Database.Host,
			"db_name": cfg.Database.Database,
		}, err)
	}
	defer db.Close()

	logger.Info(ctx, "[MIGRATE_START] Running migrations", logging.Fields{
		"direction": string(dir),
	})

	if err := migrations.Run(ctx, db.DB().DB, dir, logger.Zap()); err != nil {
		logger.Fatal(ctx, "[MIGRATE_ERROR] Migration failed", logging.Fields{
			"direction": string(dir),
		}, err)
	}

	importer := services.NewImportService(repository.NewCatalogRepository(db, logger), logger)

	if *seed && dir == migrations.DirectionUp {
		var result *services.ImportResult
		if *catalogFile != "" {
			result, err = importer.ImportFile(ctx, *catalogFile, *batchSize)
		} else {
			result, err = importer.Import(ctx, config.CatalogReference, catalog.Reference(), *batchSize)
		}
		if err != nil {
			logger.Fatal(ctx, "[SEED_ERROR] Catalog seed failed", logging.Fields{}, err)
		}

		fmt.Printf("Seeded %d equipment entries from %s in %v\n", result.TotalRecords, result.Source, result.Duration)
	}

	if ids := splitIDs(*remove); len(ids) > 0 && dir == migrations.DirectionUp {
		result, err := importer.Remove(ctx, ids)
		if err != nil {
			logger.Fatal(ctx, "[REMOVE_ERROR] Catalog delete failed", logging.Fields{}, err)
		}

		fmt.Printf("Deleted %d equipment entries", len(result.Removed))
		if len(result.Missing) > 0 {
			fmt.Printf(", not found: %s", strings.Join(result.Missing, ", "))
		}
		fmt.Println()
	}

	logger.Info(ctx, "[MIGRATE_COMPLETE] Migrations completed", logging.Fields{
		"direction": string(dir),
	})
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
