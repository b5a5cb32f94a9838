package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drying-engine/internal/catalog"
	"drying-engine/internal/repository"
	"drying-engine/pkg/logging"
)

// DefaultImportBatchSize is the number of catalog rows written per transaction
const DefaultImportBatchSize = 50

// ImportService copies equipment catalogs into the equipment_catalog table
type ImportService struct {
	repo   repository.CatalogRepository
	logger *logging.StructuredLogger
}

// ImportResult contains import statistics
type ImportResult struct {
	Source       string
	TotalRecords int
	Batches      int
	Duration     time.Duration
}

// NewImportService creates a new import service
func NewImportService(repo repository.CatalogRepository, logger *logging.StructuredLogger) *ImportService {
	return &ImportService{
		repo:   repo,
		logger: logger,
	}
}

// ImportFile validates a catalog file and upserts every entry
func (s *ImportService) ImportFile(ctx context.Context, path string, batchSize int) (*ImportResult, error) {
	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, path, c, batchSize)
}

// Import upserts every entry of c in batches of batchSize
func (s *ImportService) Import(ctx context.Context, source string, c *catalog.Catalog, batchSize int) (*ImportResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultImportBatchSize
	}

	startTime := time.Now()
	specs := c.Specs()

	s.logger.Info(ctx, "[IMPORT_START] Starting catalog import", logging.Fields{
		"source":     source,
		"records":    len(specs),
		"batch_size": batchSize,
	})

	result := &ImportResult{Source: source}

	for start := 0; start < len(specs); start += batchSize {
		end := min(start+batchSize, len(specs))

		if err := s.repo.UpsertEquipment(ctx, specs[start:end]); err != nil {
			s.logger.Error(ctx, "[IMPORT_BATCH_ERROR] Catalog batch failed", logging.Fields{
				"source":      source,
				"batch_start": start,
				"batch_end":   end,
			}, err)
			return result, fmt.Errorf("failed to import catalog batch %d-%d: %w", start, end, err)
		}

		result.TotalRecords += end - start
		result.Batches++
	}

	result.Duration = time.Since(startTime)

	s.logger.Info(ctx, "[IMPORT_COMPLETE] Catalog import completed", logging.Fields{
		"source":           source,
		"total_records":    result.TotalRecords,
		"batches":          result.Batches,
		"duration_seconds": result.Duration.Seconds(),
	})

	return result, nil
}

// RemoveResult lists which ids were deleted and which were not in the table
type RemoveResult struct {
	Removed []string
	Missing []string
}

// Remove deletes catalog entries by id. Ids absent from the table are
// reported in Missing; any other failure stops the run.
func (s *ImportService) Remove(ctx context.Context, ids []string) (*RemoveResult, error) {
	result := &RemoveResult{}

	for _, id := range ids {
		err := s.repo.DeleteEquipment(ctx, id)

		var notFound *repository.NotFoundError
		switch {
		case err == nil:
			result.Removed = append(result.Removed, id)
		case errors.As(err, &notFound):
			result.Missing = append(result.Missing, id)
			s.logger.Warn(ctx, "[REMOVE_MISSING] Equipment not in catalog table", logging.Fields{
				"equipment_id": id,
			})
		default:
			s.logger.Error(ctx, "[REMOVE_ERROR] Failed to delete equipment", logging.Fields{
				"equipment_id": id,
			}, err)
			return result, fmt.Errorf("failed to remove %s: %w", id, err)
		}
	}

	s.logger.Info(ctx, "[REMOVE_COMPLETE] Catalog entries removed", logging.Fields{
		"removed": len(result.Removed),
		"missing": len(result.Missing),
	})

	return result, nil
}
