package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"drying-engine/internal/catalog"
	"drying-engine/internal/drying"
	"drying-engine/internal/models"
	"drying-engine/pkg/logging"
	"drying-engine/pkg/metrics"
)

// CatalogInfo describes the catalog an engine snapshot was built from
type CatalogInfo struct {
	Source    string                 `json:"source"`
	LoadedAt  time.Time              `json:"loaded_at"`
	Equipment []models.EquipmentSpec `json:"equipment"`
}

// snapshot pairs an engine with the catalog it reads. Requests load the
// current snapshot once and use it for the whole run.
type snapshot struct {
	engine   *drying.Engine
	catalog  *catalog.Catalog
	loadedAt time.Time
}

// AssessmentService runs drying assessments against a reloadable catalog
type AssessmentService struct {
	config  drying.Config
	source  CatalogSource
	current atomic.Pointer[snapshot]
	reload  sync.Mutex
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
	now     func() time.Time
}

// NewAssessmentService loads the initial catalog from source and builds the engine
func NewAssessmentService(ctx context.Context, cfg drying.Config, source CatalogSource, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) (*AssessmentService, error) {
	s := &AssessmentService{
		config:  cfg,
		source:  source,
		logger:  logger,
		metrics: metricsCollector,
		now:     func() time.Time { return time.Now().UTC() },
	}

	if _, err := s.ReloadCatalog(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// ReloadCatalog swaps in a freshly loaded catalog. On failure the previous
// snapshot stays active.
func (s *AssessmentService) ReloadCatalog(ctx context.Context) (CatalogInfo, error) {
	s.reload.Lock()
	defer s.reload.Unlock()

	log := s.logger.WithFields(logging.Fields{"source": s.source.Name()})

	c, err := s.source.Load(ctx)
	if err == nil {
		var engine *drying.Engine
		engine, err = drying.New(s.config, c)
		if err == nil {
			s.current.Store(&snapshot{engine: engine, catalog: c, loadedAt: s.now()})
		}
	}

	if err != nil {
		s.metrics.RecordCatalogReload(s.source.Name(), 0, err)
		log.Error(ctx, "[CATALOG_RELOAD_ERROR] Catalog reload failed", nil, err)
		return CatalogInfo{}, fmt.Errorf("failed to load %s catalog: %w", s.source.Name(), err)
	}

	s.metrics.RecordCatalogReload(s.source.Name(), c.Len(), nil)
	log.Info(ctx, "[CATALOG_RELOAD] Equipment catalog loaded", logging.Fields{
		"equipment_count": c.Len(),
	})

	return s.Catalog(), nil
}

// Catalog describes the active catalog
func (s *AssessmentService) Catalog() CatalogInfo {
	snap := s.current.Load()
	return CatalogInfo{
		Source:    s.source.Name(),
		LoadedAt:  snap.loadedAt,
		Equipment: snap.catalog.Specs(),
	}
}

// Config returns the engine configuration in use
func (s *AssessmentService) Config() drying.Config {
	return s.config
}

// Assess runs the full pipeline for one report
func (s *AssessmentService) Assess(ctx context.Context, in drying.AssessmentInput) (*models.Assessment, error) {
	snap := s.current.Load()
	timer := s.metrics.NewTimer(s.metrics.AssessmentDuration)

	s.logger.Debug(ctx, "[ASSESS_START] Running drying assessment", logging.Fields{
		"areas":         len(in.Areas),
		"selections":    len(in.Selections),
		"water_class":   int(in.WaterClass),
		"duration_days": in.DurationDays,
	})

	result, err := snap.engine.Run(in)
	duration := timer.ObserveDuration()
	if err != nil {
		kind := models.ErrorKind(err)
		s.metrics.RecordAssessmentError(kind)
		s.logger.Warn(ctx, "[ASSESS_REJECTED] Assessment input rejected", logging.Fields{
			"error_kind": kind,
			"error":      err.Error(),
		})
		return nil, err
	}

	totalCost, _ := result.TotalCost.Float64()
	s.metrics.RecordAssessment(string(result.Severity), result.WaterRemovalTargetLitresPerDay, totalCost)
	if result.Psychrometrics != nil {
		s.metrics.PsychrometricsByStatus.WithLabelValues(string(result.Psychrometrics.Status)).Inc()
	}

	assessment := &models.Assessment{
		ID:        uuid.New(),
		CreatedAt: s.now(),
		Result:    result,
	}

	s.logger.Info(ctx, "[ASSESS_COMPLETE] Drying assessment completed", logging.Fields{
		"assessment_id":       assessment.ID.String(),
		"removal_target":      result.WaterRemovalTargetLitresPerDay,
		"achieved_capacity":   result.AchievedCapacityLitresPerDay,
		"min_air_movers":      result.MinAirMoversRequired,
		"achieved_air_movers": result.AchievedAirMoverUnits,
		"severity":            string(result.Severity),
		"total_cost":          result.TotalCost.StringFixed(2),
		"duration_us":         duration.Microseconds(),
	})

	return assessment, nil
}

// Psychrometrics classifies one ambient reading without sizing equipment
func (s *AssessmentService) Psychrometrics(ctx context.Context, ambient drying.Ambient) (models.PsychrometricReading, error) {
	reading, err := s.current.Load().engine.Assess(ambient)
	if err != nil {
		s.metrics.RecordAssessmentError(models.ErrorKind(err))
		return models.PsychrometricReading{}, err
	}

	s.metrics.PsychrometricsByStatus.WithLabelValues(string(reading.Status)).Inc()
	s.logger.Debug(ctx, "[PSYCHRO_READING] Ambient reading classified", logging.Fields{
		"drying_index": reading.DryingIndex,
		"status":       string(reading.Status),
	})

	return reading, nil
}
