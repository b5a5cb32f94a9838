package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"drying-engine/internal/models"
	"drying-engine/pkg/database"
	"drying-engine/pkg/logging"
)

// CatalogRepository provides data access for equipment catalog rows
type CatalogRepository interface {
	ListEquipment(ctx context.Context) ([]models.EquipmentSpec, error)
	UpsertEquipment(ctx context.Context, specs []models.EquipmentSpec) error
	DeleteEquipment(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error
}

// equipmentRow mirrors one row of equipment_catalog
type equipmentRow struct {
	ID                        string          `db:"id"`
	Name                      string          `db:"name"`
	Kind                      string          `db:"kind"`
	RatedCapacityLitresPerDay sql.NullFloat64 `db:"rated_capacity_litres_per_day"`
	RatedAirflow              sql.NullFloat64 `db:"rated_airflow"`
	AmpDraw                   float64         `db:"amp_draw"`
	UpdatedAt                 time.Time       `db:"updated_at"`
}

func (r equipmentRow) toSpec() (models.EquipmentSpec, error) {
	kind, err := models.ParseEquipmentKind(r.Kind)
	if err != nil {
		return models.EquipmentSpec{}, fmt.Errorf("equipment %q: %w", r.ID, err)
	}

	spec := models.EquipmentSpec{
		ID:      r.ID,
		Name:    r.Name,
		Kind:    kind,
		AmpDraw: r.AmpDraw,
	}
	if r.RatedCapacityLitresPerDay.Valid {
		spec.RatedCapacityLitresPerDay = r.RatedCapacityLitresPerDay.Float64
	}
	if r.RatedAirflow.Valid {
		spec.RatedAirflow = r.RatedAirflow.Float64
	}

	return spec, nil
}

func rowFromSpec(spec models.EquipmentSpec, now time.Time) equipmentRow {
	return equipmentRow{
		ID:                        spec.ID,
		Name:                      spec.Name,
		Kind:                      string(spec.Kind),
		RatedCapacityLitresPerDay: nullIfZero(spec.RatedCapacityLitresPerDay),
		RatedAirflow:              nullIfZero(spec.RatedAirflow),
		AmpDraw:                   spec.AmpDraw,
		UpdatedAt:                 now,
	}
}

func nullIfZero(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}

// catalogRepository implements CatalogRepository
type catalogRepository struct {
	db     *database.PostgresDB
	logger *logging.StructuredLogger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *database.PostgresDB, logger *logging.StructuredLogger) CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

// ListEquipment returns every catalog row ordered by id
func (r *catalogRepository) ListEquipment(ctx context.Context) ([]models.EquipmentSpec, error) {
	query := `
		SELECT id, name, kind, rated_capacity_litres_per_day, rated_airflow, amp_draw, updated_at
		FROM equipment_catalog
		ORDER BY id
	`

	var rows []equipmentRow
	if err := r.db.SelectContext(ctx, "list_equipment", &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	specs := make([]models.EquipmentSpec, 0, len(rows))
	for _, row := range rows {
		spec, err := row.toSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// UpsertEquipment writes specs in a single transaction, replacing rows with the same id
func (r *catalogRepository) UpsertEquipment(ctx context.Context, specs []models.EquipmentSpec) error {
	if len(specs) == 0 {
		return nil
	}

	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return err
		}
	}

	timer := time.Now()
	defer func() {
		r.logger.Debug(ctx, "[REPO_UPSERT] Catalog upsert completed", logging.Fields{
			"count":       len(specs),
			"duration_ms": time.Since(timer).Milliseconds(),
		})
	}()

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO equipment_catalog (
			id, name, kind, rated_capacity_litres_per_day, rated_airflow, amp_draw, updated_at
		)
		VALUES (:id, :name, :kind, :rated_capacity_litres_per_day, :rated_airflow, :amp_draw, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			rated_capacity_litres_per_day = EXCLUDED.rated_capacity_litres_per_day,
			rated_airflow = EXCLUDED.rated_airflow,
			amp_draw = EXCLUDED.amp_draw,
			updated_at = EXCLUDED.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, spec := range specs {
		if _, err := stmt.ExecContext(ctx, rowFromSpec(spec, now)); err != nil {
			return fmt.Errorf("failed to upsert equipment %q: %w", spec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteEquipment removes one catalog row
func (r *catalogRepository) DeleteEquipment(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "delete_equipment", `DELETE FROM equipment_catalog WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "equipment", ID: id}
	}

	return nil
}

// HealthCheck performs a repository health check
func (r *catalogRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}
