package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
)

const sensorColumns = `id, name, area_id, status, coordinates, count, max_capacity, created_at, updated_at`

type SensorRepo struct {
	BaseRepo
}

func NewSensorRepository(db database.DB) *SensorRepo {
	return &SensorRepo{BaseRepo: BaseRepo{db: db}}
}

func (r *SensorRepo) Create(ctx context.Context, sensor *models.Sensor) error {
	query := `
		INSERT INTO sensors (
			id, name, area_id, status, coordinates, count, max_capacity, created_at, updated_at
		) VALUES (
			:id, :name, :area_id, :status, :coordinates, :count, :max_capacity, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, sensor)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("sensor with this id already exists", err)
		}
		return errors.NewDatabaseError("failed to create sensor", err)
	}
	return nil
}

func (r *SensorRepo) Get(ctx context.Context, id string) (*models.Sensor, error) {
	sensor := &models.Sensor{}
	query := r.rebind(`SELECT ` + sensorColumns + ` FROM sensors WHERE id = ?`)

	err := r.db.GetDB().GetContext(ctx, sensor, query, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("sensor not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get sensor", err)
	}
	return sensor, nil
}

// ListWithAreas joins every sensor with its area and that area's parent building.
// Sensors whose area is gone still appear, with null area fields.
func (r *SensorRepo) ListWithAreas(ctx context.Context) ([]*models.SensorView, error) {
	query := `
		SELECT
			s.id, s.name, s.area_id, s.status, s.coordinates, s.count, s.max_capacity,
			s.created_at, s.updated_at,
			a.name AS area_name,
			a.area_type AS area_type,
			parent.name AS building_name
		FROM sensors s
		LEFT JOIN areas a ON s.area_id = a.id
		LEFT JOIN areas parent ON a.inside_of = parent.id
		ORDER BY parent.name, a.name, s.name`

	sensors := []*models.SensorView{}
	if err := r.db.GetDB().SelectContext(ctx, &sensors, query); err != nil {
		return nil, errors.NewDatabaseError("failed to list sensors", err)
	}
	return sensors, nil
}

func (r *SensorRepo) ListByAreaIDs(ctx context.Context, areaIDs []string) ([]*models.Sensor, error) {
	sensors := []*models.Sensor{}
	if len(areaIDs) == 0 {
		return sensors, nil
	}
	query, args, err := r.in(`SELECT `+sensorColumns+` FROM sensors WHERE area_id IN (?) ORDER BY name`, areaIDs)
	if err != nil {
		return nil, err
	}
	if err := r.db.GetDB().SelectContext(ctx, &sensors, query, args...); err != nil {
		return nil, errors.NewDatabaseError("failed to list sensors by area", err)
	}
	return sensors, nil
}

func (r *SensorRepo) UpdateStatus(ctx context.Context, id string, status models.SensorStatus) error {
	query := r.rebind(`UPDATE sensors SET status = ?, updated_at = ? WHERE id = ?`)
	result, err := r.db.GetDB().ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return errors.NewDatabaseError("failed to update sensor status", err)
	}
	return checkAffected(result, "sensor")
}

func (r *SensorRepo) UpdateCoordinates(ctx context.Context, id string, coords models.Coordinates) error {
	query := r.rebind(`UPDATE sensors SET coordinates = ?, updated_at = ? WHERE id = ?`)
	result, err := r.db.GetDB().ExecContext(ctx, query, coords, time.Now().UTC(), id)
	if err != nil {
		return errors.NewDatabaseError("failed to update sensor coordinates", err)
	}
	return checkAffected(result, "sensor")
}

// Statistics counts sensors per status in one aggregate query
func (r *SensorRepo) Statistics(ctx context.Context) (*models.SensorStatistics, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = 'inactive' THEN 1 ELSE 0 END), 0) AS inactive,
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0) AS error
		FROM sensors`

	stats := &models.SensorStatistics{}
	if err := r.db.GetDB().GetContext(ctx, stats, query); err != nil {
		return nil, errors.NewDatabaseError("failed to get sensor statistics", err)
	}
	return stats, nil
}

func (r *SensorRepo) DeleteByAreaIDs(ctx context.Context, areaIDs []string, tx database.Transaction) (int64, error) {
	if len(areaIDs) == 0 {
		return 0, nil
	}
	query, args, err := r.in(`DELETE FROM sensors WHERE area_id IN (?)`, areaIDs)
	if err != nil {
		return 0, err
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to delete sensors", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}
	return n, nil
}
