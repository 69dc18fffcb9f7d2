package campusservice

import (
	"context"
	"time"

	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SensorService handles sensor management business logic
type SensorService interface {
	ListSensorsWithAreas(ctx context.Context) ([]*models.SensorView, error)
	UpdateSensorStatus(ctx context.Context, id string, status string) error
	UpdateSensorCoordinates(ctx context.Context, id string, in *models.CoordinatesInput) error
	GetSensorStatistics(ctx context.Context) (*models.SensorStatistics, error)
}

func (s *CampusService) ListSensorsWithAreas(ctx context.Context) ([]*models.SensorView, error) {
	return s.Sensors.ListWithAreas(ctx)
}

// UpdateSensorStatus sets the status of a sensor. Any transition is allowed.
func (s *CampusService) UpdateSensorStatus(ctx context.Context, id string, status string) error {
	if status == "" {
		return errors.NewValidationError("Status is required", nil)
	}
	st := models.SensorStatus(status)
	if !st.Valid() {
		return errors.NewValidationError("status must be one of active, inactive, error", nil)
	}
	if err := s.Sensors.UpdateStatus(ctx, id, st); err != nil {
		return err
	}
	s.Stats.Invalidate(ctx)
	nuts.L.Infof("[SensorService] Sensor %s is now %s", id, st)
	return nil
}

// UpdateSensorCoordinates places a sensor on its floor plan. Values are not range checked.
func (s *CampusService) UpdateSensorCoordinates(ctx context.Context, id string, in *models.CoordinatesInput) error {
	if in == nil || in.X == nil || in.Y == nil {
		return errors.NewValidationError("Valid coordinates (x, y) are required", nil)
	}
	return s.Sensors.UpdateCoordinates(ctx, id, models.Coordinates{X: *in.X, Y: *in.Y})
}

// CreateSensor stores a new sensor bound to an existing area
func (s *CampusService) CreateSensor(ctx context.Context, sensor *models.Sensor) error {
	if sensor.Status == "" {
		sensor.Status = models.SensorStatusInactive
	}
	if !sensor.Status.Valid() {
		return errors.NewValidationError("status must be one of active, inactive, error", nil)
	}
	if sensor.ID == "" {
		sensor.ID = nuts.NID("sn", 12)
	}
	now := time.Now().UTC()
	if sensor.CreatedAt.IsZero() {
		sensor.CreatedAt = now
	}
	sensor.UpdatedAt = now
	if err := s.Sensors.Create(ctx, sensor); err != nil {
		return err
	}
	s.Stats.Invalidate(ctx)
	return nil
}

func (s *CampusService) GetSensorStatistics(ctx context.Context) (*models.SensorStatistics, error) {
	if stats, ok := s.Stats.GetStatistics(ctx); ok {
		return stats, nil
	}
	stats, err := s.Sensors.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	s.Stats.SetStatistics(ctx, stats)
	return stats, nil
}
