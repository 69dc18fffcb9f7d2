package cleanup

import (
	"context"
	"fmt"

	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	"github.com/itsatony/smartrooms/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Events emitted after a successful cascade delete. The single argument is the affected id or path.
const (
	EventAreaDeleted   = "area.deleted"
	EventSensorDeleted = "sensor.deleted"
	EventImageDeleted  = "image.deleted"
)

// CleanupService coordinates deletion of the area hierarchy
type CleanupService struct {
	areas   repository.AreaRepository
	sensors repository.SensorRepository
	images  repository.ImageStore
	events  *nuts.EventEmitter
}

// Result lists everything removed by a cascade delete
type Result struct {
	AreaIDs       []string
	SensorIDs     []string
	DeletedImages []string
}

// New creates a new CleanupService
func New(
	areas repository.AreaRepository,
	sensors repository.SensorRepository,
	images repository.ImageStore,
) *CleanupService {
	return &CleanupService{
		areas:   areas,
		sensors: sensors,
		images:  images,
		events:  nuts.NewEventEmitter(),
	}
}

// DeleteArea deletes an area, every area nested inside it and every sensor
// bound to any of them, in one transaction. Stored images are removed after
// commit; failures there are logged and do not fail the delete.
func (s *CleanupService) DeleteArea(ctx context.Context, areaID string) (*Result, error) {
	root, err := s.areas.Get(ctx, areaID)
	if err != nil {
		return nil, err
	}

	levels, err := s.collectSubtree(ctx, root)
	if err != nil {
		return nil, err
	}
	var allAreas []*models.Area
	var allIDs []string
	for _, level := range levels {
		for _, a := range level {
			allAreas = append(allAreas, a)
			allIDs = append(allIDs, a.ID)
		}
	}

	sensors, err := s.sensors.ListByAreaIDs(ctx, allIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensors: %w", err)
	}

	tx, err := s.areas.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	if _, err := s.sensors.DeleteByAreaIDs(ctx, allIDs, tx); err != nil {
		return nil, fmt.Errorf("failed to delete sensors: %w", err)
	}

	// deepest level first so no row is left pointing at a deleted parent
	for i := len(levels) - 1; i >= 0; i-- {
		ids := make([]string, 0, len(levels[i]))
		for _, a := range levels[i] {
			ids = append(ids, a.ID)
		}
		n, err := s.areas.DeleteByIDs(ctx, ids, tx)
		if err != nil {
			return nil, fmt.Errorf("failed to delete areas: %w", err)
		}
		if i == 0 && n == 0 {
			return nil, errors.NewNotFoundError("area not found", nil)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewDatabaseError("failed to commit transaction", err)
	}

	result := &Result{AreaIDs: allIDs}
	for _, sensor := range sensors {
		result.SensorIDs = append(result.SensorIDs, sensor.ID)
		s.emit(EventSensorDeleted, sensor.ID)
	}
	for _, a := range allAreas {
		if a.ImagePath != nil && s.images.IsStored(*a.ImagePath) {
			if err := s.images.Delete(ctx, *a.ImagePath); err != nil {
				nuts.L.Warnf("[Cleanup] Failed to delete image %s of area %s: %v", *a.ImagePath, a.ID, err)
			} else {
				result.DeletedImages = append(result.DeletedImages, *a.ImagePath)
				s.emit(EventImageDeleted, *a.ImagePath)
			}
		}
		s.emit(EventAreaDeleted, a.ID)
	}

	nuts.L.Infof("[Cleanup] Deleted area %s with %d nested areas and %d sensors",
		areaID, len(allIDs)-1, len(result.SensorIDs))
	return result, nil
}

// collectSubtree returns the areas below root grouped by depth, root first.
func (s *CleanupService) collectSubtree(ctx context.Context, root *models.Area) ([][]*models.Area, error) {
	levels := [][]*models.Area{{root}}
	seen := map[string]bool{root.ID: true}
	for {
		var next []*models.Area
		for _, parent := range levels[len(levels)-1] {
			children, err := s.areas.ListByParent(ctx, parent.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list child areas: %w", err)
			}
			for _, c := range children {
				if !seen[c.ID] {
					seen[c.ID] = true
					next = append(next, c)
				}
			}
		}
		if len(next) == 0 {
			return levels, nil
		}
		levels = append(levels, next)
	}
}

// OnCleanup registers a callback for cleanup events. Every call adds a
// separate listener; handlers run synchronously after the delete commits.
func (s *CleanupService) OnCleanup(event string, handler func(id string)) error {
	if _, err := s.events.On(event, "", handler); err != nil {
		return fmt.Errorf("failed to register %s handler: %w", event, err)
	}
	return nil
}

func (s *CleanupService) emit(event, id string) {
	if err := s.events.Emit(event, id); err != nil {
		nuts.L.Errorf("[Cleanup] Failed to deliver %s for %s: %v", event, id, err)
	}
}
