package campusservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AreaService handles building and floor business logic
type AreaService interface {
	ListAreas(ctx context.Context, filters models.AreaFilters) ([]*models.Area, error)
	GetArea(ctx context.Context, id string) (*models.Area, error)
	ListAreasByParent(ctx context.Context, parentID string) ([]*models.Area, error)
	CreateArea(ctx context.Context, in models.AreaInput, image *models.ImageUpload) (*models.Area, error)
	UpdateArea(ctx context.Context, id string, in models.AreaInput, image *models.ImageUpload) (*models.Area, error)
	DeleteArea(ctx context.Context, id string) error
}

func (s *CampusService) ListAreas(ctx context.Context, filters models.AreaFilters) ([]*models.Area, error) {
	if filters.AreaType != "" && !filters.AreaType.Valid() {
		return nil, errors.NewValidationError("area_type must be building or floor", nil)
	}
	return s.Areas.List(ctx, filters)
}

func (s *CampusService) GetArea(ctx context.Context, id string) (*models.Area, error) {
	return s.Areas.Get(ctx, id)
}

// ListAreasByParent returns the areas directly inside parentID.
// An unknown parent is NotFound; a parent without children yields an empty list.
func (s *CampusService) ListAreasByParent(ctx context.Context, parentID string) ([]*models.Area, error) {
	if _, err := s.Areas.Get(ctx, parentID); err != nil {
		return nil, err
	}
	return s.Areas.ListByParent(ctx, parentID)
}

// CreateArea validates and inserts a new area. When image bytes are supplied
// they are stored first and removed again if the insert fails.
func (s *CampusService) CreateArea(ctx context.Context, in models.AreaInput, image *models.ImageUpload) (*models.Area, error) {
	if err := s.validateAreaInput(ctx, "", in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	area := &models.Area{
		ID:          strings.TrimSpace(in.ID),
		Name:        strings.TrimSpace(in.Name),
		AreaType:    models.AreaType(in.AreaType),
		Description: in.Description,
		InsideOf:    models.StringPtr(strings.TrimSpace(in.InsideOf)),
		ImagePath:   models.StringPtr(strings.TrimSpace(in.ImagePath)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if area.ID == "" {
		area.ID = nuts.NID("ar", 12)
	}

	var storedPath string
	if image != nil {
		p, err := s.Images.Save(ctx, image.Filename, image.Data)
		if err != nil {
			return nil, err
		}
		storedPath = p
		area.ImagePath = &storedPath
	}

	if err := s.Areas.Create(ctx, area); err != nil {
		if storedPath != "" {
			s.discardImage(ctx, storedPath)
		}
		return nil, err
	}

	nuts.L.Infof("[AreaService] Created %s %s (%s)", area.AreaType, area.Name, area.ID)
	return area, nil
}

// UpdateArea replaces the mutable fields of an area. The image is replaced by
// a new upload or a caller-supplied path, cleared by RemoveImage, and kept otherwise.
func (s *CampusService) UpdateArea(ctx context.Context, id string, in models.AreaInput, image *models.ImageUpload) (*models.Area, error) {
	existing, err := s.Areas.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateAreaInput(ctx, id, in); err != nil {
		return nil, err
	}
	if existing.IsBuilding() && models.AreaType(in.AreaType) == models.AreaTypeFloor {
		children, err := s.Areas.ListByParent(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 {
			return nil, errors.NewValidationError("a building with floors cannot become a floor", nil)
		}
	}

	updated := *existing
	updated.Name = strings.TrimSpace(in.Name)
	updated.AreaType = models.AreaType(in.AreaType)
	updated.Description = in.Description
	updated.InsideOf = models.StringPtr(strings.TrimSpace(in.InsideOf))
	updated.UpdatedAt = time.Now().UTC()

	var storedPath string
	switch {
	case image != nil:
		p, err := s.Images.Save(ctx, image.Filename, image.Data)
		if err != nil {
			return nil, err
		}
		storedPath = p
		updated.ImagePath = &storedPath
	case in.RemoveImage:
		updated.ImagePath = nil
	case strings.TrimSpace(in.ImagePath) != "":
		updated.ImagePath = models.StringPtr(strings.TrimSpace(in.ImagePath))
	}

	if err := s.Areas.Update(ctx, &updated); err != nil {
		if storedPath != "" {
			s.discardImage(ctx, storedPath)
		}
		return nil, err
	}

	if old := models.StringValue(existing.ImagePath); old != "" && old != models.StringValue(updated.ImagePath) {
		s.discardImage(ctx, old)
	}

	nuts.L.Infof("[AreaService] Updated area %s", id)
	return &updated, nil
}

// DeleteArea handles area deletion with cascading cleanup
func (s *CampusService) DeleteArea(ctx context.Context, id string) error {
	res, err := s.Cleanup.DeleteArea(ctx, id)
	if err != nil {
		return err
	}
	if len(res.SensorIDs) > 0 {
		s.Stats.Invalidate(ctx)
	}
	nuts.L.Infof("[AreaService] Deleted area %s", id)
	return nil
}

func (s *CampusService) validateAreaInput(ctx context.Context, selfID string, in models.AreaInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.NewValidationError("name is required", nil)
	}
	if in.AreaType == "" {
		return errors.NewValidationError("area_type is required", nil)
	}
	areaType := models.AreaType(in.AreaType)
	if !areaType.Valid() {
		return errors.NewValidationError("area_type must be building or floor", nil)
	}

	parentID := strings.TrimSpace(in.InsideOf)
	if areaType == models.AreaTypeBuilding {
		if parentID != "" {
			return errors.NewValidationError("a building cannot be inside another area", nil)
		}
		return nil
	}

	if parentID == "" {
		return errors.NewValidationError("inside_of is required for a floor", nil)
	}
	if parentID == selfID {
		return errors.NewValidationError("an area cannot be inside itself", nil)
	}
	parent, err := s.Areas.Get(ctx, parentID)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.NewValidationError(fmt.Sprintf("parent area %s does not exist", parentID), err)
		}
		return err
	}
	if !parent.IsBuilding() {
		return errors.NewValidationError("a floor must be inside a building", nil)
	}
	return nil
}

// discardImage removes a stored image; failures are only logged
func (s *CampusService) discardImage(ctx context.Context, publicPath string) {
	if !s.Images.IsStored(publicPath) {
		return
	}
	if err := s.Images.Delete(ctx, publicPath); err != nil {
		nuts.L.Warnf("[AreaService] Failed to delete image %s: %v", publicPath, err)
	}
}
