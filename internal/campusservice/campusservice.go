package campusservice

import (
	"github.com/itsatony/smartrooms/internal/cache"
	"github.com/itsatony/smartrooms/internal/cleanup"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/repository"
)

// CampusService contains all repositories and service-wide dependencies
type CampusService struct {
	Areas      repository.AreaRepository
	Sensors    repository.SensorRepository
	Users      repository.UserRepository
	Images     repository.ImageStore
	Stats      cache.StatsCache
	Cleanup    *cleanup.CleanupService
	BcryptCost int
}

// New creates a new CampusService instance. A nil stats cache disables caching.
func New(
	areas repository.AreaRepository,
	sensors repository.SensorRepository,
	users repository.UserRepository,
	images repository.ImageStore,
	stats cache.StatsCache,
	bcryptCost int,
) *CampusService {
	if stats == nil {
		stats = cache.Noop{}
	}
	svc := &CampusService{
		Areas:      areas,
		Sensors:    sensors,
		Users:      users,
		Images:     images,
		Stats:      stats,
		BcryptCost: bcryptCost,
	}
	svc.Cleanup = cleanup.New(areas, sensors, images)
	return svc
}

// Validate checks if all required repositories are initialized
func (s *CampusService) Validate() error {
	if s.Areas == nil {
		return ErrMissingRepository("areas")
	}
	if s.Sensors == nil {
		return ErrMissingRepository("sensors")
	}
	if s.Users == nil {
		return ErrMissingRepository("users")
	}
	if s.Images == nil {
		return ErrMissingRepository("images")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
