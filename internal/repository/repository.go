// FilePath: internal/repository/repository.go
package repository

import (
	"context"

	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/models"
)

// AreaRepository defines the interface for building and floor rows
type AreaRepository interface {
	database.Repository
	Create(ctx context.Context, area *models.Area) error
	Get(ctx context.Context, id string) (*models.Area, error)
	Update(ctx context.Context, area *models.Area) error
	List(ctx context.Context, filters models.AreaFilters) ([]*models.Area, error)
	ListByParent(ctx context.Context, parentID string) ([]*models.Area, error)
	DeleteByIDs(ctx context.Context, ids []string, tx database.Transaction) (int64, error)
}

// SensorRepository defines the interface for occupancy sensor rows
type SensorRepository interface {
	database.Repository
	Create(ctx context.Context, sensor *models.Sensor) error
	Get(ctx context.Context, id string) (*models.Sensor, error)
	ListWithAreas(ctx context.Context) ([]*models.SensorView, error)
	ListByAreaIDs(ctx context.Context, areaIDs []string) ([]*models.Sensor, error)
	UpdateStatus(ctx context.Context, id string, status models.SensorStatus) error
	UpdateCoordinates(ctx context.Context, id string, coords models.Coordinates) error
	Statistics(ctx context.Context) (*models.SensorStatistics, error)
	DeleteByAreaIDs(ctx context.Context, areaIDs []string, tx database.Transaction) (int64, error)
}

// UserRepository defines the interface for user accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ImageStore persists uploaded area images and hands back their public path
type ImageStore interface {
	Save(ctx context.Context, originalName string, data []byte) (string, error)
	Delete(ctx context.Context, publicPath string) error
	IsStored(publicPath string) bool
}
