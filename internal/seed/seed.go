package seed

import (
	"context"
	"fmt"

	"github.com/itsatony/smartrooms/internal/campusservice"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Account is a seeded login
type Account struct {
	Username string
	Password string
	UserType models.UserType
	Email    string
}

// DefaultAccounts are created by Users when missing
var DefaultAccounts = []Account{
	{Username: "admin", Password: "admin123", UserType: models.UserTypeAdmin, Email: "admin@campus.example"},
	{Username: "maintainer", Password: "maint1234", UserType: models.UserTypeMaintainer, Email: "facilities@campus.example"},
	{Username: "student", Password: "student123", UserType: models.UserTypeUser, Email: "student@campus.example"},
}

type demoFloor struct {
	name    string
	sensors []string
}

type demoBuilding struct {
	name        string
	description string
	floors      []demoFloor
}

var demoCampus = []demoBuilding{
	{
		name:        "Main Library",
		description: "Central library with silent study floors",
		floors: []demoFloor{
			{name: "Ground Floor", sensors: []string{"Entrance", "Reading Room"}},
			{name: "First Floor", sensors: []string{"Group Study A", "Group Study B"}},
		},
	},
	{
		name:        "Engineering Hall",
		description: "Lecture halls and labs",
		floors: []demoFloor{
			{name: "Level 1", sensors: []string{"Lecture Hall 101", "Lab 110"}},
		},
	},
}

// Users creates the default accounts that do not exist yet
func Users(ctx context.Context, svc *campusservice.CampusService) error {
	for _, acc := range DefaultAccounts {
		_, err := svc.Users.GetByUsername(ctx, acc.Username)
		if err == nil {
			continue
		}
		if !errors.IsNotFound(err) {
			return err
		}
		user := &models.User{Username: acc.Username, UserType: acc.UserType, Email: acc.Email}
		if err := svc.CreateUser(ctx, user, acc.Password); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", acc.Username, err)
		}
		nuts.L.Infof("[Seed] Created %s account %s", acc.UserType, acc.Username)
	}
	return nil
}

// Campus creates a demo set of buildings, floors and sensors unless areas already exist
func Campus(ctx context.Context, svc *campusservice.CampusService) error {
	existing, err := svc.ListAreas(ctx, models.AreaFilters{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		nuts.L.Infof("[Seed] %d areas present, skipping demo campus", len(existing))
		return nil
	}

	statuses := []models.SensorStatus{models.SensorStatusActive, models.SensorStatusActive, models.SensorStatusInactive, models.SensorStatusError}
	n := 0
	for _, b := range demoCampus {
		building, err := svc.CreateArea(ctx, models.AreaInput{
			Name:        b.name,
			AreaType:    string(models.AreaTypeBuilding),
			Description: b.description,
		}, nil)
		if err != nil {
			return fmt.Errorf("failed to seed building %s: %w", b.name, err)
		}
		for _, f := range b.floors {
			floor, err := svc.CreateArea(ctx, models.AreaInput{
				Name:     f.name,
				AreaType: string(models.AreaTypeFloor),
				InsideOf: building.ID,
			}, nil)
			if err != nil {
				return fmt.Errorf("failed to seed floor %s: %w", f.name, err)
			}
			for i, name := range f.sensors {
				sensor := &models.Sensor{
					Name:        name,
					AreaID:      floor.ID,
					Status:      statuses[n%len(statuses)],
					Coordinates: &models.Coordinates{X: float64(20 + 40*i), Y: 50},
					Count:       n * 3 % 25,
					MaxCapacity: 40,
				}
				if err := svc.CreateSensor(ctx, sensor); err != nil {
					return fmt.Errorf("failed to seed sensor %s: %w", name, err)
				}
				n++
			}
		}
	}
	nuts.L.Infof("[Seed] Created demo campus with %d buildings and %d sensors", len(demoCampus), n)
	return nil
}
