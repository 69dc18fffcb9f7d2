package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	"github.com/itsatony/smartrooms/internal/testutil"
)

func newArea(id, name string, t models.AreaType, insideOf string) *models.Area {
	now := time.Now().UTC()
	return &models.Area{
		ID:        id,
		Name:      name,
		AreaType:  t,
		InsideOf:  models.StringPtr(insideOf),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAreaRepoCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAreaRepository(db)
	ctx := context.Background()

	building := newArea("ar_main", "Main Building", models.AreaTypeBuilding, "")
	building.Description = "Lecture halls"
	building.ImagePath = models.StringPtr("/assets/images/main.png")
	if err := repo.Create(ctx, building); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.Get(ctx, "ar_main")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Main Building" || got.AreaType != models.AreaTypeBuilding || got.Description != "Lecture halls" {
		t.Errorf("unexpected area: %+v", got)
	}
	if models.StringValue(got.ImagePath) != "/assets/images/main.png" {
		t.Errorf("ImagePath = %v", got.ImagePath)
	}
	if got.InsideOf != nil {
		t.Errorf("InsideOf = %v, want nil", *got.InsideOf)
	}

	got.Name = "Main Hall"
	got.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	again, _ := repo.Get(ctx, "ar_main")
	if again.Name != "Main Hall" {
		t.Errorf("Name = %q after update", again.Name)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := repo.Update(ctx, newArea("missing", "x", models.AreaTypeBuilding, "")); !errors.IsNotFound(err) {
		t.Errorf("expected not found on update, got %v", err)
	}
}

func TestAreaRepoDuplicateID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAreaRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newArea("ar_1", "A", models.AreaTypeBuilding, "")); err != nil {
		t.Fatal(err)
	}
	err := repo.Create(ctx, newArea("ar_1", "B", models.AreaTypeBuilding, ""))
	if !errors.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestAreaRepoListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAreaRepository(db)
	ctx := context.Background()

	testutil.CreateTestArea(t, db, "ar_b1", "North", models.AreaTypeBuilding, "")
	testutil.CreateTestArea(t, db, "ar_b2", "South", models.AreaTypeBuilding, "")
	testutil.CreateTestArea(t, db, "ar_f1", "North 1", models.AreaTypeFloor, "ar_b1")
	testutil.CreateTestArea(t, db, "ar_f2", "North 2", models.AreaTypeFloor, "ar_b1")

	tests := []struct {
		name    string
		filters models.AreaFilters
		want    int
	}{
		{"all", models.AreaFilters{}, 4},
		{"buildings", models.AreaFilters{AreaType: models.AreaTypeBuilding}, 2},
		{"inside north", models.AreaFilters{InsideOf: "ar_b1"}, 2},
		{"inside south", models.AreaFilters{InsideOf: "ar_b2"}, 0},
		{"floors inside north", models.AreaFilters{InsideOf: "ar_b1", AreaType: models.AreaTypeFloor}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			areas, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatal(err)
			}
			if len(areas) != tt.want {
				t.Errorf("got %d areas, want %d", len(areas), tt.want)
			}
		})
	}

	children, err := repo.ListByParent(ctx, "ar_b1")
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 2 {
		t.Errorf("ListByParent returned %d areas", len(children))
	}
}

func TestAreaRepoDeleteByIDsInTx(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAreaRepository(db)
	ctx := context.Background()

	testutil.CreateTestArea(t, db, "ar_b", "B", models.AreaTypeBuilding, "")
	testutil.CreateTestArea(t, db, "ar_f", "F", models.AreaTypeFloor, "ar_b")

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.DeleteByIDs(ctx, []string{"ar_f"}, tx); err != nil {
		t.Fatal(err)
	}
	n, err := repo.DeleteByIDs(ctx, []string{"ar_b"}, tx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("deleted %d rows, want 1", n)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}
	if got := testutil.CountRows(t, db, "areas"); got != 2 {
		t.Errorf("rollback left %d areas, want 2", got)
	}
}

func TestSensorRepoStatusAndCoordinates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSensorRepository(db)
	ctx := context.Background()

	testutil.CreateTestArea(t, db, "ar_b", "Library", models.AreaTypeBuilding, "")
	testutil.CreateTestArea(t, db, "ar_f", "Ground Floor", models.AreaTypeFloor, "ar_b")
	testutil.CreateTestSensor(t, db, "sn_1", "Entrance", "ar_f", models.SensorStatusInactive)

	if err := repo.UpdateStatus(ctx, "sn_1", models.SensorStatusError); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if err := repo.UpdateCoordinates(ctx, "sn_1", models.Coordinates{X: 25.5, Y: 70}); err != nil {
		t.Fatalf("UpdateCoordinates failed: %v", err)
	}

	s, err := repo.Get(ctx, "sn_1")
	if err != nil {
		t.Fatal(err)
	}
	if s.Status != models.SensorStatusError {
		t.Errorf("Status = %q", s.Status)
	}
	if s.Coordinates == nil || *s.Coordinates != (models.Coordinates{X: 25.5, Y: 70}) {
		t.Errorf("Coordinates = %+v", s.Coordinates)
	}

	if err := repo.UpdateStatus(ctx, "nope", models.SensorStatusActive); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := repo.UpdateCoordinates(ctx, "nope", models.Coordinates{}); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSensorRepoListWithAreas(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSensorRepository(db)
	ctx := context.Background()

	testutil.CreateTestArea(t, db, "ar_b", "Library", models.AreaTypeBuilding, "")
	testutil.CreateTestArea(t, db, "ar_f", "Ground Floor", models.AreaTypeFloor, "ar_b")
	testutil.CreateTestSensor(t, db, "sn_2", "Reading Room", "ar_f", models.SensorStatusActive)
	testutil.CreateTestSensor(t, db, "sn_1", "Entrance", "ar_f", models.SensorStatusActive)
	testutil.CreateTestSensor(t, db, "sn_3", "Lobby", "ar_b", models.SensorStatusActive)

	views, err := repo.ListWithAreas(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 3 {
		t.Fatalf("got %d sensors, want 3", len(views))
	}

	byID := map[string]*models.SensorView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	floorSensor := byID["sn_1"]
	if models.StringValue(floorSensor.AreaName) != "Ground Floor" || models.StringValue(floorSensor.BuildingName) != "Library" {
		t.Errorf("unexpected join for floor sensor: %+v", floorSensor)
	}
	if floorSensor.AreaType == nil || *floorSensor.AreaType != models.AreaTypeFloor {
		t.Errorf("AreaType = %v", floorSensor.AreaType)
	}
	if byID["sn_3"].BuildingName != nil {
		t.Errorf("sensor placed on a building has no parent building, got %v", *byID["sn_3"].BuildingName)
	}

	// within the same building and area, sensors are ordered by name
	var floorOrder []string
	for _, v := range views {
		if v.AreaID == "ar_f" {
			floorOrder = append(floorOrder, v.Name)
		}
	}
	if len(floorOrder) != 2 || floorOrder[0] != "Entrance" || floorOrder[1] != "Reading Room" {
		t.Errorf("floor sensor order = %v", floorOrder)
	}
}

func TestSensorRepoStatistics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSensorRepository(db)
	ctx := context.Background()

	stats, err := repo.Statistics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if *stats != (models.SensorStatistics{}) {
		t.Errorf("empty statistics = %+v, want zeros", stats)
	}

	testutil.CreateTestArea(t, db, "ar_b", "B", models.AreaTypeBuilding, "")
	testutil.CreateTestSensor(t, db, "sn_1", "a", "ar_b", models.SensorStatusActive)
	testutil.CreateTestSensor(t, db, "sn_2", "b", "ar_b", models.SensorStatusActive)
	testutil.CreateTestSensor(t, db, "sn_3", "c", "ar_b", models.SensorStatusInactive)
	testutil.CreateTestSensor(t, db, "sn_4", "d", "ar_b", models.SensorStatusError)

	stats, err = repo.Statistics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := models.SensorStatistics{Total: 4, Active: 2, Inactive: 1, Error: 1}
	if *stats != want {
		t.Errorf("statistics = %+v, want %+v", *stats, want)
	}
	if stats.Active+stats.Inactive+stats.Error != stats.Total {
		t.Error("status counts do not sum to total")
	}
}

func TestSensorRepoDeleteByAreaIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSensorRepository(db)
	ctx := context.Background()

	testutil.CreateTestArea(t, db, "ar_a", "A", models.AreaTypeBuilding, "")
	testutil.CreateTestArea(t, db, "ar_b", "B", models.AreaTypeBuilding, "")
	testutil.CreateTestSensor(t, db, "sn_1", "a", "ar_a", models.SensorStatusActive)
	testutil.CreateTestSensor(t, db, "sn_2", "b", "ar_b", models.SensorStatusActive)

	listed, err := repo.ListByAreaIDs(ctx, []string{"ar_a"})
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListByAreaIDs = %v, %v", listed, err)
	}

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	n, err := repo.DeleteByAreaIDs(ctx, []string{"ar_a"}, tx)
	if err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("deleted %d sensors, want 1", n)
	}
	if got := testutil.CountRows(t, db, "sensors"); got != 1 {
		t.Errorf("%d sensors remain, want 1", got)
	}
}

func TestUserRepo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{
		ID:           "usr_1",
		Username:     "maria",
		PasswordHash: "hash",
		UserType:     models.UserTypeMaintainer,
		Email:        "maria@example.edu",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	dup := *u
	dup.ID = "usr_2"
	if err := repo.Create(ctx, &dup); !errors.IsConflict(err) {
		t.Errorf("expected conflict for duplicate username, got %v", err)
	}

	got, err := repo.GetByUsername(ctx, "maria")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "usr_1" || got.PasswordHash != "hash" || got.UserType != models.UserTypeMaintainer {
		t.Errorf("unexpected user: %+v", got)
	}
	if _, err := repo.Get(ctx, "usr_404"); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
