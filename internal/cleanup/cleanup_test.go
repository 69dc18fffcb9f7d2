package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	"github.com/itsatony/smartrooms/internal/repository/files"
	"github.com/itsatony/smartrooms/internal/repository/sqlstore"
	"github.com/itsatony/smartrooms/internal/testutil"
)

func setup(t *testing.T) (*CleanupService, *files.ImageRepo, func(string) int) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	images, err := files.NewImageRepository(files.ImageConfig{
		PublicDir:         t.TempDir(),
		MaxFileSize:       1 << 20,
		AllowedExtensions: []string{".png"},
		AllowedMimeTypes:  []string{"image/png"},
	})
	if err != nil {
		t.Fatal(err)
	}

	testutil.CreateTestArea(t, db, "ar_lib", "Library", models.AreaTypeBuilding, "")
	testutil.CreateTestArea(t, db, "ar_lib_1", "Library 1F", models.AreaTypeFloor, "ar_lib")
	testutil.CreateTestArea(t, db, "ar_lib_2", "Library 2F", models.AreaTypeFloor, "ar_lib")
	testutil.CreateTestArea(t, db, "ar_gym", "Gym", models.AreaTypeBuilding, "")
	testutil.CreateTestSensor(t, db, "sn_a", "Desk A", "ar_lib_1", models.SensorStatusActive)
	testutil.CreateTestSensor(t, db, "sn_b", "Desk B", "ar_lib_2", models.SensorStatusError)
	testutil.CreateTestSensor(t, db, "sn_c", "Lobby", "ar_lib", models.SensorStatusActive)
	testutil.CreateTestSensor(t, db, "sn_gym", "Court", "ar_gym", models.SensorStatusActive)

	svc := New(sqlstore.NewAreaRepository(db), sqlstore.NewSensorRepository(db), images)
	count := func(table string) int { return testutil.CountRows(t, db, table) }
	return svc, images, count
}

func TestDeleteBuildingCascades(t *testing.T) {
	svc, _, count := setup(t)

	deleted := map[string]bool{}
	if err := svc.OnCleanup(EventAreaDeleted, func(id string) { deleted[id] = true }); err != nil {
		t.Fatal(err)
	}

	res, err := svc.DeleteArea(context.Background(), "ar_lib")
	if err != nil {
		t.Fatalf("DeleteArea failed: %v", err)
	}
	if len(res.AreaIDs) != 3 || len(res.SensorIDs) != 3 {
		t.Errorf("unexpected result: %+v", res)
	}
	if got := count("areas"); got != 1 {
		t.Errorf("%d areas remain, want 1", got)
	}
	if got := count("sensors"); got != 1 {
		t.Errorf("%d sensors remain, want 1", got)
	}

	for _, id := range []string{"ar_lib", "ar_lib_1", "ar_lib_2"} {
		if !deleted[id] {
			t.Errorf("no event for %s", id)
		}
	}
}

func TestDeleteFloorLeavesBuilding(t *testing.T) {
	svc, _, count := setup(t)

	if _, err := svc.DeleteArea(context.Background(), "ar_lib_2"); err != nil {
		t.Fatal(err)
	}
	if got := count("areas"); got != 3 {
		t.Errorf("%d areas remain, want 3", got)
	}
	if got := count("sensors"); got != 3 {
		t.Errorf("%d sensors remain, want 3", got)
	}
}

func TestDeleteMissingArea(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.DeleteArea(context.Background(), "ar_nope")
	if !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteRemovesStoredImage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	images, err := files.NewImageRepository(files.ImageConfig{
		PublicDir:         t.TempDir(),
		MaxFileSize:       1 << 20,
		AllowedExtensions: []string{".png"},
		AllowedMimeTypes:  []string{"image/png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	stored, err := images.Save(ctx, "plan.png", testutil.PNG)
	if err != nil {
		t.Fatal(err)
	}

	areas := sqlstore.NewAreaRepository(db)
	now := time.Now().UTC()
	err = areas.Create(ctx, &models.Area{
		ID: "ar_x", Name: "X", AreaType: models.AreaTypeBuilding,
		ImagePath: &stored, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatal(err)
	}
	err = areas.Create(ctx, &models.Area{
		ID: "ar_y", Name: "Y", AreaType: models.AreaTypeBuilding,
		ImagePath: models.StringPtr("https://example.edu/y.jpg"), CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := New(areas, sqlstore.NewSensorRepository(db), images)
	res, err := svc.DeleteArea(ctx, "ar_x")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.DeletedImages) != 1 || res.DeletedImages[0] != stored {
		t.Errorf("DeletedImages = %v", res.DeletedImages)
	}

	res, err = svc.DeleteArea(ctx, "ar_y")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.DeletedImages) != 0 {
		t.Errorf("external image must not be deleted: %v", res.DeletedImages)
	}
}

func TestEventsReachEveryListener(t *testing.T) {
	svc, _, _ := setup(t)

	got := map[string][]string{}
	record := func(name string) func(string) {
		return func(id string) { got[name] = append(got[name], id) }
	}
	handlers := []struct {
		event string
		name  string
	}{
		{EventAreaDeleted, "areas-a"},
		{EventAreaDeleted, "areas-b"},
		{EventSensorDeleted, "sensors"},
	}
	for _, h := range handlers {
		if err := svc.OnCleanup(h.event, record(h.name)); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := svc.DeleteArea(context.Background(), "ar_gym"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"areas-a", "ar_gym"},
		{"areas-b", "ar_gym"},
		{"sensors", "sn_gym"},
	}
	for _, tt := range tests {
		if len(got[tt.name]) != 1 || got[tt.name][0] != tt.want {
			t.Errorf("%s received %v, want %v", tt.name, got[tt.name], tt.want)
		}
	}
}
