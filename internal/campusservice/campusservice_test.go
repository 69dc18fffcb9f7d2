package campusservice

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	"github.com/itsatony/smartrooms/internal/repository/files"
	"github.com/itsatony/smartrooms/internal/repository/sqlstore"
	"github.com/itsatony/smartrooms/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	svc       *CampusService
	db        database.DB
	publicDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	publicDir := t.TempDir()
	images, err := files.NewImageRepository(files.ImageConfig{
		PublicDir:         publicDir,
		MaxFileSize:       5 << 20,
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		AllowedMimeTypes:  []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	})
	if err != nil {
		t.Fatal(err)
	}
	svc := New(
		sqlstore.NewAreaRepository(db),
		sqlstore.NewSensorRepository(db),
		sqlstore.NewUserRepository(db),
		images,
		nil,
		bcrypt.MinCost,
	)
	if err := svc.Validate(); err != nil {
		t.Fatal(err)
	}
	return &testEnv{svc: svc, db: db, publicDir: publicDir}
}

func (e *testEnv) imageCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(e.publicDir, "assets", "images"))
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func (e *testEnv) building(t *testing.T, name string) *models.Area {
	t.Helper()
	a, err := e.svc.CreateArea(context.Background(), models.AreaInput{Name: name, AreaType: "building"}, nil)
	if err != nil {
		t.Fatalf("create building: %v", err)
	}
	return a
}

func png(name string) *models.ImageUpload {
	return &models.ImageUpload{Filename: name, Data: testutil.PNG}
}

func TestCreateGetRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateArea(ctx, models.AreaInput{
		Name:        "Science Center",
		AreaType:    "building",
		Description: "Labs",
	}, nil)
	if err != nil {
		t.Fatalf("CreateArea failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := env.svc.GetArea(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetArea failed: %v", err)
	}
	if got.Name != "Science Center" || got.AreaType != models.AreaTypeBuilding || got.Description != "Labs" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.ImagePath != nil || got.InsideOf != nil {
		t.Errorf("expected no image and no parent: %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.building(t, "Main")
	floor, err := env.svc.CreateArea(ctx, models.AreaInput{Name: "1F", AreaType: "floor", InsideOf: b.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   models.AreaInput
	}{
		{"missing name", models.AreaInput{AreaType: "building"}},
		{"blank name", models.AreaInput{Name: "   ", AreaType: "building"}},
		{"missing type", models.AreaInput{Name: "X"}},
		{"unknown type", models.AreaInput{Name: "X", AreaType: "room"}},
		{"building inside area", models.AreaInput{Name: "X", AreaType: "building", InsideOf: b.ID}},
		{"floor without parent", models.AreaInput{Name: "X", AreaType: "floor"}},
		{"floor with missing parent", models.AreaInput{Name: "X", AreaType: "floor", InsideOf: "ar_ghost"}},
		{"floor inside floor", models.AreaInput{Name: "X", AreaType: "floor", InsideOf: floor.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.CreateArea(ctx, tt.in, png("x.png"))
			if !errors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	if n := env.imageCount(t); n != 0 {
		t.Errorf("rejected creates wrote %d images", n)
	}
}

func TestCreateWithImage(t *testing.T) {
	env := newTestEnv(t)
	a, err := env.svc.CreateArea(context.Background(), models.AreaInput{Name: "Gym", AreaType: "building"}, png("gym.png"))
	if err != nil {
		t.Fatal(err)
	}
	if a.ImagePath == nil || !env.svc.Images.IsStored(*a.ImagePath) {
		t.Errorf("expected stored image path, got %v", a.ImagePath)
	}
	if env.imageCount(t) != 1 {
		t.Error("expected one stored image")
	}
}

func TestCreateWithExternalImagePath(t *testing.T) {
	env := newTestEnv(t)
	a, err := env.svc.CreateArea(context.Background(), models.AreaInput{
		Name: "Gym", AreaType: "building", ImagePath: "https://cdn.example.edu/gym.jpg",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if models.StringValue(a.ImagePath) != "https://cdn.example.edu/gym.jpg" {
		t.Errorf("ImagePath = %v", a.ImagePath)
	}
}

func TestCreateFailureLeavesNoOrphanImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateArea(ctx, models.AreaInput{ID: "ar_dup", Name: "A", AreaType: "building"}, nil); err != nil {
		t.Fatal(err)
	}
	_, err := env.svc.CreateArea(ctx, models.AreaInput{ID: "ar_dup", Name: "B", AreaType: "building"}, png("b.png"))
	if !errors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if n := env.imageCount(t); n != 0 {
		t.Errorf("failed insert left %d images behind", n)
	}
}

func TestUpdatePreservesAndReplaces(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.svc.CreateArea(ctx, models.AreaInput{Name: "Old", AreaType: "building", Description: "d"}, png("a.png"))
	if err != nil {
		t.Fatal(err)
	}
	firstImage := *a.ImagePath

	// no image supplied: keep the existing one
	updated, err := env.svc.UpdateArea(ctx, a.ID, models.AreaInput{Name: "New", AreaType: "building", Description: "d2"}, nil)
	if err != nil {
		t.Fatalf("UpdateArea failed: %v", err)
	}
	got, _ := env.svc.GetArea(ctx, a.ID)
	if got.Name != "New" || got.Description != "d2" {
		t.Errorf("fields not updated: %+v", got)
	}
	if models.StringValue(got.ImagePath) != firstImage || models.StringValue(updated.ImagePath) != firstImage {
		t.Errorf("image not preserved: %v", got.ImagePath)
	}
	if got.CreatedAt.Unix() != a.CreatedAt.Unix() {
		t.Errorf("created_at changed: %v -> %v", a.CreatedAt, got.CreatedAt)
	}

	// new image replaces and the old file is removed
	_, err = env.svc.UpdateArea(ctx, a.ID, models.AreaInput{Name: "New", AreaType: "building"}, png("b.png"))
	if err != nil {
		t.Fatal(err)
	}
	got, _ = env.svc.GetArea(ctx, a.ID)
	if models.StringValue(got.ImagePath) == firstImage {
		t.Error("image path not replaced")
	}
	if n := env.imageCount(t); n != 1 {
		t.Errorf("expected only the new image on disk, found %d", n)
	}

	// explicit removal clears the path and the file
	_, err = env.svc.UpdateArea(ctx, a.ID, models.AreaInput{Name: "New", AreaType: "building", RemoveImage: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, _ = env.svc.GetArea(ctx, a.ID)
	if got.ImagePath != nil {
		t.Errorf("ImagePath = %v, want nil", *got.ImagePath)
	}
	if n := env.imageCount(t); n != 0 {
		t.Errorf("%d images left after removal", n)
	}
}

func TestUpdateMissingArea(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.UpdateArea(context.Background(), "ar_missing", models.AreaInput{Name: "X", AreaType: "building"}, png("x.png"))
	if !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if n := env.imageCount(t); n != 0 {
		t.Errorf("%d orphan images", n)
	}
}

func TestUpdateRejectsSelfParentAndDemotion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.building(t, "B")
	other := env.building(t, "Other")
	if _, err := env.svc.CreateArea(ctx, models.AreaInput{Name: "1F", AreaType: "floor", InsideOf: b.ID}, nil); err != nil {
		t.Fatal(err)
	}

	_, err := env.svc.UpdateArea(ctx, b.ID, models.AreaInput{Name: "B", AreaType: "floor", InsideOf: b.ID}, nil)
	if !errors.IsValidation(err) {
		t.Errorf("self parent: expected validation error, got %v", err)
	}
	_, err = env.svc.UpdateArea(ctx, b.ID, models.AreaInput{Name: "B", AreaType: "floor", InsideOf: other.ID}, nil)
	if !errors.IsValidation(err) {
		t.Errorf("building with floors demoted: expected validation error, got %v", err)
	}
	// a building without floors may become a floor of another building
	if _, err := env.svc.UpdateArea(ctx, other.ID, models.AreaInput{Name: "Other", AreaType: "floor", InsideOf: b.ID}, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListAreasByParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.building(t, "B")

	children, err := env.svc.ListAreasByParent(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 0 {
		t.Errorf("expected empty list, got %d", len(children))
	}

	for _, name := range []string{"1F", "2F"} {
		if _, err := env.svc.CreateArea(ctx, models.AreaInput{Name: name, AreaType: "floor", InsideOf: b.ID}, nil); err != nil {
			t.Fatal(err)
		}
	}
	children, err = env.svc.ListAreasByParent(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 2 {
		t.Errorf("got %d children, want 2", len(children))
	}

	if _, err := env.svc.ListAreasByParent(ctx, "ar_missing"); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := env.svc.ListAreas(ctx, models.AreaFilters{AreaType: "room"}); !errors.IsValidation(err) {
		t.Errorf("expected validation error for bad filter, got %v", err)
	}
}

func TestDeleteArea(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.svc.DeleteArea(ctx, "ar_missing"); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	b, err := env.svc.CreateArea(ctx, models.AreaInput{Name: "B", AreaType: "building"}, png("b.png"))
	if err != nil {
		t.Fatal(err)
	}
	f, err := env.svc.CreateArea(ctx, models.AreaInput{Name: "1F", AreaType: "floor", InsideOf: b.ID}, png("f.png"))
	if err != nil {
		t.Fatal(err)
	}
	testutil.CreateTestSensor(t, env.db, "sn_1", "Desk", f.ID, models.SensorStatusActive)

	if err := env.svc.DeleteArea(ctx, b.ID); err != nil {
		t.Fatalf("DeleteArea failed: %v", err)
	}
	if _, err := env.svc.GetArea(ctx, f.ID); !errors.IsNotFound(err) {
		t.Errorf("floor should be gone, got %v", err)
	}
	if testutil.CountRows(t, env.db, "sensors") != 0 {
		t.Error("sensor should be gone")
	}
	if n := env.imageCount(t); n != 0 {
		t.Errorf("%d images left after delete", n)
	}
}

func TestSensorOperations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stats, err := env.svc.GetSensorStatistics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if *stats != (models.SensorStatistics{}) {
		t.Errorf("expected zero statistics, got %+v", stats)
	}

	b := env.building(t, "B")
	testutil.CreateTestSensor(t, env.db, "sn_1", "Desk", b.ID, models.SensorStatusInactive)

	statusTests := []struct {
		status  string
		wantErr func(error) bool
	}{
		{"", errors.IsValidation},
		{"broken", errors.IsValidation},
		{"active", nil},
		{"error", nil},
	}
	for _, tt := range statusTests {
		err := env.svc.UpdateSensorStatus(ctx, "sn_1", tt.status)
		if tt.wantErr == nil && err != nil {
			t.Errorf("status %q: unexpected error %v", tt.status, err)
		}
		if tt.wantErr != nil && !tt.wantErr(err) {
			t.Errorf("status %q: unexpected error %v", tt.status, err)
		}
	}
	if err := env.svc.UpdateSensorStatus(ctx, "sn_missing", "active"); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	x, y := 12.0, 88.5
	if err := env.svc.UpdateSensorCoordinates(ctx, "sn_1", &models.CoordinatesInput{X: &x}); !errors.IsValidation(err) {
		t.Errorf("expected validation error for missing y, got %v", err)
	}
	if err := env.svc.UpdateSensorCoordinates(ctx, "sn_1", nil); !errors.IsValidation(err) {
		t.Errorf("expected validation error for missing coordinates, got %v", err)
	}
	if err := env.svc.UpdateSensorCoordinates(ctx, "sn_1", &models.CoordinatesInput{X: &x, Y: &y}); err != nil {
		t.Fatal(err)
	}

	views, err := env.svc.ListSensorsWithAreas(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 || views[0].Status != models.SensorStatusError || views[0].Coordinates == nil || views[0].Coordinates.Y != 88.5 {
		t.Errorf("unexpected sensors: %+v", views)
	}

	stats, err = env.svc.GetSensorStatistics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 1 || stats.Error != 1 || stats.Active+stats.Inactive+stats.Error != stats.Total {
		t.Errorf("unexpected statistics: %+v", stats)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := &models.User{Username: "admin", UserType: models.UserTypeAdmin, Email: "admin@campus.example"}
	if err := env.svc.CreateUser(ctx, admin, "admin123"); err != nil {
		t.Fatal(err)
	}

	user, err := env.svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.UserType != models.UserTypeAdmin || user.Username != "admin" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Error("credential must be stripped from login result")
	}

	_, wrongPw := env.svc.Login(ctx, "admin", "wrong")
	_, unknown := env.svc.Login(ctx, "nobody", "admin123")
	for _, err := range []error{wrongPw, unknown} {
		apiErr, ok := errors.As(err)
		if !ok || !errors.IsAuth(err) {
			t.Fatalf("expected auth error, got %v", err)
		}
		if apiErr.Message != errors.MsgInvalidCredentials {
			t.Errorf("message leaks detail: %q", apiErr.Message)
		}
	}

	if _, err := env.svc.Login(ctx, "", "x"); !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := env.svc.Login(ctx, "admin", ""); !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	got, err := env.svc.GetUser(ctx, admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != "admin@campus.example" || got.PasswordHash != "" {
		t.Errorf("unexpected user projection: %+v", got)
	}
	if _, err := env.svc.GetUser(ctx, "usr_missing"); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.svc.CreateUser(ctx, &models.User{Username: "x", UserType: "root"}, "password1"); !errors.IsValidation(err) {
		t.Errorf("expected validation error for bad user type, got %v", err)
	}
	if err := env.svc.CreateUser(ctx, &models.User{Username: "x", UserType: models.UserTypeUser}, "short"); !errors.IsValidation(err) {
		t.Errorf("expected validation error for short password, got %v", err)
	}
}

func TestCreateSensor(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	b := e.building(t, "Hall")

	tests := []struct {
		name    string
		sensor  models.Sensor
		wantErr func(error) bool
	}{
		{"defaults to inactive", models.Sensor{Name: "Door", AreaID: b.ID, MaxCapacity: 10}, nil},
		{"explicit status", models.Sensor{Name: "Window", AreaID: b.ID, Status: models.SensorStatusActive, MaxCapacity: 10}, nil},
		{"unknown status", models.Sensor{Name: "Roof", AreaID: b.ID, Status: "broken", MaxCapacity: 10}, errors.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sensor := tt.sensor
			err := e.svc.CreateSensor(ctx, &sensor)
			if tt.wantErr != nil {
				if !tt.wantErr(err) {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if sensor.ID == "" || sensor.Status == "" || sensor.CreatedAt.IsZero() {
				t.Errorf("defaults not applied: %+v", sensor)
			}
		})
	}

	stats, err := e.svc.GetSensorStatistics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 2 || stats.Active != 1 || stats.Inactive != 1 {
		t.Errorf("statistics = %+v", stats)
	}
}
