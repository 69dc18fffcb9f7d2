package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/itsatony/smartrooms/internal/config"
	"github.com/itsatony/smartrooms/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			AutoMigrate: true,
			SQLite:      config.SQLiteConfig{Path: filepath.Join(dir, "db", "smartrooms.db")},
		},
		FileStore: config.FileStoreConfig{
			PublicDir:         filepath.Join(dir, "public"),
			MaxFileSize:       1 << 20,
			AllowedExtensions: []string{".png"},
			AllowedMimeTypes:  []string{"image/png"},
		},
		Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}
}

func TestBootstrap(t *testing.T) {
	cfg := testConfig(t)
	app, err := Bootstrap(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer app.Close()

	if app.DB.Dialect() != config.DriverSQLite {
		t.Errorf("dialect = %s", app.DB.Dialect())
	}
	areas, err := app.Campus.ListAreas(context.Background(), models.AreaFilters{})
	if err != nil {
		t.Fatalf("schema not applied: %v", err)
	}
	if len(areas) != 0 {
		t.Errorf("fresh database has %d areas", len(areas))
	}
}

func TestBootstrapUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"
	if _, err := Bootstrap(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestCleanupEventsReachMonitoring(t *testing.T) {
	cfg := testConfig(t)
	app, err := Bootstrap(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	ctx := context.Background()
	area, err := app.Campus.CreateArea(ctx, models.AreaInput{Name: "Annex", AreaType: "building"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Campus.DeleteArea(ctx, area.ID); err != nil {
		t.Fatal(err)
	}
	if got := app.Monitoring.Totals()["area_deletion"]; got != 1 {
		t.Errorf("area_deletion = %d, totals %v", got, app.Monitoring.Totals())
	}
}
