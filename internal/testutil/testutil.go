package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/models"
)

// SetupTestDB creates a fresh SQLite database with the full schema.
// The database lives in t.TempDir and is closed on cleanup.
func SetupTestDB(t *testing.T) database.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "smartrooms_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// CreateTestArea inserts an area row directly and returns it
func CreateTestArea(t *testing.T, db database.DB, id, name string, areaType models.AreaType, insideOf string) *models.Area {
	t.Helper()

	now := time.Now().UTC()
	area := &models.Area{
		ID:        id,
		Name:      name,
		AreaType:  areaType,
		InsideOf:  models.StringPtr(insideOf),
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.GetDB().NamedExec(`
		INSERT INTO areas (id, name, area_type, description, image_path, inside_of, created_at, updated_at)
		VALUES (:id, :name, :area_type, :description, :image_path, :inside_of, :created_at, :updated_at)
	`, area)
	if err != nil {
		t.Fatalf("Failed to create test area: %v", err)
	}
	return area
}

// CreateTestSensor inserts a sensor row directly and returns it
func CreateTestSensor(t *testing.T, db database.DB, id, name, areaID string, status models.SensorStatus) *models.Sensor {
	t.Helper()

	now := time.Now().UTC()
	sensor := &models.Sensor{
		ID:          id,
		Name:        name,
		AreaID:      areaID,
		Status:      status,
		MaxCapacity: 30,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := db.GetDB().NamedExec(`
		INSERT INTO sensors (id, name, area_id, status, coordinates, count, max_capacity, created_at, updated_at)
		VALUES (:id, :name, :area_id, :status, :coordinates, :count, :max_capacity, :created_at, :updated_at)
	`, sensor)
	if err != nil {
		t.Fatalf("Failed to create test sensor: %v", err)
	}
	return sensor
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, db database.DB, table string) int {
	t.Helper()

	var n int
	if err := db.GetDB().Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// PNG is a minimal valid 1x1 PNG image
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}
