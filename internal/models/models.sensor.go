// FilePath: internal/models/models.sensor.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type SensorStatus string

const (
	SensorStatusActive   SensorStatus = "active"
	SensorStatusInactive SensorStatus = "inactive"
	SensorStatusError    SensorStatus = "error"
)

// Valid reports whether s is one of the known sensor states
func (s SensorStatus) Valid() bool {
	switch s {
	case SensorStatusActive, SensorStatusInactive, SensorStatusError:
		return true
	}
	return false
}

// Coordinates places a sensor on its floor plan image, in percent of width and height.
// Stored as a JSON text column.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Value implements the driver.Valuer interface
func (c Coordinates) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (c *Coordinates) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into Coordinates", value)
	}
}

type Sensor struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	AreaID      string       `json:"area_id" db:"area_id"`
	Status      SensorStatus `json:"status" db:"status"`
	Coordinates *Coordinates `json:"coordinates" db:"coordinates"`
	Count       int          `json:"count" db:"count"`
	MaxCapacity int          `json:"max_capacity" db:"max_capacity"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// SensorView is a sensor joined with the area it sits in and that area's building.
type SensorView struct {
	Sensor
	AreaName     *string   `json:"area_name" db:"area_name"`
	AreaType     *AreaType `json:"area_type" db:"area_type"`
	BuildingName *string   `json:"building_name" db:"building_name"`
}

// SensorStatistics holds sensor counts per status.
// Active + Inactive + Error always equals Total.
type SensorStatistics struct {
	Total    int `json:"total" db:"total"`
	Active   int `json:"active" db:"active"`
	Inactive int `json:"inactive" db:"inactive"`
	Error    int `json:"error" db:"error"`
}
