// FilePath: internal/models/models.area.go
package models

import "time"

type AreaType string

const (
	AreaTypeBuilding AreaType = "building"
	AreaTypeFloor    AreaType = "floor"
)

// Valid reports whether t is one of the known area types
func (t AreaType) Valid() bool {
	return t == AreaTypeBuilding || t == AreaTypeFloor
}

// Area is a building or a floor. Floors point at their building via InsideOf.
type Area struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	AreaType    AreaType  `json:"area_type" db:"area_type"`
	Description string    `json:"description" db:"description"`
	ImagePath   *string   `json:"image_path" db:"image_path"`
	InsideOf    *string   `json:"inside_of" db:"inside_of"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsBuilding is a shorthand for AreaType == AreaTypeBuilding
func (a *Area) IsBuilding() bool {
	return a.AreaType == AreaTypeBuilding
}

// StringPtr returns nil for the empty string, otherwise a pointer to s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
