package client

import "time"

// Area is a building or a floor as returned by the API
type Area struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AreaType    string    `json:"area_type"`
	Description string    `json:"description"`
	ImagePath   *string   `json:"image_path"`
	InsideOf    *string   `json:"inside_of"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AreaInput is the body of CreateArea and UpdateArea
type AreaInput struct {
	ID          string
	Name        string
	AreaType    string
	Description string
	InsideOf    string
	ImagePath   string
	RemoveImage bool
}

// Image is an image file sent with an area
type Image struct {
	Filename string
	Data     []byte
}

type AreaCreated struct {
	ID        string  `json:"id"`
	ImagePath *string `json:"image_path"`
	Message   string  `json:"message"`
}

type AreaUpdated struct {
	ImagePath *string `json:"image_path"`
	Message   string  `json:"message"`
}

type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sensor is a sensor with the names of its area and building
type Sensor struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AreaID       string       `json:"area_id"`
	Status       string       `json:"status"`
	Coordinates  *Coordinates `json:"coordinates"`
	Count        int          `json:"count"`
	MaxCapacity  int          `json:"max_capacity"`
	AreaName     *string      `json:"area_name"`
	AreaType     *string      `json:"area_type"`
	BuildingName *string      `json:"building_name"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type Statistics struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Error    int `json:"error"`
}

// User is the public part of an account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	UserType  string    `json:"user_type"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Health struct {
	Status  string           `json:"status"`
	Version string           `json:"version"`
	Events  map[string]int64 `json:"events,omitempty"`
}
