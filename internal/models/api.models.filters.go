package models

// AreaFilters defines the available filter options for area listings
type AreaFilters struct {
	InsideOf string   `json:"inside_of" schema:"inside_of"`
	AreaType AreaType `json:"area_type" schema:"area_type"`
}

// AreaInput carries the writable fields of an area, decoded from either a
// multipart form or a JSON body.
type AreaInput struct {
	ID          string `json:"id" schema:"id"`
	Name        string `json:"name" schema:"name"`
	AreaType    string `json:"area_type" schema:"area_type"`
	Description string `json:"description" schema:"description"`
	InsideOf    string `json:"inside_of" schema:"inside_of"`
	ImagePath   string `json:"image_path" schema:"image_path"`
	RemoveImage bool   `json:"remove_image" schema:"remove_image"`
}

// ImageUpload is an image file received with an area create or update
type ImageUpload struct {
	Filename string
	Data     []byte
}

type SensorStatusUpdate struct {
	Status string `json:"status"`
}

// CoordinatesInput keeps x and y optional so missing values can be rejected
type CoordinatesInput struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type SensorCoordinatesUpdate struct {
	Coordinates *CoordinatesInput `json:"coordinates"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
