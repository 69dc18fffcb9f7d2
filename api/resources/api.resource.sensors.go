package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/itsatony/smartrooms/internal/campusservice"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ManagementHandlers encapsulates the sensor management HTTP handlers
type ManagementHandlers struct {
	campus campusservice.SensorService
}

type sensorsResponse struct {
	Success bool                 `json:"success"`
	Sensors []*models.SensorView `json:"sensors"`
}

type statisticsResponse struct {
	Success    bool                     `json:"success"`
	Statistics *models.SensorStatistics `json:"statistics"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// @Summary List sensors with their area
// @Description Every sensor joined with its area name, area type and building name
// @Tags management
// @Produce json
// @Success 200 {object} sensorsResponse
// @Router /management/sensors-with-areas [get]
func (h *ManagementHandlers) ListSensorsWithAreas(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	sensors, err := h.campus.ListSensorsWithAreas(r.Context())
	if err != nil {
		respondWithFailure(w, errors.NewDatabaseError("Failed to fetch sensors", err).WithRequestID(requestID))
		return
	}
	if sensors == nil {
		sensors = []*models.SensorView{}
	}

	respondWithJSON(w, http.StatusOK, sensorsResponse{Success: true, Sensors: sensors})
}

// @Summary Update sensor status
// @Tags management
// @Accept json
// @Produce json
// @Param id path string true "Sensor ID"
// @Param body body models.SensorStatusUpdate true "New status"
// @Success 200 {object} successResponse
// @Failure 400 {object} failure
// @Failure 404 {object} failure
// @Router /management/sensor/{id}/status [put]
func (h *ManagementHandlers) UpdateSensorStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var body models.SensorStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithFailure(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.campus.UpdateSensorStatus(r.Context(), id, body.Status); err != nil {
		respondWithFailure(w, errors.FromError(err, "Failed to update sensor status").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, successResponse{Success: true, Message: "Sensor status updated successfully"})
}

// @Summary Update sensor coordinates
// @Tags management
// @Accept json
// @Produce json
// @Param id path string true "Sensor ID"
// @Param body body models.SensorCoordinatesUpdate true "Position on the floor plan"
// @Success 200 {object} successResponse
// @Failure 400 {object} failure
// @Failure 404 {object} failure
// @Router /management/sensor/{id}/coordinates [put]
func (h *ManagementHandlers) UpdateSensorCoordinates(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var body models.SensorCoordinatesUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithFailure(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.campus.UpdateSensorCoordinates(r.Context(), id, body.Coordinates); err != nil {
		respondWithFailure(w, errors.FromError(err, "Failed to update sensor coordinates").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, successResponse{Success: true, Message: "Sensor coordinates updated successfully"})
}

// @Summary Sensor statistics
// @Description Sensor counts by status. active + inactive + error always equals total.
// @Tags management
// @Produce json
// @Success 200 {object} statisticsResponse
// @Router /management/statistics [get]
func (h *ManagementHandlers) GetStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	stats, err := h.campus.GetSensorStatistics(r.Context())
	if err != nil {
		respondWithFailure(w, errors.NewDatabaseError("Failed to fetch sensor statistics", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, statisticsResponse{Success: true, Statistics: stats})
}
