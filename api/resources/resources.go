package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	"github.com/itsatony/smartrooms/internal/campusservice"
	"github.com/itsatony/smartrooms/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// EventMetrics reports recorded domain events; *monitoring.Service satisfies it
type EventMetrics interface {
	EventNames() []string
	GetEventMetrics(eventType string, duration time.Duration) (map[string]int64, error)
	Window() time.Duration
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Areas      *AreaHandlers
	Management *ManagementHandlers
	Auth       *AuthHandlers
	metrics    EventMetrics
}

// NewResources creates a new Resources instance. maxUploadSize bounds the
// image accepted by area create and update. metrics may be nil.
func NewResources(svc *campusservice.CampusService, maxUploadSize int64, metrics EventMetrics) *Resources {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Resources{
		Areas: &AreaHandlers{
			campus:        svc,
			decoder:       decoder,
			maxUploadSize: maxUploadSize,
		},
		Management: &ManagementHandlers{campus: svc},
		Auth:       &AuthHandlers{campus: svc},
		metrics:    metrics,
	}
}

type healthResponse struct {
	Status  string           `json:"status"`
	Version string           `json:"version"`
	Events  map[string]int64 `json:"events,omitempty"`
}

// HealthCheck godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Description Events counts the deletions recorded within the monitoring window
// @Success 200 {object} healthResponse
// @Router /health [get]
func (r *Resources) HealthCheck(w http.ResponseWriter, req *http.Request) {
	resp := healthResponse{Status: "ok", Version: nuts.GetVersion()}
	if r.metrics != nil {
		resp.Events = make(map[string]int64)
		for _, name := range r.metrics.EventNames() {
			m, err := r.metrics.GetEventMetrics(name, r.metrics.Window())
			if err != nil {
				nuts.L.Warnf("[API] Failed to read %s metrics: %v", name, err)
				continue
			}
			resp.Events[name] = m["total"]
		}
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// failure is the error envelope of the management and auth endpoints
type failure struct {
	Success   bool             `json:"success"`
	Error     string           `json:"error"`
	Type      errors.ErrorType `json:"type"`
	RequestID string           `json:"request_id,omitempty"`
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	logError(err)
}

func respondWithFailure(w http.ResponseWriter, err *errors.APIError) {
	respondWithJSON(w, err.Code, failure{
		Success:   false,
		Error:     err.Message,
		Type:      err.Type,
		RequestID: err.RequestID,
	})
	logError(err)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func logError(err *errors.APIError) {
	if err.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[API] %s", err.Error())
		return
	}
	nuts.L.Warnf("[API] %s", err.Error())
}
