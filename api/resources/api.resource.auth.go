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

// AuthHandlers encapsulates login and user lookup
type AuthHandlers struct {
	campus campusservice.AuthService
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

// @Summary Log in
// @Description Check a username and password against the users table
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} failure
// @Failure 401 {object} failure
// @Failure 429 {object} failure
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var body models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithFailure(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	user, err := h.campus.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		respondWithFailure(w, errors.FromError(err, "Internal server error").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse{Success: true, Message: "Login successful", User: user})
}

// @Summary Get a user
// @Description Public fields of a user, used to refresh a stored session
// @Tags auth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} userResponse
// @Failure 404 {object} failure
// @Router /auth/user/{id} [get]
func (h *AuthHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	user, err := h.campus.GetUser(r.Context(), id)
	if err != nil {
		respondWithFailure(w, errors.FromError(err, "Internal server error").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}
