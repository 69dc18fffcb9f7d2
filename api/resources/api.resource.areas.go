package resources

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/itsatony/smartrooms/internal/campusservice"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// multipart overhead allowed on top of the image itself
const formOverhead = 1 << 20

// AreaHandlers encapsulates the building and floor HTTP handlers
type AreaHandlers struct {
	campus        campusservice.AreaService
	decoder       *schema.Decoder
	maxUploadSize int64
}

type areaCreated struct {
	ID        string  `json:"id"`
	ImagePath *string `json:"image_path"`
	Message   string  `json:"message"`
}

type areaUpdated struct {
	ImagePath *string `json:"image_path"`
	Message   string  `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// @Summary List areas
// @Description List buildings and floors, optionally filtered by parent or type
// @Tags areas
// @Produce json
// @Param inside_of query string false "Parent area ID"
// @Param area_type query string false "building or floor"
// @Success 200 {array} models.Area
// @Failure 400 {object} errors.APIError
// @Router /areas [get]
func (h *AreaHandlers) ListAreas(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.AreaFilters
	if err := h.decoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	areas, err := h.campus.ListAreas(r.Context(), filters)
	if err != nil {
		respondWithError(w, errors.FromError(err, "failed to list areas").WithRequestID(requestID))
		return
	}
	if areas == nil {
		areas = []*models.Area{}
	}

	respondWithJSON(w, http.StatusOK, areas)
}

// @Summary Get an area by ID
// @Tags areas
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} models.Area
// @Failure 404 {object} errors.APIError
// @Router /areas/{id} [get]
func (h *AreaHandlers) GetArea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	area, err := h.campus.GetArea(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.FromError(err, "failed to get area").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, area)
}

// @Summary List the areas inside an area
// @Tags areas
// @Produce json
// @Param id path string true "Parent area ID"
// @Success 200 {array} models.Area
// @Failure 404 {object} errors.APIError
// @Router /areas/{id}/children [get]
func (h *AreaHandlers) ListChildren(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	areas, err := h.campus.ListAreasByParent(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.FromError(err, "failed to list child areas").WithRequestID(requestID))
		return
	}
	if areas == nil {
		areas = []*models.Area{}
	}

	respondWithJSON(w, http.StatusOK, areas)
}

// @Summary Create an area
// @Description Create a building or floor from a multipart form (with optional image) or a JSON body
// @Tags areas
// @Accept multipart/form-data,json
// @Produce json
// @Param name formData string true "Area name"
// @Param area_type formData string true "building or floor"
// @Param description formData string false "Description"
// @Param inside_of formData string false "Parent building ID"
// @Param image formData file false "Floor plan or photo"
// @Success 201 {object} areaCreated
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /areas [post]
func (h *AreaHandlers) CreateArea(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	in, image, err := h.parseAreaRequest(w, r)
	if err != nil {
		respondWithError(w, err.WithRequestID(requestID))
		return
	}

	area, serr := h.campus.CreateArea(r.Context(), in, image)
	if serr != nil {
		respondWithError(w, errors.FromError(serr, "failed to create area").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, areaCreated{
		ID:        area.ID,
		ImagePath: area.ImagePath,
		Message:   "Area created successfully",
	})
}

// @Summary Update an area
// @Description Replace the writable fields of an area. remove_image clears the stored image.
// @Tags areas
// @Accept multipart/form-data,json
// @Produce json
// @Param id path string true "Area ID"
// @Param image formData file false "Replacement image"
// @Param remove_image formData bool false "Clear the image"
// @Success 200 {object} areaUpdated
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /areas/{id} [put]
func (h *AreaHandlers) UpdateArea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	in, image, err := h.parseAreaRequest(w, r)
	if err != nil {
		respondWithError(w, err.WithRequestID(requestID))
		return
	}

	area, serr := h.campus.UpdateArea(r.Context(), id, in, image)
	if serr != nil {
		respondWithError(w, errors.FromError(serr, "failed to update area").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, areaUpdated{
		ImagePath: area.ImagePath,
		Message:   "Area updated successfully",
	})
}

// @Summary Delete an area
// @Description Delete an area together with the areas inside it and their sensors
// @Tags areas
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errors.APIError
// @Router /areas/{id} [delete]
func (h *AreaHandlers) DeleteArea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.campus.DeleteArea(r.Context(), id); err != nil {
		respondWithError(w, errors.FromError(err, "failed to delete area").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Area deleted successfully"})
}

// parseAreaRequest reads the area fields from a multipart form or a JSON body.
// The image is nil when none was uploaded.
func (h *AreaHandlers) parseAreaRequest(w http.ResponseWriter, r *http.Request) (models.AreaInput, *models.ImageUpload, *errors.APIError) {
	var in models.AreaInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, nil, errors.NewValidationError("invalid request body", err)
		}
		return in, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+formOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize + formOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return in, nil, h.tooLarge()
		}
		return in, nil, errors.NewValidationError("invalid multipart form", err)
	}
	if err := h.decoder.Decode(&in, r.MultipartForm.Value); err != nil {
		return in, nil, errors.NewValidationError("invalid form fields", err)
	}

	file, header, err := r.FormFile("image")
	if stderrors.Is(err, http.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		return in, nil, errors.NewValidationError("invalid image upload", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		return in, nil, errors.NewStorageError("failed to read image upload", err)
	}
	if int64(len(data)) > h.maxUploadSize {
		return in, nil, h.tooLarge()
	}
	return in, &models.ImageUpload{Filename: header.Filename, Data: data}, nil
}

func (h *AreaHandlers) tooLarge() *errors.APIError {
	return errors.NewValidationError(fmt.Sprintf("image exceeds maximum size of %d bytes", h.maxUploadSize), nil)
}
