package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/api/validation"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/service"
	"github.com/pillpal/med-scheduler/pkg/problem"
)

type PreferenceHandler struct {
	service service.PreferenceService
}

func NewPreferenceHandler(service service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// Get handles GET /v1/patients/{patientId}/preferences
// @Summary Get lifestyle preferences
// @Description Returns the patient's routine; defaults are returned when none are stored.
// @Tags preferences
// @Produce json
// @Param patientId path string true "Patient UUID" format(uuid)
// @Success 200 {object} domain.LifestylePreferences
// @Failure 400 {object} problem.Problem "Invalid patient ID"
// @Failure 404 {object} problem.Problem "Patient not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/preferences [get]
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}

	prefs, err := h.service.Get(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Patient not found").Write(w)
			return
		}
		problem.InternalError("Failed to fetch preferences").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prefs)
}

// Update handles PUT /v1/patients/{patientId}/preferences
// @Summary Update lifestyle preferences
// @Description Replaces the patient's routine wholesale.
// @Tags preferences
// @Accept json
// @Produce json
// @Param patientId path string true "Patient UUID" format(uuid)
// @Param request body domain.UpdatePreferencesRequest true "Lifestyle preferences"
// @Success 200 {object} domain.LifestylePreferences
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "Patient not found"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/preferences [put]
func (h *PreferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}

	var req domain.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	prefs, err := h.service.Update(r.Context(), patientID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Patient not found").Write(w)
			return
		}
		problem.InternalError("Failed to update preferences").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prefs)
}
