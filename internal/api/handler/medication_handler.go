package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/api/validation"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/service"
	"github.com/pillpal/med-scheduler/pkg/problem"
)

type MedicationHandler struct {
	service service.MedicationService
}

func NewMedicationHandler(service service.MedicationService) *MedicationHandler {
	return &MedicationHandler{service: service}
}

// Create handles POST /v1/patients/{patientId}/medications
// @Summary Add medication
// @Description Register a medication. Frequency and instructions are free text; the schedule engine interprets them.
// @Tags medications
// @Accept json
// @Produce json
// @Param patientId path string true "Patient UUID" format(uuid)
// @Param request body domain.CreateMedicationRequest true "Medication data"
// @Success 201 {object} domain.MedicationResponse
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "Patient not found"
// @Failure 409 {object} problem.Problem "Medication already registered"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/medications [post]
func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}

	var req domain.CreateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	medication, err := h.service.Create(r.Context(), patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("Patient not found").Write(w)
		case errors.Is(err, domain.ErrDuplicateMedication):
			problem.Conflict("Medication already registered for this patient").Write(w)
		default:
			problem.InternalError("Failed to create medication").Write(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(medication.ToResponse())
}

// List handles GET /v1/patients/{patientId}/medications
// @Summary List medications
// @Tags medications
// @Produce json
// @Param patientId path string true "Patient UUID" format(uuid)
// @Param category query string false "Filter by category" Enums(CRITICAL,CHRONIC,ACUTE,SUPPLEMENT)
// @Param limit query int false "Page size (max 100)"
// @Param cursor query string false "Pagination cursor"
// @Success 200 {object} domain.MedicationListResponse
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "Patient not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/medications [get]
func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}

	filter := domain.MedicationFilter{
		Cursor: r.URL.Query().Get("cursor"),
	}
	if category := r.URL.Query().Get("category"); category != "" {
		c := domain.MedicationCategory(category)
		filter.Category = &c
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			problem.BadRequest("Invalid limit parameter").Write(w)
			return
		}
		filter.Limit = limit
	}

	response, err := h.service.List(r.Context(), patientID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Patient not found").Write(w)
			return
		}
		problem.InternalError("Failed to list medications").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Update handles PUT /v1/patients/{patientId}/medications/{medicationId}
// @Summary Update medication
// @Tags medications
// @Accept json
// @Produce json
// @Param patientId path string true "Patient UUID" format(uuid)
// @Param medicationId path string true "Medication UUID" format(uuid)
// @Param request body domain.UpdateMedicationRequest true "Fields to update"
// @Success 200 {object} domain.MedicationResponse
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "Patient or medication not found"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/medications/{medicationId} [put]
func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}
	medicationID, err := uuid.Parse(chi.URLParam(r, "medicationId"))
	if err != nil {
		problem.BadRequest("Invalid medication ID format").Write(w)
		return
	}

	var req domain.UpdateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	medication, err := h.service.Update(r.Context(), patientID, medicationID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Medication not found").Write(w)
			return
		}
		problem.InternalError("Failed to update medication").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(medication.ToResponse())
}

// Delete handles DELETE /v1/patients/{patientId}/medications/{medicationId}
// @Summary Remove medication
// @Tags medications
// @Param patientId path string true "Patient UUID" format(uuid)
// @Param medicationId path string true "Medication UUID" format(uuid)
// @Success 204 "Medication removed"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "Patient or medication not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/medications/{medicationId} [delete]
func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}
	medicationID, err := uuid.Parse(chi.URLParam(r, "medicationId"))
	if err != nil {
		problem.BadRequest("Invalid medication ID format").Write(w)
		return
	}

	if err := h.service.Delete(r.Context(), patientID, medicationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Medication not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete medication").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
