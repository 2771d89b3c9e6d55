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

type PatientHandler struct {
	service service.PatientService
}

func NewPatientHandler(service service.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Create handles POST /v1/patients
// @Summary Create patient
// @Description Register a patient profile.
// @Tags patients
// @Accept json
// @Produce json
// @Param request body domain.CreatePatientRequest true "Patient data"
// @Success 201 {object} domain.PatientResponse
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients [post]
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	patient, err := h.service.Create(r.Context(), &req)
	if err != nil {
		problem.InternalError("Failed to create patient").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(patient.ToResponse())
}

// GetByID handles GET /v1/patients/{patientId}
// @Summary Get patient
// @Tags patients
// @Produce json
// @Param patientId path string true "Patient UUID" format(uuid)
// @Success 200 {object} domain.PatientResponse
// @Failure 400 {object} problem.Problem "Invalid patient ID"
// @Failure 404 {object} problem.Problem "Patient not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId} [get]
func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}

	patient, err := h.service.GetByID(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Patient not found").Write(w)
			return
		}
		problem.InternalError("Failed to fetch patient").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patient.ToResponse())
}
