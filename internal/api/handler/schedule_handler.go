package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/service"
	"github.com/pillpal/med-scheduler/pkg/problem"
)

type ScheduleHandler struct {
	service service.ScheduleService
}

func NewScheduleHandler(service service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Generate handles POST /v1/patients/{patientId}/schedule/generate
// @Summary Generate optimized schedules
// @Description Runs the schedule engine over the patient's full medication list: requirement parsing, dose-time assignment, conflict detection and resolution, and adherence scoring. interaction_data_available is false when the drug-interaction lookup failed and the run proceeded without it.
// @Tags schedule
// @Produce json
// @Param patientId path string true "Patient UUID" format(uuid)
// @Success 200 {object} domain.ScheduleResponse
// @Failure 400 {object} problem.Problem "Invalid patient ID"
// @Failure 404 {object} problem.Problem "Patient not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/schedule/generate [post]
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}

	schedules, interactionData, err := h.service.Generate(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Patient not found").Write(w)
			return
		}
		problem.InternalError("Failed to generate schedules").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.ScheduleResponse{
		Schedules:                schedules,
		InteractionDataAvailable: interactionData,
	})
}

// Calendar handles GET /v1/patients/{patientId}/schedule/calendar
// @Summary Project schedules onto a calendar
// @Description Builds an hourly calendar of dose slots over the requested day range, starting today by default.
// @Tags schedule
// @Produce json
// @Param patientId path string true "Patient UUID" format(uuid)
// @Param days query int false "Number of days (default 7)"
// @Param start query string false "Start date, YYYY-MM-DD (default today)"
// @Success 200 {object} domain.MedicationCalendar
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "Patient not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/schedule/calendar [get]
func (h *ScheduleHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		problem.BadRequest("Invalid patient ID format").Write(w)
		return
	}

	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil || days < 0 {
			problem.BadRequest("Invalid days parameter").Write(w)
			return
		}
	}

	start := time.Now()
	if startStr := r.URL.Query().Get("start"); startStr != "" {
		start, err = time.Parse(domain.CalendarDateFormat, startStr)
		if err != nil {
			problem.BadRequest("Invalid start date, expected YYYY-MM-DD").Write(w)
			return
		}
	}

	calendar, err := h.service.Calendar(r.Context(), patientID, start, days)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Patient not found").Write(w)
			return
		}
		problem.InternalError("Failed to build calendar").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calendar)
}
