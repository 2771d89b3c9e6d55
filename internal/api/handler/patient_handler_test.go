package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
)

func TestPatientHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{
			name:           "valid patient",
			body:           `{"name": "Marta Kovar", "timezone": "Europe/Prague"}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			body:           `{invalid}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           `{"timezone": "UTC"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "bogus timezone",
			body:           `{"name": "Marta Kovar", "timezone": "Mars/Olympus"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPatientHandler(&MockPatientService{})

			req := httptest.NewRequest(http.MethodPost, "/v1/patients", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Create() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestPatientHandler_GetByID(t *testing.T) {
	patientID := uuid.New()

	tests := []struct {
		name           string
		patientID      string
		mockService    *MockPatientService
		wantStatusCode int
	}{
		{
			name:           "existing patient",
			patientID:      patientID.String(),
			mockService:    &MockPatientService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid patient ID",
			patientID:      "not-a-uuid",
			mockService:    &MockPatientService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:      "patient not found",
			patientID: uuid.New().String(),
			mockService: &MockPatientService{
				getFunc: func(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPatientHandler(tt.mockService)

			rec, req := newRequest(http.MethodGet, "/v1/patients/"+tt.patientID, tt.patientID, "")
			handler.GetByID(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("GetByID() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
