package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
)

// MockPatientService is a mock implementation of PatientService
type MockPatientService struct {
	createFunc func(ctx context.Context, req *domain.CreatePatientRequest) (*domain.Patient, error)
	getFunc    func(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
}

func (m *MockPatientService) Create(ctx context.Context, req *domain.CreatePatientRequest) (*domain.Patient, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.Patient{
		ID:       uuid.New(),
		Name:     req.Name,
		Timezone: req.Timezone,
	}, nil
}

func (m *MockPatientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &domain.Patient{ID: id, Name: "Test Patient", Timezone: "UTC"}, nil
}

// MockMedicationService is a mock implementation of MedicationService
type MockMedicationService struct {
	createFunc func(ctx context.Context, patientID uuid.UUID, req *domain.CreateMedicationRequest) (*domain.Medication, error)
	getFunc    func(ctx context.Context, patientID, medicationID uuid.UUID) (*domain.Medication, error)
	listFunc   func(ctx context.Context, patientID uuid.UUID, filter domain.MedicationFilter) (*domain.MedicationListResponse, error)
	updateFunc func(ctx context.Context, patientID, medicationID uuid.UUID, req *domain.UpdateMedicationRequest) (*domain.Medication, error)
	deleteFunc func(ctx context.Context, patientID, medicationID uuid.UUID) error
}

func (m *MockMedicationService) Create(ctx context.Context, patientID uuid.UUID, req *domain.CreateMedicationRequest) (*domain.Medication, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, patientID, req)
	}
	return &domain.Medication{
		ID:        uuid.New(),
		PatientID: patientID,
		Name:      req.Name,
		Category:  domain.CategoryChronic,
		Frequency: req.Frequency,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockMedicationService) GetByID(ctx context.Context, patientID, medicationID uuid.UUID) (*domain.Medication, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, patientID, medicationID)
	}
	return &domain.Medication{ID: medicationID, PatientID: patientID, Name: "Metformin"}, nil
}

func (m *MockMedicationService) List(ctx context.Context, patientID uuid.UUID, filter domain.MedicationFilter) (*domain.MedicationListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, patientID, filter)
	}
	return &domain.MedicationListResponse{
		Data:       []domain.MedicationResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockMedicationService) Update(ctx context.Context, patientID, medicationID uuid.UUID, req *domain.UpdateMedicationRequest) (*domain.Medication, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, patientID, medicationID, req)
	}
	return &domain.Medication{ID: medicationID, PatientID: patientID, Name: "Metformin"}, nil
}

func (m *MockMedicationService) Delete(ctx context.Context, patientID, medicationID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, patientID, medicationID)
	}
	return nil
}

// MockPreferenceService is a mock implementation of PreferenceService
type MockPreferenceService struct {
	getFunc    func(ctx context.Context, patientID uuid.UUID) (*domain.LifestylePreferences, error)
	updateFunc func(ctx context.Context, patientID uuid.UUID, req *domain.UpdatePreferencesRequest) (*domain.LifestylePreferences, error)
}

func (m *MockPreferenceService) Get(ctx context.Context, patientID uuid.UUID) (*domain.LifestylePreferences, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, patientID)
	}
	return domain.DefaultLifestylePreferences(patientID), nil
}

func (m *MockPreferenceService) Update(ctx context.Context, patientID uuid.UUID, req *domain.UpdatePreferencesRequest) (*domain.LifestylePreferences, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, patientID, req)
	}
	return &domain.LifestylePreferences{
		ID:        uuid.New(),
		PatientID: patientID,
		WakeTime:  req.WakeTime,
		BedTime:   req.BedTime,
		Breakfast: req.Breakfast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
		Timezone:  req.Timezone,
	}, nil
}

// MockScheduleService is a mock implementation of ScheduleService
type MockScheduleService struct {
	generateFunc func(ctx context.Context, patientID uuid.UUID) ([]domain.OptimizedSchedule, bool, error)
	calendarFunc func(ctx context.Context, patientID uuid.UUID, start time.Time, days int) (*domain.MedicationCalendar, error)
}

func (m *MockScheduleService) Generate(ctx context.Context, patientID uuid.UUID) ([]domain.OptimizedSchedule, bool, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, patientID)
	}
	return []domain.OptimizedSchedule{}, true, nil
}

func (m *MockScheduleService) Calendar(ctx context.Context, patientID uuid.UUID, start time.Time, days int) (*domain.MedicationCalendar, error) {
	if m.calendarFunc != nil {
		return m.calendarFunc(ctx, patientID, start, days)
	}
	return &domain.MedicationCalendar{Days: []domain.DaySchedule{}}, nil
}
