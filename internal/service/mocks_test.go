package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
)

// MockPatientRepository is a mock implementation of PatientRepository
type MockPatientRepository struct {
	patients map[uuid.UUID]*domain.Patient
	err      error
}

func NewMockPatientRepository() *MockPatientRepository {
	return &MockPatientRepository{
		patients: make(map[uuid.UUID]*domain.Patient),
	}
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	if m.err != nil {
		return m.err
	}
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	m.patients[patient.ID] = patient
	return nil
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	if m.err != nil {
		return nil, m.err
	}
	patient, ok := m.patients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return patient, nil
}

func (m *MockPatientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.patients[id]
	return ok, nil
}

// MockMedicationRepository is a mock implementation of MedicationRepository
type MockMedicationRepository struct {
	medications map[uuid.UUID]*domain.Medication
	nextCreated time.Time
	err         error
}

func NewMockMedicationRepository() *MockMedicationRepository {
	return &MockMedicationRepository{
		medications: make(map[uuid.UUID]*domain.Medication),
		nextCreated: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// add stores a medication with a monotonically increasing creation time so
// ListAll ordering is deterministic in tests.
func (m *MockMedicationRepository) add(med *domain.Medication) *domain.Medication {
	if med.ID == uuid.Nil {
		med.ID = uuid.New()
	}
	med.CreatedAt = m.nextCreated
	m.nextCreated = m.nextCreated.Add(time.Minute)
	m.medications[med.ID] = med
	return med
}

func (m *MockMedicationRepository) Create(ctx context.Context, medication *domain.Medication) error {
	if m.err != nil {
		return m.err
	}
	m.add(medication)
	return nil
}

func (m *MockMedicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Medication, error) {
	if m.err != nil {
		return nil, m.err
	}
	medication, ok := m.medications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return medication, nil
}

func (m *MockMedicationRepository) List(ctx context.Context, patientID uuid.UUID, filter domain.MedicationFilter) ([]domain.Medication, error) {
	if m.err != nil {
		return nil, m.err
	}
	all, _ := m.ListAll(ctx, patientID)
	// Newest first, like the real repository
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if filter.Category == nil {
		return all, nil
	}
	var filtered []domain.Medication
	for _, med := range all {
		if med.Category == *filter.Category {
			filtered = append(filtered, med)
		}
	}
	return filtered, nil
}

func (m *MockMedicationRepository) ListAll(ctx context.Context, patientID uuid.UUID) ([]domain.Medication, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Medication
	for _, med := range m.medications {
		if med.PatientID == patientID {
			out = append(out, *med)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MockMedicationRepository) Update(ctx context.Context, medication *domain.Medication) error {
	if m.err != nil {
		return m.err
	}
	m.medications[medication.ID] = medication
	return nil
}

func (m *MockMedicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.medications[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.medications, id)
	return nil
}

func (m *MockMedicationRepository) ExistsByName(ctx context.Context, patientID uuid.UUID, name string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, med := range m.medications {
		if med.PatientID == patientID && strings.EqualFold(med.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// MockPreferenceRepository is a mock implementation of PreferenceRepository
type MockPreferenceRepository struct {
	prefs map[uuid.UUID]*domain.LifestylePreferences
	err   error
}

func NewMockPreferenceRepository() *MockPreferenceRepository {
	return &MockPreferenceRepository{
		prefs: make(map[uuid.UUID]*domain.LifestylePreferences),
	}
}

func (m *MockPreferenceRepository) GetByPatient(ctx context.Context, patientID uuid.UUID) (*domain.LifestylePreferences, error) {
	if m.err != nil {
		return nil, m.err
	}
	prefs, ok := m.prefs[patientID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return prefs, nil
}

func (m *MockPreferenceRepository) Upsert(ctx context.Context, prefs *domain.LifestylePreferences) error {
	if m.err != nil {
		return m.err
	}
	if prefs.ID == uuid.Nil {
		prefs.ID = uuid.New()
	}
	m.prefs[prefs.PatientID] = prefs
	return nil
}
