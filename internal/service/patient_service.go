package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/repository"
)

type PatientService interface {
	Create(ctx context.Context, req *domain.CreatePatientRequest) (*domain.Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
}

type patientService struct {
	repo repository.PatientRepository
}

func NewPatientService(repo repository.PatientRepository) PatientService {
	return &patientService{repo: repo}
}

func (s *patientService) Create(ctx context.Context, req *domain.CreatePatientRequest) (*domain.Patient, error) {
	patient := &domain.Patient{
		ID:       uuid.New(),
		Name:     req.Name,
		Timezone: req.Timezone,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

func (s *patientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	return s.repo.GetByID(ctx, id)
}
