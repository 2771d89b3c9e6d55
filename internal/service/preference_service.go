package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/repository"
)

type PreferenceService interface {
	// Get returns the patient's lifestyle preferences, falling back to the
	// documented defaults when none are stored.
	Get(ctx context.Context, patientID uuid.UUID) (*domain.LifestylePreferences, error)
	Update(ctx context.Context, patientID uuid.UUID, req *domain.UpdatePreferencesRequest) (*domain.LifestylePreferences, error)
}

type preferenceService struct {
	repo        repository.PreferenceRepository
	patientRepo repository.PatientRepository
}

func NewPreferenceService(repo repository.PreferenceRepository, patientRepo repository.PatientRepository) PreferenceService {
	return &preferenceService{
		repo:        repo,
		patientRepo: patientRepo,
	}
}

func (s *preferenceService) Get(ctx context.Context, patientID uuid.UUID) (*domain.LifestylePreferences, error) {
	exists, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	prefs, err := s.repo.GetByPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultLifestylePreferences(patientID), nil
		}
		return nil, err
	}
	return prefs, nil
}

func (s *preferenceService) Update(ctx context.Context, patientID uuid.UUID, req *domain.UpdatePreferencesRequest) (*domain.LifestylePreferences, error) {
	exists, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	prefs := &domain.LifestylePreferences{
		PatientID:              patientID,
		WakeTime:               req.WakeTime,
		BedTime:                req.BedTime,
		Breakfast:              req.Breakfast,
		Lunch:                  req.Lunch,
		Dinner:                 req.Dinner,
		WorkStart:              req.WorkStart,
		WorkEnd:                req.WorkEnd,
		WorkDays:               req.WorkDays,
		PreferredReminderTimes: req.PreferredReminderTimes,
		AvoidTimes:             req.AvoidTimes,
		Timezone:               req.Timezone,
		AdherenceHistory:       req.AdherenceHistory,
	}

	if err := s.repo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
