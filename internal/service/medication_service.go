package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/repository"
	"github.com/pillpal/med-scheduler/pkg/pagination"
)

type MedicationService interface {
	Create(ctx context.Context, patientID uuid.UUID, req *domain.CreateMedicationRequest) (*domain.Medication, error)
	GetByID(ctx context.Context, patientID, medicationID uuid.UUID) (*domain.Medication, error)
	List(ctx context.Context, patientID uuid.UUID, filter domain.MedicationFilter) (*domain.MedicationListResponse, error)
	Update(ctx context.Context, patientID, medicationID uuid.UUID, req *domain.UpdateMedicationRequest) (*domain.Medication, error)
	Delete(ctx context.Context, patientID, medicationID uuid.UUID) error
}

type medicationService struct {
	repo        repository.MedicationRepository
	patientRepo repository.PatientRepository
}

func NewMedicationService(repo repository.MedicationRepository, patientRepo repository.PatientRepository) MedicationService {
	return &medicationService{
		repo:        repo,
		patientRepo: patientRepo,
	}
}

func (s *medicationService) Create(ctx context.Context, patientID uuid.UUID, req *domain.CreateMedicationRequest) (*domain.Medication, error) {
	exists, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	duplicate, err := s.repo.ExistsByName(ctx, patientID, req.Name)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, domain.ErrDuplicateMedication
	}

	medication := &domain.Medication{
		PatientID:       patientID,
		Name:            req.Name,
		Category:        req.Category,
		Dosage:          req.Dosage,
		Unit:            req.Unit,
		Frequency:       req.Frequency,
		Instructions:    req.Instructions,
		Quantity:        req.Quantity,
		RefillThreshold: req.RefillThreshold,
	}
	if medication.Category == "" {
		medication.Category = domain.CategoryChronic
	}
	if medication.Dosage <= 0 {
		medication.Dosage = 1
	}
	if medication.Unit == "" {
		medication.Unit = "tablet"
	}

	if err := s.repo.Create(ctx, medication); err != nil {
		return nil, err
	}

	return medication, nil
}

func (s *medicationService) GetByID(ctx context.Context, patientID, medicationID uuid.UUID) (*domain.Medication, error) {
	medication, err := s.repo.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if medication.PatientID != patientID {
		return nil, domain.ErrNotFound
	}
	return medication, nil
}

func (s *medicationService) List(ctx context.Context, patientID uuid.UUID, filter domain.MedicationFilter) (*domain.MedicationListResponse, error) {
	exists, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	medications, err := s.repo.List(ctx, patientID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(medications) > limit
	if hasMore {
		medications = medications[:limit]
	}

	response := &domain.MedicationListResponse{
		Data: make([]domain.MedicationResponse, len(medications)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i, medication := range medications {
		response.Data[i] = medication.ToResponse()
	}

	if hasMore && len(medications) > 0 {
		last := medications[len(medications)-1]
		cursor := &pagination.Cursor{
			ID:        last.ID,
			CreatedAt: last.CreatedAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

func (s *medicationService) Update(ctx context.Context, patientID, medicationID uuid.UUID, req *domain.UpdateMedicationRequest) (*domain.Medication, error) {
	medication, err := s.GetByID(ctx, patientID, medicationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		medication.Name = *req.Name
	}
	if req.Category != nil {
		medication.Category = *req.Category
	}
	if req.Dosage != nil {
		medication.Dosage = *req.Dosage
	}
	if req.Unit != nil {
		medication.Unit = *req.Unit
	}
	if req.Frequency != nil {
		medication.Frequency = *req.Frequency
	}
	if req.Instructions != nil {
		medication.Instructions = *req.Instructions
	}
	if req.Quantity != nil {
		medication.Quantity = *req.Quantity
	}
	if req.RefillThreshold != nil {
		medication.RefillThreshold = *req.RefillThreshold
	}

	if err := s.repo.Update(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *medicationService) Delete(ctx context.Context, patientID, medicationID uuid.UUID) error {
	if _, err := s.GetByID(ctx, patientID, medicationID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, medicationID)
}
