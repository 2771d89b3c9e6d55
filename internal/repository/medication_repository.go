package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/pkg/pagination"
	"gorm.io/gorm"
)

type MedicationRepository interface {
	Create(ctx context.Context, medication *domain.Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Medication, error)
	List(ctx context.Context, patientID uuid.UUID, filter domain.MedicationFilter) ([]domain.Medication, error)
	// ListAll returns every medication of a patient, oldest first. Used by
	// the schedule engine, which always works on the full set.
	ListAll(ctx context.Context, patientID uuid.UUID) ([]domain.Medication, error)
	Update(ctx context.Context, medication *domain.Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, patientID uuid.UUID, name string) (bool, error)
}

type medicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, medication *domain.Medication) error {
	return r.db.WithContext(ctx).Create(medication).Error
}

func (r *medicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Medication, error) {
	var medication domain.Medication
	err := r.db.WithContext(ctx).First(&medication, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &medication, nil
}

func (r *medicationRepository) List(ctx context.Context, patientID uuid.UUID, filter domain.MedicationFilter) ([]domain.Medication, error) {
	query := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC")

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: records older than the cursor position,
			// breaking ties on id.
			query = query.Where(
				"(created_at < ?) OR (created_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var medications []domain.Medication
	if err := query.Find(&medications).Error; err != nil {
		return nil, err
	}

	return medications, nil
}

func (r *medicationRepository) ListAll(ctx context.Context, patientID uuid.UUID) ([]domain.Medication, error) {
	var medications []domain.Medication
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *domain.Medication) error {
	return r.db.WithContext(ctx).Save(medication).Error
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Medication{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *medicationRepository) ExistsByName(ctx context.Context, patientID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Medication{}).
		Where("patient_id = ? AND LOWER(name) = LOWER(?)", patientID, name).
		Count(&count).Error
	return count > 0, err
}
