package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository interface {
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*domain.LifestylePreferences, error)
	// Upsert replaces the patient's preferences wholesale.
	Upsert(ctx context.Context, prefs *domain.LifestylePreferences) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByPatient(ctx context.Context, patientID uuid.UUID) (*domain.LifestylePreferences, error) {
	var prefs domain.LifestylePreferences
	err := r.db.WithContext(ctx).First(&prefs, "patient_id = ?", patientID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, prefs *domain.LifestylePreferences) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "patient_id"}},
			UpdateAll: true,
		}).
		Create(prefs).Error
}
