package seed

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"gorm.io/gorm"
)

// Run seeds the database with sample patients, medications, and lifestyle
// preferences. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Patient{}, &domain.Medication{}, &domain.LifestylePreferences{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	patients := []domain.Patient{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Marta Kovar", Timezone: "Europe/Prague"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "James Okafor", Timezone: "America/New_York"},
	}

	for _, patient := range patients {
		if err := db.Where("id = ?", patient.ID).FirstOrCreate(&patient).Error; err != nil {
			return fmt.Errorf("failed to create patient %s: %w", patient.ID, err)
		}
	}

	if err := seedMedications(db, patients[0].ID); err != nil {
		return err
	}
	if err := seedPreferences(db, patients[0].ID); err != nil {
		return err
	}

	log.Println("Seed completed")
	return nil
}

func seedMedications(db *gorm.DB, patientID uuid.UUID) error {
	medications := []domain.Medication{
		{
			ID:           uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
			PatientID:    patientID,
			Name:         "Metformin",
			Category:     domain.CategoryChronic,
			Dosage:       500,
			Unit:         "mg",
			Frequency:    "Twice daily",
			Instructions: "Take with food",
			Quantity:     60,
		},
		{
			ID:           uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"),
			PatientID:    patientID,
			Name:         "Lisinopril",
			Category:     domain.CategoryCritical,
			Dosage:       10,
			Unit:         "mg",
			Frequency:    "Once daily",
			Instructions: "",
			Quantity:     30,
		},
		{
			ID:           uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000003"),
			PatientID:    patientID,
			Name:         "Insulin Glargine",
			Category:     domain.CategoryCritical,
			Dosage:       1,
			Unit:         "units",
			Frequency:    "Once daily",
			Instructions: "Adjust dose based on blood glucose",
			Quantity:     3,
		},
		{
			ID:           uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000004"),
			PatientID:    patientID,
			Name:         "Albuterol Inhaler",
			Category:     domain.CategoryAcute,
			Dosage:       2,
			Unit:         "puffs",
			Frequency:    "As needed",
			Instructions: "Use for shortness of breath",
			Quantity:     1,
		},
	}

	for _, medication := range medications {
		if err := db.Where("id = ?", medication.ID).FirstOrCreate(&medication).Error; err != nil {
			return fmt.Errorf("failed to create medication %s: %w", medication.Name, err)
		}
	}
	return nil
}

func seedPreferences(db *gorm.DB, patientID uuid.UUID) error {
	prefs := domain.LifestylePreferences{
		PatientID: patientID,
		WakeTime:  "06:30",
		BedTime:   "22:30",
		Breakfast: "07:30",
		Lunch:     "12:00",
		Dinner:    "18:30",
		WorkStart: "09:00",
		WorkEnd:   "17:00",
		WorkDays:  []string{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday},
		Timezone:  "Europe/Prague",
		AdherenceHistory: domain.AdherenceHistory{
			BestTimes:          []string{"07:30", "19:00"},
			WorstTimes:         []string{"14:00"},
			MissedDosePatterns: []string{"midday doses missed on workdays"},
		},
	}

	if err := db.Where("patient_id = ?", patientID).FirstOrCreate(&prefs).Error; err != nil {
		return fmt.Errorf("failed to create preferences: %w", err)
	}
	return nil
}
