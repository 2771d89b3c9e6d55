package domain

import (
	"time"

	"github.com/google/uuid"
)

// MedicationCategory classifies a medication for scheduling priority.
// @Description Category of medication: CRITICAL doses are never downgraded below high priority.
type MedicationCategory string

const (
	// CategoryCritical marks medications whose doses must always be high priority
	CategoryCritical MedicationCategory = "CRITICAL"
	// CategoryChronic is a long-term maintenance medication
	CategoryChronic MedicationCategory = "CHRONIC"
	// CategoryAcute is a short-course medication
	CategoryAcute MedicationCategory = "ACUTE"
	// CategorySupplement is a vitamin or supplement
	CategorySupplement MedicationCategory = "SUPPLEMENT"
)

type Medication struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID          `gorm:"type:uuid;not null;index:idx_medications_patient_created" json:"patient_id"`
	Name            string             `gorm:"type:varchar(255);not null" json:"name"`
	Category        MedicationCategory `gorm:"type:varchar(20);not null;default:'CHRONIC'" json:"category"`
	Dosage          float64            `gorm:"not null;default:1" json:"dosage"`
	Unit            string             `gorm:"type:varchar(32);not null;default:'tablet'" json:"unit"`
	Frequency       string             `gorm:"type:varchar(255);not null" json:"frequency"`
	Instructions    string             `gorm:"type:text" json:"instructions"`
	Quantity        int                `gorm:"not null;default:0" json:"quantity"`
	RefillThreshold int                `gorm:"not null;default:0" json:"refill_threshold"`
	CreatedAt       time.Time          `gorm:"autoCreateTime;index:idx_medications_patient_created,sort:desc" json:"created_at"`

	// Associations
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Medication) TableName() string {
	return "medications"
}

// CreateMedicationRequest is the request body for adding a medication.
// @Description Request payload for registering a medication. Frequency and
// @Description instructions are free text and interpreted by the schedule engine.
type CreateMedicationRequest struct {
	// Medication name as printed on the label
	Name string `json:"name" validate:"required,max=255" example:"Metformin"`
	// Scheduling category
	Category MedicationCategory `json:"category" validate:"omitempty,oneof=CRITICAL CHRONIC ACUTE SUPPLEMENT" example:"CHRONIC" enums:"CRITICAL,CHRONIC,ACUTE,SUPPLEMENT"`
	// Amount per dose
	Dosage float64 `json:"dosage" validate:"omitempty,gt=0" example:"500"`
	// Dose unit (mg, tablet, units, ...)
	Unit string `json:"unit" validate:"omitempty,max=32" example:"mg"`
	// Dosing frequency, free text ("Twice daily", "Every 8 hours", "As needed")
	Frequency string `json:"frequency" validate:"required,max=255" example:"Twice daily"`
	// Free-text instructions ("Take with food", "Avoid 22:00")
	Instructions string `json:"instructions" validate:"omitempty,max=2000" example:"Take with food"`
	// Units currently in stock
	Quantity int `json:"quantity" validate:"omitempty,min=0" example:"60"`
	// Stock level that should trigger a refill
	RefillThreshold int `json:"refill_threshold" validate:"omitempty,min=0" example:"10"`
}

// UpdateMedicationRequest is the request body for updating a medication.
// Only supplied fields change.
type UpdateMedicationRequest struct {
	Name            *string             `json:"name,omitempty" validate:"omitempty,max=255"`
	Category        *MedicationCategory `json:"category,omitempty" validate:"omitempty,oneof=CRITICAL CHRONIC ACUTE SUPPLEMENT"`
	Dosage          *float64            `json:"dosage,omitempty" validate:"omitempty,gt=0"`
	Unit            *string             `json:"unit,omitempty" validate:"omitempty,max=32"`
	Frequency       *string             `json:"frequency,omitempty" validate:"omitempty,max=255"`
	Instructions    *string             `json:"instructions,omitempty" validate:"omitempty,max=2000"`
	Quantity        *int                `json:"quantity,omitempty" validate:"omitempty,min=0"`
	RefillThreshold *int                `json:"refill_threshold,omitempty" validate:"omitempty,min=0"`
}

// MedicationResponse is the response body for medication endpoints.
type MedicationResponse struct {
	ID              uuid.UUID          `json:"id"`
	PatientID       uuid.UUID          `json:"patient_id"`
	Name            string             `json:"name"`
	Category        MedicationCategory `json:"category"`
	Dosage          float64            `json:"dosage"`
	Unit            string             `json:"unit"`
	Frequency       string             `json:"frequency"`
	Instructions    string             `json:"instructions"`
	Quantity        int                `json:"quantity"`
	RefillThreshold int                `json:"refill_threshold"`
	NeedsRefill     bool               `json:"needs_refill"`
	CreatedAt       time.Time          `json:"created_at"`
}

func (m *Medication) ToResponse() MedicationResponse {
	return MedicationResponse{
		ID:              m.ID,
		PatientID:       m.PatientID,
		Name:            m.Name,
		Category:        m.Category,
		Dosage:          m.Dosage,
		Unit:            m.Unit,
		Frequency:       m.Frequency,
		Instructions:    m.Instructions,
		Quantity:        m.Quantity,
		RefillThreshold: m.RefillThreshold,
		NeedsRefill:     m.RefillThreshold > 0 && m.Quantity <= m.RefillThreshold,
		CreatedAt:       m.CreatedAt,
	}
}

// MedicationListResponse is the response body for listing medications.
type MedicationListResponse struct {
	Data       []MedicationResponse `json:"data"`
	Pagination PaginationResponse   `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// MedicationFilter contains filter parameters for listing medications
type MedicationFilter struct {
	Category *MedicationCategory
	Limit    int
	Cursor   string
}
