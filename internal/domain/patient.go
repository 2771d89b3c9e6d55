package domain

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// CreatePatientRequest is the request body for creating a patient
type CreatePatientRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Timezone string `json:"timezone" validate:"required,timezone"`
}

// PatientResponse is the response body for patient endpoints
type PatientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Patient) ToResponse() PatientResponse {
	return PatientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Timezone:  p.Timezone,
		CreatedAt: p.CreatedAt,
	}
}
