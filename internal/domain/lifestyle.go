package domain

import (
	"time"

	"github.com/google/uuid"
)

// Weekday names accepted in WorkDays (lowercase).
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// AdherenceHistory summarizes how a patient has historically handled doses.
// Times are HH:MM in the patient's local timezone.
type AdherenceHistory struct {
	// Times of day the patient reliably takes doses
	BestTimes []string `json:"best_times"`
	// Times of day the patient tends to miss doses
	WorstTimes []string `json:"worst_times"`
	// Free-text descriptions of recurring missed-dose patterns
	MissedDosePatterns []string `json:"missed_dose_patterns"`
}

// LifestylePreferences is the patient's daily routine used by the schedule
// engine. One row per patient, replaced wholesale on update.
// All clock fields are HH:MM in the patient's local timezone.
type LifestylePreferences struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"patient_id"`

	WakeTime  string `gorm:"type:varchar(5);not null;default:'07:00'" json:"wake_time"`
	BedTime   string `gorm:"type:varchar(5);not null;default:'23:00'" json:"bed_time"`
	Breakfast string `gorm:"type:varchar(5);not null;default:'08:00'" json:"breakfast"`
	Lunch     string `gorm:"type:varchar(5);not null;default:'12:30'" json:"lunch"`
	Dinner    string `gorm:"type:varchar(5);not null;default:'18:30'" json:"dinner"`

	WorkStart string   `gorm:"type:varchar(5)" json:"work_start,omitempty"`
	WorkEnd   string   `gorm:"type:varchar(5)" json:"work_end,omitempty"`
	WorkDays  []string `gorm:"serializer:json" json:"work_days,omitempty"`

	PreferredReminderTimes []string `gorm:"serializer:json" json:"preferred_reminder_times,omitempty"`
	AvoidTimes             []string `gorm:"serializer:json" json:"avoid_times,omitempty"`

	Timezone string `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`

	AdherenceHistory AdherenceHistory `gorm:"serializer:json" json:"adherence_history"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (LifestylePreferences) TableName() string {
	return "lifestyle_preferences"
}

// HasWorkWindow reports whether a work window is configured.
func (p *LifestylePreferences) HasWorkWindow() bool {
	return p.WorkStart != "" && p.WorkEnd != ""
}

// DefaultLifestylePreferences returns the routine assumed when a patient has
// not configured one. Schedule generation must never fail for lack of
// preferences.
func DefaultLifestylePreferences(patientID uuid.UUID) *LifestylePreferences {
	return &LifestylePreferences{
		PatientID: patientID,
		WakeTime:  "07:00",
		BedTime:   "23:00",
		Breakfast: "08:00",
		Lunch:     "12:30",
		Dinner:    "18:30",
		Timezone:  "UTC",
	}
}

// UpdatePreferencesRequest is the request body for upserting lifestyle preferences.
type UpdatePreferencesRequest struct {
	WakeTime  string `json:"wake_time" validate:"required,clocktime" example:"07:00"`
	BedTime   string `json:"bed_time" validate:"required,clocktime" example:"23:00"`
	Breakfast string `json:"breakfast" validate:"required,clocktime" example:"08:00"`
	Lunch     string `json:"lunch" validate:"required,clocktime" example:"12:30"`
	Dinner    string `json:"dinner" validate:"required,clocktime" example:"18:30"`

	WorkStart string   `json:"work_start,omitempty" validate:"omitempty,clocktime" example:"09:00"`
	WorkEnd   string   `json:"work_end,omitempty" validate:"omitempty,clocktime" example:"17:00"`
	WorkDays  []string `json:"work_days,omitempty" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`

	PreferredReminderTimes []string `json:"preferred_reminder_times,omitempty" validate:"omitempty,dive,clocktime"`
	AvoidTimes             []string `json:"avoid_times,omitempty" validate:"omitempty,dive,clocktime"`

	Timezone string `json:"timezone" validate:"required,timezone" example:"Europe/Prague"`

	AdherenceHistory AdherenceHistory `json:"adherence_history"`
}
