package domain

import "github.com/google/uuid"

// SchedulePriority ranks how important it is not to miss a dose.
type SchedulePriority string

const (
	PriorityHigh   SchedulePriority = "high"
	PriorityMedium SchedulePriority = "medium"
	PriorityLow    SchedulePriority = "low"
)

// NotificationChannel is where a dose reminder is delivered.
type NotificationChannel string

const (
	ChannelPush NotificationChannel = "push"
	ChannelSMS  NotificationChannel = "sms"
)

// ReminderSettings configures how a dose reminder fires.
type ReminderSettings struct {
	Enabled        bool                `json:"enabled"`
	AdvanceMinutes int                 `json:"advance_minutes"`
	RepeatCount    int                 `json:"repeat_count"`
	RepeatInterval int                 `json:"repeat_interval"`
	Channel        NotificationChannel `json:"channel"`
	SnoozeEnabled  bool                `json:"snooze_enabled"`
	SnoozeMinutes  int                 `json:"snooze_minutes"`
}

// VariableDose is the per-entry state of a variable-dosing schedule slot.
type VariableDose struct {
	CurrentDose      float64 `json:"current_dose"`
	AdjustmentReason string  `json:"adjustment_reason"`
}

// GeneratedSchedule is one dose-of-a-day for one medication. The Time field
// may shift during conflict resolution, once per overlap the dose is involved
// in; everything else is fixed at build time.
type GeneratedSchedule struct {
	ID               uuid.UUID        `json:"id"`
	MedicationID     uuid.UUID        `json:"medication_id"`
	Time             string           `json:"time"` // HH:MM
	Dosage           float64          `json:"dosage"`
	Unit             string           `json:"unit"`
	MealRelation     MealRelation     `json:"meal_relation"`
	Instructions     string           `json:"instructions"`
	Priority         SchedulePriority `json:"priority"`
	Reminder         ReminderSettings `json:"reminder"`
	IsAsNeeded       bool             `json:"is_as_needed"`
	VariableDose     *VariableDose    `json:"variable_dose,omitempty"`
}

// OptimizedSchedule is the per-medication result of a generation run.
type OptimizedSchedule struct {
	MedicationID uuid.UUID           `json:"medication_id"`
	Medication   *Medication         `json:"medication"`
	Schedules    []GeneratedSchedule `json:"schedules"`
	Conflicts    []ScheduleConflict  `json:"conflicts"`
	// 0-100 heuristic estimate of how likely the patient is to follow this schedule
	AdherenceScore    int      `json:"adherence_score"`
	OptimizationNotes []string `json:"optimization_notes"`
	// Reserved for what-if variants; currently always empty
	AlternativeSchedules [][]GeneratedSchedule `json:"alternative_schedules,omitempty"`
}

// ScheduleResponse wraps a generation run's output.
type ScheduleResponse struct {
	Schedules []OptimizedSchedule `json:"schedules"`
	// False when the interaction lookup failed and the run proceeded without it
	InteractionDataAvailable bool `json:"interaction_data_available"`
}
