package domain

import "github.com/google/uuid"

// ConflictType classifies a detected scheduling issue.
type ConflictType string

const (
	ConflictTimingOverlap ConflictType = "timing_overlap"
	ConflictInteraction   ConflictType = "interaction"
	ConflictMealTiming    ConflictType = "meal_conflict"
	ConflictDoseSpacing   ConflictType = "dose_spacing"
	ConflictAdherenceRisk ConflictType = "adherence_risk"
)

// ConflictSeverity ranks how serious a conflict is.
type ConflictSeverity string

const (
	SeverityLow      ConflictSeverity = "low"
	SeverityMedium   ConflictSeverity = "medium"
	SeverityHigh     ConflictSeverity = "high"
	SeverityCritical ConflictSeverity = "critical"
)

// ScheduleConflict is a detected issue between two or more medications.
// Conflicts are pure data: detection never mutates schedules, and resolvers
// only accumulate conflicts onto the owning OptimizedSchedule, never delete
// them.
type ScheduleConflict struct {
	Type                ConflictType     `json:"type"`
	Severity            ConflictSeverity `json:"severity"`
	Description         string           `json:"description"`
	AffectedMedications []uuid.UUID      `json:"affected_medications"`
	Recommendations     []string         `json:"recommendations"`
	// Suggested replacement time (HH:MM) for one side of a timing overlap
	AlternativeTiming string `json:"alternative_timing,omitempty"`
}
