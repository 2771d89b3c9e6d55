package domain

import "github.com/google/uuid"

// MealRelation is the required timing of a dose relative to meals.
type MealRelation string

const (
	MealBefore       MealRelation = "before_meal"
	MealWith         MealRelation = "with_meal"
	MealAfter        MealRelation = "after_meal"
	MealEmptyStomach MealRelation = "empty_stomach"
	MealAny          MealRelation = "any"
)

// VariableDosing describes a medication whose per-dose amount is decided at
// administration time (insulin and similar). The engine never computes a
// clinical dose; it only schedules when a dose decision must be made.
type VariableDosing struct {
	MinDose           float64  `json:"min_dose"`
	MaxDose           float64  `json:"max_dose"`
	Unit              string   `json:"unit"`
	AdjustmentFactors []string `json:"adjustment_factors"`
}

// DosingRequirement is the structured interpretation of a medication's
// free-text frequency and instructions. Built once per generation run and
// never mutated afterwards.
type DosingRequirement struct {
	MedicationID     uuid.UUID
	TotalDosesPerDay int
	MealRelation     MealRelation
	MinIntervalHours float64
	MaxIntervalHours float64
	// Explicit clock times found in the instructions, in order of appearance (HH:MM)
	PreferredTimes []string
	// Clock times the instructions say to avoid (HH:MM)
	AvoidTimes []string
	// Instruction fragments worth surfacing verbatim on each dose
	SpecialInstructions []string
	IsAsNeeded          bool
	VariableDosing      *VariableDosing
	// Doses dropped because of the variable-dosing capacity cap
	TruncatedDoses int
}
