package service

import "github.com/pillpal/med-scheduler/internal/domain"

// SchedulingPolicy collects every default the schedule engine would otherwise
// hard-code: the fallback time ladder, reminder behavior, conflict windows and
// the variable-dosing placeholder bounds. Callers inject a policy so none of
// these clinical-adjacent assumptions live inside the algorithm itself.
type SchedulingPolicy struct {
	// Fallback dose times used when neither explicit times nor meal
	// alignment apply, indexed by dose position. Doses beyond the ladder
	// reuse the first entry.
	DefaultTimeLadder []string

	// Two doses of different medications closer than this are a timing overlap.
	OverlapWindowMinutes int
	// How far the resolver pushes a colliding dose.
	ResolutionShiftMinutes int
	// Number of detect-resolve passes. 1 is the documented single-pass
	// default; values up to MaxResolutionPassLimit opt into the bounded
	// fixed-point variant.
	MaxResolutionPasses int

	// As-needed medications get one reminder-only entry at this time.
	AsNeededTime           string
	AsNeededRepeatCount    int
	AsNeededRepeatInterval int

	// Reminder defaults for fixed-dose entries.
	FirstDoseAdvanceMinutes int
	LaterDoseAdvanceMinutes int
	ReminderRepeatCount     int
	ReminderRepeatInterval  int

	// Variable-dosing placeholder policy. Documented placeholder, not a
	// clinical rule; override per deployment.
	VariableDoseCap     int
	VariableDoseMin     float64
	VariableDoseMax     float64
	VariableDoseUnit    string
	VariableDoseFactors []string

	// Adherence scoring.
	AlignmentWindowMinutes int
	BestTimeScore          int
	WorstTimeScore         int
	WorkWindowScore        int
	NeutralScore           int
	ConflictPenalty        int

	// Calendar projection window.
	CalendarStartHour   int
	CalendarEndHour     int
	DefaultCalendarDays int
}

// MaxResolutionPassLimit bounds the opt-in fixed-point resolution loop.
const MaxResolutionPassLimit = 3

// DefaultPolicy returns the stock scheduling policy.
func DefaultPolicy() SchedulingPolicy {
	return SchedulingPolicy{
		DefaultTimeLadder: []string{"08:00", "12:00", "18:00", "22:00"},

		OverlapWindowMinutes:   30,
		ResolutionShiftMinutes: 30,
		MaxResolutionPasses:    1,

		AsNeededTime:           "09:00",
		AsNeededRepeatCount:    3,
		AsNeededRepeatInterval: 60,

		FirstDoseAdvanceMinutes: 30,
		LaterDoseAdvanceMinutes: 15,
		ReminderRepeatCount:     2,
		ReminderRepeatInterval:  30,

		VariableDoseCap:  4,
		VariableDoseMin:  1,
		VariableDoseMax:  50,
		VariableDoseUnit: "units",
		VariableDoseFactors: []string{
			"blood glucose",
			"carbohydrate intake",
			"physical activity",
		},

		AlignmentWindowMinutes: 60,
		BestTimeScore:          100,
		WorstTimeScore:         50,
		WorkWindowScore:        70,
		NeutralScore:           85,
		ConflictPenalty:        10,

		CalendarStartHour:   6,
		CalendarEndHour:     22,
		DefaultCalendarDays: 7,
	}
}

// normalized clamps policy values into safe ranges so a misconfigured policy
// degrades instead of looping or panicking.
func (p SchedulingPolicy) normalized() SchedulingPolicy {
	def := DefaultPolicy()
	if len(p.DefaultTimeLadder) == 0 {
		p.DefaultTimeLadder = def.DefaultTimeLadder
	}
	if p.OverlapWindowMinutes <= 0 {
		p.OverlapWindowMinutes = def.OverlapWindowMinutes
	}
	if p.ResolutionShiftMinutes <= 0 {
		p.ResolutionShiftMinutes = def.ResolutionShiftMinutes
	}
	if p.MaxResolutionPasses <= 0 {
		p.MaxResolutionPasses = 1
	}
	if p.MaxResolutionPasses > MaxResolutionPassLimit {
		p.MaxResolutionPasses = MaxResolutionPassLimit
	}
	if p.AsNeededTime == "" {
		p.AsNeededTime = def.AsNeededTime
	}
	if p.VariableDoseCap <= 0 {
		p.VariableDoseCap = def.VariableDoseCap
	}
	if p.DefaultCalendarDays <= 0 {
		p.DefaultCalendarDays = def.DefaultCalendarDays
	}
	if p.CalendarEndHour <= p.CalendarStartHour {
		p.CalendarStartHour = def.CalendarStartHour
		p.CalendarEndHour = def.CalendarEndHour
	}
	return p
}

// VariableDosingDefaults builds the placeholder variable-dosing policy.
// Exported so alternative extractors share the same defaults.
func VariableDosingDefaults(p SchedulingPolicy) *domain.VariableDosing {
	return &domain.VariableDosing{
		MinDose:           p.VariableDoseMin,
		MaxDose:           p.VariableDoseMax,
		Unit:              p.VariableDoseUnit,
		AdjustmentFactors: p.VariableDoseFactors,
	}
}
