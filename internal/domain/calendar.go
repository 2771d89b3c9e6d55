package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotMedication is one dose due inside a calendar time slot.
type SlotMedication struct {
	MedicationID uuid.UUID        `json:"medication_id"`
	Name         string           `json:"name"`
	Time         string           `json:"time"` // HH:MM, exact dose time inside the slot
	Dosage       float64          `json:"dosage"`
	Unit         string           `json:"unit"`
	Priority     SchedulePriority `json:"priority"`
	IsAsNeeded   bool             `json:"is_as_needed"`
}

// TimeSlot buckets doses by hour. Minutes are ignored for bucketing: two
// doses at 08:05 and 08:50 land in the same slot.
type TimeSlot struct {
	Hour        int              `json:"hour"` // 0-23
	Label       string           `json:"label"` // HH:00
	Medications []SlotMedication `json:"medications"`
	// Meal occurring in this hour, if any (breakfast/lunch/dinner)
	MealTag string `json:"meal_tag,omitempty"`
}

// DailySummary aggregates per-day dose counts.
type DailySummary struct {
	TotalDoses    int `json:"total_doses"`
	CriticalDoses int `json:"critical_doses"`
	AsNeededDoses int `json:"as_needed_doses"`
}

// DaySchedule is one calendar day of hourly slots.
type DaySchedule struct {
	Date    string       `json:"date"` // YYYY-MM-DD
	Weekday string       `json:"weekday"`
	Slots   []TimeSlot   `json:"slots"`
	Summary DailySummary `json:"summary"`
}

// MedicationCalendar is a read projection of a set of optimized schedules
// over a date range. Rebuilt fully on each call, never patched.
type MedicationCalendar struct {
	StartDate string        `json:"start_date"` // YYYY-MM-DD
	EndDate   string        `json:"end_date"`   // YYYY-MM-DD
	Days      []DaySchedule `json:"days"`
}

// CalendarDateFormat is the date layout used by calendar projections.
const CalendarDateFormat = "2006-01-02"

// FormatCalendarDate renders t in the calendar's date layout.
func FormatCalendarDate(t time.Time) string {
	return t.Format(CalendarDateFormat)
}
