package service

import (
	"time"

	"github.com/pillpal/med-scheduler/internal/domain"
)

// projectCalendar folds all medications' schedules into an N-day calendar of
// hourly slots. A pure read transform: projecting the same schedules twice
// yields structurally identical calendars, and the input is never mutated.
func (s *scheduleService) projectCalendar(schedules []domain.OptimizedSchedule, prefs *domain.LifestylePreferences, start time.Time, days int) *domain.MedicationCalendar {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end := startDay.AddDate(0, 0, days-1)

	calendar := &domain.MedicationCalendar{
		StartDate: domain.FormatCalendarDate(startDay),
		EndDate:   domain.FormatCalendarDate(end),
		Days:      make([]domain.DaySchedule, 0, days),
	}

	for d := 0; d < days; d++ {
		date := startDay.AddDate(0, 0, d)
		calendar.Days = append(calendar.Days, s.projectDay(schedules, prefs, date))
	}
	return calendar
}

func (s *scheduleService) projectDay(schedules []domain.OptimizedSchedule, prefs *domain.LifestylePreferences, date time.Time) domain.DaySchedule {
	day := domain.DaySchedule{
		Date:    domain.FormatCalendarDate(date),
		Weekday: date.Weekday().String(),
	}

	for hour := s.policy.CalendarStartHour; hour <= s.policy.CalendarEndHour; hour++ {
		slot := domain.TimeSlot{
			Hour:        hour,
			Label:       minutesToClock(hour * 60),
			Medications: []domain.SlotMedication{},
			MealTag:     mealTag(hour, prefs),
		}

		for i := range schedules {
			sched := &schedules[i]
			for _, entry := range sched.Schedules {
				// Bucketing ignores minutes: 08:05 and 08:50 share a slot.
				if clockToMinutes(entry.Time)/60 != hour {
					continue
				}
				slot.Medications = append(slot.Medications, domain.SlotMedication{
					MedicationID: sched.MedicationID,
					Name:         sched.Medication.Name,
					Time:         entry.Time,
					Dosage:       entry.Dosage,
					Unit:         entry.Unit,
					Priority:     entry.Priority,
					IsAsNeeded:   entry.IsAsNeeded,
				})

				day.Summary.TotalDoses++
				if entry.Priority == domain.PriorityHigh {
					day.Summary.CriticalDoses++
				}
				if entry.IsAsNeeded {
					day.Summary.AsNeededDoses++
				}
			}
		}

		day.Slots = append(day.Slots, slot)
	}
	return day
}

// mealTag labels the slot whose hour contains a meal time.
func mealTag(hour int, prefs *domain.LifestylePreferences) string {
	switch hour {
	case clockToMinutes(prefs.Breakfast) / 60:
		return "breakfast"
	case clockToMinutes(prefs.Lunch) / 60:
		return "lunch"
	case clockToMinutes(prefs.Dinner) / 60:
		return "dinner"
	}
	return ""
}
