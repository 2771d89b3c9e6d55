package service

import (
	"github.com/pillpal/med-scheduler/internal/domain"
)

// doseTimes assigns a clock time to every dose of a single medication.
// Preference order per dose index: an explicit preferred time, then meal
// alignment for with-meal medications, then the policy's default ladder.
func (s *scheduleService) doseTimes(req *domain.DosingRequirement, prefs *domain.LifestylePreferences) []string {
	times := make([]string, 0, req.TotalDosesPerDay)
	meals := mealTimesFor(req.TotalDosesPerDay, prefs)

	for i := 0; i < req.TotalDosesPerDay; i++ {
		switch {
		case i < len(req.PreferredTimes):
			times = append(times, req.PreferredTimes[i])
		case req.MealRelation == domain.MealWith && i < len(meals):
			times = append(times, meals[i])
		default:
			times = append(times, s.ladderTime(i))
		}
	}
	return times
}

// mealTimesFor picks which meals anchor a with-meal medication. One dose goes
// with breakfast, two spread to breakfast and dinner, three cover all meals.
// A fourth with-meal dose has no meal left and falls through to the ladder.
func mealTimesFor(doses int, prefs *domain.LifestylePreferences) []string {
	switch doses {
	case 1:
		return []string{prefs.Breakfast}
	case 2:
		return []string{prefs.Breakfast, prefs.Dinner}
	default:
		return []string{prefs.Breakfast, prefs.Lunch, prefs.Dinner}
	}
}

// ladderTime indexes the default time ladder, reusing the first rung beyond
// its end.
func (s *scheduleService) ladderTime(index int) string {
	ladder := s.policy.DefaultTimeLadder
	if index < len(ladder) {
		return ladder[index]
	}
	return ladder[0]
}

// dosePriority ranks a dose. The first dose of the day is high so the day
// starts on track, and critical-category medications are always high.
func dosePriority(index int, med *domain.Medication) domain.SchedulePriority {
	if index == 0 || med.Category == domain.CategoryCritical {
		return domain.PriorityHigh
	}
	return domain.PriorityMedium
}

// doseReminder builds the reminder settings for a fixed-dose entry. The first
// dose gets a longer advance warning.
func (s *scheduleService) doseReminder(index int) domain.ReminderSettings {
	advance := s.policy.LaterDoseAdvanceMinutes
	if index == 0 {
		advance = s.policy.FirstDoseAdvanceMinutes
	}
	return domain.ReminderSettings{
		Enabled:        true,
		AdvanceMinutes: advance,
		RepeatCount:    s.policy.ReminderRepeatCount,
		RepeatInterval: s.policy.ReminderRepeatInterval,
		Channel:        domain.ChannelPush,
		SnoozeEnabled:  true,
		SnoozeMinutes:  10,
	}
}

// asNeededReminder builds the reminder-only policy for PRN medications.
func (s *scheduleService) asNeededReminder() domain.ReminderSettings {
	return domain.ReminderSettings{
		Enabled:        true,
		AdvanceMinutes: 0,
		RepeatCount:    s.policy.AsNeededRepeatCount,
		RepeatInterval: s.policy.AsNeededRepeatInterval,
		Channel:        domain.ChannelPush,
		SnoozeEnabled:  true,
		SnoozeMinutes:  30,
	}
}
