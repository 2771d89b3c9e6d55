package service

import (
	"github.com/pillpal/med-scheduler/internal/domain"
)

// adherenceScore rates how likely the patient is to follow a medication's
// schedule, 0-100. Each dose gets an alignment score against the patient's
// historical best and worst times and the work window; the medication's score
// is the minimum across its doses, so a single badly placed dose caps the
// whole medication. Conflicts subtract a flat penalty each.
func (s *scheduleService) adherenceScore(sched *domain.OptimizedSchedule, prefs *domain.LifestylePreferences) int {
	score := 100
	for _, entry := range sched.Schedules {
		if a := s.alignmentScore(entry.Time, prefs); a < score {
			score = a
		}
	}

	score -= s.policy.ConflictPenalty * len(sched.Conflicts)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// alignmentScore rates a single dose time. Best-time proximity beats
// worst-time proximity, which beats the work-window check.
func (s *scheduleService) alignmentScore(clock string, prefs *domain.LifestylePreferences) int {
	window := s.policy.AlignmentWindowMinutes

	for _, best := range prefs.AdherenceHistory.BestTimes {
		if clockDiffMinutes(clock, best) <= window {
			return s.policy.BestTimeScore
		}
	}
	for _, worst := range prefs.AdherenceHistory.WorstTimes {
		if clockDiffMinutes(clock, worst) <= window {
			return s.policy.WorstTimeScore
		}
	}
	if prefs.HasWorkWindow() && withinWindow(clock, prefs.WorkStart, prefs.WorkEnd) {
		return s.policy.WorkWindowScore
	}
	return s.policy.NeutralScore
}
