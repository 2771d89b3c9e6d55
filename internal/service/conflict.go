package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
)

// timingOverlap is a detected pair of doses from different medications closer
// together than the overlap window.
type timingOverlap struct {
	first       *domain.OptimizedSchedule
	second      *domain.OptimizedSchedule
	firstEntry  *domain.GeneratedSchedule
	secondEntry *domain.GeneratedSchedule
}

// resolveConflicts runs conflict detection and resolution over the full
// medication set. Interaction conflicts are attached but never retimed;
// resolving a drug interaction by moving doses needs clinical judgment, so
// the engine only surfaces it. Timing overlaps are resolved by shifting the
// second medication's first dose.
//
// The default policy is a single detect-resolve pass: a shift that creates a
// new overlap with a third medication is not re-checked in the same pass.
// MaxResolutionPasses > 1 opts into a bounded fixed-point loop.
func (s *scheduleService) resolveConflicts(results []domain.OptimizedSchedule, interactions []domain.Interaction) {
	s.attachInteractionConflicts(results, interactions)

	for pass := 0; pass < s.policy.MaxResolutionPasses; pass++ {
		overlaps := s.detectTimingOverlaps(results)
		if len(overlaps) == 0 {
			return
		}
		for _, ov := range overlaps {
			s.resolveOverlap(ov)
		}
	}
}

// detectTimingOverlaps scans every unordered pair of schedule entries from
// different medications. Detection is pure: conflicts are recorded, schedules
// untouched.
func (s *scheduleService) detectTimingOverlaps(results []domain.OptimizedSchedule) []timingOverlap {
	var overlaps []timingOverlap

	for i := range results {
		for j := i + 1; j < len(results); j++ {
			a, b := &results[i], &results[j]
			for ai := range a.Schedules {
				for bi := range b.Schedules {
					ae, be := &a.Schedules[ai], &b.Schedules[bi]
					if clockDiffMinutes(ae.Time, be.Time) >= s.policy.OverlapWindowMinutes {
						continue
					}
					conflict := domain.ScheduleConflict{
						Type:     domain.ConflictTimingOverlap,
						Severity: domain.SeverityMedium,
						Description: fmt.Sprintf("%s at %s and %s at %s are scheduled within %d minutes of each other",
							a.Medication.Name, ae.Time, b.Medication.Name, be.Time, s.policy.OverlapWindowMinutes),
						AffectedMedications: []uuid.UUID{a.MedicationID, b.MedicationID},
						Recommendations: []string{
							fmt.Sprintf("Separate the doses by at least %d minutes", s.policy.OverlapWindowMinutes),
						},
						AlternativeTiming: addMinutes(be.Time, s.policy.ResolutionShiftMinutes),
					}
					a.Conflicts = append(a.Conflicts, conflict)
					b.Conflicts = append(b.Conflicts, conflict)
					overlaps = append(overlaps, timingOverlap{
						first:       a,
						second:      b,
						firstEntry:  ae,
						secondEntry: be,
					})
				}
			}
		}
	}
	return overlaps
}

// resolveOverlap shifts the second medication's first dose forward and leaves
// an explanatory note. Each detected overlap applies its own shift, so a dose
// involved in several overlaps in the same pass moves once per overlap.
func (s *scheduleService) resolveOverlap(ov timingOverlap) {
	sched := ov.second
	if len(sched.Schedules) == 0 {
		return
	}
	entry := &sched.Schedules[0]
	from := entry.Time
	entry.Time = addMinutes(entry.Time, s.policy.ResolutionShiftMinutes)
	sched.OptimizationNotes = append(sched.OptimizationNotes, fmt.Sprintf(
		"Moved the %s dose from %s to %s to avoid overlapping with %s.",
		sched.Medication.Name, from, entry.Time, ov.first.Medication.Name))
}

// attachInteractionConflicts cross-references the externally supplied
// interaction list against the scheduled medications and attaches a conflict
// to every affected medication.
func (s *scheduleService) attachInteractionConflicts(results []domain.OptimizedSchedule, interactions []domain.Interaction) {
	scheduled := make(map[uuid.UUID]*domain.OptimizedSchedule, len(results))
	for i := range results {
		scheduled[results[i].MedicationID] = &results[i]
	}

	for _, inter := range interactions {
		var affected []*domain.OptimizedSchedule
		var affectedIDs []uuid.UUID
		for _, id := range inter.Medications {
			if sched, ok := scheduled[id]; ok {
				affected = append(affected, sched)
				affectedIDs = append(affectedIDs, id)
			}
		}
		if len(affected) < 2 {
			continue
		}

		conflict := domain.ScheduleConflict{
			Type:                domain.ConflictInteraction,
			Severity:            inter.Severity.ConflictSeverity(),
			Description:         inter.Description,
			AffectedMedications: affectedIDs,
		}
		if inter.Recommendations != "" {
			conflict.Recommendations = []string{inter.Recommendations}
		}

		for _, sched := range affected {
			sched.Conflicts = append(sched.Conflicts, conflict)
			sched.OptimizationNotes = append(sched.OptimizationNotes, fmt.Sprintf(
				"Warning: %s interaction involving %s. Review with a pharmacist before changing times.",
				inter.Severity, sched.Medication.Name))
		}
	}
}
