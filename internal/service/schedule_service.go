package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/interaction"
	"github.com/pillpal/med-scheduler/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ScheduleService runs the schedule generation pipeline: requirement
// extraction, dose-time assignment, conflict detection and resolution,
// adherence scoring, and calendar projection.
//
// Every call takes the patient's full medication list as input and returns a
// fresh result; there is no shared mutable state between runs, so concurrent
// callers are safe.
type ScheduleService interface {
	// Generate produces one optimized schedule per medication. The returned
	// bool is false when the interaction lookup failed and the run proceeded
	// with an empty interaction set.
	Generate(ctx context.Context, patientID uuid.UUID) ([]domain.OptimizedSchedule, bool, error)

	// Calendar projects the patient's schedules onto a day range starting at
	// start. days <= 0 uses the policy default.
	Calendar(ctx context.Context, patientID uuid.UUID, start time.Time, days int) (*domain.MedicationCalendar, error)
}

type scheduleService struct {
	medicationRepo repository.MedicationRepository
	patientRepo    repository.PatientRepository
	preferenceRepo repository.PreferenceRepository
	extractor      RequirementExtractor
	interactions   interaction.Checker
	policy         SchedulingPolicy
}

// NewScheduleService creates a ScheduleService with the given policy.
func NewScheduleService(
	medicationRepo repository.MedicationRepository,
	patientRepo repository.PatientRepository,
	preferenceRepo repository.PreferenceRepository,
	extractor RequirementExtractor,
	interactions interaction.Checker,
	policy SchedulingPolicy,
) ScheduleService {
	return &scheduleService{
		medicationRepo: medicationRepo,
		patientRepo:    patientRepo,
		preferenceRepo: preferenceRepo,
		extractor:      extractor,
		interactions:   interactions,
		policy:         policy.normalized(),
	}
}

func (s *scheduleService) Generate(ctx context.Context, patientID uuid.UUID) ([]domain.OptimizedSchedule, bool, error) {
	tracer := otel.Tracer("med-scheduler/engine")
	ctx, span := tracer.Start(ctx, "schedule.generate")
	defer span.End()

	exists, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, domain.ErrNotFound
	}

	medications, err := s.medicationRepo.ListAll(ctx, patientID)
	if err != nil {
		return nil, false, err
	}

	prefs, err := s.preferenceRepo.GetByPatient(ctx, patientID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, err
		}
		prefs = domain.DefaultLifestylePreferences(patientID)
	}

	span.SetAttributes(attribute.Int("medications.count", len(medications)))

	results := make([]domain.OptimizedSchedule, 0, len(medications))
	for i := range medications {
		med := &medications[i]
		req, err := s.extractor.Extract(ctx, med)
		if err != nil {
			// Extraction must not reject a medication. The pattern extractor
			// never errors; a smarter extractor that does gets the defaults.
			req = &domain.DosingRequirement{
				MedicationID:     med.ID,
				TotalDosesPerDay: 1,
				MealRelation:     domain.MealAny,
				MinIntervalHours: 12,
				MaxIntervalHours: 24,
			}
		}
		results = append(results, s.buildMedicationSchedule(med, req, prefs))
	}

	// One batched lookup per run. A failed lookup degrades to an empty
	// interaction set: dropping interaction awareness beats blocking the run,
	// but every schedule carries a note so the caller knows.
	interactionData := true
	interactions, err := s.lookupInteractions(ctx, medications)
	if err != nil {
		interactionData = false
		interactions = nil
		for i := range results {
			results[i].OptimizationNotes = append(results[i].OptimizationNotes,
				"Drug interaction data was unavailable for this run; conflicts may be incomplete.")
		}
	}

	s.resolveConflicts(results, interactions)
	for i := range results {
		results[i].AdherenceScore = s.adherenceScore(&results[i], prefs)
	}

	span.SetAttributes(
		attribute.Bool("interactions.available", interactionData),
		attribute.Int("conflicts.count", totalConflicts(results)),
	)
	return results, interactionData, nil
}

func (s *scheduleService) Calendar(ctx context.Context, patientID uuid.UUID, start time.Time, days int) (*domain.MedicationCalendar, error) {
	schedules, _, err := s.Generate(ctx, patientID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.preferenceRepo.GetByPatient(ctx, patientID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		prefs = domain.DefaultLifestylePreferences(patientID)
	}

	if days <= 0 {
		days = s.policy.DefaultCalendarDays
	}
	return s.projectCalendar(schedules, prefs, start, days), nil
}

// buildMedicationSchedule produces the schedule entries for one medication.
// As-needed and variable-dosing medications take their own paths; everything
// else iterates the per-dose time ladder.
func (s *scheduleService) buildMedicationSchedule(med *domain.Medication, req *domain.DosingRequirement, prefs *domain.LifestylePreferences) domain.OptimizedSchedule {
	result := domain.OptimizedSchedule{
		MedicationID: med.ID,
		Medication:   med,
		Schedules:    []domain.GeneratedSchedule{},
		Conflicts:    []domain.ScheduleConflict{},
	}

	switch {
	case req.IsAsNeeded:
		result.Schedules = append(result.Schedules, s.asNeededEntry(med, req))
		result.OptimizationNotes = append(result.OptimizationNotes,
			"As-needed medication: one daily reminder is scheduled, take on symptom trigger.")

	case req.VariableDosing != nil:
		entries, truncated := s.variableDoseEntries(med, req, prefs)
		result.Schedules = entries
		req.TruncatedDoses = truncated
		if truncated > 0 {
			result.OptimizationNotes = append(result.OptimizationNotes, fmt.Sprintf(
				"%d dose(s) beyond the variable-dosing capacity of %d were not scheduled.",
				truncated, s.policy.VariableDoseCap))
		}

	case req.TotalDosesPerDay <= 0:
		result.OptimizationNotes = append(result.OptimizationNotes,
			"No doses could be derived from the frequency; review the medication entry.")

	default:
		result.Schedules = s.fixedDoseEntries(med, req, prefs)
	}

	return result
}

func (s *scheduleService) fixedDoseEntries(med *domain.Medication, req *domain.DosingRequirement, prefs *domain.LifestylePreferences) []domain.GeneratedSchedule {
	times := s.doseTimes(req, prefs)
	entries := make([]domain.GeneratedSchedule, 0, len(times))
	for i, at := range times {
		entries = append(entries, domain.GeneratedSchedule{
			ID:           uuid.New(),
			MedicationID: med.ID,
			Time:         at,
			Dosage:       med.Dosage,
			Unit:         med.Unit,
			MealRelation: req.MealRelation,
			Instructions: joinInstructions(req.SpecialInstructions),
			Priority:     dosePriority(i, med),
			Reminder:     s.doseReminder(i),
		})
	}
	return entries
}

// asNeededEntry is the single reminder-only entry for a PRN medication.
func (s *scheduleService) asNeededEntry(med *domain.Medication, req *domain.DosingRequirement) domain.GeneratedSchedule {
	return domain.GeneratedSchedule{
		ID:           uuid.New(),
		MedicationID: med.ID,
		Time:         s.policy.AsNeededTime,
		Dosage:       med.Dosage,
		Unit:         med.Unit,
		MealRelation: req.MealRelation,
		Instructions: joinInstructions(req.SpecialInstructions),
		Priority:     domain.PriorityLow,
		Reminder:     s.asNeededReminder(),
		IsAsNeeded:   true,
	}
}

// variableDoseEntries caps variable-dosing medications and seeds every entry
// at the configured minimum. The engine never computes a clinical dose; it
// only schedules when a dose decision must be made.
func (s *scheduleService) variableDoseEntries(med *domain.Medication, req *domain.DosingRequirement, prefs *domain.LifestylePreferences) ([]domain.GeneratedSchedule, int) {
	total := req.TotalDosesPerDay
	truncated := 0
	if total > s.policy.VariableDoseCap {
		truncated = total - s.policy.VariableDoseCap
		total = s.policy.VariableDoseCap
	}

	capped := *req
	capped.TotalDosesPerDay = total
	times := s.doseTimes(&capped, prefs)

	entries := make([]domain.GeneratedSchedule, 0, len(times))
	for i, at := range times {
		entries = append(entries, domain.GeneratedSchedule{
			ID:           uuid.New(),
			MedicationID: med.ID,
			Time:         at,
			Dosage:       req.VariableDosing.MinDose,
			Unit:         req.VariableDosing.Unit,
			MealRelation: req.MealRelation,
			Instructions: joinInstructions(req.SpecialInstructions),
			Priority:     dosePriority(i, med),
			Reminder:     s.doseReminder(i),
			VariableDose: &domain.VariableDose{
				CurrentDose:      req.VariableDosing.MinDose,
				AdjustmentReason: "Initial dose",
			},
		})
	}
	return entries, truncated
}

func (s *scheduleService) lookupInteractions(ctx context.Context, medications []domain.Medication) ([]domain.Interaction, error) {
	if len(medications) < 2 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(medications))
	for _, med := range medications {
		ids = append(ids, med.ID)
	}
	return s.interactions.Check(ctx, ids)
}

func joinInstructions(notes []string) string {
	return strings.Join(notes, "; ")
}

func totalConflicts(results []domain.OptimizedSchedule) int {
	n := 0
	for i := range results {
		n += len(results[i].Conflicts)
	}
	return n
}
