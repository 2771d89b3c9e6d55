package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/interaction"
)

// Mocks are defined in mocks_test.go

type engineFixture struct {
	patientID      uuid.UUID
	medicationRepo *MockMedicationRepository
	patientRepo    *MockPatientRepository
	preferenceRepo *MockPreferenceRepository
	checker        *interaction.Static
	policy         SchedulingPolicy
}

func newEngineFixture() *engineFixture {
	patientID := uuid.New()
	patientRepo := NewMockPatientRepository()
	patientRepo.patients[patientID] = &domain.Patient{ID: patientID, Name: "Test Patient", Timezone: "UTC"}

	return &engineFixture{
		patientID:      patientID,
		medicationRepo: NewMockMedicationRepository(),
		patientRepo:    patientRepo,
		preferenceRepo: NewMockPreferenceRepository(),
		checker:        &interaction.Static{},
		policy:         DefaultPolicy(),
	}
}

func (f *engineFixture) service() ScheduleService {
	return NewScheduleService(
		f.medicationRepo,
		f.patientRepo,
		f.preferenceRepo,
		NewPatternExtractor(f.policy),
		f.checker,
		f.policy,
	)
}

func (f *engineFixture) addMedication(med *domain.Medication) *domain.Medication {
	med.PatientID = f.patientID
	if med.Dosage == 0 {
		med.Dosage = 1
	}
	if med.Unit == "" {
		med.Unit = "tablet"
	}
	if med.Category == "" {
		med.Category = domain.CategoryChronic
	}
	return f.medicationRepo.add(med)
}

func (f *engineFixture) setPreferences(prefs *domain.LifestylePreferences) {
	prefs.PatientID = f.patientID
	f.preferenceRepo.prefs[f.patientID] = prefs
}

func findSchedule(t *testing.T, schedules []domain.OptimizedSchedule, medID uuid.UUID) *domain.OptimizedSchedule {
	t.Helper()
	for i := range schedules {
		if schedules[i].MedicationID == medID {
			return &schedules[i]
		}
	}
	t.Fatalf("no schedule for medication %s", medID)
	return nil
}

func scheduleTimes(sched *domain.OptimizedSchedule) []string {
	times := make([]string, 0, len(sched.Schedules))
	for _, entry := range sched.Schedules {
		times = append(times, entry.Time)
	}
	return times
}

func TestScheduleService_Generate_WithMealAlignment(t *testing.T) {
	f := newEngineFixture()
	metformin := f.addMedication(&domain.Medication{
		Name:         "Metformin",
		Dosage:       500,
		Unit:         "mg",
		Frequency:    "Twice daily",
		Instructions: "Take with food",
	})
	f.setPreferences(&domain.LifestylePreferences{
		WakeTime: "07:00", BedTime: "23:00",
		Breakfast: "08:00", Lunch: "12:30", Dinner: "18:30",
		Timezone: "UTC",
	})

	schedules, interactionData, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !interactionData {
		t.Error("interactionData = false, want true for a single medication")
	}

	sched := findSchedule(t, schedules, metformin.ID)
	if got := scheduleTimes(sched); !equalStrings(got, []string{"08:00", "18:30"}) {
		t.Errorf("dose times = %v, want [08:00 18:30]", got)
	}
	for _, entry := range sched.Schedules {
		if entry.MealRelation != domain.MealWith {
			t.Errorf("MealRelation = %q, want %q", entry.MealRelation, domain.MealWith)
		}
		if entry.Dosage != 500 || entry.Unit != "mg" {
			t.Errorf("dose = %v %s, want 500 mg", entry.Dosage, entry.Unit)
		}
	}
	if sched.Schedules[0].Priority != domain.PriorityHigh {
		t.Errorf("first dose priority = %q, want high", sched.Schedules[0].Priority)
	}
	if sched.Schedules[1].Priority != domain.PriorityMedium {
		t.Errorf("second dose priority = %q, want medium", sched.Schedules[1].Priority)
	}
	if len(sched.Conflicts) != 0 {
		t.Errorf("conflicts = %d, want 0", len(sched.Conflicts))
	}
}

func TestScheduleService_Generate_DoseCountMatchesFrequency(t *testing.T) {
	tests := []struct {
		frequency string
		wantDoses int
	}{
		{"Once daily", 1},
		{"Twice daily", 2},
		{"Three times daily", 3},
		{"Every 8 hours", 3},
		{"Every 6 hours", 4},
	}

	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			f := newEngineFixture()
			med := f.addMedication(&domain.Medication{Name: "Testodrine", Frequency: tt.frequency})

			schedules, _, err := f.service().Generate(context.Background(), f.patientID)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			sched := findSchedule(t, schedules, med.ID)
			if len(sched.Schedules) != tt.wantDoses {
				t.Errorf("doses = %d, want %d", len(sched.Schedules), tt.wantDoses)
			}
		})
	}
}

func TestScheduleService_Generate_ExplicitTimesWin(t *testing.T) {
	f := newEngineFixture()
	med := f.addMedication(&domain.Medication{
		Name:         "Levothyroxine",
		Frequency:    "Twice daily",
		Instructions: "take at 06:30 and 14:00 on an empty stomach",
	})

	schedules, _, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	sched := findSchedule(t, schedules, med.ID)
	if got := scheduleTimes(sched); !equalStrings(got, []string{"06:30", "14:00"}) {
		t.Errorf("dose times = %v, want [06:30 14:00]", got)
	}
	if sched.Schedules[0].MealRelation != domain.MealEmptyStomach {
		t.Errorf("MealRelation = %q, want empty_stomach", sched.Schedules[0].MealRelation)
	}
}

func TestScheduleService_Generate_OverlapResolved(t *testing.T) {
	f := newEngineFixture()
	lisinopril := f.addMedication(&domain.Medication{
		Name:      "Lisinopril",
		Frequency: "Once daily",
	})
	atorvastatin := f.addMedication(&domain.Medication{
		Name:      "Atorvastatin",
		Frequency: "Once daily",
	})

	schedules, _, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	first := findSchedule(t, schedules, lisinopril.ID)
	second := findSchedule(t, schedules, atorvastatin.ID)

	// Both land on the 08:00 ladder rung, so the pair overlaps. The conflict
	// is recorded on both sides and the later medication is shifted.
	if len(first.Conflicts) != 1 || len(second.Conflicts) != 1 {
		t.Fatalf("conflicts = (%d, %d), want (1, 1)", len(first.Conflicts), len(second.Conflicts))
	}
	conflict := first.Conflicts[0]
	if conflict.Type != domain.ConflictTimingOverlap {
		t.Errorf("conflict type = %q, want timing_overlap", conflict.Type)
	}
	if conflict.Severity != domain.SeverityMedium {
		t.Errorf("conflict severity = %q, want medium", conflict.Severity)
	}
	if conflict.AlternativeTiming != "08:30" {
		t.Errorf("AlternativeTiming = %q, want 08:30", conflict.AlternativeTiming)
	}

	if first.Schedules[0].Time != "08:00" {
		t.Errorf("first medication moved to %s, want it left at 08:00", first.Schedules[0].Time)
	}
	if second.Schedules[0].Time != "08:30" {
		t.Errorf("second medication time = %s, want 08:30", second.Schedules[0].Time)
	}
	if len(second.OptimizationNotes) == 0 {
		t.Error("shifted medication carries no optimization note")
	}
}

func TestScheduleService_Generate_AsNeeded(t *testing.T) {
	f := newEngineFixture()
	albuterol := f.addMedication(&domain.Medication{
		Name:      "Albuterol Inhaler",
		Dosage:    2,
		Unit:      "puffs",
		Frequency: "As needed",
	})

	schedules, _, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	sched := findSchedule(t, schedules, albuterol.ID)
	if len(sched.Schedules) != 1 {
		t.Fatalf("entries = %d, want 1", len(sched.Schedules))
	}
	entry := sched.Schedules[0]
	if !entry.IsAsNeeded {
		t.Error("IsAsNeeded = false, want true")
	}
	if entry.Time != "09:00" {
		t.Errorf("Time = %s, want 09:00", entry.Time)
	}
	if entry.Priority != domain.PriorityLow {
		t.Errorf("Priority = %q, want low", entry.Priority)
	}
	if entry.Reminder.RepeatCount != 3 || entry.Reminder.RepeatInterval != 60 {
		t.Errorf("reminder = %d x %dmin, want 3 x 60min", entry.Reminder.RepeatCount, entry.Reminder.RepeatInterval)
	}
	if len(sched.OptimizationNotes) == 0 {
		t.Error("as-needed schedule carries no explanatory note")
	}
}

func TestScheduleService_Generate_VariableDosing(t *testing.T) {
	f := newEngineFixture()
	insulin := f.addMedication(&domain.Medication{
		Name:      "Insulin Glargine",
		Dosage:    10,
		Unit:      "units",
		Category:  domain.CategoryCritical,
		Frequency: "Three times daily",
	})

	schedules, _, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	sched := findSchedule(t, schedules, insulin.ID)
	if len(sched.Schedules) != 3 {
		t.Fatalf("entries = %d, want 3", len(sched.Schedules))
	}
	for _, entry := range sched.Schedules {
		if entry.VariableDose == nil {
			t.Fatal("VariableDose = nil, want seeded placeholder")
		}
		if entry.VariableDose.CurrentDose != 1 {
			t.Errorf("CurrentDose = %v, want policy minimum 1", entry.VariableDose.CurrentDose)
		}
		if entry.VariableDose.AdjustmentReason != "Initial dose" {
			t.Errorf("AdjustmentReason = %q, want %q", entry.VariableDose.AdjustmentReason, "Initial dose")
		}
		if entry.Unit != "units" {
			t.Errorf("Unit = %q, want units", entry.Unit)
		}
		if entry.Priority != domain.PriorityHigh {
			t.Errorf("Priority = %q, want high for a critical medication", entry.Priority)
		}
	}
}

func TestScheduleService_Generate_VariableDosingCap(t *testing.T) {
	f := newEngineFixture()
	insulin := f.addMedication(&domain.Medication{
		Name:      "Insulin Lispro",
		Unit:      "units",
		Frequency: "Every 4 hours",
	})

	schedules, _, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	sched := findSchedule(t, schedules, insulin.ID)
	// Six doses requested, capped at four; the remainder is reported, not
	// silently dropped.
	if len(sched.Schedules) != 4 {
		t.Fatalf("entries = %d, want 4", len(sched.Schedules))
	}
	if len(sched.OptimizationNotes) == 0 {
		t.Fatal("truncation produced no note")
	}
}

func TestScheduleService_Generate_InteractionConflict(t *testing.T) {
	f := newEngineFixture()
	warfarin := f.addMedication(&domain.Medication{
		Name:      "Warfarin",
		Frequency: "Once daily",
		// Distinct explicit times keep the pair clear of timing overlaps
		Instructions: "take at 20:00",
	})
	aspirin := f.addMedication(&domain.Medication{
		Name:         "Aspirin",
		Frequency:    "Once daily",
		Instructions: "take at 08:00",
	})

	f.checker.Interactions = []domain.Interaction{
		{
			Severity:        domain.InteractionContraindicated,
			Description:     "Warfarin and aspirin together sharply increase bleeding risk",
			Medications:     []uuid.UUID{warfarin.ID, aspirin.ID},
			Recommendations: "Consult the prescriber before taking both",
		},
	}

	schedules, interactionData, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !interactionData {
		t.Error("interactionData = false, want true")
	}

	for _, medID := range []uuid.UUID{warfarin.ID, aspirin.ID} {
		sched := findSchedule(t, schedules, medID)
		if len(sched.Conflicts) != 1 {
			t.Fatalf("conflicts = %d, want 1", len(sched.Conflicts))
		}
		conflict := sched.Conflicts[0]
		if conflict.Type != domain.ConflictInteraction {
			t.Errorf("conflict type = %q, want interaction", conflict.Type)
		}
		if conflict.Severity != domain.SeverityCritical {
			t.Errorf("conflict severity = %q, want critical", conflict.Severity)
		}
		if len(sched.OptimizationNotes) == 0 {
			t.Error("interaction conflict carries no warning note")
		}
	}

	// Interaction conflicts are surfaced, never resolved by retiming.
	if got := findSchedule(t, schedules, warfarin.ID).Schedules[0].Time; got != "20:00" {
		t.Errorf("warfarin time = %s, want 20:00 untouched", got)
	}
	if got := findSchedule(t, schedules, aspirin.ID).Schedules[0].Time; got != "08:00" {
		t.Errorf("aspirin time = %s, want 08:00 untouched", got)
	}
}

func TestScheduleService_Generate_InteractionLookupFailure(t *testing.T) {
	f := newEngineFixture()
	f.addMedication(&domain.Medication{Name: "Warfarin", Frequency: "Once daily", Instructions: "take at 20:00"})
	f.addMedication(&domain.Medication{Name: "Aspirin", Frequency: "Once daily", Instructions: "take at 08:00"})
	f.checker.Err = domain.ErrInteractionUnavailable

	schedules, interactionData, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v, want degraded success", err)
	}
	if interactionData {
		t.Error("interactionData = true, want false after a failed lookup")
	}
	for _, sched := range schedules {
		found := false
		for _, note := range sched.OptimizationNotes {
			if note == "Drug interaction data was unavailable for this run; conflicts may be incomplete." {
				found = true
			}
		}
		if !found {
			t.Errorf("medication %s carries no unavailability note", sched.Medication.Name)
		}
	}
}

func TestScheduleService_Generate_SingleMedicationSkipsLookup(t *testing.T) {
	f := newEngineFixture()
	f.addMedication(&domain.Medication{Name: "Metformin", Frequency: "Once daily"})
	// A checker that would fail if called
	f.checker.Err = errors.New("should not be called")

	_, interactionData, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !interactionData {
		t.Error("interactionData = false, want true when the lookup is skipped")
	}
}

func TestScheduleService_Generate_PatientNotFound(t *testing.T) {
	f := newEngineFixture()
	_, _, err := f.service().Generate(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestScheduleService_Generate_NoPreferencesUsesDefaults(t *testing.T) {
	f := newEngineFixture()
	med := f.addMedication(&domain.Medication{
		Name:         "Metformin",
		Frequency:    "Once daily",
		Instructions: "Take with food",
	})
	// No preferences stored

	schedules, _, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	sched := findSchedule(t, schedules, med.ID)
	// Default breakfast
	if got := sched.Schedules[0].Time; got != "08:00" {
		t.Errorf("dose time = %s, want default breakfast 08:00", got)
	}
}

func TestScheduleService_Generate_NoMedications(t *testing.T) {
	f := newEngineFixture()
	schedules, interactionData, err := f.service().Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(schedules) != 0 {
		t.Errorf("schedules = %d, want 0", len(schedules))
	}
	if !interactionData {
		t.Error("interactionData = false, want true")
	}
}

func TestScheduleService_Generate_Deterministic(t *testing.T) {
	f := newEngineFixture()
	f.addMedication(&domain.Medication{Name: "Metformin", Frequency: "Twice daily", Instructions: "Take with food"})
	f.addMedication(&domain.Medication{Name: "Lisinopril", Frequency: "Once daily"})
	f.addMedication(&domain.Medication{Name: "Albuterol", Frequency: "As needed"})

	svc := f.service()
	first, _, err := svc.Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, _, err := svc.Generate(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("run sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := &first[i], &second[i]
		if a.MedicationID != b.MedicationID {
			t.Fatalf("medication order differs at %d", i)
		}
		if !equalStrings(scheduleTimes(a), scheduleTimes(b)) {
			t.Errorf("%s times differ: %v vs %v", a.Medication.Name, scheduleTimes(a), scheduleTimes(b))
		}
		if a.AdherenceScore != b.AdherenceScore {
			t.Errorf("%s scores differ: %d vs %d", a.Medication.Name, a.AdherenceScore, b.AdherenceScore)
		}
	}
}
