package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pillpal/med-scheduler/internal/domain"
)

// RequirementExtractor turns a medication's free-text frequency and
// instructions into a structured dosing requirement. The pattern tables live
// behind this interface so a smarter parser can replace them without touching
// scheduling logic.
type RequirementExtractor interface {
	Extract(ctx context.Context, med *domain.Medication) (*domain.DosingRequirement, error)
}

// frequencyRule maps a frequency phrase to doses per day. Rules are checked
// in order; the first match wins.
type frequencyRule struct {
	phrase string
	doses  int
}

var frequencyRules = []frequencyRule{
	{"three times daily", 3},
	{"three times a day", 3},
	{"four times daily", 4},
	{"four times a day", 4},
	{"once daily", 1},
	{"once a day", 1},
	{"twice daily", 2},
	{"twice a day", 2},
	{"every 4 hours", 6},
	{"every 6 hours", 4},
	{"every 8 hours", 3},
	{"every 12 hours", 2},
	{"every 4h", 6},
	{"every 6h", 4},
	{"every 8h", 3},
	{"every 12h", 2},
	{"as needed", 1},
}

// Latin dosing abbreviations need word boundaries ("forbidden" contains "bid").
var (
	abbrevPattern = regexp.MustCompile(`\b(bid|tid|qid|prn)\b`)
	prnPattern    = regexp.MustCompile(`\bprn\b`)
)

var abbrevDoses = map[string]int{
	"bid": 2,
	"tid": 3,
	"qid": 4,
	"prn": 1,
}

// Time patterns recognized in instructions, tried in order on each fragment.
var (
	clockPattern = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	ampmPattern  = regexp.MustCompile(`\b(1[0-2]|0?[1-9])\s*(am|pm)\b`)
	hSepPattern  = regexp.MustCompile(`\b([01]?\d|2[0-3])h([0-5]\d)\b`)
)

// avoidLookback is how far before a time mention the word "avoid" still
// applies to it.
const avoidLookback = 24

// mealRule maps an instruction phrase to a meal relation. Order is the
// priority order: empty-stomach phrasing beats with-food phrasing, and so on.
type mealRule struct {
	phrase   string
	relation domain.MealRelation
}

var mealRules = []mealRule{
	{"empty stomach", domain.MealEmptyStomach},
	{"fasting", domain.MealEmptyStomach},
	{"with food", domain.MealWith},
	{"with meal", domain.MealWith},
	{"before meal", domain.MealBefore},
	{"before food", domain.MealBefore},
	{"after meal", domain.MealAfter},
	{"after food", domain.MealAfter},
}

// specialInstructionRules surface common label directives verbatim on each dose.
var specialInstructionRules = []struct {
	phrase string
	note   string
}{
	{"empty stomach", "Take on an empty stomach"},
	{"do not crush", "Do not crush or chew"},
	{"with water", "Take with a full glass of water"},
	{"avoid alcohol", "Avoid alcohol"},
	{"avoid grapefruit", "Avoid grapefruit"},
	{"avoid dairy", "Avoid dairy products"},
}

type patternExtractor struct {
	policy SchedulingPolicy
}

// NewPatternExtractor builds the default table-driven requirement extractor.
func NewPatternExtractor(policy SchedulingPolicy) RequirementExtractor {
	return &patternExtractor{policy: policy.normalized()}
}

// Extract never fails: every parse step has a defined default so a medication
// with unintelligible text still gets a schedule.
func (e *patternExtractor) Extract(_ context.Context, med *domain.Medication) (*domain.DosingRequirement, error) {
	frequency := strings.ToLower(med.Frequency)
	instructions := strings.ToLower(med.Instructions)
	name := strings.ToLower(med.Name)

	req := &domain.DosingRequirement{
		MedicationID:     med.ID,
		TotalDosesPerDay: dosesPerDay(frequency),
		MealRelation:     mealRelation(instructions),
		IsAsNeeded:       isAsNeeded(frequency, instructions),
	}
	req.MinIntervalHours, req.MaxIntervalHours = IntervalBounds(req.TotalDosesPerDay)

	if strings.Contains(name, "insulin") ||
		strings.Contains(instructions, "adjust dose") ||
		strings.Contains(instructions, "variable") {
		req.VariableDosing = VariableDosingDefaults(e.policy)
	}

	req.PreferredTimes, req.AvoidTimes = extractTimes(instructions)
	req.SpecialInstructions = specialInstructions(instructions)

	return req, nil
}

// dosesPerDay resolves a frequency string against the rule table.
// Unrecognized frequencies default to one dose per day; this is a deliberate,
// auditable default rather than an error.
func dosesPerDay(frequency string) int {
	for _, rule := range frequencyRules {
		if strings.Contains(frequency, rule.phrase) {
			return rule.doses
		}
	}
	if m := abbrevPattern.FindString(frequency); m != "" {
		return abbrevDoses[m]
	}
	return 1
}

func mealRelation(instructions string) domain.MealRelation {
	for _, rule := range mealRules {
		if strings.Contains(instructions, rule.phrase) {
			return rule.relation
		}
	}
	return domain.MealAny
}

func isAsNeeded(frequency, instructions string) bool {
	for _, text := range []string{frequency, instructions} {
		if strings.Contains(text, "as needed") || prnPattern.MatchString(text) {
			return true
		}
	}
	return false
}

// IntervalBounds derives the minimum and maximum hours between doses from the
// daily dose count. Exported so alternative extractors apply the same bounds.
func IntervalBounds(doses int) (min, max float64) {
	switch doses {
	case 0, 1:
		return 12, 24
	case 2:
		return 8, 12
	case 3:
		return 6, 8
	case 4:
		return 4, 6
	default:
		return 24 / float64(doses), 24 / float64(doses)
	}
}

// extractTimes finds clock times in the instructions and normalizes them to
// 24-hour HH:MM. A time preceded closely by "avoid" goes to the avoid list;
// everything else is a preferred time, in order of appearance.
func extractTimes(instructions string) (preferred, avoid []string) {
	type match struct {
		pos   int
		clock string
	}
	var matches []match
	seen := make(map[int]bool)

	record := func(pos int, clock string) {
		// Patterns can overlap on the same text span; first pattern wins.
		if seen[pos] {
			return
		}
		seen[pos] = true
		matches = append(matches, match{pos: pos, clock: clock})
	}

	for _, loc := range clockPattern.FindAllStringSubmatchIndex(instructions, -1) {
		record(loc[0], instructions[loc[0]:loc[1]])
	}
	for _, loc := range ampmPattern.FindAllStringSubmatchIndex(instructions, -1) {
		hour, _ := strconv.Atoi(instructions[loc[2]:loc[3]])
		meridiem := instructions[loc[4]:loc[5]]
		if meridiem == "pm" && hour != 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		record(loc[0], fmt.Sprintf("%02d:00", hour))
	}
	for _, loc := range hSepPattern.FindAllStringSubmatchIndex(instructions, -1) {
		hour, _ := strconv.Atoi(instructions[loc[2]:loc[3]])
		minute := instructions[loc[4]:loc[5]]
		record(loc[0], fmt.Sprintf("%02d:%s", hour, minute))
	}

	// Order of appearance in the text, not match order across patterns.
	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	for _, m := range matches {
		clock := normalizeClock(m.clock)
		if clock == "" {
			continue
		}
		start := m.pos - avoidLookback
		if start < 0 {
			start = 0
		}
		if strings.Contains(instructions[start:m.pos], "avoid") {
			avoid = append(avoid, clock)
		} else {
			preferred = append(preferred, clock)
		}
	}

	return preferred, avoid
}

// normalizeClock zero-pads an HH:MM string.
func normalizeClock(clock string) string {
	m := clockToMinutes(clock)
	if m < 0 {
		return ""
	}
	return minutesToClock(m)
}

func specialInstructions(instructions string) []string {
	var notes []string
	for _, rule := range specialInstructionRules {
		if strings.Contains(instructions, rule.phrase) {
			notes = append(notes, rule.note)
		}
	}
	return notes
}
