// Package llm provides an OpenAI-backed dosing requirement extractor. It is
// an optional replacement for the table-driven pattern extractor: same
// interface, better handling of messy free-text labels. Any failure falls
// back to the pattern tables so schedule generation never depends on the API.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/service"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a medication label interpreter for a dose scheduling system.

You receive one medication's name, free-text dosing frequency, and free-text instructions. Interpret them into a structured dosing requirement.

Rules:
- Do NOT invent clinical advice. Only restructure what the text says.
- total_doses_per_day: the number of doses per day implied by the frequency. Unclear frequency means 1.
- meal_relation: one of "before_meal", "with_meal", "after_meal", "empty_stomach", "any".
- preferred_times: explicit clock times mentioned for taking the dose, 24-hour HH:MM, in order of appearance.
- avoid_times: clock times the text says to avoid, 24-hour HH:MM.
- is_as_needed: true when the medication is taken on symptom trigger ("as needed", "PRN").
- variable_dosing: true when the per-dose amount is adjusted at administration time (insulin, "adjust dose", sliding scale).
- special_instructions: short directives worth repeating on every dose ("Take on an empty stomach").

Respond as strict JSON:

{
  "total_doses_per_day": 2,
  "meal_relation": "with_meal",
  "preferred_times": ["08:00"],
  "avoid_times": [],
  "is_as_needed": false,
  "variable_dosing": false,
  "special_instructions": []
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Medication name: %s
Frequency: %s
Instructions: %s`

// extractorOutput is the strict-JSON shape requested from the model.
type extractorOutput struct {
	TotalDosesPerDay    int      `json:"total_doses_per_day"`
	MealRelation        string   `json:"meal_relation"`
	PreferredTimes      []string `json:"preferred_times"`
	AvoidTimes          []string `json:"avoid_times"`
	IsAsNeeded          bool     `json:"is_as_needed"`
	VariableDosing      bool     `json:"variable_dosing"`
	SpecialInstructions []string `json:"special_instructions"`
}

// Extractor implements service.RequirementExtractor using the OpenAI API,
// with a mandatory fallback extractor for any failure.
type Extractor struct {
	client   openai.Client
	model    string
	policy   service.SchedulingPolicy
	fallback service.RequirementExtractor
}

// NewExtractor creates an OpenAI-backed requirement extractor.
// Returns nil if apiKey is empty; callers should then use fallback directly.
func NewExtractor(apiKey, model string, policy service.SchedulingPolicy, fallback service.RequirementExtractor) *Extractor {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Extractor{
		client:   openai.NewClient(option.WithAPIKey(apiKey)),
		model:    model,
		policy:   policy,
		fallback: fallback,
	}
}

func (e *Extractor) Extract(ctx context.Context, med *domain.Medication) (*domain.DosingRequirement, error) {
	req, err := e.extractViaAPI(ctx, med)
	if err != nil {
		return e.fallback.Extract(ctx, med)
	}
	return req, nil
}

func (e *Extractor) extractViaAPI(ctx context.Context, med *domain.Medication) (*domain.DosingRequirement, error) {
	if e == nil {
		return nil, ErrOpenAIUnavailable
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, med.Name, med.Frequency, med.Instructions)

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	var out extractorOutput
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return e.toRequirement(med, &out), nil
}

// toRequirement maps the model output onto the domain type, applying the same
// defaults and bounds the pattern extractor uses.
func (e *Extractor) toRequirement(med *domain.Medication, out *extractorOutput) *domain.DosingRequirement {
	doses := out.TotalDosesPerDay
	if doses <= 0 {
		doses = 1
	}

	req := &domain.DosingRequirement{
		MedicationID:        med.ID,
		TotalDosesPerDay:    doses,
		MealRelation:        mealRelationFrom(out.MealRelation),
		PreferredTimes:      out.PreferredTimes,
		AvoidTimes:          out.AvoidTimes,
		SpecialInstructions: out.SpecialInstructions,
		IsAsNeeded:          out.IsAsNeeded,
	}
	req.MinIntervalHours, req.MaxIntervalHours = service.IntervalBounds(doses)

	if out.VariableDosing {
		req.VariableDosing = service.VariableDosingDefaults(e.policy)
	}
	return req
}

func mealRelationFrom(s string) domain.MealRelation {
	switch domain.MealRelation(s) {
	case domain.MealBefore, domain.MealWith, domain.MealAfter, domain.MealEmptyStomach:
		return domain.MealRelation(s)
	default:
		return domain.MealAny
	}
}
