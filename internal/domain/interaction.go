package domain

import "github.com/google/uuid"

// InteractionSeverity is the severity scale used by the external
// drug-interaction service.
type InteractionSeverity string

const (
	InteractionLow             InteractionSeverity = "low"
	InteractionModerate        InteractionSeverity = "moderate"
	InteractionHigh            InteractionSeverity = "high"
	InteractionContraindicated InteractionSeverity = "contraindicated"
)

// Interaction is one drug-drug interaction reported by the external lookup.
type Interaction struct {
	Severity        InteractionSeverity `json:"severity"`
	Description     string              `json:"description"`
	Medications     []uuid.UUID         `json:"medications"`
	Recommendations string              `json:"recommendations"`
}

// ConflictSeverity maps the interaction severity onto the conflict scale.
func (s InteractionSeverity) ConflictSeverity() ConflictSeverity {
	switch s {
	case InteractionContraindicated:
		return SeverityCritical
	case InteractionHigh:
		return SeverityHigh
	case InteractionModerate:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
