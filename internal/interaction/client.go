// Package interaction wraps the external drug-interaction service. The
// schedule engine batches one lookup per generation run and tolerates
// failures: an unavailable service degrades to an empty interaction set at
// the call site, never a failed run.
package interaction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/rs/zerolog"
)

// Checker is the interaction lookup consumed by the schedule engine.
type Checker interface {
	// Check returns known interactions among the given medications.
	Check(ctx context.Context, medicationIDs []uuid.UUID) ([]domain.Interaction, error)
}

// Config holds interaction service client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

const defaultTimeout = 5 * time.Second

// Client is the HTTP implementation of Checker.
type Client struct {
	baseURL    string
	apiKey     string
	enabled    bool
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates an interaction service client. With an empty base URL the
// client is disabled and every lookup reports the service as unavailable,
// which the engine treats as an empty interaction set.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	enabled := cfg.BaseURL != ""
	if !enabled {
		logger.Warn().Msg("interaction service not configured, schedules will carry no interaction data")
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type checkRequest struct {
	MedicationIDs []uuid.UUID `json:"medication_ids"`
}

type checkResponse struct {
	Interactions []domain.Interaction `json:"interactions"`
}

func (c *Client) Check(ctx context.Context, medicationIDs []uuid.UUID) ([]domain.Interaction, error) {
	if !c.enabled {
		return nil, domain.ErrInteractionUnavailable
	}
	if len(medicationIDs) < 2 {
		return nil, nil
	}

	body, err := json.Marshal(checkRequest{MedicationIDs: medicationIDs})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	url := c.baseURL + "/v1/interactions/check"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("interaction lookup failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrInteractionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("interaction lookup rejected")
		return nil, fmt.Errorf("%w: status %d", domain.ErrInteractionUnavailable, resp.StatusCode)
	}

	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrInteractionUnavailable, err)
	}
	return out.Interactions, nil
}

// Static is a fixed-answer Checker for seeding and tests.
type Static struct {
	Interactions []domain.Interaction
	Err          error
}

func (s *Static) Check(_ context.Context, _ []uuid.UUID) ([]domain.Interaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Interactions, nil
}
