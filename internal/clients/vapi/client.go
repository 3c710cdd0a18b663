package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voice-agent-server/internal/observability"
)

const (
	// Metadata publishing is best-effort and must not stall the webhook
	// response, so its timeout is short.
	metadataTimeout = 10 * time.Second

	provisioningTimeout = 30 * time.Second
)

// Client is a thin REST client for the Vapi platform API.
type Client struct {
	apiKey  string
	baseURL string
	logger  *observability.Logger
}

// NewClient creates a Vapi API client. The API key may be empty; every
// operation checks for it and degrades rather than panicking.
func NewClient(apiKey string, baseURL string, logger *observability.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		logger:  logger,
	}
}

// UpdateCallMetadata attaches analysis metadata to a completed call so it is
// visible in the Vapi dashboard. Best-effort: returns whether the update
// succeeded and never returns an error. Missing credentials or a sentinel
// call ID short-circuit to false without a network attempt; transport errors
// and non-2xx responses are logged and reported as false, never retried.
func (c *Client) UpdateCallMetadata(ctx context.Context, callID string, metadata map[string]interface{}) bool {
	if c.apiKey == "" {
		c.logger.Warn(ctx, "VAPI_API_KEY not set, cannot update call metadata")
		return false
	}
	if callID == "" || callID == "unknown" {
		c.logger.Warn(ctx, "Invalid call_id, cannot update metadata")
		return false
	}

	// Vapi expects metadata under the 'metadata' field
	payload := map[string]interface{}{
		"metadata": metadata,
	}

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: callID})
	if _, err := c.do(ctx, http.MethodPatch, "/call/"+callID, payload); err != nil {
		c.logger.Error(ctx, "Failed to update call metadata", err)
		return false
	}

	c.logger.Info(ctx, "Updated call with analysis metadata")
	return true
}

// CreateAssistant creates a new assistant resource and returns its ID.
func (c *Client) CreateAssistant(ctx context.Context, definition map[string]interface{}) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/assistant", definition)
	if err != nil {
		return "", fmt.Errorf("failed to create assistant: %w", err)
	}
	return extractID(body)
}

// UpdateAssistant applies the definition to an existing assistant.
func (c *Client) UpdateAssistant(ctx context.Context, assistantID string, definition map[string]interface{}) error {
	if _, err := c.do(ctx, http.MethodPatch, "/assistant/"+assistantID, definition); err != nil {
		return fmt.Errorf("failed to update assistant: %w", err)
	}
	return nil
}

// StructuredOutput is one structured-output resource as listed by the API.
type StructuredOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListStructuredOutputs returns the structured outputs on the account.
func (c *Client) ListStructuredOutputs(ctx context.Context) ([]StructuredOutput, error) {
	body, err := c.do(ctx, http.MethodGet, "/structured-output", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list structured outputs: %w", err)
	}

	// The list endpoint has returned both a bare array and a results wrapper.
	var wrapped struct {
		Results []StructuredOutput `json:"results"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Results != nil {
		return wrapped.Results, nil
	}
	var outputs []StructuredOutput
	if err := json.Unmarshal(body, &outputs); err != nil {
		return nil, fmt.Errorf("failed to decode structured outputs: %w", err)
	}
	return outputs, nil
}

// CreateStructuredOutput creates a structured-output resource and returns its ID.
func (c *Client) CreateStructuredOutput(ctx context.Context, definition map[string]interface{}) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/structured-output", definition)
	if err != nil {
		return "", fmt.Errorf("failed to create structured output: %w", err)
	}
	return extractID(body)
}

// UpdateStructuredOutput applies the definition to an existing structured output.
func (c *Client) UpdateStructuredOutput(ctx context.Context, outputID string, definition map[string]interface{}) error {
	if _, err := c.do(ctx, http.MethodPatch, "/structured-output/"+outputID, definition); err != nil {
		return fmt.Errorf("failed to update structured output: %w", err)
	}
	return nil
}

// AttachStructuredOutput links a structured output to an assistant so Vapi
// runs it after every call.
func (c *Client) AttachStructuredOutput(ctx context.Context, assistantID string, outputID string) error {
	update := map[string]interface{}{
		"artifactPlan": map[string]interface{}{
			"structuredOutputIds": []string{outputID},
		},
	}
	if err := c.UpdateAssistant(ctx, assistantID, update); err != nil {
		return fmt.Errorf("failed to attach structured output: %w", err)
	}
	return nil
}

// CallSummary is the subset of a call record the provisioning tool displays.
type CallSummary struct {
	ID              string                 `json:"id"`
	Status          string                 `json:"status"`
	EndedReason     string                 `json:"endedReason"`
	DurationSeconds float64                `json:"durationSeconds"`
	Cost            float64                `json:"cost"`
	CreatedAt       string                 `json:"createdAt"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// ListCalls returns the most recent calls on the account.
func (c *Client) ListCalls(ctx context.Context, limit int) ([]CallSummary, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/call?limit=%d", limit), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}

	var calls []CallSummary
	if err := json.Unmarshal(body, &calls); err != nil {
		return nil, fmt.Errorf("failed to decode calls: %w", err)
	}
	return calls, nil
}

// do issues one authenticated request and returns the response body.
// Non-2xx responses are returned as errors carrying the response text.
func (c *Client) do(ctx context.Context, method string, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: provisioningTimeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("vapi api error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func extractID(body []byte) (string, error) {
	var resource struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resource); err != nil {
		return "", fmt.Errorf("failed to decode resource: %w", err)
	}
	if resource.ID == "" {
		return "", fmt.Errorf("response missing resource id")
	}
	return resource.ID, nil
}
