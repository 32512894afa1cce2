// Package llm implements a scoring.TextGenerator backed by the Anthropic
// Messages API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

const (
	// ClaudeAPIEndpoint is the Anthropic API endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeModel is the default model.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeAPIVersion is the API version.
	ClaudeAPIVersion = "2023-06-01"

	// DefaultMaxTokens caps the response length.
	DefaultMaxTokens = 500
	// DefaultTemperature keeps the prose close to the factors.
	DefaultTemperature = 0.3
	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 30 * time.Second
)

const systemPrompt = "You are an expert automotive risk analyst. Generate a JSON response with vehicle risk assessment. " +
	"Be concise and professional. Always return valid JSON only."

// ErrMissingAPIKey is returned by NewClient when no key is configured.
var ErrMissingAPIKey = errors.New("anthropic API key is required; set ANTHROPIC_API_KEY")

// Options configures a Client. Zero values select the defaults.
type Options struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client represents a Claude API client.
type Client struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	endpoint    string
}

var _ scoring.TextGenerator = (*Client)(nil)

// NewClient creates a new Claude API client. It fails when no API key is set.
func NewClient(opts Options) (client *Client, err error) {
	if opts.APIKey == "" {
		err = ErrMissingAPIKey
		return client, err
	}
	if opts.Model == "" {
		opts.Model = ClaudeModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client = &Client{
		apiKey:      opts.APIKey,
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		endpoint:    ClaudeAPIEndpoint,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
	return client, err
}

// Model returns the model name used for requests.
func (c *Client) Model() string {
	return c.model
}

// Generate asks Claude for a summary and reasoning for the computed factors.
// Every failure is reported as a *scoring.GenerationError.
func (c *Client) Generate(ctx context.Context, rec vehicle.Record, factors scoring.RiskFactors) (narrative scoring.Narrative, err error) {
	prompt := buildAssessmentPrompt(rec, factors)

	var responseText string
	responseText, err = c.sendRequest(ctx, prompt, c.maxTokens)
	if err != nil {
		err = &scoring.GenerationError{Reason: "assessment request failed", Err: err}
		return narrative, err
	}

	narrative, err = parseNarrative(responseText)
	return narrative, err
}

// Ping sends a minimal request to verify the key and endpoint.
func (c *Client) Ping(ctx context.Context) (err error) {
	_, err = c.sendRequest(ctx, "Reply with the single word OK.", 10)
	if err != nil {
		err = errors.Wrap(err, "connection test failed")
	}
	return err
}

// sendRequest sends a request to Claude API.
func (c *Client) sendRequest(ctx context.Context, prompt string, maxTokens int) (responseText string, err error) {
	claudeReq := ClaudeRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
		System:      systemPrompt,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(claudeReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", ClaudeAPIVersion)

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return responseText, err
	}

	var claudeResp ClaudeResponse
	err = json.Unmarshal(respBody, &claudeResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse Claude response: %s", string(respBody))
		return responseText, err
	}

	if len(claudeResp.Content) == 0 {
		err = errors.New("no content in Claude response")
		return responseText, err
	}

	responseText = claudeResp.Content[0].Text

	return responseText, err
}
