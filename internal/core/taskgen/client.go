// Package taskgen adapts the external text-generation service for checklist
// use: prompt construction, bounded retry, failure classification and output
// normalization.
package taskgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	// MaxPromptLen bounds user prompts before any request is made.
	MaxPromptLen = 2000

	// DefaultBaseURL is the production generation endpoint root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1"
	// DefaultModel is the model used when config does not override it.
	DefaultModel = "gemini-pro"
	// DefaultMaxRetries bounds retries for transient failures.
	DefaultMaxRetries = 3

	defaultTimeout       = 30 * time.Second
	retryBaseInterval    = time.Second
	defaultTemperature   = 0.7
	defaultMaxOutputToks = 1024
)

const systemPrompt = `You are a helpful assistant that generates checklist tasks.
Given a user's description, generate 5-8 specific, actionable tasks.
Return ONLY the tasks, one per line, without any introduction or conclusion.
Do not include numbering or bullet points - just the task text.`

// Generator is the contract the service layer consumes. Each call returns
// the raw response text; normalization is the caller's concern.
type Generator interface {
	// Generate drafts candidate tasks for a natural-language request.
	Generate(ctx context.Context, prompt string) (string, error)
	// Rewrite rephrases a single task title to be clearer and actionable.
	Rewrite(ctx context.Context, title string) (string, error)
	// BreakDown drafts sub-steps for a task, one per line.
	BreakDown(ctx context.Context, title string) (string, error)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int

	// RetryInterval overrides the base backoff interval; tests shrink it.
	RetryInterval time.Duration
}

// Client calls a generateContent-style HTTP API with bounded exponential
// retry on transient failures. A slow or failed generation never touches
// checklist state; that separation lives in the service layer.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpc      *http.Client
	maxRetries int
	retryBase  time.Duration
	log        zerolog.Logger
}

var _ Generator = (*Client)(nil)

// NewClient creates a generation client. Zero-value options fall back to
// package defaults.
func NewClient(opts ClientOptions, log zerolog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = retryBaseInterval
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		model:      opts.Model,
		apiKey:     opts.APIKey,
		httpc:      &http.Client{Timeout: opts.Timeout},
		maxRetries: opts.MaxRetries,
		retryBase:  opts.RetryInterval,
		log:        log.With().Str("component", "taskgen").Logger(),
	}
}

// Generate drafts candidate tasks for the given user request.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	if len(prompt) > MaxPromptLen {
		return "", &Error{Category: CategoryUnknown, Message: fmt.Sprintf("prompt too long: maximum %d characters", MaxPromptLen)}
	}

	full := fmt.Sprintf("%s\n\nUser request: %s\n\nTasks:", systemPrompt, prompt)
	return c.generateWithRetry(ctx, full)
}

// Rewrite rephrases a task title. Surrounding quotes in the answer are
// stripped.
func (c *Client) Rewrite(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyPrompt
	}

	prompt := fmt.Sprintf("Rewrite this task to be clearer and more actionable (respond with ONLY the rewritten task, no numbering or bullets): %q", title)
	text, err := c.generateWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	return strings.Trim(strings.TrimSpace(text), `"'`), nil
}

// BreakDown drafts 3-5 sub-steps for a task, one per line.
func (c *Client) BreakDown(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyPrompt
	}

	prompt := fmt.Sprintf("Break down this task into 3-5 specific sub-steps (respond with one sub-step per line, no numbering or bullets): %q", title)
	return c.generateWithRetry(ctx, prompt)
}

func (c *Client) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	var text string

	operation := func() error {
		result, err := c.generateOnce(ctx, prompt)
		if err != nil {
			var genErr *Error
			if errors.As(err, &genErr) && !genErr.retryable() {
				return backoff.Permanent(err)
			}
			c.log.Debug().Err(err).Msg("generation attempt failed, will retry")
			return err
		}
		text = result
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryBase

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx))
	if err != nil {
		return "", err
	}

	return text, nil
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []contentPart `json:"parts"`
}

type contentPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Parts: []contentPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxOutputToks,
		},
	})
	if err != nil {
		return "", &Error{Category: CategoryUnknown, Message: err.Error()}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Category: CategoryUnknown, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", &Error{Category: CategoryTransient, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Category: CategoryTransient, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, data)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &Error{Category: CategoryUnknown, Message: fmt.Sprintf("decode response: %s", err)}
	}
	if parsed.Error != nil {
		return "", classifyStatus(parsed.Error.Code, data)
	}

	text := ""
	if len(parsed.Candidates) > 0 && len(parsed.Candidates[0].Content.Parts) > 0 {
		text = parsed.Candidates[0].Content.Parts[0].Text
	}
	if strings.TrimSpace(text) == "" {
		return "", &Error{Category: CategoryEmpty, Message: "service returned no text"}
	}

	return text, nil
}

func classifyStatus(status int, body []byte) *Error {
	msg := apiMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}

	switch {
	case status == http.StatusTooManyRequests:
		return &Error{Category: CategoryRateLimited, Message: msg}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Category: CategoryInvalidKey, Message: msg}
	case status >= 500:
		return &Error{Category: CategoryTransient, Message: msg}
	default:
		return &Error{Category: CategoryUnknown, Message: msg}
	}
}

func apiMessage(body []byte) string {
	var parsed struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == nil {
		return ""
	}
	return parsed.Error.Message
}
