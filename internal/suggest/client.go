package suggest

import (
	"context"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	domainerrors "github.com/pinstackapp/pinstack-server/internal/errors"
	"github.com/pinstackapp/pinstack-server/internal/ratelimit"
)

// Config configures the chat-completion backend.
type Config struct {
	// BaseURL overrides the OpenAI endpoint, e.g. an LM Studio instance at
	// http://localhost:1234/v1. Empty uses the hosted API.
	BaseURL string
	APIKey  string
	Model   string
	// Timeout bounds a single suggestion round trip.
	Timeout time.Duration
	// RPS and Burst throttle outbound calls.
	RPS   float64
	Burst int
}

// Client asks a chat-completion model for placement decisions.
type Client struct {
	api     *openai.Client
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	model   string
	timeout time.Duration
}

// NewClient creates a suggestion client. The model keeps temperature low so
// repeated runs over the same library categorize consistently.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		limiter: ratelimit.New(rps, burst),
		logger:  logger,
		model:   cfg.Model,
		timeout: timeout,
	}
}

// Suggest asks the model where the item belongs. Every failure mode (rate
// limit wait canceled, transport error, empty or unparseable response) maps
// to a suggestion-unavailable error so callers can fall back to leaving the
// item unfiled.
func (c *Client) Suggest(ctx context.Context, req Request) (*Decision, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domainerrors.SuggestionUnavailable("rate limit wait canceled").WithCause(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		c.logger.Warn("suggestion request failed", "error", err)
		return nil, domainerrors.SuggestionUnavailable("model request failed").WithCause(err)
	}
	if len(resp.Choices) == 0 {
		return nil, domainerrors.SuggestionUnavailable("model returned no choices")
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("suggestion response received",
		"model", c.model,
		"finish_reason", resp.Choices[0].FinishReason,
	)

	decision, err := parseDecision(content)
	if err != nil {
		c.logger.Warn("could not parse suggestion response", "error", err)
		return nil, err
	}
	return decision, nil
}
