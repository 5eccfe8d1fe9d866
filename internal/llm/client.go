// Package llm talks to an OpenAI-compatible completion endpoint and turns its free-text
// answers into idea evaluations and generated ideas.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/config"
)

// stopWords end a completion that starts echoing the prompt sections back.
var stopWords = []string{"SYSTEM:", "TASK:", "OUTPUT"}

// Client issues single-prompt completions.
type Client struct {
	model  llms.Model
	cfg    config.LLMConfig
	logger *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLanguageModel uses m instead of building an OpenAI client from config.
func WithLanguageModel(m llms.Model) Option {
	return func(c *Client) {
		c.model = m
	}
}

// NewClient builds a client from cfg. An unconfigured endpoint is not an error here;
// every call on the client returns ErrNotConfigured instead.
func NewClient(cfg config.LLMConfig, opts ...Option) (*Client, error) {
	c := &Client{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.model != nil || !cfg.Configured() {
		return c, nil
	}

	clientOpts := []openai.Option{
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.Model != "" {
		clientOpts = append(clientOpts, openai.WithModel(cfg.Model))
	}
	model, err := openai.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	c.model = model
	return c, nil
}

// Configured reports whether Complete can reach a model.
func (c *Client) Configured() bool {
	return c.model != nil
}

// Complete sends prompt and returns the raw completion. A non-empty modelID overrides
// the configured model for this call.
func (c *Client) Complete(ctx context.Context, prompt, modelID string) (string, error) {
	if c.model == nil {
		return "", ErrNotConfigured
	}

	callOpts := []llms.CallOption{
		llms.WithTemperature(c.cfg.Temperature),
		llms.WithStopWords(stopWords),
	}
	if c.cfg.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(c.cfg.MaxTokens))
	}
	if modelID != "" {
		callOpts = append(callOpts, llms.WithModel(modelID))
	}

	start := time.Now()
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("llm completion: %w", err)
	}
	c.logger.Debug("llm completion",
		zap.String("model", modelID),
		zap.Int("chars", len(out)),
		zap.Duration("took", time.Since(start)))
	return out, nil
}
