// Package config provides configuration loading and structs for the ideaworks server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/ideaworks/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                  `yaml:"debug"`
	Server  ServerConfig          `yaml:"server"`
	Sources SourcesConfig         `yaml:"sources"`
	Scoring ranking.ScoringConfig `yaml:"scoring"`
	Search  SearchConfig          `yaml:"search"`
	Papers  PapersConfig          `yaml:"papers"`
	LLM     LLMConfig             `yaml:"llm"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
}

// SourcesConfig holds settings shared by the source adapters plus one block per source.
type SourcesConfig struct {
	HTTPTimeout           time.Duration        `yaml:"http_timeout"`
	EnrichmentConcurrency int                  `yaml:"enrichment_concurrency"`
	GitHub                GitHubConfig         `yaml:"github"`
	StackExchange         StackExchangeConfig  `yaml:"stackexchange"`
	HuggingFace           HuggingFaceConfig    `yaml:"huggingface"`
	PapersWithCode        PapersWithCodeConfig `yaml:"paperswithcode"`
	Kaggle                KaggleConfig         `yaml:"kaggle"`
}

// GitHubConfig configures the code-hosting adapter.
type GitHubConfig struct {
	Enabled *bool  `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// StackExchangeConfig configures the Q&A-site adapter.
type StackExchangeConfig struct {
	Enabled *bool  `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Site    string `yaml:"site"`
	Key     string `yaml:"key"`
}

// HuggingFaceConfig configures the model-hub adapter.
type HuggingFaceConfig struct {
	Enabled *bool  `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// PapersWithCodeConfig configures the paper-index adapter.
type PapersWithCodeConfig struct {
	Enabled *bool  `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
}

// KaggleConfig configures the dataset-hub adapter. It is active only when both
// Username and Key are set.
type KaggleConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Key      string `yaml:"key"`
}

// SearchConfig bounds the collaborator query.
type SearchConfig struct {
	DefaultMaxResults int `yaml:"default_max_results"`
	MaxResultsLimit   int `yaml:"max_results_limit"`
	MaxTerms          int `yaml:"max_terms"`
}

// PapersConfig holds research-paper search settings.
type PapersConfig struct {
	DefaultLimit    int    `yaml:"default_limit"`
	MaxLimit        int    `yaml:"max_limit"`
	UserAgent       string `yaml:"user_agent"`
	CrossrefBaseURL string `yaml:"crossref_base_url"`
	ArxivBaseURL    string `yaml:"arxiv_base_url"`
}

// LLMConfig holds settings for the OpenAI-compatible completion endpoint.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Configured reports whether the LLM endpoint can be called.
func (c *LLMConfig) Configured() bool {
	return c.BaseURL != "" && c.APIKey != ""
}

// EnabledOrDefault returns *enabled, or true when unset.
func EnabledOrDefault(enabled *bool) bool {
	if enabled != nil {
		return *enabled
	}
	return true
}

// Active reports whether the dataset-hub adapter should run.
func (k *KaggleConfig) Active() bool {
	return EnabledOrDefault(k.Enabled) && k.Username != "" && k.Key != ""
}

// Load reads and parses the config file at path, applies defaults, and overlays
// environment secrets. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := newConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(cfg)
	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg = Default()
	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}

// Default returns a config with every default applied and no environment overlay.
func Default() *Config {
	cfg := newConfig()
	ApplyDefaults(cfg)
	return cfg
}

// newConfig seeds the scoring section before decoding, so omitted scoring keys keep
// their defaults and an explicit 0 stays 0.
func newConfig() *Config {
	return &Config{Scoring: *ranking.DefaultScoringConfig()}
}

// Validate rejects settings that cannot be served. Call after ApplyDefaults.
func (c *Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d", ErrInvalidConfig, c.Server.Port)
	}
	if c.Sources.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: sources.http_timeout must be positive", ErrInvalidConfig)
	}
	if c.Sources.EnrichmentConcurrency < 1 || c.Sources.EnrichmentConcurrency > MaxEnrichmentConcurrency {
		return fmt.Errorf("%w: sources.enrichment_concurrency must be between 1 and %d, got %d",
			ErrInvalidConfig, MaxEnrichmentConcurrency, c.Sources.EnrichmentConcurrency)
	}
	if c.Search.DefaultMaxResults > c.Search.MaxResultsLimit {
		return fmt.Errorf("%w: search.default_max_results exceeds max_results_limit", ErrInvalidConfig)
	}
	if c.Papers.DefaultLimit > c.Papers.MaxLimit {
		return fmt.Errorf("%w: papers.default_limit exceeds max_limit", ErrInvalidConfig)
	}
	return nil
}
