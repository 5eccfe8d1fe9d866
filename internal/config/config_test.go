package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
sources:
  http_timeout: 5s
  stackexchange:
    site: "gis"
scoring:
  location_boost: 0.75
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Sources.HTTPTimeout != 5*time.Second {
		t.Errorf("http_timeout = %v, want 5s", cfg.Sources.HTTPTimeout)
	}
	if cfg.Scoring.LocationBoost != 0.75 {
		t.Errorf("location_boost = %v", cfg.Scoring.LocationBoost)
	}
	if cfg.Scoring.TermHitWeight != 2.0 {
		t.Errorf("unset scoring weights should default, got %v", cfg.Scoring.TermHitWeight)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_explicitZeroScoringKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
scoring:
  qa_location_bonus: 0
  model_bonus: 0.4
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scoring.QALocationBonus != 0 {
		t.Errorf("qa_location_bonus = %v, want 0", cfg.Scoring.QALocationBonus)
	}
	if cfg.Scoring.ModelBonus != 0.4 {
		t.Errorf("model_bonus = %v, want 0.4", cfg.Scoring.ModelBonus)
	}
	if cfg.Scoring.LocationBoost != 0.5 || cfg.Scoring.BonusItemCap != 5 {
		t.Errorf("omitted scoring keys should keep defaults, got %+v", cfg.Scoring)
	}
}

func TestLoad_debugTrue(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadOrDefault_missingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port == 0 || cfg.Search.DefaultMaxResults != 10 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Sources.HTTPTimeout != 20*time.Second {
		t.Errorf("default http_timeout: got %v", cfg.Sources.HTTPTimeout)
	}
	if cfg.Sources.EnrichmentConcurrency != 5 {
		t.Errorf("default enrichment_concurrency: got %d", cfg.Sources.EnrichmentConcurrency)
	}
	if cfg.Sources.StackExchange.Site != "stackoverflow" {
		t.Errorf("default site: got %s", cfg.Sources.StackExchange.Site)
	}
	if cfg.Search.DefaultMaxResults != 10 || cfg.Search.MaxResultsLimit != 100 || cfg.Search.MaxTerms != 20 {
		t.Errorf("search defaults: got %+v", cfg.Search)
	}
	if cfg.Papers.DefaultLimit != 20 || cfg.Papers.MaxLimit != 100 {
		t.Errorf("papers defaults: got %+v", cfg.Papers)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "*" {
		t.Errorf("cors default: got %v", cfg.Server.CORSAllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	ApplyEnv(cfg, envMap(map[string]string{
		"GITHUB_TOKEN":         "gh-secret",
		"STACKEXCHANGE_SITE":   "datascience",
		"KAGGLE_USERNAME":      "kuser",
		"KAGGLE_KEY":           "kkey",
		"LLM_BASE_URL":         "https://llm.example.com/v1",
		"LLM_API_KEY":          "sk-test",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example ,",
		"PORT":                 "7071",
	}))
	if cfg.Sources.GitHub.Token != "gh-secret" {
		t.Errorf("token: got %q", cfg.Sources.GitHub.Token)
	}
	if cfg.Sources.StackExchange.Site != "datascience" {
		t.Errorf("site: got %q", cfg.Sources.StackExchange.Site)
	}
	if !cfg.Sources.Kaggle.Active() {
		t.Error("kaggle should be active with credentials")
	}
	if !cfg.LLM.Configured() {
		t.Error("llm should be configured")
	}
	if got := cfg.Server.CORSAllowedOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("origins: got %v", got)
	}
	if cfg.Server.Port != 7071 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
}

func TestApplyEnv_invalidPortIgnored(t *testing.T) {
	cfg := Default()
	ApplyEnv(cfg, envMap(map[string]string{"PORT": "http"}))
	if cfg.Server.Port != 8080 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
}

func TestKaggleActive(t *testing.T) {
	off := false
	tests := []struct {
		name string
		cfg  KaggleConfig
		want bool
	}{
		{"no credentials", KaggleConfig{}, false},
		{"username only", KaggleConfig{Username: "u"}, false},
		{"both", KaggleConfig{Username: "u", Key: "k"}, true},
		{"disabled explicitly", KaggleConfig{Enabled: &off, Username: "u", Key: "k"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnabledOrDefault(t *testing.T) {
	t.Run("nil_returns_true", func(t *testing.T) {
		if !EnabledOrDefault(nil) {
			t.Error("want true")
		}
	})
	t.Run("false_returns_false", func(t *testing.T) {
		f := false
		if EnabledOrDefault(&f) {
			t.Error("want false")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"concurrency too high", func(c *Config) { c.Sources.EnrichmentConcurrency = 11 }},
		{"negative timeout", func(c *Config) { c.Sources.HTTPTimeout = -time.Second }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"default above limit", func(c *Config) { c.Search.DefaultMaxResults = 500 }},
		{"paper default above limit", func(c *Config) { c.Papers.DefaultLimit = 500 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}

	cfg := Default()
	cfg.Scoring.GitHubRepoBonus = -0.1
	if err := cfg.Validate(); err == nil {
		t.Error("negative scoring weight should fail")
	}
}
