package config

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// MaxEnrichmentConcurrency caps outbound enrichment calls in flight per adapter.
const MaxEnrichmentConcurrency = 10

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 90 * time.Second
	}
	if cfg.Server.CORSAllowedOrigins == nil {
		cfg.Server.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.Sources.HTTPTimeout == 0 {
		cfg.Sources.HTTPTimeout = 20 * time.Second
	}
	if cfg.Sources.EnrichmentConcurrency == 0 {
		cfg.Sources.EnrichmentConcurrency = 5
	}
	if cfg.Sources.GitHub.BaseURL == "" {
		cfg.Sources.GitHub.BaseURL = "https://api.github.com"
	}
	if cfg.Sources.StackExchange.BaseURL == "" {
		cfg.Sources.StackExchange.BaseURL = "https://api.stackexchange.com/2.3"
	}
	if cfg.Sources.StackExchange.Site == "" {
		cfg.Sources.StackExchange.Site = "stackoverflow"
	}
	if cfg.Sources.HuggingFace.BaseURL == "" {
		cfg.Sources.HuggingFace.BaseURL = "https://huggingface.co"
	}
	if cfg.Sources.PapersWithCode.BaseURL == "" {
		cfg.Sources.PapersWithCode.BaseURL = "https://paperswithcode.com/api/v1"
	}
	if cfg.Sources.Kaggle.BaseURL == "" {
		cfg.Sources.Kaggle.BaseURL = "https://www.kaggle.com/api/v1"
	}

	if cfg.Search.DefaultMaxResults == 0 {
		cfg.Search.DefaultMaxResults = 10
	}
	if cfg.Search.MaxResultsLimit == 0 {
		cfg.Search.MaxResultsLimit = 100
	}
	if cfg.Search.MaxTerms == 0 {
		cfg.Search.MaxTerms = 20
	}

	if cfg.Papers.DefaultLimit == 0 {
		cfg.Papers.DefaultLimit = 20
	}
	if cfg.Papers.MaxLimit == 0 {
		cfg.Papers.MaxLimit = 100
	}
	if cfg.Papers.UserAgent == "" {
		cfg.Papers.UserAgent = "ideaworks/1.0 (mailto:you@example.com)"
	}
	if cfg.Papers.CrossrefBaseURL == "" {
		cfg.Papers.CrossrefBaseURL = "https://api.crossref.org"
	}
	if cfg.Papers.ArxivBaseURL == "" {
		cfg.Papers.ArxivBaseURL = "https://export.arxiv.org/api"
	}

	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 1024
	}
}

// ApplyEnv overlays secrets and deployment settings from the environment. Set
// variables win over the file.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Sources.GitHub.Token, "GITHUB_TOKEN")
	set(&cfg.Sources.StackExchange.Key, "STACKEXCHANGE_KEY")
	set(&cfg.Sources.StackExchange.Site, "STACKEXCHANGE_SITE")
	set(&cfg.Sources.HuggingFace.Token, "HF_TOKEN")
	set(&cfg.Sources.Kaggle.Username, "KAGGLE_USERNAME")
	set(&cfg.Sources.Kaggle.Key, "KAGGLE_KEY")
	set(&cfg.LLM.APIKey, "LLM_API_KEY")
	set(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	set(&cfg.LLM.Model, "LLM_MODEL")
	set(&cfg.Papers.UserAgent, "CROSSREF_UA")

	if v := strings.TrimSpace(getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.Server.CORSAllowedOrigins = origins
		}
	}
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
}
