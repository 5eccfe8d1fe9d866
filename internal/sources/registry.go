package sources

import (
	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
)

// Registry builds the enabled adapters in their fixed order: code hosting, Q&A site,
// model hub, paper index, dataset hub. The dataset hub is included only when its
// credentials are configured.
func Registry(cfg *config.SourcesConfig, getter fetch.Getter, pool *Pool, logger *zap.Logger) []Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	var out []Source
	if config.EnabledOrDefault(cfg.GitHub.Enabled) {
		out = append(out, NewGitHub(getter, cfg.GitHub, pool, logger.Named("github")))
	}
	if config.EnabledOrDefault(cfg.StackExchange.Enabled) {
		out = append(out, NewStackExchange(getter, cfg.StackExchange, pool, logger.Named("stackexchange")))
	}
	if config.EnabledOrDefault(cfg.HuggingFace.Enabled) {
		out = append(out, NewHuggingFace(getter, cfg.HuggingFace))
	}
	if config.EnabledOrDefault(cfg.PapersWithCode.Enabled) {
		out = append(out, NewPapersWithCode(getter, cfg.PapersWithCode))
	}
	if cfg.Kaggle.Active() {
		out = append(out, NewKaggle(getter, cfg.Kaggle))
	} else {
		logger.Debug("dataset hub disabled: credentials not configured")
	}
	return out
}
