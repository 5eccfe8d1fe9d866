package main

import (
	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/collab"
	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/llm"
	"github.com/hyperjump/ideaworks/internal/papers"
	"github.com/hyperjump/ideaworks/internal/sources"
)

// components holds the long-lived pieces shared by the server and the one-shot
// commands.
type components struct {
	Finder *collab.Finder
	Papers *papers.Searcher
	LLM    *llm.Client
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	pool := sources.NewPool(cfg.Sources.EnrichmentConcurrency)
	getter := fetch.NewClient(cfg.Sources.HTTPTimeout, fetch.WithDefaultUserAgent("ideaworks/"+version))

	registry := sources.Registry(&cfg.Sources, getter, pool, logger.Named("sources"))
	finder := collab.NewFinder(registry, &cfg.Scoring,
		collab.WithLogger(logger.Named("collab")),
		collab.WithMaxTerms(cfg.Search.MaxTerms),
	)

	llmClient, err := llm.NewClient(cfg.LLM, llm.WithLogger(logger.Named("llm")))
	if err != nil {
		return nil, err
	}

	logger.Debug("components initialized",
		zap.Int("sources", len(registry)),
		zap.Bool("llm_configured", llmClient.Configured()),
	)
	return &components{
		Finder: finder,
		Papers: papers.NewSearcher(getter, cfg.Papers, logger.Named("papers")),
		LLM:    llmClient,
	}, nil
}
