// Package papers searches research papers on Crossref and arXiv and normalizes them
// into one record shape.
package papers

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
)

// Searcher runs paper searches against the configured backends.
type Searcher struct {
	getter      fetch.Getter
	crossrefURL string
	arxivURL    string
	userAgent   string
	limits      Limits
	logger      *zap.Logger
}

// NewSearcher creates a Searcher from the papers config section.
func NewSearcher(getter fetch.Getter, cfg config.PapersConfig, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{
		getter:      getter,
		crossrefURL: strings.TrimRight(cfg.CrossrefBaseURL, "/"),
		arxivURL:    strings.TrimRight(cfg.ArxivBaseURL, "/"),
		userAgent:   cfg.UserAgent,
		limits:      Limits{DefaultLimit: cfg.DefaultLimit, MaxLimit: cfg.MaxLimit},
		logger:      logger,
	}
}

// Limits returns the page-size bounds used when parsing queries.
func (s *Searcher) Limits() Limits {
	return s.limits
}

type batch struct {
	total   *int
	results []*models.Paper
}

// Search runs q. Backend failures come back as *UpstreamError (non-2xx) or
// *UnexpectedError (anything else).
func (s *Searcher) Search(ctx context.Context, q *models.PaperQuery) (*models.PaperSearchResponse, error) {
	var (
		b   *batch
		err error
	)
	switch q.Source {
	case models.PaperSourceArxiv:
		b, err = s.arxiv(ctx, q)
	case models.PaperSourceCrossref:
		b, err = s.crossref(ctx, q)
	case models.PaperSourceBoth, models.PaperSourceAll:
		b, err = s.both(ctx, q)
	default:
		return nil, models.NewValidationError(unknownSourceMessage)
	}
	if err != nil {
		s.logger.Warn("paper search failed",
			zap.String("source", string(q.Source)),
			zap.Error(err),
		)
		return nil, s.classify(q.Source, err)
	}

	return &models.PaperSearchResponse{
		Total:   b.total,
		Count:   len(b.results),
		Offset:  q.Offset,
		Results: b.results,
		Query:   q.Query,
		Source:  q.Source,
	}, nil
}

// both queries arXiv and Crossref concurrently and merges arXiv first, dropping
// repeats of the same (title, url) and trimming to the limit.
func (s *Searcher) both(ctx context.Context, q *models.PaperQuery) (*batch, error) {
	var a, c *batch
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		a, err = s.arxiv(egCtx, q)
		return err
	})
	eg.Go(func() error {
		var err error
		c, err = s.crossref(egCtx, q)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	type key struct{ title, url string }
	seen := make(map[key]struct{})
	merged := make([]*models.Paper, 0, len(a.results)+len(c.results))
	for _, p := range append(a.results, c.results...) {
		k := key{title: strings.ToLower(strings.TrimSpace(p.Title))}
		if p.URL != nil {
			k.url = *p.URL
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, p)
	}
	if len(merged) > q.Limit {
		merged = merged[:q.Limit]
	}
	return &batch{results: merged}, nil
}

func (s *Searcher) classify(source models.PaperSource, err error) error {
	var upErr *fetch.UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode != 0 {
		return &UpstreamError{Source: string(source), StatusCode: upErr.StatusCode, Body: upErr.Body}
	}
	return &UnexpectedError{Err: err}
}
