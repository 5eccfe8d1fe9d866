// Package collab runs the collaborator-suggestion pipeline: term extraction, fan-out
// to every source, and aggregation.
package collab

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/internal/ranking"
	"github.com/hyperjump/ideaworks/internal/sources"
	"github.com/hyperjump/ideaworks/internal/terms"
)

// Finder suggests collaborators for a validated query.
type Finder struct {
	sources  []sources.Source
	scoring  atomic.Pointer[ranking.ScoringConfig]
	maxTerms int
	logger   *zap.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Finder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMaxTerms lowers the number of search terms passed to sources below terms.MaxTerms.
func WithMaxTerms(n int) Option {
	return func(f *Finder) { f.maxTerms = n }
}

// NewFinder creates a Finder over srcs, queried in the given order. A nil scoring
// uses the defaults.
func NewFinder(srcs []sources.Source, scoring *ranking.ScoringConfig, opts ...Option) *Finder {
	f := &Finder{
		sources:  srcs,
		maxTerms: terms.MaxTerms,
		logger:   zap.NewNop(),
	}
	f.SetScoring(scoring)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetScoring swaps the scoring constants used by requests that start afterwards.
// cfg is copied as is; nil means the defaults.
func (f *Finder) SetScoring(cfg *ranking.ScoringConfig) {
	if cfg == nil {
		cfg = ranking.DefaultScoringConfig()
	} else {
		cfg = cfg.Clone()
	}
	f.scoring.Store(cfg)
}

// Scoring returns the current scoring constants.
func (f *Finder) Scoring() *ranking.ScoringConfig {
	return f.scoring.Load()
}

// Sources lists the active source kinds in query order.
func (f *Finder) Sources() []models.SourceKind {
	out := make([]models.SourceKind, len(f.sources))
	for i, s := range f.sources {
		out[i] = s.Name()
	}
	return out
}

// Suggest never fails: a source that errors or panics is logged and contributes
// nothing. Candidates is always non-nil.
func (f *Finder) Suggest(ctx context.Context, q *models.CollaboratorQuery) *models.SuggestResponse {
	scoring := f.scoring.Load()

	searchTerms := terms.Extract(q.Ideas, q.Keywords)
	if f.maxTerms > 0 && len(searchTerms) > f.maxTerms {
		searchTerms = searchTerms[:f.maxTerms]
	}
	req := sources.SearchRequest{
		Terms:      searchTerms,
		Location:   q.Location,
		MaxResults: q.MaxResults,
		Scoring:    scoring,
	}

	perSource := make([][]*models.Candidate, len(f.sources))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, src := range f.sources {
		eg.Go(func() error {
			perSource[i] = f.search(egCtx, src, req)
			return nil
		})
	}
	_ = eg.Wait()

	var all []*models.Candidate
	for _, cands := range perSource {
		all = append(all, cands...)
	}

	var location *string
	if q.Location != "" {
		loc := q.Location
		location = &loc
	}
	return &models.SuggestResponse{
		Candidates: ranking.Aggregate(all, q.Location, q.MaxResults, scoring),
		Meta: models.SuggestMeta{
			QueryTerms: searchTerms,
			Location:   location,
		},
	}
}

func (f *Finder) search(ctx context.Context, src sources.Source, req sources.SearchRequest) (out []*models.Candidate) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("source panicked, skipping",
				zap.String("source", src.Name().String()),
				zap.String("panic", fmt.Sprint(r)),
			)
			out = nil
		}
	}()

	cands, err := src.Search(ctx, req)
	if err != nil {
		f.logger.Warn("source failed, skipping",
			zap.String("source", src.Name().String()),
			zap.Duration("took", time.Since(start)),
			zap.Error(err),
		)
		return nil
	}
	f.logger.Debug("source searched",
		zap.String("source", src.Name().String()),
		zap.Int("candidates", len(cands)),
		zap.Duration("took", time.Since(start)),
	)
	return cands
}
