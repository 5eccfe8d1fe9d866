// Package sources adapts five external capabilities (code hosting, a Q&A site, a model
// hub, a paper index and a dataset hub) into scored collaborator candidates.
package sources

import (
	"context"
	"encoding/json"

	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/internal/ranking"
)

// PerSourceCap bounds the page size requested from the code-hosting and Q&A sources.
const PerSourceCap = 20

// SearchRequest is the input every adapter receives.
type SearchRequest struct {
	Terms      []string
	Location   string
	MaxResults int
	Scoring    *ranking.ScoringConfig
}

func (r SearchRequest) scoring() *ranking.ScoringConfig {
	if r.Scoring == nil {
		return ranking.DefaultScoringConfig()
	}
	return r.Scoring
}

// pageSize returns min(limit, factor*MaxResults), at least 1.
func (r SearchRequest) pageSize(factor, limit int) int {
	n := factor * r.MaxResults
	if n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Source turns a term list into candidates from one external capability. A returned
// error means the source contributed nothing; callers log it and carry on.
type Source interface {
	Name() models.SourceKind
	Search(ctx context.Context, req SearchRequest) ([]*models.Candidate, error)
}

func decode(source models.SourceKind, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fetch.Malformed(source.String(), err)
	}
	return nil
}
