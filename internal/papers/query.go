package papers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hyperjump/ideaworks/internal/models"
)

// Limits bounds the page size of a paper search.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

func (l Limits) withDefaults() Limits {
	if l.DefaultLimit <= 0 {
		l.DefaultLimit = 20
	}
	if l.MaxLimit <= 0 {
		l.MaxLimit = 100
	}
	return l
}

// ParseQuery reads q (or query), source, limit and offset from URL parameters.
// limit is clamped to [1, MaxLimit] and offset to >= 0. Source defaults to crossref.
func ParseQuery(params url.Values, limits Limits) (*models.PaperQuery, error) {
	limits = limits.withDefaults()

	q := strings.TrimSpace(params.Get("q"))
	if q == "" {
		q = strings.TrimSpace(params.Get("query"))
	}
	if q == "" {
		return nil, models.NewValidationError(missingQueryMessage)
	}

	source := models.PaperSource(strings.ToLower(strings.TrimSpace(params.Get("source"))))
	if source == "" {
		source = models.PaperSourceCrossref
	}
	switch source {
	case models.PaperSourceCrossref, models.PaperSourceArxiv, models.PaperSourceBoth, models.PaperSourceAll:
	default:
		return nil, models.NewValidationError(unknownSourceMessage)
	}

	limit := limits.DefaultLimit
	if v := strings.TrimSpace(params.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, models.NewValidationError(limitMessage)
		}
		limit = n
	}
	limit = max(1, min(limit, limits.MaxLimit))

	offset := 0
	if v := strings.TrimSpace(params.Get("offset")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, models.NewValidationError(offsetMessage)
		}
		offset = max(0, n)
	}

	return &models.PaperQuery{Query: q, Source: source, Limit: limit, Offset: offset}, nil
}
