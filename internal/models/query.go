package models

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

// Defaults for the collaborator query when the caller omits max_results.
const (
	DefaultMaxResults = 10
	MaxResultsLimit   = 100
)

// CollaboratorQuery is a validated collaborator-suggestion request.
type CollaboratorQuery struct {
	Ideas      []string `json:"ideas"`
	Keywords   []string `json:"keywords,omitempty"`
	Location   string   `json:"location,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
}

// QueryLimits bounds max_results during decoding.
type QueryLimits struct {
	DefaultMaxResults int
	MaxResultsLimit   int
}

func (l QueryLimits) withDefaults() QueryLimits {
	if l.DefaultMaxResults <= 0 {
		l.DefaultMaxResults = DefaultMaxResults
	}
	if l.MaxResultsLimit <= 0 {
		l.MaxResultsLimit = MaxResultsLimit
	}
	return l
}

type rawCollaboratorQuery struct {
	Ideas      json.RawMessage `json:"ideas"`
	Keywords   json.RawMessage `json:"keywords"`
	Location   json.RawMessage `json:"location"`
	MaxResults json.RawMessage `json:"max_results"`
}

// DecodeCollaboratorQuery reads a JSON body and validates its shape. Every returned
// error is a *ValidationError.
func DecodeCollaboratorQuery(r io.Reader, limits QueryLimits) (*CollaboratorQuery, error) {
	limits = limits.withDefaults()

	var raw rawCollaboratorQuery
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, invalid("Invalid JSON body")
	}

	ideas, err := decodeIdeas(raw.Ideas)
	if err != nil {
		return nil, err
	}
	keywords, err := decodeKeywords(raw.Keywords)
	if err != nil {
		return nil, err
	}
	location, err := decodeLocation(raw.Location)
	if err != nil {
		return nil, err
	}
	maxResults, err := decodeMaxResults(raw.MaxResults, limits)
	if err != nil {
		return nil, err
	}

	return &CollaboratorQuery{
		Ideas:      ideas,
		Keywords:   keywords,
		Location:   location,
		MaxResults: maxResults,
	}, nil
}

// Validate checks a query built in code (e.g. by the CLI) and applies defaults.
func (q *CollaboratorQuery) Validate(limits QueryLimits) error {
	limits = limits.withDefaults()
	if len(q.Ideas) == 0 {
		return invalid(ideasMessage)
	}
	for _, idea := range q.Ideas {
		if strings.TrimSpace(idea) == "" {
			return invalid(ideasMessage)
		}
	}
	if q.MaxResults < 0 {
		return invalid(maxResultsMessage)
	}
	if q.MaxResults == 0 {
		q.MaxResults = limits.DefaultMaxResults
	}
	if q.MaxResults > limits.MaxResultsLimit {
		q.MaxResults = limits.MaxResultsLimit
	}
	q.Location = strings.TrimSpace(q.Location)
	return nil
}

const (
	ideasMessage      = "'ideas' must be a non-empty list of strings"
	keywordsMessage   = "'keywords' must be a list of strings"
	locationMessage   = "'location' must be a string"
	maxResultsMessage = "'max_results' must be a positive integer"
)

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeIdeas(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, invalid(ideasMessage)
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, invalid(ideasMessage)
	}
	ideas := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, invalid(ideasMessage)
		}
		ideas = append(ideas, s)
	}
	return ideas, nil
}

// decodeKeywords accepts a list and silently drops non-string entries.
func decodeKeywords(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, invalid(keywordsMessage)
	}
	keywords := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			keywords = append(keywords, s)
		}
	}
	return keywords, nil
}

func decodeLocation(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", invalid(locationMessage)
	}
	return strings.TrimSpace(s), nil
}

// decodeMaxResults treats absent, null and zero as the default. Integral floats and
// numeric strings are accepted; values over the limit are clamped.
func decodeMaxResults(raw json.RawMessage, limits QueryLimits) (int, error) {
	if isNull(raw) {
		return limits.DefaultMaxResults, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, invalid(maxResultsMessage)
	}
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, invalid(maxResultsMessage)
		}
		n = float64(parsed)
	default:
		return 0, invalid(maxResultsMessage)
	}
	if n != math.Trunc(n) || n < 0 {
		return 0, invalid(maxResultsMessage)
	}
	if n == 0 {
		return limits.DefaultMaxResults, nil
	}
	if n > float64(limits.MaxResultsLimit) {
		return limits.MaxResultsLimit, nil
	}
	return int(n), nil
}
