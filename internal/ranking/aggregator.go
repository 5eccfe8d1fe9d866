package ranking

import (
	"sort"

	"github.com/hyperjump/ideaworks/internal/models"
)

// ApplyLocationBoost adds LocationBoost once to every candidate whose location
// contains location (case-insensitive). It is independent of any boost a source
// applied on its own, so the two stack.
func ApplyLocationBoost(candidates []*models.Candidate, location string, cfg *ScoringConfig) {
	if location == "" {
		return
	}
	if cfg == nil {
		cfg = DefaultScoringConfig()
	}
	for _, c := range candidates {
		if c == nil || c.Location == nil {
			continue
		}
		if LocationMatches(*c.Location, location) {
			c.Score += cfg.LocationBoost
		}
	}
}

// Dedupe keeps the highest-scored candidate per DedupKey. Exact ties keep the one
// seen first. Output preserves the order in which keys were first seen.
func Dedupe(candidates []*models.Candidate) []*models.Candidate {
	index := make(map[string]int, len(candidates))
	out := make([]*models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		key := c.DedupKey()
		if i, ok := index[key]; ok {
			if c.Score > out[i].Score {
				out[i] = c
			}
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}

// Clip sorts by score descending (stable for ties) and returns at most limit entries.
// A non-positive limit returns every candidate.
func Clip(candidates []*models.Candidate, limit int) []*models.Candidate {
	sorted := make([]*models.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Aggregate applies the location boost, deduplicates, ranks and clips. It never fails;
// missing identity fields key as empty strings.
func Aggregate(candidates []*models.Candidate, location string, limit int, cfg *ScoringConfig) []*models.Candidate {
	ApplyLocationBoost(candidates, location, cfg)
	return Clip(Dedupe(candidates), limit)
}
