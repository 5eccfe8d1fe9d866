// Package ranking scores candidate text against search terms and merges, deduplicates
// and ranks candidates from every source.
package ranking

import (
	"strings"
)

// ScoreText rewards each non-empty term once for containment and again per
// occurrence: a single hit scores TermHitWeight + OccurrenceWeight (2.5 by default).
// Matching is case-insensitive and occurrences do not overlap. Empty text scores 0.
func ScoreText(text string, terms []string, cfg *ScoringConfig) float64 {
	if text == "" {
		return 0
	}
	if cfg == nil {
		cfg = DefaultScoringConfig()
	}
	lower := strings.ToLower(text)
	score := 0.0
	for _, term := range terms {
		if term == "" {
			continue
		}
		term = strings.ToLower(term)
		n := strings.Count(lower, term)
		if n > 0 {
			score += cfg.TermHitWeight
		}
		score += float64(n) * cfg.OccurrenceWeight
	}
	return score
}

// ItemBonus returns min(count, BonusItemCap) * perItem.
func ItemBonus(count int, perItem float64, cfg *ScoringConfig) float64 {
	if cfg == nil {
		cfg = DefaultScoringConfig()
	}
	if count > cfg.BonusItemCap {
		count = cfg.BonusItemCap
	}
	if count < 0 {
		count = 0
	}
	return float64(count) * perItem
}

// LocationMatches reports whether want is a case-insensitive substring of have.
// An empty want never matches.
func LocationMatches(have, want string) bool {
	if want == "" || have == "" {
		return false
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}
