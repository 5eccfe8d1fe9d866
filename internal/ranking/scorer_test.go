package ranking

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []string
		want  float64
	}{
		{"single occurrence", "developer tools for RAG", []string{"rag"}, 2.5},
		{"empty text", "", []string{"rag", "llm"}, 0},
		{"empty text no terms", "", nil, 0},
		{"no match", "graph databases", []string{"rag"}, 0},
		{"repeated occurrences", "rag rag rag", []string{"RAG"}, 2.0 + 1.5},
		{"two terms", "LLM chatbot with RAG", []string{"llm", "rag"}, 5.0},
		{"empty term skipped", "rag", []string{"", "rag"}, 2.5},
		{"substring counts", "storage", []string{"rag"}, 2.5},
		{"non-overlapping count", "aaaa", []string{"aa"}, 2.0 + 1.0},
		{"multi-word term", "a large language model lab", []string{"large language model"}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreText(tt.text, tt.terms, DefaultScoringConfig())
			if !almostEqual(got, tt.want) {
				t.Errorf("ScoreText(%q, %v) = %v, want %v", tt.text, tt.terms, got, tt.want)
			}
		})
	}
}

func TestScoreText_NilConfigUsesDefaults(t *testing.T) {
	if got := ScoreText("developer tools for RAG", []string{"rag"}, nil); !almostEqual(got, 2.5) {
		t.Errorf("got %v, want 2.5", got)
	}
}

func TestScoreText_CustomWeights(t *testing.T) {
	cfg := &ScoringConfig{TermHitWeight: 1, OccurrenceWeight: 1}
	if got := ScoreText("go go", []string{"go"}, cfg); !almostEqual(got, 3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestItemBonus(t *testing.T) {
	cfg := DefaultScoringConfig()
	tests := []struct {
		count   int
		perItem float64
		want    float64
	}{
		{0, 0.3, 0},
		{3, 0.3, 0.9},
		{5, 0.3, 1.5},
		{12, 0.3, 1.5},
		{7, 0.2, 1.0},
		{-1, 0.3, 0},
	}
	for _, tt := range tests {
		if got := ItemBonus(tt.count, tt.perItem, cfg); !almostEqual(got, tt.want) {
			t.Errorf("ItemBonus(%d, %v) = %v, want %v", tt.count, tt.perItem, got, tt.want)
		}
	}
}

func TestLocationMatches(t *testing.T) {
	tests := []struct {
		have, want string
		match      bool
	}{
		{"Sofia, Bulgaria", "bulgaria", true},
		{"Sofia, Bulgaria", "BULGARIA", true},
		{"Berlin", "bulgaria", false},
		{"", "bulgaria", false},
		{"Sofia", "", false},
	}
	for _, tt := range tests {
		if got := LocationMatches(tt.have, tt.want); got != tt.match {
			t.Errorf("LocationMatches(%q, %q) = %v, want %v", tt.have, tt.want, got, tt.match)
		}
	}
}
