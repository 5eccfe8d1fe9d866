package ranking

// ScoringConfig holds every heuristic constant used by the scorer, the source
// adapters, and the aggregator. Scales are per source and intentionally not normalized.
// A zero field is a real zero: it turns that weight or bonus off. Start from
// DefaultScoringConfig to keep the defaults.
type ScoringConfig struct {
	// Text match weights
	TermHitWeight    float64 `yaml:"term_hit_weight"`   // default: 2.0, once per contained term
	OccurrenceWeight float64 `yaml:"occurrence_weight"` // default: 0.5, per occurrence

	// Source bonuses
	BonusItemCap    int     `yaml:"bonus_item_cap"`    // default: 5
	GitHubRepoBonus float64 `yaml:"github_repo_bonus"` // default: 0.3 per repository
	QALocationBonus float64 `yaml:"qa_location_bonus"` // default: 1.0
	ModelBonus      float64 `yaml:"model_bonus"`       // default: 0.2 per model
	PaperRepoBonus  float64 `yaml:"paper_repo_bonus"`  // default: 1.0 when a code link exists
	DatasetBonus    float64 `yaml:"dataset_bonus"`     // default: 0.3 per dataset

	// Aggregation
	LocationBoost float64 `yaml:"location_boost"` // default: 0.5
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		TermHitWeight:    2.0,
		OccurrenceWeight: 0.5,

		BonusItemCap:    5,
		GitHubRepoBonus: 0.3,
		QALocationBonus: 1.0,
		ModelBonus:      0.2,
		PaperRepoBonus:  1.0,
		DatasetBonus:    0.3,

		LocationBoost: 0.5,
	}
}

// Validate rejects negative weights and a negative item cap.
func (c *ScoringConfig) Validate() error {
	weights := map[string]float64{
		"term_hit_weight":   c.TermHitWeight,
		"occurrence_weight": c.OccurrenceWeight,
		"github_repo_bonus": c.GitHubRepoBonus,
		"qa_location_bonus": c.QALocationBonus,
		"model_bonus":       c.ModelBonus,
		"paper_repo_bonus":  c.PaperRepoBonus,
		"dataset_bonus":     c.DatasetBonus,
		"location_boost":    c.LocationBoost,
	}
	for name, w := range weights {
		if w < 0 {
			return &InvalidWeightError{Name: name, Value: w}
		}
	}
	if c.BonusItemCap < 0 {
		return &InvalidWeightError{Name: "bonus_item_cap", Value: float64(c.BonusItemCap)}
	}
	return nil
}

// Clone returns an independent copy.
func (c *ScoringConfig) Clone() *ScoringConfig {
	cp := *c
	return &cp
}
