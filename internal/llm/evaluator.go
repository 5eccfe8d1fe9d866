package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/hyperjump/ideaworks/internal/models"
)

const ideasMessage = "'ideas' must be a non-empty list of strings"

// ScoreIdeas asks the model to rate each idea and attaches average scores.
func (c *Client) ScoreIdeas(ctx context.Context, req *models.ScoreIdeasRequest) (*models.ScoreIdeasResponse, error) {
	if len(req.Ideas) == 0 {
		return nil, models.NewValidationError(ideasMessage)
	}
	for _, idea := range req.Ideas {
		if strings.TrimSpace(idea) == "" {
			return nil, models.NewValidationError(ideasMessage)
		}
	}

	raw, err := c.Complete(ctx, evaluatorPrompt(req.Ideas), req.ModelID)
	if err != nil {
		return nil, err
	}

	obj, err := extractObject(raw)
	if err != nil {
		return nil, err
	}
	field, ok := obj["evaluations"]
	if !ok {
		return nil, &OutputError{Err: errors.New("model output missing 'evaluations'"), Raw: raw}
	}

	evaluations := []models.Evaluation{}
	if field != nil {
		if err := remarshal(field, &evaluations); err != nil {
			return nil, &OutputError{Err: err, Raw: raw}
		}
	}
	return &models.ScoreIdeasResponse{
		Evaluations: evaluations,
		Summary:     summarize(evaluations),
	}, nil
}

func summarize(evaluations []models.Evaluation) models.EvaluationSummary {
	if len(evaluations) == 0 {
		return models.EvaluationSummary{}
	}
	var feasibility, impact float64
	for _, e := range evaluations {
		feasibility += e.Feasibility
		impact += e.Impact
	}
	n := float64(len(evaluations))
	avgFeasibility := round2(feasibility / n)
	avgImpact := round2(impact / n)
	return models.EvaluationSummary{AvgFeasibility: &avgFeasibility, AvgImpact: &avgImpact}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// extractObject salvages JSON from raw and requires it to be an object.
func extractObject(raw string) (map[string]any, error) {
	v, err := ExtractJSON(raw)
	if err != nil {
		return nil, &OutputError{Err: err, Raw: raw}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &OutputError{Err: errors.New("model output is not a JSON object"), Raw: raw}
	}
	return obj, nil
}

// remarshal converts a generic decoded value into a typed one.
func remarshal(v any, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
