package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms/fake"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/models"
)

func fakeClient(t *testing.T, replies ...string) *Client {
	t.Helper()
	c, err := NewClient(config.LLMConfig{}, WithLanguageModel(fake.NewFakeLLM(replies)))
	require.NoError(t, err)
	return c
}

func TestScoreIdeas(t *testing.T) {
	reply := "Here is my evaluation:\n```json\n" + `{"evaluations": [
		{"idea": "a", "feasibility": 4, "impact": 3, "rationale": "r", "key_risks": ["x"], "next_step": "n"},
		{"idea": "b", "feasibility": 3, "impact": 2},
		{"idea": "c", "feasibility": 3, "impact": 2}
	]}` + "\n```"
	c := fakeClient(t, reply)

	resp, err := c.ScoreIdeas(context.Background(), &models.ScoreIdeasRequest{Ideas: []string{"a", "b", "c"}})
	require.NoError(t, err)
	require.Len(t, resp.Evaluations, 3)
	assert.Equal(t, []string{"x"}, resp.Evaluations[0].KeyRisks)
	require.NotNil(t, resp.Summary.AvgFeasibility)
	assert.Equal(t, 3.33, *resp.Summary.AvgFeasibility)
	assert.Equal(t, 2.33, *resp.Summary.AvgImpact)
}

func TestScoreIdeas_EmptyEvaluations(t *testing.T) {
	c := fakeClient(t, `{"evaluations": []}`)

	resp, err := c.ScoreIdeas(context.Background(), &models.ScoreIdeasRequest{Ideas: []string{"a"}})
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"evaluations": [], "summary": {"avg_feasibility": null, "avg_impact": null}}`, string(data))
}

func TestScoreIdeas_BadOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"missing key", `{"results": []}`, "missing 'evaluations'"},
		{"no json", "I cannot help with that.", ErrNoJSON.Error()},
		{"not an object", `[1, 2]`, "not a JSON object"},
		{"wrong item shape", `{"evaluations": ["a", "b"]}`, "cannot unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fakeClient(t, tt.reply)
			_, err := c.ScoreIdeas(context.Background(), &models.ScoreIdeasRequest{Ideas: []string{"a"}})

			var outErr *OutputError
			require.True(t, errors.As(err, &outErr), "got %v", err)
			assert.Equal(t, tt.reply, outErr.Raw)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "Failed to parse model output")
		})
	}
}

func TestScoreIdeas_Validation(t *testing.T) {
	c := fakeClient(t, `{}`)
	for _, ideas := range [][]string{nil, {"ok", "  "}} {
		_, err := c.ScoreIdeas(context.Background(), &models.ScoreIdeasRequest{Ideas: ideas})
		assert.ErrorIs(t, err, models.ErrInvalidQuery)
	}
}

func TestScoreIdeas_NotConfigured(t *testing.T) {
	c, err := NewClient(config.LLMConfig{})
	require.NoError(t, err)
	_, err = c.ScoreIdeas(context.Background(), &models.ScoreIdeasRequest{Ideas: []string{"a"}})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestEvaluatorPrompt(t *testing.T) {
	p := evaluatorPrompt([]string{"smart parking", `say "hi"`})
	assert.Contains(t, p, `IDEAS: ["smart parking","say \"hi\""]`)
	assert.Contains(t, p, "evaluations")
}
