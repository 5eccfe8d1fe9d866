package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{"direct object", `{"a": 1}`, map[string]any{"a": float64(1)}},
		{"direct array", `[1, 2]`, []any{float64(1), float64(2)}},
		{"fenced json", "Here you go:\n```json\n{\"a\": true}\n```\nthanks", map[string]any{"a": true}},
		{"fenced upper case tag", "```JSON\n{\"a\": \"b\"}\n```", map[string]any{"a": "b"}},
		{"fenced without tag", "```\n[\"x\"]\n```", []any{"x"}},
		{"prose around object", `Sure! {"ideas": [{"title": "t"}]} hope that helps`, map[string]any{"ideas": []any{map[string]any{"title": "t"}}}},
		{"nested braces", `result: {"a": {"b": {}}} trailing }`, map[string]any{"a": map[string]any{"b": map[string]any{}}}},
		{"array when object region is invalid", `{not json} then [1]`, []any{float64(1)}},
		{"array only", `values are [3, 4] ok`, []any{float64(3), float64(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	for _, text := range []string{"", "no json here", "{unbalanced", "{bad} [also bad"} {
		_, err := ExtractJSON(text)
		assert.ErrorIs(t, err, ErrNoJSON, "text %q", text)
	}
}
