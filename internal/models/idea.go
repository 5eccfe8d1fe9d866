package models

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

// ScoreIdeasRequest asks the model to rate feasibility and impact of each idea.
type ScoreIdeasRequest struct {
	Ideas   []string `json:"ideas"`
	ModelID string   `json:"model_id,omitempty"`
}

// Evaluation is one model-produced rating. Scores are 0-5.
type Evaluation struct {
	Idea        string   `json:"idea"`
	Feasibility float64  `json:"feasibility"`
	Impact      float64  `json:"impact"`
	Rationale   string   `json:"rationale"`
	KeyRisks    []string `json:"key_risks"`
	NextStep    string   `json:"next_step"`
}

// EvaluationSummary averages the scores, rounded to two decimals. Nil when there
// are no evaluations.
type EvaluationSummary struct {
	AvgFeasibility *float64 `json:"avg_feasibility"`
	AvgImpact      *float64 `json:"avg_impact"`
}

// ScoreIdeasResponse is the evaluator payload.
type ScoreIdeasResponse struct {
	Evaluations []Evaluation      `json:"evaluations"`
	Summary     EvaluationSummary `json:"summary"`
}

// GenerateIdeasRequest asks the model for n ideas about a topic grounded in text.
type GenerateIdeasRequest struct {
	Topic   string `json:"topic"`
	Text    string `json:"text"`
	NIdeas  int    `json:"n_ideas,omitempty"`
	ModelID string `json:"model_id,omitempty"`
}

// GeneratedIdea is one idea from the generator.
type GeneratedIdea struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	FirstStep string `json:"first_step"`
}

// GenerateIdeasResponse is the generator payload.
type GenerateIdeasResponse struct {
	Topic string          `json:"topic"`
	Ideas []GeneratedIdea `json:"ideas"`
}

const (
	topicTextMessage = "'topic' and 'text' are required"
	nIdeasMessage    = "'n_ideas' must be an integer"
	modelIDMessage   = "'model_id' must be a string"
)

// DecodeScoreIdeasRequest reads an evaluator request body. Every returned error is a
// *ValidationError.
func DecodeScoreIdeasRequest(r io.Reader) (*ScoreIdeasRequest, error) {
	var raw struct {
		Ideas   json.RawMessage `json:"ideas"`
		ModelID json.RawMessage `json:"model_id"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, invalid("Invalid JSON body")
	}
	ideas, err := decodeIdeas(raw.Ideas)
	if err != nil {
		return nil, err
	}
	modelID, err := decodeModelID(raw.ModelID)
	if err != nil {
		return nil, err
	}
	return &ScoreIdeasRequest{Ideas: ideas, ModelID: modelID}, nil
}

// DecodeGenerateIdeasRequest reads a generator request body. A missing, null or zero
// n_ideas is left at zero for the generator to default.
func DecodeGenerateIdeasRequest(r io.Reader) (*GenerateIdeasRequest, error) {
	var raw struct {
		Topic   json.RawMessage `json:"topic"`
		Text    json.RawMessage `json:"text"`
		NIdeas  json.RawMessage `json:"n_ideas"`
		ModelID json.RawMessage `json:"model_id"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, invalid("Invalid JSON body")
	}

	var topic, text string
	if !isNull(raw.Topic) && json.Unmarshal(raw.Topic, &topic) != nil {
		return nil, invalid(topicTextMessage)
	}
	if !isNull(raw.Text) && json.Unmarshal(raw.Text, &text) != nil {
		return nil, invalid(topicTextMessage)
	}
	topic, text = strings.TrimSpace(topic), strings.TrimSpace(text)
	if topic == "" || text == "" {
		return nil, invalid(topicTextMessage)
	}

	n, err := decodeCount(raw.NIdeas)
	if err != nil {
		return nil, err
	}
	modelID, err := decodeModelID(raw.ModelID)
	if err != nil {
		return nil, err
	}
	return &GenerateIdeasRequest{Topic: topic, Text: text, NIdeas: n, ModelID: modelID}, nil
}

func decodeModelID(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", invalid(modelIDMessage)
	}
	return strings.TrimSpace(s), nil
}

func decodeCount(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, invalid(nIdeasMessage)
	}
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) {
			return 0, invalid(nIdeasMessage)
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, invalid(nIdeasMessage)
		}
		return n, nil
	}
	return 0, invalid(nIdeasMessage)
}
