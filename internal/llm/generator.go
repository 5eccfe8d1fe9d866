package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/hyperjump/ideaworks/internal/models"
)

// DefaultIdeaCount is used when the request asks for zero or fewer ideas.
const DefaultIdeaCount = 5

// GenerateIdeas asks the model for ideas about a topic grounded in the given text. The
// result holds at most NIdeas ideas.
func (c *Client) GenerateIdeas(ctx context.Context, req *models.GenerateIdeasRequest) (*models.GenerateIdeasResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	text := strings.TrimSpace(req.Text)
	if topic == "" || text == "" {
		return nil, models.NewValidationError("'topic' and 'text' are required")
	}
	n := req.NIdeas
	if n <= 0 {
		n = DefaultIdeaCount
	}

	raw, err := c.Complete(ctx, generatorPrompt(topic, text, n), req.ModelID)
	if err != nil {
		return nil, err
	}

	obj, err := extractObject(raw)
	if err != nil {
		return nil, err
	}
	field, ok := obj["ideas"]
	if !ok {
		return nil, &OutputError{Err: errors.New("model output missing 'ideas'"), Raw: raw}
	}

	ideas := []models.GeneratedIdea{}
	if field != nil {
		if err := remarshal(field, &ideas); err != nil {
			return nil, &OutputError{Err: err, Raw: raw}
		}
	}
	if len(ideas) > n {
		ideas = ideas[:n]
	}

	resp := &models.GenerateIdeasResponse{Topic: topic, Ideas: ideas}
	if echoed, ok := obj["topic"].(string); ok && echoed != "" {
		resp.Topic = echoed
	}
	return resp, nil
}
