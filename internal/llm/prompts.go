package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const evaluatorDirective = "You rate ideas for technical feasibility and market impact. " +
	"Return strict JSON only. Scores are integers from 0 to 5."

const evaluatorShape = `{"evaluations": [{"idea": "...", "feasibility": 0, "impact": 0, ` +
	`"rationale": "...", "key_risks": ["..."], "next_step": "..."}]}`

const generatorDirective = "You turn source material into concrete, actionable project ideas. " +
	"Return strict JSON only."

const generatorShape = `{"topic": "...", "ideas": [{"title": "...", "summary": "...", "first_step": "..."}]}`

func evaluatorPrompt(ideas []string) string {
	encoded, _ := json.Marshal(ideas)
	var b strings.Builder
	fmt.Fprintf(&b, "SYSTEM:\n%s\n\n", evaluatorDirective)
	b.WriteString("TASK: Evaluate each idea and emit one object per idea in 'evaluations'.\n\n")
	fmt.Fprintf(&b, "IDEAS: %s\n\n", encoded)
	fmt.Fprintf(&b, "OUTPUT FORMAT: a single JSON object shaped like %s\n", evaluatorShape)
	return b.String()
}

func generatorPrompt(topic, text string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SYSTEM:\n%s\n\n", generatorDirective)
	fmt.Fprintf(&b, "TASK: Generate exactly %d ideas about the topic, grounded in the source text.\n\n", n)
	fmt.Fprintf(&b, "TOPIC:\n%s\n\nSOURCE TEXT:\n%s\n\n", topic, text)
	fmt.Fprintf(&b, "OUTPUT FORMAT: a single JSON object shaped like %s\n", generatorShape)
	return b.String()
}
