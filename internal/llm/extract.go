package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRegex = regexp.MustCompile("(?is)```(?:json)?\n(.*?)```")

// ExtractJSON pulls the first JSON value out of model output. It tries the whole text,
// then the first fenced code block, then the first balanced {...} and finally the
// first balanced [...] region.
func ExtractJSON(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v, nil
	}

	if m := fenceRegex.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &v); err == nil {
			return v, nil
		}
	}

	for _, pair := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		if region, ok := balanced(text, pair[0], pair[1]); ok {
			if err := json.Unmarshal([]byte(region), &v); err == nil {
				return v, nil
			}
		}
	}
	return nil, ErrNoJSON
}

// balanced returns the region from the first opener up to the closer that brings the
// nesting depth back to zero. Brackets inside strings are not special.
func balanced(text string, opener, closer byte) (string, bool) {
	start := strings.IndexByte(text, opener)
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
