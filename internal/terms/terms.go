// Package terms turns free-text ideas and keywords into a bounded list of search
// terms with synonym expansion.
package terms

import (
	"regexp"
	"strings"
)

// MaxTerms caps the number of terms Extract returns.
const MaxTerms = 20

// MinTermLength is the shortest token kept.
const MinTermLength = 2

// Stopwords are dropped before expansion. Matching is case-insensitive.
var Stopwords = map[string]struct{}{
	"and": {}, "or": {}, "for": {}, "the": {}, "a": {}, "an": {}, "to": {}, "of": {},
	"on": {}, "in": {}, "with": {}, "by": {}, "from": {}, "at": {}, "into": {},
	"over": {}, "under": {}, "across": {},
}

// synonyms maps a lower-cased token to the expansions emitted right after it.
var synonyms = map[string][]string{
	"llm":        {"large language model"},
	"rag":        {"retrieval augmented generation"},
	"geospatial": {"geopandas", "openstreetmap", "osmnx", "mapbox"},
	"gis":        {"geopandas", "openstreetmap", "osmnx", "mapbox"},
	"langchain":  {"chatbot"},
}

var (
	// Anything that is not a letter, digit, underscore, whitespace, or one of - + /.
	punctRegex    = regexp.MustCompile(`[^\p{L}\p{N}\p{Mn}_\s\-+/]`)
	compoundRegex = regexp.MustCompile(`[-/+]`)
)

// Synonyms returns the expansions for token, or nil.
func Synonyms(token string) []string {
	exp := synonyms[strings.ToLower(token)]
	if exp == nil {
		return nil
	}
	out := make([]string, len(exp))
	copy(out, exp)
	return out
}

// IsStopword reports whether token is in Stopwords.
func IsStopword(token string) bool {
	_, ok := Stopwords[strings.ToLower(token)]
	return ok
}

// Extract tokenizes ideas then keywords, drops short tokens and stopwords, expands
// synonyms in place, deduplicates case-insensitively keeping the first spelling and
// truncates to MaxTerms. Tokens keep their original case.
func Extract(ideas, keywords []string) []string {
	var tokens []string
	for _, s := range ideas {
		tokens = append(tokens, tokenize(s)...)
	}
	for _, s := range keywords {
		tokens = append(tokens, tokenize(s)...)
	}

	expanded := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		expanded = append(expanded, tok)
		expanded = append(expanded, Synonyms(tok)...)
	}

	seen := make(map[string]struct{}, len(expanded))
	out := make([]string, 0, MaxTerms)
	for _, t := range expanded {
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
		if len(out) == MaxTerms {
			break
		}
	}
	return out
}

func tokenize(s string) []string {
	s = punctRegex.ReplaceAllString(s, " ")
	var out []string
	for _, word := range strings.Fields(s) {
		for _, part := range compoundRegex.Split(word, -1) {
			part = strings.TrimSpace(part)
			if len([]rune(part)) < MinTermLength || IsStopword(part) {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

// Qualifying returns up to max terms of at least minLen characters, in order.
// A non-positive max means no cap.
func Qualifying(terms []string, minLen, max int) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if len([]rune(t)) < minLen {
			continue
		}
		out = append(out, t)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// Head returns the first n terms, or all of them when there are fewer.
func Head(terms []string, n int) []string {
	if n < 0 || len(terms) <= n {
		return terms
	}
	return terms[:n]
}
