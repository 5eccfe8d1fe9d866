package models

// SuggestMeta echoes the derived search terms and the requested location.
type SuggestMeta struct {
	QueryTerms []string `json:"query_terms"`
	Location   *string  `json:"location"`
}

// SuggestResponse is the collaborator-suggestion payload. Candidates is never nil
// so it always serializes as an array.
type SuggestResponse struct {
	Candidates []*Candidate `json:"candidates"`
	Meta       SuggestMeta  `json:"meta"`
}
