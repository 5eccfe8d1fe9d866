// Package models defines the request, candidate, and response types shared by the
// collaborator, paper, and idea endpoints.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SourceKind identifies the external capability a candidate was surfaced by.
type SourceKind string

const (
	SourceCodeHosting SourceKind = "code-hosting"
	SourceQASite      SourceKind = "qa-site"
	SourceModelHub    SourceKind = "model-hub"
	SourcePaperIndex  SourceKind = "paper-index"
	SourceDatasetHub  SourceKind = "dataset-hub"
)

// AllSourceKinds lists every source kind in registry order.
var AllSourceKinds = []SourceKind{
	SourceCodeHosting,
	SourceQASite,
	SourceModelHub,
	SourcePaperIndex,
	SourceDatasetHub,
}

// String returns the wire name of the source kind.
func (k SourceKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known source kinds.
func (k SourceKind) Valid() bool {
	for _, s := range AllSourceKinds {
		if s == k {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects unknown source names.
func (k *SourceKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind := SourceKind(strings.ToLower(s))
	if !kind.Valid() {
		return fmt.Errorf("unknown source kind %q", s)
	}
	*k = kind
	return nil
}

// Candidate is one person or account surfaced by a source. Nullable fields are nil
// when the source does not expose them and serialize as JSON null.
type Candidate struct {
	Source      SourceKind `json:"source"`
	Name        *string    `json:"name"`
	Username    *string    `json:"username"`
	ProfileURL  *string    `json:"profile_url"`
	PublicEmail *string    `json:"public_email"`
	Blog        *string    `json:"blog"`
	Location    *string    `json:"location"`
	Company     *string    `json:"company"`
	Evidence    any        `json:"evidence"`
	Score       float64    `json:"score"`
}

// DedupKey is the identity used to merge duplicates: lowercased profile URL and
// username, each empty when absent.
func (c *Candidate) DedupKey() string {
	var url, user string
	if c.ProfileURL != nil {
		url = strings.ToLower(*c.ProfileURL)
	}
	if c.Username != nil {
		user = strings.ToLower(*c.Username)
	}
	return url + "|" + user
}

// RepoEvidence is a code-hosting repository backing a candidate.
type RepoEvidence struct {
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	Stars    int     `json:"stars"`
	Language *string `json:"language"`
}

// CodeHostingEvidence lists the account's top repositories by stars.
type CodeHostingEvidence struct {
	TopRepos []RepoEvidence `json:"top_repos"`
}

// QASiteEvidence lists the account's top tags.
type QASiteEvidence struct {
	TopTags []string `json:"top_tags"`
}

// ModelEvidence is one model-hub listing entry.
type ModelEvidence struct {
	Model     string `json:"model"`
	Likes     int    `json:"likes"`
	Downloads int    `json:"downloads"`
	URL       string `json:"url"`
}

// ModelHubEvidence lists up to five models published by the author.
type ModelHubEvidence struct {
	TopModels []ModelEvidence `json:"top_models"`
}

// PaperRef is the paper a paper-index candidate was matched through.
type PaperRef struct {
	Title string  `json:"title"`
	URL   *string `json:"url"`
	Repo  *string `json:"repo"`
}

// PaperIndexEvidence wraps the matched paper.
type PaperIndexEvidence struct {
	Paper PaperRef `json:"paper"`
}

// DatasetRef is one dataset owned by a dataset-hub candidate.
type DatasetRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DatasetHubEvidence lists up to five datasets owned by the candidate.
type DatasetHubEvidence struct {
	Datasets []DatasetRef `json:"datasets"`
}
