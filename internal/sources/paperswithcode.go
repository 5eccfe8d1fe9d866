package sources

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/internal/ranking"
	"github.com/hyperjump/ideaworks/internal/terms"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

const (
	pwcSearchTerms    = 6
	pwcMaxPageSize    = 50
	pwcAuthorsPerPage = 3
	pwcAuthorSearch   = "https://paperswithcode.com/search?q_author="
)

// PapersWithCode emits one candidate per (paper, author) pair for the first three
// authors of each matching paper.
type PapersWithCode struct {
	getter  fetch.Getter
	baseURL string
}

// NewPapersWithCode creates the paper-index adapter.
func NewPapersWithCode(getter fetch.Getter, cfg config.PapersWithCodeConfig) *PapersWithCode {
	return &PapersWithCode{
		getter:  getter,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Name implements Source.
func (p *PapersWithCode) Name() models.SourceKind {
	return models.SourcePaperIndex
}

type pwcPaper struct {
	Title      string            `json:"title"`
	URLAbs     string            `json:"url_abs"`
	Authors    []json.RawMessage `json:"authors"`
	Repository *struct {
		URL string `json:"url"`
	} `json:"repository"`
}

type pwcPapersResponse struct {
	Results []pwcPaper `json:"results"`
}

type pwcAuthor struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url"`
}

// parseAuthor accepts either a bare name or an object with name and profile_url.
func parseAuthor(raw json.RawMessage) pwcAuthor {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return pwcAuthor{Name: name}
	}
	var a pwcAuthor
	_ = json.Unmarshal(raw, &a)
	return a
}

// Search implements Source.
func (p *PapersWithCode) Search(ctx context.Context, req SearchRequest) ([]*models.Candidate, error) {
	raw, err := p.getter.GetJSON(ctx, p.baseURL+"/papers/",
		fetch.WithQuery("q", strings.Join(terms.Head(req.Terms, pwcSearchTerms), " ")),
		fetch.WithQuery("page_size", strconv.Itoa(req.pageSize(2, pwcMaxPageSize))),
	)
	if err != nil {
		return nil, err
	}
	var resp pwcPapersResponse
	if err := decode(p.Name(), raw, &resp); err != nil {
		return nil, err
	}

	cfg := req.scoring()
	var out []*models.Candidate
	for _, paper := range resp.Results {
		var repoURL string
		if paper.Repository != nil {
			repoURL = paper.Repository.URL
		}
		ref := models.PaperRef{
			Title: paper.Title,
			URL:   utils.StringPtr(paper.URLAbs),
			Repo:  utils.StringPtr(repoURL),
		}

		authors := paper.Authors
		if len(authors) > pwcAuthorsPerPage {
			authors = authors[:pwcAuthorsPerPage]
		}
		for _, rawAuthor := range authors {
			a := parseAuthor(rawAuthor)
			if strings.TrimSpace(a.Name) == "" {
				continue
			}
			score := ranking.ScoreText(paper.Title+" "+a.Name, req.Terms, cfg)
			if repoURL != "" {
				score += cfg.PaperRepoBonus
			}
			out = append(out, &models.Candidate{
				Source:     p.Name(),
				Name:       utils.StringPtr(a.Name),
				ProfileURL: utils.StringPtr(utils.FirstNonEmpty(a.ProfileURL, pwcAuthorSearch+url.QueryEscape(a.Name))),
				Evidence:   models.PaperIndexEvidence{Paper: ref},
				Score:      score,
			})
		}
	}
	return out, nil
}
