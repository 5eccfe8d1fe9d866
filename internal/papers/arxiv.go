package papers

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed/atom"

	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

const (
	arxivMaxResults = 100
	arxivVenue      = "arXiv"
)

func (s *Searcher) arxiv(ctx context.Context, q *models.PaperQuery) (*batch, error) {
	body, err := s.getter.Get(ctx, s.arxivURL+"/query",
		fetch.WithQuery("search_query", "all:"+q.Query),
		fetch.WithQuery("start", strconv.Itoa(max(q.Offset, 0))),
		fetch.WithQuery("max_results", strconv.Itoa(min(q.Limit, arxivMaxResults))),
		fetch.WithQuery("sortBy", "submittedDate"),
		fetch.WithQuery("sortOrder", "descending"),
		fetch.WithUserAgent(s.userAgent),
	)
	if err != nil {
		return nil, err
	}

	parser := atom.Parser{}
	feed, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fetch.Malformed("arxiv", err)
	}

	results := make([]*models.Paper, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		results = append(results, arxivPaper(e))
	}
	return &batch{results: results}, nil
}

func arxivPaper(e *atom.Entry) *models.Paper {
	authors := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if a != nil && a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	var htmlURL, pdfURL string
	for _, l := range e.Links {
		if l == nil {
			continue
		}
		if pdfURL == "" && l.Type == "application/pdf" {
			pdfURL = l.Href
		}
		if htmlURL == "" && (l.Rel == "" || l.Rel == "alternate") {
			htmlURL = l.Href
		}
	}

	categories := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		if c != nil && c.Term != "" {
			categories = append(categories, c.Term)
		}
	}

	var year *int
	if e.PublishedParsed != nil {
		y := e.PublishedParsed.Year()
		year = &y
	} else if len(e.Published) >= 4 {
		if y, err := strconv.Atoi(e.Published[:4]); err == nil {
			year = &y
		}
	}

	id := e.ID
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}

	venue := arxivVenue
	return &models.Paper{
		Source:       string(models.PaperSourceArxiv),
		ID:           id,
		Title:        strings.Join(strings.Fields(e.Title), " "),
		Authors:      authors,
		Venue:        &venue,
		Categories:   categories,
		Year:         year,
		DOI:          utils.StringPtr(arxivDOI(e)),
		URL:          utils.StringPtr(htmlURL),
		PDFURL:       utils.StringPtr(pdfURL),
		Abstract:     utils.StringPtr(strings.TrimSpace(e.Summary)),
		IsOpenAccess: true,
	}
}

// arxivDOI reads the optional <arxiv:doi> element.
func arxivDOI(e *atom.Entry) string {
	if e.Extensions == nil {
		return ""
	}
	for _, ext := range e.Extensions["arxiv"]["doi"] {
		if v := strings.TrimSpace(ext.Value); v != "" {
			return v
		}
	}
	return ""
}
