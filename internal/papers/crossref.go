package papers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

type crossrefResponse struct {
	Message struct {
		TotalResults int            `json:"total-results"`
		Items        []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefDate struct {
	DateParts [][]*int `json:"date-parts"`
}

func (d *crossrefDate) year() *int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return nil
	}
	return d.DateParts[0][0]
}

type crossrefItem struct {
	DOI            string   `json:"DOI"`
	URL            string   `json:"URL"`
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	Publisher      string   `json:"publisher"`
	Abstract       string   `json:"abstract"`
	Author         []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
		Name   string `json:"name"`
	} `json:"author"`
	PublishedPrint  *crossrefDate `json:"published-print"`
	PublishedOnline *crossrefDate `json:"published-online"`
	Issued          *crossrefDate `json:"issued"`
	Link            []struct {
		URL         string `json:"URL"`
		ContentType string `json:"content-type"`
	} `json:"link"`
}

func (s *Searcher) crossref(ctx context.Context, q *models.PaperQuery) (*batch, error) {
	raw, err := s.getter.GetJSON(ctx, s.crossrefURL+"/works",
		fetch.WithQuery("query", q.Query),
		fetch.WithQuery("rows", strconv.Itoa(q.Limit)),
		fetch.WithQuery("offset", strconv.Itoa(q.Offset)),
		fetch.WithQuery("sort", "published"),
		fetch.WithQuery("order", "desc"),
		fetch.WithUserAgent(s.userAgent),
	)
	if err != nil {
		return nil, err
	}
	var resp crossrefResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fetch.Malformed("crossref", err)
	}

	results := make([]*models.Paper, 0, len(resp.Message.Items))
	for _, it := range resp.Message.Items {
		results = append(results, crossrefPaper(it))
	}
	total := resp.Message.TotalResults
	return &batch{total: &total, results: results}, nil
}

func crossrefPaper(it crossrefItem) *models.Paper {
	authors := make([]string, 0, len(it.Author))
	for _, a := range it.Author {
		full := strings.TrimSpace(a.Given + " " + a.Family)
		if full == "" {
			full = a.Name
		}
		if full != "" {
			authors = append(authors, full)
		}
	}

	date := it.PublishedPrint
	if date == nil {
		date = it.PublishedOnline
	}
	if date == nil {
		date = it.Issued
	}

	var pdfURL string
	for _, l := range it.Link {
		ct := strings.ToLower(l.ContentType)
		if ct == "application/pdf" || ct == "pdf" {
			pdfURL = l.URL
			break
		}
	}

	var title, venue string
	if len(it.Title) > 0 {
		title = it.Title[0]
	}
	if len(it.ContainerTitle) > 0 {
		venue = it.ContainerTitle[0]
	}

	return &models.Paper{
		Source:       string(models.PaperSourceCrossref),
		ID:           utils.FirstNonEmpty(it.DOI, it.URL),
		Title:        title,
		Authors:      authors,
		Venue:        utils.StringPtr(venue),
		Publisher:    utils.StringPtr(it.Publisher),
		Year:         date.year(),
		DOI:          utils.StringPtr(it.DOI),
		URL:          utils.StringPtr(it.URL),
		PDFURL:       utils.StringPtr(pdfURL),
		Abstract:     utils.StringPtr(stripMarkup(it.Abstract)),
		IsOpenAccess: pdfURL != "",
	}
}

// stripMarkup removes JATS/HTML tags and collapses whitespace.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
