package papers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
)

type backend struct {
	crossrefStatus int
	arxivStatus    int
}

func newSearcher(t *testing.T, b backend) *Searcher {
	t.Helper()
	crossrefBody, err := os.ReadFile("testdata/crossref.json")
	require.NoError(t, err)
	arxivBody, err := os.ReadFile("testdata/arxiv.xml")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/crossref/works", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "graph neural networks", q.Get("query"))
		assert.Equal(t, "published", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("order"))
		assert.Equal(t, "test-agent (mailto:x@example.com)", r.Header.Get("User-Agent"))
		if b.crossrefStatus != 0 {
			w.WriteHeader(b.crossrefStatus)
			_, _ = w.Write([]byte("crossref is down"))
			return
		}
		_, _ = w.Write(crossrefBody)
	})
	mux.HandleFunc("/arxiv/query", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "all:graph neural networks", q.Get("search_query"))
		assert.Equal(t, "submittedDate", q.Get("sortBy"))
		assert.Equal(t, "descending", q.Get("sortOrder"))
		if b.arxivStatus != 0 {
			w.WriteHeader(b.arxivStatus)
			return
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write(arxivBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewSearcher(fetch.NewClient(2*time.Second), config.PapersConfig{
		CrossrefBaseURL: srv.URL + "/crossref",
		ArxivBaseURL:    srv.URL + "/arxiv/",
		UserAgent:       "test-agent (mailto:x@example.com)",
		DefaultLimit:    20,
		MaxLimit:        100,
	}, nil)
}

func paperQuery(source models.PaperSource, limit, offset int) *models.PaperQuery {
	return &models.PaperQuery{Query: "graph neural networks", Source: source, Limit: limit, Offset: offset}
}

func TestSearch_Crossref(t *testing.T) {
	s := newSearcher(t, backend{})
	resp, err := s.Search(context.Background(), paperQuery(models.PaperSourceCrossref, 20, 5))
	require.NoError(t, err)

	require.NotNil(t, resp.Total)
	assert.Equal(t, 42, *resp.Total)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 5, resp.Offset)
	assert.Equal(t, "graph neural networks", resp.Query)
	assert.Equal(t, models.PaperSourceCrossref, resp.Source)

	p := resp.Results[0]
	assert.Equal(t, "crossref", p.Source)
	assert.Equal(t, "10.1234/abc", p.ID)
	assert.Equal(t, "Deep Learning on Graphs", p.Title)
	assert.Equal(t, []string{"Ada Lovelace", "The GNN Consortium"}, p.Authors)
	assert.Equal(t, "Journal of Graphs", *p.Venue)
	assert.Equal(t, "ACME Press", *p.Publisher)
	require.NotNil(t, p.Year)
	assert.Equal(t, 2021, *p.Year, "published-online wins over issued")
	assert.Equal(t, "https://acme.example/full.pdf", *p.PDFURL)
	assert.True(t, p.IsOpenAccess)
	assert.Equal(t, "Graphs are everywhere. Really.", *p.Abstract)

	second := resp.Results[1]
	assert.Equal(t, "http://dx.doi.org/shared", second.ID, "falls back to URL without a DOI")
	assert.Nil(t, second.DOI)
	assert.Nil(t, second.Year)
	assert.Nil(t, second.PDFURL)
	assert.False(t, second.IsOpenAccess)
	assert.Empty(t, second.Authors)
}

func TestSearch_Arxiv(t *testing.T) {
	s := newSearcher(t, backend{})
	resp, err := s.Search(context.Background(), paperQuery(models.PaperSourceArxiv, 10, 0))
	require.NoError(t, err)

	assert.Nil(t, resp.Total)
	require.Equal(t, 2, resp.Count)
	p := resp.Results[0]
	assert.Equal(t, "arxiv", p.Source)
	assert.Equal(t, "2405.01234v1", p.ID)
	assert.Equal(t, "Graph Neural Networks for Retrieval", p.Title)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, p.Authors)
	assert.Equal(t, "arXiv", *p.Venue)
	assert.Equal(t, []string{"cs.LG", "cs.IR"}, p.Categories)
	assert.Equal(t, 2024, *p.Year)
	assert.Equal(t, "10.1000/xyz123", *p.DOI)
	assert.Equal(t, "http://arxiv.org/abs/2405.01234v1", *p.URL)
	assert.Equal(t, "http://arxiv.org/pdf/2405.01234v1", *p.PDFURL)
	assert.Equal(t, "We study GNNs for retrieval.", *p.Abstract)
	assert.True(t, p.IsOpenAccess)

	assert.Nil(t, resp.Results[1].PDFURL)
	assert.Nil(t, resp.Results[1].DOI)
}

func TestSearch_BothMergesArxivFirstAndDedupes(t *testing.T) {
	s := newSearcher(t, backend{})
	resp, err := s.Search(context.Background(), paperQuery(models.PaperSourceBoth, 20, 0))
	require.NoError(t, err)

	assert.Nil(t, resp.Total)
	require.Equal(t, 3, resp.Count, "the shared (title, url) pair appears once")
	assert.Equal(t, "arxiv", resp.Results[0].Source)
	assert.Equal(t, "arxiv", resp.Results[1].Source)
	assert.Equal(t, "crossref", resp.Results[2].Source)

	resp, err = s.Search(context.Background(), paperQuery(models.PaperSourceAll, 2, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, models.PaperSourceAll, resp.Source)
}

func TestSearch_UpstreamError(t *testing.T) {
	s := newSearcher(t, backend{crossrefStatus: http.StatusServiceUnavailable})
	_, err := s.Search(context.Background(), paperQuery(models.PaperSourceBoth, 20, 0))
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "Upstream error from both: 503 crossref is down", err.Error())
}

func TestSearch_UnexpectedError(t *testing.T) {
	s := NewSearcher(fetch.NewClient(time.Second), config.PapersConfig{
		ArxivBaseURL: "http://127.0.0.1:1",
	}, nil)
	_, err := s.Search(context.Background(), paperQuery(models.PaperSourceArxiv, 5, 0))
	var unexpected *UnexpectedError
	require.True(t, errors.As(err, &unexpected))
	assert.Contains(t, err.Error(), "Unexpected error")
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name       string
		params     string
		wantErr    string
		wantQuery  string
		wantSource models.PaperSource
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "q=gnn", "", "gnn", models.PaperSourceCrossref, 20, 0},
		{"query alias", "query=+gnn+", "", "gnn", models.PaperSourceCrossref, 20, 0},
		{"source case-insensitive", "q=x&source=ArXiv", "", "x", models.PaperSourceArxiv, 20, 0},
		{"limit clamped high", "q=x&limit=500", "", "x", models.PaperSourceCrossref, 100, 0},
		{"limit clamped low", "q=x&limit=0", "", "x", models.PaperSourceCrossref, 1, 0},
		{"negative offset", "q=x&offset=-4", "", "x", models.PaperSourceCrossref, 20, 0},
		{"offset", "q=x&offset=40&source=all", "", "x", models.PaperSourceAll, 20, 40},
		{"missing q", "source=arxiv", missingQueryMessage, "", "", 0, 0},
		{"unknown source", "q=x&source=scholar", unknownSourceMessage, "", "", 0, 0},
		{"bad limit", "q=x&limit=ten", limitMessage, "", "", 0, 0},
		{"bad offset", "q=x&offset=1.5", offsetMessage, "", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.params)
			require.NoError(t, err)
			q, err := ParseQuery(values, Limits{})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrInvalidQuery)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, q.Query)
			assert.Equal(t, tt.wantSource, q.Source)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantOffset, q.Offset)
		})
	}
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "plain text", stripMarkup("  plain \n text "))
	assert.Equal(t, "A b", stripMarkup("<jats:p>A <b>b</b></jats:p>"))
	assert.Equal(t, "", stripMarkup(""))
}
