package sources

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/models"
)

func TestPapersWithCode_Search(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/papers/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "retrieval rag", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("page_size"))
		writeRaw(w, `{"results":[
			{"title":"Retrieval for RAG","url_abs":"https://arxiv.org/abs/1","authors":[
				"Ada Lovelace",
				{"name":"Alan Turing","profile_url":"https://paperswithcode.com/author/alan"},
				"",
				"Grace Hopper",
				"Fourth Author"
			],"repository":{"url":"https://github.com/x/rag"}},
			{"title":"Unrelated","url_abs":null,"authors":["Solo Writer"]}
		]}`)
	})
	srv := newTestServer(t, mux)

	pwc := NewPapersWithCode(newTestGetter(), config.PapersWithCodeConfig{BaseURL: srv.URL})
	got, err := pwc.Search(context.Background(), SearchRequest{Terms: []string{"retrieval", "rag"}, MaxResults: 4})
	require.NoError(t, err)
	require.Len(t, got, 3, "first three authors per paper, blank names skipped")

	ada := got[0]
	assert.Equal(t, models.SourcePaperIndex, ada.Source)
	assert.Equal(t, "Ada Lovelace", *ada.Name)
	assert.Nil(t, ada.Username)
	assert.Equal(t, "https://paperswithcode.com/search?q_author=Ada+Lovelace", *ada.ProfileURL)
	// "retrieval" 2.5 + "rag" 2.5 + repository 1.0
	assert.InDelta(t, 6.0, ada.Score, 1e-9)
	ev := ada.Evidence.(models.PaperIndexEvidence)
	assert.Equal(t, "Retrieval for RAG", ev.Paper.Title)
	assert.Equal(t, "https://github.com/x/rag", *ev.Paper.Repo)

	assert.Equal(t, "https://paperswithcode.com/author/alan", *got[1].ProfileURL)

	solo := got[2]
	assert.Equal(t, "Solo Writer", *solo.Name)
	assert.Nil(t, solo.Evidence.(models.PaperIndexEvidence).Paper.URL)
	assert.Nil(t, solo.Evidence.(models.PaperIndexEvidence).Paper.Repo)
	assert.Zero(t, solo.Score)
}

func TestPapersWithCode_PageSizeCap(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/papers/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("page_size"))
		writeRaw(w, `{"results":[]}`)
	})
	srv := newTestServer(t, mux)

	pwc := NewPapersWithCode(newTestGetter(), config.PapersWithCodeConfig{BaseURL: srv.URL + "/"})
	got, err := pwc.Search(context.Background(), SearchRequest{MaxResults: 100})
	require.NoError(t, err)
	assert.Empty(t, got)
}
