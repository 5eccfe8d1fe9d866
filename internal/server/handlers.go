package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/llm"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/internal/papers"
)

func (s *Server) endpoints() []Endpoint {
	return []Endpoint{
		{
			Name:        "suggest_collaborators",
			Description: "Suggest people to work with on a set of ideas, drawn from code hosting, Q&A, model hub, paper index and dataset hub sources.",
			Method:      http.MethodPost,
			Path:        "/api/suggest-collaborators",
			Schema: objectSchema(map[string]any{
				"ideas":       arraySchema("string"),
				"keywords":    arraySchema("string"),
				"location":    map[string]any{"type": "string"},
				"max_results": map[string]any{"type": "integer", "minimum": 1, "default": s.config.Search.DefaultMaxResults},
			}, "ideas"),
			Handler: s.handleSuggest,
		},
		{
			Name:        "search_papers",
			Description: "Search research papers on Crossref and arXiv.",
			Method:      http.MethodGet,
			Path:        "/api/papers",
			Schema: objectSchema(map[string]any{
				"q":      map[string]any{"type": "string"},
				"source": map[string]any{"type": "string", "enum": []string{"crossref", "arxiv", "both", "all"}, "default": "crossref"},
				"limit":  map[string]any{"type": "integer", "minimum": 1, "maximum": s.papers.Limits().MaxLimit},
				"offset": map[string]any{"type": "integer", "minimum": 0},
			}, "q"),
			Handler: s.handlePapers,
			Methods: []string{http.MethodOptions},
		},
		{
			Name:        "score_ideas",
			Description: "Rate ideas for technical feasibility and market impact on a 0-5 scale.",
			Method:      http.MethodPost,
			Path:        "/api/score",
			Schema: objectSchema(map[string]any{
				"ideas":    arraySchema("string"),
				"model_id": map[string]any{"type": "string"},
			}, "ideas"),
			Handler: s.handleScore,
		},
		{
			Name:        "generate_ideas",
			Description: "Generate project ideas about a topic grounded in source text.",
			Method:      http.MethodPost,
			Path:        "/api/generate",
			Schema: objectSchema(map[string]any{
				"topic":    map[string]any{"type": "string"},
				"text":     map[string]any{"type": "string"},
				"n_ideas":  map[string]any{"type": "integer", "default": llm.DefaultIdeaCount},
				"model_id": map[string]any{"type": "string"},
			}, "topic", "text"),
			Handler: s.handleGenerate,
		},
		{
			Name:        "list_tools",
			Description: "List the endpoints this server exposes.",
			Method:      http.MethodGet,
			Path:        "/api/tools",
			Handler:     s.handleTools,
		},
		{
			Name:        "health",
			Description: "Liveness check.",
			Method:      http.MethodGet,
			Path:        "/health",
			Handler:     s.handleHealth,
		},
	}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func arraySchema(itemType string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": itemType}}
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)
	limits := models.QueryLimits{
		DefaultMaxResults: s.config.Search.DefaultMaxResults,
		MaxResultsLimit:   s.config.Search.MaxResultsLimit,
	}
	query, err := models.DecodeCollaboratorQuery(http.MaxBytesReader(w, r.Body, maxBodyBytes), limits)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	response := s.finder.Suggest(r.Context(), query)
	logger.Info("suggest collaborators",
		zap.Int("ideas", len(query.Ideas)),
		zap.Int("terms", len(response.Meta.QueryTerms)),
		zap.Int("candidates", len(response.Candidates)),
		zap.Duration("took", time.Since(start)),
	)
	s.respondJSON(w, http.StatusOK, response)
}

// handlePapers answers every outcome, including failures, with CORS headers. All
// failures are reported as 400.
func (s *Server) handlePapers(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w, r)
	if r.Method == http.MethodOptions {
		s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	query, err := papers.ParseQuery(r.URL.Query(), s.papers.Limits())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	response, err := s.papers.Search(r.Context(), query)
	if err != nil {
		s.requestLogger(r).Warn("paper search failed", zap.String("query", query.Query), zap.Error(err))
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	req, err := models.DecodeScoreIdeasRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	response, err := s.llm.ScoreIdeas(r.Context(), req)
	if err != nil {
		s.respondLLMError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := models.DecodeGenerateIdeasRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	response, err := s.llm.GenerateIdeas(r.Context(), req)
	if err != nil {
		s.respondLLMError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.registry.Endpoints())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondLLMError maps evaluator and generator failures to status codes: bad input
// is 400, unusable model output is 502 with the raw completion, anything else 500.
func (s *Server) respondLLMError(w http.ResponseWriter, r *http.Request, err error) {
	var outErr *llm.OutputError
	switch {
	case errors.Is(err, models.ErrInvalidQuery):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &outErr):
		s.requestLogger(r).Warn("unusable model output", zap.Error(err))
		s.respondJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error(), "raw": outErr.Raw})
	default:
		s.requestLogger(r).Error("llm request failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
