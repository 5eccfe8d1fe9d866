// Package server provides the HTTP API for ideaworks.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/collab"
	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/llm"
	"github.com/hyperjump/ideaworks/internal/papers"
)

// maxBodyBytes caps request bodies for the POST endpoints.
const maxBodyBytes = 1 << 20

// Server is the HTTP server for the ideaworks API.
type Server struct {
	finder   *collab.Finder
	papers   *papers.Searcher
	llm      *llm.Client
	config   *config.Config
	logger   *zap.Logger
	registry *Registry
	server   *http.Server
}

// NewServer creates a server with the given dependencies and builds its endpoint
// registry.
func NewServer(
	finder *collab.Finder,
	paperSearch *papers.Searcher,
	llmClient *llm.Client,
	cfg *config.Config,
	logger *zap.Logger,
) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		finder: finder,
		papers: paperSearch,
		llm:    llmClient,
		config: cfg,
		logger: logger,
	}
	registry, err := NewRegistry(s.endpoints()...)
	if err != nil {
		return nil, err
	}
	s.registry = registry
	return s, nil
}

// Registry returns the endpoints the server exposes.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Handler returns the routed HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.Server.RequestTimeout))
	r.Use(middleware.Compress(5))

	s.registry.Mount(r)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server",
		zap.String("addr", addr),
		zap.Int("endpoints", len(s.registry.Endpoints())),
		zap.Any("sources", s.finder.Sources()),
		zap.Bool("llm_configured", s.llm != nil && s.llm.Configured()),
	)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
