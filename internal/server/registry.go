package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Endpoint is one routable operation together with the metadata published on
// /api/tools.
type Endpoint struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Method      string           `json:"method"`
	Path        string           `json:"path"`
	Schema      map[string]any   `json:"schema,omitempty"`
	Handler     http.HandlerFunc `json:"-"`
	// Methods lists extra methods routed to the same handler, such as OPTIONS for
	// CORS preflight.
	Methods []string `json:"-"`
}

// Registry is the fixed list of endpoints, built once at startup.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry validates the endpoint list. Names and method+path pairs must be unique.
func NewRegistry(endpoints ...Endpoint) (*Registry, error) {
	names := make(map[string]struct{}, len(endpoints))
	routes := make(map[string]struct{}, len(endpoints))
	for _, e := range endpoints {
		if e.Name == "" || e.Path == "" || e.Method == "" || e.Handler == nil {
			return nil, fmt.Errorf("endpoint %q: name, method, path and handler are required", e.Name)
		}
		if _, dup := names[e.Name]; dup {
			return nil, fmt.Errorf("duplicate endpoint name %q", e.Name)
		}
		names[e.Name] = struct{}{}
		for _, m := range append([]string{e.Method}, e.Methods...) {
			route := m + " " + e.Path
			if _, dup := routes[route]; dup {
				return nil, fmt.Errorf("duplicate route %q", route)
			}
			routes[route] = struct{}{}
		}
	}
	return &Registry{endpoints: endpoints}, nil
}

// Endpoints returns a copy of the registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return append([]Endpoint(nil), r.endpoints...)
}

// Mount routes every endpoint on router.
func (r *Registry) Mount(router chi.Router) {
	for _, e := range r.endpoints {
		router.Method(e.Method, e.Path, e.Handler)
		for _, m := range e.Methods {
			router.Method(m, e.Path, e.Handler)
		}
	}
}
