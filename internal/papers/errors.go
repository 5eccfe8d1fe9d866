package papers

import (
	"fmt"

	"github.com/hyperjump/ideaworks/pkg/utils"
)

// Client-facing validation messages.
const (
	missingQueryMessage  = "Please provide a 'q' query parameter, e.g. ?q=graph%20neural%20networks"
	unknownSourceMessage = "Unknown 'source'. Use 'crossref', 'arxiv', or 'both'."
	limitMessage         = "'limit' must be an integer"
	offsetMessage        = "'offset' must be an integer"
)

// UpstreamError reports a non-2xx answer from a paper backend. Source is the source
// the caller asked for.
type UpstreamError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Upstream error from %s: %d %s", e.Source, e.StatusCode, utils.Head(e.Body, 200))
}

// UnexpectedError reports any other backend failure (transport, malformed feed).
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("Unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
