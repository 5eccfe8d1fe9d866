package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when no completion endpoint is set up.
	ErrNotConfigured = errors.New("llm endpoint not configured: set llm.base_url and LLM_API_KEY")

	// ErrNoJSON is returned when no JSON value can be salvaged from model output.
	ErrNoJSON = errors.New("could not extract valid JSON from model output")
)

// OutputError reports model output that did not have the expected shape. Raw is the
// unmodified completion so callers can surface it.
type OutputError struct {
	Err error
	Raw string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("Failed to parse model output: %v", e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}
