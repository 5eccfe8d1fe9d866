package fetch

import (
	"errors"
	"fmt"

	"github.com/hyperjump/ideaworks/pkg/utils"
)

// ErrMalformedPayload marks a response that could not be decoded.
var ErrMalformedPayload = errors.New("malformed payload")

// UpstreamError reports a failed outbound call: a non-2xx status (StatusCode and Body
// set) or a transport failure (Err set, StatusCode 0).
type UpstreamError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream %s: %v", e.URL, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: status %d: %s", e.URL, e.StatusCode, utils.Truncate(e.Body, 200))
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Malformed wraps a decode failure of a body fetched from source.
func Malformed(source string, err error) error {
	return fmt.Errorf("%s: %w: %v", source, ErrMalformedPayload, err)
}
