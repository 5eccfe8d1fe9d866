// Package fetch issues outbound GET requests to third-party APIs with a bounded
// timeout and turns non-2xx responses into typed errors.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every outbound call when the caller does not set one.
const DefaultTimeout = 20 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 16 << 20

// Getter is the outbound capability used by source adapters and paper search.
type Getter interface {
	// GetJSON fetches url and returns the body after checking it is valid JSON.
	GetJSON(ctx context.Context, url string, opts ...RequestOption) (json.RawMessage, error)
	// Get fetches url and returns the raw body.
	Get(ctx context.Context, url string, opts ...RequestOption) ([]byte, error)
}

// Client implements Getter over net/http.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithDefaultUserAgent sets the User-Agent sent when a request does not set its own.
func WithDefaultUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Client whose requests time out after timeout (DefaultTimeout when <= 0).
func NewClient(timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "ideaworks",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	header   http.Header
	query    url.Values
	username string
	password string
	basic    bool
}

// RequestOption customizes a single request.
type RequestOption func(*request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) { r.header.Set(key, value) }
}

// WithQuery adds a query parameter. Repeated keys are appended.
func WithQuery(key, value string) RequestOption {
	return func(r *request) { r.query.Add(key, value) }
}

// WithBasicAuth sets HTTP basic credentials.
func WithBasicAuth(username, password string) RequestOption {
	return func(r *request) {
		r.username, r.password, r.basic = username, password, true
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) RequestOption {
	return WithHeader("User-Agent", ua)
}

// WithBearerToken sets "Authorization: Bearer <token>" when token is non-empty.
func WithBearerToken(token string) RequestOption {
	return func(r *request) {
		if token != "" {
			r.header.Set("Authorization", "Bearer "+token)
		}
	}
}

// GetJSON implements Getter.
func (c *Client) GetJSON(ctx context.Context, rawURL string, opts ...RequestOption) (json.RawMessage, error) {
	opts = append([]RequestOption{WithHeader("Accept", "application/json")}, opts...)
	body, err := c.Get(ctx, rawURL, opts...)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s returned non-JSON body", ErrMalformedPayload, redact(rawURL))
	}
	return json.RawMessage(body), nil
}

// Get implements Getter.
func (c *Client) Get(ctx context.Context, rawURL string, opts ...RequestOption) ([]byte, error) {
	r := &request{header: http.Header{}, query: url.Values{}}
	for _, opt := range opts {
		opt(r)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	if len(r.query) > 0 {
		q := u.Query()
		for k, vs := range r.query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if r.basic {
		req.SetBasicAuth(r.username, r.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{URL: redact(u.String()), Err: redactURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UpstreamError{URL: redact(u.String()), StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{URL: redact(u.String()), StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// redactURLError strips the query string from the URL that *url.Error prints.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: redact(urlErr.URL), Err: urlErr.Err}
}

// redact drops the query string so keys passed as parameters never reach logs.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
