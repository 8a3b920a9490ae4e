package hbnbapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hbnb-web/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// TokenSource supplies the bearer credential for authenticated calls
type TokenSource interface {
	Token() (string, bool)
}

// RequestOptions controls a single API call
type RequestOptions struct {
	// Body is JSON-encoded when non-nil.
	Body interface{}
	// Auth attaches the bearer token when one is available.
	Auth bool
}

// HTTPClient talks to the versioned HBnB REST root. Every call is a single
// attempt; failures are returned as *errors.AppError.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	metrics    *observability.Metrics
}

// Option configures an HTTPClient
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying transport client
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.httpClient = c
	}
}

// WithTimeout sets a transport timeout; zero keeps the default of none
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		h.httpClient.Timeout = d
	}
}

// WithMetrics records API call durations
func WithMetrics(m *observability.Metrics) Option {
	return func(h *HTTPClient) {
		h.metrics = m
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens returns a copy of the client bound to a token source
func (c *HTTPClient) WithTokens(tokens TokenSource) *HTTPClient {
	clone := *c
	clone.tokens = tokens
	return &clone
}

// Request performs one call and returns the raw JSON response body
func (c *HTTPClient) Request(ctx context.Context, method, path string, opts RequestOptions) (json.RawMessage, error) {
	ctx, span := observability.StartSpan(ctx, "hbnbapi "+method)
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.String("http.method", method),
		attribute.String("hbnb.path", path),
	)

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode request body", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Auth && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordError(span, err)
		c.record(ctx, method, path, 0, start)
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("method", method).Str("path", path).Msg("hbnb api unreachable")
		return nil, apperrors.NewTransportError("the service is unavailable, please try again later", err)
	}
	defer resp.Body.Close()

	c.record(ctx, method, path, resp.StatusCode, start)
	observability.SetSpanAttributes(span, attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to read the service response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewAPIError(resp.StatusCode, failureMessage(data))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(data), nil
}

func (c *HTTPClient) endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *HTTPClient) record(ctx context.Context, method, path string, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	observability.RecordAPICallMetric(ctx, c.metrics, method, routeOf(path), status, time.Since(start))
}

// failureMessage extracts the server-provided message from an error body.
func failureMessage(data []byte) string {
	var body struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	switch {
	case body.Msg != "":
		return body.Msg
	case body.Message != "":
		return body.Message
	default:
		return body.Error
	}
}

// routeOf replaces path ids with a placeholder to keep metric cardinality low.
func routeOf(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 1; i < len(segments); i += 2 {
		segments[i] = "{id}"
	}
	return "/" + strings.Join(segments, "/")
}

func decode(raw json.RawMessage, out interface{}) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewDecodeError("unexpected response from the service", err)
	}
	return nil
}

// decodeList accepts either a bare array or an object wrapping the array
// under key, as the API serves both shapes.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := decode(trimmed, &wrapped); err != nil {
			return nil, err
		}
		inner, ok := wrapped[key]
		if !ok {
			return nil, apperrors.NewDecodeError(fmt.Sprintf("response has no %q list", key), nil)
		}
		trimmed = inner
	}

	items := []T{}
	if err := decode(trimmed, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
