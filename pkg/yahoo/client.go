package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stocksapi/internal/httpx"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"
	defaultTimeout = 15 * time.Second

	// maxErrorBody bounds the body excerpt kept on a StatusError.
	maxErrorBody = 2 << 10
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// client issues requests against the finance endpoints and decodes their
// envelopes. It is safe for concurrent use; per-call options work on a copy.
type client struct {
	// baseURL is the scheme and host, without a trailing slash.
	baseURL string
	// httpClient sends the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
	// timeout bounds a single call when positive.
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures the client, either at construction or for a single call.
type Option func(*client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithQuery adds query parameters to be sent with each request, e.g.
// range=1mo for the chart endpoint. Parameters an operation sets itself are
// never overridden.
func WithQuery(query url.Values) Option {
	return func(c *client) {
		for key, values := range query {
			for _, value := range values {
				c.query.Add(key, value)
			}
		}
	}
}

// WithTimeout bounds each call. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for debug request logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newClient(opts ...Option) *client {
	c := &client{
		baseURL:    defaultBaseURL,
		httpClient: httpx.New(defaultTimeout),
		header:     http.Header{},
		query:      url.Values{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// with returns c, or a copy of c with opts applied when there are any.
func (c *client) with(opts []Option) *client {
	if len(opts) == 0 {
		return c
	}
	override := &client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      cloneValues(c.query),
		timeout:    c.timeout,
		logger:     c.logger,
	}
	for _, opt := range opts {
		opt(override)
	}
	return override
}

// get performs one GET against path and decodes the body into out.
func (c *client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	q := cloneValues(query)
	for key, values := range c.query {
		if q.Has(key) {
			continue
		}
		q[key] = append([]string(nil), values...)
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return invalidArgument(op, "creating request: %v", err)
	}
	req.Header = c.header.Clone()

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", "op", op, "error", err)
		}
	}()
	c.logger.Debug("yahoo request",
		"op", op,
		"url", u,
		"status", res.StatusCode,
		"elapsed", time.Since(start),
	)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &StatusError{Op: op, StatusCode: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(out); err != nil {
		return &DecodeError{Op: op, Step: "response body", Err: err}
	}
	// The body must hold exactly one JSON document.
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return &DecodeError{Op: op, Step: "response body", Err: errTrailingData}
	}
	return nil
}

var errTrailingData = errors.New("unexpected data after the JSON document")

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, values := range v {
		out[key] = append([]string(nil), values...)
	}
	return out
}
