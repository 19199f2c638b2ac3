package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/erraggy/conjurego"
)

// RequestEditorFn can modify an outgoing request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient) error

// HTTPClient is a Client over net/http. Responses with gzip content encoding
// are decompressed transparently.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	editors    []RequestEditorFn
	logger     *slog.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a Client sending requests to baseURL.
func NewHTTPClient(baseURL string, opts ...HTTPOption) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base URL %q must be absolute", baseURL)
	}
	c := &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
		userAgent:  conjurego.UserAgent(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) error {
		if hc == nil {
			return errors.New("client: http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) HTTPOption {
	return func(c *HTTPClient) error {
		c.userAgent = ua
		return nil
	}
}

// WithRequestEditor adds a function run on every request before it is sent.
func WithRequestEditor(fn RequestEditorFn) HTTPOption {
	return func(c *HTTPClient) error {
		c.editors = append(c.editors, fn)
		return nil
	}
}

// WithLogger sets the logger for per-request debug output.
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(c *HTTPClient) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// Request implements Client.
func (c *HTTPClient) Request(ctx context.Context, method, path string, pathParams PathParams, queryParams QueryParams, headers http.Header, body Body) (Response, error) {
	target := c.baseURL + pathParams.Expand(path)
	if q := queryParams.Encode(); q != "" {
		target += "?" + q
	}
	if body == nil {
		body = EmptyBody()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body.Reader())
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Cause: err}
	}
	for name, values := range headers {
		req.Header[name] = append(req.Header[name], values...)
	}
	if _, ok := headers["user-agent"]; !ok && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept-Encoding", "gzip")
	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return nil, &TransportError{Method: method, Path: path, Cause: err}
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, &TransportError{Method: method, Path: path, Cause: err}
	}
	c.logger.Debug("request complete",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	rc, err := decodedBody(resp)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Cause: err}
	}
	return &httpResponse{resp: resp, body: rc}, nil
}

// decodedBody undoes a gzip content encoding.
func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return resp.Body, nil
	}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	zr, err := gzip.NewReader(resp.Body)
	if errors.Is(err, io.EOF) {
		_ = resp.Body.Close()
		return http.NoBody, nil
	}
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("gzip response: %w", err)
	}
	return &gzipBody{Reader: zr, raw: resp.Body}, nil
}

type gzipBody struct {
	*gzip.Reader
	raw io.ReadCloser
}

func (b *gzipBody) Close() error {
	zerr := b.Reader.Close()
	if err := b.raw.Close(); err != nil {
		return err
	}
	return zerr
}

type httpResponse struct {
	resp *http.Response
	body io.ReadCloser
}

func (r *httpResponse) StatusCode() int     { return r.resp.StatusCode }
func (r *httpResponse) Header() http.Header { return r.resp.Header }
func (r *httpResponse) Body() io.ReadCloser { return r.body }
