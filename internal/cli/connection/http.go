package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/medqueue-go/internal/infra/buildinfo"
	"github.com/yndnr/medqueue-go/internal/infra/tlsroots"
	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
	"github.com/yndnr/medqueue-go/internal/telemetry/metric"
)

// HeaderRequestID carries the per-request correlation ID.
const HeaderRequestID = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClient provides HTTP communication with the clinic API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  logger.Logger
	metrics *metric.Registry
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the overall request timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.client.Timeout = d }
}

// WithRateLimit limits outgoing requests to rps per second.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRootCAs trusts the given pool for HTTPS.
func WithRootCAs(pool *tlsroots.Pool) Option {
	return func(c *HTTPClient) {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = pool.TLSConfig()
		c.client.Transport = tr
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithMetrics records request latency into r.
func WithMetrics(r *metric.Registry) Option {
	return func(c *HTTPClient) { c.metrics = r }
}

// NewHTTPClient creates a new HTTP client for baseURL.
func NewHTTPClient(server string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: NormalizeBaseURL(server),
		client:  &http.Client{},
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeBaseURL defaults the scheme to http:// and drops a trailing slash.
func NormalizeBaseURL(server string) string {
	baseURL := strings.TrimSpace(server)
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// Do sends a request to baseURL+path. A non-nil body is JSON-encoded.
// header is copied onto the request as given; the caller owns auth.
func (c *HTTPClient) Do(ctx context.Context, method, path string, header http.Header, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := ulid.Make().String()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	ctx = logger.WithLogger(logger.WithRequestID(ctx, requestID), c.logger)
	log := logger.L(ctx).WithContext(ctx)
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(method, 0, time.Since(start))
		log.Debug("http request failed", "method", method, "path", path, "error", err)
		return nil, err
	}
	c.observe(method, resp.StatusCode, time.Since(start))

	log.Debug("http request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	return resp, nil
}

func (c *HTTPClient) observe(method string, status int, elapsed time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, status, elapsed)
	}
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// ResponseError is a non-2xx response.
type ResponseError struct {
	Status int
	// Message is the server's "error" field, or the caller's fallback.
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// DecodeError reads a {"error": "..."} body from resp and closes it.
// fallback is used when the body has no usable error field.
func DecodeError(resp *http.Response, fallback string) *ResponseError {
	defer resp.Body.Close()

	var errResp struct {
		Error string `json:"error"`
	}
	msg := fallback
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&errResp); err == nil && errResp.Error != "" {
		msg = errResp.Error
	}
	return &ResponseError{Status: resp.StatusCode, Message: msg}
}

// ParseResponse parses a JSON response body into target and closes it.
// Non-2xx responses return a *ResponseError.
func ParseResponse(resp *http.Response, target any) error {
	if !IsSuccess(resp.StatusCode) {
		return DecodeError(resp, fmt.Sprintf("request failed with status %d", resp.StatusCode))
	}
	defer resp.Body.Close()

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}
