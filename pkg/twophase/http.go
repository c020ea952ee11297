package twophase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/SeamusWaldron/cubesim"
)

// Default settings for the HTTP client.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 2
)

// HTTPClient asks a two-phase solver web service for solutions. The service
// answers GET {base}/{facelets} with the solution as plain text.
type HTTPClient struct {
	client *resty.Client
	logger *log.Logger
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*httpConfig)

type httpConfig struct {
	timeout    time.Duration
	retryCount int
	retryWait  time.Duration
	logger     *log.Logger
}

// WithTimeout bounds each request, retries included.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *httpConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetryCount sets how many times a failed request is retried.
// Only network errors and 5xx answers are retried.
func WithRetryCount(n int) HTTPOption {
	return func(c *httpConfig) {
		if n >= 0 {
			c.retryCount = n
		}
	}
}

// WithRetryWait sets the initial wait between retries.
func WithRetryWait(d time.Duration) HTTPOption {
	return func(c *httpConfig) {
		c.retryWait = d
	}
}

// WithHTTPLogger sets the logger for request tracing and resty warnings.
func WithHTTPLogger(l *log.Logger) HTTPOption {
	return func(c *httpConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient creates a client for the solver service at baseURL.
func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	cfg := &httpConfig{
		timeout:    DefaultTimeout,
		retryCount: DefaultRetryCount,
		retryWait:  100 * time.Millisecond,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(cfg.timeout).
		SetHeader("Accept", "text/plain").
		SetRetryCount(cfg.retryCount).
		SetRetryWaitTime(cfg.retryWait).
		SetRetryMaxWaitTime(2 * time.Second).
		SetLogger(cfg.logger)

	client.AddRetryCondition(retryCondition)

	return &HTTPClient{client: client, logger: cfg.logger}
}

// retryCondition retries network errors and server errors.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	return r.StatusCode() >= 500
}

// Solve implements cubesim.Solver.
func (c *HTTPClient) Solve(ctx context.Context, facelets string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("facelets", facelets).
		Get("/{facelets}")
	if err != nil {
		return "", fmt.Errorf("solver request failed: %w", err)
	}

	c.logger.Debug("solver answered", "status", resp.StatusCode(), "elapsed", resp.Time())

	body := strings.TrimSpace(string(resp.Body()))
	if resp.IsError() {
		msg := body
		if msg == "" {
			msg = resp.Status()
		}
		return "", &cubesim.SolverError{
			Facelets: facelets,
			Message:  fmt.Sprintf("%s (status %d)", msg, resp.StatusCode()),
		}
	}

	return answer(facelets, body)
}

// answer checks solver output for an error report. Two-phase solvers answer
// malformed or unsolvable input with a line starting with "Error".
func answer(facelets, out string) (string, error) {
	out = strings.TrimSpace(out)
	if strings.HasPrefix(out, "Error") {
		return "", &cubesim.SolverError{Facelets: facelets, Message: out}
	}
	return out, nil
}
