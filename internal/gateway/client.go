// Package gateway is the HTTP JSON client for the PRISM API: taxonomy
// queries, AI suggestions, profile persistence and archetype analysis.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/metrics"
	"github.com/abhisek/prism/internal/store"
)

// Config points the client at an API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig targets a local development server.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Timeout: 15 * time.Second,
	}
}

// Client talks to the PRISM API. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	log     logger.Logger
	metrics *metrics.Metrics
	events  store.EventRepo
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger logs every request.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics counts and times every request.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithEventRepo appends every request to the local event log.
func WithEventRepo(r store.EventRepo) Option {
	return func(c *Client) { c.events = r }
}

// New validates cfg and builds a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	c := &Client{
		base: base,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger.NewNoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// do sends one request. in, when non-nil, is encoded as the JSON body; out,
// when non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, in, out any) error {
	u := *c.base
	u.Path += endpoint
	u.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	if err == nil {
		defer resp.Body.Close()
		err = c.decode(method, endpoint, resp, out)
	} else if ctx.Err() != nil {
		err = ctx.Err()
	} else {
		err = fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, endpoint, err)
	}

	c.record(ctx, requestID, method, endpoint, status, time.Since(start), err)
	return err
}

func (c *Client) decode(method, endpoint string, resp *http.Response, out any) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", ErrUnavailable, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method:   method,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  errorMessage(raw),
		}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, endpoint, err)
	}
	return nil
}

func (c *Client) record(ctx context.Context, requestID, method, endpoint string, status int, elapsed time.Duration, err error) {
	fields := map[string]any{
		"request_id": requestID,
		"method":     method,
		"endpoint":   endpoint,
		"status":     status,
		"latency_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		c.log.WithError(err).Warn("api request failed", fields)
	} else {
		c.log.Debug("api request", fields)
	}

	c.metrics.ObserveAPI(method, endpoint, status, elapsed)

	if c.events == nil {
		return
	}
	data := store.APIEventData{
		RequestID: requestID,
		Method:    method,
		Endpoint:  endpoint,
		Status:    status,
		LatencyMs: elapsed.Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	if logErr := c.events.AppendAPICall(context.WithoutCancel(ctx), data); logErr != nil && !errors.Is(logErr, context.Canceled) {
		c.log.WithError(logErr).Warn("failed to record api event", map[string]any{"endpoint": endpoint})
	}
}
