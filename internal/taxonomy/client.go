package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/metrics"
)

// Fetcher loads taxonomy options. The gateway implements it, and so does
// Client, which adds caching and retries on top of another Fetcher.
type Fetcher interface {
	Professions(ctx context.Context) ([]Option, error)
	Departments(ctx context.Context, professionID ID) ([]Option, error)
	Roles(ctx context.Context, departmentID ID) ([]Option, error)
}

// Config tunes caching and retry behaviour.
type Config struct {
	// TTL is how long a cached result stays fresh.
	TTL time.Duration
	// CacheSize bounds the in-process cache.
	CacheSize int
	// Retries is the number of extra attempts after a failure.
	Retries int
	// RetryWait is the first backoff delay; it doubles per attempt.
	RetryWait time.Duration
	// MaxWait caps the backoff delay.
	MaxWait time.Duration
	// FetchTimeout bounds a shared fetch, which outlives any one caller.
	FetchTimeout time.Duration
}

// DefaultConfig returns a 5 minute freshness window and two retries.
func DefaultConfig() Config {
	return Config{
		TTL:          5 * time.Minute,
		CacheSize:    128,
		Retries:      2,
		RetryWait:    time.Second,
		MaxWait:      30 * time.Second,
		FetchTimeout: time.Minute,
	}
}

// Client is a caching, retrying, deduplicating Fetcher.
type Client struct {
	inner Fetcher
	cache Cache
	cfg   Config
	log   logger.Logger
	met   *metrics.Metrics
	group singleflight.Group
}

var _ Fetcher = (*Client)(nil)

// NewClient wraps inner. A nil cache selects an in-process LRU cache.
func NewClient(inner Fetcher, cache Cache, cfg Config, log logger.Logger) *Client {
	if cache == nil {
		cache = NewMemoryCache(cfg.CacheSize, cfg.TTL)
	}
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Client{inner: inner, cache: cache, cfg: cfg, log: log}
}

func (c *Client) Professions(ctx context.Context) ([]Option, error) {
	return c.query(ctx, "professions", func(ctx context.Context) ([]Option, error) {
		return c.inner.Professions(ctx)
	})
}

func (c *Client) Departments(ctx context.Context, professionID ID) ([]Option, error) {
	if professionID == 0 {
		return nil, ErrParentUnset
	}
	return c.query(ctx, fmt.Sprintf("departments:%d", professionID), func(ctx context.Context) ([]Option, error) {
		return c.inner.Departments(ctx, professionID)
	})
}

func (c *Client) Roles(ctx context.Context, departmentID ID) ([]Option, error) {
	if departmentID == 0 {
		return nil, ErrParentUnset
	}
	return c.query(ctx, fmt.Sprintf("roles:%d", departmentID), func(ctx context.Context) ([]Option, error) {
		return c.inner.Roles(ctx, departmentID)
	})
}

// WithMetrics records cache hits and misses on m.
func (c *Client) WithMetrics(m *metrics.Metrics) *Client {
	c.met = m
	return c
}

// Invalidate drops a cached query key, e.g. "professions".
func (c *Client) Invalidate(ctx context.Context, key string) {
	c.cache.Delete(ctx, key)
}

func (c *Client) query(ctx context.Context, key string, fetch func(context.Context) ([]Option, error)) ([]Option, error) {
	if opts, ok := c.cache.Get(ctx, key); ok {
		c.met.ObserveCache(true)
		return opts, nil
	}
	c.met.ObserveCache(false)

	// The fetch is shared by every waiter on key and outlives the caller
	// that started it.
	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := c.detach(ctx)
		defer cancel()
		opts, err := c.withRetry(fctx, key, fetch)
		if err != nil {
			return nil, err
		}
		c.cache.Set(fctx, key, opts)
		return opts, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.log.Debug("taxonomy query shared", map[string]any{"key": key})
		}
		return res.Val.([]Option), nil
	}
}

func (c *Client) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if c.cfg.FetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.FetchTimeout)
}

func (c *Client) withRetry(ctx context.Context, key string, fetch func(context.Context) ([]Option, error)) ([]Option, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		opts, err := fetch(ctx)
		if err == nil {
			return opts, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if attempt == c.cfg.Retries {
			break
		}

		wait := c.backoff(attempt)
		c.log.Warn("taxonomy query failed, retrying", map[string]any{
			"key":     key,
			"attempt": attempt + 1,
			"wait":    wait.String(),
			"error":   err.Error(),
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func (c *Client) backoff(attempt int) time.Duration {
	wait := float64(c.cfg.RetryWait) * math.Pow(2, float64(attempt))
	if c.cfg.MaxWait > 0 && wait > float64(c.cfg.MaxWait) {
		wait = float64(c.cfg.MaxWait)
	}
	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
