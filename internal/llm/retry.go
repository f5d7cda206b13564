package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/prism/internal/logger"
)

// RetryProvider repeats transient failures with capped exponential backoff.
// An invalid reply is repeated at most once per request.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    logger.Logger
	jitter func() float64
}

// WithRetry wraps p. A nil log discards retry notices.
func WithRetry(p Provider, cfg RetryConfig, log logger.Logger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = logger.NewNoOp()
	}
	return &RetryProvider{inner: p, config: cfg, log: log, jitter: rand.Float64}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	invalidSeen := false

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		f := Classify(err)
		if !f.Transient() {
			return nil, err
		}
		if f == FailureInvalid {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.wait(attempt, err)
		r.log.Info("retrying llm request", map[string]any{
			"purpose": PurposeFrom(ctx),
			"attempt": attempt + 1,
			"failure": string(f),
			"wait":    wait.String(),
		})
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait honors a provider Retry-After, otherwise backs off from InitialWait
// by Multiplier up to MaxWait with 20% jitter either way.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	base := math.Min(
		float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(attempt)),
		float64(r.config.MaxWait),
	)
	d := base * (0.8 + 0.4*r.jitter())
	return time.Duration(math.Max(d, 0))
}
