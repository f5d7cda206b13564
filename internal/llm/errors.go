package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is a reply that is not JSON or fails the request
// schema. Content holds the offending reply.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("llm reply rejected: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers outages, auth failures and transport errors.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm provider unavailable"
	}
	return fmt.Sprintf("llm provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a reply cut off at Request.MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "llm reply truncated at max tokens"
}

// Failure classifies a Generate error for retries, logs and metrics.
type Failure string

const (
	FailureNone        Failure = ""
	FailureCanceled    Failure = "canceled"
	FailureRateLimit   Failure = "rate_limited"
	FailureInvalid     Failure = "invalid_response"
	FailureTruncated   Failure = "truncated"
	FailureUnavailable Failure = "unavailable"
)

// Classify returns the failure kind of err. Errors from outside this
// package count as unavailable.
func Classify(err error) Failure {
	var (
		rl  *ErrRateLimit
		inv *ErrInvalidResponse
		mt  *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureCanceled
	case errors.As(err, &mt):
		return FailureTruncated
	case errors.As(err, &rl):
		return FailureRateLimit
	case errors.As(err, &inv):
		return FailureInvalid
	default:
		return FailureUnavailable
	}
}

// Transient reports whether repeating the same request may succeed.
// Invalid replies are transient because sampling differs per attempt.
func (f Failure) Transient() bool {
	switch f {
	case FailureRateLimit, FailureInvalid, FailureUnavailable:
		return true
	default:
		return false
	}
}
