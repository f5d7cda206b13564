package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

var okReply = MockResponse{Content: json.RawMessage(`{"items":["Review claims"]}`)}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}}
}

func invalid() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`nope`), Err: errors.New("not json")}}
}

func TestRetry_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		script    []MockResponse
		wantCalls int
		wantErr   Failure
	}{
		{"first attempt", []MockResponse{okReply}, 1, FailureNone},
		{"outage then success", []MockResponse{unavailable(), okReply}, 2, FailureNone},
		{"outage every time", []MockResponse{unavailable(), unavailable(), unavailable(), okReply}, 3, FailureUnavailable},
		{"rate limit then success", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okReply}, 2, FailureNone},
		{"invalid reply repeated once", []MockResponse{invalid(), invalid(), okReply}, 2, FailureInvalid},
		{"truncated reply not repeated", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okReply}, 1, FailureTruncated},
		{"canceled not repeated", []MockResponse{{Err: context.Canceled}, okReply}, 1, FailureCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			p := WithRetry(mock, fastRetry(3), nil)

			resp, err := p.Generate(WithPurpose(context.Background(), PurposeDayToDay), Request{})
			assert.Equal(t, tt.wantErr, Classify(err))
			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr == FailureNone {
				require.NotNil(t, resp)
				assert.JSONEq(t, `{"items":["Review claims"]}`, string(resp.Content))
			}
			for _, purpose := range mock.Purposes {
				assert.Equal(t, PurposeDayToDay, purpose)
			}
		})
	}
}

func TestRetry_StopsWhenContextEnds(t *testing.T) {
	mock := NewMockProvider(unavailable(), okReply)
	cfg := fastRetry(2)
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour
	p := WithRetry(mock, cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Wait(t *testing.T) {
	r := &RetryProvider{
		config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2},
		jitter: func() float64 { return 0.5 },
	}
	down := &ErrProviderUnavailable{}

	assert.Equal(t, 100*time.Millisecond, r.wait(0, down))
	assert.Equal(t, 400*time.Millisecond, r.wait(2, down))
	assert.Equal(t, time.Second, r.wait(10, down), "capped at MaxWait")
	assert.Equal(t, 7*time.Second, r.wait(0, &ErrRateLimit{RetryAfter: 7 * time.Second}), "Retry-After wins")

	r.jitter = func() float64 { return 0 }
	assert.Equal(t, 80*time.Millisecond, r.wait(0, down))
	r.jitter = func() float64 { return 1 }
	assert.Equal(t, 120*time.Millisecond, r.wait(0, down))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, FailureNone, Classify(nil))
	assert.Equal(t, FailureCanceled, Classify(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.Equal(t, FailureRateLimit, Classify(fmt.Errorf("wrapped: %w", &ErrRateLimit{})))
	assert.Equal(t, FailureInvalid, Classify(&ErrInvalidResponse{Err: errors.New("x")}))
	assert.Equal(t, FailureTruncated, Classify(&ErrMaxTokensExceeded{}))
	assert.Equal(t, FailureUnavailable, Classify(errors.New("connection reset")))

	assert.True(t, FailureUnavailable.Transient())
	assert.False(t, FailureTruncated.Transient())
	assert.False(t, FailureCanceled.Transient())
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry(1), nil).ModelID())
}
