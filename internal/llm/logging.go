package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/metrics"
	"github.com/abhisek/prism/internal/store"
)

// LoggingProvider records every request in the event log, the process log
// and the metrics registry.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	log       logger.Logger
	metrics   *metrics.Metrics
}

// WithLogging wraps p. Any of repo, log and m may be nil.
func WithLogging(p Provider, repo store.EventRepo, log logger.Logger, m *metrics.Metrics) Provider {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &LoggingProvider{inner: p, eventRepo: repo, log: log, metrics: m}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	fields := map[string]any{
		"purpose":    purpose,
		"model":      data.Model,
		"latency_ms": data.LatencyMs,
		"tokens_in":  data.InputTokens,
		"tokens_out": data.OutputTokens,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		fields["failure"] = string(Classify(err))
		l.log.WithError(err).Warn("llm request failed", fields)
	} else {
		l.log.Debug("llm request", fields)
	}
	l.metrics.ObserveLLM(purpose, err == nil, data.InputTokens, data.OutputTokens, elapsed)

	if l.eventRepo != nil {
		// The event log is best effort; never fail the request over it.
		if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.WithError(logErr).Warn("failed to record llm event", map[string]any{"purpose": purpose})
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders a request for the event log.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
