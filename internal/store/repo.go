package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	After int64 // sequence > After
}

// APIEventData describes one HTTP call to the PRISM API.
type APIEventData struct {
	RequestID    string
	Method       string
	Endpoint     string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEventData describes one LLM provider call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventKind distinguishes entries in a merged listing.
type EventKind string

const (
	KindAPI EventKind = "api"
	KindLLM EventKind = "llm"
)

// EventRecord is one row of the merged event log.
type EventRecord struct {
	Sequence  int64
	Kind      EventKind
	Timestamp time.Time
	Name      string // endpoint or LLM purpose
	Detail    string // "GET 200" or model id
	LatencyMs int64
	Success   bool
	Error     string
}

// LLMRequestRecord is a full LLM event including bodies.
type LLMRequestRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventStat aggregates events by name.
type EventStat struct {
	Kind         EventKind
	Name         string
	Count        int
	Failures     int
	AvgLatencyMs float64
}

// EventRepo appends and queries the call log.
type EventRepo interface {
	AppendAPICall(ctx context.Context, data APIEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryEvents returns events from both tables, newest first.
	QueryEvents(ctx context.Context, opts QueryOpts) ([]EventRecord, error)
	// GetLLMRequest returns the LLM event with the given sequence, or nil.
	GetLLMRequest(ctx context.Context, sequence int64) (*LLMRequestRecord, error)
	// Stats aggregates events per endpoint and per LLM purpose.
	Stats(ctx context.Context) ([]EventStat, error)
}

// SessionRecord is the persisted login.
type SessionRecord struct {
	Username   string
	Role       string
	LoggedInAt time.Time
}

// SessionRepo persists at most one login session.
type SessionRepo interface {
	// Load returns the persisted session, or nil if logged out.
	Load(ctx context.Context) (*SessionRecord, error)
	Save(ctx context.Context, rec SessionRecord) error
	Clear(ctx context.Context) error
}
