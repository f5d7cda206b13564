package objectives

import (
	"context"
	"errors"

	"github.com/abhisek/prism/internal/inflight"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

// Generator produces a suggested objective for one competency path.
type Generator interface {
	SuggestObjectives(ctx context.Context, key taxonomy.Key, path skive.Path) (Suggestion, error)
}

// ErrSuperseded marks a result whose request was replaced by a newer one
// for the same path.
var ErrSuperseded = errors.New("objective generation superseded")

// Outcome is the result of one generation run.
type Outcome struct {
	Path       skive.Path
	Suggestion Suggestion
	Err        error
	ticket     inflight.Ticket[skive.Path]
}

// Author owns the Map and coordinates generation against it. Map mutations
// happen only in Resolve, on the caller's goroutine.
type Author struct {
	Map   *Map
	gen   Generator
	tasks *inflight.Tracker[skive.Path]
}

// NewAuthor creates an Author over m. A nil m starts empty.
func NewAuthor(m *Map, gen Generator) *Author {
	if m == nil {
		m = NewMap()
	}
	return &Author{Map: m, gen: gen, tasks: inflight.New[skive.Path]()}
}

// Generate registers a request for p, cancelling any older request for the
// same path, and returns the function that performs it. The function does
// not touch the Map and may run on another goroutine.
func (a *Author) Generate(ctx context.Context, key taxonomy.Key, p skive.Path) func() Outcome {
	taskCtx, ticket := a.tasks.Start(ctx, p)
	return func() Outcome {
		s, err := a.gen.SuggestObjectives(taskCtx, key, p)
		return Outcome{Path: p, Suggestion: s, Err: err, ticket: ticket}
	}
}

// Resolve applies o to the Map. A failed or superseded outcome leaves the
// Map untouched and returns the error.
func (a *Author) Resolve(o Outcome) (Entry, error) {
	if !a.tasks.Finish(o.ticket) {
		return Entry{}, ErrSuperseded
	}
	if o.Err != nil {
		return Entry{}, o.Err
	}
	return a.Map.Apply(o.Path, o.Suggestion), nil
}

// Run generates and resolves synchronously.
func (a *Author) Run(ctx context.Context, key taxonomy.Key, p skive.Path) (Entry, error) {
	return a.Resolve(a.Generate(ctx, key, p)())
}

// Pending reports whether a generation for p is in flight.
func (a *Author) Pending(p skive.Path) bool {
	return a.tasks.Pending(p)
}

// Close cancels every in-flight generation.
func (a *Author) Close() {
	a.tasks.CancelAll()
}
