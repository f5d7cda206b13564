package lists

import (
	"context"
	"errors"

	"github.com/abhisek/prism/internal/inflight"
	"github.com/abhisek/prism/internal/taxonomy"
)

// ErrSuperseded marks a result whose request was replaced by a newer one
// for the same list.
var ErrSuperseded = errors.New("list generation superseded")

// Outcome is the result of one generation run.
type Outcome struct {
	Kind       Kind
	Suggestion Suggestion
	Err        error
	Confirmed  bool
	ticket     inflight.Ticket[Kind]
}

// Suggester runs list generation with one live request per list kind.
type Suggester struct {
	gen   Generator
	tasks *inflight.Tracker[Kind]
}

// NewSuggester creates a Suggester backed by gen.
func NewSuggester(gen Generator) *Suggester {
	return &Suggester{gen: gen, tasks: inflight.New[Kind]()}
}

// Generate registers a request for kind, cancelling any older one, and
// returns the function that performs it. confirmed records whether the user
// already agreed to overwrite a non-empty list.
func (s *Suggester) Generate(ctx context.Context, kind Kind, key taxonomy.Key, confirmed bool) func() Outcome {
	taskCtx, ticket := s.tasks.Start(ctx, kind)
	return func() Outcome {
		sug, err := s.gen.SuggestList(taskCtx, kind, key)
		return Outcome{Kind: kind, Suggestion: sug, Err: err, Confirmed: confirmed, ticket: ticket}
	}
}

// Resolve applies o to e. Failed or superseded outcomes leave e unchanged.
func (s *Suggester) Resolve(e *Editor, o Outcome) error {
	if !s.tasks.Finish(o.ticket) {
		return ErrSuperseded
	}
	if o.Err != nil {
		return o.Err
	}
	return e.ApplySuggestion(o.Suggestion, o.Confirmed)
}

// Pending reports whether a generation for kind is in flight.
func (s *Suggester) Pending(kind Kind) bool {
	return s.tasks.Pending(kind)
}

// Close cancels every in-flight generation.
func (s *Suggester) Close() {
	s.tasks.CancelAll()
}
