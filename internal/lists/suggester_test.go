package lists

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/taxonomy"
)

type fixedGenerator struct {
	out []Suggestion
	err error
	n   int
}

func (g *fixedGenerator) SuggestList(context.Context, Kind, taxonomy.Key) (Suggestion, error) {
	if g.err != nil {
		return Suggestion{}, g.err
	}
	s := g.out[g.n]
	g.n++
	return s, nil
}

func TestSuggester_AppliesWithProvenance(t *testing.T) {
	g := &fixedGenerator{out: []Suggestion{{Items: []string{"a", "b"}, Source: provenance.Default}}}
	s := NewSuggester(g)
	e := New(KRAs)

	o := s.Generate(context.Background(), KRAs, taxonomy.Key{}, false)()
	require.NoError(t, s.Resolve(e, o))
	assert.Equal(t, []string{"a", "b"}, e.Items())
	assert.Equal(t, provenance.Default, e.Source())
}

func TestSuggester_UnconfirmedDoesNotOverwrite(t *testing.T) {
	g := &fixedGenerator{out: []Suggestion{{Items: []string{"new"}, Source: provenance.AI}}}
	s := NewSuggester(g)
	e := New(DayToDay, "mine")

	o := s.Generate(context.Background(), DayToDay, taxonomy.Key{}, false)()
	assert.ErrorIs(t, s.Resolve(e, o), ErrConfirmRequired)
	assert.Equal(t, []string{"mine"}, e.Items())
}

func TestSuggester_FailureLeavesList(t *testing.T) {
	s := NewSuggester(&fixedGenerator{err: errors.New("boom")})
	e := New(DayToDay, "mine")

	o := s.Generate(context.Background(), DayToDay, taxonomy.Key{}, true)()
	assert.EqualError(t, s.Resolve(e, o), "boom")
	assert.Equal(t, []string{"mine"}, e.Items())
	assert.False(t, s.Pending(DayToDay))
}

func TestSuggester_Superseded(t *testing.T) {
	g := &fixedGenerator{out: []Suggestion{
		{Items: []string{"old"}, Source: provenance.AI},
		{Items: []string{"new"}, Source: provenance.AI},
	}}
	s := NewSuggester(g)
	e := New(KRAs)

	first := s.Generate(context.Background(), KRAs, taxonomy.Key{}, true)
	second := s.Generate(context.Background(), KRAs, taxonomy.Key{}, true)
	o1, o2 := first(), second()

	require.NoError(t, s.Resolve(e, o2))
	assert.ErrorIs(t, s.Resolve(e, o1), ErrSuperseded)
	assert.Equal(t, []string{"new"}, e.Items())
}
