// Package lists implements the day-to-day and KRA list editors.
package lists

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/taxonomy"
)

// Placeholder is the text of a freshly added item.
const Placeholder = "New item"

// Kind identifies which list an editor holds.
type Kind string

const (
	DayToDay Kind = "day_to_day"
	KRAs     Kind = "kras"
)

// DisplayName returns the section heading for k.
func (k Kind) DisplayName() string {
	switch k {
	case DayToDay:
		return "Day-to-Day Activities"
	case KRAs:
		return "Key Responsibility Areas"
	default:
		return string(k)
	}
}

var (
	ErrIndexRange      = errors.New("list index out of range")
	ErrConfirmRequired = errors.New("list is not empty; confirm before replacing it")
)

// Suggestion is a generated list.
type Suggestion struct {
	Items  []string
	Source provenance.Source
}

// Generator produces a suggested list for a role.
type Generator interface {
	SuggestList(ctx context.Context, kind Kind, key taxonomy.Key) (Suggestion, error)
}

// Editor is an ordered list of free-text items with in-place editing.
type Editor struct {
	Kind    Kind
	items   []string
	source  provenance.Source
	editing int
	draft   string
}

// New creates an editor holding items.
func New(kind Kind, items ...string) *Editor {
	e := &Editor{Kind: kind, source: provenance.None, editing: -1}
	e.items = append(e.items, items...)
	return e
}

// Items returns a copy of the items.
func (e *Editor) Items() []string {
	out := make([]string, len(e.items))
	copy(out, e.items)
	return out
}

// Len returns the number of items.
func (e *Editor) Len() int {
	return len(e.items)
}

// Source returns the provenance of the last bulk generation.
func (e *Editor) Source() provenance.Source {
	return e.source
}

// Add appends the placeholder and starts editing it.
func (e *Editor) Add() int {
	e.items = append(e.items, Placeholder)
	i := len(e.items) - 1
	e.editing = i
	e.draft = Placeholder
	return i
}

// Edit replaces item i. Blank text removes the item instead.
func (e *Editor) Edit(i int, text string) error {
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("edit %d: %w", i, ErrIndexRange)
	}
	if strings.TrimSpace(text) == "" {
		return e.Remove(i)
	}
	e.items[i] = strings.TrimSpace(text)
	return nil
}

// Remove deletes item i, keeping the order of the rest.
func (e *Editor) Remove(i int) error {
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("remove %d: %w", i, ErrIndexRange)
	}
	e.items = append(e.items[:i], e.items[i+1:]...)
	switch {
	case e.editing == i:
		e.editing = -1
		e.draft = ""
	case e.editing > i:
		e.editing--
	}
	return nil
}

// BeginEdit starts editing item i with its current text as the draft.
func (e *Editor) BeginEdit(i int) error {
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("edit %d: %w", i, ErrIndexRange)
	}
	e.editing = i
	e.draft = e.items[i]
	return nil
}

// Editing returns the index under edit.
func (e *Editor) Editing() (int, bool) {
	return e.editing, e.editing >= 0
}

// Draft returns the text being edited.
func (e *Editor) Draft() string {
	return e.draft
}

// SetDraft replaces the text being edited.
func (e *Editor) SetDraft(text string) {
	e.draft = text
}

// CommitEdit saves the draft into the item under edit. A blank draft
// removes the item.
func (e *Editor) CommitEdit() error {
	if e.editing < 0 {
		return nil
	}
	i, text := e.editing, e.draft
	e.editing, e.draft = -1, ""
	return e.Edit(i, text)
}

// CancelEdit leaves the item unchanged.
func (e *Editor) CancelEdit() {
	e.editing, e.draft = -1, ""
}

// NeedsConfirm reports whether replacing the list would discard content.
func (e *Editor) NeedsConfirm() bool {
	return len(e.items) > 0
}

// ApplySuggestion replaces the list with s. A non-empty list is replaced
// only when confirmed.
func (e *Editor) ApplySuggestion(s Suggestion, confirmed bool) error {
	if e.NeedsConfirm() && !confirmed {
		return ErrConfirmRequired
	}
	e.items = e.items[:0]
	for _, it := range s.Items {
		if t := strings.TrimSpace(it); t != "" {
			e.items = append(e.items, t)
		}
	}
	e.source = s.Source
	e.CancelEdit()
	return nil
}

// Reset replaces the items without a provenance change, used when a saved
// profile is loaded.
func (e *Editor) Reset(items []string) {
	e.items = append([]string(nil), items...)
	e.source = provenance.None
	e.CancelEdit()
}
