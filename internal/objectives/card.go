package objectives

import "github.com/abhisek/prism/internal/skive"

// Card is the editing view of one entry. Keystrokes change only the draft;
// Save copies the draft into the Map.
type Card struct {
	Path      skive.Path
	committed Levels
	draft     Levels
}

// NewCard opens a card on the current entry at p.
func NewCard(m *Map, p skive.Path) Card {
	l := m.Get(p).Levels
	return Card{Path: p, committed: l, draft: l}
}

// Draft returns the uncommitted text.
func (c Card) Draft() Levels {
	return c.draft
}

// Committed returns the last saved text.
func (c Card) Committed() Levels {
	return c.committed
}

// SetDraft edits one tier of the draft.
func (c *Card) SetDraft(level Level, text string) {
	c.draft = c.draft.With(level, text)
}

// Dirty reports whether the draft differs from the committed text in any
// tier. The save control is enabled only while Dirty.
func (c Card) Dirty() bool {
	return c.draft != c.committed
}

// Save commits the draft to m. It reports false and does nothing when the
// card is clean.
func (c *Card) Save(m *Map) bool {
	if !c.Dirty() {
		return false
	}
	m.Commit(c.Path, c.draft)
	c.committed = c.draft
	return true
}

// Revert discards the draft.
func (c *Card) Revert() {
	c.draft = c.committed
}

// Sync replaces both draft and committed text, used after a successful
// generation overwrote the entry.
func (c *Card) Sync(e Entry) {
	c.committed = e.Levels
	c.draft = e.Levels
}
