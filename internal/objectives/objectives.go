// Package objectives holds the per-competency three-tier objective map and
// the draft/commit cards used to edit it.
package objectives

import (
	"encoding/json"
	"sort"

	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/skive"
)

// Level names one objective tier.
type Level string

const (
	Basic        Level = "basic"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// AllLevels lists the tiers in display order.
var AllLevels = []Level{Basic, Intermediate, Advanced}

// DisplayName returns the tier label.
func (l Level) DisplayName() string {
	switch l {
	case Basic:
		return "Basic"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	default:
		return string(l)
	}
}

// Levels is the three-tier objective text.
type Levels struct {
	Basic        string `json:"basic"`
	Intermediate string `json:"intermediate"`
	Advanced     string `json:"advanced"`
}

// Get returns the text of one tier.
func (l Levels) Get(level Level) string {
	switch level {
	case Basic:
		return l.Basic
	case Intermediate:
		return l.Intermediate
	case Advanced:
		return l.Advanced
	}
	return ""
}

// With returns l with one tier replaced.
func (l Levels) With(level Level, text string) Levels {
	switch level {
	case Basic:
		l.Basic = text
	case Intermediate:
		l.Intermediate = text
	case Advanced:
		l.Advanced = text
	}
	return l
}

// Empty reports whether every tier is blank.
func (l Levels) Empty() bool {
	return l.Basic == "" && l.Intermediate == "" && l.Advanced == ""
}

// Entry is the stored objective for one competency path.
type Entry struct {
	Levels
	Source provenance.Source `json:"source"`
}

// EmptyEntry is what an unauthored path reads as.
func EmptyEntry() Entry {
	return Entry{Source: provenance.None}
}

// Suggestion is a generated objective.
type Suggestion struct {
	Levels Levels
	Source provenance.Source
}

// Map is the sparse path → entry map. Paths are materialized only when an
// entry is generated or committed.
type Map struct {
	entries map[skive.Path]Entry
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{entries: make(map[skive.Path]Entry)}
}

// Get returns the entry at p, or EmptyEntry when absent.
func (m *Map) Get(p skive.Path) Entry {
	if e, ok := m.entries[p]; ok {
		return e
	}
	return EmptyEntry()
}

// Has reports whether p has been materialized.
func (m *Map) Has(p skive.Path) bool {
	_, ok := m.entries[p]
	return ok
}

// Apply overwrites every tier at p with a generated suggestion and tags it
// ai, whatever source the generator reported.
func (m *Map) Apply(p skive.Path, s Suggestion) Entry {
	e := Entry{Levels: s.Levels, Source: provenance.AI}
	m.entries[p] = e
	return e
}

// Commit stores a manual edit at p, keeping the entry's source tag.
func (m *Map) Commit(p skive.Path, l Levels) Entry {
	e := m.Get(p)
	e.Levels = l
	m.entries[p] = e
	return e
}

// Put stores e verbatim.
func (m *Map) Put(p skive.Path, e Entry) {
	m.entries[p] = e
}

// Len returns the number of materialized entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	out := &Map{entries: make(map[skive.Path]Entry, len(m.entries))}
	for p, e := range m.entries {
		out.entries[p] = e
	}
	return out
}

// Paths returns the materialized paths in lexical order.
func (m *Map) Paths() []skive.Path {
	out := make([]skive.Path, 0, len(m.entries))
	for p := range m.entries {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON writes {"path":{"basic":..,"intermediate":..,"advanced":..,"source":..}}.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.entries)
}

// UnmarshalJSON reads the wire shape; entries with invalid paths are dropped.
func (m *Map) UnmarshalJSON(data []byte) error {
	var raw map[string]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.entries = make(map[skive.Path]Entry, len(raw))
	for k, e := range raw {
		p, err := skive.ParsePath(k)
		if err != nil {
			continue
		}
		e.Source = provenance.Parse(string(e.Source))
		m.entries[p] = e
	}
	return nil
}
