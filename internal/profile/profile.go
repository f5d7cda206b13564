// Package profile is the in-memory role profile being edited: selection,
// ratings, lists and objectives, plus the save and load conversions.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

// IncompleteMessage is shown when a save is attempted without a role or name.
const IncompleteMessage = "Please select a role and provide a profile name."

// ErrIncomplete is returned by Validate.
var ErrIncomplete = errors.New("profile needs a role and a name")

// Profile bundles everything one editing session changes.
type Profile struct {
	// ID is the server id once saved or loaded, zero for a new profile.
	ID   int64
	Name string

	Selection  taxonomy.State
	Ratings    skive.Ratings
	DayToDay   *lists.Editor
	KRAs       *lists.Editor
	Objectives *objectives.Map
}

// New returns a blank profile with the seed ratings.
func New() *Profile {
	return &Profile{
		Ratings:    skive.Seed(),
		DayToDay:   lists.New(lists.DayToDay),
		KRAs:       lists.New(lists.KRAs),
		Objectives: objectives.NewMap(),
	}
}

// FromRecord rebuilds a profile from a saved record. Missing ratings leaves
// are filled from the seed, missing lists become empty and missing
// objectives become an empty map.
func FromRecord(rec gateway.Record) *Profile {
	p := New()
	p.ID = rec.ID
	p.Name = rec.ProfileName
	p.Selection = taxonomy.Restore(taxonomy.Key{
		Profession: taxonomy.Option{ID: rec.ProfessionID, Name: rec.Profession},
		Department: taxonomy.Option{ID: rec.DepartmentID, Name: rec.Department},
		Role:       taxonomy.Option{ID: rec.RoleID, Name: rec.SpecificRole},
	})
	if rec.Skive != nil {
		p.Ratings = rec.Skive.Backfill(skive.Seed())
	}
	p.DayToDay.Reset(rec.DayToDay)
	p.KRAs.Reset(rec.KRAs)
	if rec.Objectives != nil {
		p.Objectives = rec.Objectives
	}
	return p
}

// List returns the editor for kind.
func (p *Profile) List(kind lists.Kind) *lists.Editor {
	if kind == lists.KRAs {
		return p.KRAs
	}
	return p.DayToDay
}

// Key is the current selection as sent to generation endpoints.
func (p *Profile) Key() taxonomy.Key {
	return p.Selection.Key()
}

// Validate requires a role and a non-blank name.
func (p *Profile) Validate() error {
	if !p.Selection.Role.IsSet() || strings.TrimSpace(p.Name) == "" {
		return ErrIncomplete
	}
	return nil
}

// Payload builds the save body. It shares no mutable state with p.
func (p *Profile) Payload() gateway.Payload {
	return gateway.Payload{
		Profession: p.Selection.Profession.ID,
		Department: p.Selection.Department.ID,
		Role:       p.Selection.Role.ID,
		Name:       strings.TrimSpace(p.Name),
		Skive:      p.Ratings,
		DayToDay:   p.DayToDay.Items(),
		KRAs:       p.KRAs.Items(),
		Objectives: p.Objectives.Clone(),
	}
}

// Prepare validates p and returns the save body.
func (p *Profile) Prepare() (gateway.Payload, error) {
	if err := p.Validate(); err != nil {
		return gateway.Payload{}, err
	}
	return p.Payload(), nil
}

// ArchetypeRequest builds the archetype body for the current ratings.
func (p *Profile) ArchetypeRequest() gateway.ArchetypeRequest {
	return gateway.ArchetypeRequest{
		ProfileID:  p.ID,
		Profession: p.Selection.Profession.ID,
		Department: p.Selection.Department.ID,
		Role:       p.Selection.Role.ID,
		Skive:      p.Ratings,
	}
}

// Saver persists a payload.
type Saver interface {
	Save(ctx context.Context, p gateway.Payload) (gateway.SaveResult, error)
}

// Save validates p and, only if it is complete, sends it. On success p.ID
// is set to the returned profile id.
func Save(ctx context.Context, s Saver, p *Profile) (gateway.SaveResult, error) {
	payload, err := p.Prepare()
	if err != nil {
		return gateway.SaveResult{}, err
	}
	res, err := s.Save(ctx, payload)
	if err != nil {
		return gateway.SaveResult{}, err
	}
	p.ID = res.ProfileID
	return res, nil
}

// SavedMessage is the confirmation shown after a save.
func SavedMessage(id int64) string {
	return fmt.Sprintf("Profile saved successfully! Profile ID: %d", id)
}
