package editor

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/profile"
	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

var (
	insurance = taxonomy.Option{ID: 1, Name: "Insurance"}
	claims    = taxonomy.Option{ID: 2, Name: "Claims"}
	adjuster  = taxonomy.Option{ID: 3, Name: "Adjuster"}
)

type mockTaxonomy struct {
	err   error
	calls int
}

func (m *mockTaxonomy) Professions(context.Context) ([]taxonomy.Option, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []taxonomy.Option{insurance}, nil
}

func (m *mockTaxonomy) Departments(_ context.Context, id taxonomy.ID) ([]taxonomy.Option, error) {
	m.calls++
	return []taxonomy.Option{claims}, m.err
}

func (m *mockTaxonomy) Roles(_ context.Context, id taxonomy.ID) ([]taxonomy.Option, error) {
	m.calls++
	return []taxonomy.Option{adjuster}, m.err
}

type mockGenerator struct {
	objective objectives.Suggestion
	objErr    error
	list      lists.Suggestion
	listErr   error
	listCalls int
	lastCtx   context.Context
}

func (m *mockGenerator) SuggestObjectives(ctx context.Context, _ taxonomy.Key, _ skive.Path) (objectives.Suggestion, error) {
	m.lastCtx = ctx
	return m.objective, m.objErr
}

func (m *mockGenerator) SuggestList(ctx context.Context, _ lists.Kind, _ taxonomy.Key) (lists.Suggestion, error) {
	m.listCalls++
	m.lastCtx = ctx
	return m.list, m.listErr
}

type mockProfiles struct {
	saved []gateway.Payload
	err   error
}

func (m *mockProfiles) Save(_ context.Context, p gateway.Payload) (gateway.SaveResult, error) {
	if m.err != nil {
		return gateway.SaveResult{}, m.err
	}
	m.saved = append(m.saved, p)
	return gateway.SaveResult{ProfileID: 42}, nil
}

func (m *mockProfiles) Simulations(context.Context) ([]gateway.Summary, error) { return nil, nil }

func (m *mockProfiles) Simulation(context.Context, int64) (gateway.Record, error) {
	return gateway.Record{}, nil
}

func (m *mockProfiles) Archetype(context.Context, gateway.ArchetypeRequest) (gateway.ArchetypeResult, error) {
	return gateway.ArchetypeResult{}, nil
}

type fixture struct {
	screen   *EditorScreen
	taxonomy *mockTaxonomy
	gen      *mockGenerator
	profiles *mockProfiles
}

// newFixture opens an editor on p; a nil p starts blank.
func newFixture(p *profile.Profile) fixture {
	f := fixture{
		taxonomy: &mockTaxonomy{},
		gen:      &mockGenerator{},
		profiles: &mockProfiles{},
	}
	deps := &screens.Deps{
		Taxonomy:   f.taxonomy,
		Objectives: f.gen,
		Lists:      f.gen,
		Profiles:   f.profiles,
	}
	f.screen = New(deps, p)
	return f
}

// chosenProfile has a complete role selection and a name.
func chosenProfile() *profile.Profile {
	p := profile.New()
	p.Selection = taxonomy.Restore(taxonomy.Key{Profession: insurance, Department: claims, Role: adjuster})
	p.Name = "Adjuster v1"
	return p
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case "ctrl+n":
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// exec runs cmd and flattens batches into their messages.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, exec(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// press sends a key and feeds the resulting messages back.
func (f fixture) press(k string) {
	_, cmd := f.screen.Update(key(k))
	f.feed(cmd)
}

func (f fixture) feed(cmd tea.Cmd) {
	for _, msg := range exec(cmd) {
		f.screen.Update(msg)
	}
}

func (f fixture) gotoTab(t tab) {
	for f.screen.tab != t {
		f.screen.Update(key("ctrl+n"))
	}
}

func TestSave_IncompleteShowsAlertWithoutRequest(t *testing.T) {
	f := newFixture(nil)

	_, cmd := f.screen.Update(key("ctrl+s"))
	assert.Nil(t, cmd)
	assert.True(t, f.screen.dialog.Open)
	assert.Equal(t, profile.IncompleteMessage, f.screen.dialog.Message)
	assert.Empty(t, f.profiles.saved)
	assert.True(t, f.screen.CapturingInput())
}

func TestSave_CompleteProfile(t *testing.T) {
	f := newFixture(chosenProfile())

	_, cmd := f.screen.Update(key("ctrl+s"))
	require.NotNil(t, cmd)
	f.feed(cmd)

	require.Len(t, f.profiles.saved, 1)
	assert.Equal(t, taxonomy.ID(3), f.profiles.saved[0].Role)
	assert.Equal(t, "Adjuster v1", f.profiles.saved[0].Name)
	assert.Equal(t, int64(42), f.screen.profile.ID)
	assert.Equal(t, profile.SavedMessage(42), f.screen.dialog.Message)
	assert.Equal(t, "Edit Profile: Adjuster v1", f.screen.Title())
}

func TestSave_ServerErrorShownVerbatim(t *testing.T) {
	f := newFixture(chosenProfile())
	f.profiles.err = &gateway.APIError{Status: 400, Message: "Role not found"}

	f.press("ctrl+s")

	assert.Equal(t, "Role not found", f.screen.dialog.Message)
	assert.Zero(t, f.screen.profile.ID)
	assert.False(t, f.screen.saving)
}

func TestRole_CascadingSelection(t *testing.T) {
	f := newFixture(nil)
	f.screen.Update(professionsMsg{Options: []taxonomy.Option{insurance}})

	f.press("enter")
	assert.Equal(t, insurance, f.screen.profile.Selection.Profession)
	assert.Equal(t, []taxonomy.Option{claims}, f.screen.profile.Selection.Departments)
	assert.Equal(t, fieldDepartment, f.screen.role.focused)

	f.press("enter")
	assert.Equal(t, claims, f.screen.profile.Selection.Department)
	assert.Equal(t, []taxonomy.Option{adjuster}, f.screen.profile.Selection.Roles)

	f.screen.Update(key("enter"))
	assert.Equal(t, adjuster, f.screen.profile.Selection.Role)
	assert.Equal(t, fieldName, f.screen.role.focused)
}

func TestRole_StaleDepartmentsIgnored(t *testing.T) {
	f := newFixture(nil)
	f.screen.Update(professionsMsg{Options: []taxonomy.Option{insurance}})
	f.screen.profile.Selection = taxonomy.Transition(f.screen.profile.Selection, taxonomy.ChooseProfession{Option: insurance})

	f.screen.Update(departmentsMsg{Parent: 99, Options: []taxonomy.Option{{ID: 7, Name: "Other"}}})
	assert.Empty(t, f.screen.profile.Selection.Departments)
}

func TestRole_LoadErrorRetries(t *testing.T) {
	f := newFixture(nil)
	f.screen.Update(professionsMsg{Err: gateway.ErrUnavailable})
	assert.NotEmpty(t, f.screen.role.errMsg)
	assert.Contains(t, f.screen.View(120, 40), "Connection Error")

	f.press("r")
	assert.Empty(t, f.screen.role.errMsg)
	assert.Equal(t, []taxonomy.Option{insurance}, f.screen.role.professions)
	assert.Equal(t, 1, f.taxonomy.calls)
}

func TestRatings_SliderChangesScore(t *testing.T) {
	f := newFixture(nil)
	f.gotoTab(tabRatings)

	p := f.screen.ratings.paths[0]
	before, _ := f.screen.profile.Ratings.Get(p)

	f.press("right")
	after, _ := f.screen.profile.Ratings.Get(p)
	assert.Equal(t, min(before+1, skive.MaxScore), after)

	f.press("1")
	score, _ := f.screen.profile.Ratings.Get(p)
	assert.Equal(t, 1, score)

	f.press("0")
	score, _ = f.screen.profile.Ratings.Get(p)
	assert.Equal(t, 10, score)
}

func TestLists_GenerateEmptyListRunsImmediately(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gen.list = lists.Suggestion{Items: []string{"Review claims", "Call customers"}, Source: provenance.AI}
	f.gotoTab(tabDayToDay)

	f.press("g")

	assert.Equal(t, []string{"Review claims", "Call customers"}, f.screen.profile.DayToDay.Items())
	assert.Equal(t, provenance.AI, f.screen.profile.DayToDay.Source())
	assert.False(t, f.screen.dialog.Open)
}

func TestLists_GenerateNonEmptyAsksFirst(t *testing.T) {
	p := chosenProfile()
	p.KRAs.Reset([]string{"Existing"})
	f := newFixture(p)
	f.gen.list = lists.Suggestion{Items: []string{"New KRA"}, Source: provenance.Default}
	f.gotoTab(tabKRAs)

	f.press("g")
	require.True(t, f.screen.dialog.Open)
	assert.Zero(t, f.gen.listCalls)

	f.press("n")
	assert.Zero(t, f.gen.listCalls)
	assert.Equal(t, []string{"Existing"}, p.KRAs.Items())

	f.press("g")
	f.press("y")
	assert.Equal(t, 1, f.gen.listCalls)
	assert.Equal(t, []string{"New KRA"}, p.KRAs.Items())
}

func TestLists_GenerateFailureLeavesListUnchanged(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gen.listErr = gateway.ErrUnavailable
	f.gotoTab(tabDayToDay)

	f.press("g")
	assert.True(t, f.screen.dialog.Open)
	assert.Zero(t, f.screen.profile.DayToDay.Len())
}

func TestLists_GenerateNeedsRole(t *testing.T) {
	f := newFixture(nil)
	f.gotoTab(tabDayToDay)

	f.press("g")
	assert.Equal(t, noRoleMessage, f.screen.dialog.Message)
	assert.Zero(t, f.gen.listCalls)
}

func TestLists_AddEditRemove(t *testing.T) {
	f := newFixture(nil)
	f.gotoTab(tabDayToDay)
	ed := f.screen.profile.DayToDay

	f.screen.Update(key("a"))
	assert.True(t, f.screen.CapturingInput())
	assert.Equal(t, []string{lists.Placeholder}, ed.Items())

	f.screen.dayToDay.input.SetValue("Triage queue")
	f.screen.Update(key("enter"))
	assert.False(t, f.screen.CapturingInput())
	assert.Equal(t, []string{"Triage queue"}, ed.Items())

	f.screen.Update(key("d"))
	assert.Zero(t, ed.Len())
}

func TestObjectives_GenerateFailureAlerts(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gen.objErr = errors.New("boom")
	f.gotoTab(tabObjectives)
	path := f.screen.objectives.paths[0]

	f.press("g")

	assert.Equal(t, GenerateFailedMessage, f.screen.dialog.Message)
	assert.False(t, f.screen.author.Map.Has(path))
}

func TestObjectives_GenerateFillsOpenCard(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gen.objective = objectives.Suggestion{Levels: objectives.Levels{Basic: "B", Intermediate: "I", Advanced: "A"}}
	f.gotoTab(tabObjectives)
	path := f.screen.objectives.paths[0]

	f.screen.Update(key("enter"))
	require.True(t, f.screen.objectives.cardOpen())

	_, cmd := f.screen.Update(tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl})
	f.feed(cmd)

	entry := f.screen.author.Map.Get(path)
	assert.Equal(t, "B", entry.Basic)
	assert.Equal(t, provenance.AI, entry.Source)
	assert.Equal(t, "I", f.screen.objectives.inputs[1].Value())
	assert.False(t, f.screen.objectives.card.Dirty())
}

func TestObjectives_CardSaveOnlyWhenDirty(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gotoTab(tabObjectives)
	path := f.screen.objectives.paths[0]

	f.screen.Update(key("enter"))
	require.True(t, f.screen.objectives.cardOpen())

	for i := 0; i < saveFocus; i++ {
		f.screen.Update(key("tab"))
	}
	_, cmd := f.screen.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.False(t, f.screen.author.Map.Has(path))

	f.screen.objectives.setFocus(0)
	f.screen.Update(key("x"))
	assert.True(t, f.screen.objectives.card.Dirty())

	f.screen.objectives.setFocus(saveFocus)
	_, cmd = f.screen.Update(key("enter"))
	assert.NotNil(t, cmd)
	assert.Equal(t, savedFlash, f.screen.flash)
	assert.Equal(t, "x", f.screen.author.Map.Get(path).Basic)
	assert.False(t, f.screen.objectives.card.Dirty())
}

func TestObjectives_EscRevertsAndCloses(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gotoTab(tabObjectives)
	path := f.screen.objectives.paths[0]

	f.screen.Update(key("enter"))
	f.screen.Update(key("x"))
	f.screen.Update(key("esc"))

	assert.False(t, f.screen.objectives.cardOpen())
	assert.False(t, f.screen.author.Map.Has(path))
}

func TestClose_CancelsInFlightGeneration(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gotoTab(tabObjectives)

	_, cmd := f.screen.Update(key("g"))
	require.NotNil(t, cmd)
	f.screen.Close()

	msg := cmd()
	require.NotNil(t, f.gen.lastCtx)
	assert.Error(t, f.gen.lastCtx.Err())

	f.screen.Update(msg)
	assert.False(t, f.screen.dialog.Open)
}

func TestLists_OutcomeAppliedBehindAlert(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gen.list = lists.Suggestion{Items: []string{"Review claims"}, Source: provenance.AI}
	f.gotoTab(tabDayToDay)

	_, generate := f.screen.Update(key("g"))
	require.NotNil(t, generate)
	require.True(t, f.screen.suggester.Pending(lists.DayToDay))

	_, save := f.screen.Update(key("ctrl+s"))
	f.feed(save)
	require.True(t, f.screen.dialog.Open)
	assert.Equal(t, profile.SavedMessage(42), f.screen.dialog.Message)

	f.feed(generate)
	assert.False(t, f.screen.suggester.Pending(lists.DayToDay))
	assert.Equal(t, []string{"Review claims"}, f.screen.profile.DayToDay.Items())

	f.press("enter")
	assert.False(t, f.screen.dialog.Open)
}

func TestSave_ResultLandsBehindAlert(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gen.listErr = gateway.ErrUnavailable
	f.gotoTab(tabDayToDay)

	_, save := f.screen.Update(key("ctrl+s"))
	require.NotNil(t, save)
	f.press("g")
	require.True(t, f.screen.dialog.Open)

	f.feed(save)
	assert.False(t, f.screen.saving)
	assert.Equal(t, profile.SavedMessage(42), f.screen.dialog.Message)

	f.press("enter")
	_, again := f.screen.Update(key("ctrl+s"))
	require.NotNil(t, again)
	f.feed(again)
	assert.Len(t, f.profiles.saved, 2)
}

func TestLists_ChangedWhileGeneratingAsksAgain(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gen.list = lists.Suggestion{Items: []string{"Generated"}, Source: provenance.AI}
	f.gotoTab(tabDayToDay)
	ed := f.screen.profile.DayToDay

	_, generate := f.screen.Update(key("g"))
	require.NotNil(t, generate)
	ed.Reset([]string{"Typed meanwhile"})

	f.feed(generate)
	require.True(t, f.screen.dialog.Open)
	assert.Equal(t, "The list changed while generating. Replace it anyway?", f.screen.dialog.Message)
	assert.Equal(t, []string{"Typed meanwhile"}, ed.Items())

	_, cmd := f.screen.Update(key("y"))
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"Generated"}, ed.Items())
	assert.Equal(t, provenance.AI, ed.Source())
}

func TestLists_ChangedWhileGeneratingDeclineKeepsItems(t *testing.T) {
	f := newFixture(chosenProfile())
	f.gen.list = lists.Suggestion{Items: []string{"Generated"}, Source: provenance.AI}
	f.gotoTab(tabDayToDay)
	ed := f.screen.profile.DayToDay

	_, generate := f.screen.Update(key("g"))
	ed.Reset([]string{"Typed meanwhile"})
	f.feed(generate)

	f.press("n")
	assert.False(t, f.screen.dialog.Open)
	assert.Equal(t, []string{"Typed meanwhile"}, ed.Items())
}
