// Package editor is the multi-tab profile editor: role selection, SKIVE
// ratings, the two list editors and objective authoring.
package editor

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/profile"
	"github.com/abhisek/prism/internal/router"
	"github.com/abhisek/prism/internal/screen"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/screens/archetype"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

// flashDuration is how long transient confirmations stay visible.
const flashDuration = 1500 * time.Millisecond

// noRoleMessage is shown when generation is requested before a role is chosen.
const noRoleMessage = "Please select a profession, department and role first."

type tab int

const (
	tabRole tab = iota
	tabRatings
	tabDayToDay
	tabKRAs
	tabObjectives
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabRole:
		return "Role"
	case tabRatings:
		return "Ratings"
	case tabDayToDay:
		return "Day-to-Day"
	case tabKRAs:
		return "KRAs"
	case tabObjectives:
		return "Objectives"
	default:
		return ""
	}
}

type savedMsg struct {
	Result gateway.SaveResult
	Err    error
}

type flashExpiredMsg struct {
	id int
}

// EditorScreen edits one profile.Profile.
type EditorScreen struct {
	deps      *screens.Deps
	profile   *profile.Profile
	author    *objectives.Author
	suggester *lists.Suggester
	ctx       context.Context
	cancel    context.CancelFunc

	tab        tab
	role       roleTab
	ratings    ratingsTab
	dayToDay   listTab
	kras       listTab
	objectives objectivesTab

	dialog    components.Dialog
	onConfirm func() tea.Cmd
	saving    bool
	flash     string
	flashID   int
}

var (
	_ screen.Screen          = (*EditorScreen)(nil)
	_ screen.KeyHintProvider = (*EditorScreen)(nil)
	_ screen.InputCapturer   = (*EditorScreen)(nil)
	_ screen.Closer          = (*EditorScreen)(nil)
)

// New opens p in the editor. A nil p starts a blank profile.
func New(deps *screens.Deps, p *profile.Profile) *EditorScreen {
	if p == nil {
		p = profile.New()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e := &EditorScreen{
		deps:      deps,
		profile:   p,
		author:    objectives.NewAuthor(p.Objectives, deps.Objectives),
		suggester: lists.NewSuggester(deps.Lists),
		ctx:       ctx,
		cancel:    cancel,
	}
	e.role = newRoleTab(p)
	e.ratings = newRatingsTab(p.Ratings)
	e.dayToDay = newListTab(p.DayToDay)
	e.kras = newListTab(p.KRAs)
	e.objectives = newObjectivesTab(p.Ratings)
	return e
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.role.init(e)
}

func (e *EditorScreen) Title() string {
	if e.profile.ID != 0 {
		return "Edit Profile: " + e.profile.Name
	}
	return "New Profile"
}

// Close cancels every in-flight request started by the editor.
func (e *EditorScreen) Close() {
	e.author.Close()
	e.suggester.Close()
	e.cancel()
}

// CapturingInput reports whether Esc belongs to the editor: a dialog, an
// inline list edit or an open objective card.
func (e *EditorScreen) CapturingInput() bool {
	if e.dialog.Open {
		return true
	}
	switch e.tab {
	case tabDayToDay:
		return e.dayToDay.editing()
	case tabKRAs:
		return e.kras.editing()
	case tabObjectives:
		return e.objectives.cardOpen()
	}
	return false
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	if e.dialog.Open {
		return nil
	}
	hints := []layout.KeyHint{
		{Key: "^N/^P", Description: "Tab"},
		{Key: "^S", Description: "Save"},
	}
	switch e.tab {
	case tabRole:
		hints = append(hints, e.role.hints()...)
	case tabRatings:
		hints = append(hints, e.ratings.hints()...)
	case tabDayToDay:
		hints = append(hints, e.dayToDay.hints()...)
	case tabKRAs:
		hints = append(hints, e.kras.hints()...)
	case tabObjectives:
		hints = append(hints, e.objectives.hints()...)
	}
	if !e.CapturingInput() {
		hints = append(hints,
			layout.KeyHint{Key: "^A", Description: "Archetype"},
			layout.KeyHint{Key: "Esc", Description: "Back"},
		)
	}
	return hints
}

// list returns the tab state for kind.
func (e *EditorScreen) list(kind lists.Kind) *listTab {
	if kind == lists.KRAs {
		return &e.kras
	}
	return &e.dayToDay
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Only key presses belong to an open dialog; async results still land.
	if k, ok := msg.(tea.KeyPressMsg); ok && e.dialog.Open {
		var res components.DialogResult
		e.dialog, res = e.dialog.Update(k)
		if res == components.DialogNone {
			return e, nil
		}
		confirm := e.onConfirm
		e.onConfirm = nil
		if res == components.DialogConfirmed && confirm != nil {
			return e, confirm()
		}
		return e, nil
	}

	switch msg := msg.(type) {
	case savedMsg:
		return e, e.handleSaved(msg)

	case flashExpiredMsg:
		if msg.id == e.flashID {
			e.flash = ""
		}
		return e, nil

	case professionsMsg, departmentsMsg, rolesMsg:
		return e, e.role.handleLoaded(e, msg)

	case listOutcomeMsg:
		return e, e.handleListOutcome(msg)

	case objectiveOutcomeMsg:
		return e, e.objectives.handleOutcome(e, msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+s":
			return e, e.save()
		case "ctrl+n":
			return e, e.switchTab((e.tab + 1) % tabCount)
		case "ctrl+p":
			return e, e.switchTab((e.tab + tabCount - 1) % tabCount)
		case "ctrl+a":
			if e.CapturingInput() {
				break
			}
			return e, router.Push(archetype.New(e.deps, e.profile))
		}
	}

	switch e.tab {
	case tabRole:
		return e, e.role.update(e, msg)
	case tabRatings:
		return e, e.ratings.update(e, msg)
	case tabDayToDay:
		return e, e.dayToDay.update(e, msg)
	case tabKRAs:
		return e, e.kras.update(e, msg)
	case tabObjectives:
		return e, e.objectives.update(e, msg)
	}
	return e, nil
}

// switchTab leaves any inline edit by committing it.
func (e *EditorScreen) switchTab(t tab) tea.Cmd {
	e.dayToDay.commit(e)
	e.kras.commit(e)
	e.role.blur()
	e.tab = t
	if t == tabRole {
		return e.role.focus()
	}
	return nil
}

func (e *EditorScreen) alert(title, message string) {
	e.onConfirm = nil
	e.dialog.ShowAlert(title, message)
}

func (e *EditorScreen) confirm(title, message string, then func() tea.Cmd) {
	e.dialog.ShowConfirm(title, message)
	e.onConfirm = then
}

func (e *EditorScreen) showFlash(text string) tea.Cmd {
	e.flashID++
	e.flash = text
	id := e.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}

// save validates on the UI goroutine and sends a detached payload.
func (e *EditorScreen) save() tea.Cmd {
	if e.saving {
		return nil
	}
	e.dayToDay.commit(e)
	e.kras.commit(e)
	e.profile.Name = strings.TrimSpace(e.role.name.Value())

	payload, err := e.profile.Prepare()
	if err != nil {
		e.alert("Incomplete Profile", profile.IncompleteMessage)
		return nil
	}
	e.saving = true
	api := e.deps.Profiles
	ctx := e.ctx
	return func() tea.Msg {
		res, err := api.Save(ctx, payload)
		return savedMsg{Result: res, Err: err}
	}
}

func (e *EditorScreen) handleSaved(msg savedMsg) tea.Cmd {
	e.saving = false
	if msg.Err != nil {
		e.deps.Logger().Warn("profile save failed", map[string]any{"error": msg.Err.Error()})
		e.alert("Save Failed", screens.ErrorMessage(msg.Err))
		return nil
	}
	e.profile.ID = msg.Result.ProfileID
	e.deps.Logger().Info("profile saved", map[string]any{
		"profile_id": msg.Result.ProfileID,
		"name":       e.profile.Name,
	})
	e.alert("Saved", profile.SavedMessage(msg.Result.ProfileID))
	return nil
}

func (e *EditorScreen) View(width, height int) string {
	if e.dialog.Open {
		return e.dialog.View(width, height)
	}
	cw := components.ContentWidth(width)

	var tabs []string
	for t := tab(0); t < tabCount; t++ {
		style := theme.Tab
		if t == e.tab {
			style = theme.ActiveTab
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	status := ""
	switch {
	case e.saving:
		status = theme.Hint.Render("Saving...")
	case e.flash != "":
		status = theme.SuccessText.Render(e.flash)
	}

	bodyHeight := max(height-4, 4)
	var body string
	switch e.tab {
	case tabRole:
		body = e.role.view(e, cw)
	case tabRatings:
		body = e.ratings.view(e, cw, bodyHeight)
	case tabDayToDay:
		body = e.dayToDay.view(e, cw, bodyHeight)
	case tabKRAs:
		body = e.kras.view(e, cw, bodyHeight)
	case tabObjectives:
		body = e.objectives.view(e, cw, bodyHeight)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, bar, status, body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(content))
}
