// Package dashboard is the signed-in home screen.
package dashboard

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prism/internal/router"
	"github.com/abhisek/prism/internal/screen"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/screens/editor"
	"github.com/abhisek/prism/internal/screens/events"
	"github.com/abhisek/prism/internal/screens/profiles"
	"github.com/abhisek/prism/internal/session"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
)

const (
	itemNew = iota
	itemProfiles
	itemEvents
	itemLogout
	itemQuit
)

type countLoadedMsg struct {
	Count int
	Err   error
}

type loggedOutMsg struct {
	Err error
}

// DashboardScreen offers the main actions.
type DashboardScreen struct {
	deps     *screens.Deps
	menu     components.Menu
	labels   []string
	disabled map[int]bool
	user     session.User
	count    int
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*DashboardScreen)(nil)
	_ screen.KeyHintProvider = (*DashboardScreen)(nil)
)

// New creates the dashboard. The event log is admin-only.
func New(deps *screens.Deps) *DashboardScreen {
	user, _ := deps.Auth.Current()

	d := &DashboardScreen{
		deps:     deps,
		user:     user,
		labels:   []string{"NEW PROFILE", "SAVED PROFILES", "EVENT LOG", "SIGN OUT", "QUIT"},
		disabled: map[int]bool{itemEvents: deps.Events == nil || user.Role != session.RoleAdmin},
	}

	items := []components.MenuItem{
		{Label: d.labels[itemNew], Key: "n", Action: func() tea.Cmd {
			return router.Push(editor.New(deps, nil))
		}},
		{Label: d.labels[itemProfiles], Key: "p", Action: func() tea.Cmd {
			return router.Push(profiles.New(deps))
		}},
		{Label: d.labels[itemEvents], Key: "e", Disabled: d.disabled[itemEvents], Action: func() tea.Cmd {
			return router.Push(events.New(deps.Events))
		}},
		{Label: d.labels[itemLogout], Key: "o", Action: d.logout},
		{Label: d.labels[itemQuit], Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	d.menu = components.NewMenu(items)
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	p := d.deps.Profiles
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		list, err := p.Simulations(context.Background())
		return countLoadedMsg{Count: len(list), Err: err}
	}
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "n/p/e/o/q", Description: "Shortcut"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) logout() tea.Cmd {
	auth := d.deps.Auth
	return func() tea.Msg {
		return loggedOutMsg{Err: auth.Clear(context.Background())}
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countLoadedMsg:
		d.loaded = true
		d.count = msg.Count
		if msg.Err != nil {
			d.count = -1
		}
		return d, nil

	case loggedOutMsg:
		if msg.Err != nil {
			d.errMsg = "Sign out failed: " + msg.Err.Error()
			return d, nil
		}
		d.deps.Logger().Info("user signed out", map[string]any{"username": d.user.Username})
		return d, router.Reset(d.deps.Login())
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	sections := []string{
		renderTitle(cw),
		renderStatsBar(d.user.Username, string(d.user.Role), d.count, d.loaded, cw),
		renderMenu(d.menu.Items, d.menu.Selected, cw),
	}
	if d.errMsg != "" {
		sections = append(sections, d.errMsg)
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
