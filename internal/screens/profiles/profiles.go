// Package profiles lists saved profiles and opens them in the editor.
package profiles

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/profile"
	"github.com/abhisek/prism/internal/router"
	"github.com/abhisek/prism/internal/screen"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/screens/archetype"
	"github.com/abhisek/prism/internal/screens/editor"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

// target is what to open once a record has loaded.
type target int

const (
	openEditor target = iota
	openArchetype
)

type listLoadedMsg struct {
	Rows []gateway.Summary
	Err  error
}

type recordLoadedMsg struct {
	Record gateway.Record
	Target target
	Err    error
}

// ProfilesScreen displays the saved profiles table.
type ProfilesScreen struct {
	deps     *screens.Deps
	rows     []gateway.Summary
	selected int
	loaded   bool
	loading  bool
	errMsg   string
	dialog   components.Dialog
}

var (
	_ screen.Screen          = (*ProfilesScreen)(nil)
	_ screen.KeyHintProvider = (*ProfilesScreen)(nil)
	_ screen.InputCapturer   = (*ProfilesScreen)(nil)
)

// New creates a ProfilesScreen.
func New(deps *screens.Deps) *ProfilesScreen {
	return &ProfilesScreen{deps: deps}
}

func (s *ProfilesScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ProfilesScreen) load() tea.Cmd {
	s.loaded = false
	s.errMsg = ""
	p := s.deps.Profiles
	return func() tea.Msg {
		rows, err := p.Simulations(context.Background())
		return listLoadedMsg{Rows: rows, Err: err}
	}
}

func (s *ProfilesScreen) open(t target) tea.Cmd {
	if s.loading || s.selected >= len(s.rows) {
		return nil
	}
	s.loading = true
	id := s.rows[s.selected].ID
	p := s.deps.Profiles
	return func() tea.Msg {
		rec, err := p.Simulation(context.Background(), id)
		return recordLoadedMsg{Record: rec, Target: t, Err: err}
	}
}

func (s *ProfilesScreen) Title() string {
	return "Saved Profiles"
}

func (s *ProfilesScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Edit"},
		{Key: "a", Description: "Archetype"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfilesScreen) CapturingInput() bool {
	return s.dialog.Open
}

func (s *ProfilesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && s.dialog.Open {
		s.dialog, _ = s.dialog.Update(k)
		return s, nil
	}

	switch msg := msg.(type) {
	case listLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = screens.ErrorMessage(msg.Err)
			s.deps.Logger().Warn("listing profiles failed", map[string]any{"error": msg.Err.Error()})
			return s, nil
		}
		s.rows = msg.Rows
		if s.selected >= len(s.rows) {
			s.selected = max(len(s.rows)-1, 0)
		}
		return s, nil

	case recordLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.dialog.ShowAlert("Load Failed", screens.ErrorMessage(msg.Err))
			return s, nil
		}
		p := profile.FromRecord(msg.Record)
		if msg.Target == openArchetype {
			return s, router.Push(archetype.New(s.deps, p))
		}
		return s, router.Push(editor.New(s.deps, p))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			return s, s.load()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
		case "enter":
			return s, s.open(openEditor)
		case "a":
			return s, s.open(openArchetype)
		}
	}
	return s, nil
}

func (s *ProfilesScreen) View(width, height int) string {
	if s.dialog.Open {
		return s.dialog.View(width, height)
	}
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var body string
	switch {
	case s.errMsg != "":
		body = components.ConnectionError(s.errMsg, cw)
	case !s.loaded:
		body = lipgloss.NewStyle().Foreground(theme.TextDim).Render("\n\nLoading profiles...")
	case len(s.rows) == 0:
		body = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo saved profiles yet. Create one from the dashboard.")
	default:
		body = s.renderTable(cw)
		if s.loading {
			body += "\n" + theme.Hint.Render("Opening...")
		}
	}

	return center.Render(body)
}

func (s *ProfilesScreen) renderTable(cw int) string {
	rows := make([][]string, 0, len(s.rows))
	for _, r := range s.rows {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.ProfileName,
			r.SpecificRole,
			r.Department,
			orDash(r.Archetype),
			orDash(r.UpdatedAt),
		})
	}

	header := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	selected := cell.Foreground(theme.Accent).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("ID", "NAME", "ROLE", "DEPARTMENT", "ARCHETYPE", "UPDATED").
		Rows(rows...).
		Width(cw).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row == s.selected:
				return selected
			default:
				return cell
			}
		})
	return t.String()
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
