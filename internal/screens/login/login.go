// Package login is the credential form shown when no session is active.
package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/router"
	"github.com/abhisek/prism/internal/screen"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/session"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldSubmit
	fieldCount
)

type loginResultMsg struct {
	User session.User
	Err  error
}

// LoginScreen collects a username and password.
type LoginScreen struct {
	deps     *screens.Deps
	username components.TextInput
	password components.TextInput
	focus    int
	busy     bool
	errMsg   string
}

var (
	_ screen.Screen          = (*LoginScreen)(nil)
	_ screen.KeyHintProvider = (*LoginScreen)(nil)
	_ screen.InputCapturer   = (*LoginScreen)(nil)
)

// New creates a LoginScreen.
func New(deps *screens.Deps) *LoginScreen {
	s := &LoginScreen{
		deps:     deps,
		username: components.NewTextInput("Username", "admin or student", 32),
		password: components.NewPasswordInput("Password"),
	}
	s.username.SetWidth(32)
	s.password.SetWidth(32)
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.setFocus(fieldUsername)
}

func (s *LoginScreen) Title() string {
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// CapturingInput keeps Esc and letters inside the form.
func (s *LoginScreen) CapturingInput() bool {
	return true
}

func (s *LoginScreen) setFocus(f int) tea.Cmd {
	s.focus = (f + fieldCount) % fieldCount
	s.username.Blur()
	s.password.Blur()
	switch s.focus {
	case fieldUsername:
		return s.username.Focus()
	case fieldPassword:
		return s.password.Focus()
	}
	return nil
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = loginError(msg.Err)
			s.password.SetValue("")
			return s, s.setFocus(fieldPassword)
		}
		s.deps.Logger().Info("user signed in", map[string]any{
			"username": msg.User.Username,
			"role":     string(msg.User.Role),
		})
		return s, router.Replace(s.deps.Dashboard())

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			if s.focus == fieldUsername {
				return s, s.setFocus(fieldPassword)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldUsername:
		s.username, cmd = s.username.Update(msg)
	case fieldPassword:
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	s.busy = true
	s.errMsg = ""
	auth := s.deps.Auth
	user, pass := strings.TrimSpace(s.username.Value()), s.password.Value()
	return func() tea.Msg {
		u, err := auth.Login(context.Background(), user, pass)
		return loginResultMsg{User: u, Err: err}
	}
}

func loginError(err error) string {
	if errors.Is(err, session.ErrInvalidCredentials) {
		return session.InvalidCredentialsMessage
	}
	return "Could not save the session: " + err.Error()
}

func (s *LoginScreen) View(width, height int) string {
	submit := components.NewButton("Sign In")
	submit.Focused = s.focus == fieldSubmit
	submit.Disabled = s.busy

	parts := []string{
		RenderLogo(),
		theme.Subtitle.Render("Sign in to continue"),
		"",
		s.username.View(),
		"",
		s.password.View(),
		"",
		submit.View(),
	}
	if s.errMsg != "" {
		parts = append(parts, "", theme.ErrorText.Render(s.errMsg))
	}
	if s.busy {
		parts = append(parts, "", theme.Hint.Render("Signing in…"))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 3).
		Render(strings.Join(parts, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// RenderLogo is the small wordmark above the form.
func RenderLogo() string {
	return theme.Title.Render("◆ PRISM")
}
