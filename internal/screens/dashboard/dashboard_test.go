package dashboard

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/router"
	"github.com/abhisek/prism/internal/screen"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/session"
	"github.com/abhisek/prism/internal/store"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type mockProfiles struct {
	screens.Profiles
	rows []gateway.Summary
	err  error
}

func (m *mockProfiles) Simulations(context.Context) ([]gateway.Summary, error) {
	return m.rows, m.err
}

func newTestDashboard(t *testing.T, user string) (*DashboardScreen, *session.Auth) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "prism.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	auth := session.NewAuth(st.SessionRepo())
	_, err = auth.Login(context.Background(), user, user)
	require.NoError(t, err)

	deps := &screens.Deps{
		Auth:     auth,
		Events:   st.EventRepo(),
		Profiles: &mockProfiles{rows: []gateway.Summary{{ID: 1}, {ID: 2}}},
		Login:    func() screen.Screen { return &stubScreen{title: "Login"} },
	}
	return New(deps), auth
}

func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }
func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestDashboard_LoadsProfileCount(t *testing.T) {
	d, _ := newTestDashboard(t, "admin")

	d.Update(d.Init()())
	assert.True(t, d.loaded)
	assert.Equal(t, 2, d.count)
	assert.Contains(t, d.View(100, 40), "2 SAVED PROFILES")
}

func TestDashboard_SignOutResetsToLogin(t *testing.T) {
	d, auth := newTestDashboard(t, "admin")

	for i := 0; i < itemLogout; i++ {
		d.Update(down())
	}
	_, cmd := d.Update(enter())
	require.NotNil(t, cmd)

	_, next := d.Update(cmd())
	require.NotNil(t, next)
	msg, ok := next().(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Login", msg.Screen.Title())
	assert.False(t, auth.LoggedIn())
}

func TestDashboard_EventLogAdminOnly(t *testing.T) {
	admin, _ := newTestDashboard(t, "admin")
	assert.False(t, admin.disabled[itemEvents])

	student, _ := newTestDashboard(t, "student")
	assert.True(t, student.disabled[itemEvents])

	// The menu skips the disabled entry.
	student.Update(down())
	student.Update(down())
	assert.Equal(t, itemLogout, student.menu.Selected)
}

func TestDashboard_NewProfilePushesEditor(t *testing.T) {
	d, _ := newTestDashboard(t, "admin")

	_, cmd := d.Update(enter())
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "New Profile", msg.Screen.Title())
}

func TestDashboard_Shortcuts(t *testing.T) {
	d, _ := newTestDashboard(t, "admin")

	_, cmd := d.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Saved Profiles", msg.Screen.Title())
	assert.Equal(t, itemProfiles, d.menu.Selected)

	student, _ := newTestDashboard(t, "student")
	_, cmd = student.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	assert.Nil(t, cmd, "event log shortcut is disabled for students")
}
