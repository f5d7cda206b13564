package profiles

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/router"
	"github.com/abhisek/prism/internal/screens"
)

type mockProfiles struct {
	screens.Profiles
	rows    []gateway.Summary
	listErr error
	record  gateway.Record
	recErr  error
	loaded  []int64
}

func (m *mockProfiles) Simulations(context.Context) ([]gateway.Summary, error) {
	return m.rows, m.listErr
}

func (m *mockProfiles) Simulation(_ context.Context, id int64) (gateway.Record, error) {
	m.loaded = append(m.loaded, id)
	rec := m.record
	rec.ID = id
	return rec, m.recErr
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func newTestScreen(api *mockProfiles) *ProfilesScreen {
	s := New(&screens.Deps{Profiles: api})
	s.Update(s.Init()())
	return s
}

func TestProfiles_ListsRows(t *testing.T) {
	api := &mockProfiles{rows: []gateway.Summary{
		{ID: 7, ProfileName: "Adjuster v1", SpecificRole: "Adjuster"},
		{ID: 9, ProfileName: "Analyst", SpecificRole: "Analyst"},
	}}
	s := newTestScreen(api)

	view := s.View(120, 30)
	assert.Contains(t, view, "Adjuster v1")
	assert.Contains(t, view, "Analyst")
}

func TestProfiles_ErrorShowsRetryPanel(t *testing.T) {
	api := &mockProfiles{listErr: gateway.ErrUnavailable}
	s := newTestScreen(api)
	assert.Contains(t, s.View(120, 30), "Connection Error")

	api.listErr = nil
	api.rows = []gateway.Summary{{ID: 1, ProfileName: "Recovered"}}
	_, cmd := s.Update(key("r"))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Empty(t, s.errMsg)
	assert.Contains(t, s.View(120, 30), "Recovered")
}

func TestProfiles_EnterOpensEditor(t *testing.T) {
	api := &mockProfiles{
		rows:   []gateway.Summary{{ID: 7}, {ID: 9}},
		record: gateway.Record{ProfileName: "Loaded", DayToDay: []string{"a"}},
	}
	s := newTestScreen(api)

	s.Update(key("down"))
	_, cmd := s.Update(key("enter"))
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	require.NotNil(t, next)

	msg, ok := next().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, []int64{9}, api.loaded)
	assert.Equal(t, "Edit Profile: Loaded", msg.Screen.Title())
}

func TestProfiles_AOpensArchetype(t *testing.T) {
	api := &mockProfiles{
		rows:   []gateway.Summary{{ID: 7}},
		record: gateway.Record{ProfileName: "Loaded"},
	}
	s := newTestScreen(api)

	_, cmd := s.Update(key("a"))
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())

	msg, ok := next().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Archetype: Loaded", msg.Screen.Title())
}

func TestProfiles_ListRefreshLandsBehindAlert(t *testing.T) {
	api := &mockProfiles{
		rows:   []gateway.Summary{{ID: 7, ProfileName: "Old"}},
		recErr: gateway.ErrUnavailable,
	}
	s := newTestScreen(api)

	_, refresh := s.Update(key("r"))
	require.NotNil(t, refresh)
	_, open := s.Update(key("enter"))
	require.NotNil(t, open)

	s.Update(open())
	require.True(t, s.dialog.Open)

	api.rows = []gateway.Summary{{ID: 7, ProfileName: "Old"}, {ID: 8, ProfileName: "Fresh"}}
	s.Update(refresh())
	assert.True(t, s.loaded)
	assert.Len(t, s.rows, 2)

	s.Update(key("enter"))
	assert.False(t, s.dialog.Open)
	assert.Contains(t, s.View(120, 30), "Fresh")
}
