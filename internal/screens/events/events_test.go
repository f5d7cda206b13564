package events

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prism/internal/store"
)

func newTestRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "prism.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	repo := st.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendAPICall(ctx, store.APIEventData{
		Method: "GET", Endpoint: "/api/professions", Status: 200, LatencyMs: 12, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "mock", Model: "mock-1", Purpose: "objectives", Success: true,
		RequestBody: "prompt text", ResponseBody: "{\"basic\":\"b\"}",
	}))
	return repo
}

func key(code rune) tea.KeyPressMsg {
	switch code {
	case tea.KeyEnter, tea.KeyTab, tea.KeyEscape, tea.KeyDown:
		return tea.KeyPressMsg{Code: code}
	}
	return tea.KeyPressMsg{Code: code, Text: string(code)}
}

func loaded(t *testing.T) *EventsScreen {
	s := New(newTestRepo(t))
	s.Update(s.Init()())
	require.True(t, s.loaded)
	require.Len(t, s.records, 2)
	return s
}

func TestEvents_FilterByKind(t *testing.T) {
	s := loaded(t)

	s.Update(key(tea.KeyTab))
	assert.Equal(t, filterAPI, s.filter)
	vis := s.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, store.KindAPI, vis[0].Kind)

	s.Update(key(tea.KeyTab))
	vis = s.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, store.KindLLM, vis[0].Kind)
}

func TestEvents_LLMDetail(t *testing.T) {
	s := loaded(t)
	s.filter = filterLLM

	_, cmd := s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	s.Update(cmd())

	require.NotNil(t, s.detail)
	assert.True(t, s.CapturingInput())
	assert.Contains(t, s.View(120, 40), "prompt text")

	s.Update(key(tea.KeyEscape))
	assert.Nil(t, s.detail)
	assert.False(t, s.CapturingInput())
}

func TestEvents_EnterOnAPIRowDoesNothing(t *testing.T) {
	s := loaded(t)
	s.filter = filterAPI

	_, cmd := s.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestEvents_StatsView(t *testing.T) {
	s := loaded(t)
	s.Update(key('s'))
	view := s.View(120, 40)
	assert.Contains(t, view, "/api/professions")
	assert.Contains(t, view, "objectives")
}
