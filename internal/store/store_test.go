package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prism.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prism.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendAPICall(ctx, APIEventData{Method: "GET", Endpoint: "/api/professions", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events after reopen, want 1", len(events))
	}
	// The counter must continue, not restart.
	if err := s.EventRepo().AppendAPICall(ctx, APIEventData{Method: "GET", Endpoint: "/api/roles", Success: true}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
}

func TestEvents_MergedOrdering(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	mustAPI := func(endpoint string, status int, ok bool) {
		t.Helper()
		err := repo.AppendAPICall(ctx, APIEventData{
			RequestID: "req-" + endpoint, Method: "POST", Endpoint: endpoint,
			Status: status, LatencyMs: 12, Success: ok,
		})
		if err != nil {
			t.Fatalf("append api: %v", err)
		}
	}

	mustAPI("/api/ai/kras", 200, true)
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini-2.0-flash", Model: "gemini-2.0-flash", Purpose: "objectives",
		InputTokens: 100, OutputTokens: 40, LatencyMs: 800, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"basic":"b"}`,
	}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	mustAPI("/api/config/save", 400, false)

	events, err := repo.QueryEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Name != "/api/config/save" || events[0].Success {
		t.Errorf("newest event = %+v", events[0])
	}
	if events[0].Detail != "POST 400" {
		t.Errorf("detail = %q, want %q", events[0].Detail, "POST 400")
	}
	if events[1].Kind != KindLLM || events[1].Name != "objectives" {
		t.Errorf("middle event = %+v", events[1])
	}
	if events[2].Sequence >= events[1].Sequence || events[1].Sequence >= events[0].Sequence {
		t.Errorf("sequences not increasing: %d %d %d", events[2].Sequence, events[1].Sequence, events[0].Sequence)
	}
	if time.Since(events[0].Timestamp) > time.Minute {
		t.Errorf("timestamp not recent: %v", events[0].Timestamp)
	}

	limited, err := repo.QueryEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: %d", len(limited))
	}

	after, err := repo.QueryEvents(ctx, QueryOpts{After: events[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("after filter: got %d, want 1", len(after))
	}

	llm, err := repo.GetLLMRequest(ctx, events[1].Sequence)
	if err != nil {
		t.Fatalf("get llm: %v", err)
	}
	if llm == nil || llm.ResponseBody != `{"basic":"b"}` || llm.InputTokens != 100 {
		t.Errorf("llm record = %+v", llm)
	}

	missing, err := repo.GetLLMRequest(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing record = %+v, %v", missing, err)
	}
}

func TestEvents_Stats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, ok := range []bool{true, false, true} {
		_ = repo.AppendAPICall(ctx, APIEventData{Method: "GET", Endpoint: "/api/simulations", LatencyMs: int64(10 * (i + 1)), Success: ok})
	}
	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "kras", LatencyMs: 5, Success: true})

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d stats, want 2", len(stats))
	}
	api := stats[0]
	if api.Kind != KindAPI || api.Count != 3 || api.Failures != 1 || api.AvgLatencyMs != 20 {
		t.Errorf("api stat = %+v", api)
	}
	if stats[1].Kind != KindLLM || stats[1].Name != "kras" {
		t.Errorf("llm stat = %+v", stats[1])
	}
}

func TestSessionRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	rec, err := repo.Load(ctx)
	if err != nil || rec != nil {
		t.Fatalf("empty load = %+v, %v", rec, err)
	}

	now := time.Now().Truncate(time.Millisecond)
	if err := repo.Save(ctx, SessionRecord{Username: "student", Role: "student", LoggedInAt: now}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, SessionRecord{Username: "admin", Role: "admin", LoggedInAt: now}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	rec, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Username != "admin" || rec.Role != "admin" || !rec.LoggedInAt.Equal(now) {
		t.Errorf("loaded = %+v", rec)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	rec, _ = repo.Load(ctx)
	if rec != nil {
		t.Errorf("session survived clear: %+v", rec)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("PRISM_DB", want)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRISM_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "prism", "prism.db"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
