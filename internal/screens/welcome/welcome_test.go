package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prism/internal/router"
	"github.com/abhisek/prism/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "login" }
func (s *stubScreen) Title() string                           { return "Login" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestDomainsRevealInOrder(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "Skills") {
		t.Error("no domain should be visible at start")
	}

	sendTicks(w, 3)
	view := w.View(100, 30)
	if !strings.Contains(view, "Skills") || strings.Contains(view, "Knowledge") {
		t.Error("only Skills should be visible after the banner step")
	}

	sendTicks(w, 8)
	view = w.View(100, 30)
	for _, name := range []string{"Skills", "Knowledge", "Identity", "Values", "Ethics"} {
		if !strings.Contains(view, name) {
			t.Errorf("expected %s after the full reveal", name)
		}
	}
}

func TestTicksStopAfterAnimation(t *testing.T) {
	w, calls := newTestWelcome()

	if cmd := sendTicks(w, 100); cmd != nil {
		t.Error("ticking should stop once the animation is complete")
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if *calls != 0 {
		t.Errorf("next screen should not be built without a key press, got %d", *calls)
	}
	if !strings.Contains(w.View(100, 30), "press any key") {
		t.Error("expected the continue hint")
	}
}

func TestKeypressEmitsReplaceOnce(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger the transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %#v", msg)
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("next should be called exactly once, got %d", *calls)
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(30); !strings.Contains(got, "P R I S M") {
		t.Errorf("expected compact banner, got %q", got)
	}
}
