package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prism/internal/skive"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestSlider_StaysInRange(t *testing.T) {
	s := NewSlider("Analytical", 1)
	s.Focused = true

	s, changed := s.Update(key("left"))
	if changed || s.Value != skive.MinScore {
		t.Errorf("left at minimum: value %d changed %v", s.Value, changed)
	}

	s, changed = s.Update(key("right"))
	if !changed || s.Value != 2 {
		t.Errorf("right: value %d changed %v", s.Value, changed)
	}

	s, _ = s.Update(key("0"))
	if s.Value != 10 {
		t.Errorf("0 should select 10, got %d", s.Value)
	}
	s, changed = s.Update(key("right"))
	if changed || s.Value != skive.MaxScore {
		t.Errorf("right at maximum: value %d changed %v", s.Value, changed)
	}

	s, _ = s.Update(key("7"))
	if s.Value != 7 {
		t.Errorf("digit 7: got %d", s.Value)
	}
}

func TestSlider_IgnoresKeysWhenUnfocused(t *testing.T) {
	s := NewSlider("x", 5)
	s, changed := s.Update(key("right"))
	if changed || s.Value != 5 {
		t.Errorf("unfocused slider changed to %d", s.Value)
	}
}

func TestNewSlider_Clamps(t *testing.T) {
	if v := NewSlider("x", 42).Value; v != 10 {
		t.Errorf("expected clamp to 10, got %d", v)
	}
	if v := NewSlider("x", -3).Value; v != 1 {
		t.Errorf("expected clamp to 1, got %d", v)
	}
}

func TestPicker_Choose(t *testing.T) {
	p := Picker{Label: "Profession", Items: []string{"Insurance", "Banking"}, Focused: true}

	p, idx := p.Update(key("down"))
	if idx != -1 || p.Cursor != 1 {
		t.Fatalf("down: cursor %d idx %d", p.Cursor, idx)
	}
	p, idx = p.Update(key("down"))
	if p.Cursor != 1 {
		t.Errorf("cursor should stop at the last item, got %d", p.Cursor)
	}
	_, idx = p.Update(key("enter"))
	if idx != 1 {
		t.Errorf("enter should choose index 1, got %d", idx)
	}
}

func TestPicker_DisabledAndLoadingIgnoreKeys(t *testing.T) {
	p := Picker{Items: []string{"a"}, Focused: true, Disabled: true, Placeholder: "Choose a profession first"}
	if _, idx := p.Update(key("enter")); idx != -1 {
		t.Error("disabled picker should not choose")
	}
	if !strings.Contains(p.View(40), "Choose a profession first") {
		t.Error("disabled picker should show its placeholder")
	}

	p.Disabled, p.Loading = false, true
	if _, idx := p.Update(key("enter")); idx != -1 {
		t.Error("loading picker should not choose")
	}
	if !strings.Contains(p.View(40), "Loading") {
		t.Error("loading picker should say so")
	}
}

func TestPicker_SetItemsKeepsCursorInRange(t *testing.T) {
	p := Picker{Items: []string{"a", "b", "c"}, Cursor: 2}
	p.SetItems([]string{"x"})
	if p.Cursor != 0 {
		t.Errorf("expected cursor 0, got %d", p.Cursor)
	}
}

func TestDialog_Alert(t *testing.T) {
	var d Dialog
	d.ShowAlert("Error", "Failed to generate objectives.")

	d, res := d.Update(key("y"))
	if res != DialogNone || !d.Open {
		t.Error("alert should ignore unrelated keys")
	}
	d, res = d.Update(key("enter"))
	if res != DialogDismissed || d.Open {
		t.Errorf("enter should dismiss, got %v open=%v", res, d.Open)
	}
}

func TestDialog_Confirm(t *testing.T) {
	var d Dialog
	d.ShowConfirm("Replace list?", "This list already has items.")
	if _, res := d.Update(key("y")); res != DialogConfirmed {
		t.Errorf("y should confirm, got %v", res)
	}

	d.ShowConfirm("Replace list?", "This list already has items.")
	if _, res := d.Update(key("esc")); res != DialogCancelled {
		t.Errorf("esc should cancel, got %v", res)
	}
}

func TestBar_Proportional(t *testing.T) {
	bar := Bar(5, 10, 10, nil)
	if n := strings.Count(bar, "█"); n != 5 {
		t.Errorf("expected 5 filled cells, got %d", n)
	}
	if n := strings.Count(Bar(12, 10, 10, nil), "█"); n != 10 {
		t.Errorf("overfull bar should cap at width, got %d", n)
	}
}

func TestBarChart_ListsEveryPoint(t *testing.T) {
	r := skive.Seed()
	out := BarChart{Title: "SKIVE", Series: skive.Summary(r), ColorOf: DomainColorOf, Width: 60}.View()
	for _, d := range skive.AllDomains {
		if !strings.Contains(out, d.DisplayName()) {
			t.Errorf("chart missing %s", d.DisplayName())
		}
	}
	empty := BarChart{Width: 40}.View()
	if !strings.Contains(empty, "No data") {
		t.Error("empty chart should say No data")
	}
}

func TestMenu_SkipsDisabledAndWraps(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Locked", Disabled: true},
		{Label: "New"},
		{Label: "Events", Disabled: true},
		{Label: "Quit"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection %d, want 1", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("down skipped to %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 1 {
		t.Errorf("down wrapped to %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 3 {
		t.Errorf("up wrapped to %d, want 3", m.Selected)
	}
}

func TestMenu_Shortcut(t *testing.T) {
	var fired string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			fired = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "New Profile", Key: "n", Action: action("new")},
		{Label: "Event Log", Key: "e", Action: action("events"), Disabled: true},
		{Label: "Quit", Key: "q", Action: action("quit")},
	})

	m, _ = m.Update(key("e"))
	if fired != "" || m.Selected != 0 {
		t.Errorf("disabled shortcut fired %q, selection %d", fired, m.Selected)
	}
	m, _ = m.Update(key("q"))
	if fired != "quit" || m.Selected != 2 {
		t.Errorf("shortcut fired %q, selection %d", fired, m.Selected)
	}
	if !strings.Contains(m.View(), "[n] New Profile") {
		t.Errorf("view missing shortcut label:\n%s", m.View())
	}
}
