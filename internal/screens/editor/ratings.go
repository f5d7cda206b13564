package editor

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

// sliderLabelWidth fits the longest seed leaf title.
const sliderLabelWidth = 26

// ratingsTab edits one leaf at a time with a slider.
type ratingsTab struct {
	paths  []skive.Path
	cursor int
	offset int
}

func newRatingsTab(r skive.Ratings) ratingsTab {
	return ratingsTab{paths: r.Paths()}
}

func (t *ratingsTab) current() (skive.Path, bool) {
	if t.cursor < 0 || t.cursor >= len(t.paths) {
		return "", false
	}
	return t.paths[t.cursor], true
}

func (t *ratingsTab) update(e *EditorScreen, msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch kmsg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
		return nil
	case "down", "j":
		if t.cursor < len(t.paths)-1 {
			t.cursor++
		}
		return nil
	case "tab":
		t.jumpDomain(1)
		return nil
	case "shift+tab":
		t.jumpDomain(-1)
		return nil
	}

	p, ok := t.current()
	if !ok {
		return nil
	}
	score, _ := e.profile.Ratings.Get(p)
	s := components.NewSlider(skive.Title(p.Leaf()), score)
	s.Focused = true
	s, changed := s.Update(kmsg)
	if !changed {
		return nil
	}
	next, err := e.profile.Ratings.Set(p, s.Value)
	if err != nil {
		e.deps.Logger().Error("rating update rejected", map[string]any{"path": string(p), "error": err.Error()})
		return nil
	}
	e.profile.Ratings = next
	return nil
}

// jumpDomain moves the cursor to the first leaf of the next or previous domain.
func (t *ratingsTab) jumpDomain(dir int) {
	p, ok := t.current()
	if !ok {
		return
	}
	idx := 0
	for i, d := range skive.AllDomains {
		if d == p.Domain() {
			idx = i
		}
	}
	n := len(skive.AllDomains)
	target := skive.AllDomains[(idx+dir+n)%n]
	for i, q := range t.paths {
		if q.Domain() == target {
			t.cursor = i
			return
		}
	}
}

func (t *ratingsTab) hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Competency"},
		{Key: "←→ 1-0", Description: "Score"},
		{Key: "Tab", Description: "Domain"},
	}
}

func (t *ratingsTab) view(e *EditorScreen, cw, height int) string {
	r := e.profile.Ratings
	cur, _ := t.current()

	var lines []string
	cursorLine := 0
	group := ""
	for i, p := range t.paths {
		if g := p.Group(); g != group {
			group = g
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.DomainColor(p.Domain())).Bold(true).
				Render(skive.Title(g)))
		}
		score, _ := r.Get(p)
		s := components.NewSlider(skive.Title(p.Leaf()), score)
		s.Focused = i == t.cursor
		if s.Focused {
			cursorLine = len(lines)
		}
		lines = append(lines, "  "+s.View(sliderLabelWidth))
	}

	rows := max(height-3, 3)
	if cursorLine < t.offset {
		t.offset = cursorLine
	}
	if cursorLine >= t.offset+rows {
		t.offset = cursorLine - rows + 1
	}
	t.offset = min(t.offset, max(len(lines)-rows, 0))
	end := min(t.offset+rows, len(lines))
	left := strings.Join(lines[t.offset:end], "\n")
	if desc := skive.Describe(cur); desc != "" {
		left += "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Width(sliderLabelWidth+16).Render(desc)
	}

	chartWidth := cw - (sliderLabelWidth + 20)
	stacked := chartWidth < 30
	if stacked {
		chartWidth = cw - 4
	}
	summary := components.BarChart{
		Title:   "Domain Summary",
		Series:  skive.Summary(r),
		ColorOf: components.DomainColorOf,
		Width:   chartWidth,
	}
	leaves := components.BarChart{
		Title:  cur.Domain().DisplayName(),
		Series: skive.LeafSeries(r, cur.Domain()),
		Color:  theme.DomainColor(cur.Domain()),
		Width:  chartWidth,
	}
	right := summary.View() + "\n\n" + leaves.View()

	if stacked {
		return left + "\n\n" + right
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(sliderLabelWidth+18).Render(left),
		"  ",
		right,
	)
}
