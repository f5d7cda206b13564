package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/ui/theme"
)

// pickerRows bounds how many options are shown while a picker is focused.
const pickerRows = 6

// Picker is a single-choice list. The owner sets Items, Selected and the
// Loading/Disabled flags from its own state; the picker only moves the
// cursor and reports choices.
type Picker struct {
	Label    string
	Items    []string
	Cursor   int
	Selected string
	Loading  bool
	Disabled bool
	// Placeholder is shown while Disabled.
	Placeholder string
	Focused     bool
}

// SetItems replaces the options and keeps the cursor in range.
func (p *Picker) SetItems(items []string) {
	p.Items = items
	if p.Cursor >= len(items) {
		p.Cursor = max(0, len(items)-1)
	}
}

// Update moves the cursor. On enter it returns the chosen index, otherwise -1.
func (p Picker) Update(msg tea.Msg) (Picker, int) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !p.Focused || p.Disabled || p.Loading {
		return p, -1
	}
	switch kmsg.String() {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Items)-1 {
			p.Cursor++
		}
	case "enter", "space":
		if p.Cursor >= 0 && p.Cursor < len(p.Items) {
			return p, p.Cursor
		}
	}
	return p, -1
}

// View renders the label, the current choice and, while focused, the
// options around the cursor.
func (p Picker) View(width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if p.Focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(p.Label) + "  ")

	switch {
	case p.Disabled:
		b.WriteString(theme.Disabled.Render(p.Placeholder))
		return b.String()
	case p.Loading:
		b.WriteString(theme.Hint.Render("Loading…"))
		return b.String()
	case p.Selected != "":
		b.WriteString(theme.Body.Bold(true).Render(p.Selected))
	default:
		b.WriteString(theme.Hint.Render("Select…"))
	}

	if !p.Focused {
		return b.String()
	}
	if len(p.Items) == 0 {
		b.WriteString("\n  " + theme.Hint.Render("No options"))
		return b.String()
	}

	start := 0
	if p.Cursor >= pickerRows {
		start = p.Cursor - pickerRows + 1
	}
	end := min(len(p.Items), start+pickerRows)
	for i := start; i < end; i++ {
		line := lipgloss.NewStyle().MaxWidth(max(8, width-4)).Render(p.Items[i])
		if i == p.Cursor {
			b.WriteString("\n" + theme.Selected.Render("  ▸ "+line))
		} else {
			b.WriteString("\n" + theme.Unselected.Render("    "+line))
		}
	}
	if end < len(p.Items) {
		b.WriteString("\n    " + theme.Hint.Render("…"))
	}
	return b.String()
}
