package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/ui/theme"
)

// Bar renders one horizontal bar of value out of max.
func Bar(value, max, width int, c color.Color) string {
	if width < 1 {
		width = 1
	}
	if c == nil {
		c = theme.Secondary
	}
	filled := 0
	if max > 0 {
		filled = value * width / max
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled))
}

// BarChart renders a series as labelled horizontal bars on the 0-10 scale.
// It stands in for the radar chart of the web front-end.
type BarChart struct {
	Title  string
	Series skive.Series
	Color  color.Color
	// ColorOf, when set, picks a color per point and overrides Color.
	ColorOf func(skive.Point) color.Color
	Width   int
}

// View renders the chart.
func (c BarChart) View() string {
	labelWidth := 0
	for _, p := range c.Series {
		labelWidth = max(labelWidth, lipgloss.Width(p.Label))
	}
	labelWidth = min(labelWidth, 28)

	barWidth := c.Width - labelWidth - 6
	if barWidth < 4 {
		barWidth = 4
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(theme.Title.Render(c.Title) + "\n")
	}
	if len(c.Series) == 0 {
		b.WriteString(theme.Hint.Render("No data"))
		return b.String()
	}
	for _, p := range c.Series {
		col := c.Color
		if c.ColorOf != nil {
			col = c.ColorOf(p)
		}
		if col == nil {
			col = theme.Secondary
		}
		label := lipgloss.NewStyle().Width(labelWidth).MaxWidth(labelWidth).Foreground(theme.Text).Render(p.Label)
		value := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%3d", p.Value))
		b.WriteString(label + " " + Bar(p.Value, skive.MaxScore, barWidth, col) + " " + value + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// DomainColorOf colors a summary point by its domain key.
func DomainColorOf(p skive.Point) color.Color {
	return theme.DomainColor(skive.Domain(p.Key))
}
