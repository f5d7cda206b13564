package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/ui/theme"
)

// Slider edits one score within [skive.MinScore, skive.MaxScore]. Its value
// can never leave that range.
type Slider struct {
	Label   string
	Value   int
	Focused bool
}

// NewSlider creates a slider clamped to the score range.
func NewSlider(label string, value int) Slider {
	return Slider{Label: label, Value: skive.Clamp(value)}
}

// Update handles left/right and the digit keys (0 means 10). It reports
// whether the value changed.
func (s Slider) Update(msg tea.Msg) (Slider, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.Focused {
		return s, false
	}
	old := s.Value
	switch key := kmsg.String(); key {
	case "left", "h", "-":
		s.Value--
	case "right", "l", "+", "=":
		s.Value++
	case "home":
		s.Value = skive.MinScore
	case "end":
		s.Value = skive.MaxScore
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			s.Value = int(key[0] - '0')
			if s.Value == 0 {
				s.Value = 10
			}
		}
	}
	s.Value = skive.Clamp(s.Value)
	return s, s.Value != old
}

// View renders label, track and value.
func (s Slider) View(labelWidth int) string {
	labelStyle := lipgloss.NewStyle().Width(labelWidth).MaxWidth(labelWidth).Foreground(theme.Text)
	knob := "○"
	if s.Focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		knob = "●"
	}

	var track strings.Builder
	for v := skive.MinScore; v <= skive.MaxScore; v++ {
		switch {
		case v == s.Value:
			track.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(knob))
		case v < s.Value:
			track.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("━"))
		default:
			track.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("─"))
		}
	}

	return labelStyle.Render(s.Label) + " " + track.String() + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%2d", s.Value))
}
