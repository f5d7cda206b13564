package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/skive"
)

// Color palette: indigo brand with one hue per SKIVE domain.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

var domainColors = map[skive.Domain]color.Color{
	skive.Skills:    lipgloss.Color("#3B82F6"),
	skive.Knowledge: lipgloss.Color("#8B5CF6"),
	skive.Identity:  lipgloss.Color("#EC4899"),
	skive.Values:    lipgloss.Color("#10B981"),
	skive.Ethics:    lipgloss.Color("#F97316"),
}

// DomainColor returns the chart color of d.
func DomainColor(d skive.Domain) color.Color {
	if c, ok := domainColors[d]; ok {
		return c
	}
	return Secondary
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(Border)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(Border).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	Tab = lipgloss.NewStyle().
		Foreground(TextDim).
		Padding(0, 1)

	ActiveTab = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 1)
)

// Badge renders a provenance tag, or "" for untagged content.
func Badge(s provenance.Source) string {
	label := s.Label()
	if label == "" {
		return ""
	}
	c := Accent
	if s == provenance.AI {
		c = Secondary
	}
	return lipgloss.NewStyle().
		Foreground(BgDark).
		Background(c).
		Bold(true).
		Padding(0, 1).
		Render(label)
}
