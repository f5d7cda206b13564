package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/theme"
)

const titleCompact = "P · R · I · S · M"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderTitle returns the wordmark with one colored bar per SKIVE domain.
func renderTitle(cw int) string {
	mark := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleCompact)
	var bars []string
	for _, d := range skive.AllDomains {
		bars = append(bars, lipgloss.NewStyle().Foreground(theme.DomainColor(d)).Render("▆▆▆"))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(mark + "\n" + strings.Join(bars, " "))
}

// renderStatsBar shows who is signed in and how many profiles exist.
func renderStatsBar(user, role string, profiles int, loaded bool, cw int) string {
	userStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	roleStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	count := dimStyle.Render("… SAVED PROFILES")
	switch {
	case loaded && profiles >= 0:
		count = countStyle.Render(fmt.Sprintf("◆ %d SAVED PROFILES", profiles))
	case loaded:
		count = dimStyle.Render("◆ OFFLINE")
	}

	stats := fmt.Sprintf("%s %s  %s",
		userStyle.Render("● "+strings.ToUpper(user)),
		roleStyle.Render(strings.ToUpper(role)),
		count,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenu renders each menu item as a fixed-width button with its
// shortcut.
func renderMenu(items []components.MenuItem, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.Border)

	var rows []string
	for i, item := range items {
		label := item.Label
		if item.Key != "" {
			label = strings.ToUpper(item.Key) + "  " + label
		}
		switch {
		case item.Disabled:
			rows = append(rows, disabledBtn.Render(label))
		case i == selected:
			rows = append(rows, selectedBtn.Render("▸ "+label))
		default:
			rows = append(rows, normalBtn.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

// renderFrame wraps content in a double border centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
