// Package layout draws the frame around every screen: header, footer and
// the too-small notice.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below NarrowWidth the header drops the screen title.
	NarrowWidth = 100
)

// KeyHint is one footer entry.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderUser is the identity shown at the right of the header. A zero value
// renders nothing.
type HeaderUser struct {
	Name string
	Role string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The PRISM studio needs at least %d x %d.\n\nCurrent size: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader shows the brand, the screen title centered and the signed-in
// user. Narrow terminals keep the brand and the user only.
func RenderHeader(title string, user HeaderUser, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ◆ PRISM")

	who := ""
	if user.Name != "" {
		who = lipgloss.NewStyle().Foreground(theme.Text).Render(user.Name) +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(" ("+user.Role+")")
	}

	inner := max(width-4, 0)
	if width < NarrowWidth || title == "" {
		gap := max(inner-lipgloss.Width(brand)-lipgloss.Width(who), 1)
		return bar.Width(width).Render(brand + strings.Repeat(" ", gap) + who)
	}

	center := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title)
	left := max((inner-lipgloss.Width(center))/2-lipgloss.Width(brand), 1)
	right := max(inner-lipgloss.Width(brand)-left-lipgloss.Width(center)-lipgloss.Width(who), 1)
	return bar.Width(width).Render(brand + strings.Repeat(" ", left) + center + strings.Repeat(" ", right) + who)
}

// RenderFooter lists key hints left to right. Hints that would overflow the
// bar are dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	room := max(width-6, 0)
	var b strings.Builder
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		extra := lipgloss.Width(part)
		if b.Len() > 0 {
			extra += len(sep)
		}
		if lipgloss.Width(b.String())+extra > room {
			break
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(part)
	}
	return bar.Width(width).Render("  " + b.String())
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the height between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}
