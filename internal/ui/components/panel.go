package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for form sections.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel wraps content in a rounded card with an optional title.
func Panel(title, content string, width int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	if title != "" {
		content = theme.Title.Render(title) + "\n" + content
	}
	return style.Width(width).Render(content)
}

// ConnectionError renders the inline load-failure panel with its retry hint.
func ConnectionError(message string, width int) string {
	body := theme.ErrorText.Render("Connection Error") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(width-4).Render(message) + "\n\n" +
		theme.Hint.Render("Press r to retry")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Padding(1, 2).
		Width(width).
		Render(body)
}

// DialogKind selects the dialog buttons.
type DialogKind int

const (
	// Alert has a single OK.
	Alert DialogKind = iota
	// Confirm asks yes or no.
	Confirm
)

// DialogResult is what a key did to an open dialog.
type DialogResult int

const (
	DialogNone DialogResult = iota
	DialogDismissed
	DialogConfirmed
	DialogCancelled
)

// Dialog is a blocking modal. While Open the owning screen routes every
// key to it.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	Open    bool
}

// ShowAlert opens an alert.
func (d *Dialog) ShowAlert(title, message string) {
	*d = Dialog{Kind: Alert, Title: title, Message: message, Open: true}
}

// ShowConfirm opens a yes/no question.
func (d *Dialog) ShowConfirm(title, message string) {
	*d = Dialog{Kind: Confirm, Title: title, Message: message, Open: true}
}

// Update handles a key while open and closes the dialog when answered.
func (d Dialog) Update(msg tea.Msg) (Dialog, DialogResult) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !d.Open {
		return d, DialogNone
	}
	key := kmsg.String()
	if d.Kind == Alert {
		switch key {
		case "enter", "esc", "space":
			d.Open = false
			return d, DialogDismissed
		}
		return d, DialogNone
	}
	switch key {
	case "y", "Y", "enter":
		d.Open = false
		return d, DialogConfirmed
	case "n", "N", "esc":
		d.Open = false
		return d, DialogCancelled
	}
	return d, DialogNone
}

// View renders the dialog box centered in width×height.
func (d Dialog) View(width, height int) string {
	w := min(60, max(30, width-10))
	border := theme.Primary
	if d.Kind == Alert {
		border = theme.Accent
	}

	hint := "Enter OK"
	if d.Kind == Confirm {
		hint = "y Yes   n No"
	}
	body := theme.Title.Render(d.Title) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(w-6).Render(d.Message) + "\n\n" +
		theme.Hint.Render(hint)

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(w).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
