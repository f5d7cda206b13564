package components

import (
	"github.com/abhisek/prism/internal/ui/theme"
)

// Button is a styled action label. A disabled button renders dimmed and its
// owner ignores presses on it.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// Pressable reports whether a press should trigger the action.
func (b Button) Pressable() bool {
	return b.Focused && !b.Disabled
}

// View renders the button.
func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(b.Label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}
