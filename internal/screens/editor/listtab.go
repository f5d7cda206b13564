package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

type listOutcomeMsg struct {
	Outcome lists.Outcome
}

// listTab drives one lists.Editor.
type listTab struct {
	ed     *lists.Editor
	cursor int
	input  components.TextInput
}

func newListTab(ed *lists.Editor) listTab {
	return listTab{ed: ed, input: components.NewTextInput("", "", 280)}
}

func (t *listTab) editing() bool {
	_, ok := t.ed.Editing()
	return ok
}

func (t *listTab) clamp() {
	t.cursor = min(t.cursor, max(t.ed.Len()-1, 0))
}

// commit ends an inline edit, keeping the typed text.
func (t *listTab) commit(e *EditorScreen) {
	if !t.editing() {
		return
	}
	t.ed.SetDraft(t.input.Value())
	if err := t.ed.CommitEdit(); err != nil {
		e.deps.Logger().Warn("list edit failed", map[string]any{"kind": string(t.ed.Kind), "error": err.Error()})
	}
	t.input.Blur()
	t.clamp()
}

func (t *listTab) startEdit() tea.Cmd {
	t.input.SetValue(t.ed.Draft())
	return t.input.Focus()
}

func (t *listTab) update(e *EditorScreen, msg tea.Msg) tea.Cmd {
	kmsg, isKey := msg.(tea.KeyPressMsg)

	if t.editing() {
		if isKey {
			switch kmsg.String() {
			case "enter":
				t.commit(e)
				return nil
			case "esc":
				t.ed.CancelEdit()
				t.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		t.ed.SetDraft(t.input.Value())
		return cmd
	}

	if !isKey {
		return nil
	}
	switch kmsg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < t.ed.Len()-1 {
			t.cursor++
		}
	case "a", "n":
		t.cursor = t.ed.Add()
		return t.startEdit()
	case "enter", "e":
		if err := t.ed.BeginEdit(t.cursor); err != nil {
			return nil
		}
		return t.startEdit()
	case "d", "x", "delete":
		if err := t.ed.Remove(t.cursor); err == nil {
			t.clamp()
		}
	case "g":
		return t.generate(e)
	}
	return nil
}

// generate asks before replacing a non-empty list.
func (t *listTab) generate(e *EditorScreen) tea.Cmd {
	if !e.profile.Key().Complete() {
		e.alert("Select a Role", noRoleMessage)
		return nil
	}
	kind := t.ed.Kind
	if t.ed.NeedsConfirm() {
		e.confirm("Replace List",
			fmt.Sprintf("Replace the %d current %s with generated ones?", t.ed.Len(), strings.ToLower(kind.DisplayName())),
			func() tea.Cmd { return e.runList(kind, true) })
		return nil
	}
	return e.runList(kind, false)
}

func (e *EditorScreen) runList(kind lists.Kind, confirmed bool) tea.Cmd {
	run := e.suggester.Generate(e.ctx, kind, e.profile.Key(), confirmed)
	return func() tea.Msg {
		return listOutcomeMsg{Outcome: run()}
	}
}

func (e *EditorScreen) handleListOutcome(msg listOutcomeMsg) tea.Cmd {
	o := msg.Outcome
	t := e.list(o.Kind)
	t.commit(e)

	err := e.suggester.Resolve(t.ed, o)
	switch {
	case err == nil:
		t.cursor = 0
		return e.showFlash(fmt.Sprintf("Generated %d items", t.ed.Len()))
	case errors.Is(err, lists.ErrSuperseded), errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, lists.ErrConfirmRequired):
		// Items were added while the request ran.
		e.confirm("Replace List", "The list changed while generating. Replace it anyway?", func() tea.Cmd {
			if err := t.ed.ApplySuggestion(o.Suggestion, true); err != nil {
				e.deps.Logger().Warn("list replace failed", map[string]any{"kind": string(o.Kind), "error": err.Error()})
				return nil
			}
			t.cursor = 0
			return e.showFlash(fmt.Sprintf("Generated %d items", t.ed.Len()))
		})
		return nil
	default:
		e.deps.Logger().Warn("list generation failed", map[string]any{"kind": string(o.Kind), "error": err.Error()})
		e.alert("Generation Failed", fmt.Sprintf("Failed to generate %s. %s",
			strings.ToLower(o.Kind.DisplayName()), screens.ErrorMessage(err)))
		return nil
	}
}

func (t *listTab) hints() []layout.KeyHint {
	if t.editing() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "a", Description: "Add"},
		{Key: "Enter", Description: "Edit"},
		{Key: "d", Description: "Delete"},
		{Key: "g", Description: "Generate"},
	}
}

func (t *listTab) view(e *EditorScreen, cw, height int) string {
	title := t.ed.Kind.DisplayName()
	if b := theme.Badge(t.ed.Source()); b != "" {
		title += "  " + b
	}

	var lines []string
	if e.suggester.Pending(t.ed.Kind) {
		lines = append(lines, theme.Hint.Render("Generating..."))
	}

	items := t.ed.Items()
	editIdx, editing := t.ed.Editing()
	if len(items) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("No items yet. Press a to add one or g to generate."))
	}

	rows := max(height-6, 3)
	start := 0
	if t.cursor >= rows {
		start = t.cursor - rows + 1
	}
	end := min(start+rows, len(items))
	for i := start; i < end; i++ {
		num := fmt.Sprintf("%2d. ", i+1)
		switch {
		case editing && i == editIdx:
			t.input.SetWidth(cw - 12)
			lines = append(lines, theme.Selected.Render("▸ "+num)+t.input.View())
		case i == t.cursor:
			lines = append(lines, theme.Selected.Render("▸ "+num+items[i]))
		default:
			lines = append(lines, theme.Unselected.Render("  "+num+items[i]))
		}
	}
	if end < len(items) {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("  … %d more", len(items)-end)))
	}

	body := lipgloss.NewStyle().Width(cw - 4).Render(strings.Join(lines, "\n"))
	return components.Panel(title, body, cw, true)
}
