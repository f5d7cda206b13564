package editor

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

// GenerateFailedMessage is the alert shown when objective generation fails.
const GenerateFailedMessage = "Failed to generate objectives."

// savedFlash confirms a committed card.
const savedFlash = "Saved!"

type objectiveOutcomeMsg struct {
	Outcome objectives.Outcome
}

// objectivesTab lists every leaf and opens a Card on one of them. While a
// card is open, focus cycles over the three level inputs and the Save button.
type objectivesTab struct {
	paths  []skive.Path
	cursor int
	offset int

	card   *objectives.Card
	inputs [3]components.TextInput
	focus  int
}

// saveFocus is the focus index of the Save button, after the three level inputs.
const saveFocus = 3

func newObjectivesTab(r skive.Ratings) objectivesTab {
	t := objectivesTab{paths: r.Paths()}
	for i, l := range objectives.AllLevels {
		t.inputs[i] = components.NewTextInput(l.DisplayName(), l.DisplayName()+" objective", 500)
	}
	return t
}

func (t *objectivesTab) cardOpen() bool {
	return t.card != nil
}

func (t *objectivesTab) current() (skive.Path, bool) {
	if t.cursor < 0 || t.cursor >= len(t.paths) {
		return "", false
	}
	return t.paths[t.cursor], true
}

func (t *objectivesTab) open(e *EditorScreen, p skive.Path) tea.Cmd {
	c := objectives.NewCard(e.author.Map, p)
	t.card = &c
	t.loadInputs()
	return t.setFocus(0)
}

func (t *objectivesTab) close() {
	for i := range t.inputs {
		t.inputs[i].Blur()
	}
	t.card = nil
}

// loadInputs copies the card draft into the inputs.
func (t *objectivesTab) loadInputs() {
	d := t.card.Draft()
	for i, l := range objectives.AllLevels {
		t.inputs[i].SetValue(d.Get(l))
	}
}

func (t *objectivesTab) setFocus(i int) tea.Cmd {
	t.focus = i
	var cmd tea.Cmd
	for j := range t.inputs {
		if j == i {
			cmd = t.inputs[j].Focus()
		} else {
			t.inputs[j].Blur()
		}
	}
	return cmd
}

func (t *objectivesTab) generate(e *EditorScreen, p skive.Path) tea.Cmd {
	if !e.profile.Key().Complete() {
		e.alert("Select a Role", noRoleMessage)
		return nil
	}
	run := e.author.Generate(e.ctx, e.profile.Key(), p)
	return func() tea.Msg {
		return objectiveOutcomeMsg{Outcome: run()}
	}
}

func (t *objectivesTab) handleOutcome(e *EditorScreen, msg objectiveOutcomeMsg) tea.Cmd {
	entry, err := e.author.Resolve(msg.Outcome)
	switch {
	case err == nil:
		if t.card != nil && t.card.Path == msg.Outcome.Path {
			t.card.Sync(entry)
			t.loadInputs()
		}
		return nil
	case errors.Is(err, objectives.ErrSuperseded), errors.Is(err, context.Canceled):
		return nil
	default:
		e.deps.Logger().Warn("objective generation failed", map[string]any{
			"path":  string(msg.Outcome.Path),
			"error": err.Error(),
		})
		e.alert("Generation Failed", GenerateFailedMessage)
		return nil
	}
}

func (t *objectivesTab) update(e *EditorScreen, msg tea.Msg) tea.Cmd {
	kmsg, isKey := msg.(tea.KeyPressMsg)
	if t.card != nil {
		return t.updateCard(e, msg, kmsg, isKey)
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
		if t.cursor < len(t.paths)-1 {
			t.cursor++
		}
	case "enter":
		if p, ok := t.current(); ok {
			return t.open(e, p)
		}
	case "g":
		if p, ok := t.current(); ok {
			return t.generate(e, p)
		}
	}
	return nil
}

func (t *objectivesTab) updateCard(e *EditorScreen, msg tea.Msg, kmsg tea.KeyPressMsg, isKey bool) tea.Cmd {
	if isKey {
		switch kmsg.String() {
		case "esc":
			t.card.Revert()
			t.close()
			return nil
		case "tab", "down":
			return t.setFocus((t.focus + 1) % (saveFocus + 1))
		case "shift+tab", "up":
			return t.setFocus((t.focus + saveFocus) % (saveFocus + 1))
		case "ctrl+g":
			return t.generate(e, t.card.Path)
		case "enter":
			if t.focus == saveFocus {
				if t.card.Save(e.author.Map) {
					return e.showFlash(savedFlash)
				}
				return nil
			}
			return t.setFocus(t.focus + 1)
		}
	}
	if t.focus == saveFocus {
		return nil
	}

	var cmd tea.Cmd
	t.inputs[t.focus], cmd = t.inputs[t.focus].Update(msg)
	t.card.SetDraft(objectives.AllLevels[t.focus], t.inputs[t.focus].Value())
	return cmd
}

func (t *objectivesTab) hints() []layout.KeyHint {
	if t.card != nil {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next"},
			{Key: "^G", Description: "Generate"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Competency"},
		{Key: "Enter", Description: "Open"},
		{Key: "g", Description: "Generate"},
	}
}

func (t *objectivesTab) view(e *EditorScreen, cw, height int) string {
	if t.card != nil {
		return t.viewCard(e, cw)
	}

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

		marker := theme.Hint.Render("○")
		entry := e.author.Map.Get(p)
		switch {
		case e.author.Pending(p):
			marker = lipgloss.NewStyle().Foreground(theme.Accent).Render("…")
		case e.author.Map.Has(p) && !entry.Levels.Empty():
			marker = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
		}

		label := skive.Title(p.Leaf())
		if b := theme.Badge(entry.Source); b != "" {
			label += " " + b
		}
		line := marker + " " + label
		if i == t.cursor {
			cursorLine = len(lines)
			line = theme.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	rows := max(height-2, 3)
	if cursorLine < t.offset {
		t.offset = cursorLine
	}
	if cursorLine >= t.offset+rows {
		t.offset = cursorLine - rows + 1
	}
	t.offset = min(t.offset, max(len(lines)-rows, 0))
	end := min(t.offset+rows, len(lines))
	return strings.Join(lines[t.offset:end], "\n")
}

func (t *objectivesTab) viewCard(e *EditorScreen, cw int) string {
	c := t.card
	var parts []string
	if desc := skive.Describe(c.Path); desc != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw-4).Render(desc), "")
	}
	if e.author.Pending(c.Path) {
		parts = append(parts, theme.Hint.Render("Generating..."), "")
	}
	for i := range t.inputs {
		t.inputs[i].SetWidth(cw - 8)
		parts = append(parts, t.inputs[i].View(), "")
	}

	save := components.NewButton("Save")
	save.Focused = t.focus == saveFocus
	save.Disabled = !c.Dirty()
	parts = append(parts, save.View())

	title := skive.Title(c.Path.Group()) + " · " + skive.Title(c.Path.Leaf())
	if b := theme.Badge(e.author.Map.Get(c.Path).Source); b != "" {
		title += "  " + b
	}
	return components.Panel(title, strings.Join(parts, "\n"), cw, true)
}
