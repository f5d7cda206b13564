package editor

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prism/internal/profile"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/taxonomy"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

type roleField int

const (
	fieldProfession roleField = iota
	fieldDepartment
	fieldRole
	fieldName
	fieldCount
)

type professionsMsg struct {
	Options []taxonomy.Option
	Err     error
}

type departmentsMsg struct {
	Parent  taxonomy.ID
	Options []taxonomy.Option
	Err     error
}

type rolesMsg struct {
	Parent  taxonomy.ID
	Options []taxonomy.Option
	Err     error
}

// roleTab holds the cascading pickers and the profile name.
type roleTab struct {
	focused     roleField
	professions []taxonomy.Option
	pickers     [fieldName]components.Picker
	loading     [fieldName]bool
	name        components.TextInput

	// errMsg and failed describe the last load failure, retried with r.
	errMsg string
	failed roleField
}

func newRoleTab(p *profile.Profile) roleTab {
	r := roleTab{name: components.NewTextInput("Profile name", "e.g. Claims Adjuster v1", 120)}
	r.name.SetValue(p.Name)
	r.pickers[fieldProfession] = components.Picker{Label: "Profession"}
	r.pickers[fieldDepartment] = components.Picker{Label: "Department", Placeholder: "Select a profession first"}
	r.pickers[fieldRole] = components.Picker{Label: "Role", Placeholder: "Select a department first"}
	return r
}

// init loads every level the restored selection needs.
func (r *roleTab) init(e *EditorScreen) tea.Cmd {
	sel := e.profile.Selection
	cmds := []tea.Cmd{r.loadProfessions(e)}
	if sel.Profession.IsSet() {
		cmds = append(cmds, r.loadDepartments(e, sel.Profession.ID))
	}
	if sel.Department.IsSet() {
		cmds = append(cmds, r.loadRoles(e, sel.Department.ID))
	}
	r.sync(e)
	return tea.Batch(cmds...)
}

func (r *roleTab) loadProfessions(e *EditorScreen) tea.Cmd {
	r.loading[fieldProfession] = true
	f, ctx := e.deps.Taxonomy, e.ctx
	return func() tea.Msg {
		opts, err := f.Professions(ctx)
		return professionsMsg{Options: opts, Err: err}
	}
}

func (r *roleTab) loadDepartments(e *EditorScreen, parent taxonomy.ID) tea.Cmd {
	r.loading[fieldDepartment] = true
	f, ctx := e.deps.Taxonomy, e.ctx
	return func() tea.Msg {
		opts, err := f.Departments(ctx, parent)
		return departmentsMsg{Parent: parent, Options: opts, Err: err}
	}
}

func (r *roleTab) loadRoles(e *EditorScreen, parent taxonomy.ID) tea.Cmd {
	r.loading[fieldRole] = true
	f, ctx := e.deps.Taxonomy, e.ctx
	return func() tea.Msg {
		opts, err := f.Roles(ctx, parent)
		return rolesMsg{Parent: parent, Options: opts, Err: err}
	}
}

func (r *roleTab) fail(e *EditorScreen, level roleField, err error) {
	r.errMsg = screens.ErrorMessage(err)
	r.failed = level
	e.deps.Logger().Warn("taxonomy load failed", map[string]any{
		"level": level.String(),
		"error": err.Error(),
	})
}

func (r *roleTab) handleLoaded(e *EditorScreen, msg tea.Msg) tea.Cmd {
	sel := e.profile.Selection
	switch msg := msg.(type) {
	case professionsMsg:
		r.loading[fieldProfession] = false
		if msg.Err != nil {
			r.fail(e, fieldProfession, msg.Err)
			break
		}
		r.errMsg = ""
		r.professions = msg.Options

	case departmentsMsg:
		if msg.Parent != sel.Profession.ID {
			return nil
		}
		r.loading[fieldDepartment] = false
		if msg.Err != nil {
			r.fail(e, fieldDepartment, msg.Err)
			break
		}
		r.errMsg = ""
		e.profile.Selection = taxonomy.Transition(sel, taxonomy.DepartmentsLoaded{Parent: msg.Parent, Options: msg.Options})

	case rolesMsg:
		if msg.Parent != sel.Department.ID {
			return nil
		}
		r.loading[fieldRole] = false
		if msg.Err != nil {
			r.fail(e, fieldRole, msg.Err)
			break
		}
		r.errMsg = ""
		e.profile.Selection = taxonomy.Transition(sel, taxonomy.RolesLoaded{Parent: msg.Parent, Options: msg.Options})
	}
	r.sync(e)
	return nil
}

func (r *roleTab) retry(e *EditorScreen) tea.Cmd {
	sel := e.profile.Selection
	r.errMsg = ""
	var cmd tea.Cmd
	switch r.failed {
	case fieldDepartment:
		cmd = r.loadDepartments(e, sel.Profession.ID)
	case fieldRole:
		cmd = r.loadRoles(e, sel.Department.ID)
	default:
		cmd = r.loadProfessions(e)
	}
	r.sync(e)
	return cmd
}

// choose applies a picker choice through the selection state machine and
// loads the level below it.
func (r *roleTab) choose(e *EditorScreen, level roleField, idx int) tea.Cmd {
	sel := e.profile.Selection
	var cmd tea.Cmd
	switch level {
	case fieldProfession:
		opt := r.professions[idx]
		next := taxonomy.Transition(sel, taxonomy.ChooseProfession{Option: opt})
		if next.Profession.ID != sel.Profession.ID || len(next.Departments) == 0 {
			cmd = r.loadDepartments(e, opt.ID)
		}
		e.profile.Selection = next
		r.focused = fieldDepartment
	case fieldDepartment:
		opt := sel.Departments[idx]
		next := taxonomy.Transition(sel, taxonomy.ChooseDepartment{Option: opt})
		if next.Department.ID != sel.Department.ID || len(next.Roles) == 0 {
			cmd = r.loadRoles(e, opt.ID)
		}
		e.profile.Selection = next
		r.focused = fieldRole
	case fieldRole:
		e.profile.Selection = taxonomy.Transition(sel, taxonomy.ChooseRole{Option: sel.Roles[idx]})
		r.focused = fieldName
	}
	r.sync(e)
	return tea.Batch(cmd, r.focus())
}

func (r *roleTab) update(e *EditorScreen, msg tea.Msg) tea.Cmd {
	kmsg, isKey := msg.(tea.KeyPressMsg)
	if isKey {
		switch kmsg.String() {
		case "tab":
			r.focused = (r.focused + 1) % fieldCount
			r.sync(e)
			return r.focus()
		case "shift+tab":
			r.focused = (r.focused + fieldCount - 1) % fieldCount
			r.sync(e)
			return r.focus()
		case "r":
			if r.focused != fieldName && r.errMsg != "" {
				return r.retry(e)
			}
		}
	}

	if r.focused == fieldName {
		var cmd tea.Cmd
		r.name, cmd = r.name.Update(msg)
		e.profile.Name = r.name.Value()
		return cmd
	}

	if !isKey {
		return nil
	}
	var idx int
	r.pickers[r.focused], idx = r.pickers[r.focused].Update(msg)
	if idx < 0 {
		return nil
	}
	return r.choose(e, r.focused, idx)
}

// focus gives the name input the cursor when it is the focused field.
func (r *roleTab) focus() tea.Cmd {
	if r.focused == fieldName {
		return r.name.Focus()
	}
	r.name.Blur()
	return nil
}

func (r *roleTab) blur() {
	r.name.Blur()
}

// sync copies the selection state into the pickers.
func (r *roleTab) sync(e *EditorScreen) {
	sel := e.profile.Selection
	lists := [fieldName][]taxonomy.Option{r.professions, sel.Departments, sel.Roles}
	chosen := [fieldName]taxonomy.Option{sel.Profession, sel.Department, sel.Role}
	disabled := [fieldName]bool{false, !sel.Profession.IsSet(), !sel.Department.IsSet()}

	for i := range r.pickers {
		p := &r.pickers[i]
		p.SetItems(optionNames(lists[i]))
		p.Selected = chosen[i].Name
		p.Loading = r.loading[i]
		p.Disabled = disabled[i]
		p.Focused = roleField(i) == r.focused
	}
}

func (r *roleTab) hints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	if r.focused != fieldName {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Choose"})
		if r.errMsg != "" {
			hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry"})
		}
	}
	return hints
}

func (r *roleTab) view(e *EditorScreen, cw int) string {
	var parts []string
	for i := range r.pickers {
		parts = append(parts, r.pickers[i].View(cw-4))
	}
	r.name.SetWidth(cw - 8)
	parts = append(parts, "", r.name.View())

	if e.profile.ID != 0 {
		parts = append(parts, "", theme.Hint.Render(fmt.Sprintf("Profile ID: %d", e.profile.ID)))
	}

	out := components.Panel("Role", strings.Join(parts, "\n"), cw, true)
	if r.errMsg != "" {
		out += "\n" + components.ConnectionError(r.errMsg, cw)
	}
	return out
}

func (f roleField) String() string {
	switch f {
	case fieldProfession:
		return "professions"
	case fieldDepartment:
		return "departments"
	case fieldRole:
		return "roles"
	default:
		return "name"
	}
}

func optionNames(opts []taxonomy.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Name
	}
	return out
}
