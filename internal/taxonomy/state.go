package taxonomy

// Stage is the position in the selection state machine.
type Stage int

const (
	StageNone Stage = iota
	StageProfessionChosen
	StageDepartmentChosen
	StageRoleChosen
)

func (s Stage) String() string {
	switch s {
	case StageProfessionChosen:
		return "profession chosen"
	case StageDepartmentChosen:
		return "department chosen"
	case StageRoleChosen:
		return "role chosen"
	default:
		return "none"
	}
}

// State is the current selection plus the option lists loaded for each
// chosen parent. It changes only through Transition.
type State struct {
	Profession Option
	Department Option
	Role       Option

	Departments []Option // options under Profession
	Roles       []Option // options under Department
}

// Event drives Transition.
type Event interface {
	isEvent()
}

// ChooseProfession selects (or, with a zero Option, clears) the profession.
type ChooseProfession struct{ Option Option }

// ChooseDepartment selects or clears the department.
type ChooseDepartment struct{ Option Option }

// ChooseRole selects or clears the role.
type ChooseRole struct{ Option Option }

// DepartmentsLoaded delivers the department options of Parent.
type DepartmentsLoaded struct {
	Parent  ID
	Options []Option
}

// RolesLoaded delivers the role options of Parent.
type RolesLoaded struct {
	Parent  ID
	Options []Option
}

// Reset clears everything.
type Reset struct{}

func (ChooseProfession) isEvent()  {}
func (ChooseDepartment) isEvent()  {}
func (ChooseRole) isEvent()        {}
func (DepartmentsLoaded) isEvent() {}
func (RolesLoaded) isEvent()       {}
func (Reset) isEvent()             {}

// Transition applies ev to s. Any change at one level clears every level
// below it, including loaded option lists. Events referring to a parent that
// is no longer selected are ignored.
func Transition(s State, ev Event) State {
	switch ev := ev.(type) {
	case ChooseProfession:
		if ev.Option.ID == s.Profession.ID {
			return s
		}
		return State{Profession: ev.Option}

	case ChooseDepartment:
		if !s.Profession.IsSet() || ev.Option.ID == s.Department.ID {
			return s
		}
		return State{
			Profession:  s.Profession,
			Departments: s.Departments,
			Department:  ev.Option,
		}

	case ChooseRole:
		if !s.Department.IsSet() || ev.Option.ID == s.Role.ID {
			return s
		}
		s.Role = ev.Option
		return s

	case DepartmentsLoaded:
		if !s.Profession.IsSet() || ev.Parent != s.Profession.ID {
			return s
		}
		s.Departments = ev.Options
		return s

	case RolesLoaded:
		if !s.Department.IsSet() || ev.Parent != s.Department.ID {
			return s
		}
		s.Roles = ev.Options
		return s

	case Reset:
		return State{}
	}
	return s
}

// Stage derives the state machine position.
func (s State) Stage() Stage {
	switch {
	case s.Role.IsSet():
		return StageRoleChosen
	case s.Department.IsSet():
		return StageDepartmentChosen
	case s.Profession.IsSet():
		return StageProfessionChosen
	default:
		return StageNone
	}
}

// Key returns the current selection.
func (s State) Key() Key {
	return Key{Profession: s.Profession, Department: s.Department, Role: s.Role}
}

// Restore replays a saved selection through Transition.
func Restore(k Key) State {
	s := Transition(State{}, ChooseProfession{k.Profession})
	s = Transition(s, ChooseDepartment{k.Department})
	return Transition(s, ChooseRole{k.Role})
}
