// Package archetype shows the archetype analysis of a profile's ratings.
package archetype

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/profile"
	"github.com/abhisek/prism/internal/screen"
	"github.com/abhisek/prism/internal/screens"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

type resultMsg struct {
	Result gateway.ArchetypeResult
	Err    error
}

// ArchetypeScreen requests and renders /api/archetype for one profile.
type ArchetypeScreen struct {
	deps    *screens.Deps
	profile *profile.Profile
	result  *gateway.ArchetypeResult
	local   skive.Archetype
	loaded  bool
	errMsg  string
	offset  int
}

var (
	_ screen.Screen          = (*ArchetypeScreen)(nil)
	_ screen.KeyHintProvider = (*ArchetypeScreen)(nil)
)

// New creates an ArchetypeScreen for p.
func New(deps *screens.Deps, p *profile.Profile) *ArchetypeScreen {
	return &ArchetypeScreen{
		deps:    deps,
		profile: p,
		local:   skive.DeriveArchetype(p.Ratings),
	}
}

func (s *ArchetypeScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *ArchetypeScreen) fetch() tea.Cmd {
	s.loaded = false
	s.errMsg = ""
	api := s.deps.Profiles
	req := s.profile.ArchetypeRequest()
	return func() tea.Msg {
		res, err := api.Archetype(context.Background(), req)
		return resultMsg{Result: res, Err: err}
	}
}

func (s *ArchetypeScreen) Title() string {
	if s.profile.Name != "" {
		return "Archetype: " + s.profile.Name
	}
	return "Archetype"
}

func (s *ArchetypeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ArchetypeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = screens.ErrorMessage(msg.Err)
			s.deps.Logger().Warn("archetype request failed", map[string]any{"error": msg.Err.Error()})
			return s, nil
		}
		s.result = &msg.Result
		s.offset = 0
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			return s, s.fetch()
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "home", "g":
			s.offset = 0
		}
	}
	return s, nil
}

func (s *ArchetypeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.errMsg != "":
		body = components.ConnectionError(s.errMsg, cw) + "\n\n" + s.renderLocal(cw)
	case !s.loaded:
		body = theme.Hint.Render("Analyzing competencies...")
	default:
		body = s.renderResult(cw)
	}

	lines := strings.Split(body, "\n")
	s.offset = min(s.offset, max(len(lines)-height, 0))
	end := min(s.offset+height, len(lines))
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(strings.Join(lines[s.offset:end], "\n"))
}

func (s *ArchetypeScreen) renderResult(cw int) string {
	res := s.result
	var sections []string

	name := res.Archetype.Name
	if name == "" {
		name = s.local.Name
	}
	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(name)
	if res.Archetype.GlobalName != "" {
		head += "\n" + theme.Subtitle.Render(res.Archetype.GlobalName)
	}
	if res.Archetype.Narrative != "" {
		head += "\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Width(cw-4).Render(res.Archetype.Narrative)
	}
	sections = append(sections, components.Panel("Archetype", head, cw, true))

	for _, key := range radarOrder(res.RadarData) {
		chart := components.BarChart{
			Series: skive.Series(res.RadarData[key]),
			Width:  cw - 4,
		}
		if d := skive.Domain(key); d.Valid() {
			chart.Color = theme.DomainColor(d)
		} else {
			chart.ColorOf = components.DomainColorOf
		}
		sections = append(sections, components.Panel(skive.Title(key), chart.View(), cw, false))
	}

	if info := renderProfession(res.ProfessionInfo, cw-4); info != "" {
		sections = append(sections, components.Panel("Profession", info, cw, false))
	}
	return strings.Join(sections, "\n")
}

// renderLocal shows the archetype derived from the ratings alone.
func (s *ArchetypeScreen) renderLocal(cw int) string {
	a := s.local
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(a.Name))
	b.WriteString("\n\n")
	groups := []struct {
		title  string
		series skive.Series
	}{
		{"Signature", a.Signature},
		{"Supporting", a.Supporting},
		{"Foundational", a.Foundational},
	}
	for _, g := range groups {
		if len(g.series) == 0 {
			continue
		}
		b.WriteString(components.BarChart{Title: g.title, Series: g.series, Width: cw - 4}.View())
		b.WriteString("\n\n")
	}
	summary := components.BarChart{
		Title:   "Domains",
		Series:  skive.Summary(s.profile.Ratings),
		ColorOf: components.DomainColorOf,
		Width:   cw - 4,
	}
	b.WriteString(summary.View())
	return components.Panel("Local Preview", b.String(), cw, false)
}

func renderProfession(p gateway.ProfessionInfo, w int) string {
	var lines []string
	add := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, theme.Subtitle.Render(label)+" "+
			lipgloss.NewStyle().Foreground(theme.Text).Width(w-lipgloss.Width(label)-1).Render(value))
	}
	if p.Title != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(p.Title))
	}
	if p.Summary != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Width(w).Render(p.Summary))
	}
	if p.YearsToRole > 0 {
		add("Years to role:", fmt.Sprintf("%d", p.YearsToRole))
	}
	add("Salary:", p.SalaryRange)
	add("Qualifications:", strings.Join(p.Qualifications, ", "))
	add("Certifications:", strings.Join(p.Certifications, ", "))
	add("Perks:", strings.Join(p.Perks, ", "))
	add("Highs:", p.Highs)
	add("Lows:", p.Lows)
	add("Pathway:", p.CareerPathway)
	add("Video:", p.VideoURL)
	return strings.Join(lines, "\n")
}

// radarOrder puts the summary chart first, then domains in display order,
// then anything else alphabetically.
func radarOrder(data map[string]gateway.RadarSeries) []string {
	rank := func(k string) int {
		if k == "summary" {
			return -1
		}
		for i, d := range skive.AllDomains {
			if string(d) == k {
				return i
			}
		}
		return len(skive.AllDomains)
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}
