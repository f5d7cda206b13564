// Package events browses the local log of API and LLM calls.
package events

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/screen"
	"github.com/abhisek/prism/internal/store"
	"github.com/abhisek/prism/internal/ui/components"
	"github.com/abhisek/prism/internal/ui/layout"
	"github.com/abhisek/prism/internal/ui/theme"
)

const pageSize = 200

// filter selects which event kinds are listed.
type filter int

const (
	filterAll filter = iota
	filterAPI
	filterLLM
)

func (f filter) String() string {
	switch f {
	case filterAPI:
		return "API"
	case filterLLM:
		return "LLM"
	default:
		return "All"
	}
}

func (f filter) match(k store.EventKind) bool {
	switch f {
	case filterAPI:
		return k == store.KindAPI
	case filterLLM:
		return k == store.KindLLM
	default:
		return true
	}
}

type eventsLoadedMsg struct {
	Records []store.EventRecord
	Stats   []store.EventStat
	Err     error
}

type detailLoadedMsg struct {
	Record *store.LLMRequestRecord
	Err    error
}

// EventsScreen lists events with a kind filter and an LLM detail pane.
type EventsScreen struct {
	repo      store.EventRepo
	records   []store.EventRecord
	stats     []store.EventStat
	filter    filter
	selected  int
	showStats bool
	detail    *store.LLMRequestRecord
	loaded    bool
	errMsg    string
}

var (
	_ screen.Screen          = (*EventsScreen)(nil)
	_ screen.KeyHintProvider = (*EventsScreen)(nil)
	_ screen.InputCapturer   = (*EventsScreen)(nil)
)

// New creates an EventsScreen over repo.
func New(repo store.EventRepo) *EventsScreen {
	return &EventsScreen{repo: repo}
}

func (s *EventsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *EventsScreen) load() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()
		records, err := repo.QueryEvents(ctx, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return eventsLoadedMsg{Err: err}
		}
		stats, err := repo.Stats(ctx)
		return eventsLoadedMsg{Records: records, Stats: stats, Err: err}
	}
}

func (s *EventsScreen) Title() string {
	return "Event Log"
}

func (s *EventsScreen) KeyHints() []layout.KeyHint {
	if s.detail != nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "LLM detail"},
		{Key: "s", Description: "Stats"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturingInput keeps Esc for closing the detail pane.
func (s *EventsScreen) CapturingInput() bool {
	return s.detail != nil
}

// visible returns the records matching the current filter.
func (s *EventsScreen) visible() []store.EventRecord {
	var out []store.EventRecord
	for _, r := range s.records {
		if s.filter.match(r.Kind) {
			out = append(out, r)
		}
	}
	return out
}

func (s *EventsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.records = msg.Records
		s.stats = msg.Stats
		s.selected = 0
		return s, nil

	case detailLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.detail = msg.Record
		return s, nil

	case tea.KeyPressMsg:
		if s.detail != nil {
			switch msg.String() {
			case "esc", "enter", "q":
				s.detail = nil
			}
			return s, nil
		}
		switch msg.String() {
		case "tab":
			s.filter = (s.filter + 1) % 3
			s.selected = 0
		case "shift+tab":
			s.filter = (s.filter + 2) % 3
			s.selected = 0
		case "s":
			s.showStats = !s.showStats
		case "r":
			return s, s.load()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.visible())-1 {
				s.selected++
			}
		case "enter":
			return s, s.openDetail()
		}
	}
	return s, nil
}

func (s *EventsScreen) openDetail() tea.Cmd {
	vis := s.visible()
	if s.selected >= len(vis) || vis[s.selected].Kind != store.KindLLM {
		return nil
	}
	seq := vis[s.selected].Sequence
	repo := s.repo
	return func() tea.Msg {
		rec, err := repo.GetLLMRequest(context.Background(), seq)
		if err == nil && rec == nil {
			err = fmt.Errorf("LLM event %d not found", seq)
		}
		return detailLoadedMsg{Record: rec, Err: err}
	}
}

func (s *EventsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case s.errMsg != "":
		return center.Render(theme.ErrorText.Render("\n\nError: " + s.errMsg))
	case !s.loaded:
		return center.Render(theme.Hint.Render("\n\nLoading events..."))
	case s.detail != nil:
		return center.Render(renderDetail(s.detail, cw, height))
	}

	var b strings.Builder
	b.WriteString(s.renderTabs())
	b.WriteString("\n\n")

	if s.showStats {
		b.WriteString(renderStats(s.stats, s.filter, cw))
		return center.Render(b.String())
	}

	vis := s.visible()
	if len(vis) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No events recorded yet."))
		return center.Render(b.String())
	}

	rows := max(height-4, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(vis))
	for i := start; i < end; i++ {
		b.WriteString(renderRow(vis[i], i == s.selected, cw))
		b.WriteString("\n")
	}
	return center.Render(b.String())
}

func (s *EventsScreen) renderTabs() string {
	var tabs []string
	for f := filterAll; f <= filterLLM; f++ {
		style := theme.Tab
		if f == s.filter {
			style = theme.ActiveTab
		}
		tabs = append(tabs, style.Render(f.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderRow(r store.EventRecord, selected bool, cw int) string {
	status := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	if !r.Success {
		status = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	line := fmt.Sprintf("%5d  %s  %-3s  %-28s  %-16s %6dms",
		r.Sequence, r.Timestamp.Local().Format("Jan 02 15:04:05"), strings.ToUpper(string(r.Kind)),
		truncate(r.Name, 28), truncate(r.Detail, 16), r.LatencyMs)

	style := lipgloss.NewStyle().Foreground(theme.Text).MaxWidth(cw - 2)
	prefix := "  "
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
		prefix = "▸ "
	}
	return prefix + style.Render(line) + " " + status
}

func renderStats(stats []store.EventStat, f filter, cw int) string {
	var b strings.Builder
	header := fmt.Sprintf("%-4s %-32s %6s %6s %10s", "KIND", "NAME", "CALLS", "FAILED", "AVG")
	b.WriteString(theme.Subtitle.Render(header))
	b.WriteString("\n")
	n := 0
	for _, st := range stats {
		if !f.match(st.Kind) {
			continue
		}
		n++
		line := fmt.Sprintf("%-4s %-32s %6d %6d %8.0fms",
			strings.ToUpper(string(st.Kind)), truncate(st.Name, 32), st.Count, st.Failures, st.AvgLatencyMs)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if st.Failures > 0 {
			style = style.Foreground(theme.Accent)
		}
		b.WriteString(style.MaxWidth(cw).Render(line))
		b.WriteString("\n")
	}
	if n == 0 {
		b.WriteString(theme.Hint.Render("No events recorded yet."))
	}
	return b.String()
}

func renderDetail(r *store.LLMRequestRecord, cw, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sequence:  %d\n", r.Sequence)
	fmt.Fprintf(&b, "Time:      %s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Provider:  %s (%s)\n", r.Provider, r.Model)
	fmt.Fprintf(&b, "Purpose:   %s\n", r.Purpose)
	fmt.Fprintf(&b, "Tokens:    %d in / %d out\n", r.InputTokens, r.OutputTokens)
	fmt.Fprintf(&b, "Latency:   %dms\n", r.LatencyMs)
	if r.Success {
		b.WriteString("Status:    success\n")
	} else {
		fmt.Fprintf(&b, "Status:    failed: %s\n", r.ErrorMessage)
	}

	bodyLines := max((height-14)/2, 3)
	b.WriteString("\n" + theme.Subtitle.Render("Request") + "\n")
	b.WriteString(clip(r.RequestBody, bodyLines))
	b.WriteString("\n\n" + theme.Subtitle.Render("Response") + "\n")
	b.WriteString(clip(r.ResponseBody, bodyLines))

	return components.Panel("LLM Request", lipgloss.NewStyle().Foreground(theme.Text).Width(cw-4).Render(b.String()), cw, true)
}

func clip(s string, lines int) string {
	if s == "" {
		return theme.Hint.Render("(empty)")
	}
	parts := strings.Split(s, "\n")
	if len(parts) > lines {
		parts = append(parts[:lines], fmt.Sprintf("… %d more lines (prism events view for the full body)", len(parts)-lines))
	}
	return strings.Join(parts, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
