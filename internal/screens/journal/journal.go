// Package journal shows the persisted crafting notifications.
package journal

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/router"
	"github.com/abhisek/craftq/internal/screen"
	"github.com/abhisek/craftq/internal/store"
	"github.com/abhisek/craftq/internal/ui/layout"
	"github.com/abhisek/craftq/internal/ui/theme"
)

// PageSize is the number of entries loaded per query.
const PageSize = 200

// filters are cycled with f. The empty kind shows everything.
var filters = []notify.Kind{
	"",
	notify.KindItemCrafted,
	notify.KindSkillIncrease,
	notify.KindRecipeLearned,
	notify.KindCraftingFailed,
}

type loadedMsg struct {
	Kind    notify.Kind
	Entries []store.CraftEventRecord
	Err     error
}

// Screen lists journal entries newest first.
type Screen struct {
	repo    store.EventRepo
	filter  int
	entries []store.CraftEventRecord
	offset  int
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a journal screen backed by repo.
func New(repo store.EventRepo) *Screen {
	return &Screen{repo: repo}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) load() tea.Cmd {
	kind := filters[s.filter]
	return func() tea.Msg {
		entries, err := s.repo.QueryCraftEvents(context.Background(), store.QueryOpts{
			Limit: PageSize,
			Kind:  string(kind),
		})
		return loadedMsg{Kind: kind, Entries: entries, Err: err}
	}
}

func (s *Screen) Title() string {
	if k := filters[s.filter]; k != "" {
		return "Journal · " + string(k)
	}
	return "Journal"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "f", Description: "Filter"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		// Drop results of a filter that is no longer selected.
		if msg.Kind != filters[s.filter] {
			return s, nil
		}
		s.loaded = true
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.entries = msg.Entries
		s.offset = 0
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.entries)-1 {
				s.offset++
			}
		case "f":
			s.filter = (s.filter + 1) % len(filters)
			s.loaded = false
			return s, s.load()
		case "r":
			return s, s.load()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading journal...")
	case len(s.entries) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  Nothing recorded yet.")
	}

	rows := max(height-2, 1)
	end := min(s.offset+rows, len(s.entries))

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(" %d entries", len(s.entries))))
	b.WriteString("\n")
	for _, e := range s.entries[s.offset:end] {
		kind := notify.Kind(e.Kind)
		stamp := theme.Hint.Render(e.Timestamp.Local().Format("Jan 02 15:04:05"))
		line := fmt.Sprintf(" %s %s %s", stamp, kind.Icon(), e.Message)
		b.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(line))
		b.WriteString("\n")
	}
	if end < len(s.entries) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf(" … %d older", len(s.entries)-end)))
	}
	return b.String()
}
