// Package workshop is the main crafting screen: recipe list, skill
// panel, live job progress and the notification log.
package workshop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/craftq/internal/crafting"
	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/recipes"
	"github.com/abhisek/craftq/internal/router"
	"github.com/abhisek/craftq/internal/screen"
	"github.com/abhisek/craftq/internal/ui/components"
	"github.com/abhisek/craftq/internal/ui/layout"
	"github.com/abhisek/craftq/internal/ui/theme"
)

const logLines = 8

// Screen is the workshop.
type Screen struct {
	eng         *crafting.Engine
	events      *notify.Recorder
	openJournal func() screen.Screen
	now         func() time.Time

	profs  []profession.Profession
	tab    int
	list   components.List
	filter components.FilterInput

	message    string
	messageErr bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the workshop screen. openJournal may be nil.
func New(eng *crafting.Engine, events *notify.Recorder, openJournal func() screen.Screen) *Screen {
	s := &Screen{
		eng:         eng,
		events:      events,
		openJournal: openJournal,
		now:         time.Now,
		profs:       profession.Implemented(),
		filter:      components.NewFilterInput("filter recipes", 32),
	}
	s.reload()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Workshop · " + s.current().Name
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Craft"},
		{Key: "Tab", Description: "Profession"},
		{Key: "/", Description: "Filter"},
		{Key: "x", Description: "Cancel last"},
		{Key: "a", Description: "Learn all"},
	}
	if s.openJournal != nil {
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Journal"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *Screen) current() profession.Profession {
	return s.profs[s.tab]
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.TickMsg:
		s.reload()
		return s, nil

	case tea.KeyMsg:
		if s.filter.Focused() {
			return s, s.updateFilter(msg)
		}
		switch msg.String() {
		case "tab", "right":
			s.tab = (s.tab + 1) % len(s.profs)
			s.list.Selected = 0
			s.reload()
			return s, nil
		case "shift+tab", "left":
			s.tab = (s.tab + len(s.profs) - 1) % len(s.profs)
			s.list.Selected = 0
			s.reload()
			return s, nil
		case "/":
			return s, s.filter.Focus()
		case "enter", "c":
			s.craftSelected()
			return s, nil
		case "x":
			s.cancelLast()
			return s, nil
		case "a":
			n := s.eng.LearnAll(context.Background(), s.current().ID, s.now())
			s.setMessage(fmt.Sprintf("Learned %d new %s recipes.", n, s.current().Name), false)
			s.reload()
			return s, nil
		case "g":
			if s.openJournal != nil {
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: s.openJournal()} }
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.filter.Clear()
		s.filter.Blur()
	case "enter":
		s.filter.Blur()
	default:
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.reload()
		return cmd
	}
	s.reload()
	return nil
}

func (s *Screen) craftSelected() {
	id := s.list.SelectedID()
	if id == "" {
		return
	}
	job, err := s.eng.Craft(context.Background(), id, s.now())
	if err != nil {
		s.setMessage(err.Error(), true)
		return
	}
	s.setMessage(fmt.Sprintf("Queued %s.", job.Recipe.Name), false)
	s.reload()
}

// cancelLast removes the most recently queued job of the profession.
func (s *Screen) cancelLast() {
	queued := s.eng.Status(s.current().ID).Queued
	if len(queued) == 0 {
		s.setMessage("Nothing waiting to cancel.", true)
		return
	}
	last := queued[len(queued)-1]
	if err := s.eng.Remove(last.ID); err != nil {
		s.setMessage(err.Error(), true)
		return
	}
	s.setMessage(fmt.Sprintf("Cancelled %s.", last.Recipe.Name), false)
}

func (s *Screen) setMessage(msg string, isErr bool) {
	s.message = msg
	s.messageErr = isErr
}

// reload rebuilds the recipe rows from the engine.
func (s *Screen) reload() {
	p := s.current().ID
	var items []components.ListItem
	for _, r := range s.eng.KnownRecipes(p) {
		if !s.filter.Matches(r.Name) {
			continue
		}
		detail, ok := s.readiness(r)
		items = append(items, components.ListItem{
			ID:     r.ID,
			Label:  r.Name,
			Detail: detail,
			Dimmed: !ok,
		})
	}
	s.list.SetItems(items)
}

// readiness summarizes whether a recipe can be crafted right now.
func (s *Screen) readiness(r recipes.Recipe) (string, bool) {
	err := s.eng.CanCraft(r.ID)
	var (
		skill    *crafting.InsufficientSkillError
		material *crafting.InsufficientMaterialError
	)
	switch {
	case err == nil:
		return "ready", true
	case errors.As(err, &skill):
		return fmt.Sprintf("needs %s", profession.LevelInfo(skill.Required).Name), false
	case errors.As(err, &material):
		return fmt.Sprintf("%d/%d %s", material.Have, material.Needed, s.eng.ItemName(material.Kind)), false
	default:
		return "unavailable", false
	}
}

func (s *Screen) View(width, height int) string {
	if layout.IsCompactWidth(width) {
		top := s.renderRecipes(width, height/2)
		bottom := s.renderPanel(width, height-lipgloss.Height(top)-1)
		return top + "\n" + bottom
	}
	leftW, rightW := layout.SplitWidths(width, 0.45)
	left := lipgloss.NewStyle().Width(leftW).Render(s.renderRecipes(leftW, height))
	right := lipgloss.NewStyle().Width(rightW).Render(s.renderPanel(rightW, height))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (s *Screen) renderTabs() string {
	tabs := make([]string, 0, len(s.profs))
	for i, p := range s.profs {
		label := " " + p.Name + " "
		if i == s.tab {
			tabs = append(tabs, lipgloss.NewStyle().Background(theme.Primary).Foreground(theme.BgDark).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (s *Screen) renderRecipes(width, height int) string {
	var b strings.Builder
	b.WriteString(s.renderTabs())
	b.WriteString("\n")
	b.WriteString(s.filter.View())
	b.WriteString("\n\n")

	if len(s.list.Items) == 0 {
		b.WriteString(theme.Hint.Render("  No known recipes. Press a to learn them all."))
	} else {
		b.WriteString(s.list.View(width, max(height-5, 1)))
	}

	if s.message != "" {
		style := theme.Good
		if s.messageErr {
			style = theme.Bad
		}
		b.WriteString("\n\n")
		b.WriteString(style.Render(" " + s.message))
	}
	return b.String()
}

func (s *Screen) renderPanel(width, height int) string {
	inner := max(width-4, 10)
	sections := []string{
		theme.Card.Width(width).Render(s.renderSkill(inner)),
		theme.Card.Width(width).Render(s.renderJobs(inner)),
		theme.Card.Width(width).Render(s.renderLog(inner)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *Screen) renderSkill(width int) string {
	ps := s.eng.Profession(s.current().ID)
	rank := lipgloss.NewStyle().Foreground(theme.SkillColor(ps.State.Level)).Bold(true).
		Render(fmt.Sprintf("%s %s", ps.Rung.Name, ps.Profession.Name))

	xp := fmt.Sprintf("Level %d · %d XP · +%d crafting bonus", ps.State.Level, ps.State.Experience, ps.Rung.DisplayBonus)
	if next, ok := profession.NextThreshold(ps.State.Level); ok {
		xp += fmt.Sprintf(" · next at %d", next)
	}

	bar := components.NewProgressBar("Skill", ps.Progress, true, width)
	bar.Fill = theme.SkillColor(ps.State.Level)

	return rank + "\n" + theme.Subtitle.Render(xp) + "\n" + bar.View()
}

func (s *Screen) renderJobs(width int) string {
	st := s.eng.Status(s.current().ID)
	var b strings.Builder

	if st.Active == nil {
		b.WriteString(theme.Hint.Render("Idle"))
	} else {
		j := st.Active
		left := j.Remaining(s.now()).Round(100 * time.Millisecond)
		b.WriteString(theme.Body.Render(fmt.Sprintf("Crafting %s · %s left", j.Recipe.Name, left)))
		b.WriteString("\n")
		b.WriteString(components.NewProgressBar("", j.Progress, true, width).View())
	}

	const shown = 4
	for i, j := range st.Queued {
		if i == shown {
			b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("  … %d more", len(st.Queued)-shown)))
			break
		}
		b.WriteString("\n" + theme.Subtitle.Render(fmt.Sprintf("  %d. %s", i+1, j.Recipe.Name)))
	}
	return b.String()
}

func (s *Screen) renderLog(width int) string {
	if s.events == nil {
		return ""
	}
	events := s.events.Events()
	if len(events) == 0 {
		return theme.Hint.Render("No activity yet.")
	}
	if len(events) > logLines {
		events = events[len(events)-logLines:]
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		line := fmt.Sprintf("%s %s", e.Kind.Icon(), e.Message)
		lines = append(lines, lipgloss.NewStyle().Foreground(kindColor(e.Kind)).MaxWidth(width).Render(line))
	}
	return strings.Join(lines, "\n")
}
