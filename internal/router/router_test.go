package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/craftq/internal/screen"
)

// fakeScreen records what the router does to it.
type fakeScreen struct {
	title   string
	inits   int
	updates int
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }

func TestStackNavigation(t *testing.T) {
	workshop := &fakeScreen{title: "workshop"}
	journal := &fakeScreen{title: "journal"}
	r := New(workshop)

	r.Update(PushScreenMsg{Screen: journal})
	if r.Depth() != 2 || r.Active() != journal {
		t.Fatalf("after push: depth=%d active=%q", r.Depth(), r.Active().Title())
	}
	if journal.inits != 1 {
		t.Errorf("journal Init ran %d times, want 1", journal.inits)
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != workshop {
		t.Fatalf("after pop: depth=%d active=%q", r.Depth(), r.Active().Title())
	}

	// The root screen stays.
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("depth after popping root = %d, want 1", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&fakeScreen{title: "workshop"})
	r.Push(&fakeScreen{title: "journal"})

	filtered := &fakeScreen{title: "journal: item_crafted"}
	r.Update(ReplaceScreenMsg{Screen: filtered})

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if got := r.View(80, 24); got != filtered.title {
		t.Errorf("view = %q, want %q", got, filtered.title)
	}
	if filtered.inits != 1 {
		t.Errorf("replacement Init ran %d times, want 1", filtered.inits)
	}
}

func TestOnlyTopScreenReceivesMessages(t *testing.T) {
	workshop := &fakeScreen{title: "workshop"}
	journal := &fakeScreen{title: "journal"}
	r := New(workshop)
	r.Push(journal)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if journal.updates != 1 || workshop.updates != 0 {
		t.Errorf("updates: journal=%d workshop=%d", journal.updates, workshop.updates)
	}
}
