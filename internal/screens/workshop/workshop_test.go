package workshop

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/craftq/internal/crafting"
	"github.com/abhisek/craftq/internal/inventory"
	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/recipes"
	"github.com/abhisek/craftq/internal/router"
	"github.com/abhisek/craftq/internal/screen"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestScreen(t *testing.T, journal func() screen.Screen) (*Screen, *inventory.Inventory) {
	t.Helper()
	items, err := inventory.BuiltinItems()
	if err != nil {
		t.Fatalf("builtin items: %v", err)
	}
	inv := inventory.New(items)
	rec := notify.NewRecorder(0)
	eng := crafting.NewEngine(crafting.DefaultConfig(), crafting.Deps{
		Ledger:    inv,
		Items:     items,
		Inventory: inv,
		Sink:      rec,
		Pack:      recipes.Builtin(),
	}, nil, t0)

	s := New(eng, rec, journal)
	s.now = func() time.Time { return t0 }
	return s, inv
}

func selectRecipe(t *testing.T, s *Screen, id string) {
	t.Helper()
	for i, it := range s.list.Items {
		if it.ID == id {
			s.list.Selected = i
			return
		}
	}
	t.Fatalf("recipe %q not listed", id)
}

func key(text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(text[0]), Text: text}
}

func TestWorkshop_Title(t *testing.T) {
	s, _ := newTestScreen(t, nil)
	if got := s.Title(); got != "Workshop · Alchemy" {
		t.Errorf("Title = %q", got)
	}
}

func TestWorkshop_TabSwitchesProfession(t *testing.T) {
	s, _ := newTestScreen(t, nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := s.Title(); got != "Workshop · First Aid" {
		t.Errorf("Title after tab = %q", got)
	}
	selectRecipe(t, s, "linen-bandage")

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := s.Title(); got != "Workshop · Alchemy" {
		t.Errorf("Title after second tab = %q", got)
	}
}

func TestWorkshop_CraftSelected(t *testing.T) {
	s, inv := newTestScreen(t, nil)
	inv.Add("peacebloom", 1)
	inv.Add("silverleaf", 1)
	inv.Add("empty-vial", 1)
	s.reload()
	selectRecipe(t, s, "minor-healing-potion")

	if s.list.Items[s.list.Selected].Dimmed {
		t.Error("craftable recipe should not be dimmed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.messageErr {
		t.Fatalf("unexpected error message %q", s.message)
	}
	if n := len(s.eng.Jobs()); n != 1 {
		t.Fatalf("jobs = %d, want 1", n)
	}
	if inv.Available("peacebloom") != 0 {
		t.Error("materials were not consumed")
	}
	if !strings.Contains(s.message, "Minor Healing Potion") {
		t.Errorf("message = %q", s.message)
	}
}

func TestWorkshop_CraftWithoutMaterials(t *testing.T) {
	s, _ := newTestScreen(t, nil)
	selectRecipe(t, s, "minor-healing-potion")

	row := s.list.Items[s.list.Selected]
	if !row.Dimmed {
		t.Error("recipe without materials should be dimmed")
	}
	if !strings.Contains(row.Detail, "Peacebloom") {
		t.Errorf("detail = %q, want the missing material", row.Detail)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.messageErr {
		t.Error("expected an error message")
	}
	if n := len(s.eng.Jobs()); n != 0 {
		t.Errorf("jobs = %d, want 0", n)
	}
	if kinds := s.events.Kinds(); len(kinds) != 1 || kinds[0] != notify.KindCraftingFailed {
		t.Errorf("events = %v", kinds)
	}
}

func TestWorkshop_CancelLast(t *testing.T) {
	s, inv := newTestScreen(t, nil)
	inv.Add("peacebloom", 2)
	inv.Add("silverleaf", 2)
	inv.Add("empty-vial", 2)
	s.reload()
	selectRecipe(t, s, "minor-healing-potion")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if n := len(s.eng.Jobs()); n != 2 {
		t.Fatalf("jobs = %d, want 2", n)
	}

	s.Update(key("x"))
	if n := len(s.eng.Jobs()); n != 1 {
		t.Errorf("jobs after cancel = %d, want 1", n)
	}

	s.Update(key("x"))
	s.Update(key("x"))
	if !s.messageErr {
		t.Error("cancelling an empty queue should report an error")
	}
}

func TestWorkshop_FilterNarrowsRecipes(t *testing.T) {
	s, _ := newTestScreen(t, nil)
	s.Update(key("a"))
	before := len(s.list.Items)
	if before < 2 {
		t.Fatalf("expected several alchemy recipes after learning all, got %d", before)
	}

	s.Update(key("/"))
	if !s.filter.Focused() {
		t.Fatal("filter should be focused")
	}
	if hints := s.KeyHints(); len(hints) != 2 {
		t.Errorf("filter hints = %d, want 2", len(hints))
	}
	for _, r := range "mana" {
		s.Update(key(string(r)))
	}
	if len(s.list.Items) != 1 || s.list.Items[0].ID != "minor-mana-potion" {
		t.Errorf("filtered items = %+v", s.list.Items)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.filter.Focused() || len(s.list.Items) != before {
		t.Errorf("escape should clear the filter, items = %d", len(s.list.Items))
	}
}

func TestWorkshop_JournalKey(t *testing.T) {
	opened := false
	s, _ := newTestScreen(t, func() screen.Screen {
		opened = true
		return nil
	})

	_, cmd := s.Update(key("g"))
	if cmd == nil {
		t.Fatal("expected a command on g")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected a push message")
	}
	if !opened {
		t.Error("journal factory was not called")
	}
}

func TestWorkshop_TickReloadsAvailability(t *testing.T) {
	s, inv := newTestScreen(t, nil)
	selectRecipe(t, s, "minor-healing-potion")
	if !s.list.Items[s.list.Selected].Dimmed {
		t.Fatal("recipe should start dimmed")
	}

	inv.Add("peacebloom", 1)
	inv.Add("silverleaf", 1)
	inv.Add("empty-vial", 1)
	s.Update(screen.TickMsg(t0))

	row := s.list.Items[s.list.Selected]
	if row.ID != "minor-healing-potion" || row.Dimmed || row.Detail != "ready" {
		t.Errorf("row after tick = %+v", row)
	}
}

func TestWorkshop_View(t *testing.T) {
	s, _ := newTestScreen(t, nil)
	for _, size := range [][2]int{{120, 30}, {80, 24}} {
		view := s.View(size[0], size[1])
		if !strings.Contains(view, "Alchemy") {
			t.Errorf("view %dx%d missing profession name", size[0], size[1])
		}
	}
}
