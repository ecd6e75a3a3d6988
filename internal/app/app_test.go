package app

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
	"github.com/abhisek/craftq/internal/screens/journal"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	items, err := inventory.BuiltinItems()
	if err != nil {
		t.Fatalf("builtin items: %v", err)
	}
	inv := inventory.New(items)
	eng := crafting.NewEngine(crafting.DefaultConfig(), crafting.Deps{
		Ledger:    inv,
		Items:     items,
		Inventory: inv,
		Pack:      recipes.Builtin(),
	}, nil, time.Now())
	return newAppModel(Options{Engine: eng, Recorder: notify.NewRecorder(10)})
}

func TestAppModel_HeaderShowsProfessionLevels(t *testing.T) {
	m := testModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = updated.(AppModel)

	status := m.status()
	if !strings.Contains(status, "Alchemy 0") || !strings.Contains(status, "First Aid 0") {
		t.Errorf("status = %q", status)
	}
	if strings.Contains(status, "Blacksmithing") {
		t.Errorf("status lists unimplemented profession: %q", status)
	}
	if !strings.Contains(m.frame(), "Workshop") {
		t.Error("frame missing workshop title")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := testModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).frame(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestAppModel_TickReschedules(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestAppModel_EscPopsPushedScreen(t *testing.T) {
	m := testModel(t)
	m.router.Push(journal.New(nil))
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}
