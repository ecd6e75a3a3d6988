package inventory

import (
	"errors"
	"testing"

	"github.com/abhisek/craftq/internal/store"
)

func testItems(t *testing.T) *ItemCatalog {
	t.Helper()
	items, err := BuiltinItems()
	if err != nil {
		t.Fatalf("builtin items: %v", err)
	}
	return items
}

func TestBuiltinItemsResolve(t *testing.T) {
	items := testItems(t)

	tmpl, ok := items.Resolve("linen-bandage")
	if !ok {
		t.Fatal("linen-bandage not found")
	}
	if tmpl.Name != "Linen Bandage" || tmpl.StackLimit() != 20 {
		t.Errorf("linen-bandage = %+v", tmpl)
	}
	if _, ok := items.Resolve("no-such-item"); ok {
		t.Error("unknown kind resolved")
	}

	scroll, ok := items.Resolve("recipe-anti-venom")
	if !ok || !scroll.IsScroll() || scroll.RecipeID != "anti-venom" {
		t.Errorf("anti-venom scroll = %+v", scroll)
	}
}

func TestAddTopsUpThenOpensStacks(t *testing.T) {
	inv := New(testItems(t))

	inv.Add("linen-cloth", 15)
	inv.Add("linen-cloth", 10)

	stacks := inv.Stacks("linen-cloth")
	if len(stacks) != 2 {
		t.Fatalf("stacks = %d, want 2", len(stacks))
	}
	if stacks[0].Quantity != 20 || stacks[1].Quantity != 5 {
		t.Errorf("quantities = %d, %d, want 20, 5", stacks[0].Quantity, stacks[1].Quantity)
	}
	if got := inv.Available("linen-cloth"); got != 25 {
		t.Errorf("available = %d, want 25", got)
	}
	if stacks[0].ID == stacks[1].ID {
		t.Error("stack ids should be unique")
	}
}

func TestAddUnknownKindIsUnbounded(t *testing.T) {
	inv := New(testItems(t))
	inv.Add("mystery-dust", 500)
	if n := len(inv.Stacks("mystery-dust")); n != 1 {
		t.Errorf("stacks = %d, want 1", n)
	}
}

func TestConsume(t *testing.T) {
	inv := New(nil)
	id := inv.AddStack("peacebloom", 3)

	if err := inv.Consume(id, 2); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if got := inv.Available("peacebloom"); got != 1 {
		t.Errorf("available = %d, want 1", got)
	}

	if err := inv.Consume(id, 2); !errors.Is(err, ErrOverdraw) {
		t.Errorf("overdraw err = %v", err)
	}

	if err := inv.Consume(id, 1); err != nil {
		t.Fatalf("consume last: %v", err)
	}
	if len(inv.All()) != 0 {
		t.Error("empty stack should be removed")
	}

	if err := inv.Consume(id, 1); !errors.Is(err, ErrStackNotFound) {
		t.Errorf("missing stack err = %v", err)
	}
}

func TestRemoveStack(t *testing.T) {
	inv := New(nil)
	a := inv.AddStack("silverleaf", 4)
	b := inv.AddStack("silverleaf", 2)

	if err := inv.RemoveStack(a); err != nil {
		t.Fatalf("remove: %v", err)
	}
	stacks := inv.Stacks("silverleaf")
	if len(stacks) != 1 || stacks[0].ID != b {
		t.Errorf("remaining = %+v", stacks)
	}
	if err := inv.RemoveStack(a); !errors.Is(err, ErrStackNotFound) {
		t.Errorf("second remove err = %v", err)
	}
}

func TestAddFromTemplateRegistersUnknownKind(t *testing.T) {
	items := testItems(t)
	inv := New(items)

	tmpl := ScrollFor("elixir-of-the-owl-recipe", "Elixir of the Owl", "alchemy", 2)
	if err := inv.AddFromTemplate(tmpl, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := inv.Available("elixir-of-the-owl-recipe-scroll"); got != 1 {
		t.Errorf("available = %d, want 1", got)
	}
	got, ok := items.Resolve(tmpl.Kind)
	if !ok || got.RecipeID != "elixir-of-the-owl-recipe" || got.RequiredLevel != 2 {
		t.Errorf("registered template = %+v", got)
	}

	if err := inv.AddFromTemplate(ItemTemplate{}, 1); err == nil {
		t.Error("expected error for template without kind")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	items := testItems(t)
	inv := New(items)
	inv.Add("wool-cloth", 7)
	inv.AddStack("empty-vial", 1)
	items.Register(ScrollFor("owl-recipe", "Owl", "alchemy", 0))

	data := inv.SnapshotData()
	if len(data.Stacks) != 2 || len(data.Templates) != 1 {
		t.Fatalf("snapshot = %+v", data)
	}

	fresh := testItems(t)
	restored := Load(fresh, data)
	if got := restored.Available("wool-cloth"); got != 7 {
		t.Errorf("wool-cloth = %d, want 7", got)
	}
	if restored.All()[0].ID != inv.All()[0].ID {
		t.Error("stack ids should survive a round trip")
	}
	if _, ok := fresh.Resolve("owl-recipe-scroll"); !ok {
		t.Error("custom template not restored")
	}
}

func TestLoadDropsEmptyStacks(t *testing.T) {
	inv := Load(nil, &store.InventorySnapshotData{Stacks: []store.StackData{
		{ID: "a", Kind: "peacebloom", Quantity: 0},
		{ID: "b", Kind: "", Quantity: 3},
		{Kind: "earthroot", Quantity: 2},
	}})
	all := inv.All()
	if len(all) != 1 || all[0].Kind != "earthroot" || all[0].ID == "" {
		t.Errorf("loaded = %+v", all)
	}

	if got := Load(nil, nil); len(got.All()) != 0 {
		t.Error("nil data should load empty inventory")
	}
}
