package crafting

import (
	"fmt"
	"sort"

	"github.com/abhisek/craftq/internal/inventory"
	"github.com/abhisek/craftq/internal/recipes"
)

// Ledger is the material store the engine draws from.
type Ledger interface {
	Available(kind string) int
	Stacks(kind string) []inventory.Stack
	Consume(stackID string, qty int) error
	RemoveStack(stackID string) error
}

// ItemCatalog resolves item kinds to templates.
type ItemCatalog interface {
	Resolve(kind string) (inventory.ItemTemplate, bool)
}

// Inventory receives crafted items.
type Inventory interface {
	AddFromTemplate(tmpl inventory.ItemTemplate, qty int) error
}

// templateRegistrar is implemented by item catalogs that accept
// player-created templates.
type templateRegistrar interface {
	Register(tmpl inventory.ItemTemplate)
}

// Check reports whether a recipe can be crafted at level with the
// ledger's current contents. The skill requirement is checked first,
// then materials in declaration order; the first shortfall is returned.
func Check(r recipes.Recipe, level int, ledger Ledger) error {
	if level < r.RequiredLevel {
		return &InsufficientSkillError{Profession: r.Profession, Required: r.RequiredLevel, Have: level}
	}
	for _, m := range r.Materials {
		if have := ledger.Available(m.ItemKind); have < m.Quantity {
			return &InsufficientMaterialError{Kind: m.ItemKind, Needed: m.Quantity, Have: have}
		}
	}
	return nil
}

// Consume removes every material of r from the ledger, one requirement
// at a time.
func Consume(r recipes.Recipe, ledger Ledger) error {
	for _, m := range r.Materials {
		if err := consumeKind(ledger, m.ItemKind, m.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// consumeKind depletes the smallest stacks of kind first. Stacks that
// are used up are removed; the last one touched is decremented.
func consumeKind(ledger Ledger, kind string, qty int) error {
	stacks := ledger.Stacks(kind)
	sort.SliceStable(stacks, func(i, j int) bool { return stacks[i].Quantity < stacks[j].Quantity })

	remaining := qty
	for _, s := range stacks {
		if remaining == 0 {
			break
		}
		if s.Quantity <= remaining {
			if err := ledger.RemoveStack(s.ID); err != nil {
				return fmt.Errorf("remove stack %s: %w", s.ID, err)
			}
			remaining -= s.Quantity
			continue
		}
		if err := ledger.Consume(s.ID, remaining); err != nil {
			return fmt.Errorf("consume %d from stack %s: %w", remaining, s.ID, err)
		}
		remaining = 0
	}
	if remaining > 0 {
		return &InsufficientMaterialError{Kind: kind, Needed: qty, Have: qty - remaining}
	}
	return nil
}
