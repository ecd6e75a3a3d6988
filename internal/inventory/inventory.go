package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/craftq/internal/store"
)

var (
	// ErrStackNotFound is returned when a stack id does not exist.
	ErrStackNotFound = errors.New("inventory: stack not found")

	// ErrOverdraw is returned when a consume exceeds a stack's quantity.
	ErrOverdraw = errors.New("inventory: quantity exceeds stack")
)

// Stack is a quantity of one item kind occupying a single slot.
type Stack struct {
	ID       string
	Kind     string
	Quantity int
}

// Inventory is an ordered collection of item stacks.
type Inventory struct {
	items  *ItemCatalog
	stacks []*Stack
	newID  func() string
}

// New creates an empty inventory. Stack limits come from items; a nil
// catalog means every kind stacks without limit.
func New(items *ItemCatalog) *Inventory {
	return &Inventory{
		items: items,
		newID: func() string { return uuid.NewString() },
	}
}

// Available returns the total quantity of kind across all stacks.
func (inv *Inventory) Available(kind string) int {
	total := 0
	for _, s := range inv.stacks {
		if s.Kind == kind {
			total += s.Quantity
		}
	}
	return total
}

// Stacks returns copies of the stacks holding kind, in slot order.
func (inv *Inventory) Stacks(kind string) []Stack {
	var out []Stack
	for _, s := range inv.stacks {
		if s.Kind == kind {
			out = append(out, *s)
		}
	}
	return out
}

// All returns copies of every stack, in slot order.
func (inv *Inventory) All() []Stack {
	out := make([]Stack, 0, len(inv.stacks))
	for _, s := range inv.stacks {
		out = append(out, *s)
	}
	return out
}

// Consume removes qty from the stack. A stack that reaches zero is
// removed from the inventory.
func (inv *Inventory) Consume(stackID string, qty int) error {
	i := inv.index(stackID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrStackNotFound, stackID)
	}
	s := inv.stacks[i]
	if qty < 0 || qty > s.Quantity {
		return fmt.Errorf("%w: consume %d from %s (has %d)", ErrOverdraw, qty, stackID, s.Quantity)
	}
	s.Quantity -= qty
	if s.Quantity == 0 {
		inv.stacks = append(inv.stacks[:i], inv.stacks[i+1:]...)
	}
	return nil
}

// RemoveStack deletes a stack regardless of its quantity.
func (inv *Inventory) RemoveStack(stackID string) error {
	i := inv.index(stackID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrStackNotFound, stackID)
	}
	inv.stacks = append(inv.stacks[:i], inv.stacks[i+1:]...)
	return nil
}

// Add places qty units of kind into the inventory, topping up partial
// stacks before opening new ones.
func (inv *Inventory) Add(kind string, qty int) {
	if qty <= 0 {
		return
	}
	limit := inv.limit(kind)
	for _, s := range inv.stacks {
		if qty == 0 {
			return
		}
		if s.Kind != kind || s.Quantity >= limit {
			continue
		}
		n := min(limit-s.Quantity, qty)
		s.Quantity += n
		qty -= n
	}
	for qty > 0 {
		n := min(limit, qty)
		inv.stacks = append(inv.stacks, &Stack{ID: inv.newID(), Kind: kind, Quantity: n})
		qty -= n
	}
}

// AddFromTemplate adds qty units of the template's kind. The template
// is registered with the item catalog if the kind is unknown.
func (inv *Inventory) AddFromTemplate(tmpl ItemTemplate, qty int) error {
	if tmpl.Kind == "" {
		return errors.New("inventory: template has no kind")
	}
	if inv.items != nil {
		if _, ok := inv.items.Resolve(tmpl.Kind); !ok {
			inv.items.Register(tmpl)
		}
	}
	inv.Add(tmpl.Kind, qty)
	return nil
}

// Items returns the item catalog backing this inventory.
func (inv *Inventory) Items() *ItemCatalog {
	return inv.items
}

func (inv *Inventory) index(stackID string) int {
	for i, s := range inv.stacks {
		if s.ID == stackID {
			return i
		}
	}
	return -1
}

func (inv *Inventory) limit(kind string) int {
	if inv.items == nil {
		return int(^uint(0) >> 1)
	}
	if t, ok := inv.items.Resolve(kind); ok {
		return t.StackLimit()
	}
	return int(^uint(0) >> 1)
}

// SnapshotData exports stacks and player-created templates.
func (inv *Inventory) SnapshotData() *store.InventorySnapshotData {
	data := &store.InventorySnapshotData{}
	for _, s := range inv.stacks {
		data.Stacks = append(data.Stacks, store.StackData{ID: s.ID, Kind: s.Kind, Quantity: s.Quantity})
	}
	if inv.items != nil {
		data.Templates = inv.items.SnapshotData()
	}
	return data
}

// Load restores an inventory from snapshot data. Stacks without a
// positive quantity are dropped.
func Load(items *ItemCatalog, data *store.InventorySnapshotData) *Inventory {
	inv := New(items)
	if data == nil {
		return inv
	}
	if items != nil {
		items.LoadTemplates(data.Templates)
	}
	for _, s := range data.Stacks {
		if s.Quantity <= 0 || s.Kind == "" {
			continue
		}
		id := s.ID
		if id == "" {
			id = inv.newID()
		}
		inv.stacks = append(inv.stacks, &Stack{ID: id, Kind: s.Kind, Quantity: s.Quantity})
	}
	return inv
}

// AddStack opens a new stack of kind holding exactly qty units and
// returns its id. The stack limit is not applied.
func (inv *Inventory) AddStack(kind string, qty int) string {
	id := inv.newID()
	inv.stacks = append(inv.stacks, &Stack{ID: id, Kind: kind, Quantity: qty})
	return id
}
