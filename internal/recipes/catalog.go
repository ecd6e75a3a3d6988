package recipes

import (
	"github.com/abhisek/craftq/internal/profession"
)

// Catalog is the registry of recipe definitions, keyed by id.
// Registration order is preserved for listing.
type Catalog struct {
	recipes map[string]Recipe
	order   []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{recipes: make(map[string]Recipe)}
}

// Register adds a recipe, replacing any existing definition with the same id.
func (c *Catalog) Register(r Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, exists := c.recipes[r.ID]; !exists {
		c.order = append(c.order, r.ID)
	}
	c.recipes[r.ID] = r
	return nil
}

// Get returns the recipe with the given id.
func (c *Catalog) Get(id string) (Recipe, bool) {
	r, ok := c.recipes[id]
	return r, ok
}

// Has reports whether a recipe id is registered.
func (c *Catalog) Has(id string) bool {
	_, ok := c.recipes[id]
	return ok
}

// RecipesFor returns every recipe tagged with the profession.
func (c *Catalog) RecipesFor(p profession.ID) []Recipe {
	var out []Recipe
	for _, id := range c.order {
		if r := c.recipes[id]; r.Profession == p {
			out = append(out, r)
		}
	}
	return out
}

// All returns every recipe in registration order.
func (c *Catalog) All() []Recipe {
	out := make([]Recipe, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.recipes[id])
	}
	return out
}

// Len returns the number of registered recipes.
func (c *Catalog) Len() int {
	return len(c.order)
}
