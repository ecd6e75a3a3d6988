package inventory

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/craftq/internal/store"
)

//go:embed items.yaml
var itemsYAML []byte

// ItemTemplate describes an item kind. Templates with a RecipeID are
// recipe scrolls that teach that recipe when used.
type ItemTemplate struct {
	Kind          string `yaml:"kind"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Icon          string `yaml:"icon"`
	Category      string `yaml:"category"`
	MaxStack      int    `yaml:"max_stack"`
	RecipeID      string `yaml:"recipe_id"`
	Profession    string `yaml:"profession"`
	RequiredLevel int    `yaml:"required_level"`
}

// IsScroll reports whether the template teaches a recipe.
func (t ItemTemplate) IsScroll() bool {
	return t.RecipeID != ""
}

// StackLimit returns the maximum stack size, at least 1.
func (t ItemTemplate) StackLimit() int {
	if t.MaxStack < 1 {
		return 1
	}
	return t.MaxStack
}

// ItemCatalog resolves item kinds to templates.
type ItemCatalog struct {
	templates map[string]ItemTemplate
	custom    map[string]bool
}

// NewItemCatalog creates an empty catalog.
func NewItemCatalog() *ItemCatalog {
	return &ItemCatalog{
		templates: make(map[string]ItemTemplate),
		custom:    make(map[string]bool),
	}
}

// BuiltinItems returns a catalog holding the shipped item definitions.
func BuiltinItems() (*ItemCatalog, error) {
	var f struct {
		Items []ItemTemplate `yaml:"items"`
	}
	if err := yaml.Unmarshal(itemsYAML, &f); err != nil {
		return nil, fmt.Errorf("decode item catalog: %w", err)
	}
	c := NewItemCatalog()
	for _, t := range f.Items {
		if t.Kind == "" {
			return nil, fmt.Errorf("item catalog: entry %q has no kind", t.Name)
		}
		c.templates[t.Kind] = t
	}
	return c, nil
}

// Resolve returns the template for an item kind.
func (c *ItemCatalog) Resolve(kind string) (ItemTemplate, bool) {
	t, ok := c.templates[kind]
	return t, ok
}

// Register adds a player-created template, e.g. the scroll for an
// authored recipe. Custom templates are persisted in snapshots.
func (c *ItemCatalog) Register(t ItemTemplate) {
	c.templates[t.Kind] = t
	c.custom[t.Kind] = true
}

// All returns every template sorted by kind.
func (c *ItemCatalog) All() []ItemTemplate {
	out := make([]ItemTemplate, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// SnapshotData exports the player-created templates.
func (c *ItemCatalog) SnapshotData() []store.ItemTemplateData {
	kinds := make([]string, 0, len(c.custom))
	for k := range c.custom {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	out := make([]store.ItemTemplateData, 0, len(kinds))
	for _, k := range kinds {
		t := c.templates[k]
		out = append(out, store.ItemTemplateData{
			Kind:          t.Kind,
			Name:          t.Name,
			Description:   t.Description,
			Icon:          t.Icon,
			Category:      t.Category,
			MaxStack:      t.MaxStack,
			RecipeID:      t.RecipeID,
			Profession:    t.Profession,
			RequiredLevel: t.RequiredLevel,
		})
	}
	return out
}

// LoadTemplates registers persisted player-created templates.
func (c *ItemCatalog) LoadTemplates(data []store.ItemTemplateData) {
	for _, d := range data {
		if d.Kind == "" {
			continue
		}
		c.Register(ItemTemplate{
			Kind:          d.Kind,
			Name:          d.Name,
			Description:   d.Description,
			Icon:          d.Icon,
			Category:      d.Category,
			MaxStack:      d.MaxStack,
			RecipeID:      d.RecipeID,
			Profession:    d.Profession,
			RequiredLevel: d.RequiredLevel,
		})
	}
}

// ScrollFor builds the scroll template that teaches an authored recipe.
func ScrollFor(recipeID, recipeName, profession string, requiredLevel int) ItemTemplate {
	return ItemTemplate{
		Kind:          recipeID + "-scroll",
		Name:          "Recipe: " + recipeName,
		Description:   "A scroll containing the formula for " + recipeName + ". Use to learn.",
		Icon:          "inv_scroll_03",
		Category:      "recipe",
		MaxStack:      1,
		RecipeID:      recipeID,
		Profession:    profession,
		RequiredLevel: requiredLevel,
	}
}
