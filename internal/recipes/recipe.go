package recipes

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/store"
)

const (
	// DefaultOutputQuantity is used when a recipe leaves output quantity unset.
	DefaultOutputQuantity = 1

	// DefaultExperienceReward is used when a recipe leaves the reward unset.
	DefaultExperienceReward = 1
)

// Material is one input requirement of a recipe.
type Material struct {
	ItemKind string
	Quantity int
}

// Recipe transforms materials into an output item for one profession.
type Recipe struct {
	ID               string
	Name             string
	Description      string
	Profession       profession.ID
	RequiredLevel    int
	Materials        []Material
	OutputItemKind   string
	OutputQuantity   int
	Duration         time.Duration
	ExperienceReward int

	// Authored marks recipes created by the player rather than shipped.
	Authored bool
}

// ErrInvalidRecipe wraps every structural validation failure.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Validate checks structural well-formedness only.
func (r Recipe) Validate() error {
	var problems []string
	if strings.TrimSpace(r.ID) == "" {
		problems = append(problems, "id is empty")
	}
	if r.Profession == "" {
		problems = append(problems, "profession is empty")
	}
	if r.RequiredLevel < profession.UntrainedLevel || r.RequiredLevel > profession.MaxLevel {
		problems = append(problems, fmt.Sprintf("required level %d outside 0..%d", r.RequiredLevel, profession.MaxLevel))
	}
	if strings.TrimSpace(r.OutputItemKind) == "" {
		problems = append(problems, "output item kind is empty")
	}
	if r.OutputQuantity < 0 {
		problems = append(problems, "output quantity is negative")
	}
	if r.Duration < 0 {
		problems = append(problems, "duration is negative")
	}
	if r.ExperienceReward < 0 {
		problems = append(problems, "experience reward is negative")
	}
	for i, m := range r.Materials {
		if strings.TrimSpace(m.ItemKind) == "" {
			problems = append(problems, fmt.Sprintf("material %d has no item kind", i))
		}
		if m.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("material %q quantity must be positive", m.ItemKind))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidRecipe, r.ID, strings.Join(problems, "; "))
	}
	return nil
}

// Output returns the output quantity with the default applied.
func (r Recipe) Output() int {
	if r.OutputQuantity <= 0 {
		return DefaultOutputQuantity
	}
	return r.OutputQuantity
}

// Reward returns the experience reward with the default applied.
func (r Recipe) Reward() int {
	if r.ExperienceReward <= 0 {
		return DefaultExperienceReward
	}
	return r.ExperienceReward
}

var nonSlug = regexp.MustCompile(`\s+`)

// IDFromName derives the recipe id used for player-authored recipes.
func IDFromName(name string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-") + "-recipe"
}

// ToData converts a recipe to its persisted form.
func (r Recipe) ToData() store.RecipeData {
	mats := make([]store.MaterialData, len(r.Materials))
	for i, m := range r.Materials {
		mats[i] = store.MaterialData{ItemKind: m.ItemKind, Quantity: m.Quantity}
	}
	return store.RecipeData{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		Profession:       string(r.Profession),
		RequiredLevel:    r.RequiredLevel,
		Materials:        mats,
		OutputItemKind:   r.OutputItemKind,
		OutputQuantity:   r.OutputQuantity,
		DurationMs:       r.Duration.Milliseconds(),
		ExperienceReward: r.ExperienceReward,
		Authored:         r.Authored,
	}
}

// FromData converts a persisted recipe back into a Recipe.
func FromData(d store.RecipeData) Recipe {
	mats := make([]Material, len(d.Materials))
	for i, m := range d.Materials {
		mats[i] = Material{ItemKind: m.ItemKind, Quantity: m.Quantity}
	}
	return Recipe{
		ID:               d.ID,
		Name:             d.Name,
		Description:      d.Description,
		Profession:       profession.ID(d.Profession),
		RequiredLevel:    d.RequiredLevel,
		Materials:        mats,
		OutputItemKind:   d.OutputItemKind,
		OutputQuantity:   d.OutputQuantity,
		Duration:         time.Duration(d.DurationMs) * time.Millisecond,
		ExperienceReward: d.ExperienceReward,
		Authored:         d.Authored,
	}
}
