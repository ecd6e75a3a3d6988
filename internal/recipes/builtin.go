package recipes

import (
	_ "embed"
	"fmt"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/craftq/internal/store"
)

//go:embed builtin_recipes.yaml
var builtinYAML []byte

// Pack is a versioned set of shipped recipes.
type Pack struct {
	Version string
	Recipes []Recipe
}

type packFile struct {
	Version string       `yaml:"version"`
	Recipes []recipeYAML `yaml:"recipes"`
}

type recipeYAML struct {
	ID               string         `yaml:"id"`
	Name             string         `yaml:"name"`
	Description      string         `yaml:"description"`
	Profession       string         `yaml:"profession"`
	RequiredLevel    int            `yaml:"required_level"`
	Materials        []materialYAML `yaml:"materials"`
	OutputItemKind   string         `yaml:"output_item_kind"`
	OutputQuantity   int            `yaml:"output_quantity"`
	DurationMs       int64          `yaml:"duration_ms"`
	ExperienceReward int            `yaml:"experience_reward"`
}

type materialYAML struct {
	ItemKind string `yaml:"item_kind"`
	Quantity int    `yaml:"quantity"`
}

// ParsePack decodes and validates a YAML recipe pack.
func ParsePack(raw []byte) (Pack, error) {
	var f packFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Pack{}, fmt.Errorf("decode recipe pack: %w", err)
	}
	if !semver.IsValid(f.Version) {
		return Pack{}, fmt.Errorf("recipe pack version %q is not semver", f.Version)
	}

	pack := Pack{Version: f.Version}
	seen := make(map[string]bool, len(f.Recipes))
	for _, ry := range f.Recipes {
		mats := make([]store.MaterialData, len(ry.Materials))
		for i, m := range ry.Materials {
			mats[i] = store.MaterialData{ItemKind: m.ItemKind, Quantity: m.Quantity}
		}
		r := FromData(store.RecipeData{
			ID:               ry.ID,
			Name:             ry.Name,
			Description:      ry.Description,
			Profession:       ry.Profession,
			RequiredLevel:    ry.RequiredLevel,
			Materials:        mats,
			OutputItemKind:   ry.OutputItemKind,
			OutputQuantity:   ry.OutputQuantity,
			DurationMs:       ry.DurationMs,
			ExperienceReward: ry.ExperienceReward,
		})
		if err := r.Validate(); err != nil {
			return Pack{}, err
		}
		if seen[r.ID] {
			return Pack{}, fmt.Errorf("recipe pack: duplicate id %q", r.ID)
		}
		seen[r.ID] = true
		pack.Recipes = append(pack.Recipes, r)
	}
	return pack, nil
}

// Builtin returns the recipe pack shipped with this build.
func Builtin() Pack {
	pack, err := ParsePack(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded recipe pack: %v", err))
	}
	return pack
}
