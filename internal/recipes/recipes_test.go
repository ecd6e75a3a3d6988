package recipes

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/store"
)

func herbPotion() Recipe {
	return Recipe{
		ID:               "herb-potion",
		Name:             "Herb Potion",
		Profession:       profession.Alchemy,
		Materials:        []Material{{ItemKind: "herb-a", Quantity: 2}},
		OutputItemKind:   "herb-potion",
		OutputQuantity:   1,
		Duration:         2 * time.Second,
		ExperienceReward: 3,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Recipe)
		wantErr bool
	}{
		{"well formed", func(r *Recipe) {}, false},
		{"zero duration allowed", func(r *Recipe) { r.Duration = 0 }, false},
		{"no materials allowed", func(r *Recipe) { r.Materials = nil }, false},
		{"empty id", func(r *Recipe) { r.ID = " " }, true},
		{"no profession", func(r *Recipe) { r.Profession = "" }, true},
		{"level too high", func(r *Recipe) { r.RequiredLevel = 10 }, true},
		{"zero material quantity", func(r *Recipe) { r.Materials[0].Quantity = 0 }, true},
		{"negative duration", func(r *Recipe) { r.Duration = -time.Second }, true},
		{"no output", func(r *Recipe) { r.OutputItemKind = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := herbPotion()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRecipe))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDefaults(t *testing.T) {
	r := herbPotion()
	r.OutputQuantity = 0
	r.ExperienceReward = 0
	assert.Equal(t, 1, r.Output())
	assert.Equal(t, 1, r.Reward())
}

func TestIDFromName(t *testing.T) {
	assert.Equal(t, "elixir-of-the-owl-recipe", IDFromName("  Elixir of  the Owl "))
}

func TestCatalogRegisterAndRecipesFor(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(herbPotion()))
	bandage := herbPotion()
	bandage.ID = "bandage"
	bandage.Profession = profession.FirstAid
	require.NoError(t, c.Register(bandage))

	alch := c.RecipesFor(profession.Alchemy)
	require.Len(t, alch, 1)
	assert.Equal(t, "herb-potion", alch[0].ID)
	assert.Empty(t, c.RecipesFor(profession.Cooking))

	// Re-registering replaces without duplicating.
	updated := herbPotion()
	updated.ExperienceReward = 9
	require.NoError(t, c.Register(updated))
	assert.Equal(t, 2, c.Len())
	got, ok := c.Get("herb-potion")
	require.True(t, ok)
	assert.Equal(t, 9, got.ExperienceReward)

	bad := herbPotion()
	bad.ID = ""
	require.Error(t, c.Register(bad))
	assert.Equal(t, 2, c.Len())
}

func TestKnownSetIdempotent(t *testing.T) {
	k := NewKnownSet()
	assert.True(t, k.Learn(profession.Alchemy, "herb-potion"))
	assert.False(t, k.Learn(profession.Alchemy, "herb-potion"))
	assert.Equal(t, []string{"herb-potion"}, k.IDs(profession.Alchemy))

	assert.False(t, k.Forget(profession.Alchemy, "unknown"))
	assert.False(t, k.Forget(profession.FirstAid, "herb-potion"))
	assert.True(t, k.Knows(profession.Alchemy, "herb-potion"))

	assert.True(t, k.Forget(profession.Alchemy, "herb-potion"))
	assert.False(t, k.Forget(profession.Alchemy, "herb-potion"))
	assert.False(t, k.Knows(profession.Alchemy, "herb-potion"))
}

func TestKnownSetIndependentOfCatalog(t *testing.T) {
	k := NewKnownSet()
	k.Learn(profession.FirstAid, "not-in-any-catalog")
	assert.True(t, k.Knows(profession.FirstAid, "not-in-any-catalog"))
}

func TestKnownSetSnapshotRoundTrip(t *testing.T) {
	k := NewKnownSet()
	k.Learn(profession.Alchemy, "b")
	k.Learn(profession.Alchemy, "a")
	k.Learn(profession.FirstAid, "c")

	restored := LoadKnownSet(k.SnapshotData())
	assert.Equal(t, []string{"a", "b"}, restored.IDs(profession.Alchemy))
	assert.True(t, restored.Knows(profession.FirstAid, "c"))
}

func TestBuiltinPack(t *testing.T) {
	pack := Builtin()
	assert.Equal(t, "v1.2.0", pack.Version)
	require.NotEmpty(t, pack.Recipes)
	for _, r := range pack.Recipes {
		require.NoError(t, r.Validate())
		_, ok := profession.Lookup(r.Profession)
		assert.True(t, ok, "recipe %s has unknown profession %s", r.ID, r.Profession)
	}
}

func TestParsePackRejects(t *testing.T) {
	_, err := ParsePack([]byte("version: one\nrecipes: []\n"))
	require.Error(t, err)

	dup := `version: v1.0.0
recipes:
  - {id: a, name: A, profession: alchemy, output_item_kind: x}
  - {id: a, name: A, profession: alchemy, output_item_kind: x}
`
	_, err = ParsePack([]byte(dup))
	require.ErrorContains(t, err, "duplicate")
}

func TestLoadCatalogFreshUsesPack(t *testing.T) {
	pack := Builtin()
	c, res := LoadCatalog(nil, pack)
	assert.Equal(t, len(pack.Recipes), c.Len())
	assert.Len(t, res.Added, len(pack.Recipes))
	assert.Equal(t, pack.Version, res.PackVersion)
}

func TestLoadCatalogMergeKeepsAuthoredAndAddsNew(t *testing.T) {
	authored := herbPotion()
	authored.Authored = true
	stale := Recipe{
		ID: "shipped-a", Name: "Old A", Profession: profession.Alchemy,
		OutputItemKind: "a", ExperienceReward: 1,
	}
	snap := &store.SnapshotData{
		RecipePackVersion: "v1.0.0",
		Recipes:           []store.RecipeData{authored.ToData(), stale.ToData()},
	}
	fresh := stale
	fresh.Name = "New A"
	newcomer := Recipe{ID: "shipped-b", Name: "B", Profession: profession.FirstAid, OutputItemKind: "b"}
	authoredClash := herbPotion()
	authoredClash.Name = "Shipped clash"

	t.Run("newer pack refreshes shipped recipes", func(t *testing.T) {
		pack := Pack{Version: "v1.1.0", Recipes: []Recipe{fresh, newcomer, authoredClash}}
		c, res := LoadCatalog(snap, pack)
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []string{"shipped-b"}, res.Added)
		assert.Equal(t, []string{"shipped-a"}, res.Refreshed)
		got, _ := c.Get("shipped-a")
		assert.Equal(t, "New A", got.Name)
		kept, _ := c.Get("herb-potion")
		assert.Equal(t, "Herb Potion", kept.Name, "authored recipe must survive")
		assert.Equal(t, "v1.1.0", res.PackVersion)
	})

	t.Run("same pack only adds missing", func(t *testing.T) {
		pack := Pack{Version: "v1.0.0", Recipes: []Recipe{fresh, newcomer}}
		c, res := LoadCatalog(snap, pack)
		assert.Equal(t, []string{"shipped-b"}, res.Added)
		assert.Empty(t, res.Refreshed)
		got, _ := c.Get("shipped-a")
		assert.Equal(t, "Old A", got.Name)
		assert.Equal(t, "v1.0.0", res.PackVersion)
	})
}

func TestLoadCatalogSkipsInvalidSaved(t *testing.T) {
	snap := &store.SnapshotData{Recipes: []store.RecipeData{{ID: "broken"}}}
	_, res := LoadCatalog(snap, Pack{Version: "v1.0.0"})
	assert.Equal(t, []string{"broken"}, res.Skipped)
}

func TestParseAuthored(t *testing.T) {
	raw := []byte(`{
		"name": "Elixir of the Owl",
		"profession": "alchemy",
		"required_level": 2,
		"materials": [{"item_kind": "mageroyal", "quantity": 2}],
		"output_item_kind": "elixir-of-the-owl",
		"duration_ms": 6000,
		"experience_reward": 4
	}`)
	r, err := ParseAuthored(raw)
	require.NoError(t, err)
	assert.Equal(t, "elixir-of-the-owl-recipe", r.ID)
	assert.True(t, r.Authored)
	assert.Equal(t, 6*time.Second, r.Duration)
	assert.Equal(t, 1, r.Output())
}

func TestParseAuthoredRejects(t *testing.T) {
	tests := map[string]string{
		"not json":          `{`,
		"missing materials": `{"name":"x","profession":"alchemy","output_item_kind":"y"}`,
		"zero quantity":     `{"name":"x","profession":"alchemy","output_item_kind":"y","materials":[{"item_kind":"a","quantity":0}]}`,
		"unknown field":     `{"name":"x","profession":"alchemy","output_item_kind":"y","materials":[{"item_kind":"a","quantity":1}],"color":"red"}`,
		"level out of range": `{"name":"x","profession":"alchemy","output_item_kind":"y","required_level":12,"materials":[{"item_kind":"a","quantity":1}]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAuthored([]byte(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRecipe)
		})
	}
}
