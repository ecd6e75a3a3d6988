package recipes

import (
	"sort"

	"github.com/abhisek/craftq/internal/profession"
)

// KnownSet tracks which recipe ids each profession has unlocked. Membership
// is independent of the catalog: a known id need not be registered.
type KnownSet struct {
	known map[profession.ID]map[string]bool
}

// NewKnownSet creates an empty known set.
func NewKnownSet() *KnownSet {
	return &KnownSet{known: make(map[profession.ID]map[string]bool)}
}

// Knows reports whether the profession has unlocked the recipe.
func (k *KnownSet) Knows(p profession.ID, recipeID string) bool {
	return k.known[p][recipeID]
}

// Learn unlocks a recipe. It reports whether the recipe was newly added.
func (k *KnownSet) Learn(p profession.ID, recipeID string) bool {
	set := k.known[p]
	if set == nil {
		set = make(map[string]bool)
		k.known[p] = set
	}
	if set[recipeID] {
		return false
	}
	set[recipeID] = true
	return true
}

// Forget removes a recipe. It reports whether the recipe was known.
func (k *KnownSet) Forget(p profession.ID, recipeID string) bool {
	set := k.known[p]
	if !set[recipeID] {
		return false
	}
	delete(set, recipeID)
	if len(set) == 0 {
		delete(k.known, p)
	}
	return true
}

// IDs returns the known recipe ids for a profession, sorted.
func (k *KnownSet) IDs(p profession.ID) []string {
	ids := make([]string, 0, len(k.known[p]))
	for id := range k.known[p] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SnapshotData exports the known set for persistence.
func (k *KnownSet) SnapshotData() map[string][]string {
	out := make(map[string][]string, len(k.known))
	for p := range k.known {
		out[string(p)] = k.IDs(p)
	}
	return out
}

// LoadKnownSet restores a known set from persisted data.
func LoadKnownSet(data map[string][]string) *KnownSet {
	k := NewKnownSet()
	for p, ids := range data {
		for _, id := range ids {
			k.Learn(profession.ID(p), id)
		}
	}
	return k
}
