package recipes

import (
	"golang.org/x/mod/semver"

	"github.com/abhisek/craftq/internal/store"
)

// MergeResult reports what a catalog load changed.
type MergeResult struct {
	// Added lists shipped recipe ids that were missing from the saved catalog.
	Added []string
	// Refreshed lists shipped recipe ids whose saved definitions were
	// replaced because the shipped pack is newer.
	Refreshed []string
	// Skipped lists saved recipes that failed validation and were dropped.
	Skipped []string
	// PackVersion is the pack version the catalog now reflects.
	PackVersion string
}

// LoadCatalog rebuilds the catalog from a snapshot and merges in the
// shipped pack. Saved recipes are never discarded; shipped recipes missing
// by id are added. When the pack is newer than the one the snapshot was
// written with, saved copies of shipped (non-authored) recipes are replaced
// by the shipped definitions.
func LoadCatalog(snap *store.SnapshotData, pack Pack) (*Catalog, MergeResult) {
	c := NewCatalog()
	res := MergeResult{PackVersion: pack.Version}

	if snap == nil || len(snap.Recipes) == 0 {
		for _, r := range pack.Recipes {
			if err := c.Register(r); err == nil {
				res.Added = append(res.Added, r.ID)
			}
		}
		return c, res
	}

	for _, d := range snap.Recipes {
		if err := c.Register(FromData(d)); err != nil {
			res.Skipped = append(res.Skipped, d.ID)
		}
	}

	savedVersion := snap.RecipePackVersion
	if !semver.IsValid(savedVersion) {
		savedVersion = "v0.0.0"
	}
	newer := semver.Compare(pack.Version, savedVersion) > 0
	if !newer {
		res.PackVersion = snap.RecipePackVersion
	}

	for _, r := range pack.Recipes {
		existing, ok := c.Get(r.ID)
		switch {
		case !ok:
			if err := c.Register(r); err == nil {
				res.Added = append(res.Added, r.ID)
			}
		case newer && !existing.Authored:
			if err := c.Register(r); err == nil {
				res.Refreshed = append(res.Refreshed, r.ID)
			}
		}
	}
	return c, res
}

// SnapshotData exports the full catalog for persistence.
func (c *Catalog) SnapshotData() []store.RecipeData {
	out := make([]store.RecipeData, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.recipes[id].ToData())
	}
	return out
}
