// Package progression tracks profession level and experience.
package progression

import (
	"sort"

	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/store"
)

// State is the level and experience of one profession.
type State struct {
	Level      int
	Experience int
}

// AwardResult describes the outcome of an experience award.
type AwardResult struct {
	Profession profession.ID
	Gained     int
	Before     State
	After      State
	LeveledUp  bool
	Capped     bool // profession was already at the mastery cap
}

// Tracker holds per-profession progression state.
type Tracker struct {
	states map[profession.ID]*State
}

// NewTracker creates a tracker with every profession untrained.
func NewTracker() *Tracker {
	return &Tracker{states: make(map[profession.ID]*State)}
}

func (t *Tracker) state(p profession.ID) *State {
	st, ok := t.states[p]
	if !ok {
		st = &State{Level: profession.UntrainedLevel}
		t.states[p] = st
	}
	return st
}

// Get returns a copy of the profession's state.
func (t *Tracker) Get(p profession.ID) State {
	if st, ok := t.states[p]; ok {
		return *st
	}
	return State{Level: profession.UntrainedLevel}
}

// Level returns the profession's current level.
func (t *Tracker) Level(p profession.ID) int {
	return t.Get(p).Level
}

// Award adds experience to a profession. At the mastery cap the award
// is ignored. A single award advances at most one level even when the
// new total crosses several thresholds.
func (t *Tracker) Award(p profession.ID, xp int) AwardResult {
	st := t.state(p)
	res := AwardResult{Profession: p, Before: *st}

	if st.Level >= profession.MaxLevel {
		res.After = *st
		res.Capped = true
		return res
	}
	if xp < 0 {
		xp = 0
	}

	st.Experience += xp
	res.Gained = xp
	if next, ok := profession.NextThreshold(st.Level); ok && st.Experience >= next {
		st.Level++
		res.LeveledUp = true
	}
	res.After = *st
	return res
}

// SetLevel moves a profession directly to level. Experience is raised
// to the level's threshold if it is below it, and never lowered.
func (t *Tracker) SetLevel(p profession.ID, level int) State {
	st := t.state(p)
	st.Level = profession.ClampLevel(level)
	if floor := profession.LevelInfo(st.Level).ExperienceThreshold; st.Experience < floor {
		st.Experience = floor
	}
	return *st
}

// Progress returns how far the profession is from its current rung to
// the next, as a percentage in [0, 100].
func (t *Tracker) Progress(p profession.ID) float64 {
	st := t.Get(p)
	if st.Level >= profession.MaxLevel {
		return 100
	}
	current := profession.LevelInfo(st.Level).ExperienceThreshold
	next, ok := profession.NextThreshold(st.Level)
	if !ok || next <= current {
		next = current + 100
	}
	pct := float64(st.Experience-current) / float64(next-current) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Professions returns the ids with recorded state, sorted.
func (t *Tracker) Professions() []profession.ID {
	ids := make([]profession.ID, 0, len(t.states))
	for id := range t.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SnapshotData exports the tracker state.
func (t *Tracker) SnapshotData() map[string]*store.ProfessionStateData {
	out := make(map[string]*store.ProfessionStateData, len(t.states))
	for id, st := range t.states {
		out[string(id)] = &store.ProfessionStateData{Level: st.Level, Experience: st.Experience}
	}
	return out
}

// Load restores a tracker from snapshot data. Levels are clamped and
// negative experience is treated as zero.
func Load(data map[string]*store.ProfessionStateData) *Tracker {
	t := NewTracker()
	for id, d := range data {
		if d == nil {
			continue
		}
		st := &State{Level: profession.ClampLevel(d.Level), Experience: d.Experience}
		if st.Experience < 0 {
			st.Experience = 0
		}
		t.states[profession.ID(id)] = st
	}
	return t
}
