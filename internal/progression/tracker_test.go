package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/store"
)

func TestAwardAccumulates(t *testing.T) {
	tr := NewTracker()

	res := tr.Award(profession.FirstAid, 3)
	assert.Equal(t, 3, res.Gained)
	assert.False(t, res.LeveledUp)
	assert.Equal(t, State{Level: 0, Experience: 3}, tr.Get(profession.FirstAid))

	// Other professions are independent.
	assert.Equal(t, State{}, tr.Get(profession.Alchemy))
}

func TestAwardLevelUpBoundary(t *testing.T) {
	tr := Load(map[string]*store.ProfessionStateData{
		"alchemy": {Level: 1, Experience: 24},
	})

	// One below the level-2 threshold, award lands exactly on it.
	res := tr.Award(profession.Alchemy, 1)
	require.True(t, res.LeveledUp)
	assert.Equal(t, 2, tr.Level(profession.Alchemy))
	assert.Equal(t, 25, tr.Get(profession.Alchemy).Experience)
}

func TestAwardAdvancesOneLevelAtMost(t *testing.T) {
	tr := Load(map[string]*store.ProfessionStateData{
		"alchemy": {Level: 1, Experience: 24},
	})

	// Enough to cross the level 2, 3 and 4 thresholds at once.
	res := tr.Award(profession.Alchemy, 200)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.After.Level)
	assert.Equal(t, 224, res.After.Experience)
}

func TestAwardIgnoredAtCap(t *testing.T) {
	tr := NewTracker()
	tr.SetLevel(profession.FirstAid, profession.MaxLevel)
	before := tr.Get(profession.FirstAid)

	for i := 0; i < 10; i++ {
		res := tr.Award(profession.FirstAid, 50)
		assert.True(t, res.Capped)
		assert.False(t, res.LeveledUp)
		assert.Zero(t, res.Gained)
	}
	assert.Equal(t, before, tr.Get(profession.FirstAid))
}

func TestAwardNegativeIgnored(t *testing.T) {
	tr := NewTracker()
	tr.Award(profession.Alchemy, 5)
	tr.Award(profession.Alchemy, -3)
	assert.Equal(t, 5, tr.Get(profession.Alchemy).Experience)
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name  string
		start State
		level int
		want  State
	}{
		{"raises experience to floor", State{0, 3}, 3, State{3, 50}},
		{"keeps higher experience", State{4, 150}, 2, State{2, 150}},
		{"clamps high", State{}, 42, State{9, 900}},
		{"clamps low", State{2, 30}, -1, State{0, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Load(map[string]*store.ProfessionStateData{
				"cooking": {Level: tt.start.Level, Experience: tt.start.Experience},
			})
			got := tr.SetLevel(profession.Cooking, tt.level)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  float64
	}{
		{"untrained empty", State{0, 0}, 0},
		{"half way to novice", State{0, 5}, 50},
		{"apprentice to journeyman", State{2, 30}, 20},
		{"capped", State{9, 900}, 100},
		{"over threshold clamps", State{1, 99}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Load(map[string]*store.ProfessionStateData{
				"alchemy": {Level: tt.state.Level, Experience: tt.state.Experience},
			})
			assert.InDelta(t, tt.want, tr.Progress(profession.Alchemy), 0.001)
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tr := NewTracker()
	tr.Award(profession.Alchemy, 12)
	tr.Award(profession.FirstAid, 4)

	restored := Load(tr.SnapshotData())
	assert.Equal(t, tr.Get(profession.Alchemy), restored.Get(profession.Alchemy))
	assert.Equal(t, tr.Get(profession.FirstAid), restored.Get(profession.FirstAid))
	assert.Equal(t, []profession.ID{profession.Alchemy, profession.FirstAid}, restored.Professions())
}

func TestLoadSanitizes(t *testing.T) {
	tr := Load(map[string]*store.ProfessionStateData{
		"alchemy":   {Level: 12, Experience: -4},
		"first-aid": nil,
	})
	assert.Equal(t, State{Level: 9, Experience: 0}, tr.Get(profession.Alchemy))
	assert.Equal(t, []profession.ID{profession.Alchemy}, tr.Professions())
}
