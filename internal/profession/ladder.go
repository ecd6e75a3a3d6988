package profession

const (
	// UntrainedLevel is the level every profession starts at.
	UntrainedLevel = 0

	// MaxLevel is the terminal rung. Experience stops accruing here.
	MaxLevel = 9
)

// SkillLevel is one rung of the profession ladder.
type SkillLevel struct {
	Name                string
	Level               int
	ExperienceThreshold int
	DisplayBonus        int
}

// ladder thresholds must be strictly increasing with level.
var ladder = [MaxLevel + 1]SkillLevel{
	{Name: "Untrained", Level: 0, ExperienceThreshold: 0, DisplayBonus: 0},
	{Name: "Novice", Level: 1, ExperienceThreshold: 10, DisplayBonus: 1},
	{Name: "Apprentice", Level: 2, ExperienceThreshold: 25, DisplayBonus: 2},
	{Name: "Journeyman", Level: 3, ExperienceThreshold: 50, DisplayBonus: 3},
	{Name: "Adept", Level: 4, ExperienceThreshold: 100, DisplayBonus: 4},
	{Name: "Expert", Level: 5, ExperienceThreshold: 175, DisplayBonus: 5},
	{Name: "Artisan", Level: 6, ExperienceThreshold: 275, DisplayBonus: 6},
	{Name: "Master", Level: 7, ExperienceThreshold: 400, DisplayBonus: 7},
	{Name: "Grand Master", Level: 8, ExperienceThreshold: 600, DisplayBonus: 8},
	{Name: "Legendary", Level: 9, ExperienceThreshold: 900, DisplayBonus: 9},
}

// Ladder returns all skill levels ordered from untrained to mastery cap.
func Ladder() []SkillLevel {
	out := make([]SkillLevel, len(ladder))
	copy(out, ladder[:])
	return out
}

// LevelInfo returns the rung for a level. Out-of-range levels are clamped.
func LevelInfo(level int) SkillLevel {
	return ladder[ClampLevel(level)]
}

// NextThreshold returns the experience required to reach level+1.
// The second return value is false at the mastery cap.
func NextThreshold(level int) (int, bool) {
	level = ClampLevel(level)
	if level >= MaxLevel {
		return 0, false
	}
	return ladder[level+1].ExperienceThreshold, true
}

// ClampLevel bounds a level to the ladder.
func ClampLevel(level int) int {
	if level < UntrainedLevel {
		return UntrainedLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
