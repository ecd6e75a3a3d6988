package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: forge embers on slate.
var (
	Primary   = lipgloss.Color("#F59E0B") // Amber
	Secondary = lipgloss.Color("#10B981") // Emerald
	Accent    = lipgloss.Color("#A855F7") // Arcane purple
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F1F5F9") // Near white
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Night
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// skillBands colors a profession rank, from untrained grey up to
// legendary orange.
var skillBands = []color.Color{
	lipgloss.Color("#9CA3AF"), // Untrained
	lipgloss.Color("#F8FAFC"), // Novice
	lipgloss.Color("#F8FAFC"), // Apprentice
	lipgloss.Color("#22C55E"), // Journeyman
	lipgloss.Color("#22C55E"), // Adept
	lipgloss.Color("#3B82F6"), // Expert
	lipgloss.Color("#3B82F6"), // Artisan
	lipgloss.Color("#A855F7"), // Master
	lipgloss.Color("#A855F7"), // Grand Master
	lipgloss.Color("#F97316"), // Legendary
}

// SkillColor returns the display color for a skill level.
func SkillColor(level int) color.Color {
	if level < 0 {
		level = 0
	}
	if level >= len(skillBands) {
		level = len(skillBands) - 1
	}
	return skillBands[level]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Unavailable = lipgloss.NewStyle().
			Foreground(TextDim)

	Good = lipgloss.NewStyle().
		Foreground(Success)

	Bad = lipgloss.NewStyle().
		Foreground(Error)
)
