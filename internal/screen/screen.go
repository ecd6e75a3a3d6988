package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/craftq/internal/ui/layout"
)

// Screen is one page of the workshop TUI.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// TickMsg is sent to the active screen on every UI refresh.
type TickMsg time.Time
