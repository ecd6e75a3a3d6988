package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/craftq/internal/crafting"
	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/router"
	"github.com/abhisek/craftq/internal/screen"
	"github.com/abhisek/craftq/internal/screens/journal"
	"github.com/abhisek/craftq/internal/screens/workshop"
	"github.com/abhisek/craftq/internal/store"
	"github.com/abhisek/craftq/internal/ui/layout"
)

// RefreshInterval is how often the active screen re-reads engine state.
const RefreshInterval = 100 * time.Millisecond

// Options wires the TUI to a running engine.
type Options struct {
	Engine    *crafting.Engine
	Recorder  *notify.Recorder
	EventRepo store.EventRepo
}

type tickMsg time.Time

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	eng    *crafting.Engine
	width  int
	height int
}

// newAppModel creates a new AppModel with the workshop as root screen.
func newAppModel(opts Options) AppModel {
	var openJournal func() screen.Screen
	if opts.EventRepo != nil {
		openJournal = func() screen.Screen { return journal.New(opts.EventRepo) }
	}
	return AppModel{
		router: router.New(workshop.New(opts.Engine, opts.Recorder, openJournal)),
		eng:    opts.Engine,
	}
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), tick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		cmd := m.router.Update(screen.TickMsg(msg))
		return m, tea.Batch(cmd, tick())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status summarizes the implemented professions for the header.
func (m AppModel) status() string {
	if m.eng == nil {
		return ""
	}
	var parts []string
	for _, ps := range m.eng.Professions() {
		if !ps.Profession.Implemented {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", ps.Profession.Name, ps.State.Level))
	}
	return strings.Join(parts, " · ")
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
