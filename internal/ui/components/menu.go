package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/craftq/internal/ui/theme"
)

// ListItem is one row of a selectable list. Dimmed rows stay
// selectable; they are rendered muted, e.g. recipes lacking materials.
type ListItem struct {
	ID     string
	Label  string
	Detail string
	Dimmed bool
}

// List is a vertical, scrollable selection list.
type List struct {
	Items    []ListItem
	Selected int
	offset   int
}

// NewList creates a list with the first item selected.
func NewList(items []ListItem) List {
	return List{Items: items}
}

// SetItems replaces the rows and keeps the selection by id when possible.
func (l *List) SetItems(items []ListItem) {
	current := l.SelectedID()
	l.Items = items
	l.Selected = 0
	for i, it := range items {
		if it.ID == current {
			l.Selected = i
			break
		}
	}
}

// SelectedID returns the id of the selected row, or "" if empty.
func (l List) SelectedID() string {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return ""
	}
	return l.Items[l.Selected].ID
}

// Update handles keyboard navigation.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Items)-1 {
			l.Selected++
		}
	case "home":
		l.Selected = 0
	case "end":
		l.Selected = max(len(l.Items)-1, 0)
	}
	return l, nil
}

// View renders at most height rows, scrolling to keep the selection
// visible.
func (l *List) View(width, height int) string {
	if len(l.Items) == 0 || height <= 0 {
		return ""
	}
	if l.Selected < l.offset {
		l.offset = l.Selected
	}
	if l.Selected >= l.offset+height {
		l.offset = l.Selected - height + 1
	}

	end := min(l.offset+height, len(l.Items))
	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		it := l.Items[i]
		style := theme.Unselected
		prefix := "   "
		switch {
		case i == l.Selected:
			style = theme.Selected
			prefix = " ▸ "
		case it.Dimmed:
			style = theme.Unavailable
		}
		line := prefix + it.Label
		if it.Detail != "" {
			gap := max(width-lipgloss.Width(line)-lipgloss.Width(it.Detail)-1, 1)
			line += strings.Repeat(" ", gap) + it.Detail
		}
		rows = append(rows, style.Render(line))
	}
	return strings.Join(rows, "\n")
}
