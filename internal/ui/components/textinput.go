package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput wraps bubbles/textinput as a case-insensitive list filter.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates an unfocused filter input.
func NewFilterInput(placeholder string, limit int) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if limit > 0 {
		ti.CharLimit = limit
	}
	return FilterInput{Model: ti}
}

// Focus starts capturing keys.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops capturing keys.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Focused reports whether the input captures keys.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Clear empties the filter.
func (f *FilterInput) Clear() {
	f.Model.SetValue("")
}

// Update handles messages.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	return f.Model.View()
}

// Matches reports whether s contains the filter text.
func (f FilterInput) Matches(s string) bool {
	q := strings.TrimSpace(strings.ToLower(f.Model.Value()))
	return q == "" || strings.Contains(strings.ToLower(s), q)
}
