package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"fits", "Linen Bandage", 28, "Linen Bandage"},
		{"ascii", "Elixir of Lion's Strength", 10, "Elixir ..."},
		{"multibyte", "Élixir de Força Suprême", 10, "Élixir ..."},
		{"wide runes", "獅子の力のエリクサー", 9, "獅子の..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got), "invalid UTF-8: %q", got)
			assert.LessOrEqual(t, ansi.StringWidth(got), tt.n)
		})
	}
}
