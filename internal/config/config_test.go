package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, def.TickInterval, cfg.TickInterval)
	assert.Equal(t, def.PromotionDebounce, cfg.PromotionDebounce)
	assert.Equal(t, def.DefaultCraftTime, cfg.DefaultCraftTime)
	assert.Equal(t, def.SnapshotKeep, cfg.SnapshotKeep)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CRAFTQ_DB", "/tmp/craftq-test.db")
	t.Setenv("CRAFTQ_TICK_INTERVAL", "250ms")
	t.Setenv("CRAFTQ_PROMOTION_DEBOUNCE", "0s")
	t.Setenv("CRAFTQ_SNAPSHOT_KEEP", "9")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/craftq-test.db", cfg.DBPath)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, time.Duration(0), cfg.PromotionDebounce)
	assert.Equal(t, 9, cfg.SnapshotKeep)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero tick", "CRAFTQ_TICK_INTERVAL", "0s"},
		{"negative debounce", "CRAFTQ_PROMOTION_DEBOUNCE", "-5ms"},
		{"zero keep", "CRAFTQ_SNAPSHOT_KEEP", "0"},
		{"garbage duration", "CRAFTQ_DEFAULT_CRAFT_TIME", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
