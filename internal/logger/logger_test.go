package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core)).With("profession", "alchemy")

	log.Warn("purged corrupt queue entry", "job_id", "1700000000000")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "purged corrupt queue entry", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "alchemy", fields["profession"])
	assert.Equal(t, "1700000000000", fields["job_id"])
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.Sync()
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "craftq.log")
	l, err := New("prod", path)
	require.NoError(t, err)

	l.Info("workshop opened", "jobs", 2)
	l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"workshop opened"`)
	assert.Contains(t, string(raw), `"jobs":2`)
}
