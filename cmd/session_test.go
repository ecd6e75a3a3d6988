package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand(ctx context.Context) *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.SetContext(ctx)
	return c
}

func useTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("CRAFTQ_DB", filepath.Join(t.TempDir(), "craftq.db"))
	t.Setenv("CRAFTQ_TICK_INTERVAL", "10ms")
	t.Setenv("CRAFTQ_LOG_MODE", "prod")
}

func TestWaitInterruptedKeepsQueue(t *testing.T) {
	useTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := withSession(testCommand(ctx), func(ctx context.Context, s *session) error {
		s.inv.Add("linen-cloth", 5)
		if _, err := s.eng.Craft(ctx, "linen-bandage", time.Now()); err != nil {
			return err
		}
		time.AfterFunc(200*time.Millisecond, cancel)
		return waitForQueue(ctx, s)
	})
	require.NoError(t, err)

	s, err := openSession(testCommand(context.Background()), sessionOptions{})
	require.NoError(t, err)
	defer s.close()

	jobs := s.eng.Jobs()
	require.Len(t, jobs, 1, "interrupted job must survive the restart")
	assert.Equal(t, "linen-bandage", jobs[0].Recipe.ID)
	assert.Equal(t, 4, s.inv.Available("linen-cloth"), "spent materials stay spent")
}

func TestSaveIgnoresCancelledContext(t *testing.T) {
	useTestDB(t)

	s, err := openSession(testCommand(context.Background()), sessionOptions{})
	require.NoError(t, err)
	s.inv.Add("peacebloom", 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.save(ctx))
	s.close()

	reopened, err := openSession(testCommand(context.Background()), sessionOptions{})
	require.NoError(t, err)
	defer reopened.close()
	assert.Equal(t, 3, reopened.inv.Available("peacebloom"))
}
