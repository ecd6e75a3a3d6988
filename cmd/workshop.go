package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/craftq/internal/app"
	"github.com/abhisek/craftq/internal/notify"
)

// recentEvents is how many notifications the workshop log keeps.
const recentEvents = 50

var workshopCmd = &cobra.Command{
	Use:   "workshop",
	Short: "Open the interactive crafting workshop",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkshop(cmd)
	},
}

// runWorkshop drives the engine in the background while the TUI runs,
// then saves a snapshot on exit.
func runWorkshop(cmd *cobra.Command) error {
	rec := notify.NewRecorder(recentEvents)
	s, err := openSession(cmd, sessionOptions{Sinks: []notify.Sink{rec}, LogToFile: true})
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	errc := make(chan error, 1)
	go func() { errc <- s.eng.Run(ctx) }()

	s.log.Info("workshop opened", "jobs", len(s.eng.Jobs()))
	uiErr := app.Run(app.Options{
		Engine:    s.eng,
		Recorder:  rec,
		EventRepo: s.store.EventRepo(),
	})

	cancel()
	if err := <-errc; err != nil {
		s.log.Error("scheduler stopped", "error", err)
	}

	if err := s.save(context.WithoutCancel(cmd.Context())); err != nil {
		return err
	}
	return uiErr
}
