package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/abhisek/craftq/internal/crafting"
	"github.com/abhisek/craftq/internal/profession"
)

var craftCmd = &cobra.Command{
	Use:   "craft <recipe-id>",
	Short: "Queue a recipe for crafting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		wait, _ := cmd.Flags().GetBool("wait")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}

		return withSession(cmd, func(ctx context.Context, s *session) error {
			queued := 0
			for i := 0; i < count; i++ {
				job, err := s.eng.Craft(ctx, args[0], time.Now())
				if err != nil {
					if queued == 0 {
						return err
					}
					fmt.Printf("Stopped after %d: %v\n", queued, err)
					break
				}
				queued++
				fmt.Printf("Queued %s (%s, %s)\n", job.Recipe.Name, shortID(job.ID), job.TotalTime)
			}
			if !wait {
				return nil
			}
			return waitForQueue(ctx, s)
		})
	},
}

// waitForQueue drives the engine in the foreground until every job has
// finished or ctx is cancelled.
func waitForQueue(ctx context.Context, s *session) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- s.eng.Run(runCtx) }()

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	for !s.eng.Idle() {
		select {
		case <-ctx.Done():
			cancel()
			<-errc
			fmt.Println("Interrupted; remaining jobs stay queued.")
			return nil
		case <-ticker.C:
		}
	}
	cancel()
	return <-errc
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show queued and running craft jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			jobs := s.eng.Jobs()
			if len(jobs) == 0 {
				fmt.Println("The craft queue is empty.")
				return nil
			}

			now := time.Now()
			fmt.Printf("%-8s  %-14s  %-28s  %-11s  %8s  %s\n",
				"Job", "Profession", "Recipe", "Status", "Progress", "Remaining")
			fmt.Println(strings.Repeat("─", 90))
			for _, j := range jobs {
				fmt.Printf("%-8s  %-14s  %-28s  %-11s  %7.0f%%  %s\n",
					shortID(j.ID),
					profession.DisplayName(j.Profession()),
					truncate(j.Recipe.Name, 28),
					j.Status,
					j.Progress,
					j.Remaining(now).Round(100*time.Millisecond),
				)
			}
			return nil
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Remove a queued craft job (materials are not refunded)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			id, err := resolveJobID(s, args[0])
			if err != nil {
				return err
			}
			if err := s.eng.Remove(id); err != nil {
				if errors.Is(err, crafting.ErrJobActive) {
					return fmt.Errorf("job %s is already in progress and cannot be cancelled", shortID(id))
				}
				return err
			}
			fmt.Printf("Removed job %s.\n", shortID(id))
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show profession levels and scheduler state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			fmt.Printf("%-16s  %-13s  %5s  %6s  %8s  %-6s  %s\n",
				"Profession", "Rank", "Level", "XP", "Progress", "Bonus", "Queue")
			fmt.Println(strings.Repeat("─", 80))
			for _, ps := range s.eng.Professions() {
				queue := "-"
				if ps.Profession.Implemented {
					lane := s.eng.Status(ps.Profession.ID)
					switch {
					case lane.Active != nil:
						queue = fmt.Sprintf("crafting %s (%.0f%%), %d waiting", lane.Active.Recipe.Name, lane.Active.Progress, len(lane.Queued))
					case len(lane.Queued) > 0:
						queue = fmt.Sprintf("%d waiting", len(lane.Queued))
					default:
						queue = "idle"
					}
				}
				fmt.Printf("%-16s  %-13s  %5d  %6d  %7.0f%%  %-6s  %s\n",
					ps.Profession.Name,
					ps.Rung.Name,
					ps.State.Level,
					ps.State.Experience,
					ps.Progress,
					fmt.Sprintf("+%d", ps.Rung.DisplayBonus),
					queue,
				)
			}
			return nil
		})
	},
}

func init() {
	craftCmd.Flags().IntP("count", "n", 1, "Number of times to queue the recipe")
	craftCmd.Flags().Bool("wait", false, "Stay in the foreground until the queue is empty")
}

// resolveJobID accepts a full job id or a unique prefix of one.
func resolveJobID(s *session, prefix string) (string, error) {
	var matches []string
	for _, j := range s.eng.Jobs() {
		if j.ID == prefix {
			return j.ID, nil
		}
		if strings.HasPrefix(j.ID, prefix) {
			matches = append(matches, j.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", crafting.ErrJobNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("job prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to at most n terminal cells without splitting a
// character.
func truncate(s string, n int) string {
	if ansi.StringWidth(s) <= n {
		return s
	}
	return ansi.Truncate(s, n, "...")
}
