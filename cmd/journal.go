package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/craftq/internal/config"
	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent crafting notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		summary, _ := cmd.Flags().GetBool("summary")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		if summary {
			counts, total, err := s.EventRepo().CraftEventCounts(ctx)
			if err != nil {
				return fmt.Errorf("count events: %w", err)
			}
			kinds := make([]string, 0, len(counts))
			for k := range counts {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				fmt.Printf("%s %-20s %6d\n", notify.Kind(k).Icon(), k, counts[k])
			}
			fmt.Printf("  %-20s %6d\n", "total", total)
			return nil
		}

		events, err := s.EventRepo().QueryCraftEvents(ctx, store.QueryOpts{Limit: limit, Kind: kind})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No journal entries found.")
			return nil
		}

		fmt.Printf("%-6s  %-19s  %-18s  %s\n", "Seq", "Timestamp", "Kind", "Message")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range events {
			fmt.Printf("%-6d  %-19s  %s %-16s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				notify.Kind(e.Kind).Icon(),
				e.Kind,
				e.Message,
			)
		}
		return nil
	},
}

func init() {
	journalCmd.Flags().Int("limit", 20, "Maximum number of entries")
	journalCmd.Flags().String("kind", "", "Only show one kind (e.g. item_crafted, crafting_failed)")
	journalCmd.Flags().Bool("summary", false, "Show counts per kind instead of entries")
}
