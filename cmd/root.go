package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/craftq/internal/config"
	"github.com/abhisek/craftq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "craftq",
	Short: "Profession crafting queue",
	Long:  "craftq turns inventory materials into items through timed recipes while professions level up.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkshop(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CRAFTQ_DB env var)")

	rootCmd.AddCommand(craftCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(professionCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(workshopCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CRAFTQ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
