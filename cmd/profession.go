package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/craftq/internal/profession"
)

var professionCmd = &cobra.Command{
	Use:   "profession",
	Short: "Manage profession levels",
}

var professionSetLevelCmd = &cobra.Command{
	Use:   "set-level <profession> <level>",
	Short: "Set a profession's level (experience is raised to the level's threshold)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupProfession(args[0])
		if err != nil {
			return err
		}
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("level must be an integer, got %q", args[1])
		}
		if level != profession.ClampLevel(level) {
			return fmt.Errorf("level must be between %d and %d", profession.UntrainedLevel, profession.MaxLevel)
		}

		return withSession(cmd, func(ctx context.Context, s *session) error {
			st, err := s.eng.SetLevel(p.ID, level)
			if err != nil {
				return err
			}
			rung := profession.LevelInfo(st.Level)
			fmt.Printf("%s is now %s (level %d, %d XP, +%d crafting bonus).\n",
				p.Name, rung.Name, st.Level, st.Experience, rung.DisplayBonus)
			return nil
		})
	},
}

var professionLadderCmd = &cobra.Command{
	Use:   "ladder",
	Short: "Show the skill ladder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%5s  %-13s  %6s  %s\n", "Level", "Rank", "XP", "Bonus")
		for _, l := range profession.Ladder() {
			fmt.Printf("%5d  %-13s  %6d  +%d\n", l.Level, l.Name, l.ExperienceThreshold, l.DisplayBonus)
		}
	},
}

func init() {
	professionCmd.AddCommand(professionSetLevelCmd)
	professionCmd.AddCommand(professionLadderCmd)
}
