package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/recipes"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Browse, learn and author recipes",
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes (optionally filtered by profession)",
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, _ := cmd.Flags().GetString("profession")
		knownOnly, _ := cmd.Flags().GetBool("known")

		return withSession(cmd, func(ctx context.Context, s *session) error {
			var profs []profession.Profession
			if prof != "" {
				p, err := lookupProfession(prof)
				if err != nil {
					return err
				}
				profs = []profession.Profession{p}
			} else {
				profs = profession.Implemented()
			}

			fmt.Printf("%-28s  %-26s  %5s  %-6s  %-34s  %s\n",
				"ID", "Name", "Level", "Known", "Materials", "Output")
			fmt.Println(strings.Repeat("─", 120))

			n := 0
			for _, p := range profs {
				for _, r := range s.eng.AvailableRecipes(p.ID) {
					known := s.eng.Knows(p.ID, r.ID)
					if knownOnly && !known {
						continue
					}
					mark := ""
					if known {
						mark = "✓"
					}
					fmt.Printf("%-28s  %-26s  %5d  %-6s  %-34s  %dx %s\n",
						truncate(r.ID, 28),
						truncate(r.Name, 26),
						r.RequiredLevel,
						mark,
						truncate(formatMaterials(s, r), 34),
						r.Output(),
						itemName(s, r.OutputItemKind),
					)
					n++
				}
			}
			fmt.Printf("\n%d recipes\n", n)
			return nil
		})
	},
}

var recipesLearnCmd = &cobra.Command{
	Use:   "learn <recipe-id>",
	Short: "Learn a recipe from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			changed, err := s.eng.Learn(ctx, args[0], time.Now())
			if err != nil {
				return err
			}
			if !changed {
				fmt.Printf("Already know %s.\n", args[0])
				return nil
			}
			fmt.Printf("Learned %s.\n", args[0])
			return nil
		})
	},
}

var recipesLearnAllCmd = &cobra.Command{
	Use:   "learn-all <profession>",
	Short: "Learn every recipe of a profession",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupProfession(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			n := s.eng.LearnAll(ctx, p.ID, time.Now())
			fmt.Printf("Learned %d new %s recipes.\n", n, p.Name)
			return nil
		})
	},
}

var recipesForgetCmd = &cobra.Command{
	Use:   "forget <profession> <recipe-id>",
	Short: "Forget a learned recipe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupProfession(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if s.eng.Forget(p.ID, args[1]) {
				fmt.Printf("Forgot %s.\n", args[1])
			} else {
				fmt.Printf("%s was not known.\n", args[1])
			}
			return nil
		})
	},
}

var recipesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a player-authored recipe from a JSON file",
	Long: `Add a player-authored recipe from a JSON file. The recipe is registered
in the catalog and one recipe scroll is placed in the inventory; use
"craftq recipes scroll" to learn it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			return fmt.Errorf("--file is required")
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read recipe file: %w", err)
		}
		r, err := recipes.ParseAuthored(raw)
		if err != nil {
			return err
		}

		return withSession(cmd, func(ctx context.Context, s *session) error {
			scrollKind, err := s.eng.RegisterRecipe(r)
			if err != nil {
				return err
			}
			fmt.Printf("Added recipe %s (%s).\n", r.Name, r.ID)
			if tmpl, ok := s.items.Resolve(scrollKind); ok {
				if err := s.inv.AddFromTemplate(tmpl, 1); err != nil {
					return err
				}
				fmt.Printf("A %q was placed in your inventory.\n", tmpl.Name)
			}
			return nil
		})
	},
}

var recipesScrollCmd = &cobra.Command{
	Use:   "scroll <item-kind>",
	Short: "Use a recipe scroll from the inventory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			r, err := s.eng.LearnFromScroll(ctx, args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Learned %s (%s).\n", r.Name, profession.DisplayName(r.Profession))
			return nil
		})
	},
}

func init() {
	recipesListCmd.Flags().String("profession", "", "Filter by profession (e.g. alchemy, first-aid)")
	recipesListCmd.Flags().Bool("known", false, "Only show learned recipes")
	recipesAddCmd.Flags().StringP("file", "f", "", "Path to recipe JSON")

	recipesCmd.AddCommand(recipesListCmd)
	recipesCmd.AddCommand(recipesLearnCmd)
	recipesCmd.AddCommand(recipesLearnAllCmd)
	recipesCmd.AddCommand(recipesForgetCmd)
	recipesCmd.AddCommand(recipesAddCmd)
	recipesCmd.AddCommand(recipesScrollCmd)
}

func lookupProfession(id string) (profession.Profession, error) {
	p, ok := profession.Lookup(profession.ID(id))
	if !ok {
		var ids []string
		for _, p := range profession.All() {
			ids = append(ids, string(p.ID))
		}
		return profession.Profession{}, fmt.Errorf("unknown profession %q (one of: %s)", id, strings.Join(ids, ", "))
	}
	return p, nil
}

func itemName(s *session, kind string) string {
	if t, ok := s.items.Resolve(kind); ok && t.Name != "" {
		return t.Name
	}
	return kind
}

func formatMaterials(s *session, r recipes.Recipe) string {
	parts := make([]string, 0, len(r.Materials))
	for _, m := range r.Materials {
		parts = append(parts, fmt.Sprintf("%dx %s", m.Quantity, itemName(s, m.ItemKind)))
	}
	return strings.Join(parts, ", ")
}

