package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inspect and stock the material inventory",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory stacks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			stacks := s.inv.All()
			if len(stacks) == 0 {
				fmt.Println("The inventory is empty.")
				return nil
			}
			sort.SliceStable(stacks, func(i, j int) bool { return stacks[i].Kind < stacks[j].Kind })

			fmt.Printf("%-8s  %-28s  %-30s  %-10s  %s\n", "Stack", "Kind", "Name", "Category", "Qty")
			fmt.Println(strings.Repeat("─", 90))
			for _, st := range stacks {
				category := ""
				if t, ok := s.items.Resolve(st.Kind); ok {
					category = t.Category
				}
				fmt.Printf("%-8s  %-28s  %-30s  %-10s  %d\n",
					shortID(st.ID), truncate(st.Kind, 28), truncate(itemName(s, st.Kind), 30), category, st.Quantity)
			}
			return nil
		})
	},
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add <item-kind> <quantity>",
	Short: "Add items to the inventory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil || qty < 1 {
			return fmt.Errorf("quantity must be a positive integer, got %q", args[1])
		}
		force, _ := cmd.Flags().GetBool("force")

		return withSession(cmd, func(ctx context.Context, s *session) error {
			tmpl, ok := s.items.Resolve(args[0])
			if !ok {
				if !force {
					return fmt.Errorf("unknown item kind %q (use --force to add it anyway)", args[0])
				}
				s.inv.Add(args[0], qty)
			} else if err := s.inv.AddFromTemplate(tmpl, qty); err != nil {
				return err
			}
			fmt.Printf("Added %dx %s (now %d).\n", qty, itemName(s, args[0]), s.inv.Available(args[0]))
			return nil
		})
	},
}

func init() {
	inventoryAddCmd.Flags().Bool("force", false, "Allow item kinds missing from the item catalog")

	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryAddCmd)
}
