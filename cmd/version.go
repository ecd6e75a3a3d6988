package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/craftq/internal/recipes"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("craftq", version)
		fmt.Println("recipe pack", recipes.Builtin().Version)
	},
}
