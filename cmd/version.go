package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/career-compass/internal/careers"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the size of the built-in career dataset",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)

		if builtin, err := careers.Defaults(); err == nil {
			fmt.Printf("built-in dataset: %d careers\n", builtin.Len())
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
