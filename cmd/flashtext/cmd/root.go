package cmd

import (
	"fmt"
	"os"

	"github.com/corey/flashtext/internal/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flashtext",
	Short: "flashtext: keyword extraction and replacement",
	Long: "Finds and replaces a large vocabulary of multi-word keywords in text\n" +
		"in time proportional to the text, not the vocabulary.",
}

// projectRoot returns the nearest directory at or above cwd holding a
// .flashtext/ directory, or cwd itself.
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
	return app.FindProjectRoot(dir)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(daemonCmd)
}
