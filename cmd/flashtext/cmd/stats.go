package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show daemon vocabulary and throughput statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	client, err := requireDaemon()
	if err != nil {
		return err
	}

	result, err := client.Stats()
	if err != nil {
		return err
	}

	fmt.Print(formatStats(result))
	return nil
}
