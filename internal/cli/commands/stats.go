package commands

import (
	"fmt"
	"os"

	"github.com/mcp-lazyload/lazyload/internal/cli/errors"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session token savings",
	Run: func(cmd *cobra.Command, args []string) {
		c := apiClient()
		f := formatter()

		stats, err := c.GetStats()
		if err != nil {
			fmt.Println(f.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		fmt.Println(f.FormatStats(stats))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
