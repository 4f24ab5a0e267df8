package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mcp-lazyload/lazyload/internal/cli/errors"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the session cache and savings counters",
	Run: func(cmd *cobra.Command, args []string) {
		c := apiClient()
		f := formatter()

		if err := c.Reset(); err != nil {
			fmt.Println(f.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		if jsonOutput {
			fmt.Println(`{"status": "reset_successful"}`)
		} else {
			color.Green("Session reset")
		}
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
