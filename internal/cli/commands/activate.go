package commands

import (
	"fmt"
	"os"

	"github.com/mcp-lazyload/lazyload/internal/cli/errors"
	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:   "activate <tool>...",
	Short: "Activate tools by name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := apiClient()
		f := formatter()

		report, err := c.Activate(args)
		if err != nil {
			fmt.Println(f.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		fmt.Println(f.FormatReport(report))
		if len(report.Failed) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(activateCmd)
}
