package commands

import (
	"fmt"
	"os"

	"github.com/mcp-lazyload/lazyload/internal/cli/errors"
	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry [query]",
	Short: "List registry tools, optionally filtered by a search term",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := apiClient()
		f := formatter()

		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		tools, err := c.FindTools(query)
		if err != nil {
			fmt.Println(f.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		f.FormatTools(tools)
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
}
