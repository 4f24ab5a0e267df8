package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mcp-lazyload/lazyload/internal/cli/errors"
	"github.com/spf13/cobra"
)

var analyzeLoad bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>...",
	Short: "Show which tools a request would trigger",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := apiClient()
		f := formatter()

		text := strings.Join(args, " ")
		result, err := c.Analyze(text, analyzeLoad)
		if err != nil {
			fmt.Println(f.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		if jsonOutput {
			data, _ := json.MarshalIndent(result, "", "  ")
			fmt.Println(string(data))
			return
		}

		if len(result.Matches) == 0 {
			fmt.Println("no tools triggered")
			return
		}
		for _, m := range result.Matches {
			fmt.Printf("  %-24s matched %q\n", m.Tool, m.Keyword)
		}
		if len(result.ToLoad) > 0 {
			color.Yellow("to load: %s", strings.Join(result.ToLoad, ", "))
		}
		if len(result.AlreadyLoaded) > 0 {
			fmt.Printf("already loaded: %s\n", strings.Join(result.AlreadyLoaded, ", "))
		}
		if result.Report != nil {
			fmt.Println(f.FormatReport(result.Report))
		}
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeLoad, "load", false, "activate the matched tools immediately")
	rootCmd.AddCommand(analyzeCmd)
}
