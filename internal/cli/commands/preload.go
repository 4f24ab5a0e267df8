package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mcp-lazyload/lazyload/internal/cli/errors"
	"github.com/spf13/cobra"
)

var preloadCmd = &cobra.Command{
	Use:   "preload [profile]",
	Short: "Preload a profile's tools, or list profiles when none is given",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := apiClient()
		f := formatter()

		if len(args) == 0 {
			profiles, err := c.ListProfiles()
			if err != nil {
				fmt.Println(f.FormatError(errors.Classify(err)))
				os.Exit(1)
			}
			if jsonOutput {
				data, _ := json.MarshalIndent(profiles, "", "  ")
				fmt.Println(string(data))
				return
			}
			names := make([]string, 0, len(profiles))
			for name := range profiles {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-12s %s\n", name, strings.Join(profiles[name], ", "))
			}
			return
		}

		report, err := c.Preload(args[0])
		if err != nil {
			fmt.Println(f.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		if jsonOutput {
			fmt.Println(f.FormatReport(report))
			return
		}
		color.Green("Preloaded profile %q", args[0])
		fmt.Println(f.FormatReport(report))
	},
}

func init() {
	rootCmd.AddCommand(preloadCmd)
}
