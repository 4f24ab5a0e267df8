package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mcp-lazyload/lazyload/internal/cli/errors"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show lazyloadd daemon status",
	Run: func(cmd *cobra.Command, args []string) {
		c := apiClient()
		f := formatter()

		status, err := c.GetStatus()
		if err != nil {
			fmt.Println(f.FormatError(errors.Classify(err)))
			os.Exit(1)
		}

		if jsonOutput {
			data, _ := json.MarshalIndent(status, "", "  ")
			fmt.Println(string(data))
		} else {
			color.Cyan("Lazyload Daemon Status:")
			fmt.Printf("  Running: %v\n", status.Running)
			fmt.Printf("  Version: %s\n", status.Version)
			fmt.Printf("  Uptime:  %s\n", status.Uptime)
			fmt.Printf("  Loaded Tools: %d\n", status.LoadedCount)
			fmt.Printf("  Control API:  :%d\n", status.Ports.Control)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
