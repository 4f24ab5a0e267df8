package commands

import (
	"os"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/cli/client"
	"github.com/mcp-lazyload/lazyload/internal/cli/inference"
	"github.com/mcp-lazyload/lazyload/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	daemonAddr string
	jsonOutput bool
	timeout    int
)

var rootCmd = &cobra.Command{
	Use:   "lazyload",
	Short: "Lazy tool loader - activate MCP servers and agents only when needed",
	Long: `lazyload keeps heavy MCP servers and agents out of the assistant context
until a request actually needs them. It matches request text against the
trigger keywords in the tool registry, loads only what matched, and tracks
how many tokens the session saved against loading everything up front.`,
}

func Execute() error {
	// Bare request text infers the analyze command.
	if len(os.Args) > 1 {
		inferredCmd, _ := inference.InferCommand(os.Args[1:])
		if inferredCmd != "" {
			newArgs := make([]string, 0, len(os.Args)+1)
			newArgs = append(newArgs, os.Args[0])
			newArgs = append(newArgs, inferredCmd)
			newArgs = append(newArgs, os.Args[1:]...)
			os.Args = newArgs
		}
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&daemonAddr, "addr", "http://localhost:6300", "address of the lazyloadd control API")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 30000, "request timeout in milliseconds")
}

func apiClient() *client.ControlClient {
	return client.NewControlClient(daemonAddr, time.Duration(timeout)*time.Millisecond)
}

func formatter() *output.Formatter {
	var fmtMode output.OutputFormat = output.FormatText
	if jsonOutput {
		fmtMode = output.FormatJSON
	}
	return output.NewFormatter(fmtMode, true)
}
