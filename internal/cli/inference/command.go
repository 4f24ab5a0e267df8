package inference

import (
	"strings"
)

var knownCommands = map[string]bool{
	"analyze":    true,
	"activate":   true,
	"preload":    true,
	"stats":      true,
	"status":     true,
	"reset":      true,
	"registry":   true,
	"help":       true,
	"completion": true,
}

// InferCommand lets users pipe request text straight in: a bare multi-word
// argument that is not a known subcommand is treated as text to analyze.
func InferCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}

	first := args[0]

	if strings.HasPrefix(first, "-") || knownCommands[first] {
		return "", args
	}

	if strings.Contains(strings.TrimSpace(first), " ") || len(args) > 1 {
		return "analyze", args
	}

	return "", args
}
