package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ClaudeSync maintains the active tool list in Claude's optimization
// directory, where the assistant runtime picks it up on the next turn.
type ClaudeSync struct {
	// Dir overrides the config directory (default ~/.claude). Used in tests.
	Dir string
}

func (c *ClaudeSync) Name() string { return "claude" }

// Sync rewrites the active-tools file with the full set.
func (c *ClaudeSync) Sync(active []ActiveTool) error {
	path, err := c.findConfig()
	if err != nil {
		return err
	}

	doc := struct {
		ActiveTools []ActiveTool `json:"active_tools"`
		UpdatedAt   string       `json:"updated_at"`
	}{
		ActiveTools: active,
		UpdatedAt:   timestamp(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *ClaudeSync) findConfig() (string, error) {
	dir := c.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".claude")
	}

	optDir := filepath.Join(dir, "optimization")
	if err := os.MkdirAll(optDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(optDir, "active-tools.json"), nil
}
