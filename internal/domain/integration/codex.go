package integration

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// CodexSync maintains the active tool table in Codex's config.toml,
// preserving whatever else lives in the file.
type CodexSync struct {
	// Dir overrides the config directory (default ~/.codex). Used in tests.
	Dir string
}

func (c *CodexSync) Name() string { return "codex" }

// Sync replaces the lazyload table in config.toml with the full set.
func (c *CodexSync) Sync(active []ActiveTool) error {
	path, err := c.findConfig()
	if err != nil {
		return err
	}

	var config map[string]interface{}

	data, err := os.ReadFile(path)
	if err == nil {
		toml.Unmarshal(data, &config)
	}

	if config == nil {
		config = make(map[string]interface{})
	}

	config["lazyload"] = map[string]interface{}{
		"active_tools": active,
		"updated_at":   timestamp(),
	}

	newData, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, newData, 0644)
}

func (c *CodexSync) findConfig() (string, error) {
	dir := c.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".codex")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.toml"), nil
}
