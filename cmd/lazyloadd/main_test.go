package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	tmpDir := t.TempDir()

	os.Setenv("LAZYLOAD_CONFIG_DIR", tmpDir)
	defer os.Unsetenv("LAZYLOAD_CONFIG_DIR")

	registry := `{
		"mcp_servers": {
			"context7": {"trigger_keywords": ["import"], "token_cost": 1200},
			"serena": {"trigger_keywords": ["symbol"], "token_cost": 300}
		},
		"agents": {},
		"profiles": {"react": ["context7"]}
	}`
	path := filepath.Join(tmpDir, "tool-registry.json")
	if err := os.WriteFile(path, []byte(registry), 0644); err != nil {
		t.Fatalf("Failed to write registry: %v", err)
	}

	if err := run(false); err != nil {
		t.Fatalf("run(false) failed: %v", err)
	}
}

func TestRun_MissingRegistry(t *testing.T) {
	tmpDir := t.TempDir()

	os.Setenv("LAZYLOAD_CONFIG_DIR", tmpDir)
	defer os.Unsetenv("LAZYLOAD_CONFIG_DIR")

	// No registry file and no bundled appdata copy reachable from the
	// test's working directory.
	if err := run(false); err == nil {
		t.Fatal("expected an error for a missing registry")
	}
}
