package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mcp-lazyload/lazyload/internal/api"
	"github.com/mcp-lazyload/lazyload/internal/domain/config"
	"github.com/mcp-lazyload/lazyload/internal/domain/integration"
	"github.com/mcp-lazyload/lazyload/internal/domain/loader"
	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
	"github.com/mcp-lazyload/lazyload/internal/domain/session"
	"github.com/mcp-lazyload/lazyload/internal/logger"
)

func main() {
	if err := run(true); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(serve bool) error {
	fmt.Println("lazyloadd - Initializing...")

	appDir := os.Getenv("LAZYLOAD_CONFIG_DIR")
	if appDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = "."
		}
		appDir = filepath.Join(configDir, "lazyload")
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create app dir: %w", err)
	}

	if err := logger.Init(appDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	store := config.NewStore(filepath.Join(appDir, "settings.yaml"))
	settings, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	registryPath := settings.RegistryPath
	if !filepath.IsAbs(registryPath) {
		registryPath = filepath.Join(appDir, registryPath)
	}

	// Seed the user's registry from the bundled one on first run.
	if _, err := os.Stat(registryPath); os.IsNotExist(err) {
		if input, err := os.ReadFile(filepath.Join("appdata", "tool-registry.json")); err == nil {
			os.WriteFile(registryPath, input, 0644)
		}
	}

	reg, err := registry.Load(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry %s: %w", registryPath, err)
	}

	clients, err := integration.ForTargets(settings.Clients)
	if err != nil {
		return fmt.Errorf("failed to configure clients: %w", err)
	}
	syncer := integration.NewSyncer(clients...)

	state := session.NewState(settings.CacheDuration(reg.Rules().CacheDurationMinutes))
	l := loader.New(reg, state, syncer, nil)

	// Tools marked auto_load are part of every session.
	auto := l.ActivateAutoLoad()
	if !auto.Ok() {
		for name, err := range auto.Failed {
			logger.AddLog("ERROR", fmt.Sprintf("auto-load %s: %v", name, err))
		}
	}

	controlServer := api.NewControlServer(l, store, settings)

	if !serve {
		return nil
	}

	fmt.Printf("Starting control server on :%d...\n", settings.ControlPort)
	logger.AddLog("INFO", fmt.Sprintf("control server listening on :%d", settings.ControlPort))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", settings.ControlPort), controlServer); err != nil {
		return fmt.Errorf("control server failed: %w", err)
	}

	return nil
}
