// Package config holds daemon settings and their YAML persistence.
package config

import (
	"errors"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/domain/session"
)

// Settings represents global daemon configuration.
type Settings struct {
	// ControlPort is where the control API listens.
	ControlPort int `yaml:"control_port" json:"control_port"`

	// RegistryPath points at the tool registry document. Relative paths
	// resolve against the config directory.
	RegistryPath string `yaml:"registry_path" json:"registry_path"`

	// CacheDurationMinutes overrides the registry's rules block when set.
	CacheDurationMinutes int `yaml:"cache_duration_minutes" json:"cache_duration_minutes"`

	// Clients lists the host clients to sync activations into
	// ("claude", "codex").
	Clients []string `yaml:"clients" json:"clients"`
}

// DefaultSettings returns the standard configuration.
func DefaultSettings() Settings {
	return Settings{
		ControlPort:          6300,
		RegistryPath:         "tool-registry.json",
		CacheDurationMinutes: 0,
		Clients:              []string{"claude"},
	}
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	if s.ControlPort <= 0 || s.ControlPort > 65535 {
		return errors.New("control_port must be a valid TCP port")
	}
	if s.RegistryPath == "" {
		return errors.New("registry_path is required")
	}
	if s.CacheDurationMinutes < 0 {
		return errors.New("cache_duration_minutes must not be negative")
	}
	return nil
}

// CacheDuration resolves the session cache duration: explicit settings win,
// then the registry's rules value, then the session default.
func (s Settings) CacheDuration(registryMinutes int) time.Duration {
	switch {
	case s.CacheDurationMinutes > 0:
		return time.Duration(s.CacheDurationMinutes) * time.Minute
	case registryMinutes > 0:
		return time.Duration(registryMinutes) * time.Minute
	default:
		return session.DefaultTTL
	}
}
