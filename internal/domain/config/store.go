package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Store handles persistence of settings to a YAML file.
type Store struct {
	path string
}

// NewStore creates a new settings store.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads settings from the file. A missing file yields defaults.
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}

	// Ensure defaults if not set
	if settings.ControlPort == 0 {
		settings.ControlPort = DefaultSettings().ControlPort
	}
	if settings.RegistryPath == "" {
		settings.RegistryPath = DefaultSettings().RegistryPath
	}

	return settings, nil
}

// Save writes settings to the file.
func (s *Store) Save(settings Settings) error {
	bytes, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, bytes, 0644)
}
