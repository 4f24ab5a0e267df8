package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and indexes a registry document. The file extension selects
// the decoder: .yaml/.yml are parsed as YAML, everything else as JSON (the
// generator's native format).
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON builds a registry from a JSON document.
func ParseJSON(data []byte) (*Registry, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newError(ErrMalformedEntry, "", "invalid JSON: %v", err)
	}
	return New(&doc)
}

// ParseYAML builds a registry from a YAML document.
func ParseYAML(data []byte) (*Registry, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newError(ErrMalformedEntry, "", "invalid YAML: %v", err)
	}
	return New(&doc)
}
