// Package registry provides the immutable tool catalog the lazy-loading
// engine consults: tool descriptors, trigger keywords, token costs and
// preload profiles.
package registry

// ToolKind distinguishes the two classes of loadable tools.
type ToolKind string

const (
	KindMCPServer ToolKind = "mcp_server"
	KindAgent     ToolKind = "agent"
)

// ToolDescriptor describes one loadable tool. Descriptors are values;
// nothing mutates them after the registry is built.
type ToolDescriptor struct {
	Name            string   `json:"name" yaml:"name"`
	Kind            ToolKind `json:"kind" yaml:"kind"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	TriggerKeywords []string `json:"trigger_keywords" yaml:"trigger_keywords"`
	TokenCost       int      `json:"token_cost" yaml:"token_cost"`
	AutoLoad        bool     `json:"auto_load,omitempty" yaml:"auto_load,omitempty"`
	PreloadWith     []string `json:"preload_with,omitempty" yaml:"preload_with,omitempty"`
}

// Document is the on-disk registry schema: tools grouped by kind, named
// preload profiles, and registry-wide rules. Tool names come from the map
// keys of their section.
type Document struct {
	Version    string              `json:"version,omitempty" yaml:"version,omitempty"`
	MCPServers map[string]Entry    `json:"mcp_servers" yaml:"mcp_servers"`
	Agents     map[string]Entry    `json:"agents" yaml:"agents"`
	Profiles   map[string][]string `json:"profiles,omitempty" yaml:"profiles,omitempty"`
	Rules      Rules               `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Entry is a tool as written in a registry document.
//
// TokenCost is a pointer so a missing field can be told apart from an
// explicit zero; the field is required.
type Entry struct {
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	TriggerKeywords []string `json:"trigger_keywords" yaml:"trigger_keywords"`
	TokenCost       *int     `json:"token_cost" yaml:"token_cost"`
	AutoLoad        bool     `json:"auto_load,omitempty" yaml:"auto_load,omitempty"`
	PreloadWith     []string `json:"preload_with,omitempty" yaml:"preload_with,omitempty"`
}

// Rules carries registry-wide policy knobs emitted by the registry
// generator. CacheDurationMinutes feeds the session cache; the remaining
// fields are informational.
type Rules struct {
	CacheDurationMinutes int `json:"cache_duration_minutes,omitempty" yaml:"cache_duration_minutes,omitempty"`
	MaxInitialTokens     int `json:"max_initial_tokens,omitempty" yaml:"max_initial_tokens,omitempty"`
}
