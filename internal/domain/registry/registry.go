package registry

import (
	"sort"
	"strings"
)

// Registry is the per-session tool catalog. It is built once with New (or
// Load) and exposes no mutation afterwards, so it can be shared read-only
// across every operation in the session.
type Registry struct {
	tools    map[string]ToolDescriptor
	order    []string
	profiles map[string][]string
	baseline int
	rules    Rules
}

// New indexes and validates a parsed document. Construction is all or
// nothing: a malformed entry or a dangling reference returns a typed
// *Error and no registry.
//
// Iteration order is deterministic regardless of document key order:
// mcp_servers sorted by name, then agents sorted by name.
func New(doc *Document) (*Registry, error) {
	r := &Registry{
		tools:    make(map[string]ToolDescriptor),
		profiles: make(map[string][]string),
		rules:    doc.Rules,
	}

	if err := r.addSection(KindMCPServer, doc.MCPServers); err != nil {
		return nil, err
	}
	if err := r.addSection(KindAgent, doc.Agents); err != nil {
		return nil, err
	}

	// Referential integrity: every preload_with and profile member must
	// name a tool that exists. A broken reference means a corrupted
	// document, not a runtime condition to route around.
	for _, name := range r.order {
		for _, co := range r.tools[name].PreloadWith {
			if _, ok := r.tools[co]; !ok {
				return nil, newError(ErrDanglingReference, name,
					"preload_with references unknown tool %q", co)
			}
		}
	}
	for profile, members := range doc.Profiles {
		for _, member := range members {
			if _, ok := r.tools[member]; !ok {
				return nil, newError(ErrDanglingReference, profile,
					"profile references unknown tool %q", member)
			}
		}
		r.profiles[profile] = append([]string(nil), members...)
	}

	return r, nil
}

func (r *Registry) addSection(kind ToolKind, entries map[string]Entry) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e := entries[name]
		if name == "" {
			return newError(ErrMalformedEntry, "", "%s section contains a tool with an empty name", kind)
		}
		if _, dup := r.tools[name]; dup {
			return newError(ErrMalformedEntry, name, "tool name declared in more than one section")
		}
		if e.TokenCost == nil {
			return newError(ErrMalformedEntry, name, "token_cost is required")
		}
		if *e.TokenCost < 0 {
			return newError(ErrMalformedEntry, name, "token_cost must not be negative (got %d)", *e.TokenCost)
		}

		r.tools[name] = ToolDescriptor{
			Name:            name,
			Kind:            kind,
			Description:     e.Description,
			TriggerKeywords: append([]string(nil), e.TriggerKeywords...),
			TokenCost:       *e.TokenCost,
			AutoLoad:        e.AutoLoad,
			PreloadWith:     append([]string(nil), e.PreloadWith...),
		}
		r.order = append(r.order, name)
		r.baseline += *e.TokenCost
	}
	return nil
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (ToolDescriptor, error) {
	tool, ok := r.tools[name]
	if !ok {
		return ToolDescriptor{}, newError(ErrNotFound, name, "unknown tool")
	}
	return tool, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Profile returns the ordered member list of a named preload profile.
func (r *Registry) Profile(name string) ([]string, error) {
	members, ok := r.profiles[name]
	if !ok {
		return nil, newError(ErrUnknownProfile, name, "unknown profile")
	}
	return append([]string(nil), members...), nil
}

// Profiles returns the sorted profile names.
func (r *Registry) Profiles() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every descriptor in registry iteration order.
func (r *Registry) All() []ToolDescriptor {
	tools := make([]ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Names returns every tool name in registry iteration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}

// BaselineTokens is the cost of eagerly loading the whole catalog: the sum
// of every tool's token cost. It is the fixed reference for savings.
func (r *Registry) BaselineTokens() int {
	return r.baseline
}

// Rules returns the registry-wide policy block.
func (r *Registry) Rules() Rules {
	return r.rules
}

// Find returns descriptors whose name, description or trigger keywords
// contain query, case-insensitively. An empty query returns everything.
func (r *Registry) Find(query string) []ToolDescriptor {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.All()
	}

	var tools []ToolDescriptor
	for _, name := range r.order {
		tool := r.tools[name]
		if strings.Contains(strings.ToLower(tool.Name), query) ||
			strings.Contains(strings.ToLower(tool.Description), query) {
			tools = append(tools, tool)
			continue
		}
		for _, kw := range tool.TriggerKeywords {
			if strings.Contains(strings.ToLower(kw), query) {
				tools = append(tools, tool)
				break
			}
		}
	}
	return tools
}
