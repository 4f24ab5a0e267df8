// Package integration mirrors the session's active tool set into host
// client configurations. It is the engine's activation collaborator: a tool
// counts as loaded once every configured client file reflects it.
package integration

import (
	"fmt"
	"sync"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
)

// ActiveTool is the per-tool record written into client configs.
type ActiveTool struct {
	Name      string `json:"name" toml:"name"`
	Kind      string `json:"kind" toml:"kind"`
	TokenCost int    `json:"token_cost" toml:"token_cost"`
}

// ClientSync writes the full active set for one host client.
type ClientSync interface {
	Name() string
	Sync(active []ActiveTool) error
}

// Syncer fans an activation out to every configured client. It implements
// the loader's Activator contract; re-activating the same tool rewrites the
// same record, so the call is idempotent from the engine's point of view.
type Syncer struct {
	mu      sync.Mutex
	clients []ClientSync
	active  []ActiveTool
	index   map[string]int
}

// NewSyncer builds a syncer over the given clients.
func NewSyncer(clients ...ClientSync) *Syncer {
	return &Syncer{
		clients: clients,
		index:   make(map[string]int),
	}
}

// Activate adds the tool to the active set and pushes the set to every
// client. The first client failure is returned; a later successful
// activation re-syncs the full set, so no client is left behind for long.
func (s *Syncer) Activate(tool registry.ToolDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := ActiveTool{
		Name:      tool.Name,
		Kind:      string(tool.Kind),
		TokenCost: tool.TokenCost,
	}
	if i, ok := s.index[tool.Name]; ok {
		s.active[i] = at
	} else {
		s.index[tool.Name] = len(s.active)
		s.active = append(s.active, at)
	}

	snapshot := append([]ActiveTool(nil), s.active...)
	for _, c := range s.clients {
		if err := c.Sync(snapshot); err != nil {
			return fmt.Errorf("sync %s: %w", c.Name(), err)
		}
	}
	return nil
}

// Active returns a copy of the current active set.
func (s *Syncer) Active() []ActiveTool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ActiveTool(nil), s.active...)
}

// ForTargets builds the client list named in settings.
func ForTargets(names []string) ([]ClientSync, error) {
	var clients []ClientSync
	for _, name := range names {
		switch name {
		case "claude":
			clients = append(clients, &ClaudeSync{})
		case "codex":
			clients = append(clients, &CodexSync{})
		default:
			return nil, fmt.Errorf("unknown client target %q", name)
		}
	}
	return clients, nil
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}
