// Package session tracks which tools are loaded in the current session and
// for how long the record stays fresh. A State is owned by exactly one
// loader and never shared across sessions.
package session

import (
	"sort"
	"sync"
	"time"
)

// DefaultTTL is the cache duration applied when the registry's rules block
// does not set one.
const DefaultTTL = 30 * time.Minute

// Clock supplies the session's notion of now. It must be monotonically
// non-decreasing; tests inject fakes for determinism.
type Clock func() time.Time

// LoadedTool is a read-only snapshot of one session entry.
type LoadedTool struct {
	Name      string    `json:"name"`
	TokenCost int       `json:"token_cost"`
	LoadedAt  time.Time `json:"loaded_at"`
}

type entry struct {
	loadedAt time.Time
	cost     int
}

// State records loaded tools for one session. Writes are serialized
// internally so concurrent activations of different tools cannot interleave
// entries; entries themselves are write-once, replaced wholesale on reload.
type State struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

// NewState creates an empty session with the given cache duration.
// Non-positive ttl falls back to DefaultTTL.
func NewState(ttl time.Duration) *State {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &State{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// TTL returns the configured cache duration.
func (s *State) TTL() time.Duration {
	return s.ttl
}

// IsLoaded reports whether name has an entry that has not expired as of
// now. It is a pure read: an expired entry is reported as not loaded but
// stays in place until EvictExpired removes it.
func (s *State) IsLoaded(name string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	return ok && !s.expired(e, now)
}

// Record inserts or refreshes the entry for name. Recording an already
// loaded tool replaces the whole entry, so aggregate accounting never
// double-counts it.
func (s *State) Record(name string, cost int, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[name] = entry{loadedAt: now, cost: cost}
}

// EvictExpired removes every entry whose cache window has elapsed as of now
// and returns the evicted names, sorted. No-op when nothing expired.
func (s *State) EvictExpired(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for name, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, name)
			evicted = append(evicted, name)
		}
	}
	sort.Strings(evicted)
	return evicted
}

// TotalTokens sums the cost of every recorded entry, expired or not.
// Callers that want a post-eviction view call EvictExpired first.
func (s *State) TotalTokens() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, e := range s.entries {
		total += e.cost
	}
	return total
}

// Len returns the number of recorded entries.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Loaded returns a snapshot of every entry, oldest first (ties broken by
// name).
func (s *State) Loaded() []LoadedTool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tools := make([]LoadedTool, 0, len(s.entries))
	for name, e := range s.entries {
		tools = append(tools, LoadedTool{Name: name, TokenCost: e.cost, LoadedAt: e.loadedAt})
	}
	sort.Slice(tools, func(i, j int) bool {
		if tools[i].LoadedAt.Equal(tools[j].LoadedAt) {
			return tools[i].Name < tools[j].Name
		}
		return tools[i].LoadedAt.Before(tools[j].LoadedAt)
	})
	return tools
}

// Reset drops every entry, returning the session to its initial state.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

func (s *State) expired(e entry, now time.Time) bool {
	return !now.Before(e.loadedAt.Add(s.ttl))
}
