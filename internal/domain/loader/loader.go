// Package loader orchestrates keyword matching, session state and tool
// activation for one assistant session.
package loader

import (
	"fmt"
	"math"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/domain/match"
	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
	"github.com/mcp-lazyload/lazyload/internal/domain/session"
)

// Activator makes a tool usable in the host runtime. The loader treats the
// call as opaque and synchronous, and never issues it for a tool that is
// already loaded and unexpired.
type Activator interface {
	Activate(tool registry.ToolDescriptor) error
}

// ActivatorFunc adapts a plain function to the Activator interface.
type ActivatorFunc func(registry.ToolDescriptor) error

func (f ActivatorFunc) Activate(tool registry.ToolDescriptor) error {
	return f(tool)
}

// ActivationError reports one tool whose activation call failed.
type ActivationError struct {
	Tool string
	Err  error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("activate %s: %v", e.Tool, e.Err)
}

func (e *ActivationError) Unwrap() error {
	return e.Err
}

// Analysis partitions a match result against the current session. It is
// produced without loading anything, so callers can use it as a dry-run
// explain mode.
type Analysis struct {
	Matches       []match.Hit `json:"matches"`
	ToLoad        []string    `json:"to_load"`
	AlreadyLoaded []string    `json:"already_loaded"`
	Evicted       []string    `json:"evicted,omitempty"`
}

// Report holds the per-identifier outcome of one activation batch.
type Report struct {
	Loaded        []string
	AlreadyLoaded []string
	Failed        map[string]error
}

// Ok reports whether every tool in the batch succeeded or was already
// loaded.
func (r *Report) Ok() bool {
	return len(r.Failed) == 0
}

// Stats summarizes token accounting for the session. SavedTokens is the
// fixed eager-load baseline minus the currently recorded cost.
type Stats struct {
	LoadedCount     int                  `json:"loaded_count"`
	LoadedTokens    int                  `json:"loaded_tokens"`
	AvailableCount  int                  `json:"available_count"`
	AvailableTokens int                  `json:"available_tokens"`
	SavedTokens     int                  `json:"saved_tokens"`
	SavedPercent    float64              `json:"saved_percent"`
	Loaded          []session.LoadedTool `json:"loaded"`
}

// Loader drives one session: it owns the session state, shares the
// read-only registry, and delegates the actual activation side effect.
type Loader struct {
	reg       *registry.Registry
	state     *session.State
	activator Activator
	clock     session.Clock
}

// New builds a loader. A nil clock defaults to time.Now.
func New(reg *registry.Registry, state *session.State, activator Activator, clock session.Clock) *Loader {
	if clock == nil {
		clock = time.Now
	}
	return &Loader{
		reg:       reg,
		state:     state,
		activator: activator,
		clock:     clock,
	}
}

// Registry exposes the catalog this loader serves.
func (l *Loader) Registry() *registry.Registry {
	return l.reg
}

// Analyze matches text against the registry, evicts expired session
// entries, and partitions the matches into tools that would be loaded and
// tools already covered. It never activates anything.
func (l *Loader) Analyze(text string) Analysis {
	now := l.clock()
	res := match.Match(text, l.reg)
	evicted := l.state.EvictExpired(now)

	a := Analysis{
		Matches:       res.Hits,
		ToLoad:        []string{},
		AlreadyLoaded: []string{},
		Evicted:       evicted,
	}
	for _, hit := range res.Hits {
		if l.state.IsLoaded(hit.Tool, now) {
			a.AlreadyLoaded = append(a.AlreadyLoaded, hit.Tool)
		} else {
			a.ToLoad = append(a.ToLoad, hit.Tool)
		}
	}
	return a
}

// Activate loads every named tool that is not already loaded and
// unexpired, plus one level of preload_with companions. The batch is
// de-duplicated, each tool is activated at most once, and a failure on one
// tool never aborts the rest; failures land in the report keyed by tool.
// The loader performs no retries of its own.
func (l *Loader) Activate(names []string) *Report {
	rep := &Report{
		Loaded:        []string{},
		AlreadyLoaded: []string{},
		Failed:        make(map[string]error),
	}

	// Expand the batch first: seeds in caller order, each seed's co-load
	// list right after it. Co-load lists are not chased transitively.
	seen := make(map[string]bool)
	var batch []registry.ToolDescriptor
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		tool, err := l.reg.Lookup(name)
		if err != nil {
			rep.Failed[name] = err
			continue
		}
		batch = append(batch, tool)

		for _, co := range tool.PreloadWith {
			if seen[co] {
				continue
			}
			seen[co] = true
			cotool, err := l.reg.Lookup(co)
			if err != nil {
				rep.Failed[co] = err
				continue
			}
			batch = append(batch, cotool)
		}
	}

	now := l.clock()
	for _, tool := range batch {
		if l.state.IsLoaded(tool.Name, now) {
			rep.AlreadyLoaded = append(rep.AlreadyLoaded, tool.Name)
			continue
		}
		if err := l.activator.Activate(tool); err != nil {
			rep.Failed[tool.Name] = &ActivationError{Tool: tool.Name, Err: err}
			continue
		}
		l.state.Record(tool.Name, tool.TokenCost, now)
		rep.Loaded = append(rep.Loaded, tool.Name)
	}
	return rep
}

// Preload activates every member of a named profile. An unknown profile
// propagates the registry error untouched.
func (l *Loader) Preload(profile string) (*Report, error) {
	members, err := l.reg.Profile(profile)
	if err != nil {
		return nil, err
	}
	return l.Activate(members), nil
}

// ActivateAutoLoad loads every descriptor flagged auto_load. The matcher
// never selects these; they bypass keyword policy and are loaded
// unconditionally, typically at session start.
func (l *Loader) ActivateAutoLoad() *Report {
	var names []string
	for _, tool := range l.reg.All() {
		if tool.AutoLoad {
			names = append(names, tool.Name)
		}
	}
	return l.Activate(names)
}

// Stats derives token accounting from session state and the registry
// baseline. It does not evict: the caller owns cache policy timing.
func (l *Loader) Stats() Stats {
	loaded := l.state.Loaded()
	baseline := l.reg.BaselineTokens()
	total := l.state.TotalTokens()
	saved := baseline - total

	var pct float64
	if baseline > 0 {
		pct = math.Round(float64(saved)/float64(baseline)*1000) / 10
	}

	return Stats{
		LoadedCount:     len(loaded),
		LoadedTokens:    total,
		AvailableCount:  l.reg.Len(),
		AvailableTokens: baseline,
		SavedTokens:     saved,
		SavedPercent:    pct,
		Loaded:          loaded,
	}
}

// EvictExpired applies cache expiry now and returns what was dropped.
func (l *Loader) EvictExpired() []string {
	return l.state.EvictExpired(l.clock())
}

// Reset clears the session state. The registry and its baseline are
// untouched.
func (l *Loader) Reset() {
	l.state.Reset()
}
