// Package match maps free-text request input to candidate tools using
// deterministic keyword containment. It is a pure function over the
// registry: no session state, no side effects.
package match

import (
	"strings"

	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
)

// Hit records one matched tool and the keyword that triggered it.
type Hit struct {
	Tool    string `json:"tool"`
	Keyword string `json:"keyword"`
}

// Result is the outcome of matching one request. Tools appear at most once,
// in registry iteration order; there is no ranking signal in the data
// model, so none is invented.
type Result struct {
	Hits []Hit `json:"hits"`
}

// Names returns the matched tool names in result order.
func (r Result) Names() []string {
	names := make([]string, 0, len(r.Hits))
	for _, h := range r.Hits {
		names = append(names, h.Tool)
	}
	return names
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool {
	return len(r.Hits) == 0
}

// Match returns every tool with at least one trigger keyword contained in
// text. Matching is case-insensitive substring containment; multi-word
// phrases keep their punctuation and must appear verbatim. No stemming, no
// fuzzy matching.
//
// Tools flagged auto_load are never matched here: auto-loading is loader
// policy, not a keyword decision. Empty or blank text matches nothing.
func Match(text string, reg *registry.Registry) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	lower := strings.ToLower(text)
	var hits []Hit
	for _, tool := range reg.All() {
		if tool.AutoLoad {
			continue
		}
		for _, kw := range tool.TriggerKeywords {
			needle := strings.ToLower(kw)
			if needle == "" {
				continue
			}
			if strings.Contains(lower, needle) {
				hits = append(hits, Hit{Tool: tool.Name, Keyword: kw})
				break
			}
		}
	}
	return Result{Hits: hits}
}
