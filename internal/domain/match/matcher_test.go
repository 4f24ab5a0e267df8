package match_test

import (
	"testing"

	"github.com/mcp-lazyload/lazyload/internal/domain/match"
	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(&registry.Document{
		MCPServers: map[string]registry.Entry{
			"context7": {
				TriggerKeywords: []string{"import", "require", "react"},
				TokenCost:       intp(1200),
			},
			"magic": {
				TriggerKeywords: []string{"ui", "component", "/21"},
				TokenCost:       intp(800),
			},
			"playwright": {
				TriggerKeywords: []string{"browser", "e2e", "visual testing"},
				TokenCost:       intp(600),
			},
			"serena": {
				TriggerKeywords: []string{"refactor"},
				TokenCost:       intp(950),
				AutoLoad:        true,
			},
		},
		Agents: map[string]registry.Entry{
			"frontend-developer": {
				TriggerKeywords: []string{"component", "frontend"},
				TokenCost:       intp(300),
			},
		},
	})
	require.NoError(t, err)
	return reg
}

func TestMatch_KeywordContainment(t *testing.T) {
	reg := testRegistry(t)

	res := match.Match("please help me import this library", reg)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "context7", res.Hits[0].Tool)
	assert.Equal(t, "import", res.Hits[0].Keyword)
}

func TestMatch_CaseInsensitive(t *testing.T) {
	reg := testRegistry(t)

	res := match.Match("Build a React App", reg)
	assert.Contains(t, res.Names(), "context7")

	res = match.Match("BROWSER automation", reg)
	assert.Contains(t, res.Names(), "playwright")
}

func TestMatch_SharedKeywordIncludesBoth(t *testing.T) {
	reg := testRegistry(t)

	// "component" triggers both magic and frontend-developer; the result is
	// a set with no ranking, in registry iteration order.
	res := match.Match("build a component", reg)
	assert.Equal(t, []string{"magic", "frontend-developer"}, res.Names())
}

func TestMatch_PunctuationAndPhrases(t *testing.T) {
	reg := testRegistry(t)

	// Phrase keywords must appear verbatim, punctuation included.
	res := match.Match("run /21 for this form", reg)
	assert.Contains(t, res.Names(), "magic")

	res = match.Match("we need visual testing on the flow", reg)
	assert.Contains(t, res.Names(), "playwright")

	// "visual" alone is not the configured phrase.
	res = match.Match("the visual design is off", reg)
	assert.NotContains(t, res.Names(), "playwright")
}

func TestMatch_NoSubstringNoMatch(t *testing.T) {
	reg := testRegistry(t)

	res := match.Match("write a poem about clouds", reg)
	assert.True(t, res.Empty())
}

func TestMatch_EmptyAndBlankInput(t *testing.T) {
	reg := testRegistry(t)

	assert.True(t, match.Match("", reg).Empty())
	assert.True(t, match.Match("   ", reg).Empty())
	assert.True(t, match.Match("\t\n", reg).Empty())
}

func TestMatch_AutoLoadNeverMatched(t *testing.T) {
	reg := testRegistry(t)

	res := match.Match("refactor this function", reg)
	assert.NotContains(t, res.Names(), "serena")
}

func TestMatch_ToolMatchedOncePerRequest(t *testing.T) {
	reg := testRegistry(t)

	// Two keywords of the same tool in one request still yield one hit.
	res := match.Match("import and require everything", reg)
	assert.Equal(t, []string{"context7"}, res.Names())
}
