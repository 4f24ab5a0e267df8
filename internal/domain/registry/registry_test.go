package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func sampleDocument() *Document {
	return &Document{
		Version: "1.0",
		MCPServers: map[string]Entry{
			"context7": {
				TriggerKeywords: []string{"import", "require", "react"},
				TokenCost:       intp(1200),
				PreloadWith:     []string{"magic"},
			},
			"magic": {
				TriggerKeywords: []string{"ui", "component"},
				TokenCost:       intp(800),
			},
			"serena": {
				TriggerKeywords: []string{"symbol", "rename", "refactor"},
				TokenCost:       intp(950),
				AutoLoad:        true,
			},
		},
		Agents: map[string]Entry{
			"frontend-developer": {
				TriggerKeywords: []string{"frontend", "design"},
				TokenCost:       intp(300),
			},
		},
		Profiles: map[string][]string{
			"react": {"context7", "magic", "frontend-developer"},
		},
		Rules: Rules{CacheDurationMinutes: 30},
	}
}

func TestNew_ValidDocument(t *testing.T) {
	reg, err := New(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, 4, reg.Len())
	assert.Equal(t, 1200+800+950+300, reg.BaselineTokens())
	assert.Equal(t, 30, reg.Rules().CacheDurationMinutes)

	tool, err := reg.Lookup("context7")
	require.NoError(t, err)
	assert.Equal(t, KindMCPServer, tool.Kind)
	assert.Equal(t, 1200, tool.TokenCost)
	assert.Equal(t, []string{"magic"}, tool.PreloadWith)

	agent, err := reg.Lookup("frontend-developer")
	require.NoError(t, err)
	assert.Equal(t, KindAgent, agent.Kind)
}

func TestNew_IterationOrder(t *testing.T) {
	// mcp_servers sorted by name first, then agents sorted by name,
	// independent of map ordering.
	reg, err := New(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, []string{"context7", "magic", "serena", "frontend-developer"}, reg.Names())
}

func TestNew_MissingTokenCost(t *testing.T) {
	doc := sampleDocument()
	doc.Agents["broken"] = Entry{TriggerKeywords: []string{"x"}}

	reg, err := New(doc)
	assert.Nil(t, reg)
	assert.True(t, IsKind(err, ErrMalformedEntry))
}

func TestNew_NegativeTokenCost(t *testing.T) {
	doc := sampleDocument()
	doc.MCPServers["broken"] = Entry{TokenCost: intp(-5)}

	reg, err := New(doc)
	assert.Nil(t, reg)
	assert.True(t, IsKind(err, ErrMalformedEntry))
}

func TestNew_DuplicateNameAcrossSections(t *testing.T) {
	doc := sampleDocument()
	doc.Agents["magic"] = Entry{TokenCost: intp(10)}

	reg, err := New(doc)
	assert.Nil(t, reg)
	assert.True(t, IsKind(err, ErrMalformedEntry))
}

func TestNew_DanglingProfileReference(t *testing.T) {
	doc := sampleDocument()
	doc.Profiles["broken"] = []string{"context7", "no-such-tool"}

	reg, err := New(doc)
	assert.Nil(t, reg, "no partially-built registry must be observable")
	assert.True(t, IsKind(err, ErrDanglingReference))
}

func TestNew_DanglingPreloadReference(t *testing.T) {
	doc := sampleDocument()
	doc.MCPServers["orphan"] = Entry{TokenCost: intp(10), PreloadWith: []string{"missing"}}

	reg, err := New(doc)
	assert.Nil(t, reg)
	assert.True(t, IsKind(err, ErrDanglingReference))
}

func TestLookup_NotFound(t *testing.T) {
	reg, err := New(sampleDocument())
	require.NoError(t, err)

	_, err = reg.Lookup("nope")
	assert.True(t, IsKind(err, ErrNotFound))
}

func TestProfile(t *testing.T) {
	reg, err := New(sampleDocument())
	require.NoError(t, err)

	members, err := reg.Profile("react")
	require.NoError(t, err)
	assert.Equal(t, []string{"context7", "magic", "frontend-developer"}, members)

	_, err = reg.Profile("wordpress")
	assert.True(t, IsKind(err, ErrUnknownProfile))

	// The returned slice is a copy; mutating it must not affect the registry.
	members[0] = "mutated"
	again, _ := reg.Profile("react")
	assert.Equal(t, "context7", again[0])
}

func TestFind(t *testing.T) {
	reg, err := New(sampleDocument())
	require.NoError(t, err)

	byName := reg.Find("context")
	require.Len(t, byName, 1)
	assert.Equal(t, "context7", byName[0].Name)

	byKeyword := reg.Find("rename")
	require.Len(t, byKeyword, 1)
	assert.Equal(t, "serena", byKeyword[0].Name)

	assert.Len(t, reg.Find(""), reg.Len())
	assert.Empty(t, reg.Find("zzz-nothing"))
}

func TestLoad_JSONAndYAML(t *testing.T) {
	tmpDir := t.TempDir()

	jsonDoc := `{
		"version": "1.0",
		"mcp_servers": {
			"playwright": {"trigger_keywords": ["browser", "e2e"], "token_cost": 600}
		},
		"agents": {
			"test-writer-fixer": {"trigger_keywords": ["test"], "token_cost": 250}
		},
		"profiles": {"testing": ["playwright", "test-writer-fixer"]},
		"rules": {"cache_duration_minutes": 15}
	}`
	jsonPath := filepath.Join(tmpDir, "registry.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonDoc), 0644))

	reg, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 850, reg.BaselineTokens())
	assert.Equal(t, 15, reg.Rules().CacheDurationMinutes)

	yamlDoc := `
version: "1.0"
mcp_servers:
  playwright:
    trigger_keywords: [browser, e2e]
    token_cost: 600
agents:
  test-writer-fixer:
    trigger_keywords: [test]
    token_cost: 250
profiles:
  testing: [playwright, test-writer-fixer]
`
	yamlPath := filepath.Join(tmpDir, "registry.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0644))

	reg, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"playwright", "test-writer-fixer"}, reg.Names())
}

func TestParseJSON_Invalid(t *testing.T) {
	reg, err := ParseJSON([]byte("{not json"))
	assert.Nil(t, reg)
	assert.True(t, IsKind(err, ErrMalformedEntry))
}
