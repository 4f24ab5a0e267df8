package scenarios

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/api"
	"github.com/mcp-lazyload/lazyload/internal/cli/client"
	"github.com/mcp-lazyload/lazyload/internal/domain/config"
	"github.com/mcp-lazyload/lazyload/internal/domain/loader"
	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
	"github.com/mcp-lazyload/lazyload/internal/domain/session"
	"github.com/stretchr/testify/require"
)

// newSession builds a fresh engine around the fixture registry so every
// scenario starts from an empty cache.
func newSession(t *testing.T) *httptest.Server {
	t.Helper()

	reg, err := registry.Load(filepath.Join("testdata", "registry.json"))
	require.NoError(t, err)

	noop := loader.ActivatorFunc(func(registry.ToolDescriptor) error { return nil })
	l := loader.New(reg, session.NewState(30*time.Minute), noop, nil)
	srv := httptest.NewServer(api.NewControlServer(l, nil, config.DefaultSettings()))
	t.Cleanup(srv.Close)
	return srv
}

func TestScenario(t *testing.T) {
	definitionsDir := "definitions"
	entries, err := os.ReadDir(definitionsDir)
	require.NoError(t, err)

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			t.Run(entry.Name(), func(t *testing.T) {
				srv := newSession(t)
				runner := &ScenarioRunner{
					Client: client.NewControlClient(srv.URL, 10*time.Second),
				}

				s, err := LoadScenario(filepath.Join(definitionsDir, entry.Name()))
				require.NoError(t, err)

				require.NoError(t, runner.Run(s))
			})
		}
	}
}
