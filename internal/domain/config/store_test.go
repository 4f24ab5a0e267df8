package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/domain/config"
	"github.com/mcp-lazyload/lazyload/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-store-test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	store := config.NewStore(filepath.Join(tmpDir, "settings.yaml"))

	settings := config.DefaultSettings()
	settings.ControlPort = 7100
	settings.RegistryPath = "/etc/lazyload/tool-registry.yaml"
	settings.Clients = []string{"claude", "codex"}

	err = store.Save(settings)
	assert.NoError(t, err)

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, 7100, loaded.ControlPort)
	assert.Equal(t, "/etc/lazyload/tool-registry.yaml", loaded.RegistryPath)
	assert.Equal(t, []string{"claude", "codex"}, loaded.Clients)
}

func TestStore_LoadNonExistent(t *testing.T) {
	store := config.NewStore("non-existent-settings.yaml")
	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), loaded)
}

func TestSettings_Validate(t *testing.T) {
	valid := config.DefaultSettings()
	assert.NoError(t, valid.Validate())

	badPort := valid
	badPort.ControlPort = -1
	assert.Error(t, badPort.Validate())

	noRegistry := valid
	noRegistry.RegistryPath = ""
	assert.Error(t, noRegistry.Validate())

	badCache := valid
	badCache.CacheDurationMinutes = -5
	assert.Error(t, badCache.Validate())
}

func TestSettings_CacheDuration(t *testing.T) {
	s := config.Settings{CacheDurationMinutes: 45}
	assert.Equal(t, 45*time.Minute, s.CacheDuration(30))

	s.CacheDurationMinutes = 0
	assert.Equal(t, 30*time.Minute, s.CacheDuration(30))
	assert.Equal(t, session.DefaultTTL, s.CacheDuration(0))
}
