package session_test

import (
	"testing"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/domain/session"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestState_RecordAndIsLoaded(t *testing.T) {
	s := session.NewState(30 * time.Minute)

	assert.False(t, s.IsLoaded("context7", epoch))

	s.Record("context7", 1200, epoch)
	assert.True(t, s.IsLoaded("context7", epoch))
	assert.True(t, s.IsLoaded("context7", epoch.Add(29*time.Minute)))
	assert.Equal(t, 1, s.Len())
}

func TestState_Expiry(t *testing.T) {
	s := session.NewState(30 * time.Minute)
	s.Record("context7", 1200, epoch)

	// Exactly at the boundary the window has elapsed.
	assert.False(t, s.IsLoaded("context7", epoch.Add(30*time.Minute)))
	assert.False(t, s.IsLoaded("context7", epoch.Add(31*time.Minute)))

	// IsLoaded is a pure read: the expired entry is still present.
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1200, s.TotalTokens())
}

func TestState_EvictExpired(t *testing.T) {
	s := session.NewState(30 * time.Minute)
	s.Record("context7", 1200, epoch)
	s.Record("magic", 800, epoch.Add(20*time.Minute))

	evicted := s.EvictExpired(epoch.Add(35*time.Minute))
	assert.Equal(t, []string{"context7"}, evicted)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 800, s.TotalTokens())

	// Nothing left to evict.
	assert.Empty(t, s.EvictExpired(epoch.Add(36*time.Minute)))
}

func TestState_RecordRefreshesWithoutDoubleCounting(t *testing.T) {
	s := session.NewState(30 * time.Minute)
	s.Record("context7", 1200, epoch)
	s.Record("context7", 1200, epoch.Add(25*time.Minute))

	assert.Equal(t, 1200, s.TotalTokens(), "reload must not double-count cost")
	// Timestamp refreshed: still loaded past the original window.
	assert.True(t, s.IsLoaded("context7", epoch.Add(40*time.Minute)))
}

func TestState_Loaded_SortedByLoadTime(t *testing.T) {
	s := session.NewState(time.Hour)
	s.Record("magic", 800, epoch.Add(time.Minute))
	s.Record("context7", 1200, epoch)
	s.Record("serena", 950, epoch.Add(time.Minute))

	loaded := s.Loaded()
	names := make([]string, len(loaded))
	for i, lt := range loaded {
		names[i] = lt.Name
	}
	assert.Equal(t, []string{"context7", "magic", "serena"}, names)
}

func TestState_Reset(t *testing.T) {
	s := session.NewState(time.Hour)
	s.Record("context7", 1200, epoch)
	s.Record("magic", 800, epoch)

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.TotalTokens())
	assert.False(t, s.IsLoaded("context7", epoch))
}

func TestNewState_DefaultTTL(t *testing.T) {
	assert.Equal(t, session.DefaultTTL, session.NewState(0).TTL())
	assert.Equal(t, session.DefaultTTL, session.NewState(-time.Minute).TTL())
	assert.Equal(t, 15*time.Minute, session.NewState(15*time.Minute).TTL())
}
