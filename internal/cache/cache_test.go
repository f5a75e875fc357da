package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGet(t *testing.T) {
	s := New()

	s.Set("key", "value", time.Minute)

	got, ok := s.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestStoreGetMissing(t *testing.T) {
	s := New()

	_, ok := s.Get("absent")
	assert.False(t, ok)
}

func TestStoreExpiration(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return now }

	s.Set("key", 42, time.Hour)

	_, ok := s.Get("key")
	require.True(t, ok)

	now = now.Add(time.Hour + time.Second)

	_, ok = s.Get("key")
	assert.False(t, ok)
}

func TestStoreOverwriteRefreshesTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return now }

	s.Set("key", "old", time.Minute)
	now = now.Add(50 * time.Second)
	s.Set("key", "new", time.Minute)
	now = now.Add(30 * time.Second)

	got, ok := s.Get("key")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestStoreDelete(t *testing.T) {
	s := New()

	s.Set("key", "value", time.Minute)
	s.Delete("key")

	_, ok := s.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}
