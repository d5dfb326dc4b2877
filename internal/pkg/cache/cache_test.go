package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCache_ServesFreshValue(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New[[]string](5*time.Second, clock)
	c.Set([]string{"a", "b"})

	now = now.Add(4 * time.Second)
	v, ok := c.Get()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, v)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New[int](5*time.Second, clock)
	c.Set(42)

	// Exactly at the boundary the value is already stale.
	now = now.Add(5 * time.Second)
	_, ok := c.Get()
	require.False(t, ok)
}

func TestCache_EmptyUntilFirstSet(t *testing.T) {
	c := New[int](time.Second, nil)
	_, ok := c.Get()
	require.False(t, ok)
}

func TestCache_InvalidateDropsValue(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[int](time.Minute, func() time.Time { return now })

	c.Set(1)
	c.Invalidate()

	_, ok := c.Get()
	require.False(t, ok)

	// A later Set brings it back.
	c.Set(2)
	v, ok := c.Get()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestCache_StaleIsPureInTime(t *testing.T) {
	fetched := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[int](5*time.Second, func() time.Time { return fetched })
	c.Set(1)

	require.False(t, c.Stale(fetched.Add(4*time.Second)))
	require.True(t, c.Stale(fetched.Add(5*time.Second)))
	require.True(t, c.Stale(fetched.Add(time.Hour)))
}
