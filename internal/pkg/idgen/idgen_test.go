package idgen

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextID_DerivedFromClock(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := New(func() time.Time { return at })

	require.Equal(t, at.UnixMilli(), g.NextID())
}

func TestNextID_MonotonicWhenClockStalls(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := New(func() time.Time { return at })

	first := g.NextID()
	second := g.NextID()
	third := g.NextID()

	require.Equal(t, first+1, second)
	require.Equal(t, second+1, third)
}

func TestNextID_FollowsAdvancingClock(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := New(func() time.Time { return at })

	first := g.NextID()
	at = at.Add(time.Second)
	second := g.NextID()

	require.Equal(t, first+1000, second)
}

func TestNextTransactionID_SecondResolutionAndRange(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := New(func() time.Time { return at })

	id := g.NextTransactionID()
	require.Equal(t, at.Unix(), id)
	require.LessOrEqual(t, id, int64(math.MaxInt32))

	// Stalled clock still hands out distinct values.
	require.Equal(t, id+1, g.NextTransactionID())
}

func TestGenerators_IndependentSequences(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := New(func() time.Time { return at })

	recordID := g.NextID()
	txID := g.NextTransactionID()

	require.NotEqual(t, recordID, txID)
	require.Equal(t, at.UnixMilli(), recordID)
	require.Equal(t, at.Unix(), txID)
}
