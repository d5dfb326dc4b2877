package merge

import (
	"testing"
	"time"

	"alamin-service/internal/domain/client"
	xerrors "alamin-service/internal/pkg/errors"

	"github.com/stretchr/testify/require"
)

type rec struct {
	id int64
	ts int64
	v  string
}

func (r rec) RecordID() int64           { return r.id }
func (r rec) EffectiveTimestamp() int64 { return r.ts }

func ids(records []rec) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.id)
	}
	return out
}

func TestCollections_NewestWins(t *testing.T) {
	local := []rec{{id: 1, ts: 100, v: "old"}}
	incoming := []rec{{id: 1, ts: 200, v: "new"}}

	merged, err := Collections(local, incoming)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	require.Equal(t, "new", merged[0].v)

	// The other direction keeps the local version.
	merged, err = Collections(incoming, local)
	require.NoError(t, err)
	require.Equal(t, "new", merged[0].v)
}

func TestCollections_TiePrefersIncoming(t *testing.T) {
	local := []rec{{id: 7, ts: 500, v: "local"}}
	incoming := []rec{{id: 7, ts: 500, v: "incoming"}}

	merged, err := Collections(local, incoming)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	require.Equal(t, "incoming", merged[0].v)
}

func TestCollections_UnionOfIdentifiers(t *testing.T) {
	local := []rec{{id: 3, ts: 1}, {id: 1, ts: 1}}
	incoming := []rec{{id: 2, ts: 1}, {id: 3, ts: 2}}

	merged, err := Collections(local, incoming)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, ids(merged))
}

func TestCollections_Idempotent(t *testing.T) {
	x := []rec{{id: 1, ts: 10, v: "a"}, {id: 2, ts: 20, v: "b"}}

	merged, err := Collections(x, x)
	require.NoError(t, err)
	require.Equal(t, x, merged)
}

func TestCollections_EmptyInputs(t *testing.T) {
	merged, err := Collections(nil, []rec{{id: 5, ts: 1}})
	require.NoError(t, err)
	require.Equal(t, []int64{5}, ids(merged))

	merged, err = Collections([]rec{{id: 5, ts: 1}}, nil)
	require.NoError(t, err)
	require.Equal(t, []int64{5}, ids(merged))

	merged, err = Collections[rec](nil, nil)
	require.NoError(t, err)
	require.Empty(t, merged)
}

func TestCollections_MissingIdentifierFailsAtomically(t *testing.T) {
	local := []rec{{id: 1, ts: 10}}
	incoming := []rec{{id: 2, ts: 20}, {id: 0, ts: 30}}

	_, err := Collections(local, incoming)
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestDiff_CountsNewAndUpdated(t *testing.T) {
	local := []rec{{id: 1, ts: 100}, {id: 2, ts: 100}}
	incoming := []rec{{id: 2, ts: 200}, {id: 3, ts: 50}}

	merged, err := Collections(local, incoming)
	require.NoError(t, err)

	stats := Diff(local, merged)
	require.Equal(t, 1, stats.New)
	require.Equal(t, 1, stats.Updated)
}

func TestCollections_ClientRecords(t *testing.T) {
	at := func(ms int64) time.Time { return time.UnixMilli(ms) }

	local := []client.Client{
		{ID: 1, FullName: "stale", LastUpdated: at(100)},
	}
	incoming := []client.Client{
		{ID: 1, FullName: "fresh", LastUpdated: at(200)},
	}

	merged, err := Collections(local, incoming)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	require.Equal(t, "fresh", merged[0].FullName)
}

func TestCollections_IdentifierFallbackForLegacyRecords(t *testing.T) {
	// A record without lastUpdated competes with its id, which is a
	// millisecond-epoch value for this store.
	legacy := []client.Client{{ID: 1_700_000_000_000, FullName: "legacy"}}
	fresh := []client.Client{{
		ID:          1_700_000_000_000,
		FullName:    "stamped",
		LastUpdated: time.UnixMilli(1_700_000_000_001),
	}}

	merged, err := Collections(legacy, fresh)
	require.NoError(t, err)
	require.Equal(t, "stamped", merged[0].FullName)
}
