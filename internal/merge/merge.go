// internal/merge/merge.go

// Package merge reconciles two detached collections of records into one,
// keeping the newest version of every record. It never touches the store;
// callers persist the result themselves.
package merge

import (
	"fmt"
	"sort"

	xerrors "alamin-service/internal/pkg/errors"
)

// Record is anything with an identifier and an effective timestamp. The
// effective timestamp is the record's lastUpdated instant in unix millis, or
// the identifier itself for legacy records that never carried one.
type Record interface {
	RecordID() int64
	EffectiveTimestamp() int64
}

// Stats describes what a merge changed relative to the local collection.
type Stats struct {
	New     int `json:"new"`
	Updated int `json:"updated"`
}

// Collections merges local and incoming into a single collection holding
// exactly one record per identifier: whichever version has the strictly
// greater effective timestamp. Ties keep the incoming record. The result is
// sorted by identifier.
//
// A record without an identifier fails the whole merge; nothing is partially
// applied.
func Collections[R Record](local, incoming []R) ([]R, error) {
	if err := validate(local); err != nil {
		return nil, err
	}
	if err := validate(incoming); err != nil {
		return nil, err
	}

	byID := make(map[int64]R, len(local)+len(incoming))
	for _, r := range local {
		byID[r.RecordID()] = r
	}
	for _, r := range incoming {
		current, exists := byID[r.RecordID()]
		if !exists || r.EffectiveTimestamp() >= current.EffectiveTimestamp() {
			byID[r.RecordID()] = r
		}
	}

	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	merged := make([]R, 0, len(ids))
	for _, id := range ids {
		merged = append(merged, byID[id])
	}
	return merged, nil
}

// Diff recomputes the derived counts by comparing the merged collection
// against the original local one: records absent locally are new, records
// whose effective timestamp advanced are updated.
func Diff[R Record](local, merged []R) Stats {
	localByID := make(map[int64]R, len(local))
	for _, r := range local {
		localByID[r.RecordID()] = r
	}

	var stats Stats
	for _, r := range merged {
		before, exists := localByID[r.RecordID()]
		switch {
		case !exists:
			stats.New++
		case r.EffectiveTimestamp() > before.EffectiveTimestamp():
			stats.Updated++
		}
	}
	return stats
}

func validate[R Record](records []R) error {
	for _, r := range records {
		if r.RecordID() == 0 {
			return fmt.Errorf("%w: record is missing an identifier", xerrors.ErrInvalidInput)
		}
	}
	return nil
}
