// internal/pkg/idgen/idgen.go
package idgen

import (
	"sync"
	"time"
)

// Generator hands out time-derived record identifiers. Record IDs are
// millisecond-epoch values and transaction IDs are second-epoch values; both
// are bumped past the previous value when the clock has not advanced, so IDs
// are strictly increasing per process.
type Generator struct {
	mu       sync.Mutex
	now      func() time.Time
	lastID   int64
	lastTxID int64
}

func New(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// NextID returns a millisecond-derived identifier for clients, insurance
// companies and files.
func (g *Generator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.lastID {
		id = g.lastID + 1
	}
	g.lastID = id
	return id
}

// NextTransactionID returns a second-derived identifier. Values stay within
// the signed 32-bit range the legacy data format requires.
func (g *Generator) NextTransactionID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().Unix()
	if id <= g.lastTxID {
		id = g.lastTxID + 1
	}
	g.lastTxID = id
	return id
}
