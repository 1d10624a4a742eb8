// Package board holds the status table shown on the dashboard.
//
// The table is rebuilt once per poll cycle. Every cycle takes a generation
// number from Begin before it fetches anything. Reset, Append and Settle
// ignore generations older than the one on the table, so a slow cycle can
// never replace or extend the table of a cycle that started after it.
package board

import (
	"sync"
	"time"

	"github.com/wrtgvr/statusboard/internal/domain"
)

// Snapshot is a copy of the table at one point in time.
type Snapshot struct {
	Generation uint64    `json:"generation"`
	Settled    bool      `json:"settled"`
	UpdatedAt  time.Time `json:"updated_at"`
	Rows       []Row     `json:"rows"`
}

type Board struct {
	mu         sync.RWMutex
	issued     uint64
	generation uint64
	settled    bool
	updatedAt  time.Time
	rows       []Row
	subs       map[chan Snapshot]struct{}
	now        func() time.Time
}

func New() *Board {
	return &Board{
		subs: make(map[chan Snapshot]struct{}),
		now:  time.Now,
	}
}

// Begin hands out the generation of a new cycle.
func (b *Board) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.issued++
	return b.issued
}

// Reset clears the table for generation gen. It returns false, leaving the
// table untouched, when the table already belongs to gen or a newer one.
func (b *Board) Reset(gen uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen <= b.generation {
		return false
	}
	b.generation = gen
	b.rows = nil
	b.settled = false
	b.updatedAt = b.now()

	return true
}

// Append adds a row in arrival order. It returns false, leaving the table
// untouched, when gen is not the current generation.
func (b *Board) Append(gen uint64, id domain.ServiceID, status domain.ServiceStatus) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		return false
	}
	b.rows = append(b.rows, NewRow(id, status))
	b.updatedAt = b.now()

	return true
}

// Settle marks generation gen as complete and publishes the table to
// subscribers. Stale generations are ignored.
func (b *Board) Settle(gen uint64) (Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		return Snapshot{}, false
	}
	b.settled = true

	snap := b.snapshotLocked()
	for ch := range b.subs {
		publish(ch, snap)
	}

	return snap, true
}

func (b *Board) Generation() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.generation
}

func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() Snapshot {
	rows := make([]Row, len(b.rows))
	copy(rows, b.rows)
	return Snapshot{
		Generation: b.generation,
		Settled:    b.settled,
		UpdatedAt:  b.updatedAt,
		Rows:       rows,
	}
}

// Subscribe returns a channel receiving the table after every settled
// cycle. A slow reader only sees the latest table. Call cancel to stop.
func (b *Board) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
		})
	}
	return ch, cancel
}

// publish replaces any unread snapshot with snap
func publish(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
