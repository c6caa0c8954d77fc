// Package session provides the short-term memory tier: a bounded in-process
// ring buffer per owner, independent of durable storage.
//
// Entries age out purely by being overwritten: there is no expiry and no
// persistence. A process restart silently loses this tier, which is an
// accepted trade-off: it carries session continuity, not durable knowledge.
package session

import (
	"sync"
	"time"
)

// DefaultCapacity is the per-owner buffer size when none is configured.
const DefaultCapacity = 10

// Entry is one short-term item: an opaque payload with the time it was
// pushed.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Payload   string    `json:"payload"`
}

// Buffers holds one bounded ring buffer per owner.
type Buffers struct {
	capacity int

	mu      sync.Mutex
	byOwner map[string][]Entry
}

// NewBuffers creates per-owner buffers with the given capacity.
// A capacity of zero or less falls back to DefaultCapacity.
func NewBuffers(capacity int) *Buffers {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffers{
		capacity: capacity,
		byOwner:  make(map[string][]Entry),
	}
}

// Push appends an entry to the owner's buffer, evicting the oldest entry
// when the buffer is at capacity.
func (b *Buffers) Push(owner, payload string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.byOwner[owner]
	if len(entries) >= b.capacity {
		entries = entries[len(entries)-b.capacity+1:]
	}
	b.byOwner[owner] = append(entries, Entry{
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// Snapshot returns a copy of the owner's entries, oldest first.
func (b *Buffers) Snapshot(owner string) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, ok := b.byOwner[owner]
	if !ok {
		return nil
	}

	// Copy so callers cannot mutate internal state.
	result := make([]Entry, len(entries))
	copy(result, entries)

	return result
}

// Clear empties the owner's buffer.
func (b *Buffers) Clear(owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.byOwner, owner)
}
