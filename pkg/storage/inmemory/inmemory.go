// Package inmemory provides a map-backed memory store for tests and local
// development. Semantics match the SQL backends: fingerprint dedup, expiry
// filtering with permanent exemption, and importance-then-access ordering.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asenalabs/recall/pkg/memory"
)

// Store implements memory.Store using in-process maps.
type Store struct {
	mu sync.RWMutex

	// records maps owner -> fingerprint -> record.
	records map[string]map[string]*memory.Record

	// turns maps owner -> turns in append order.
	turns map[string][]memory.Turn
}

// NewStore creates an in-memory store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]map[string]*memory.Record),
		turns:   make(map[string][]memory.Turn),
	}
}

// UpsertMemory inserts a record or updates the one already holding the same
// (owner, fingerprint). The store's single lock makes the upsert atomic.
func (s *Store) UpsertMemory(_ context.Context, p memory.UpsertParams) (memory.Upserted, error) {
	fingerprint := memory.Fingerprint(p.Owner, p.Content)
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	byFingerprint, ok := s.records[p.Owner]
	if !ok {
		byFingerprint = make(map[string]*memory.Record)
		s.records[p.Owner] = byFingerprint
	}

	if existing, ok := byFingerprint[fingerprint]; ok {
		existing.UpdatedAt = now
		existing.LastAccessedAt = now
		existing.AccessCount++
		existing.Importance = p.Importance
		existing.Permanent = p.Permanent
		return memory.Upserted{ID: existing.ID}, nil
	}

	rec := &memory.Record{
		ID:             uuid.NewString(),
		Owner:          p.Owner,
		Category:       p.Category,
		Content:        p.Content,
		Importance:     p.Importance,
		Permanent:      p.Permanent,
		ExpiresAt:      p.ExpiresAt,
		Fingerprint:    fingerprint,
		CreatedAt:      now,
		UpdatedAt:      now,
		LastAccessedAt: now,
		AccessCount:    1,
		Metadata:       p.Metadata,
	}
	byFingerprint[fingerprint] = rec

	return memory.Upserted{ID: rec.ID, Created: true}, nil
}

// QueryMemories returns an owner's records ordered by importance then last
// access, excluding non-permanent expired records unless IncludeExpired.
func (s *Store) QueryMemories(_ context.Context, p memory.QueryParams) ([]memory.Record, error) {
	now := time.Now().UTC()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []memory.Record
	for _, rec := range s.records[p.Owner] {
		if p.Category != "" && rec.Category != p.Category {
			continue
		}
		if !p.IncludeExpired && rec.Expired(now) {
			continue
		}
		// Copy so callers cannot mutate internal state.
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Importance != records[j].Importance {
			return records[i].Importance > records[j].Importance
		}
		return records[i].LastAccessedAt.After(records[j].LastAccessedAt)
	})

	if p.Limit > 0 && len(records) > p.Limit {
		records = records[:p.Limit]
	}

	return records, nil
}

// TouchMemories bumps access tracking for the given record IDs.
func (s *Store) TouchMemories(_ context.Context, owner string, ids []string) error {
	now := time.Now().UTC()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records[owner] {
		if _, ok := wanted[rec.ID]; ok {
			rec.LastAccessedAt = now
			rec.AccessCount++
		}
	}

	return nil
}

// DeleteMemories removes records matching owner and the optional category
// and content-substring pattern.
func (s *Store) DeleteMemories(_ context.Context, owner, category, pattern string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for fingerprint, rec := range s.records[owner] {
		if category != "" && rec.Category != category {
			continue
		}
		if pattern != "" && !strings.Contains(rec.Content, pattern) {
			continue
		}
		delete(s.records[owner], fingerprint)
		count++
	}

	return count, nil
}

// AppendTurn records a conversation turn.
func (s *Store) AppendTurn(_ context.Context, p memory.TurnParams) (string, error) {
	turn := memory.Turn{
		ID:                uuid.NewString(),
		Owner:             p.Owner,
		UserMessage:       p.UserMessage,
		AssistantResponse: p.AssistantResponse,
		Timestamp:         time.Now().UTC(),
		Sentiment:         p.Sentiment,
		Fingerprint:       memory.Fingerprint(p.Owner, p.UserMessage),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[p.Owner] = append(s.turns[p.Owner], turn)

	return turn.ID, nil
}

// RecentTurns returns the owner's last turns, oldest first.
func (s *Store) RecentTurns(_ context.Context, owner string, limit int) ([]memory.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[owner]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	result := make([]memory.Turn, len(turns))
	copy(result, turns)

	return result, nil
}

// PurgeExpired deletes expired non-permanent records.
func (s *Store) PurgeExpired(_ context.Context) (int64, error) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, byFingerprint := range s.records {
		for fingerprint, rec := range byFingerprint {
			if rec.Expired(now) {
				delete(byFingerprint, fingerprint)
				count++
			}
		}
	}

	return count, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
