package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/asenalabs/recall/pkg/relevance"
	"github.com/asenalabs/recall/pkg/session"
)

const (
	// defaultQueryLimit bounds plain retrieval when the caller passes no limit.
	defaultQueryLimit = 50

	// defaultContextualLimit bounds relevance-ranked retrieval.
	defaultContextualLimit = 10

	// contextualScanLimit is how many recent records are loaded and scored
	// per contextual query.
	contextualScanLimit = 100

	// defaultRecentTurns bounds conversation history retrieval.
	defaultRecentTurns = 5
)

// Config holds configuration for a Manager.
type Config struct {
	// Store is the durable backend. Required.
	Store Store

	// Logger receives the swallowed-error log lines. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// SessionCapacity is the per-owner short-term buffer size.
	// Zero falls back to session.DefaultCapacity.
	SessionCapacity int

	// Async, when set, receives conversation turns from LogTurnAsync
	// instead of the store being written inline.
	Async TurnLogger
}

// Manager is the public memory API consumed by chat-handling code. It
// orchestrates the durable store, the relevance scorer, and the short-term
// session tier.
//
// Every public method degrades rather than fails: storage errors are caught
// and logged, and the method returns an empty result. A caller building a
// chat turn never sees an error from memory operations; worst case is a
// shorter context block.
type Manager struct {
	store    Store
	logger   *slog.Logger
	sessions *session.Buffers
	async    TurnLogger
}

// NewManager creates a Manager from the given config.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		store:    cfg.Store,
		logger:   logger,
		sessions: session.NewBuffers(cfg.SessionCapacity),
		async:    cfg.Async,
	}
}

// Remember stores a memory with automatic deduplication, returning the
// record's ID. Empty owner or content is rejected as a no-op with an empty
// ID. Re-remembering identical content updates the existing record instead
// of creating a duplicate.
func (m *Manager) Remember(ctx context.Context, p UpsertParams) string {
	if strings.TrimSpace(p.Owner) == "" || strings.TrimSpace(p.Content) == "" {
		m.logger.Debug("memory rejected, empty owner or content", "owner", p.Owner)
		return ""
	}

	p.Importance = clampImportance(p.Importance)

	result, err := m.store.UpsertMemory(ctx, p)
	if err != nil {
		m.logger.Error("memory upsert failed", "owner", p.Owner, "error", err)
		return ""
	}

	if result.Created {
		m.logger.Info("memory added", "owner", p.Owner, "id", result.ID, "category", p.Category)
	} else {
		m.logger.Debug("memory updated", "owner", p.Owner, "id", result.ID)
	}

	return result.ID
}

// Memories returns stored records for an owner, optionally filtered by
// category, ordered by importance then last access.
func (m *Manager) Memories(ctx context.Context, p QueryParams) []Record {
	if p.Limit <= 0 {
		p.Limit = defaultQueryLimit
	}

	records, err := m.store.QueryMemories(ctx, p)
	if err != nil {
		m.logger.Error("memory query failed", "owner", p.Owner, "error", err)
		return nil
	}

	return records
}

// ContextualMemories returns the owner's memories most relevant to the
// query, best first. Relevance degrades gracefully: when the query yields no
// keywords the most recently touched records are returned instead. Records
// returned here count as accessed.
func (m *Manager) ContextualMemories(ctx context.Context, owner, query string, limit int) []Record {
	if limit <= 0 {
		limit = defaultContextualLimit
	}

	candidates, err := m.store.QueryMemories(ctx, QueryParams{
		Owner: owner,
		Limit: contextualScanLimit,
	})
	if err != nil {
		m.logger.Error("contextual query failed", "owner", owner, "error", err)
		return nil
	}

	keywords := relevance.Keywords(query)
	if len(keywords) > 0 {
		now := time.Now()
		scored := make([]scoredRecord, len(candidates))
		for i, rec := range candidates {
			scored[i] = scoredRecord{
				rec: rec,
				score: relevance.Score(relevance.Candidate{
					Content:     rec.Content,
					Importance:  rec.Importance,
					AccessCount: rec.AccessCount,
					UpdatedAt:   rec.UpdatedAt,
				}, keywords, now),
			}
		}

		// Stable sort so score ties keep the store's ordering
		// (importance desc, last access desc).
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].score > scored[j].score
		})

		for i, s := range scored {
			candidates[i] = s.rec
		}
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	m.touch(ctx, owner, candidates)

	return candidates
}

// Forget deletes the owner's memories matching the optional category and
// content-substring pattern, returning the number removed.
func (m *Manager) Forget(ctx context.Context, owner, category, pattern string) int64 {
	count, err := m.store.DeleteMemories(ctx, owner, category, pattern)
	if err != nil {
		m.logger.Error("memory delete failed", "owner", owner, "error", err)
		return 0
	}

	if count > 0 {
		m.logger.Info("memories deleted", "owner", owner, "count", count)
	}

	return count
}

// LogTurn appends a conversation turn to the durable history, returning its
// ID.
func (m *Manager) LogTurn(ctx context.Context, p TurnParams) string {
	id, err := m.store.AppendTurn(ctx, p)
	if err != nil {
		m.logger.Error("turn append failed", "owner", p.Owner, "error", err)
		return ""
	}

	return id
}

// LogTurnAsync hands a conversation turn to the async persistence pool,
// keeping storage latency off the chat hot path. Falls back to a synchronous
// write when no pool is configured. Returns false if the turn was dropped.
func (m *Manager) LogTurnAsync(p TurnParams) bool {
	if m.async == nil {
		return m.LogTurn(context.Background(), p) != ""
	}

	return m.async.EnqueueTurn(p)
}

// RecentTurns returns the owner's recent conversation history, oldest first.
func (m *Manager) RecentTurns(ctx context.Context, owner string, limit int) []Turn {
	if limit <= 0 {
		limit = defaultRecentTurns
	}

	turns, err := m.store.RecentTurns(ctx, owner, limit)
	if err != nil {
		m.logger.Error("turn query failed", "owner", owner, "error", err)
		return nil
	}

	return turns
}

// AddShortTerm pushes a payload onto the owner's short-term session buffer.
func (m *Manager) AddShortTerm(owner, payload string) {
	m.sessions.Push(owner, payload)
}

// ShortTerm returns the owner's short-term entries, oldest first.
func (m *Manager) ShortTerm(owner string) []session.Entry {
	return m.sessions.Snapshot(owner)
}

// ClearShortTerm empties the owner's short-term buffer.
func (m *Manager) ClearShortTerm(owner string) {
	m.sessions.Clear(owner)
}

// CleanupExpired removes expired non-permanent memories, returning the
// number removed. Intended to be invoked on an external schedule; the
// manager does not self-schedule.
func (m *Manager) CleanupExpired(ctx context.Context) int64 {
	count, err := m.store.PurgeExpired(ctx)
	if err != nil {
		m.logger.Error("expired cleanup failed", "error", err)
		return 0
	}

	if count > 0 {
		m.logger.Info("expired memories cleaned up", "count", count)
	}

	return count
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// scoredRecord pairs a record with its relevance score for sorting.
type scoredRecord struct {
	rec   Record
	score float64
}

// touch marks records as accessed, bumping their access count and last
// access time. Failures only cost ranking signal, so they log at debug.
func (m *Manager) touch(ctx context.Context, owner string, records []Record) {
	if len(records) == 0 {
		return
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}

	if err := m.store.TouchMemories(ctx, owner, ids); err != nil {
		m.logger.Debug("memory touch failed", "owner", owner, "error", err)
	}
}

func clampImportance(importance int) int {
	switch {
	case importance == 0:
		return DefaultImportance
	case importance < 1:
		return 1
	case importance > 10:
		return 10
	}
	return importance
}
