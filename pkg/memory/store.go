package memory

import (
	"context"
	"time"
)

// Store defines the interface for persisting and retrieving memory records
// and conversation turns in a storage backend. Implementations must enforce
// the (owner, fingerprint) uniqueness invariant at the storage layer so that
// concurrent identical writes cannot create duplicate records.
type Store interface {
	// UpsertMemory inserts a new record, or updates the existing one when a
	// record with the same (owner, fingerprint) already exists. The update
	// branch bumps UpdatedAt, LastAccessedAt, and AccessCount and
	// overwrites Importance and Permanent; ExpiresAt and Metadata are left
	// untouched. Must be atomic per (owner, fingerprint) key.
	UpsertMemory(ctx context.Context, p UpsertParams) (Upserted, error)

	// QueryMemories returns records for an owner, optionally filtered by
	// category, ordered by importance descending then last access
	// descending. Non-permanent expired records are excluded unless
	// IncludeExpired is set.
	QueryMemories(ctx context.Context, p QueryParams) ([]Record, error)

	// TouchMemories bumps LastAccessedAt and AccessCount for the given
	// record IDs. Used by the contextual read path.
	TouchMemories(ctx context.Context, owner string, ids []string) error

	// DeleteMemories bulk-deletes records matching owner and the optional
	// category and content-substring pattern. Returns the number removed.
	DeleteMemories(ctx context.Context, owner, category, pattern string) (int64, error)

	// AppendTurn inserts a conversation turn. No deduplication.
	AppendTurn(ctx context.Context, p TurnParams) (string, error)

	// RecentTurns returns the owner's most recent turns, oldest first.
	RecentTurns(ctx context.Context, owner string, limit int) ([]Turn, error)

	// PurgeExpired deletes all non-permanent records whose expiry has
	// passed. Returns the number removed. Safe to run concurrently with
	// normal traffic.
	PurgeExpired(ctx context.Context) (int64, error)

	// Close releases backend resources.
	Close() error
}

// UpsertParams holds the inputs for Store.UpsertMemory.
type UpsertParams struct {
	Owner      string
	Category   string
	Content    string
	Importance int
	Permanent  bool
	ExpiresAt  *time.Time
	Metadata   map[string]any
}

// Upserted is the result of an upsert: the record's ID and whether the call
// created a new record (false means an existing record was updated).
type Upserted struct {
	ID      string
	Created bool
}

// QueryParams holds the filters for Store.QueryMemories.
type QueryParams struct {
	Owner          string
	Category       string
	IncludeExpired bool
	Limit          int
}

// TurnParams holds the inputs for Store.AppendTurn.
type TurnParams struct {
	Owner             string
	UserMessage       string
	AssistantResponse string
	Sentiment         map[string]any
}

// TurnLogger enqueues conversation turns for asynchronous persistence,
// decoupling the chat hot path from storage latency. Implemented by the
// worker pool; a false return means the turn was dropped.
type TurnLogger interface {
	EnqueueTurn(p TurnParams) bool
}
