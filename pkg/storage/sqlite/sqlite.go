// Package sqlite provides a SQLite-backed memory store.
//
// This is the reference backend: a single embedded database file shared by
// a small number of request threads. WAL mode and a generous busy timeout
// cover the expected write contention; the (owner, fingerprint) unique
// constraint plus a single ON CONFLICT statement make the dedup upsert
// atomic.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/asenalabs/recall/pkg/memory"
)

// Store implements memory.Store using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a SQLite-backed memory store.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite-specific pragmas
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the necessary tables if they don't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		category TEXT NOT NULL,
		content TEXT NOT NULL,
		importance INTEGER NOT NULL DEFAULT 5,
		permanent INTEGER NOT NULL DEFAULT 0,
		expires_at INTEGER,
		fingerprint TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		last_accessed_at INTEGER NOT NULL,
		access_count INTEGER NOT NULL DEFAULT 1,
		metadata TEXT,
		UNIQUE(owner, fingerprint)
	);

	CREATE TABLE IF NOT EXISTS conversation_turns (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		user_message TEXT NOT NULL,
		assistant_response TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		sentiment TEXT,
		fingerprint TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_memories_owner_category ON memories(owner, category);
	CREATE INDEX IF NOT EXISTS idx_memories_accessed ON memories(last_accessed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_turns_owner_time ON conversation_turns(owner, timestamp DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// UpsertMemory inserts a record or updates the existing one for the same
// (owner, fingerprint). A single ON CONFLICT statement keeps the dedup
// atomic under concurrent identical writes. The update branch preserves
// expires_at and metadata; only access tracking, importance, and permanence
// move.
func (s *Store) UpsertMemory(ctx context.Context, p memory.UpsertParams) (memory.Upserted, error) {
	fingerprint := memory.Fingerprint(p.Owner, p.Content)
	now := time.Now().UTC().UnixNano()

	metadataJSON, err := marshalOpaque(p.Metadata)
	if err != nil {
		return memory.Upserted{}, memory.StorageError{Op: "upsert", Err: err}
	}

	var (
		id          string
		accessCount int
	)
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO memories
		(id, owner, category, content, importance, permanent,
		 expires_at, fingerprint, created_at, updated_at, last_accessed_at, access_count, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(owner, fingerprint) DO UPDATE SET
			updated_at = excluded.updated_at,
			last_accessed_at = excluded.last_accessed_at,
			access_count = memories.access_count + 1,
			importance = excluded.importance,
			permanent = excluded.permanent
		RETURNING id, access_count`,
		uuid.NewString(), p.Owner, p.Category, p.Content, p.Importance, boolToInt(p.Permanent),
		timePtrToUnix(p.ExpiresAt), fingerprint, now, now, now, metadataJSON,
	).Scan(&id, &accessCount)
	if err != nil {
		return memory.Upserted{}, memory.StorageError{Op: "upsert", Err: err}
	}

	return memory.Upserted{ID: id, Created: accessCount == 1}, nil
}

// QueryMemories returns an owner's records ordered by importance then last
// access. Non-permanent expired records are excluded unless IncludeExpired.
func (s *Store) QueryMemories(ctx context.Context, p memory.QueryParams) ([]memory.Record, error) {
	query := `
		SELECT id, owner, category, content, importance, permanent,
		       expires_at, fingerprint, created_at, updated_at, last_accessed_at, access_count, metadata
		FROM memories WHERE owner = ?`
	args := []any{p.Owner}

	if p.Category != "" {
		query += ` AND category = ?`
		args = append(args, p.Category)
	}

	if !p.IncludeExpired {
		query += ` AND (permanent = 1 OR expires_at IS NULL OR expires_at > ?)`
		args = append(args, time.Now().UTC().UnixNano())
	}

	query += ` ORDER BY importance DESC, last_accessed_at DESC LIMIT ?`
	args = append(args, p.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, memory.StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	var records []memory.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, memory.StorageError{Op: "query", Err: err}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, memory.StorageError{Op: "query", Err: err}
	}

	return records, nil
}

// TouchMemories bumps access tracking for the given record IDs.
func (s *Store) TouchMemories(ctx context.Context, owner string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := []any{time.Now().UTC().UnixNano(), owner}
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE memories
		SET last_accessed_at = ?, access_count = access_count + 1
		WHERE owner = ? AND id IN (%s)`, placeholders), args...)
	if err != nil {
		return memory.StorageError{Op: "touch", Err: err}
	}

	return nil
}

// DeleteMemories bulk-deletes records matching owner and the optional
// category and content-substring pattern.
func (s *Store) DeleteMemories(ctx context.Context, owner, category, pattern string) (int64, error) {
	query := `DELETE FROM memories WHERE owner = ?`
	args := []any{owner}

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}

	if pattern != "" {
		query += ` AND content LIKE ?`
		args = append(args, "%"+pattern+"%")
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, memory.StorageError{Op: "delete", Err: err}
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, memory.StorageError{Op: "delete", Err: err}
	}

	return count, nil
}

// AppendTurn inserts a conversation turn. No deduplication, every turn is
// kept.
func (s *Store) AppendTurn(ctx context.Context, p memory.TurnParams) (string, error) {
	sentimentJSON, err := marshalOpaque(p.Sentiment)
	if err != nil {
		return "", memory.StorageError{Op: "append turn", Err: err}
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversation_turns
		(id, owner, user_message, assistant_response, timestamp, sentiment, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Owner, p.UserMessage, p.AssistantResponse,
		time.Now().UTC().UnixNano(), sentimentJSON, memory.Fingerprint(p.Owner, p.UserMessage),
	)
	if err != nil {
		return "", memory.StorageError{Op: "append turn", Err: err}
	}

	return id, nil
}

// RecentTurns returns the owner's most recent turns, oldest first.
func (s *Store) RecentTurns(ctx context.Context, owner string, limit int) ([]memory.Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, user_message, assistant_response, timestamp, sentiment, fingerprint
		FROM conversation_turns
		WHERE owner = ?
		ORDER BY timestamp DESC
		LIMIT ?`, owner, limit)
	if err != nil {
		return nil, memory.StorageError{Op: "recent turns", Err: err}
	}
	defer rows.Close()

	var turns []memory.Turn
	for rows.Next() {
		turn, err := scanTurn(rows)
		if err != nil {
			return nil, memory.StorageError{Op: "recent turns", Err: err}
		}
		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, memory.StorageError{Op: "recent turns", Err: err}
	}

	reverse(turns)

	return turns, nil
}

// PurgeExpired deletes expired non-permanent records.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM memories
		WHERE permanent = 0
		AND expires_at IS NOT NULL
		AND expires_at < ?`,
		time.Now().UTC().UnixNano())
	if err != nil {
		return 0, memory.StorageError{Op: "purge", Err: err}
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, memory.StorageError{Op: "purge", Err: err}
	}

	return count, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (memory.Record, error) {
	var (
		rec          memory.Record
		permanent    int
		expiresAt    sql.NullInt64
		createdAt    int64
		updatedAt    int64
		accessedAt   int64
		metadataJSON sql.NullString
	)

	err := rows.Scan(&rec.ID, &rec.Owner, &rec.Category, &rec.Content,
		&rec.Importance, &permanent, &expiresAt, &rec.Fingerprint,
		&createdAt, &updatedAt, &accessedAt, &rec.AccessCount, &metadataJSON)
	if err != nil {
		return memory.Record{}, err
	}

	rec.Permanent = permanent != 0
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.UpdatedAt = time.Unix(0, updatedAt).UTC()
	rec.LastAccessedAt = time.Unix(0, accessedAt).UTC()

	if expiresAt.Valid {
		t := time.Unix(0, expiresAt.Int64).UTC()
		rec.ExpiresAt = &t
	}

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &rec.Metadata); err != nil {
			// Corrupt metadata costs the payload, not the record.
			rec.Metadata = nil
		}
	}

	return rec, nil
}

func scanTurn(rows *sql.Rows) (memory.Turn, error) {
	var (
		turn          memory.Turn
		timestamp     int64
		sentimentJSON sql.NullString
		fingerprint   sql.NullString
	)

	err := rows.Scan(&turn.ID, &turn.Owner, &turn.UserMessage,
		&turn.AssistantResponse, &timestamp, &sentimentJSON, &fingerprint)
	if err != nil {
		return memory.Turn{}, err
	}

	turn.Timestamp = time.Unix(0, timestamp).UTC()
	turn.Fingerprint = fingerprint.String

	if sentimentJSON.Valid && sentimentJSON.String != "" {
		if err := json.Unmarshal([]byte(sentimentJSON.String), &turn.Sentiment); err != nil {
			turn.Sentiment = nil
		}
	}

	return turn, nil
}

func marshalOpaque(payload map[string]any) (sql.NullString, error) {
	if payload == nil {
		return sql.NullString{}, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return sql.NullString{String: string(data), Valid: true}, nil
}

func timePtrToUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UTC().UnixNano(), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func reverse(turns []memory.Turn) {
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
}
