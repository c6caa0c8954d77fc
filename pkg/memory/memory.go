// Package memory provides the conversational memory engine for the Asena
// household assistant.
//
// Memories are durable, deduplicated facts about a user ("Fındık alerjisi
// var"), keyed by a fingerprint of their normalized content so that
// re-learning the same fact updates one record instead of accumulating
// duplicates. Conversation turns are an append-only chat log. The [Manager]
// combines a [Store] backend with keyword relevance scoring and a short-term
// session buffer to assemble bounded context blocks for prompt injection.
//
// Store backends are pluggable via configuration:
//
//	[storage]
//	provider = "sqlite"   # or "postgres", "memory"
package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DefaultImportance is assigned when a caller does not supply an importance.
const DefaultImportance = 5

// Record represents a stored long-term memory.
type Record struct {
	// ID is an opaque identifier assigned at creation, stable for the
	// record's lifetime.
	ID string `json:"id"`

	// Owner is the user this memory belongs to.
	Owner string `json:"owner"`

	// Category is a free-form tag (e.g. "allergy", "food_preference",
	// "plan"). It drives retrieval filters but is not a closed enum.
	Category string `json:"category"`

	// Content is the natural-language text of the memory. It is the unit
	// of deduplication and relevance scoring.
	Content string `json:"content"`

	// Importance ranges 1-10; higher survives pruning and ranks higher.
	Importance int `json:"importance"`

	// Permanent memories ignore ExpiresAt entirely.
	Permanent bool `json:"permanent"`

	// ExpiresAt, when set and in the past, excludes a non-permanent record
	// from normal retrieval until a cleanup pass removes it.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// Fingerprint is the content-derived dedup key. At most one record
	// exists per (Owner, Fingerprint) pair.
	Fingerprint string `json:"fingerprint"`

	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`

	// AccessCount increments on every touching read and on every
	// re-insertion of identical content.
	AccessCount int `json:"access_count"`

	// Metadata is an opaque JSON-serializable payload. The engine stores
	// it verbatim and never inspects its contents.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Expired reports whether the record is past its expiry at the given time.
// Permanent records never expire.
func (r Record) Expired(now time.Time) bool {
	if r.Permanent || r.ExpiresAt == nil {
		return false
	}
	return r.ExpiresAt.Before(now)
}

// Turn represents one conversation exchange. Turns are append-only and are
// never deduplicated; every exchange is kept.
type Turn struct {
	ID                string    `json:"id"`
	Owner             string    `json:"owner"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
	Timestamp         time.Time `json:"timestamp"`

	// Sentiment is an opaque payload supplied by an external analyzer.
	Sentiment map[string]any `json:"sentiment,omitempty"`

	// Fingerprint of the user message, informational only.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Fingerprint computes the deterministic dedup key for a memory's content.
// Content is lowercased and whitespace-trimmed before hashing, so
// "Coffee " and "coffee" collide for the same owner.
func Fingerprint(owner, content string) string {
	normalized := strings.ToLower(strings.TrimSpace(content))
	sum := sha256.Sum256([]byte(owner + ":" + normalized))
	return hex.EncodeToString(sum[:])
}
