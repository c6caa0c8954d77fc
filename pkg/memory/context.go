package memory

import (
	"context"
	"fmt"
	"strings"
)

const (
	// DefaultContextChars is the context budget when the caller passes none.
	// A character budget, not a token-accurate one; callers needing token
	// exactness must re-budget externally.
	DefaultContextChars = 4000

	// ellipsis marks a truncated context block.
	ellipsis = "..."

	contextTurns     = 3
	contextMemories  = 5
	contextShortTerm = 3

	conversationHeader = "--- Recent Conversation ---"
	memoriesHeader     = "--- Relevant Memories ---"
	sessionHeader      = "--- Current Session ---"
)

// BuildContext assembles the bounded context block handed to the language
// model: recent conversation turns, contextually relevant memories, and the
// short-term session tail, in that fixed order. Empty sections are omitted,
// never replaced with placeholders, so downstream prompt structure stays
// stable. Output never exceeds maxChars plus the ellipsis marker.
func (m *Manager) BuildContext(ctx context.Context, owner, currentMessage string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultContextChars
	}

	var sections []string

	if section := m.conversationSection(ctx, owner); section != "" {
		sections = append(sections, section)
	}

	if section := m.memoriesSection(ctx, owner, currentMessage); section != "" {
		sections = append(sections, section)
	}

	if section := m.shortTermSection(owner); section != "" {
		sections = append(sections, section)
	}

	return truncate(strings.Join(sections, "\n\n"), maxChars)
}

// conversationSection formats the last few turns as alternating speaker
// lines, oldest first.
func (m *Manager) conversationSection(ctx context.Context, owner string) string {
	turns := m.RecentTurns(ctx, owner, contextTurns)
	if len(turns) == 0 {
		return ""
	}

	lines := []string{conversationHeader}
	for _, turn := range turns {
		lines = append(lines,
			fmt.Sprintf("%s: %s", owner, turn.UserMessage),
			fmt.Sprintf("Asena: %s", turn.AssistantResponse),
		)
	}

	return strings.Join(lines, "\n")
}

// memoriesSection formats the most relevant memories as bullet lines.
func (m *Manager) memoriesSection(ctx context.Context, owner, currentMessage string) string {
	records := m.ContextualMemories(ctx, owner, currentMessage, contextMemories)
	if len(records) == 0 {
		return ""
	}

	lines := []string{memoriesHeader}
	for _, rec := range records {
		lines = append(lines, "- "+rec.Content)
	}

	return strings.Join(lines, "\n")
}

// shortTermSection formats the tail of the session buffer as bullet lines.
func (m *Manager) shortTermSection(owner string) string {
	entries := m.ShortTerm(owner)
	if len(entries) == 0 {
		return ""
	}

	if len(entries) > contextShortTerm {
		entries = entries[len(entries)-contextShortTerm:]
	}

	lines := []string{sessionHeader}
	for _, entry := range entries {
		lines = append(lines, "- "+entry.Payload)
	}

	return strings.Join(lines, "\n")
}

// truncate cuts s to maxChars runes and appends the ellipsis marker.
// Rune-based so Turkish content is never split mid-character.
func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + ellipsis
}
