// Package relevance scores stored memories against a query string.
//
// Scoring is a cheap keyword proxy for semantic relevance, appropriate to
// the scale of a household assistant (tens to low hundreds of memories per
// user): keyword overlap, importance, recency of update, and access
// frequency sum into an unbounded score. No embeddings, no I/O, no side
// effects.
package relevance

import (
	"strings"
	"time"
	"unicode"
)

// Scoring weights. The total is an unnormalized sum; ties fall back to the
// store's ordering (importance, then last access).
const (
	keywordWeight = 3.0
	prefixBonus   = 1.5

	recencyWeekBonus  = 2.0
	recencyMonthBonus = 1.0

	accessWeight = 0.5
	accessCap    = 3.0
)

// stopWords are dropped during keyword extraction. The Turkish set comes
// from the assistant's original lexicon, with a few common English fillers.
var stopWords = map[string]struct{}{
	"ve": {}, "veya": {}, "ama": {}, "ile": {}, "bir": {}, "bu": {},
	"şu": {}, "o": {}, "de": {}, "da": {}, "ki": {}, "mi": {}, "mı": {},
	"mu": {}, "mü": {}, "ise": {}, "değil": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {},
}

// Candidate is the scoring view of a stored memory. Callers map their
// record type onto it; unparseable fields should be left as zero values,
// which contribute nothing to the score.
type Candidate struct {
	Content     string
	Importance  int
	AccessCount int
	UpdatedAt   time.Time
}

// Keywords extracts the scoring keywords from a query: lowercase, strip
// punctuation, drop tokens of two runes or fewer, drop stop words, and
// deduplicate. Order follows first appearance. Returns nil when the query
// yields nothing, signalling callers to fall back to recency ordering.
func Keywords(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	var keywords []string
	seen := map[string]struct{}{}
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 2 {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	return keywords
}

// Score computes the relevance of a candidate for the given keywords at the
// given time. Each keyword found in the content adds 3.0, plus 1.5 when the
// content starts with it. Importance adds up to 2.0, recency of update adds
// 2.0 within a week or 1.0 within a month, and access frequency adds up to
// 3.0. The sum is unbounded.
func Score(c Candidate, keywords []string, now time.Time) float64 {
	score := 0.0
	content := strings.ToLower(c.Content)

	for _, keyword := range keywords {
		if strings.Contains(content, keyword) {
			score += keywordWeight
			if strings.HasPrefix(content, keyword) {
				score += prefixBonus
			}
		}
	}

	if c.Importance > 0 && c.Importance <= 10 {
		score += (float64(c.Importance) / 10.0) * 2
	}

	if !c.UpdatedAt.IsZero() && !c.UpdatedAt.After(now) {
		age := now.Sub(c.UpdatedAt)
		switch {
		case age <= 7*24*time.Hour:
			score += recencyWeekBonus
		case age <= 30*24*time.Hour:
			score += recencyMonthBonus
		}
	}

	if c.AccessCount > 0 {
		score += min(accessCap, float64(c.AccessCount)*accessWeight)
	}

	return score
}
