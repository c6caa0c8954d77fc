package relevance_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asenalabs/recall/pkg/relevance"
)

var _ = Describe("Keywords", func() {
	It("lowercases and strips punctuation", func() {
		Expect(relevance.Keywords("Kahve, SEKER misin?")).To(Equal([]string{"kahve", "seker", "misin"}))
	})

	It("drops tokens of two runes or fewer", func() {
		Expect(relevance.Keywords("go to ev kahve")).To(Equal([]string{"kahve"}))
	})

	It("drops Turkish and English stop words", func() {
		Expect(relevance.Keywords("kahve ve çay ile the süt")).To(Equal([]string{"kahve", "çay", "süt"}))
	})

	It("deduplicates keeping first-appearance order", func() {
		Expect(relevance.Keywords("kahve süt kahve şeker süt")).To(Equal([]string{"kahve", "süt", "şeker"}))
	})

	It("returns nil for an empty query", func() {
		Expect(relevance.Keywords("")).To(BeNil())
	})

	It("returns nil when nothing survives filtering", func() {
		Expect(relevance.Keywords("ve de o, mi!")).To(BeNil())
	})

	It("counts runes, not bytes, for short-token filtering", func() {
		// "çay" is 3 runes but 4 bytes; it must survive.
		Expect(relevance.Keywords("çay")).To(Equal([]string{"çay"}))
	})
})

var _ = Describe("Score", func() {
	var now time.Time

	BeforeEach(func() {
		now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	})

	It("scores zero for an all-zero candidate with no keywords", func() {
		Expect(relevance.Score(relevance.Candidate{}, nil, now)).To(BeZero())
	})

	It("adds 3.0 per matching keyword", func() {
		c := relevance.Candidate{Content: "sabahları kahve içer"}
		Expect(relevance.Score(c, []string{"kahve"}, now)).To(Equal(3.0))
		Expect(relevance.Score(c, []string{"kahve", "içer"}, now)).To(Equal(6.0))
	})

	It("adds the 1.5 prefix bonus when content starts with the keyword", func() {
		c := relevance.Candidate{Content: "kahve sever"}
		Expect(relevance.Score(c, []string{"kahve"}, now)).To(Equal(4.5))
	})

	It("matches keywords case-insensitively against content", func() {
		c := relevance.Candidate{Content: "KAHVE sever"}
		Expect(relevance.Score(c, []string{"kahve"}, now)).To(Equal(4.5))
	})

	It("scales importance into at most 2.0", func() {
		Expect(relevance.Score(relevance.Candidate{Importance: 5}, nil, now)).To(Equal(1.0))
		Expect(relevance.Score(relevance.Candidate{Importance: 10}, nil, now)).To(Equal(2.0))
	})

	It("ignores out-of-range importance", func() {
		Expect(relevance.Score(relevance.Candidate{Importance: -3}, nil, now)).To(BeZero())
		Expect(relevance.Score(relevance.Candidate{Importance: 11}, nil, now)).To(BeZero())
	})

	It("adds 2.0 for updates within a week", func() {
		c := relevance.Candidate{UpdatedAt: now.Add(-3 * 24 * time.Hour)}
		Expect(relevance.Score(c, nil, now)).To(Equal(2.0))
	})

	It("adds 1.0 for updates within a month but past a week", func() {
		c := relevance.Candidate{UpdatedAt: now.Add(-20 * 24 * time.Hour)}
		Expect(relevance.Score(c, nil, now)).To(Equal(1.0))
	})

	It("adds nothing for updates older than a month", func() {
		c := relevance.Candidate{UpdatedAt: now.Add(-45 * 24 * time.Hour)}
		Expect(relevance.Score(c, nil, now)).To(BeZero())
	})

	It("ignores zero and future update times", func() {
		Expect(relevance.Score(relevance.Candidate{}, nil, now)).To(BeZero())
		c := relevance.Candidate{UpdatedAt: now.Add(time.Hour)}
		Expect(relevance.Score(c, nil, now)).To(BeZero())
	})

	It("adds 0.5 per access, capped at 3.0", func() {
		Expect(relevance.Score(relevance.Candidate{AccessCount: 2}, nil, now)).To(Equal(1.0))
		Expect(relevance.Score(relevance.Candidate{AccessCount: 6}, nil, now)).To(Equal(3.0))
		Expect(relevance.Score(relevance.Candidate{AccessCount: 100}, nil, now)).To(Equal(3.0))
	})

	It("sums all factors without an upper bound", func() {
		c := relevance.Candidate{
			Content:     "kahve sever ve her sabah kahve ister",
			Importance:  10,
			AccessCount: 50,
			UpdatedAt:   now.Add(-time.Hour),
		}
		// keyword 3.0 + prefix 1.5 + importance 2.0 + recency 2.0 + access 3.0
		Expect(relevance.Score(c, []string{"kahve"}, now)).To(Equal(11.5))
	})

	It("never scores a non-matching candidate above a matching one with equal metadata", func() {
		match := relevance.Candidate{Content: "kahve sever", Importance: 5}
		miss := relevance.Candidate{Content: "çay sever", Importance: 5}
		kw := []string{"kahve"}
		Expect(relevance.Score(match, kw, now)).To(BeNumerically(">", relevance.Score(miss, kw, now)))
	})
})
