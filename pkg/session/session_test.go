package session_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asenalabs/recall/pkg/session"
)

func payloads(entries []session.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Payload
	}
	return out
}

var _ = Describe("Buffers", func() {
	var buffers *session.Buffers

	BeforeEach(func() {
		buffers = session.NewBuffers(3)
	})

	Describe("Push and Snapshot", func() {
		It("returns entries oldest first", func() {
			buffers.Push("ayse", "first")
			buffers.Push("ayse", "second")

			Expect(payloads(buffers.Snapshot("ayse"))).To(Equal([]string{"first", "second"}))
		})

		It("stamps entries with a push time", func() {
			buffers.Push("ayse", "item")

			entries := buffers.Snapshot("ayse")
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Timestamp).NotTo(BeZero())
		})

		It("evicts the oldest entry at capacity", func() {
			for i := 1; i <= 5; i++ {
				buffers.Push("ayse", fmt.Sprintf("item-%d", i))
			}

			Expect(payloads(buffers.Snapshot("ayse"))).To(Equal([]string{"item-3", "item-4", "item-5"}))
		})

		It("never grows past capacity", func() {
			for i := 0; i < 100; i++ {
				buffers.Push("ayse", "item")
			}

			Expect(buffers.Snapshot("ayse")).To(HaveLen(3))
		})

		It("keeps owners isolated", func() {
			buffers.Push("ayse", "hers")
			buffers.Push("mehmet", "his")

			Expect(payloads(buffers.Snapshot("ayse"))).To(Equal([]string{"hers"}))
			Expect(payloads(buffers.Snapshot("mehmet"))).To(Equal([]string{"his"}))
		})

		It("returns nil for an unknown owner", func() {
			Expect(buffers.Snapshot("nobody")).To(BeNil())
		})

		It("returns a copy that callers cannot mutate", func() {
			buffers.Push("ayse", "original")

			snap := buffers.Snapshot("ayse")
			snap[0].Payload = "mutated"

			Expect(payloads(buffers.Snapshot("ayse"))).To(Equal([]string{"original"}))
		})
	})

	Describe("Clear", func() {
		It("empties only the given owner's buffer", func() {
			buffers.Push("ayse", "hers")
			buffers.Push("mehmet", "his")

			buffers.Clear("ayse")

			Expect(buffers.Snapshot("ayse")).To(BeNil())
			Expect(buffers.Snapshot("mehmet")).To(HaveLen(1))
		})

		It("is a no-op for an unknown owner", func() {
			Expect(func() { buffers.Clear("nobody") }).NotTo(Panic())
		})
	})

	Describe("NewBuffers", func() {
		It("falls back to the default capacity for non-positive values", func() {
			b := session.NewBuffers(0)
			for i := 0; i < session.DefaultCapacity+5; i++ {
				b.Push("ayse", "item")
			}

			Expect(b.Snapshot("ayse")).To(HaveLen(session.DefaultCapacity))
		})
	})
})
