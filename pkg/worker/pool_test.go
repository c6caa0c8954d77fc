package worker

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asenalabs/recall/pkg/logger"
	"github.com/asenalabs/recall/pkg/memory"
	"github.com/asenalabs/recall/pkg/storage/inmemory"
)

// newTestPool creates a worker pool backed by the in-memory store.
// Callers should "pool.Close()" to drain enqueued jobs before asserting
// storage state.
func newTestPool() (*Pool, *inmemory.Store) {
	store := inmemory.NewStore()

	pool, err := NewPool(Config{
		Store:  store,
		Logger: logger.Nop(),
	})
	Expect(err).NotTo(HaveOccurred())

	return pool, store
}

// blockingStore wraps the in-memory store and parks every turn append until
// the gate is closed, so specs can hold the queue full deterministically.
type blockingStore struct {
	*inmemory.Store
	gate chan struct{}
}

func (b *blockingStore) AppendTurn(ctx context.Context, p memory.TurnParams) (string, error) {
	<-b.gate
	return b.Store.AppendTurn(ctx, p)
}

var _ = Describe("Worker Pool", func() {
	var (
		pool  *Pool
		store *inmemory.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		pool, store = newTestPool()
		ctx = context.Background()
	})

	Describe("EnqueueTurn", func() {
		It("returns true when the queue has capacity", func() {
			ok := pool.EnqueueTurn(memory.TurnParams{
				Owner:             "ayse",
				UserMessage:       "merhaba",
				AssistantResponse: "Merhaba!",
			})
			Expect(ok).To(BeTrue())
			pool.Close()
		})

		It("persists the turn after draining", func() {
			pool.EnqueueTurn(memory.TurnParams{Owner: "ayse", UserMessage: "merhaba", AssistantResponse: "Merhaba!"})
			pool.Close()

			turns, err := store.RecentTurns(ctx, "ayse", 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(1))
			Expect(turns[0].UserMessage).To(Equal("merhaba"))
		})

		It("persists every enqueued turn exactly once", func() {
			for i := 0; i < 20; i++ {
				Expect(pool.EnqueueTurn(memory.TurnParams{Owner: "ayse", UserMessage: "merhaba"})).To(BeTrue())
			}
			pool.Close()

			turns, err := store.RecentTurns(ctx, "ayse", 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(20))
		})
	})

	Describe("EnqueueMemory", func() {
		It("persists upserts with dedup intact", func() {
			for i := 0; i < 3; i++ {
				Expect(pool.EnqueueMemory(memory.UpsertParams{Owner: "ayse", Content: "Kahve sever", Importance: 5})).To(BeTrue())
			}
			pool.Close()

			records, err := store.QueryMemories(ctx, memory.QueryParams{Owner: "ayse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].AccessCount).To(Equal(3))
		})
	})

	Describe("backpressure", func() {
		It("drops jobs instead of blocking when the queue is full", func() {
			blocked := &blockingStore{Store: inmemory.NewStore(), gate: make(chan struct{})}

			small, err := NewPool(Config{
				Store:      blocked,
				NumWorkers: 1,
				QueueSize:  1,
				Logger:     logger.Nop(),
			})
			Expect(err).NotTo(HaveOccurred())

			// One job in flight plus one queued is all the pool can hold,
			// so at least one of these must be dropped.
			results := make([]bool, 0, 5)
			for i := 0; i < 5; i++ {
				results = append(results, small.EnqueueTurn(memory.TurnParams{Owner: "ayse", UserMessage: "merhaba"}))
			}
			Expect(results).To(ContainElement(false))

			close(blocked.gate)
			small.Close()
		})
	})

	Describe("Close", func() {
		It("drains in-flight jobs before returning", func() {
			for i := 0; i < 10; i++ {
				pool.EnqueueTurn(memory.TurnParams{Owner: "ayse", UserMessage: "merhaba"})
			}
			pool.Close()

			turns, err := store.RecentTurns(ctx, "ayse", 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(10))
		})
	})
})
