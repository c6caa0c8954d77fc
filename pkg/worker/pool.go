// Package worker provides an asynchronous worker pool for persisting
// conversation turns and memory upserts using the provided memory.Store.
//
// The pool decouples storage writes from the chat handler's hot path so the
// user-assistant exchange never waits on disk. Jobs are dropped (and logged)
// when the queue is full; losing a memory write under pressure is preferred
// over stalling a conversation.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/asenalabs/recall/pkg/memory"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// Job is a unit of work for the worker pool to execute against. Exactly one
// of Turn or Memory is set.
type Job struct {
	Turn   *memory.TurnParams
	Memory *memory.UpsertParams
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Store is the backend jobs are written to.
	Store memory.Store

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// Logger receives worker lifecycle and failure logs.
	Logger *slog.Logger
}

// Pool processes storage jobs asynchronously via a worker pool.
type Pool struct {
	store  memory.Store
	queue  chan Job
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c Config) (*Pool, error) {
	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		store:  c.Store,
		queue:  make(chan Job, c.QueueSize),
		logger: logger,
	}

	p.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go p.worker(i)
	}

	return p, nil
}

// EnqueueTurn submits a conversation turn for background persistence.
// Returns false if the queue is full and the turn was dropped.
func (p *Pool) EnqueueTurn(params memory.TurnParams) bool {
	return p.enqueue(Job{Turn: &params})
}

// EnqueueMemory submits a memory upsert for background persistence.
// Returns false if the queue is full and the upsert was dropped.
func (p *Pool) EnqueueMemory(params memory.UpsertParams) bool {
	return p.enqueue(Job{Memory: &params})
}

func (p *Pool) enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("job queued", "owner", job.owner())
		return true
	default:
		p.logger.Error("job not queued, queue full, job dropped", "owner", job.owner())
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain.
// Call this during graceful shutdown after request handling has stopped.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// worker is the inner worker goroutine that continuously pulls jobs off the
// queue.
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", "worker_id", id)

	for job := range p.queue {
		p.processJob(job)
	}

	p.logger.Debug("worker stopped", "worker_id", id)
}

func (p *Pool) processJob(job Job) {
	ctx := context.Background()

	switch {
	case job.Turn != nil:
		id, err := p.store.AppendTurn(ctx, *job.Turn)
		if err != nil {
			p.logger.Error("async turn persistence failed", "owner", job.Turn.Owner, "error", err)
			return
		}
		p.logger.Debug("turn stored", "owner", job.Turn.Owner, "id", id)

	case job.Memory != nil:
		result, err := p.store.UpsertMemory(ctx, *job.Memory)
		if err != nil {
			p.logger.Error("async memory persistence failed", "owner", job.Memory.Owner, "error", err)
			return
		}
		p.logger.Debug("memory stored", "owner", job.Memory.Owner, "id", result.ID, "created", result.Created)
	}
}

func (j Job) owner() string {
	switch {
	case j.Turn != nil:
		return j.Turn.Owner
	case j.Memory != nil:
		return j.Memory.Owner
	}
	return ""
}
