// Package worker delivers telemetry events in the background so turns never wait on sinks.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

// Job is one event waiting for delivery.
type Job struct {
	ctx   context.Context
	event ports.Event
}

// Pool forwards events to a downstream sink from a fixed set of workers.
// It is itself a ports.Telemetry.
type Pool struct {
	next    ports.Telemetry
	logger  *zap.Logger
	jobs    chan Job
	workers int
	wg      sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

var _ ports.Telemetry = (*Pool)(nil)

// NewPool creates a pool with the given worker count and queue size.
func NewPool(next ports.Telemetry, logger *zap.Logger, workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		next:    next,
		logger:  logger.Named("worker"),
		jobs:    make(chan Job, queueSize),
		workers: workers,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.next.Capture(job.ctx, job.event)
			}
		}()
	}
}

// Stop drains the queue and waits for workers to finish. Events captured
// afterwards are dropped. Stop may be called more than once.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

// Capture queues the event without blocking. Events are dropped when the queue
// is full or the pool has stopped.
func (p *Pool) Capture(ctx context.Context, e ports.Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.logger.Warn("pool stopped, dropping telemetry event",
			zap.String("turn_id", e.TurnID),
			zap.String("kind", string(e.Kind)),
		)
		return
	}

	select {
	case p.jobs <- Job{ctx: context.WithoutCancel(ctx), event: e}:
	default:
		p.logger.Warn("dropping telemetry event",
			zap.String("turn_id", e.TurnID),
			zap.String("kind", string(e.Kind)),
		)
	}
}
