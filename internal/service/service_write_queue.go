// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-readsync/internal/adapter"
	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// pendingWrite is one queued outbound mutation. execute performs the remote
// write and must be safe to retry; rollback restores the pre-mutation
// snapshot locally and notifies subscribers. rollback is invoked at most
// once, only after execute has permanently failed.
type pendingWrite struct {
	// id correlates every retry and the final outcome of one queued write in
	// the logs. Stamped on enqueue.
	id        string
	articleID string
	action    string
	execute   func(ctx context.Context) error
	rollback  func(ctx context.Context)
}

// writeQueue applies queued mutations to the remote store strictly in FIFO
// order through a single worker goroutine, so two rapid edits to one article
// can never land out of order. Retryable failures (transport, 5xx, 429) are
// retried with exponential backoff within a fixed budget; a non-retryable
// error or an exhausted budget rolls the item back and advances the queue.
type writeQueue struct {
	logger  *logger.Logger
	budget  uint64
	backoff time.Duration

	mu     sync.Mutex
	closed bool
	items  chan pendingWrite
	wg     sync.WaitGroup
}

func newWriteQueue(retryBudget int, retryBackoff time.Duration, logger *logger.Logger) *writeQueue {
	q := &writeQueue{
		logger:  logger,
		budget:  uint64(retryBudget),
		backoff: retryBackoff,
		items:   make(chan pendingWrite, 64),
	}

	q.wg.Add(1)
	go q.run()

	return q
}

// enqueue appends item to the queue. Returns ErrQueueClosed after close and
// ErrQueueFull when the buffer is exhausted. The send never blocks: a worker
// parked in backoff must not be able to wedge callers (or a concurrent close)
// behind the mutex.
func (q *writeQueue) enqueue(item pendingWrite) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	item.id = uuid.NewString()

	select {
	case q.items <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

// close stops accepting new items and blocks until every already-queued item
// has been processed.
func (q *writeQueue) close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.items)
	}
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *writeQueue) run() {
	defer q.wg.Done()

	for item := range q.items {
		q.process(item)
	}
}

func (q *writeQueue) process(item pendingWrite) {
	ctx := q.logger.WithContext(context.Background())

	policy := retry.WithMaxRetries(q.budget, retry.NewExponential(q.backoff))
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		execErr := item.execute(ctx)
		if execErr == nil {
			return nil
		}
		if adapter.Retryable(execErr) {
			return retry.RetryableError(execErr)
		}
		return execErr
	})
	if err == nil {
		return
	}

	q.logger.Error().
		Err(err).
		Str("write_id", item.id).
		Str("id", item.articleID).
		Str("action", item.action).
		Msg("queued remote write permanently failed, rolling back")

	item.rollback(ctx)
}
