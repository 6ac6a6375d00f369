// Package queue runs jobs in submission order per key while different keys
// proceed in parallel.
package queue

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/m3rciful/festbot/core/logger"
)

var (
	// ErrQueueClosed is returned when Submit is called after Close.
	ErrQueueClosed = errors.New("queue: closed")
	// ErrQueueFull indicates the key already has MaxPending jobs waiting.
	ErrQueueFull = errors.New("queue: full")
)

// Options controls Keyed behaviour.
type Options struct {
	// MaxPending caps waiting jobs per key; 0 means 64.
	MaxPending int
}

// Keyed is a set of FIFO lanes, one per key. A lane has at most one goroutine
// and that goroutine exits as soon as the lane is empty.
type Keyed struct {
	maxPending int

	mu     sync.Mutex
	lanes  map[int64][]func()
	closed bool
	wg     sync.WaitGroup
	once   sync.Once
}

// New constructs an empty Keyed queue.
func New(opts Options) *Keyed {
	if opts.MaxPending <= 0 {
		opts.MaxPending = 64
	}
	return &Keyed{
		maxPending: opts.MaxPending,
		lanes:      make(map[int64][]func()),
	}
}

// Submit appends job to the lane for key and starts a drainer if none runs.
func (q *Keyed) Submit(key int64, job func()) error {
	if job == nil {
		return errors.New("queue: nil job")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	pending, running := q.lanes[key]
	if len(pending) >= q.maxPending {
		return ErrQueueFull
	}
	q.lanes[key] = append(pending, job)
	if !running {
		q.wg.Add(1)
		go q.drain(key)
	}
	return nil
}

// Pending reports the number of jobs waiting for key, excluding a running one.
func (q *Keyed) Pending(key int64) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lanes[key])
}

// Close rejects new jobs and waits for queued ones to finish.
func (q *Keyed) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		q.wg.Wait()
	})
}

func (q *Keyed) drain(key int64) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		jobs := q.lanes[key]
		if len(jobs) == 0 {
			delete(q.lanes, key)
			q.mu.Unlock()
			return
		}
		job := jobs[0]
		jobs[0] = nil
		q.lanes[key] = jobs[1:]
		q.mu.Unlock()

		run(key, job)
	}
}

// run shields the lane from a panicking job so later jobs still execute.
func run(key int64, job func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(context.Background(), "tg", "queue.panic",
				slog.Int64("user_id", key),
				slog.Any("err", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	job()
}
