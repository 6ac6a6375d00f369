package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedPreservesPerKeyOrder(t *testing.T) {
	q := New(Options{MaxPending: 1000})

	var mu sync.Mutex
	seen := map[int64][]int{}
	for i := 0; i < 200; i++ {
		key := int64(i % 4)
		n := i
		require.NoError(t, q.Submit(key, func() {
			mu.Lock()
			seen[key] = append(seen[key], n)
			mu.Unlock()
		}))
	}
	q.Close()

	for key, got := range seen {
		require.Len(t, got, 50, "key %d", key)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i], "key %d out of order", key)
		}
	}
}

func TestKeyedRunsKeysConcurrently(t *testing.T) {
	q := New(Options{})
	defer q.Close()

	release := make(chan struct{})
	started := make(chan struct{}, 2)
	for _, key := range []int64{1, 2} {
		require.NoError(t, q.Submit(key, func() {
			started <- struct{}{}
			<-release
		}))
	}
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("jobs for different keys should run in parallel")
		}
	}
	close(release)
}

func TestKeyedSurvivesPanic(t *testing.T) {
	q := New(Options{})
	var ran atomic.Bool
	require.NoError(t, q.Submit(9, func() { panic("boom") }))
	require.NoError(t, q.Submit(9, func() { ran.Store(true) }))
	q.Close()
	assert.True(t, ran.Load())
}

func TestKeyedLimitsAndClose(t *testing.T) {
	q := New(Options{MaxPending: 1})
	block := make(chan struct{})
	require.NoError(t, q.Submit(1, func() { <-block }))

	// The first job may still be queued or already running; fill the lane.
	for q.Pending(1) != 0 {
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, q.Submit(1, func() {}))
	assert.ErrorIs(t, q.Submit(1, func() {}), ErrQueueFull)

	close(block)
	q.Close()
	assert.ErrorIs(t, q.Submit(1, func() {}), ErrQueueClosed)
}
