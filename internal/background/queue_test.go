package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueRunsEnqueuedTasks(t *testing.T) {
	q := New(8)
	var n int32
	q.Enqueue("a", func(ctx context.Context) error {
		atomic.AddInt32(&n, 1)
		return nil
	})
	q.Enqueue("b", func(ctx context.Context) error {
		atomic.AddInt32(&n, 1)
		return nil
	})
	q.Stop()
	assert.Equal(t, int32(2), atomic.LoadInt32(&n))
}

func TestQueueSwallowsTaskErrors(t *testing.T) {
	q := New(2)
	var ran int32
	q.Enqueue("boom", func(ctx context.Context) error {
		return errors.New("boom")
	})
	q.Enqueue("after", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	q.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran), "a failing task must not stop the worker")
}

func TestEnqueueAfterStopIsDropped(t *testing.T) {
	q := New(4)
	q.Stop()

	assert.NotPanics(t, func() {
		q.Enqueue("late", func(ctx context.Context) error {
			t.Fatal("task must not run after stop")
			return nil
		})
	})
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := &Queue{jobs: make(chan job, 1), done: make(chan struct{})}
	// no worker running: first enqueue fills the buffer, second is dropped
	q.Enqueue("first", func(ctx context.Context) error { return nil })
	q.Enqueue("second", func(ctx context.Context) error { return nil })
	assert.Len(t, q.jobs, 1)
}
