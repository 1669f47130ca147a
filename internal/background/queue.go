package background

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task is a unit of best-effort work. Errors are logged and dropped; nothing
// retries and nothing propagates back into the request path.
type Task func(ctx context.Context) error

type job struct {
	name string
	fn   Task
}

// Queue runs tasks on a single worker goroutine. Used for cart mirroring and
// order notifications, where local/request state is authoritative and the
// side effect is eventually-consistent.
type Queue struct {
	jobs    chan job
	done    chan struct{}
	timeout time.Duration

	mu      sync.Mutex
	stopped bool
}

func New(size int) *Queue {
	q := &Queue{
		jobs:    make(chan job, size),
		done:    make(chan struct{}),
		timeout: 10 * time.Second,
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for j := range q.jobs {
		q.exec(j)
	}
}

func (q *Queue) exec(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	if err := j.fn(ctx); err != nil {
		log.Printf("background: %s failed: %v", j.name, err)
	}
}

// Enqueue schedules fn without blocking the caller. If the queue is full or
// already stopped the task is dropped and logged, matching the no-retry
// error model.
func (q *Queue) Enqueue(name string, fn Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		log.Printf("background: queue stopped, dropping %s", name)
		return
	}
	select {
	case q.jobs <- job{name: name, fn: fn}:
	default:
		log.Printf("background: queue full, dropping %s", name)
	}
}

// Stop closes the queue and waits for already-enqueued tasks to finish.
// Safe to call more than once; later Enqueue calls become no-ops.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.stopped = true
	close(q.jobs)
	q.mu.Unlock()
	<-q.done
}
