// internal/app/system/workers/queue.go
package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of detached work. Run receives a context bounded by the
// queue's per-job timeout.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Queue runs fire-and-forget jobs on a fixed set of goroutines.
// Enqueue never blocks the caller; when the buffer is full the job is dropped.
// Job errors and panics are logged and never propagated.
type Queue struct {
	log     *zap.Logger
	jobs    chan Job
	workers int
	timeout time.Duration
	stopCh  chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup
	once    sync.Once
}

// NewQueue creates a queue.
//
// Parameters:
//   - logger: zap logger for job failures
//   - workers: number of goroutines draining the queue (min 1)
//   - depth: buffered capacity; Enqueue drops jobs beyond it
//   - timeout: per-job context deadline (e.g., 10 seconds)
func NewQueue(logger *zap.Logger, workers, depth int, timeout time.Duration) *Queue {
	if workers < 1 {
		workers = 1
	}
	if depth < 1 {
		depth = 1
	}
	return &Queue{
		log:     logger,
		jobs:    make(chan Job, depth),
		workers: workers,
		timeout: timeout,
		stopCh:  make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (q *Queue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
	q.log.Info("job queue started",
		zap.Int("workers", q.workers),
		zap.Int("depth", cap(q.jobs)),
		zap.Duration("job_timeout", q.timeout))
}

// Enqueue schedules job. It reports false if the job was dropped because the
// queue is full or stopped.
func (q *Queue) Enqueue(job Job) bool {
	if q.stopped.Load() {
		q.log.Warn("job dropped: queue stopped", zap.String("job", job.Name))
		return false
	}
	select {
	case q.jobs <- job:
		return true
	default:
		q.log.Warn("job dropped: queue full", zap.String("job", job.Name))
		return false
	}
}

// Stop stops accepting jobs, finishes the ones already buffered, and waits
// for the workers to exit.
func (q *Queue) Stop() {
	q.once.Do(func() {
		q.stopped.Store(true)
		close(q.stopCh)
		q.wg.Wait()
		q.log.Info("job queue stopped")
	})
}

func (q *Queue) run() {
	defer q.wg.Done()
	for {
		select {
		case job := <-q.jobs:
			q.exec(job)
		case <-q.stopCh:
			for {
				select {
				case job := <-q.jobs:
					q.exec(job)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) exec(job Job) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("job panicked", zap.String("job", job.Name), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		q.log.Warn("job failed",
			zap.String("job", job.Name),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		return
	}
	q.log.Debug("job done", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
}
