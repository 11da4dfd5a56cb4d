package worker

import (
	"context"
	"sync"

	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
)

// Job is a unit of background work, such as a full codex refresh.
type Job interface {
	Process(ctx context.Context) error
}

// Pool runs jobs on a fixed set of workers fed from a bounded queue.
type Pool struct {
	workers int
	jobs    chan Job
	quit    chan struct{}
	wg      sync.WaitGroup
}

func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, queueSize),
		quit:    make(chan struct{}),
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			// Each job gets its own request id so its log lines correlate.
			ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "worker", id, "error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue adds a job to the queue, blocking when the queue is full.
func (p *Pool) Enqueue(job Job) {
	p.jobs <- job
}

// TryEnqueue adds a job without blocking. It returns false when the queue is
// full and the job was dropped.
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Stop signals the workers and waits for in-progress jobs to finish.
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
