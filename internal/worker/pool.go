// Package worker persists search reports off the request path.
package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

const saveTimeout = 5 * time.Second

// Job carries one report to persist.
type Job struct {
	Report domain.SearchReport
}

// Pool manages background workers for history writes.
type Pool struct {
	repo   ports.HistoryRepository
	logger *zap.Logger
	jobs   chan Job
	wg     sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.HistoryRepository, queueSize int, logger *zap.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{repo: repo, logger: logger, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking. A full queue drops the job; history
// is advisory and must never stall a search.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		p.logger.Warn("history queue full, dropping report",
			zap.String("report_id", job.Report.ID))
	}
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := p.repo.Save(ctx, job.Report); err != nil {
		p.logger.Warn("failed to persist report",
			zap.String("report_id", job.Report.ID),
			zap.Error(err))
	}
}
