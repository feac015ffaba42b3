// Package services runs counting jobs in bulk.
package services

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"object-counter/internal/logger"
	"object-counter/internal/models"
)

// Processor counts one job. *pipeline.Coordinator is the production
// implementation.
type Processor interface {
	ProcessFile(ctx context.Context, job models.Job) (*models.Result, error)
}

// ErrSkipped marks jobs that were never started because the batch was
// cancelled.
var ErrSkipped = errors.New("job skipped")

// Outcome is the result of one job. Result may be set even when Err is, for
// example when counting succeeded but writing the overlay failed.
type Outcome struct {
	Job    models.Job
	Result *models.Result
	Err    error
}

// BatchService runs jobs on a bounded pool of workers. A failing job never
// stops the others.
type BatchService struct {
	processor Processor
	workers   int
	logger    logger.Logger
}

// NewBatchService uses runtime.NumCPU workers when workers is not positive.
func NewBatchService(processor Processor, workers int, log logger.Logger) *BatchService {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchService{processor: processor, workers: workers, logger: log}
}

// Run processes every job and returns a report with outcomes in job order.
// The returned error combines every per-job failure, or is nil.
func (b *BatchService) Run(ctx context.Context, jobs []models.Job) (*Report, error) {
	start := time.Now()
	outcomes := make([]Outcome, len(jobs))
	for i, job := range jobs {
		outcomes[i] = Outcome{Job: job, Err: ErrSkipped}
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(b.workers)

	for i, job := range jobs {
		if ctx.Err() != nil {
			b.logger.Warning("BatchService", "batch cancelled, skipping remaining jobs", map[string]interface{}{
				"remaining": len(jobs) - i,
			})
			break
		}

		i, job := i, job
		g.Go(func() error {
			result, err := b.processor.ProcessFile(ctx, job)
			if err != nil {
				b.logger.Error("BatchService", err, map[string]interface{}{"input": job.Input})
			}

			mu.Lock()
			outcomes[i] = Outcome{Job: job, Result: result, Err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Outcomes: outcomes, Elapsed: time.Since(start)}
	var errs error
	for _, o := range outcomes {
		errs = multierr.Append(errs, o.Err)
	}

	b.logger.Info("BatchService", "batch complete", map[string]interface{}{
		"jobs":      len(jobs),
		"succeeded": report.Succeeded(),
		"failed":    report.Failed(),
		"elapsed":   report.Elapsed.String(),
	})

	return report, errs
}
