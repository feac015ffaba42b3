package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"object-counter/internal/logger"
	"object-counter/internal/models"
)

type fakeProcessor struct {
	counts   map[string]int
	failures map[string]error

	mu       sync.Mutex
	seen     []string
	active   atomic.Int32
	peak     atomic.Int32
	release  chan struct{}
	onSubmit func(string)
}

func (f *fakeProcessor) ProcessFile(ctx context.Context, job models.Job) (*models.Result, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if f.onSubmit != nil {
		f.onSubmit(job.Input)
	}
	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	f.seen = append(f.seen, job.Input)
	f.mu.Unlock()

	if err := f.failures[job.Input]; err != nil {
		return nil, err
	}
	return &models.Result{Path: job.Input, Count: f.counts[job.Input]}, nil
}

func jobs(inputs ...string) []models.Job {
	out := make([]models.Job, len(inputs))
	for i, in := range inputs {
		out[i] = models.Job{Input: in, Config: models.DefaultConfig()}
	}
	return out
}

func TestRunContinuesPastFailures(t *testing.T) {
	errA := errors.New("decode failed")
	errC := errors.New("disk full")
	p := &fakeProcessor{
		counts:   map[string]int{"b.png": 4, "d.png": 6},
		failures: map[string]error{"a.png": errA, "c.png": errC},
	}

	report, err := NewBatchService(p, 2, logger.NewNop()).Run(context.Background(), jobs("a.png", "b.png", "c.png", "d.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)
	assert.Len(t, multierr.Errors(err), 2)

	assert.Len(t, p.seen, 4)
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 2, report.Failed())
	assert.Equal(t, 10, report.Total())

	assert.Equal(t, "b.png", report.Outcomes[1].Result.Path)
	assert.Nil(t, report.Outcomes[0].Result)
}

func TestRunRespectsWorkerLimit(t *testing.T) {
	p := &fakeProcessor{release: make(chan struct{})}
	go func() {
		for i := 0; i < 6; i++ {
			p.release <- struct{}{}
		}
	}()

	report, err := NewBatchService(p, 2, logger.NewNop()).Run(context.Background(), jobs("1", "2", "3", "4", "5", "6"))
	require.NoError(t, err)
	assert.Equal(t, 6, report.Succeeded())
	assert.LessOrEqual(t, p.peak.Load(), int32(2))
}

func TestRunSkipsAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &fakeProcessor{onSubmit: func(input string) {
		if input == "first" {
			cancel()
		}
	}}

	report, err := NewBatchService(p, 1, logger.NewNop()).Run(ctx, jobs("first", "second", "third"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSkipped)
	assert.NoError(t, report.Outcomes[0].Err)
	assert.ErrorIs(t, report.Outcomes[2].Err, ErrSkipped)
}

func TestRunEmptyBatch(t *testing.T) {
	report, err := NewBatchService(&fakeProcessor{}, 0, logger.NewNop()).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, report.Total())
	assert.Equal(t, Stats{}, report.Stats())
}

func TestReportStatsAndTable(t *testing.T) {
	report := &Report{Outcomes: []Outcome{
		{Job: models.Job{Input: "a.png"}, Result: &models.Result{Count: 2}},
		{Job: models.Job{Input: "b.png"}, Result: &models.Result{Count: 4}},
		{Job: models.Job{Input: "c.png"}, Result: &models.Result{Count: 9}},
		{Job: models.Job{Input: "d.png"}, Err: errors.New("unreadable")},
	}}

	s := report.Stats()
	assert.Equal(t, 3, s.Images)
	assert.InDelta(t, 5, s.Mean, 1e-9)
	assert.Equal(t, 4.0, s.Median)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)

	out := report.Table()
	assert.Contains(t, out, "a.png")
	assert.Contains(t, out, "unreadable")
	assert.Contains(t, strings.ToUpper(out), "3 OK, 1 FAILED")
	assert.Contains(t, strings.ToUpper(out), "OBJECTS")
	assert.Equal(t, 15, report.Total())
}
