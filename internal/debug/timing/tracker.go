package timing

import (
	"context"
	"sync"
	"time"
)

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// Tracker accumulates wall-clock durations per named operation. It is safe for
// concurrent use.
type Tracker struct {
	timings map[string][]time.Duration
	order   []string
	mu      sync.RWMutex
	enabled bool
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
	}
}

// StartTiming derives a context carrying the start of operation.
func (tt *Tracker) StartTiming(ctx context.Context, operation string) context.Context {
	if !tt.isEnabled() {
		return ctx
	}

	return context.WithValue(ctx, timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: time.Now(),
	})
}

// EndTiming records the time elapsed since the matching StartTiming and
// returns it. Contexts without a start record nothing.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	if !tt.isEnabled() {
		return 0
	}

	timingInfo, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return 0
	}

	duration := time.Since(timingInfo.StartTime)

	tt.mu.Lock()
	if _, seen := tt.timings[timingInfo.Operation]; !seen {
		tt.order = append(tt.order, timingInfo.Operation)
	}
	tt.timings[timingInfo.Operation] = append(tt.timings[timingInfo.Operation], duration)
	tt.mu.Unlock()

	return duration
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

// Operations lists every recorded operation in first-seen order.
func (tt *Tracker) Operations() []string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return append([]string(nil), tt.order...)
}

// Totals sums the recorded durations of every operation.
func (tt *Tracker) Totals() map[string]time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	result := make(map[string]time.Duration, len(tt.timings))
	for operation, timings := range tt.timings {
		var total time.Duration
		for _, d := range timings {
			total += d
		}
		result[operation] = total
	}
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) isEnabled() bool {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
		tt.order = nil
		return
	}

	delete(tt.timings, operation)
	for i, op := range tt.order {
		if op == operation {
			tt.order = append(tt.order[:i], tt.order[i+1:]...)
			break
		}
	}
}
