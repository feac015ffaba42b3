package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerRecordsInFirstSeenOrder(t *testing.T) {
	tt := NewTracker()

	for _, op := range []string{"binarize", "clean", "binarize"} {
		ctx := tt.StartTiming(context.Background(), op)
		time.Sleep(time.Millisecond)
		assert.Positive(t, tt.EndTiming(ctx))
	}

	assert.Equal(t, []string{"binarize", "clean"}, tt.Operations())
	assert.Len(t, tt.GetTimings("binarize"), 2)
	assert.GreaterOrEqual(t, tt.Totals()["binarize"], 2*time.Millisecond)
	assert.Positive(t, tt.GetAverageTime("clean"))
}

func TestTrackerIgnoresUnstartedContext(t *testing.T) {
	tt := NewTracker()
	assert.Zero(t, tt.EndTiming(context.Background()))
	assert.Empty(t, tt.Operations())
}

func TestTrackerDisabled(t *testing.T) {
	tt := NewTracker()
	tt.SetEnabled(false)

	ctx := tt.StartTiming(context.Background(), "count")
	tt.EndTiming(ctx)
	assert.Nil(t, tt.GetTimings("count"))
}

func TestTrackerReset(t *testing.T) {
	tt := NewTracker()
	for _, op := range []string{"a", "b"} {
		tt.EndTiming(tt.StartTiming(context.Background(), op))
	}

	tt.Reset("a")
	assert.Equal(t, []string{"b"}, tt.Operations())

	tt.Reset("")
	assert.Empty(t, tt.Totals())
}
