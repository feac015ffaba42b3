package shutdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"object-counter/internal/logger"
)

func TestShutdownRunsComponentsInReverseOrder(t *testing.T) {
	m := NewManager(context.Background(), logger.NewNop())

	var order []string
	m.Register(ShutdownFunc(func() { order = append(order, "viewer") }))
	m.Register(ShutdownFunc(func() { order = append(order, "batch") }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"batch", "viewer"}, order)
	assert.ErrorIs(t, m.Context().Err(), context.Canceled)

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownDoesNotWaitForeverOnStuckComponent(t *testing.T) {
	m := NewManager(context.Background(), logger.NewNop())
	m.timeout = 10 * time.Millisecond

	block := make(chan struct{})
	defer close(block)
	m.Register(ShutdownFunc(func() { <-block }))

	finished := make(chan struct{})
	go func() {
		m.Shutdown()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("shutdown blocked on a stuck component")
	}
}

func TestParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	m := NewManager(parent, logger.NewNop())
	stop := m.Listen()
	defer stop()

	cancel()
	assert.ErrorIs(t, m.Context().Err(), context.Canceled)
	stop()
}
