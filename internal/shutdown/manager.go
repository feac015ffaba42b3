package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"object-counter/internal/logger"
)

type Shutdownable interface {
	Shutdown()
}

// ShutdownFunc adapts a function to Shutdownable.
type ShutdownFunc func()

func (f ShutdownFunc) Shutdown() { f() }

const defaultComponentTimeout = 10 * time.Second

// Manager cancels the run context on SIGINT/SIGTERM and shuts registered
// components down in reverse registration order.
type Manager struct {
	components []Shutdownable
	logger     logger.Logger
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
	timeout    time.Duration
}

func NewManager(parent context.Context, log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(parent)

	return &Manager{
		components: make([]Shutdownable, 0),
		logger:     log,
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		timeout:    defaultComponentTimeout,
	}
}

func (m *Manager) Register(component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component)
}

// Listen starts watching for termination signals. The returned function stops
// watching.
func (m *Manager) Listen() func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	stop := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
		case <-stop:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(stop)
		})
	}
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		component := m.components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			component.Shutdown()
		}()

		select {
		case <-done:
		case <-time.After(m.timeout):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component_index": i,
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

// Context is cancelled when shutdown starts.
func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
