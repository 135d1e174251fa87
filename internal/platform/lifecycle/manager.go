// Package lifecycle ordena el apagado de los procesos: el server (http,
// postgres, redis) y el CLI en modo -watch (cron de recordatorios, logout).
package lifecycle

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pettrackr/internal/platform/logger"
)

const DefaultTimeout = 15 * time.Second

// ShutdownFunc cierra un componente dentro del deadline de ctx.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

// Manager corre los hooks en orden inverso al registro (LIFO): lo que se
// levantó último se baja primero. Registrar en el orden en que se arma.
type Manager struct {
	timeout time.Duration
	log     logger.Logger

	mu    sync.Mutex
	hooks []hook
	done  bool
}

func New(timeout time.Duration, log logger.Logger) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{timeout: timeout, log: log}
}

func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// RegisterCloser para *sql.DB, *redis.Client y similares.
func (m *Manager) RegisterCloser(name string, c io.Closer) {
	if c == nil {
		return
	}
	m.Register(name, func(context.Context) error { return c.Close() })
}

// Shutdown corre los hooks una sola vez; las llamadas siguientes no hacen nada.
// Un hook que falla no frena a los demás; los errores se juntan.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return nil
	}
	m.done = true
	hooks := m.hooks
	m.hooks = nil
	m.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		start := time.Now()
		if err := h.fn(ctx); err != nil {
			m.log.Error("lifecycle.stop_failed", map[string]any{"component": h.name, "error": err})
			errs = append(errs, err)
			continue
		}
		m.log.Info("lifecycle.stopped", map[string]any{
			"component":   h.name,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
	return errors.Join(errs...)
}

// Signals devuelve un ctx que se cancela con SIGINT/SIGTERM. stop libera
// el handler de señales.
func (m *Manager) Signals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			m.log.Info("lifecycle.signal", map[string]any{"signal": sig.String()})
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
