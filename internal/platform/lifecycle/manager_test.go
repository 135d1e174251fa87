package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pettrackr/internal/platform/logger"
)

func TestManager_ShutdownRunsHooksInReverse(t *testing.T) {
	m := New(0, nil)

	var order []string
	m.Register("postgres", func(ctx context.Context) error {
		order = append(order, "postgres")
		return nil
	})
	m.Register("http", func(ctx context.Context) error {
		order = append(order, "http")
		return nil
	})
	m.Register("nil", nil)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"http", "postgres"}, order)
}

func TestManager_ShutdownJoinsErrorsAndKeepsGoing(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := New(0, logger.FromZap(zap.New(core)))
	errA := errors.New("a")
	called := false

	m.Register("b", func(ctx context.Context) error {
		called = true
		return nil
	})
	m.Register("a", func(ctx context.Context) error { return errA })

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, errA)
	assert.True(t, called)
	assert.Equal(t, 1, logs.FilterMessage("lifecycle.stop_failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("lifecycle.stopped").Len())
}

func TestManager_ShutdownRunsOnce(t *testing.T) {
	m := New(0, nil)
	calls := 0
	m.Register("reminders", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestManager_HooksGetDeadline(t *testing.T) {
	m := New(30*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func TestManager_RegisterCloser(t *testing.T) {
	m := New(0, nil)
	c := &closer{}
	m.RegisterCloser("redis", c)
	m.RegisterCloser("none", nil)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.True(t, c.closed)
}

func TestManager_SignalsCtxFollowsParent(t *testing.T) {
	m := New(0, nil)
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, stop := m.Signals(parent)
	defer stop()

	cancelParent()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("ctx should follow its parent")
	}
}
