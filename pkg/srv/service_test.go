package srv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	started     chan struct{}
	shutdownErr error

	called      bool
	ctxErr      error
	hasDeadline bool
}

func (r *recordingService) Start(ctx context.Context) error {
	close(r.started)
	return nil
}

func (r *recordingService) Shutdown(ctx context.Context) error {
	r.called = true
	r.ctxErr = ctx.Err()
	_, r.hasDeadline = ctx.Deadline()
	return r.shutdownErr
}

func TestStopOnReturn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &recordingService{started: make(chan struct{})}
	StartServices(ctx, []Service{StopOnReturn(svc, cancel)})

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled after Start returned")
	}
	<-svc.started
}

func TestShutdownServices_FreshDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := &recordingService{started: make(chan struct{})}
	cleaned := false
	ShutdownServices(ctx, []Service{svc, NewCleanup(func() error {
		cleaned = true
		return nil
	})})

	require.True(t, svc.called)
	assert.NoError(t, svc.ctxErr, "shutdown must not inherit the cancelled context")
	assert.True(t, svc.hasDeadline)
	assert.True(t, cleaned)
}
