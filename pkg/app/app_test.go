package app

import (
	"sync"
	"testing"
	"time"

	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingServer struct {
	mu      sync.Mutex
	started bool
	stopped bool
	ready   chan struct{}
}

func (s *recordingServer) Start() error {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	close(s.ready)
	return nil
}

func (s *recordingServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

// TestBaseAppLifecycle 测试启动、停止与 Closer 逆序关闭
func TestBaseAppLifecycle(t *testing.T) {
	a := NewBaseApp(WithLogger(logger.NewNoop()), WithName("test"), WithStopTimeout(time.Second))
	srv := &recordingServer{ready: make(chan struct{})}

	var order []string
	a.AppendServer(srv)
	a.AppendCloser(
		CloserFunc(func() error { order = append(order, "first"); return nil }),
		CloserFunc(func() error { order = append(order, "second"); return nil }),
	)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	select {
	case <-srv.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("server not started")
	}
	assert.ErrorIs(t, a.Run(), ErrAppAlreadyRunning)

	a.Stop()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit")
	}

	assert.True(t, srv.stopped)
	assert.Equal(t, []string{"second", "first"}, order)
	assert.NoError(t, a.Shutdown())
}

// TestAssemble 测试 Wire 组装
func TestAssemble(t *testing.T) {
	a := NewBaseApp(WithLogger(logger.NewNoop()))
	srv := &recordingServer{ready: make(chan struct{})}
	app := Assemble(a, Components{Servers: []Server{srv}})
	assert.Same(t, a, app)
	assert.Len(t, a.servers, 1)
	assert.NotEmpty(t, a.ID())
	assert.NotNil(t, a.Logger("combat"))
}
