package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/pkg/logger"
	"golang.org/x/sync/errgroup"
)

var ErrAppAlreadyRunning = errors.New("application is already running")

// Application 应用接口
type Application interface {
	Run() error
	Shutdown() error
	Logger(name string) logger.Logger
}

// Server 需要启动与停止的组件（帧循环、指标 HTTP 服务等），Start 不应阻塞
type Server interface {
	Start() error
	Stop() error
}

// Closer 资源清理接口（Redis、存储等）
type Closer interface {
	Close() error
}

// BaseApp Application 的基础实现
type BaseApp struct {
	opts     Options
	logger   logger.Logger
	registry *LoggerRegistry

	mu      sync.Mutex
	servers []Server
	closers []Closer

	ctx    context.Context
	cancel context.CancelFunc

	started atomic.Bool
	closed  atomic.Bool
}

// NewBaseApp 创建 BaseApp
func NewBaseApp(opts ...Option) *BaseApp {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BaseApp{
		opts:     o,
		logger:   o.Logger.Named("app"),
		registry: NewLoggerRegistry(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ID 应用实例 ID
func (a *BaseApp) ID() string {
	return a.opts.ID
}

// Logger 获取具名 Logger，未注册时返回应用主日志的子 logger
func (a *BaseApp) Logger(name string) logger.Logger {
	return a.registry.Get(name, a.opts.Logger.Named(name))
}

// AppendServer 添加服务，按添加顺序启动
func (a *BaseApp) AppendServer(srv ...Server) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.servers = append(a.servers, srv...)
}

// AppendCloser 添加资源清理组件，关闭时逆序执行
func (a *BaseApp) AppendCloser(closer ...Closer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, closer...)
}

// Run 启动所有服务并阻塞，直到收到信号或调用 Stop
func (a *BaseApp) Run() error {
	if !a.started.CompareAndSwap(false, true) {
		return ErrAppAlreadyRunning
	}

	if len(a.opts.NamedLoggers) > 0 {
		if err := a.registry.InitLoggers(a.opts.NamedLoggers); err != nil {
			return errors.Wrap(err, "init named loggers")
		}
	}

	info := GetInfo()
	a.logger.Info("application starting",
		"name", a.opts.Name,
		"version", info.Version,
		"commit", info.GitCommit,
		"go_version", info.GoVersion,
		"id", a.opts.ID,
	)

	a.mu.Lock()
	servers := append([]Server{}, a.servers...)
	a.mu.Unlock()
	for _, srv := range servers {
		if err := srv.Start(); err != nil {
			a.logger.Error("failed to start server", "error", err)
			_ = a.Shutdown()
			return errors.Wrap(err, "start server")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		a.logger.Info("received signal, shutting down", "signal", sig.String())
	case <-a.ctx.Done():
		a.logger.Info("context cancelled, shutting down")
	}
	return a.Shutdown()
}

// Stop 请求 Run 退出
func (a *BaseApp) Stop() {
	a.cancel()
}

// Shutdown 停止服务并清理资源
func (a *BaseApp) Shutdown() error {
	if !a.closed.CompareAndSwap(false, true) {
		return nil
	}
	a.cancel()

	a.mu.Lock()
	servers := append([]Server{}, a.servers...)
	closers := append([]Closer{}, a.closers...)
	a.mu.Unlock()

	var g errgroup.Group
	for _, srv := range servers {
		s := srv
		g.Go(func() error {
			if err := s.Stop(); err != nil {
				a.logger.Error("failed to stop server", "error", err)
				return err
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	var stopErr error
	select {
	case stopErr = <-done:
		a.logger.Info("all servers stopped")
	case <-time.After(a.opts.StopTimeout):
		a.logger.Warn("shutdown timeout, forcing exit", "timeout", a.opts.StopTimeout)
	}

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			a.logger.Error("failed to close component", "error", err)
		}
	}

	a.registry.SyncAll()
	a.logger.Info("application exited")
	_ = a.logger.Sync()
	return stopErr
}
