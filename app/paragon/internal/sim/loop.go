// Package sim 固定步长帧循环
package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/world"
	"github.com/lk2023060901/paragon/pkg/config"
	"github.com/lk2023060901/paragon/pkg/logger"
)

var (
	ErrLoopStopped = errors.New("sim: loop stopped")
	ErrQueueFull   = errors.New("sim: command queue full")
	ErrLoopRunning = errors.New("sim: loop already running")
)

// Config 帧循环配置
type Config struct {
	TickRate  int `mapstructure:"tick_rate" validate:"gte=1,lte=240"`
	QueueSize int `mapstructure:"queue_size" validate:"gte=1"`
}

// DefaultConfig 默认 60 帧
func DefaultConfig() *Config {
	return &Config{
		TickRate:  60,
		QueueSize: 256,
	}
}

// Command 在更新线程上执行的命令
type Command func(w *world.World)

// FrameHook 每帧在世界推进前调用，用于脚本输入
type FrameHook func(ctx context.Context, dt float64)

// Loop 固定步长循环，实现 app.Server
type Loop struct {
	logger logger.Logger
	world  *world.World
	step   time.Duration

	commands chan Command

	hookMu sync.Mutex
	hooks  []FrameHook

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool
	stopped atomic.Bool
}

// New 创建帧循环
func New(cfg *Config, w *world.World, l logger.Logger) (*Loop, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "merge sim config")
	}
	if err := config.NewValidator().Validate(merged); err != nil {
		return nil, errors.Wrap(err, "validate sim config")
	}
	if w == nil {
		return nil, errors.New("sim: nil world")
	}
	if l == nil {
		l = logger.NewNoop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		logger:   l.Named("sim"),
		world:    w,
		step:     time.Second / time.Duration(merged.TickRate),
		commands: make(chan Command, merged.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// StepSeconds 每帧时长（秒）
func (l *Loop) StepSeconds() float64 { return l.step.Seconds() }

// World 循环驱动的世界，仅可在更新线程中访问
func (l *Loop) World() *world.World { return l.world }

// OnFrame 注册帧钩子
func (l *Loop) OnFrame(h FrameHook) {
	if h == nil {
		return
	}
	l.hookMu.Lock()
	l.hooks = append(l.hooks, h)
	l.hookMu.Unlock()
}

// Post 投递命令，下一帧在更新线程上执行
func (l *Loop) Post(cmd Command) error {
	if l.stopped.Load() {
		return ErrLoopStopped
	}
	select {
	case l.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Do 投递命令并等待执行完成
func (l *Loop) Do(ctx context.Context, fn func(w *world.World) error) error {
	done := make(chan error, 1)
	if err := l.Post(func(w *world.World) { done <- fn(w) }); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ctx.Done():
		return ErrLoopStopped
	}
}

// Step 同步执行一帧：命令、钩子、世界推进
func (l *Loop) Step() {
	l.runFrame(l.ctx)
}

func (l *Loop) runFrame(ctx context.Context) {
	dt := l.step.Seconds()
	frameCtx := world.WithFrame(ctx, l.world.Frame()+1)

	for drained := false; !drained; {
		select {
		case cmd := <-l.commands:
			l.exec(frameCtx, cmd)
		default:
			drained = true
		}
	}

	l.hookMu.Lock()
	hooks := append([]FrameHook(nil), l.hooks...)
	l.hookMu.Unlock()
	for _, h := range hooks {
		h(frameCtx, dt)
	}

	l.world.Update(dt)
}

func (l *Loop) exec(ctx context.Context, cmd Command) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.ErrorContext(ctx, "command panicked", "panic", r)
		}
	}()
	cmd(l.world)
}

// Start 启动循环，不阻塞
func (l *Loop) Start() error {
	if l.stopped.Load() {
		return ErrLoopStopped
	}
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}

	l.wg.Add(1)
	go l.run()

	l.logger.Info("loop started",
		"tick_rate", int(time.Second/l.step),
		"step", l.step.String(),
	)
	return nil
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.step)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			l.runFrame(l.ctx)
			if cost := time.Since(start); cost > l.step {
				l.logger.WarnContext(world.WithFrame(l.ctx, l.world.Frame()), "frame overrun",
					"cost", cost.String(),
					"step", l.step.String(),
				)
			}
		}
	}
}

// Stop 停止循环并等待当前帧结束
func (l *Loop) Stop() error {
	if !l.stopped.CompareAndSwap(false, true) {
		return nil
	}
	l.cancel()
	l.wg.Wait()
	l.logger.Info("loop stopped", "frame", l.world.Frame())
	return nil
}
