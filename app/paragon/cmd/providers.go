package main

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/datatable"
	"github.com/lk2023060901/paragon/app/paragon/internal/metrics"
	"github.com/lk2023060901/paragon/app/paragon/internal/script"
	"github.com/lk2023060901/paragon/app/paragon/internal/sim"
	"github.com/lk2023060901/paragon/app/paragon/internal/snapshot"
	"github.com/lk2023060901/paragon/app/paragon/internal/store"
	"github.com/lk2023060901/paragon/app/paragon/internal/world"
	"github.com/lk2023060901/paragon/pkg/app"
	"github.com/lk2023060901/paragon/pkg/config"
	"github.com/lk2023060901/paragon/pkg/database/redis"
	"github.com/lk2023060901/paragon/pkg/gameconfig"
	"github.com/lk2023060901/paragon/pkg/idgen"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/lk2023060901/paragon/pkg/prometheus"
)

// provideBaseApp 提供 BaseApp
func provideBaseApp(cfg *Config, l logger.Logger) *app.BaseApp {
	return app.NewBaseApp(
		app.WithName(app.AppName),
		app.WithLogger(l),
		app.WithNamedLoggers(cfg.Loggers),
	)
}

// provideIDGenerator 物品序列号生成器，同时设为全局生成器
func provideIDGenerator(cfg *Config) (idgen.Generator, error) {
	g, err := idgen.NewSonyflake(cfg.Node.MachineID)
	if err != nil {
		return nil, err
	}
	idgen.Init(g)
	return g, nil
}

// provideTables 加载数据表，未配置目录时使用内置数据
func provideTables(cfg *Config, l logger.Logger) (*datatable.Tables, error) {
	if cfg.Data.Dir == "" {
		return datatable.Default(), nil
	}
	loader, err := gameconfig.NewFileLoader(cfg.Data.Dir, l)
	if err != nil {
		return nil, err
	}
	return datatable.Load(loader)
}

// provideMetricsConfig 提供指标配置
func provideMetricsConfig(cfg *Config) *metrics.Config {
	return &cfg.Metrics
}

// providePrometheusConfig 提供 Prometheus 配置
func providePrometheusConfig(cfg *Config) *prometheus.Config {
	return &cfg.Prometheus
}

// provideTuningWatcher 监听 tuning 子树
func provideTuningWatcher(mgr config.Manager, l logger.Logger) (*config.Watcher[conf.Tuning], error) {
	w, err := config.NewWatcher(mgr, "tuning", conf.DefaultTuning(), (*conf.Tuning).Validate)
	if err != nil {
		return nil, errors.Wrap(err, "load tuning")
	}
	log := l.Named("tuning")
	w.OnError(func(err error) {
		log.Warn("tuning reload rejected, keeping previous values", "error", err)
	})
	return w, nil
}

// provideWorld 创建世界并把 tuning 热更新接到下一帧
func provideWorld(
	l logger.Logger,
	tables *datatable.Tables,
	ids idgen.Generator,
	rec metrics.Recorder,
	tuning *config.Watcher[conf.Tuning],
) (*world.World, error) {
	w, err := world.New(l, tables, ids, rec, tuning.Current())
	if err != nil {
		return nil, err
	}
	tuning.OnChange(w.SetTuning)
	if err := tuning.Start(); err != nil {
		return nil, errors.Wrap(err, "watch tuning")
	}
	return w, nil
}

// provideLoop 提供帧循环
func provideLoop(cfg *Config, w *world.World, l logger.Logger) (*sim.Loop, error) {
	return sim.New(&cfg.Sim, w, l)
}

// provideRedisClient 仅在 redis 驱动下创建客户端
func provideRedisClient(cfg *Config) (*redis.Client, func(), error) {
	if cfg.Store.Driver != store.DriverRedis {
		return nil, func() {}, nil
	}
	c, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = c.Close() }, nil
}

// provideStore 提供装备存档
func provideStore(cfg *Config, rc *redis.Client, l logger.Logger) (store.Store, error) {
	return store.New(&cfg.Store, rc, l)
}

// provideBot 按配置创建演示机器人并挂到帧循环上
func provideBot(cfg *Config, w *world.World, loop *sim.Loop, l logger.Logger) (*script.Bot, error) {
	if !cfg.Script.Enabled {
		return nil, nil
	}
	b, err := script.NewBot(w, &cfg.Script, l)
	if err != nil {
		return nil, err
	}
	loop.OnFrame(b.Tick)
	return b, nil
}

// provideLoadoutKeeper 机器人装备的恢复与保存
func provideLoadoutKeeper(w *world.World, st store.Store, bot *script.Bot, l logger.Logger) *loadoutKeeper {
	return &loadoutKeeper{
		world:  w,
		store:  st,
		bot:    bot,
		logger: l.Named("loadout"),
	}
}

// provideAppComponents 提供应用组件
func provideAppComponents(
	promClient *prometheus.Client,
	gameMetrics *metrics.GameMetrics,
	loop *sim.Loop,
	st store.Store,
	keeper *loadoutKeeper,
) (app.Components, error) {
	// 注册玩法指标到 Prometheus
	if err := promClient.Register(gameMetrics.Collectors()...); err != nil {
		return app.Components{}, err
	}

	return app.Components{
		Servers: []app.Server{
			promClient,
			keeper, // 必须在帧循环启动前恢复
			loop,
		},
		Closers: []app.Closer{
			st,
			keeper, // 逆序关闭：先保存再关闭存储
		},
	}, nil
}

// loadoutKeeper 启动时恢复机器人装备，退出时（帧循环已停止）保存
type loadoutKeeper struct {
	world  *world.World
	store  store.Store
	bot    *script.Bot
	logger logger.Logger
}

const keeperTimeout = 5 * time.Second

func (k *loadoutKeeper) name() string {
	if a := k.world.Agents().Get(k.bot.Agent()); a != nil {
		return a.Name
	}
	return ""
}

func (k *loadoutKeeper) Start() error {
	if k.bot == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), keeperTimeout)
	defer cancel()

	name := k.name()
	l, err := k.store.Load(ctx, name)
	if errors.Is(err, store.ErrLoadoutNotFound) {
		return nil
	}
	if err != nil {
		k.logger.Warn("load loadout failed, starting empty", "agent", name, "error", err)
		return nil
	}
	if err := snapshot.Restore(k.world, k.bot.Agent(), l); err != nil {
		k.logger.Warn("restore loadout failed", "agent", name, "error", err)
		return nil
	}
	k.logger.Info("loadout restored", "agent", name, "items", len(l.Items))
	return nil
}

func (k *loadoutKeeper) Stop() error { return nil }

func (k *loadoutKeeper) Close() error {
	if k.bot == nil {
		return nil
	}
	l, err := snapshot.Capture(k.world, k.bot.Agent())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), keeperTimeout)
	defer cancel()
	if err := k.store.Save(ctx, l.Agent, l); err != nil {
		return errors.Wrap(err, "save loadout")
	}
	k.logger.Info("loadout saved", "agent", l.Agent, "items", len(l.Items))
	return nil
}
