package main

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/metrics"
	"github.com/lk2023060901/paragon/app/paragon/internal/script"
	"github.com/lk2023060901/paragon/app/paragon/internal/sim"
	"github.com/lk2023060901/paragon/app/paragon/internal/store"
	"github.com/lk2023060901/paragon/app/paragon/internal/world"
	"github.com/lk2023060901/paragon/pkg/app"
	"github.com/lk2023060901/paragon/pkg/database/redis"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/lk2023060901/paragon/pkg/prometheus"
)

// NodeConfig 进程标识
type NodeConfig struct {
	// MachineID 物品序列号的机器位，共用同一存档后端的进程必须不同
	MachineID uint16 `mapstructure:"machine_id"`
}

// DataConfig 数据表目录
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// Config 定义 Paragon 服务的完整配置结构
type Config struct {
	Log     logger.Config             `mapstructure:"log"`
	Loggers map[string]*logger.Config `mapstructure:"loggers"`

	Node NodeConfig `mapstructure:"node"`
	Data DataConfig `mapstructure:"data"`

	// 玩法参数，支持热更新
	Tuning conf.Tuning `mapstructure:"tuning"`

	// 帧循环
	Sim sim.Config `mapstructure:"sim"`

	// Prometheus 配置
	Prometheus prometheus.Config `mapstructure:"prometheus"`

	// 指标配置
	Metrics metrics.Config `mapstructure:"metrics"`

	// 装备存档
	Store store.Config `mapstructure:"store"`
	Redis redis.Config `mapstructure:"redis"`

	// 演示机器人
	Script script.Config `mapstructure:"script"`
}

func main() {
	var cfg Config

	// 1. 加载配置
	mgr, err := app.LoadConfig(&cfg)
	if err != nil {
		panic(err)
	}

	// 2. 初始化主日志
	l, err := logger.New(&cfg.Log, logger.WithContextExtractor(world.ContextExtractor))
	if err != nil {
		panic(err)
	}

	// 3. 通过 Wire 初始化应用
	application, cleanup, err := InitApp(&cfg, mgr, l)
	if err != nil {
		l.Error("failed to initialize application", "error", err)
		return
	}
	defer cleanup()

	// 4. 运行服务
	if err := application.Run(); err != nil {
		l.Error("application exited with error", "error", err)
	}
}
