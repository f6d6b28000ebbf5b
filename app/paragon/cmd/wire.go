//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/lk2023060901/paragon/app/paragon/internal/metrics"
	"github.com/lk2023060901/paragon/pkg/app"
	"github.com/lk2023060901/paragon/pkg/config"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/lk2023060901/paragon/pkg/prometheus"
)

func InitApp(cfg *Config, mgr config.Manager, l logger.Logger) (app.Application, func(), error) {
	panic(wire.Build(
		// 1. 基础框架 (BaseApp)
		app.ProviderSet,
		provideBaseApp,

		// 2. 进程标识与数据表
		provideIDGenerator,
		provideTables,

		// 3. 指标收集
		provideMetricsConfig,
		metrics.New,
		wire.Bind(new(metrics.Recorder), new(*metrics.GameMetrics)),

		// 4. Prometheus 客户端
		providePrometheusConfig,
		prometheus.New,

		// 5. 玩法世界与帧循环
		provideTuningWatcher,
		provideWorld,
		provideLoop,

		// 6. 装备存档（memory / redis）
		provideRedisClient,
		provideStore,
		provideLoadoutKeeper,

		// 7. 演示机器人
		provideBot,

		// 8. 组装
		provideAppComponents,
	))
}
