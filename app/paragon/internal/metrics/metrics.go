// Package metrics 玩法指标
package metrics

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder 玩法服务使用的指标接口
type Recorder interface {
	Shot()
	Reload(result string)
	AmmoTransferred(ammoType string, n int)
	Pickup(kind string)
	Swap()
	Drop()
	FlightStarted()
	FlightFinished(d time.Duration)
	// FlightAborted 飞行被重启、取消或物品被销毁，不计入飞行耗时
	FlightAborted()
	Frame(d time.Duration)
	Noop(op string)
}

// 换弹结果
const (
	ReloadStarted   = "started"
	ReloadCompleted = "completed"
	ReloadCancelled = "cancelled"
)

// Config 指标配置
type Config struct {
	// Namespace 指标命名空间
	Namespace string `mapstructure:"namespace" json:"namespace" yaml:"namespace"`
	// Subsystem 指标子系统
	Subsystem string `mapstructure:"subsystem" json:"subsystem" yaml:"subsystem"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Namespace: "paragon",
		Subsystem: "gameplay",
	}
}

// GameMetrics 玩法指标
type GameMetrics struct {
	config *Config

	// 战斗
	Shots         prometheus.Counter
	Reloads       *prometheus.CounterVec // result: started/completed/cancelled
	AmmoTransfers *prometheus.CounterVec // ammo_type

	// 拾取与背包
	Pickups *prometheus.CounterVec // kind: weapon/ammo
	Swaps   prometheus.Counter
	Drops   prometheus.Counter

	// 飞行
	ActiveFlights  prometheus.Gauge
	FlightDuration prometheus.Histogram

	// 帧
	FrameDuration prometheus.Histogram

	// 条件不满足被忽略的请求
	NoopRequests *prometheus.CounterVec // op
}

// New 创建玩法指标
func New(cfg *Config) (*GameMetrics, error) {
	newCfg, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge metrics config")
	}

	ns, sub := newCfg.Namespace, newCfg.Subsystem
	m := &GameMetrics{
		config: newCfg,

		Shots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "shots_total",
			Help: "开火总数",
		}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "reloads_total",
			Help: "换弹次数（按结果）",
		}, []string{"result"}),
		AmmoTransfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "ammo_transferred_total",
			Help: "从弹药账本装入弹匣的子弹数",
		}, []string{"ammo_type"}),

		Pickups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "pickups_total",
			Help: "拾取完成次数（按物品种类）",
		}, []string{"kind"}),
		Swaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "swaps_total",
			Help: "背包已满时的交换次数",
		}),
		Drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "drops_total",
			Help: "丢弃物品次数",
		}),

		ActiveFlights: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub,
			Name: "active_flights",
			Help: "正在飞向持有者的物品数",
		}),
		FlightDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: sub,
			Name:    "flight_duration_seconds",
			Help:    "物品飞行耗时",
			Buckets: []float64{0.1, 0.25, 0.5, 0.7, 1, 2},
		}),

		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: sub,
			Name:    "frame_duration_seconds",
			Help:    "单帧更新耗时",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),

		NoopRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "noop_requests_total",
			Help: "条件不满足而被忽略的请求（按操作）",
		}, []string{"op"}),
	}

	return m, nil
}

// Collectors 返回所有需要注册的采集器
func (m *GameMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Shots,
		m.Reloads,
		m.AmmoTransfers,
		m.Pickups,
		m.Swaps,
		m.Drops,
		m.ActiveFlights,
		m.FlightDuration,
		m.FrameDuration,
		m.NoopRequests,
	}
}

// ===== Recorder 实现 =====

func (m *GameMetrics) Shot()                 { m.Shots.Inc() }
func (m *GameMetrics) Reload(result string)  { m.Reloads.WithLabelValues(result).Inc() }
func (m *GameMetrics) Pickup(kind string)    { m.Pickups.WithLabelValues(kind).Inc() }
func (m *GameMetrics) Swap()                 { m.Swaps.Inc() }
func (m *GameMetrics) Drop()                 { m.Drops.Inc() }
func (m *GameMetrics) FlightStarted()        { m.ActiveFlights.Inc() }
func (m *GameMetrics) FlightAborted()        { m.ActiveFlights.Dec() }
func (m *GameMetrics) Frame(d time.Duration) { m.FrameDuration.Observe(d.Seconds()) }
func (m *GameMetrics) Noop(op string)        { m.NoopRequests.WithLabelValues(op).Inc() }

func (m *GameMetrics) AmmoTransferred(ammoType string, n int) {
	if n > 0 {
		m.AmmoTransfers.WithLabelValues(ammoType).Add(float64(n))
	}
}

func (m *GameMetrics) FlightFinished(d time.Duration) {
	m.ActiveFlights.Dec()
	m.FlightDuration.Observe(d.Seconds())
}

// NopRecorder 不记录任何指标
type NopRecorder struct{}

func (NopRecorder) Shot()                        {}
func (NopRecorder) Reload(string)                {}
func (NopRecorder) AmmoTransferred(string, int)  {}
func (NopRecorder) Pickup(string)                {}
func (NopRecorder) Swap()                        {}
func (NopRecorder) Drop()                        {}
func (NopRecorder) FlightStarted()               {}
func (NopRecorder) FlightFinished(time.Duration) {}
func (NopRecorder) FlightAborted()               {}
func (NopRecorder) Frame(time.Duration)          {}
func (NopRecorder) Noop(string)                  {}

var (
	_ Recorder = (*GameMetrics)(nil)
	_ Recorder = NopRecorder{}
)
