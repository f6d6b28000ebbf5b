// Package service 玩法服务
//
// 所有操作都在单个更新线程上执行。面向玩法的操作在前置条件不满足时静默忽略并返回 false，
// 不返回错误；只在 Debug 级别记录并计入 noop 指标。
package service

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/datatable"
	"github.com/lk2023060901/paragon/app/paragon/internal/event"
	"github.com/lk2023060901/paragon/app/paragon/internal/manager"
	"github.com/lk2023060901/paragon/app/paragon/internal/metrics"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/lk2023060901/paragon/pkg/timer"
)

// Env 服务共享的运行环境
type Env struct {
	Items   *manager.ItemManager
	Agents  *manager.AgentManager
	Timers  *timer.Scheduler
	Tables  *datatable.Tables
	Events  event.Observer
	Metrics metrics.Recorder
	Logger  logger.Logger

	// Tuning 返回当前生效的参数，热更新在帧开始时替换
	Tuning func() *conf.Tuning
}

func (e *Env) tuning() *conf.Tuning {
	if e.Tuning == nil {
		return conf.DefaultTuning()
	}
	return e.Tuning()
}

// playGated 播放带冷却的音效，冷却由定时器表示，未到期时忽略
func (e *Env) playGated(a *model.Agent, gate *handle.Handle, reset float64, cue event.Cue) bool {
	if e.Timers.IsActive(*gate) {
		return false
	}
	e.Events.OnSound(a.Handle, cue)
	*gate = e.Timers.Set(reset, func() {})
	return true
}

func (e *Env) equippedWeapon(a *model.Agent) *model.Item {
	it := e.Items.Get(a.Inventory.EquippedItem())
	if it == nil || !it.IsWeapon() {
		return nil
	}
	return it
}
