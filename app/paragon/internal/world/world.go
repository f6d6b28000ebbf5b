// Package world 组装玩法世界并按帧推进
package world

import (
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/datatable"
	"github.com/lk2023060901/paragon/app/paragon/internal/event"
	"github.com/lk2023060901/paragon/app/paragon/internal/manager"
	"github.com/lk2023060901/paragon/app/paragon/internal/metrics"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/app/paragon/internal/service"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/idgen"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/lk2023060901/paragon/pkg/mathx"
	"github.com/lk2023060901/paragon/pkg/timer"
)

// World 玩法世界
// 除 SetTuning 外的所有方法只能在更新线程中调用
type World struct {
	logger logger.Logger
	env    *service.Env
	svc    *service.Services
	bus    *event.Bus

	active  *conf.Tuning
	pending atomic.Pointer[conf.Tuning]
}

// New 创建世界
func New(l logger.Logger, tables *datatable.Tables, ids idgen.Generator, rec metrics.Recorder, tuning *conf.Tuning) (*World, error) {
	if l == nil {
		l = logger.NewNoop()
	}
	if tables == nil {
		tables = datatable.Default()
	}
	if ids == nil {
		ids = idgen.NewSequence(0)
	}
	if rec == nil {
		rec = metrics.NopRecorder{}
	}
	active, err := conf.Merge(tuning)
	if err != nil {
		return nil, errors.Wrap(err, "world tuning")
	}

	w := &World{
		logger: l.Named("world"),
		bus:    event.NewBus(),
		active: active,
	}
	w.env = &service.Env{
		Items:   manager.NewItemManager(l, ids),
		Agents:  manager.NewAgentManager(l),
		Timers:  timer.NewScheduler(),
		Tables:  tables,
		Events:  w.bus,
		Metrics: rec,
		Logger:  l,
		Tuning:  w.Tuning,
	}
	w.svc = service.NewServices(w.env)
	return w, nil
}

// Update 推进一帧：应用待生效参数，触发到期定时器，推进飞行中的物品
func (w *World) Update(dt float64) {
	start := time.Now()

	if next := w.pending.Swap(nil); next != nil {
		w.active = next
		w.logger.Info("tuning applied", "frame", w.env.Timers.Frame()+1)
	}

	w.env.Timers.Advance(dt)
	w.svc.Flight.Advance(dt)

	w.env.Metrics.Frame(time.Since(start))
}

// SetTuning 提交新参数，下一帧开始时生效，可在任意 goroutine 调用
func (w *World) SetTuning(t *conf.Tuning) {
	if t != nil {
		w.pending.Store(t)
	}
}

// Tuning 当前生效的参数
func (w *World) Tuning() *conf.Tuning { return w.active }

// Subscribe 注册事件观察者
func (w *World) Subscribe(o event.Observer) func() { return w.bus.Subscribe(o) }

func (w *World) Services() *service.Services { return w.svc }
func (w *World) Items() *manager.ItemManager { return w.env.Items }
func (w *World) Agents() *manager.AgentManager {
	return w.env.Agents
}
func (w *World) Tables() *datatable.Tables { return w.env.Tables }
func (w *World) Frame() uint64             { return w.env.Timers.Frame() }
func (w *World) Now() float64              { return w.env.Timers.Now() }

// ===== 生成 =====

// AddAgent 加入角色，同名角色已存在时返回已有角色
func (w *World) AddAgent(name string) *model.Agent {
	if a := w.env.Agents.Find(name); a != nil {
		return a
	}
	a := model.NewAgent(name, w.active.Capacity)
	w.env.Agents.Add(a)
	return a
}

// RemoveAgent 移除角色：定时器清除，背包物品与飞向它的物品原地掉落
func (w *World) RemoveAgent(h handle.Handle) bool {
	return w.env.Agents.Remove(h)
}

// SpawnWeapon 在世界中生成可拾取武器
func (w *World) SpawnWeapon(wt model.WeaponType, at mathx.Vector) (*model.Item, error) {
	it, ok := w.env.Tables.NewWeapon(wt)
	if !ok {
		return nil, errors.Newf("no data for weapon type %s", wt)
	}
	return w.spawn(it, at)
}

// SpawnAmmo 在世界中生成弹药
func (w *World) SpawnAmmo(at model.AmmoType, count int, loc mathx.Vector) (*model.Item, error) {
	return w.spawn(w.env.Tables.NewAmmo(at, count), loc)
}

// Adopt 放入已构造好的物品（存档恢复）
func (w *World) Adopt(it *model.Item) error {
	_, err := w.env.Items.Spawn(it)
	return err
}

func (w *World) spawn(it *model.Item, at mathx.Vector) (*model.Item, error) {
	it.Transform.Location = at
	if _, err := w.env.Items.Spawn(it); err != nil {
		return nil, err
	}
	return it, nil
}
