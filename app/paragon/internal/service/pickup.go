package service

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/event"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/logger"
)

// PickupService 拾取检测与拾取流程
// 重叠与射线检测由外部空间查询完成，这里只消费其结果
type PickupService struct {
	env       *Env
	items     *ItemService
	flight    *FlightService
	inventory *InventoryService
	combat    *CombatService
	logger    logger.Logger
}

// NewPickupService 创建拾取服务，并接管飞行的落点处理
func NewPickupService(env *Env, items *ItemService, flight *FlightService, inventory *InventoryService, combat *CombatService) *PickupService {
	s := &PickupService{
		env:       env,
		items:     items,
		flight:    flight,
		inventory: inventory,
		combat:    combat,
		logger:    env.Logger.Named("service.pickup"),
	}
	flight.OnArrive(s.arrive)
	return s
}

// ChangeOverlappedItemCount 进入或离开物品拾取范围，计数不低于 0
// 计数大于 0 时开启准星检测
func (s *PickupService) ChangeOverlappedItemCount(agent handle.Handle, delta int) {
	a := s.env.Agents.Get(agent)
	if a == nil {
		return
	}
	if a.OverlappedItems+delta <= 0 {
		a.OverlappedItems = 0
		a.TraceEnabled = false
		return
	}
	a.OverlappedItems += delta
	a.TraceEnabled = true
}

// TraceForItems 每帧处理准星下的候选物品，切换拾取提示与交换高亮
func (s *PickupService) TraceForItems(agent, candidate handle.Handle) {
	a := s.env.Agents.Get(agent)
	if a == nil {
		return
	}

	if !a.TraceEnabled {
		s.items.SetPickupWidget(s.env.Items.Get(a.LastTraceHit), false)
		a.TraceHit = handle.Nil
		a.LastTraceHit = handle.Nil
		s.inventory.UpdateHighlight(a)
		return
	}

	a.TraceHit = handle.Nil
	if it := s.env.Items.Get(candidate); it != nil && it.State == model.StatePickupIdle {
		a.TraceHit = candidate
		s.items.SetPickupWidget(it, true)
	}
	if !a.LastTraceHit.IsNil() && a.LastTraceHit != a.TraceHit {
		s.items.SetPickupWidget(s.env.Items.Get(a.LastTraceHit), false)
	}
	a.LastTraceHit = a.TraceHit
	s.inventory.UpdateHighlight(a)
}

// Select 拾取准星下的物品
func (s *PickupService) Select(agent handle.Handle) bool {
	a := s.env.Agents.Get(agent)
	if a == nil {
		return false
	}
	it := s.env.Items.Get(a.TraceHit)
	if it == nil || it.State != model.StatePickupIdle {
		s.env.Metrics.Noop("select")
		s.logger.Debug("nothing to select", "agent", a.Name)
		return false
	}
	return s.SelectItem(agent, it)
}

// SelectItem 拾取指定物品
func (s *PickupService) SelectItem(agent handle.Handle, it *model.Item) bool {
	a := s.env.Agents.Get(agent)
	if a == nil || !s.flight.Start(agent, it) {
		return false
	}
	s.env.playGated(a, &a.PickupSoundTimer, conf.Seconds(s.env.tuning().PickupSoundResetTime), event.CuePickup)

	if a.TraceHit == it.Handle {
		a.TraceHit = handle.Nil
		a.LastTraceHit = handle.Nil
		s.inventory.UpdateHighlight(a)
	}
	return true
}

// arrive 飞行完成：武器进入背包，弹药并入账本
func (s *PickupService) arrive(agent handle.Handle, it *model.Item) {
	switch it.Kind {
	case model.KindWeapon:
		if !s.inventory.Accept(agent, it) {
			s.items.Throw(it)
			return
		}
	case model.KindAmmo:
		s.combat.PickupAmmo(agent, it)
	default:
		s.items.Throw(it)
		return
	}
	s.env.Metrics.Pickup(it.Kind.String())
}
