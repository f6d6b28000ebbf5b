package service

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/logger"
)

// ItemService 物品状态与表现
type ItemService struct {
	env    *Env
	logger logger.Logger
}

// NewItemService 创建物品服务
func NewItemService(env *Env) *ItemService {
	s := &ItemService{
		env:    env,
		logger: env.Logger.Named("service.item"),
	}
	env.Items.OnDestroy(s.release)
	return s
}

// SetState 迁移状态并同步表现，非法迁移返回 false
func (s *ItemService) SetState(it *model.Item, to model.State) bool {
	if it == nil {
		return false
	}
	from := it.State
	if !model.SetState(it, to) {
		s.logger.Debug("illegal item transition ignored",
			"item", it.Handle.String(),
			"from", from.String(),
			"to", to.String(),
		)
		return false
	}
	// 离开 PickupIdle 时拾取提示必须隐藏，并通知观察者
	if it.PickupWidgetVisible && to != model.StatePickupIdle {
		s.SetPickupWidget(it, false)
	}
	if from != to {
		s.env.Events.OnStateChanged(it.Handle, from, to)
	}
	s.Apply(it)
	return true
}

// Apply 同步表现，仅在变化时通知
func (s *ItemService) Apply(it *model.Item) {
	if model.ApplyPresentation(it) {
		s.env.Events.OnPresentation(it.Handle, it.Presentation)
	}
}

// SetPickupWidget 切换拾取提示，只对 PickupIdle 的物品生效
func (s *ItemService) SetPickupWidget(it *model.Item, visible bool) {
	if it == nil || it.PickupWidgetVisible == visible {
		return
	}
	if visible && it.State != model.StatePickupIdle {
		return
	}
	it.PickupWidgetVisible = visible
	s.Apply(it)
	s.env.Events.OnPickupWidget(it.Handle, visible)
}

// Detach 从持有者身上解除
func (s *ItemService) Detach(it *model.Item) {
	it.SlotIndex = model.NoSlot
	it.Owner = handle.Nil
}

// Throw 丢出物品，进入掉落状态并在稳定时间后回到可拾取
func (s *ItemService) Throw(it *model.Item) bool {
	if !s.SetState(it, model.StateFallingDropped) {
		return false
	}
	it.Transform.Rotation.Pitch = 0
	it.Transform.Rotation.Roll = 0
	it.Transform.Scale = 1

	h := it.Handle
	settle := conf.Seconds(s.env.tuning().ThrowSettleTime)
	it.ThrowTimer = s.env.Timers.Rearm(it.ThrowTimer, settle, func() {
		s.StopFalling(h)
	})
	return true
}

// StopFalling 落地稳定，回到可拾取状态；物品已被销毁时忽略
func (s *ItemService) StopFalling(h handle.Handle) bool {
	it := s.env.Items.Get(h)
	if it == nil || it.State != model.StateFallingDropped {
		return false
	}
	it.ThrowTimer = handle.Nil
	return s.SetState(it, model.StatePickupIdle)
}

// Destroy 销毁物品，清理工作由销毁回调完成
func (s *ItemService) Destroy(it *model.Item) bool {
	if it == nil {
		return false
	}
	return s.env.Items.Destroy(it.Handle)
}

// release 物品移出对象池前取消定时器并归还飞行占用的锚点
func (s *ItemService) release(it *model.Item) {
	s.env.Timers.Clear(it.ThrowTimer)
	it.ThrowTimer = handle.Nil
	if fl := it.Flight; fl != nil {
		s.env.Timers.Clear(fl.Timer)
		if a := s.env.Agents.Get(fl.Agent); a != nil {
			a.Anchors.Release(fl.Anchor)
		}
		it.Flight = nil
		s.env.Metrics.FlightAborted()
	}
}
