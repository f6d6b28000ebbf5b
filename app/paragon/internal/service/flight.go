package service

import (
	"time"

	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/lk2023060901/paragon/pkg/mathx"
)

// ArriveFunc 飞行完成后的落点处理
type ArriveFunc func(agent handle.Handle, it *model.Item)

// FlightService 物品飞向持有者的插值控制
type FlightService struct {
	env    *Env
	items  *ItemService
	arrive ArriveFunc
	logger logger.Logger
}

// NewFlightService 创建飞行服务
func NewFlightService(env *Env, items *ItemService) *FlightService {
	s := &FlightService{
		env:    env,
		items:  items,
		logger: env.Logger.Named("service.flight"),
	}
	env.Agents.OnRemove(s.abandon)
	return s
}

// OnArrive 设置落点处理
func (s *FlightService) OnArrive(fn ArriveFunc) {
	s.arrive = fn
}

// Start 开始飞行：记录起点，占用锚点，设置完成定时器
// 物品已在飞行中时先显式取消原定时器并释放原锚点
func (s *FlightService) Start(agent handle.Handle, it *model.Item) bool {
	a := s.env.Agents.Get(agent)
	if a == nil || it == nil || s.env.Items.Get(it.Handle) != it {
		return false
	}
	if it.State != model.StatePickupIdle && !it.IsFlying() {
		s.logger.Debug("item not selectable", "item", it.Handle.String(), "state", it.State.String())
		return false
	}

	var prevTimer handle.Handle
	if fl := it.Flight; fl != nil {
		prevTimer = fl.Timer
		if prev := s.env.Agents.Get(fl.Agent); prev != nil {
			prev.Anchors.Release(fl.Anchor)
		}
		s.env.Metrics.FlightAborted()
	}

	t := s.env.tuning()
	duration := conf.Seconds(t.FlightDuration)
	fl := &model.Flight{
		Agent:     a.Handle,
		Anchor:    a.Anchors.Reserve(),
		Origin:    it.Transform.Location,
		YawOffset: it.Transform.Rotation.Yaw - a.Camera.Rotation.Yaw,
		Duration:  duration,
	}
	h := it.Handle
	s.env.Timers.Clear(prevTimer)
	fl.Timer = s.env.Timers.Set(duration, func() {
		s.finish(h)
	})
	it.Flight = fl

	s.items.SetPickupWidget(it, false)
	s.items.SetState(it, model.StateFlyingToOwner)
	s.env.Metrics.FlightStarted()

	s.logger.Debug("flight started",
		"item", h.String(),
		"agent", a.Name,
		"anchor", fl.Anchor,
		"duration", duration,
	)
	return true
}

// Advance 推进所有飞行中的物品
// 竖直方向按曲线采样并以起点到锚点的高度差缩放，水平方向以固定速率平滑逼近锚点
func (s *FlightService) Advance(dt float64) {
	t := s.env.tuning()
	zCurve := t.ZCurveValue()
	scaleCurve := t.ScaleCurveValue()

	for _, h := range s.env.Items.Flying() {
		it := s.env.Items.Get(h)
		fl := it.Flight
		a := s.env.Agents.Get(fl.Agent)
		if a == nil {
			s.Cancel(h)
			continue
		}

		elapsed := s.env.Timers.Elapsed(fl.Timer)
		if elapsed < 0 {
			continue
		}
		fl.Elapsed = elapsed

		target := a.AnchorLocation(fl.Anchor, t.CameraInterpDistance, t.CameraInterpElevation)
		cur := it.Transform.Location

		loc := mathx.Vector{
			X: mathx.FInterpTo(cur.X, target.X, dt, t.LateralInterpSpeed),
			Y: mathx.FInterpTo(cur.Y, target.Y, dt, t.LateralInterpSpeed),
		}
		if zCurve != nil {
			deltaZ := target.Z - fl.Origin.Z
			if deltaZ < 0 {
				deltaZ = -deltaZ
			}
			loc.Z = fl.Origin.Z + zCurve.Value(elapsed)*deltaZ
		} else {
			loc.Z = mathx.FInterpTo(cur.Z, target.Z, dt, t.LateralInterpSpeed)
		}

		it.Transform.Location = loc
		it.Transform.Rotation.Yaw = a.Camera.Rotation.Yaw + fl.YawOffset
		it.Transform.Scale = scaleCurve.Value(elapsed)
	}
}

// finish 完成定时器回调：释放锚点，恢复缩放，交给落点处理
func (s *FlightService) finish(h handle.Handle) {
	it := s.env.Items.Get(h)
	if it == nil || !it.IsFlying() {
		return
	}
	fl := it.Flight
	it.Flight = nil
	it.Transform.Scale = 1
	s.env.Metrics.FlightFinished(time.Duration(fl.Duration * float64(time.Second)))

	a := s.env.Agents.Get(fl.Agent)
	if a == nil {
		s.items.Throw(it)
		return
	}
	a.Anchors.Release(fl.Anchor)

	if s.arrive != nil {
		s.arrive(a.Handle, it)
	}
}

// Cancel 取消飞行，物品原地掉落
func (s *FlightService) Cancel(h handle.Handle) bool {
	it := s.env.Items.Get(h)
	if it == nil || !it.IsFlying() {
		return false
	}
	fl := it.Flight
	s.env.Timers.Clear(fl.Timer)
	it.Flight = nil
	it.Transform.Scale = 1
	if a := s.env.Agents.Get(fl.Agent); a != nil {
		a.Anchors.Release(fl.Anchor)
	}
	s.env.Metrics.FlightAborted()
	return s.items.Throw(it)
}

// abandon 持有者离开：飞向它的物品原地掉落
func (s *FlightService) abandon(a *model.Agent) {
	for _, h := range s.env.Items.Flying() {
		if it := s.env.Items.Get(h); it != nil && it.Flight.Agent == a.Handle {
			s.Cancel(h)
		}
	}
}
