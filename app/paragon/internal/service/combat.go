package service

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/event"
	"github.com/lk2023060901/paragon/app/paragon/internal/metrics"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/logger"
)

// CombatService 战斗状态与弹药
// 战斗状态互斥，开火、换弹、装备共用角色的 CombatTimer
type CombatService struct {
	env    *Env
	items  *ItemService
	logger logger.Logger
}

// NewCombatService 创建战斗服务
func NewCombatService(env *Env, items *ItemService) *CombatService {
	s := &CombatService{
		env:    env,
		items:  items,
		logger: env.Logger.Named("service.combat"),
	}
	env.Agents.OnRemove(s.stopTimers)
	return s
}

// stopTimers 角色离开时清除其全部定时器
func (s *CombatService) stopTimers(a *model.Agent) {
	for _, t := range []*handle.Handle{&a.CombatTimer, &a.CrosshairTimer, &a.PickupSoundTimer, &a.EquipSoundTimer} {
		s.env.Timers.Clear(*t)
		*t = handle.Nil
	}
	a.Combat = model.CombatUnoccupied
	a.TriggerHeld = false
	a.FiringBullet = false
}

func (s *CombatService) setState(a *model.Agent, to model.CombatState) {
	from := a.Combat
	if from == to {
		return
	}
	a.Combat = to
	s.env.Events.OnCombatStateChanged(a.Handle, from, to)
}

func (s *CombatService) noop(a *model.Agent, op, reason string) bool {
	s.env.Metrics.Noop(op)
	s.logger.Debug("request ignored",
		"agent", a.Name,
		"op", op,
		"reason", reason,
		"combat", a.Combat.String(),
	)
	return false
}

// ===== 扳机 =====

// PressTrigger 按下扳机并尝试开火
func (s *CombatService) PressTrigger(h handle.Handle) bool {
	a := s.env.Agents.Get(h)
	if a == nil {
		return false
	}
	a.TriggerHeld = true
	return s.fire(a)
}

// ReleaseTrigger 松开扳机，连射在下一次间隔到期时停止
func (s *CombatService) ReleaseTrigger(h handle.Handle) {
	if a := s.env.Agents.Get(h); a != nil {
		a.TriggerHeld = false
	}
}

// Fire 开一枪，不改变扳机状态
func (s *CombatService) Fire(h handle.Handle) bool {
	a := s.env.Agents.Get(h)
	if a == nil {
		return false
	}
	return s.fire(a)
}

func (s *CombatService) fire(a *model.Agent) bool {
	if a.Combat != model.CombatUnoccupied {
		return s.noop(a, "fire", "busy")
	}
	it := s.env.equippedWeapon(a)
	if it == nil {
		return s.noop(a, "fire", "no weapon")
	}
	w := it.Weapon
	if !w.HasAmmo() {
		return s.noop(a, "fire", "empty magazine")
	}

	w.DecrementAmmo()
	s.env.Metrics.Shot()
	s.env.Events.OnSound(a.Handle, event.CueFire)
	s.env.Events.OnMontage(a.Handle, event.MontageHipFire, event.SectionStartFire)
	s.startCrosshairShoot(a)

	t := s.env.tuning()
	rate := w.FireRate
	if rate <= 0 {
		rate = conf.Seconds(t.FireRate)
	}
	s.setState(a, model.CombatFireTimerInProgress)
	agent := a.Handle
	a.CombatTimer = s.env.Timers.Rearm(a.CombatTimer, rate, func() {
		s.autoFireReset(agent)
	})
	return true
}

// autoFireReset 开火间隔到期：弹匣打空且仍按住扳机时自动换弹，否则按住扳机继续开火
func (s *CombatService) autoFireReset(h handle.Handle) {
	a := s.env.Agents.Get(h)
	if a == nil {
		return
	}
	a.CombatTimer = handle.Nil
	s.setState(a, model.CombatUnoccupied)
	if !a.TriggerHeld {
		return
	}

	it := s.env.equippedWeapon(a)
	if it == nil {
		return
	}
	if !it.Weapon.HasAmmo() {
		s.reload(a)
		return
	}
	s.fire(a)
}

// ===== 准星 =====

func (s *CombatService) startCrosshairShoot(a *model.Agent) {
	a.FiringBullet = true
	agent := a.Handle
	d := conf.Seconds(s.env.tuning().CrosshairShootTime)
	a.CrosshairTimer = s.env.Timers.Rearm(a.CrosshairTimer, d, func() {
		if a := s.env.Agents.Get(agent); a != nil {
			a.FiringBullet = false
			a.CrosshairTimer = handle.Nil
		}
	})
}

// IsFiringBullet 是否处于开火后的准星扩散窗口
func (s *CombatService) IsFiringBullet(h handle.Handle) bool {
	a := s.env.Agents.Get(h)
	return a != nil && a.FiringBullet
}

// ===== 换弹 =====

// Reload 换弹
func (s *CombatService) Reload(h handle.Handle) bool {
	a := s.env.Agents.Get(h)
	if a == nil {
		return false
	}
	return s.reload(a)
}

func (s *CombatService) reload(a *model.Agent) bool {
	if a.Combat != model.CombatUnoccupied {
		return s.noop(a, "reload", "busy")
	}
	it := s.env.equippedWeapon(a)
	if it == nil {
		return s.noop(a, "reload", "no weapon")
	}
	w := it.Weapon
	if a.Ledger.Count(w.AmmoType) <= 0 {
		return s.noop(a, "reload", "no carried ammo")
	}
	if w.IsClipFull() {
		return s.noop(a, "reload", "magazine full")
	}

	s.setState(a, model.CombatReloading)
	s.env.Metrics.Reload(metrics.ReloadStarted)
	s.env.Events.OnMontage(a.Handle, event.MontageReload, w.ReloadSection)

	agent, weapon := a.Handle, it.Handle
	d := conf.Seconds(s.env.tuning().ReloadDuration)
	a.CombatTimer = s.env.Timers.Rearm(a.CombatTimer, d, func() {
		s.finishReload(agent, weapon)
	})
	return true
}

// finishReload 换弹完成，从账本转移 min(携带数量, 弹匣缺口)
// 换弹期间武器被换下或销毁时本次换弹作废
func (s *CombatService) finishReload(agent, weapon handle.Handle) {
	a := s.env.Agents.Get(agent)
	if a == nil {
		return
	}
	a.CombatTimer = handle.Nil
	s.setState(a, model.CombatUnoccupied)

	it := s.env.Items.Get(weapon)
	if it == nil || !it.IsWeapon() || a.Inventory.EquippedItem() != weapon {
		s.env.Metrics.Reload(metrics.ReloadCancelled)
		return
	}

	w := it.Weapon
	taken := a.Ledger.Take(w.AmmoType, w.Missing())
	loaded := w.ReloadAmmo(taken)
	// 弹匣在换弹期间不会变化，loaded 与 taken 相等
	if rest := taken - loaded; rest > 0 {
		a.Ledger.Add(w.AmmoType, rest)
	}

	s.env.Metrics.Reload(metrics.ReloadCompleted)
	s.env.Metrics.AmmoTransferred(w.AmmoType.String(), loaded)
	s.logger.Debug("reload finished",
		"agent", a.Name,
		"loaded", loaded,
		"magazine", w.Ammo,
		"carried", a.Ledger.Count(w.AmmoType),
	)
}

// Interrupt 换弹中的武器被换下或销毁时立即中止换弹，弹药不转移
func (s *CombatService) Interrupt(a *model.Agent) bool {
	if a.Combat != model.CombatReloading {
		return false
	}
	s.env.Timers.Clear(a.CombatTimer)
	a.CombatTimer = handle.Nil
	s.setState(a, model.CombatUnoccupied)
	s.env.Metrics.Reload(metrics.ReloadCancelled)
	s.logger.Debug("reload interrupted", "agent", a.Name)
	return true
}

// ===== 装备窗口 =====

// BeginEquipping 进入装备动画窗口，窗口内不能开火或换弹；已在窗口内时重新计时
func (s *CombatService) BeginEquipping(a *model.Agent) bool {
	if a.Combat != model.CombatUnoccupied && a.Combat != model.CombatEquipping {
		return s.noop(a, "equip", "busy")
	}
	s.setState(a, model.CombatEquipping)
	s.env.Events.OnMontage(a.Handle, event.MontageEquip, event.SectionEquip)

	agent := a.Handle
	d := conf.Seconds(s.env.tuning().EquipDuration)
	a.CombatTimer = s.env.Timers.Rearm(a.CombatTimer, d, func() {
		if a := s.env.Agents.Get(agent); a != nil {
			a.CombatTimer = handle.Nil
			s.setState(a, model.CombatUnoccupied)
		}
	})
	return true
}

// ===== 弹药拾取 =====

// PickupAmmo 弹药拾取物并入账本并销毁；当前武器同类型且弹匣为空时立即换弹
func (s *CombatService) PickupAmmo(h handle.Handle, ammo *model.Item) bool {
	a := s.env.Agents.Get(h)
	if a == nil || ammo == nil || !ammo.IsAmmo() {
		return false
	}
	pack := ammo.Ammo
	a.Ledger.Add(pack.Type, pack.Count)
	s.items.Destroy(ammo)

	if it := s.env.equippedWeapon(a); it != nil {
		w := it.Weapon
		if w.AmmoType == pack.Type && !w.HasAmmo() {
			s.reload(a)
		}
	}
	return true
}

// ReloadIfEmpty 当前武器弹匣为空时尝试换弹
func (s *CombatService) ReloadIfEmpty(a *model.Agent) bool {
	it := s.env.equippedWeapon(a)
	if it == nil || it.Weapon.HasAmmo() {
		return false
	}
	return s.reload(a)
}
