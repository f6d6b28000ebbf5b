package service

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/conf"
	"github.com/lk2023060901/paragon/app/paragon/internal/event"
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/logger"
)

// InventoryService 背包槽位分配、装备切换与丢弃
type InventoryService struct {
	env    *Env
	items  *ItemService
	combat *CombatService
	logger logger.Logger
}

// NewInventoryService 创建背包服务
func NewInventoryService(env *Env, items *ItemService, combat *CombatService) *InventoryService {
	s := &InventoryService{
		env:    env,
		items:  items,
		combat: combat,
		logger: env.Logger.Named("service.inventory"),
	}
	env.Items.OnDestroy(s.forget)
	env.Agents.OnRemove(s.dropAll)
	return s
}

// Accept 接收物品
// 背包未满时放入下一个槽位，没有装备物品时直接装备；
// 背包已满时与当前装备物品交换，被换下的物品掉落
func (s *InventoryService) Accept(agent handle.Handle, it *model.Item) bool {
	a := s.env.Agents.Get(agent)
	if a == nil || it == nil || s.env.Items.Get(it.Handle) != it {
		return false
	}
	if it.InInventory() {
		s.logger.Debug("item already carried", "item", it.Handle.String(), "slot", it.SlotIndex)
		return false
	}
	switch it.State {
	case model.StateFlyingToOwner:
	case model.StatePickupIdle:
		// 直接从地面接收时补上飞行状态，保持迁移合法
		s.items.SetState(it, model.StateFlyingToOwner)
	default:
		return false
	}

	inv := a.Inventory
	if !inv.IsFull() {
		slot := inv.Append(it.Handle)
		it.SlotIndex = slot
		it.Owner = a.Handle
		if inv.Equipped() == model.NoSlot {
			s.equipSlot(a, slot)
		} else {
			s.items.SetState(it, model.StateCarriedUnequipped)
		}
	} else {
		s.swap(a, it)
	}

	s.UpdateHighlight(a)
	s.combat.ReloadIfEmpty(a)
	return true
}

// swap 背包已满：新物品占用装备槽位并装备，原装备物品掉落
func (s *InventoryService) swap(a *model.Agent, it *model.Item) {
	s.combat.Interrupt(a)
	inv := a.Inventory
	slot := inv.Equipped()
	if slot == model.NoSlot {
		slot = 0
	}

	oldH, _ := inv.Replace(slot, it.Handle)
	it.SlotIndex = slot
	it.Owner = a.Handle

	if old := s.env.Items.Get(oldH); old != nil {
		s.items.Detach(old)
		s.items.Throw(old)
	}
	inv.SetEquipped(model.NoSlot)
	s.equipSlot(a, slot)

	s.env.Metrics.Swap()
	s.logger.Debug("inventory full, swapped equipped item",
		"agent", a.Name,
		"slot", slot,
		"dropped", oldH.String(),
		"picked", it.Handle.String(),
	)
}

// equipSlot 装备槽位上的物品，原装备物品收起
func (s *InventoryService) equipSlot(a *model.Agent, slot int) bool {
	inv := a.Inventory
	h, ok := inv.At(slot)
	if !ok {
		return false
	}
	prev := inv.Equipped()
	if prev == slot {
		return false
	}
	if prevItem := s.env.Items.Get(inv.EquippedItem()); prevItem != nil {
		s.items.SetState(prevItem, model.StateCarriedUnequipped)
	}
	s.items.SetState(s.env.Items.Get(h), model.StateEquipped)
	inv.SetEquipped(slot)

	s.env.Events.OnEquipSlotChanged(a.Handle, prev, slot)
	s.env.playGated(a, &a.EquipSoundTimer, conf.Seconds(s.env.tuning().EquipSoundResetTime), event.CueEquip)
	return true
}

// Equip 装备指定槽位并进入装备窗口，仅在 Unoccupied 或 Equipping 状态下允许
// 装备窗口内再次装备会重新计时
func (s *InventoryService) Equip(agent handle.Handle, slot int) bool {
	a := s.env.Agents.Get(agent)
	if a == nil {
		return false
	}
	if a.Combat != model.CombatUnoccupied && a.Combat != model.CombatEquipping {
		return s.noop(a, "equip", "busy")
	}
	if !a.Inventory.ValidSlot(slot) {
		return s.noop(a, "equip", "invalid slot")
	}
	if slot == a.Inventory.Equipped() {
		return s.noop(a, "equip", "already equipped")
	}
	if !s.combat.BeginEquipping(a) {
		return false
	}
	return s.equipSlot(a, slot)
}

// EquipInstant 直接装备槽位，不进入装备窗口；用于读档恢复
func (s *InventoryService) EquipInstant(agent handle.Handle, slot int) bool {
	a := s.env.Agents.Get(agent)
	if a == nil || a.Combat != model.CombatUnoccupied || !a.Inventory.ValidSlot(slot) {
		return false
	}
	return s.equipSlot(a, slot)
}

// SelectSlot 快捷键切换槽位，切换成功后进入装备窗口
func (s *InventoryService) SelectSlot(agent handle.Handle, slot int) bool {
	a := s.env.Agents.Get(agent)
	if a == nil {
		return false
	}
	if a.Combat != model.CombatUnoccupied {
		return s.noop(a, "select_slot", "busy")
	}
	if !a.Inventory.ValidSlot(slot) || slot == a.Inventory.Equipped() {
		return s.noop(a, "select_slot", "invalid slot")
	}
	return s.Equip(agent, slot)
}

// Drop 丢出当前装备物品，后续槽位前移
func (s *InventoryService) Drop(agent handle.Handle) bool {
	a := s.env.Agents.Get(agent)
	if a == nil {
		return false
	}
	if a.Combat != model.CombatUnoccupied {
		return s.noop(a, "drop", "busy")
	}
	inv := a.Inventory
	slot := inv.Equipped()
	h, ok := inv.RemoveAt(slot)
	if !ok {
		return s.noop(a, "drop", "nothing equipped")
	}
	s.reindex(inv)

	it := s.env.Items.Get(h)
	if it != nil {
		s.items.Detach(it)
		s.items.Throw(it)
	}
	s.env.Events.OnEquipSlotChanged(a.Handle, slot, model.NoSlot)
	s.env.Metrics.Drop()
	s.UpdateHighlight(a)
	return true
}

// forget 背包中的物品被销毁：移出槽位并压缩，装备物品被销毁时角色空手
func (s *InventoryService) forget(it *model.Item) {
	if !it.InInventory() {
		return
	}
	a := s.env.Agents.Get(it.Owner)
	if a == nil {
		return
	}
	inv := a.Inventory
	slot := inv.IndexOf(it.Handle)
	if slot == model.NoSlot {
		return
	}
	equipped := slot == inv.Equipped()
	if equipped {
		s.combat.Interrupt(a)
	}
	inv.RemoveAt(slot)
	s.reindex(inv)
	s.items.Detach(it)

	if equipped {
		s.env.Events.OnEquipSlotChanged(a.Handle, slot, model.NoSlot)
	}
	s.UpdateHighlight(a)
	s.logger.Debug("carried item destroyed", "agent", a.Name, "item", it.Handle.String(), "slot", slot)
}

// dropAll 角色离开：背包中的物品全部原地掉落
func (s *InventoryService) dropAll(a *model.Agent) {
	for _, h := range a.Inventory.Clear() {
		if it := s.env.Items.Get(h); it != nil {
			s.items.Detach(it)
			s.items.Throw(it)
		}
	}
}

// reindex 槽位压缩后同步物品的 SlotIndex
func (s *InventoryService) reindex(inv *model.Inventory) {
	for i, h := range inv.Slots() {
		if it := s.env.Items.Get(h); it != nil {
			it.SlotIndex = i
		}
	}
}

// UpdateHighlight 背包已满且准星下有可拾取武器时高亮将被交换的槽位
// 同一状态只通知一次
func (s *InventoryService) UpdateHighlight(a *model.Agent) {
	inv := a.Inventory
	target := model.NoSlot
	if inv.IsFull() {
		if it := s.env.Items.Get(a.TraceHit); it != nil && it.IsWeapon() && it.State == model.StatePickupIdle {
			target = inv.Equipped()
		}
	}

	prev := inv.Highlighted()
	if !inv.SetHighlighted(target) {
		return
	}
	if prev != model.NoSlot {
		s.env.Events.OnHighlight(a.Handle, prev, false)
	}
	if target != model.NoSlot {
		s.env.Events.OnHighlight(a.Handle, target, true)
	}
}

func (s *InventoryService) noop(a *model.Agent, op, reason string) bool {
	s.env.Metrics.Noop(op)
	s.logger.Debug("request ignored", "agent", a.Name, "op", op, "reason", reason)
	return false
}
