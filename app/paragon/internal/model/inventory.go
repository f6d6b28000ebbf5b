package model

import "github.com/lk2023060901/paragon/pkg/handle"

// DefaultCapacity 默认背包容量
const DefaultCapacity = 6

// Inventory 角色背包，槽位紧凑排列，下标即 Item.SlotIndex
// 只在更新线程中访问，不加锁
type Inventory struct {
	owner       handle.Handle
	capacity    int
	slots       []handle.Handle
	equipped    int
	highlighted int
}

// NewInventory 创建背包
func NewInventory(owner handle.Handle, capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inventory{
		owner:       owner,
		capacity:    capacity,
		slots:       make([]handle.Handle, 0, capacity),
		equipped:    NoSlot,
		highlighted: NoSlot,
	}
}

// ===== 槽位查询 =====

func (inv *Inventory) Owner() handle.Handle { return inv.owner }
func (inv *Inventory) Capacity() int        { return inv.capacity }
func (inv *Inventory) Len() int             { return len(inv.slots) }
func (inv *Inventory) IsFull() bool         { return len(inv.slots) >= inv.capacity }

// At 获取槽位上的物品
func (inv *Inventory) At(slot int) (handle.Handle, bool) {
	if !inv.ValidSlot(slot) {
		return handle.Nil, false
	}
	return inv.slots[slot], true
}

// ValidSlot 槽位是否被占用
func (inv *Inventory) ValidSlot(slot int) bool {
	return slot >= 0 && slot < len(inv.slots)
}

// IndexOf 查找物品所在槽位，不存在返回 NoSlot
func (inv *Inventory) IndexOf(h handle.Handle) int {
	for i, s := range inv.slots {
		if s == h {
			return i
		}
	}
	return NoSlot
}

// Slots 槽位快照
func (inv *Inventory) Slots() []handle.Handle {
	out := make([]handle.Handle, len(inv.slots))
	copy(out, inv.slots)
	return out
}

// ===== 槽位修改 =====

// Append 放入下一个空槽位，已满返回 NoSlot
func (inv *Inventory) Append(h handle.Handle) int {
	if h.IsNil() || inv.IsFull() {
		return NoSlot
	}
	inv.slots = append(inv.slots, h)
	return len(inv.slots) - 1
}

// Replace 替换槽位上的物品，返回原物品
func (inv *Inventory) Replace(slot int, h handle.Handle) (handle.Handle, bool) {
	if !inv.ValidSlot(slot) || h.IsNil() {
		return handle.Nil, false
	}
	old := inv.slots[slot]
	inv.slots[slot] = h
	return old, true
}

// RemoveAt 移除槽位上的物品并压缩后续槽位
// 装备槽位随之调整：移除的正是装备物品时置为 NoSlot；高亮槽位由调用方刷新
func (inv *Inventory) RemoveAt(slot int) (handle.Handle, bool) {
	if !inv.ValidSlot(slot) {
		return handle.Nil, false
	}
	h := inv.slots[slot]
	inv.slots = append(inv.slots[:slot], inv.slots[slot+1:]...)

	switch {
	case inv.equipped == slot:
		inv.equipped = NoSlot
	case inv.equipped > slot:
		inv.equipped--
	}
	return h, true
}

// Clear 清空背包
func (inv *Inventory) Clear() []handle.Handle {
	out := inv.slots
	inv.slots = make([]handle.Handle, 0, inv.capacity)
	inv.equipped = NoSlot
	inv.highlighted = NoSlot
	return out
}

// ===== 装备与高亮 =====

// Equipped 当前装备槽位
func (inv *Inventory) Equipped() int { return inv.equipped }

// EquippedItem 当前装备物品
func (inv *Inventory) EquippedItem() handle.Handle {
	h, _ := inv.At(inv.equipped)
	return h
}

// SetEquipped 设置装备槽位，NoSlot 表示空手
func (inv *Inventory) SetEquipped(slot int) bool {
	if slot != NoSlot && !inv.ValidSlot(slot) {
		return false
	}
	inv.equipped = slot
	return true
}

// Highlighted 当前高亮槽位
func (inv *Inventory) Highlighted() int { return inv.highlighted }

// SetHighlighted 设置高亮槽位，值未变化时返回 false
func (inv *Inventory) SetHighlighted(slot int) bool {
	if inv.highlighted == slot {
		return false
	}
	inv.highlighted = slot
	return true
}
