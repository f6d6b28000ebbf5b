package model

import (
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/mathx"
)

// NoSlot 未进入背包时的槽位索引
const NoSlot = -1

// Kind 物品种类
type Kind uint8

const (
	KindWeapon Kind = iota + 1
	KindAmmo
)

func (k Kind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindAmmo:
		return "ammo"
	default:
		return "unknown"
	}
}

// Flight 飞向持有者期间的插值状态
type Flight struct {
	Agent     handle.Handle // 目标持有者
	Timer     handle.Handle // 完成定时器
	Anchor    int           // 占用的锚点索引
	Origin    mathx.Vector  // 起飞位置
	YawOffset float64       // 起飞时物品 yaw 与相机 yaw 的差
	Elapsed   float64
	Duration  float64
}

// Item 世界中的可拾取物品，按 Kind 携带 Weapon 或 Ammo 数据
type Item struct {
	Handle handle.Handle
	Serial int64
	Kind   Kind
	Name   string
	Count  int

	State       State
	Rarity      Rarity
	ActiveStars [StarSlots]bool

	// SlotIndex 仅在物品属于某个背包时有效
	SlotIndex int
	Owner     handle.Handle

	Transform mathx.Transform
	Flight    *Flight

	// ThrowTimer 抛出后落地稳定的定时器
	ThrowTimer handle.Handle

	PickupWidgetVisible bool
	Presentation        Presentation

	Weapon *Weapon
	Ammo   *AmmoPack
}

// NewWeaponItem 创建武器物品，初始为可拾取状态
func NewWeaponItem(name string, w *Weapon, rarity Rarity) *Item {
	it := newItem(KindWeapon, name)
	it.Weapon = w
	it.Count = 1
	SetRarity(it, rarity)
	return it
}

// NewAmmoItem 创建弹药物品
func NewAmmoItem(name string, ammoType AmmoType, count int) *Item {
	if count < 0 {
		count = 0
	}
	it := newItem(KindAmmo, name)
	it.Ammo = &AmmoPack{Type: ammoType, Count: count}
	it.Count = count
	SetRarity(it, RarityCommon)
	return it
}

func newItem(kind Kind, name string) *Item {
	it := &Item{
		Kind:      kind,
		Name:      name,
		State:     StatePickupIdle,
		SlotIndex: NoSlot,
		Transform: mathx.Transform{Scale: 1},
	}
	ApplyPresentation(it)
	return it
}

// IsWeapon 是否为武器
func (it *Item) IsWeapon() bool { return it.Kind == KindWeapon && it.Weapon != nil }

// IsAmmo 是否为弹药
func (it *Item) IsAmmo() bool { return it.Kind == KindAmmo && it.Ammo != nil }

// InInventory 是否已被某个背包接收
func (it *Item) InInventory() bool { return it.SlotIndex != NoSlot }

// IsFlying 是否处于飞行插值中
func (it *Item) IsFlying() bool { return it.State == StateFlyingToOwner && it.Flight != nil }
