package model

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// WeaponType 武器类型
type WeaponType uint8

const (
	WeaponSubmachineGun WeaponType = iota
	WeaponAssaultRifle
	WeaponPistol
)

var weaponTypeNames = [...]string{"SubmachineGun", "AssaultRifle", "Pistol"}

func (t WeaponType) String() string {
	if int(t) < len(weaponTypeNames) {
		return weaponTypeNames[t]
	}
	return "Invalid"
}

// UnmarshalText 从数据表中的名称解析
func (t *WeaponType) UnmarshalText(text []byte) error {
	for i, name := range weaponTypeNames {
		if strings.EqualFold(name, string(text)) {
			*t = WeaponType(i)
			return nil
		}
	}
	return errors.Newf("unknown weapon type %q", text)
}

// AmmoType 弹药类型
type AmmoType uint8

const (
	Ammo9mm AmmoType = iota
	AmmoAR
)

var ammoTypeNames = [...]string{"9mm", "AR"}

func (t AmmoType) String() string {
	if int(t) < len(ammoTypeNames) {
		return ammoTypeNames[t]
	}
	return "Invalid"
}

// UnmarshalText 从数据表中的名称解析
func (t *AmmoType) UnmarshalText(text []byte) error {
	for i, name := range ammoTypeNames {
		if strings.EqualFold(name, string(text)) {
			*t = AmmoType(i)
			return nil
		}
	}
	return errors.Newf("unknown ammo type %q", text)
}

// Weapon 武器数据，弹匣数量始终在 [0, Capacity]
type Weapon struct {
	Type     WeaponType
	AmmoType AmmoType
	Ammo     int
	Capacity int

	// FireRate 连射间隔（秒），0 表示使用全局配置
	FireRate float64

	ReloadSection string
	ClipBone      string
}

// HasAmmo 弹匣是否还有子弹
func (w *Weapon) HasAmmo() bool { return w.Ammo > 0 }

// IsClipFull 弹匣是否已满
func (w *Weapon) IsClipFull() bool { return w.Ammo >= w.Capacity }

// Missing 弹匣缺少的子弹数
func (w *Weapon) Missing() int {
	if m := w.Capacity - w.Ammo; m > 0 {
		return m
	}
	return 0
}

// DecrementAmmo 消耗一发，最低为 0
func (w *Weapon) DecrementAmmo() {
	if w.Ammo > 0 {
		w.Ammo--
	}
}

// ReloadAmmo 装填 n 发，超出容量的部分不装入，返回实际装入数量
func (w *Weapon) ReloadAmmo(n int) int {
	if n <= 0 {
		return 0
	}
	if m := w.Missing(); n > m {
		n = m
	}
	w.Ammo += n
	return n
}

// AmmoPack 弹药拾取物数据
type AmmoPack struct {
	Type  AmmoType
	Count int
}
