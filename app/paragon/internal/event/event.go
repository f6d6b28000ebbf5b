// Package event 定义玩法核心对外的单向通知
//
// 渲染、物理、动画、音频与 UI 都是外部协作者，只通过 Observer 接收通知，
// 不向玩法核心返回任何结果。
package event

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
)

// Cue 音效
type Cue string

const (
	CuePickup Cue = "pickup"
	CueEquip  Cue = "equip"
	CueFire   Cue = "fire"
)

// 动画蒙太奇
const (
	MontageHipFire = "HipFire"
	MontageReload  = "Reload"
	MontageEquip   = "Equip"

	SectionStartFire = "StartFire"
	SectionEquip     = "Equip"
)

// Observer 玩法事件观察者
type Observer interface {
	// 物品
	OnStateChanged(item handle.Handle, from, to model.State)
	OnPresentation(item handle.Handle, p model.Presentation)
	OnPickupWidget(item handle.Handle, visible bool)

	// 背包
	OnHighlight(agent handle.Handle, slot int, on bool)
	OnEquipSlotChanged(agent handle.Handle, from, to int)

	// 角色
	OnCombatStateChanged(agent handle.Handle, from, to model.CombatState)
	OnSound(agent handle.Handle, cue Cue)
	OnMontage(agent handle.Handle, montage, section string)
}

// NopObserver 空实现，供只关心部分事件的观察者嵌入
type NopObserver struct{}

func (NopObserver) OnStateChanged(handle.Handle, model.State, model.State)                   {}
func (NopObserver) OnPresentation(handle.Handle, model.Presentation)                         {}
func (NopObserver) OnPickupWidget(handle.Handle, bool)                                       {}
func (NopObserver) OnHighlight(handle.Handle, int, bool)                                     {}
func (NopObserver) OnEquipSlotChanged(handle.Handle, int, int)                               {}
func (NopObserver) OnCombatStateChanged(handle.Handle, model.CombatState, model.CombatState) {}
func (NopObserver) OnSound(handle.Handle, Cue)                                               {}
func (NopObserver) OnMontage(handle.Handle, string, string)                                  {}

var _ Observer = NopObserver{}
