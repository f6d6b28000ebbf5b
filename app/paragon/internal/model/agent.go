package model

import (
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/lk2023060901/paragon/pkg/mathx"
)

// Agent 玩家控制的角色
type Agent struct {
	Handle handle.Handle
	Name   string

	Inventory *Inventory
	Ledger    *AmmoLedger
	Anchors   *AnchorSet

	Combat      CombatState
	TriggerHeld bool

	// Camera 观察者相机，飞行物品朝向跟随其 yaw
	Camera   mathx.Transform
	Location mathx.Vector

	// 拾取检测
	OverlappedItems int
	TraceEnabled    bool
	TraceHit        handle.Handle // 本帧准星下的物品
	LastTraceHit    handle.Handle // 上一帧显示拾取提示的物品

	// 定时器
	CombatTimer      handle.Handle // 开火/换弹/装备共用，同一时刻只有一个
	CrosshairTimer   handle.Handle
	PickupSoundTimer handle.Handle
	EquipSoundTimer  handle.Handle

	FiringBullet bool
}

// NewAgent 创建角色
func NewAgent(name string, capacity int) *Agent {
	return &Agent{
		Name:      name,
		Inventory: NewInventory(handle.Nil, capacity),
		Ledger:    NewAmmoLedger(),
		Anchors:   NewAnchorSet(DefaultAnchorOffsets),
		Camera:    mathx.Transform{Scale: 1},
	}
}

// Bind 放入对象池后绑定句柄
func (a *Agent) Bind(h handle.Handle) {
	a.Handle = h
	a.Inventory.owner = h
}

// CameraInterpLocation 相机前方 dist、上方 elevation 处的插值基准点
func (a *Agent) CameraInterpLocation(dist, elevation float64) mathx.Vector {
	forward := a.Camera.Rotation.Forward()
	return a.Camera.Location.
		Add(forward.Scale(dist)).
		Add(mathx.Up.Scale(elevation))
}

// AnchorLocation 锚点的世界位置
func (a *Agent) AnchorLocation(index int, dist, elevation float64) mathx.Vector {
	base := a.CameraInterpLocation(dist, elevation)
	anchor, ok := a.Anchors.Get(index)
	if !ok {
		return base
	}
	return base.Add(anchor.Offset)
}
