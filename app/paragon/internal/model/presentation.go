package model

// Collision 碰撞模式
type Collision uint8

const (
	CollisionNone Collision = iota
	CollisionQueryOnly
	CollisionQueryAndPhysics
)

func (c Collision) String() string {
	switch c {
	case CollisionQueryOnly:
		return "QueryOnly"
	case CollisionQueryAndPhysics:
		return "QueryAndPhysics"
	default:
		return "None"
	}
}

// Presentation 状态对应的渲染/物理表现，由外部渲染物理模块消费
type Presentation struct {
	Visible          bool
	PhysicsSimulated bool      // 受重力
	Collision        Collision // 网格碰撞
	AreaOverlap      bool      // 拾取范围是否可被重叠检测
	TraceBlocking    bool      // 是否阻挡准星射线（可被瞄准拾取）
	Attached         bool      // 挂在持有者身上
	WidgetVisible    bool      // 拾取提示

	// Revision 仅在表现真正变化时递增
	Revision uint64
}

func (p Presentation) sameMode(o Presentation) bool {
	p.Revision, o.Revision = 0, 0
	return p == o
}

// PresentationFor 计算状态对应的表现
func PresentationFor(s State) Presentation {
	switch s {
	case StatePickupIdle:
		return Presentation{Visible: true, AreaOverlap: true, TraceBlocking: true}
	case StateFlyingToOwner:
		return Presentation{Visible: true}
	case StateCarriedUnequipped:
		return Presentation{Attached: true}
	case StateEquipped:
		return Presentation{Visible: true, Attached: true}
	case StateFallingDropped:
		return Presentation{Visible: true, PhysicsSimulated: true, Collision: CollisionQueryAndPhysics}
	default:
		return Presentation{}
	}
}

// ApplyPresentation 按当前状态同步表现，可重复调用；返回表现是否发生变化
// 拾取提示只在 PickupIdle 下由准星检测控制，离开该状态时强制隐藏
func ApplyPresentation(it *Item) bool {
	if it == nil {
		return false
	}
	next := PresentationFor(it.State)
	if it.State == StatePickupIdle {
		next.WidgetVisible = it.PickupWidgetVisible
	} else {
		it.PickupWidgetVisible = false
	}

	if next.sameMode(it.Presentation) && it.Presentation.Revision != 0 {
		return false
	}
	next.Revision = it.Presentation.Revision + 1
	it.Presentation = next
	return true
}
