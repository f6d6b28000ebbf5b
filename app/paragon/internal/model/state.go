package model

// State 物品生命周期状态
type State uint8

const (
	StatePickupIdle State = iota
	StateFlyingToOwner
	StateCarriedUnequipped
	StateEquipped
	StateFallingDropped
)

func (s State) String() string {
	switch s {
	case StatePickupIdle:
		return "PickupIdle"
	case StateFlyingToOwner:
		return "FlyingToOwner"
	case StateCarriedUnequipped:
		return "CarriedUnequipped"
	case StateEquipped:
		return "Equipped"
	case StateFallingDropped:
		return "FallingDropped"
	default:
		return "Invalid"
	}
}

// transitions 合法迁移表，停留在当前状态总是合法的
// 持有者在飞行途中消失时物品直接掉落，因此 FlyingToOwner 可以进入 FallingDropped
var transitions = map[State][]State{
	StatePickupIdle:        {StateFlyingToOwner},
	StateFlyingToOwner:     {StateCarriedUnequipped, StateEquipped, StateFallingDropped},
	StateCarriedUnequipped: {StateEquipped, StateFallingDropped},
	StateEquipped:          {StateCarriedUnequipped, StateFallingDropped},
	StateFallingDropped:    {StatePickupIdle},
}

// CanTransition 迁移是否合法
func CanTransition(from, to State) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SetState 设置物品状态，只做赋值，表现同步由 ApplyPresentation 负责
// 非法迁移静默忽略，返回 false
func SetState(it *Item, to State) bool {
	if it == nil || !CanTransition(it.State, to) {
		return false
	}
	it.State = to
	return true
}
