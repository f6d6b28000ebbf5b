package event

import (
	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
)

// Bus 观察者注册表，按注册顺序分发
// 与玩法核心一样只在更新线程中使用
type Bus struct {
	observers []Observer
}

// NewBus 创建事件总线
func NewBus(observers ...Observer) *Bus {
	b := &Bus{}
	for _, o := range observers {
		b.Subscribe(o)
	}
	return b
}

// Subscribe 注册观察者，返回取消函数
func (b *Bus) Subscribe(o Observer) func() {
	if o == nil {
		return func() {}
	}
	b.observers = append(b.observers, o)
	return func() { b.unsubscribe(o) }
}

func (b *Bus) unsubscribe(o Observer) {
	for i, cur := range b.observers {
		if cur == o {
			b.observers = append(b.observers[:i:i], b.observers[i+1:]...)
			return
		}
	}
}

// Len 观察者数量
func (b *Bus) Len() int { return len(b.observers) }

func (b *Bus) OnStateChanged(item handle.Handle, from, to model.State) {
	for _, o := range b.observers {
		o.OnStateChanged(item, from, to)
	}
}

func (b *Bus) OnPresentation(item handle.Handle, p model.Presentation) {
	for _, o := range b.observers {
		o.OnPresentation(item, p)
	}
}

func (b *Bus) OnPickupWidget(item handle.Handle, visible bool) {
	for _, o := range b.observers {
		o.OnPickupWidget(item, visible)
	}
}

func (b *Bus) OnHighlight(agent handle.Handle, slot int, on bool) {
	for _, o := range b.observers {
		o.OnHighlight(agent, slot, on)
	}
}

func (b *Bus) OnEquipSlotChanged(agent handle.Handle, from, to int) {
	for _, o := range b.observers {
		o.OnEquipSlotChanged(agent, from, to)
	}
}

func (b *Bus) OnCombatStateChanged(agent handle.Handle, from, to model.CombatState) {
	for _, o := range b.observers {
		o.OnCombatStateChanged(agent, from, to)
	}
}

func (b *Bus) OnSound(agent handle.Handle, cue Cue) {
	for _, o := range b.observers {
		o.OnSound(agent, cue)
	}
}

func (b *Bus) OnMontage(agent handle.Handle, montage, section string) {
	for _, o := range b.observers {
		o.OnMontage(agent, montage, section)
	}
}

var _ Observer = (*Bus)(nil)
