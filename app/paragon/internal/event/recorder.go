package event

import (
	"fmt"

	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
)

// Recorder 按顺序记录收到的事件，用于回放与测试断言
type Recorder struct {
	Events []string
}

func (r *Recorder) add(format string, args ...any) {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
}

// Reset 清空记录
func (r *Recorder) Reset() { r.Events = r.Events[:0] }

// Count 以 prefix 开头的事件数
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, e := range r.Events {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (r *Recorder) OnStateChanged(item handle.Handle, from, to model.State) {
	r.add("state %s %s->%s", item, from, to)
}

func (r *Recorder) OnPresentation(item handle.Handle, p model.Presentation) {
	r.add("presentation %s rev=%d", item, p.Revision)
}

func (r *Recorder) OnPickupWidget(item handle.Handle, visible bool) {
	r.add("widget %s %t", item, visible)
}

func (r *Recorder) OnHighlight(agent handle.Handle, slot int, on bool) {
	r.add("highlight %d %t", slot, on)
}

func (r *Recorder) OnEquipSlotChanged(agent handle.Handle, from, to int) {
	r.add("equip %d->%d", from, to)
}

func (r *Recorder) OnCombatStateChanged(agent handle.Handle, from, to model.CombatState) {
	r.add("combat %s->%s", from, to)
}

func (r *Recorder) OnSound(agent handle.Handle, cue Cue) {
	r.add("sound %s", cue)
}

func (r *Recorder) OnMontage(agent handle.Handle, montage, section string) {
	r.add("montage %s/%s", montage, section)
}

var _ Observer = (*Recorder)(nil)
