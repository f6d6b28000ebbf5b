package event

import (
	"testing"

	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/stretchr/testify/assert"
)

type soundOnly struct {
	NopObserver
	cues []Cue
}

func (s *soundOnly) OnSound(_ handle.Handle, cue Cue) { s.cues = append(s.cues, cue) }

func TestBusDispatch(t *testing.T) {
	rec := &Recorder{}
	snd := &soundOnly{}
	bus := NewBus(rec, nil)
	cancel := bus.Subscribe(snd)
	assert.Equal(t, 2, bus.Len())

	bus.OnSound(handle.Nil, CueFire)
	bus.OnCombatStateChanged(handle.Nil, model.CombatUnoccupied, model.CombatReloading)
	bus.OnHighlight(handle.Nil, 2, true)

	assert.Equal(t, []string{
		"sound fire",
		"combat Unoccupied->Reloading",
		"highlight 2 true",
	}, rec.Events)
	assert.Equal(t, []Cue{CueFire}, snd.cues)

	cancel()
	bus.OnSound(handle.Nil, CuePickup)
	assert.Len(t, snd.cues, 1)
	assert.Equal(t, 1, rec.Count("sound pickup"))
}
