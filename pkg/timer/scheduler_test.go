package timer

import (
	"testing"

	"github.com/lk2023060901/paragon/pkg/handle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresAfterDuration(t *testing.T) {
	s := NewScheduler()
	fired := 0
	h := s.Set(0.7, func() { fired++ })
	require.True(t, s.IsActive(h))

	for i := 0; i < 6; i++ {
		s.Advance(0.1)
	}
	assert.Equal(t, 0, fired)
	assert.InDelta(t, 0.6, s.Elapsed(h), 1e-9)
	assert.InDelta(t, 0.1, s.Remaining(h), 1e-9)

	s.Advance(0.1)
	assert.Equal(t, 1, fired)
	assert.False(t, s.IsActive(h))
	assert.Equal(t, -1.0, s.Elapsed(h))

	s.Advance(1)
	assert.Equal(t, 1, fired, "one-shot timers fire once")
}

func TestSchedulerNeverFiresInArmingFrame(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.Set(0, func() {
		order = append(order, "outer")
		// 在触发帧内设置的零时长定时器要等到下一帧
		s.Set(0, func() { order = append(order, "inner") })
	})

	s.Advance(0.016)
	assert.Equal(t, []string{"outer"}, order)
	s.Advance(0.016)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestSchedulerClearAndRearm(t *testing.T) {
	s := NewScheduler()
	var fired []string

	h := s.Set(0.5, func() { fired = append(fired, "old") })
	s.Advance(0.2)
	h = s.Rearm(h, 0.5, func() { fired = append(fired, "new") })

	s.Advance(0.3)
	assert.Empty(t, fired, "the replaced timer must not fire")
	s.Advance(0.2)
	assert.Equal(t, []string{"new"}, fired)

	assert.False(t, s.Clear(h))
	assert.False(t, s.Clear(handle.Nil))
	assert.Equal(t, handle.Nil, s.Set(1, nil))
}

func TestSchedulerOrderingAndCancelFromCallback(t *testing.T) {
	s := NewScheduler()
	var fired []int
	var third handle.Handle

	s.Set(0.3, func() { fired = append(fired, 2) })
	s.Set(0.1, func() {
		fired = append(fired, 1)
		s.Clear(third)
	})
	third = s.Set(0.2, func() { fired = append(fired, 3) })

	assert.Equal(t, 2, s.Advance(1))
	assert.Equal(t, []int{1, 2}, fired)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerTimeAccounting(t *testing.T) {
	s := NewScheduler()
	s.Advance(-1)
	assert.Equal(t, 0.0, s.Now())
	assert.Equal(t, uint64(1), s.Frame())
	s.Advance(0.25)
	assert.Equal(t, 0.25, s.Now())
}
