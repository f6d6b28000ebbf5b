// Package timer 提供按帧推进的一次性定时器
//
// 所有定时器都在调用 Advance 的线程上触发。某一帧内设置的定时器最早在下一帧触发，
// 即使时长为 0；同一帧内到期的定时器按到期时间、设置顺序依次触发。
package timer

import (
	"sort"

	"github.com/lk2023060901/paragon/pkg/handle"
)

// Epsilon 时间比较容差（秒），使 7 次 0.1 的累加能够到达 0.7
const Epsilon = 1e-6

type entry struct {
	start      float64
	due        float64
	armedFrame uint64
	seq        uint64
	fn         func()
}

// Scheduler 定时器调度器，不加锁
type Scheduler struct {
	timers *handle.Arena[*entry]
	now    float64
	frame  uint64
	seq    uint64
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{timers: handle.NewArena[*entry](32)}
}

// Now 当前时间（秒）
func (s *Scheduler) Now() float64 { return s.now }

// Frame 已推进的帧数
func (s *Scheduler) Frame() uint64 { return s.frame }

// Pending 未触发的定时器数量
func (s *Scheduler) Pending() int { return s.timers.Len() }

// Set 设置 d 秒后触发的一次性定时器
func (s *Scheduler) Set(d float64, fn func()) handle.Handle {
	if fn == nil {
		return handle.Nil
	}
	if d < 0 {
		d = 0
	}
	s.seq++
	return s.timers.Insert(&entry{
		start:      s.now,
		due:        s.now + d,
		armedFrame: s.frame,
		seq:        s.seq,
		fn:         fn,
	})
}

// Clear 取消定时器，句柄已触发或已取消时返回 false
func (s *Scheduler) Clear(h handle.Handle) bool {
	_, ok := s.timers.Remove(h)
	return ok
}

// Rearm 先显式取消 h，再设置新的定时器
func (s *Scheduler) Rearm(h handle.Handle, d float64, fn func()) handle.Handle {
	s.Clear(h)
	return s.Set(d, fn)
}

// IsActive 定时器是否仍在等待
func (s *Scheduler) IsActive(h handle.Handle) bool {
	return s.timers.Alive(h)
}

// Elapsed 自设置以来经过的时间，定时器无效时返回 -1
func (s *Scheduler) Elapsed(h handle.Handle) float64 {
	e, ok := s.timers.Get(h)
	if !ok {
		return -1
	}
	return s.now - e.start
}

// Remaining 距离触发的剩余时间，定时器无效时返回 -1
func (s *Scheduler) Remaining(h handle.Handle) float64 {
	e, ok := s.timers.Get(h)
	if !ok {
		return -1
	}
	if r := e.due - s.now; r > 0 {
		return r
	}
	return 0
}

type dueTimer struct {
	h handle.Handle
	e *entry
}

// Advance 推进 dt 秒并触发到期定时器，返回触发数量
func (s *Scheduler) Advance(dt float64) int {
	if dt < 0 {
		dt = 0
	}
	s.frame++
	s.now += dt

	var due []dueTimer
	s.timers.Each(func(h handle.Handle, e *entry) bool {
		if e.armedFrame < s.frame && e.due <= s.now+Epsilon {
			due = append(due, dueTimer{h: h, e: e})
		}
		return true
	})
	if len(due) == 0 {
		return 0
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].e.due != due[j].e.due {
			return due[i].e.due < due[j].e.due
		}
		return due[i].e.seq < due[j].e.seq
	})

	fired := 0
	for _, d := range due {
		// 前面的回调可能已经取消了它
		if _, ok := s.timers.Remove(d.h); !ok {
			continue
		}
		fired++
		d.e.fn()
	}
	return fired
}
