// Package handle 提供带代数校验的句柄与对象池
//
// Handle 低 32 位为槽位索引，高 32 位为代数。对象移除时代数递增，
// 旧句柄随即失效，回调持有的过期句柄只会得到"不存在"。
package handle

import "fmt"

// Handle 代数句柄，零值永远无效
type Handle uint64

// Nil 无效句柄
const Nil Handle = 0

func newHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) Index() uint32      { return uint32(h) }
func (h Handle) Generation() uint32 { return uint32(h >> 32) }
func (h Handle) IsNil() bool        { return h == Nil }

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", h.Index(), h.Generation())
}

type slot[T any] struct {
	generation uint32
	alive      bool
	value      T
}

// Arena 代数校验的对象池，不加锁，只能在单个更新线程中使用
type Arena[T any] struct {
	slots    []slot[T]
	freeList []uint32
	count    int
}

// NewArena 创建对象池
func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots: make([]slot[T], 0, capacity),
	}
}

// Insert 放入对象并返回句柄
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.freeList); n > 0 {
		idx = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
	} else {
		idx = uint32(len(a.slots))
		// 代数从 1 开始，保证句柄不为零值
		a.slots = append(a.slots, slot[T]{generation: 1})
	}
	s := &a.slots[idx]
	s.alive = true
	s.value = v
	a.count++
	return newHandle(idx, s.generation)
}

// Get 获取对象，过期句柄返回 false
func (a *Arena[T]) Get(h Handle) (T, bool) {
	if s := a.lookup(h); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

// Alive 句柄是否仍然有效
func (a *Arena[T]) Alive(h Handle) bool {
	return a.lookup(h) != nil
}

// Remove 移除对象，代数递增；过期句柄返回 false
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	s := a.lookup(h)
	if s == nil {
		var zero T
		return zero, false
	}
	v := s.value
	var zero T
	s.value = zero
	s.alive = false
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	a.freeList = append(a.freeList, h.Index())
	a.count--
	return v, true
}

// Len 存活对象数量
func (a *Arena[T]) Len() int {
	return a.count
}

// Each 按索引顺序遍历存活对象，fn 返回 false 时停止
// 遍历过程中可以 Remove 当前对象，新插入的对象可能不会被访问
func (a *Arena[T]) Each(fn func(h Handle, v T) bool) {
	for i := 0; i < len(a.slots); i++ {
		s := &a.slots[i]
		if !s.alive {
			continue
		}
		if !fn(newHandle(uint32(i), s.generation), s.value) {
			return
		}
	}
}

// Handles 返回所有存活句柄的快照
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, 0, a.count)
	a.Each(func(h Handle, _ T) bool {
		out = append(out, h)
		return true
	})
	return out
}

func (a *Arena[T]) lookup(h Handle) *slot[T] {
	idx := h.Index()
	if h.IsNil() || int(idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if !s.alive || s.generation != h.Generation() {
		return nil
	}
	return s
}
