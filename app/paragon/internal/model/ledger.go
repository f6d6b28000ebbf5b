package model

import "sort"

// AmmoLedger 按弹药类型记录的携带数量，与武器弹匣分开
type AmmoLedger struct {
	counts map[AmmoType]int
}

// NewAmmoLedger 创建弹药账本
func NewAmmoLedger() *AmmoLedger {
	return &AmmoLedger{counts: make(map[AmmoType]int)}
}

// Count 获取携带数量，不存在的类型为 0
func (l *AmmoLedger) Count(t AmmoType) int {
	return l.counts[t]
}

// Has 账本中是否存在该类型的条目
func (l *AmmoLedger) Has(t AmmoType) bool {
	_, ok := l.counts[t]
	return ok
}

// Add 增加数量，条目不存在时从 0 创建；n <= 0 只创建条目
func (l *AmmoLedger) Add(t AmmoType, n int) {
	if n < 0 {
		n = 0
	}
	l.counts[t] += n
}

// Take 取出至多 n 发，返回实际取出数量
func (l *AmmoLedger) Take(t AmmoType, n int) int {
	if n <= 0 {
		return 0
	}
	have := l.counts[t]
	if n > have {
		n = have
	}
	l.counts[t] = have - n
	return n
}

// Snapshot 按类型排序的副本
func (l *AmmoLedger) Snapshot() map[AmmoType]int {
	out := make(map[AmmoType]int, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}

// Types 已有条目的类型，按值排序
func (l *AmmoLedger) Types() []AmmoType {
	out := make([]AmmoType, 0, len(l.counts))
	for k := range l.counts {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
