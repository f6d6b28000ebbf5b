package idgen

import "sync"

var (
	global Generator
	mu     sync.RWMutex
)

// Init 设置全局生成器
func Init(g Generator) {
	mu.Lock()
	defer mu.Unlock()
	global = g
}

// NextID 使用全局生成器生成ID
func NextID() (int64, error) {
	mu.RLock()
	g := global
	mu.RUnlock()

	if g == nil {
		return 0, ErrNotInitialized
	}
	return g.NextID()
}
