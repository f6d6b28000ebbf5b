package bt

// Blackboard 黑板，节点间共享数据；树在更新线程上执行，不加锁
type Blackboard struct {
	data map[string]any
}

// NewBlackboard 创建黑板
func NewBlackboard() *Blackboard {
	return &Blackboard{
		data: make(map[string]any),
	}
}

// Set 设置数据
func (bb *Blackboard) Set(key string, value any) {
	bb.data[key] = value
}

// Get 获取数据
func (bb *Blackboard) Get(key string) (any, bool) {
	val, ok := bb.data[key]
	return val, ok
}

// Has 检查是否存在
func (bb *Blackboard) Has(key string) bool {
	_, ok := bb.data[key]
	return ok
}

// Delete 删除数据
func (bb *Blackboard) Delete(key string) {
	delete(bb.data, key)
}

// Clear 清空黑板
func (bb *Blackboard) Clear() {
	clear(bb.data)
}

// Value 按类型读取，类型不符视为不存在
func Value[T any](bb *Blackboard, key string) (T, bool) {
	var zero T
	val, ok := bb.data[key]
	if !ok {
		return zero, false
	}
	v, ok := val.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
