package bt

import "context"

// Inverter 反转节点：反转子节点的结果
type Inverter struct {
	BaseNode
	child Node
}

// NewInverter 创建反转节点
func NewInverter(name string, child Node) *Inverter {
	return &Inverter{
		BaseNode: BaseNode{name: name},
		child:    child,
	}
}

func (i *Inverter) Tick(ctx context.Context, bb *Blackboard, dt float64) Status {
	switch status := i.child.Tick(ctx, bb, dt); status {
	case StatusSuccess:
		return StatusFailure
	case StatusFailure:
		return StatusSuccess
	default:
		return status
	}
}

func (i *Inverter) Reset() {
	i.child.Reset()
}

// Repeater 重复节点：子节点每完成一次计数一次，达到次数后成功
// 子节点完成的那一帧返回 Running，下一帧开始新一轮
type Repeater struct {
	BaseNode
	child    Node
	maxCount int // 最大重复次数，-1 表示无限
	count    int
}

// NewRepeater 创建重复节点
func NewRepeater(name string, maxCount int, child Node) *Repeater {
	return &Repeater{
		BaseNode: BaseNode{name: name},
		child:    child,
		maxCount: maxCount,
	}
}

func (r *Repeater) Tick(ctx context.Context, bb *Blackboard, dt float64) Status {
	if r.maxCount != -1 && r.count >= r.maxCount {
		r.Reset()
		return StatusSuccess
	}

	if r.child.Tick(ctx, bb, dt) == StatusRunning {
		return StatusRunning
	}

	r.count++
	r.child.Reset()
	if r.maxCount != -1 && r.count >= r.maxCount {
		r.Reset()
		return StatusSuccess
	}
	return StatusRunning
}

// Count 已完成次数
func (r *Repeater) Count() int { return r.count }

func (r *Repeater) Reset() {
	r.count = 0
	r.child.Reset()
}
