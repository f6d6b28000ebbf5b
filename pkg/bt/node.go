// Package bt 按帧驱动的行为树
package bt

import "context"

// Status 节点执行状态
type Status int

const (
	StatusInvalid Status = iota
	StatusSuccess        // 成功
	StatusFailure        // 失败
	StatusRunning        // 运行中
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusRunning:
		return "Running"
	default:
		return "Invalid"
	}
}

// Node 行为树节点
type Node interface {
	// Tick 执行一帧，dt 为帧时长（秒）
	Tick(ctx context.Context, bb *Blackboard, dt float64) Status

	// Reset 重置节点状态
	Reset()

	Name() string
}

// BaseNode 基础节点
type BaseNode struct {
	name string
}

func (n *BaseNode) Name() string {
	return n.name
}

func (n *BaseNode) Reset() {}

// Action 叶子节点，执行函数并返回其状态
type Action struct {
	BaseNode
	fn func(ctx context.Context, bb *Blackboard) Status
}

// NewAction 创建动作节点
func NewAction(name string, fn func(ctx context.Context, bb *Blackboard) Status) *Action {
	return &Action{BaseNode: BaseNode{name: name}, fn: fn}
}

func (a *Action) Tick(ctx context.Context, bb *Blackboard, _ float64) Status {
	return a.fn(ctx, bb)
}

// NewCondition 条件节点，true 为成功
func NewCondition(name string, fn func(bb *Blackboard) bool) *Action {
	return NewAction(name, func(_ context.Context, bb *Blackboard) Status {
		if fn(bb) {
			return StatusSuccess
		}
		return StatusFailure
	})
}

// Wait 等待节点：累计帧时长达到 duration 后成功
type Wait struct {
	BaseNode
	duration float64
	elapsed  float64
}

// NewWait 创建等待节点，duration 单位为秒
func NewWait(name string, duration float64) *Wait {
	return &Wait{BaseNode: BaseNode{name: name}, duration: duration}
}

func (w *Wait) Tick(_ context.Context, _ *Blackboard, dt float64) Status {
	w.elapsed += dt
	if w.elapsed+1e-9 < w.duration {
		return StatusRunning
	}
	w.Reset()
	return StatusSuccess
}

func (w *Wait) Reset() {
	w.elapsed = 0
}
