package bt

import (
	"context"

	"github.com/lk2023060901/paragon/pkg/logger"
)

// Tree 行为树，由调用方每帧驱动
type Tree struct {
	root       Node
	blackboard *Blackboard
	logger     logger.Logger
	last       Status
}

// NewTree 创建行为树
func NewTree(root Node, l logger.Logger) *Tree {
	if l == nil {
		l = logger.NewNoop()
	}
	return &Tree{
		root:       root,
		blackboard: NewBlackboard(),
		logger:     l.Named("bt"),
	}
}

// Tick 执行一帧；根节点完成（成功或失败）后重置，下一帧从头开始
func (t *Tree) Tick(ctx context.Context, dt float64) Status {
	status := t.root.Tick(ctx, t.blackboard, dt)
	if status != t.last {
		t.logger.DebugContext(ctx, "tree status changed",
			"root", t.root.Name(),
			"from", t.last.String(),
			"to", status.String(),
		)
		t.last = status
	}
	if status != StatusRunning {
		t.root.Reset()
	}
	return status
}

// Blackboard 获取黑板
func (t *Tree) Blackboard() *Blackboard {
	return t.blackboard
}

// Reset 重置行为树
func (t *Tree) Reset() {
	t.root.Reset()
	t.blackboard.Clear()
	t.last = StatusInvalid
}
