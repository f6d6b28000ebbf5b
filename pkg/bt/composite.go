package bt

import "context"

// Sequence 顺序节点：按顺序执行子节点，全部成功才成功
type Sequence struct {
	BaseNode
	children []Node
	current  int
}

// NewSequence 创建顺序节点
func NewSequence(name string, children ...Node) *Sequence {
	return &Sequence{
		BaseNode: BaseNode{name: name},
		children: children,
	}
}

func (s *Sequence) Tick(ctx context.Context, bb *Blackboard, dt float64) Status {
	for s.current < len(s.children) {
		switch s.children[s.current].Tick(ctx, bb, dt) {
		case StatusSuccess:
			s.current++
		case StatusRunning:
			return StatusRunning
		default:
			s.Reset()
			return StatusFailure
		}
	}

	s.Reset()
	return StatusSuccess
}

func (s *Sequence) Reset() {
	s.current = 0
	for _, child := range s.children {
		child.Reset()
	}
}

// Selector 选择节点：按顺序执行子节点，有一个成功就成功
type Selector struct {
	BaseNode
	children []Node
	current  int
}

// NewSelector 创建选择节点
func NewSelector(name string, children ...Node) *Selector {
	return &Selector{
		BaseNode: BaseNode{name: name},
		children: children,
	}
}

func (s *Selector) Tick(ctx context.Context, bb *Blackboard, dt float64) Status {
	for s.current < len(s.children) {
		switch s.children[s.current].Tick(ctx, bb, dt) {
		case StatusSuccess:
			s.Reset()
			return StatusSuccess
		case StatusRunning:
			return StatusRunning
		default:
			s.current++
		}
	}

	s.Reset()
	return StatusFailure
}

func (s *Selector) Reset() {
	s.current = 0
	for _, child := range s.children {
		child.Reset()
	}
}
