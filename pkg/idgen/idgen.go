// Package idgen 物品序列号生成
package idgen

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// ErrNotInitialized 全局生成器未初始化
var ErrNotInitialized = errors.New("idgen: generator not initialized")

// Generator ID生成器接口
type Generator interface {
	// NextID 生成下一个唯一ID
	NextID() (int64, error)
}

// Sequence 进程内自增序列，从 start+1 开始，适用于单进程回放与测试
type Sequence struct {
	n atomic.Int64
}

// NewSequence 创建自增序列
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.n.Store(start)
	return s
}

func (s *Sequence) NextID() (int64, error) {
	return s.n.Add(1), nil
}

// Func 函数式生成器
type Func func() (int64, error)

func (f Func) NextID() (int64, error) { return f() }
