package redis

import "github.com/cockroachdb/errors"

var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("redis config is nil")

	// ErrInvalidConfig 必须且只能配置 standalone 或 cluster 中的一种
	ErrInvalidConfig = errors.New("invalid redis config: must specify exactly one of standalone or cluster")

	// ErrNil 键不存在
	ErrNil = errors.New("redis: nil")

	// ErrClosed 客户端已关闭
	ErrClosed = errors.New("redis: client closed")
)
