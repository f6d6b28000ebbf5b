// Package store 装备存档持久化
package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/snapshot"
	"github.com/lk2023060901/paragon/pkg/compress"
	"github.com/lk2023060901/paragon/pkg/config"
	"github.com/lk2023060901/paragon/pkg/database/redis"
	"github.com/lk2023060901/paragon/pkg/logger"
)

var (
	ErrLoadoutNotFound = errors.New("store: loadout not found")
	ErrStoreClosed     = errors.New("store: closed")
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Store 以角色名为键保存装备存档
type Store interface {
	Save(ctx context.Context, name string, l *snapshot.Loadout) error
	Load(ctx context.Context, name string) (*snapshot.Loadout, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Config 存档配置
type Config struct {
	Driver      string        `mapstructure:"driver" validate:"oneof=memory redis"`
	Compression string        `mapstructure:"compression" validate:"oneof=none snappy lz4 zstd"`
	TTL         time.Duration `mapstructure:"ttl" validate:"gte=0"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
}

// DefaultConfig 默认内存存储，zstd 压缩
func DefaultConfig() *Config {
	return &Config{
		Driver:      DriverMemory,
		Compression: compress.CodecZstd.String(),
		KeyPrefix:   "paragon:loadout:",
	}
}

// New 按配置创建存储，redis 驱动需要传入客户端
func New(cfg *Config, rc *redis.Client, l logger.Logger) (Store, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, err
	}
	if err := config.NewValidator().Validate(merged); err != nil {
		return nil, errors.Wrap(err, "validate store config")
	}
	var codec compress.Codec
	if err := codec.UnmarshalText([]byte(merged.Compression)); err != nil {
		return nil, err
	}
	if l == nil {
		l = logger.NewNoop()
	}

	switch merged.Driver {
	case DriverRedis:
		if rc == nil {
			return nil, errors.New("store: redis driver requires a redis client")
		}
		return NewRedisStore(rc, codec, merged.TTL, merged.KeyPrefix, l), nil
	default:
		return NewMemoryStore(codec), nil
	}
}
