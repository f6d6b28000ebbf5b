package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/app/paragon/internal/snapshot"
	"github.com/lk2023060901/paragon/pkg/compress"
	"github.com/lk2023060901/paragon/pkg/database/redis"
	"github.com/lk2023060901/paragon/pkg/logger"
)

// RedisStore 存档保存在 Redis 字符串键 <prefix><name> 中
type RedisStore struct {
	client *redis.Client
	codec  compress.Codec
	ttl    time.Duration
	prefix string
	logger logger.Logger
}

// NewRedisStore 创建 Redis 存储，客户端的关闭由 Close 负责
func NewRedisStore(client *redis.Client, codec compress.Codec, ttl time.Duration, prefix string, l logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		codec:  codec,
		ttl:    ttl,
		prefix: prefix,
		logger: l.Named("store.redis"),
	}
}

func (s *RedisStore) key(name string) string { return s.prefix + name }

func (s *RedisStore) Save(ctx context.Context, name string, l *snapshot.Loadout) error {
	data, err := snapshot.Encode(l, s.codec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(name), data, s.ttl); err != nil {
		return err
	}
	s.logger.Debug("loadout saved", "agent", name, "bytes", len(data), "codec", s.codec.String())
	return nil
}

func (s *RedisStore) Load(ctx context.Context, name string) (*snapshot.Loadout, error) {
	data, err := s.client.Get(ctx, s.key(name))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrLoadoutNotFound
	}
	if err != nil {
		return nil, err
	}
	l, err := snapshot.Decode(data)
	if err != nil {
		s.logger.Warn("loadout decode failed", "agent", name, "error", err)
		return nil, err
	}
	return l, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.Del(ctx, s.key(name))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLoadoutNotFound
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
