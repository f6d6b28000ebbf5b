// Package redis go-redis 的薄封装，对外只暴露字节读写
package redis

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// Client Redis 客户端（隐藏 go-redis 类型）
type Client struct {
	rdb    redis.UniversalClient
	cfg    *Config
	closed atomic.Bool
}

// NewClient 创建 Redis 客户端，不会主动建立连接
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg}
	p := cfg.Pool
	if cfg.IsCluster() {
		c.rdb = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           cfg.Cluster.Addrs,
			Password:        cfg.Cluster.Password,
			MaxIdleConns:    p.MaxIdleConns,
			MaxActiveConns:  p.MaxOpenConns,
			ConnMaxLifetime: p.ConnMaxLifetime,
			ConnMaxIdleTime: p.ConnMaxIdleTime,
			DialTimeout:     p.DialTimeout,
			ReadTimeout:     p.ReadTimeout,
			WriteTimeout:    p.WriteTimeout,
			PoolTimeout:     p.PoolTimeout,
		})
		return c, nil
	}

	c.rdb = redis.NewClient(&redis.Options{
		Addr:            cfg.Standalone.Addr(),
		Password:        cfg.Standalone.Password,
		DB:              cfg.Standalone.DB,
		MaxIdleConns:    p.MaxIdleConns,
		MaxActiveConns:  p.MaxOpenConns,
		ConnMaxLifetime: p.ConnMaxLifetime,
		ConnMaxIdleTime: p.ConnMaxIdleTime,
		DialTimeout:     p.DialTimeout,
		ReadTimeout:     p.ReadTimeout,
		WriteTimeout:    p.WriteTimeout,
		PoolTimeout:     p.PoolTimeout,
	})
	return c, nil
}

// Ping 测试连接
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	return nil
}

// Get 读取字节值，键不存在返回 ErrNil
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %s", key)
	}
	return b, nil
}

// Set 写入字节值，ttl 为 0 表示不过期
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}
	return nil
}

// Del 删除键，返回实际删除的数量
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.Wrap(err, "redis del")
	}
	return n, nil
}

// TTL 键剩余过期时间
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	d, err := c.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "redis ttl %s", key)
	}
	return d, nil
}

// Close 关闭客户端，重复关闭返回 nil
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.rdb.Close()
}
