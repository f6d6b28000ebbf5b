package redis

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddrEnv 集成测试使用的 Redis 地址，未设置时跳过
const TestAddrEnv = "PARAGON_TEST_REDIS_ADDR"

func testConfig(t *testing.T) *Config {
	t.Helper()
	addr := os.Getenv(TestAddrEnv)
	if addr == "" {
		t.Skipf("%s not set", TestAddrEnv)
	}
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return &Config{
		Standalone: &NodeConfig{Host: host, Port: port},
		Pool: PoolConfig{
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrNilConfig)
	assert.ErrorIs(t, (&Config{}).Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, (&Config{
		Standalone: &NodeConfig{Host: "localhost", Port: 6379},
		Cluster:    &ClusterConfig{Addrs: []string{"localhost:7001"}},
	}).Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, (&Config{Cluster: &ClusterConfig{}}).Validate(), ErrInvalidConfig)

	cfg := &Config{Standalone: &NodeConfig{Host: "localhost", Port: 6379}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:6379", cfg.Standalone.Addr())
	assert.False(t, cfg.IsCluster())
}

func TestClosedClient(t *testing.T) {
	c, err := NewClient(&Config{Standalone: &NodeConfig{Host: "127.0.0.1", Port: 1}})
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	ctx := context.Background()
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.Set(ctx, "k", nil, 0), ErrClosed)
	assert.ErrorIs(t, c.Ping(ctx), ErrClosed)
}

func TestClientIntegration(t *testing.T) {
	c, err := NewClient(testConfig(t))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	key := "paragon:test:" + strconv.FormatInt(time.Now().UnixNano(), 10)
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNil)

	require.NoError(t, c.Set(ctx, key, []byte{1, 2, 3}, time.Minute))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	ttl, err := c.TTL(ctx, key)
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	n, err := c.Del(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
