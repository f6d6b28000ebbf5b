package store

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/lk2023060901/paragon/app/paragon/internal/snapshot"
	"github.com/lk2023060901/paragon/pkg/compress"
	"github.com/lk2023060901/paragon/pkg/database/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLoadout() *snapshot.Loadout {
	return &snapshot.Loadout{
		Agent:    "p1",
		Equipped: 0,
		Items: []snapshot.ItemRecord{{
			Serial: 42,
			Name:   "SMG",
			Rarity: "Rare",
			Weapon: &snapshot.WeaponRecord{Type: "SubmachineGun", AmmoType: "9mm", Ammo: 20, Capacity: 35},
		}},
		Ammo:    map[string]int{"9mm": 60},
		SavedAt: 1700000000000,
	}
}

// exercise 存储的公共行为
func exercise(t *testing.T, s Store, name string) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, name)
	assert.ErrorIs(t, err, ErrLoadoutNotFound)

	in := sampleLoadout()
	require.NoError(t, s.Save(ctx, name, in))
	out, err := s.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	in.Ammo["9mm"] = 1
	require.NoError(t, s.Save(ctx, name, in))
	out, err = s.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Ammo["9mm"])

	require.NoError(t, s.Delete(ctx, name))
	assert.ErrorIs(t, s.Delete(ctx, name), ErrLoadoutNotFound)
}

func TestNew(t *testing.T) {
	s, err := New(nil, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = New(&Config{Driver: "disk"}, nil, nil)
	assert.Error(t, err)

	_, err = New(&Config{Driver: DriverRedis}, nil, nil)
	assert.Error(t, err)

	_, err = New(&Config{Compression: "gzip"}, nil, nil)
	assert.Error(t, err)

	s, err = New(&Config{Compression: "none"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, compress.CodecNone, s.(*MemoryStore).codec)
}

func TestMemoryStore(t *testing.T) {
	for _, codec := range []compress.Codec{compress.CodecNone, compress.CodecLZ4, compress.CodecZstd} {
		t.Run(codec.String(), func(t *testing.T) {
			s := NewMemoryStore(codec)
			exercise(t, s, "p1")
			assert.Equal(t, 0, s.Len())

			require.NoError(t, s.Close())
			assert.ErrorIs(t, s.Save(context.Background(), "p1", sampleLoadout()), ErrStoreClosed)
			_, err := s.Load(context.Background(), "p1")
			assert.ErrorIs(t, err, ErrStoreClosed)
		})
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("PARAGON_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PARAGON_TEST_REDIS_ADDR not set")
	}
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	rc, err := redis.NewClient(&redis.Config{Standalone: &redis.NodeConfig{Host: host, Port: port}})
	require.NoError(t, err)
	require.NoError(t, rc.Ping(context.Background()))

	s, err := New(&Config{Driver: DriverRedis, TTL: time.Minute}, rc, nil)
	require.NoError(t, err)
	defer s.Close()

	exercise(t, s, "test-"+strconv.FormatInt(time.Now().UnixNano(), 10))
}
