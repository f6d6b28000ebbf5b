package main

import (
	"context"
	"testing"

	"github.com/lk2023060901/paragon/app/paragon/internal/model"
	"github.com/lk2023060901/paragon/app/paragon/internal/script"
	"github.com/lk2023060901/paragon/app/paragon/internal/store"
	"github.com/lk2023060901/paragon/app/paragon/internal/world"
	"github.com/lk2023060901/paragon/pkg/compress"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/lk2023060901/paragon/pkg/mathx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBotWorld(t *testing.T) (*world.World, *script.Bot) {
	t.Helper()
	w, err := world.New(nil, nil, nil, nil, nil)
	require.NoError(t, err)
	b, err := script.NewBot(w, &script.Config{}, nil)
	require.NoError(t, err)
	return w, b
}

func TestLoadoutKeeper(t *testing.T) {
	st := store.NewMemoryStore(compress.CodecZstd)

	t.Run("save on close", func(t *testing.T) {
		w, b := newBotWorld(t)
		it, err := w.SpawnWeapon(model.WeaponAssaultRifle, mathx.Vector{})
		require.NoError(t, err)
		require.True(t, w.Services().Inventory.Accept(b.Agent(), it))
		w.Agents().Get(b.Agent()).Ledger.Add(model.AmmoAR, 12)

		k := provideLoadoutKeeper(w, st, b, logger.NewNoop())
		require.NoError(t, k.Close())
		assert.Equal(t, 1, st.Len())
	})

	t.Run("restore on start", func(t *testing.T) {
		w, b := newBotWorld(t)
		k := provideLoadoutKeeper(w, st, b, logger.NewNoop())
		require.NoError(t, k.Start())

		a := w.Agents().Get(b.Agent())
		require.Equal(t, 1, a.Inventory.Len())
		assert.Equal(t, 0, a.Inventory.Equipped())
		assert.Equal(t, 12, a.Ledger.Count(model.AmmoAR))

		it := w.Items().Get(a.Inventory.EquippedItem())
		require.NotNil(t, it)
		assert.Equal(t, model.WeaponAssaultRifle, it.Weapon.Type)
	})

	t.Run("empty store starts clean", func(t *testing.T) {
		require.NoError(t, st.Delete(context.Background(), "bot"))
		w, b := newBotWorld(t)
		k := provideLoadoutKeeper(w, st, b, logger.NewNoop())
		require.NoError(t, k.Start())
		assert.Equal(t, 0, w.Agents().Get(b.Agent()).Inventory.Len())
	})

	t.Run("no bot", func(t *testing.T) {
		w, err := world.New(nil, nil, nil, nil, nil)
		require.NoError(t, err)
		k := provideLoadoutKeeper(w, st, nil, logger.NewNoop())
		assert.NoError(t, k.Start())
		assert.NoError(t, k.Close())
	})
}
