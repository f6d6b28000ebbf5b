package gameconfig

import (
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot uint8

func (s *slot) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "9mm":
		*s = 1
	case "ar":
		*s = 2
	default:
		return errors.Newf("unknown ammo %q", text)
	}
	return nil
}

type weaponRow struct {
	WeaponType       string
	AmmoType         slot
	WeaponAmmo       int
	MagazineCapacity int
	FireRate         time.Duration
}

func TestFileLoader(t *testing.T) {
	load, err := NewFileLoader("testdata", logger.NewNoop())
	require.NoError(t, err)

	rows, err := LoadRows[weaponRow](load, "Weapon")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SubmachineGun", rows[0].WeaponType)
	assert.Equal(t, slot(1), rows[0].AmmoType)
	assert.Equal(t, 35, rows[0].MagazineCapacity)
	assert.Equal(t, 100*time.Millisecond, rows[0].FireRate)
	assert.Zero(t, rows[1].FireRate)

	t.Run("missing table is empty", func(t *testing.T) {
		rows, err := LoadRows[weaponRow](load, "rarity")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("malformed table", func(t *testing.T) {
		_, err := load("broken")
		assert.Error(t, err)
	})

	_, err = NewFileLoader("testdata", nil)
	assert.Error(t, err)
}

func TestMapLoaderBadEnum(t *testing.T) {
	load := NewMapLoader(map[string][]Row{
		"weapon": {{"AmmoType": "plasma"}},
	})
	_, err := LoadRows[weaponRow](load, "weapon")
	assert.Error(t, err)
}
