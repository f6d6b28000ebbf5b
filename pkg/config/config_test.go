package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flightTuning struct {
	Duration time.Duration `mapstructure:"duration" validate:"gt=0"`
	Speed    float64       `mapstructure:"speed" validate:"gte=0"`
	Capacity int           `mapstructure:"capacity" validate:"min=1,max=16"`
	Visible  bool          `mapstructure:"visible"`
	Anchors  []string      `mapstructure:"anchors"`
	Extra    map[string]int
}

// createTestConfigFile 创建测试配置文件
func createTestConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestMergeConfig 测试配置合并
func TestMergeConfig(t *testing.T) {
	t.Run("zero values keep defaults", func(t *testing.T) {
		dst := &flightTuning{Duration: 700 * time.Millisecond, Speed: 30, Capacity: 6, Visible: true}
		src := &flightTuning{Speed: 45}

		merged, err := MergeConfig(dst, src)
		require.NoError(t, err)
		assert.Equal(t, 700*time.Millisecond, merged.Duration)
		assert.Equal(t, 45.0, merged.Speed)
		assert.Equal(t, 6, merged.Capacity)
		assert.True(t, merged.Visible)
	})

	t.Run("maps merge per key and slices replace", func(t *testing.T) {
		dst := &flightTuning{Anchors: []string{"a", "b"}, Extra: map[string]int{"x": 1, "y": 2}}
		src := &flightTuning{Anchors: []string{"c"}, Extra: map[string]int{"y": 3, "z": 4}}

		merged, err := MergeConfig(dst, src)
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, merged.Anchors)
		assert.Equal(t, map[string]int{"x": 1, "y": 3, "z": 4}, merged.Extra)
	})

	t.Run("nil handling", func(t *testing.T) {
		d := &flightTuning{Capacity: 6}
		got, err := MergeConfig(d, nil)
		require.NoError(t, err)
		assert.Same(t, d, got)

		got, err = MergeConfig(nil, d)
		require.NoError(t, err)
		assert.Same(t, d, got)

		_, err = MergeConfig[flightTuning](nil, nil)
		assert.ErrorIs(t, err, ErrNilConfig)
	})
}

// TestManager 测试加载与解析
func TestManager(t *testing.T) {
	path := createTestConfigFile(t, `
game:
  flight:
    duration: 0.7s
    speed: 30
    capacity: 6
    anchors: weapon,slot1
log:
  level: debug
`)
	mgr := NewManager()
	require.NoError(t, mgr.LoadFile(path))

	var ft flightTuning
	require.NoError(t, mgr.UnmarshalKey("game.flight", &ft))
	assert.Equal(t, 700*time.Millisecond, ft.Duration)
	assert.Equal(t, 30.0, ft.Speed)
	assert.Equal(t, []string{"weapon", "slot1"}, ft.Anchors)

	assert.Equal(t, "debug", mgr.GetString("log.level"))
	assert.Equal(t, 6, mgr.GetInt("game.flight.capacity"))
	assert.True(t, mgr.IsSet("game.flight"))

	err := mgr.UnmarshalKey("game.missing", &ft)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.Error(t, NewManager().LoadFile(filepath.Join(t.TempDir(), "none.yaml")))
}

// TestManagerEnv 测试环境变量覆盖
func TestManagerEnv(t *testing.T) {
	path := createTestConfigFile(t, "log:\n  level: info\n")
	t.Setenv("PARAGONTEST_LOG_LEVEL", "warn")

	mgr := NewManager()
	require.NoError(t, mgr.LoadFile(path))
	mgr.BindEnv("PARAGONTEST")
	assert.Equal(t, "warn", mgr.GetString("log.level"))
}

// TestValidator 测试验证器
func TestValidator(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&flightTuning{Duration: time.Second, Capacity: 6}))

	err := v.Validate(&flightTuning{Capacity: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "Duration")
	assert.Contains(t, err.Error(), "Capacity")

	assert.ErrorIs(t, v.Validate(nil), ErrNilConfig)
}

// TestWatcher 测试子树加载与手动重载
func TestWatcher(t *testing.T) {
	path := createTestConfigFile(t, "game:\n  flight:\n    speed: 45\n")
	mgr := NewManager()
	require.NoError(t, mgr.LoadFile(path))

	defaults := &flightTuning{Duration: 700 * time.Millisecond, Speed: 30, Capacity: 6}
	check := func(ft *flightTuning) error { return NewValidator().Validate(ft) }

	w, err := NewWatcher(mgr, "game.flight", defaults, check)
	require.NoError(t, err)
	assert.Equal(t, 45.0, w.Current().Speed)
	assert.Equal(t, 6, w.Current().Capacity)

	var changed *flightTuning
	w.OnChange(func(ft *flightTuning) { changed = ft })

	require.NoError(t, os.WriteFile(path, []byte("game:\n  flight:\n    speed: 60\n"), 0644))
	require.NoError(t, mgr.LoadFile(path))
	w.Reload()
	require.NotNil(t, changed)
	assert.Equal(t, 60.0, changed.Speed)
	assert.Equal(t, 700*time.Millisecond, changed.Duration)

	var reloadErr error
	w.OnError(func(err error) { reloadErr = err })
	require.NoError(t, os.WriteFile(path, []byte("game:\n  flight:\n    capacity: 99\n"), 0644))
	require.NoError(t, mgr.LoadFile(path))
	w.Reload()
	assert.ErrorIs(t, reloadErr, ErrValidationFailed)
	assert.Equal(t, 60.0, w.Current().Speed)

	missing, err := NewWatcher(NewManager(), "game.flight", defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, 30.0, missing.Current().Speed)
}
