package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level Level, opts ...Option) (*BaseLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	l, err := New(&Config{Level: level, Format: JSONFormat}, append(opts, WithConsoleWriter(buf))...)
	require.NoError(t, err)
	return l, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

// TestNew 测试创建 Logger
func TestNew(t *testing.T) {
	t.Run("nil config uses default", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("file enabled without path", func(t *testing.T) {
		_, err := New(&Config{EnableFile: true})
		assert.ErrorIs(t, err, ErrInvalidOutputPath)
	})

	t.Run("file output with size rotation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "game.log")
		l, err := New(&Config{EnableFile: true, OutputPath: path}, WithConsoleWriter(io.Discard))
		require.NoError(t, err)
		l.Info("hello")
		assert.FileExists(t, path)
	})
}

// TestLevelFilter 测试等级过滤
func TestLevelFilter(t *testing.T) {
	l, buf := newBufferLogger(t, WarnLevel)
	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept", "slot", 3)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["msg"])
	assert.Equal(t, float64(3), lines[0]["slot"])
}

// TestNamedAndFields 测试具名 logger 与附加字段
func TestNamedAndFields(t *testing.T) {
	l, buf := newBufferLogger(t, DebugLevel, WithGlobalFields("app", "paragon"))
	child := l.Named("service.combat").WithFields("agent", "player-1")
	child.Info("fire", "ammo", 34)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "service.combat", lines[0]["logger"])
	assert.Equal(t, "paragon", lines[0]["app"])
	assert.Equal(t, "player-1", lines[0]["agent"])
	assert.Equal(t, float64(34), lines[0]["ammo"])
}

// TestOddKeyValues 测试奇数个 key-value
func TestOddKeyValues(t *testing.T) {
	l, buf := newBufferLogger(t, InfoLevel)
	l.Info("odd", "a", 1, "dangling")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(1), lines[0]["a"])
	assert.Equal(t, "dangling", lines[0]["!BADKEY"])
}

// TestContextFields 测试从 context 提取字段
func TestContextFields(t *testing.T) {
	l, buf := newBufferLogger(t, InfoLevel)
	ctx := ContextWithFields(context.Background(), "frame", 42)
	ctx = ContextWithFields(ctx, "agent", "bot")
	l.InfoContext(ctx, "tick", "dt", 0.016)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(42), lines[0]["frame"])
	assert.Equal(t, "bot", lines[0]["agent"])
	assert.Equal(t, 0.016, lines[0]["dt"])
}

// TestHooks 测试钩子
func TestHooks(t *testing.T) {
	l, buf := newBufferLogger(t, DebugLevel,
		WithHooks(SensitiveDataHook("token"), DropLoggerHook("sim.frame")))

	l.Info("login", "token", "abc")
	l.Named("sim.frame").Debug("tick")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "***REDACTED***", lines[0]["token"])
}

// TestNoop 测试空 logger
func TestNoop(t *testing.T) {
	var l Logger = NewNoop()
	l.Info("nothing")
	assert.Same(t, l, l.Named("x"))
	assert.NoError(t, l.Sync())
}
