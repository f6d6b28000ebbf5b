package bt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter 返回预设状态序列的动作，记录调用次数
func counter(name string, results ...Status) (*Action, *int) {
	calls := 0
	return NewAction(name, func(context.Context, *Blackboard) Status {
		s := results[calls%len(results)]
		calls++
		return s
	}), &calls
}

func TestSequence(t *testing.T) {
	ctx := context.Background()
	bb := NewBlackboard()

	a, aCalls := counter("a", StatusSuccess)
	b, bCalls := counter("b", StatusRunning, StatusSuccess)
	seq := NewSequence("seq", a, b)

	assert.Equal(t, StatusRunning, seq.Tick(ctx, bb, 0.1))
	assert.Equal(t, StatusSuccess, seq.Tick(ctx, bb, 0.1))
	assert.Equal(t, 1, *aCalls, "running child resumes without re-ticking earlier children")
	assert.Equal(t, 2, *bCalls)

	fail, _ := counter("fail", StatusFailure)
	c, cCalls := counter("c", StatusSuccess)
	assert.Equal(t, StatusFailure, NewSequence("seq", fail, c).Tick(ctx, bb, 0.1))
	assert.Zero(t, *cCalls)
}

func TestSelector(t *testing.T) {
	ctx := context.Background()
	bb := NewBlackboard()

	fail, _ := counter("fail", StatusFailure)
	ok, okCalls := counter("ok", StatusSuccess)
	after, afterCalls := counter("after", StatusSuccess)
	sel := NewSelector("sel", fail, ok, after)

	assert.Equal(t, StatusSuccess, sel.Tick(ctx, bb, 0))
	assert.Equal(t, 1, *okCalls)
	assert.Zero(t, *afterCalls)

	allFail := NewSelector("sel", NewCondition("no", func(*Blackboard) bool { return false }))
	assert.Equal(t, StatusFailure, allFail.Tick(ctx, bb, 0))
}

func TestInverter(t *testing.T) {
	ctx := context.Background()
	bb := NewBlackboard()
	yes := NewCondition("yes", func(*Blackboard) bool { return true })
	run, _ := counter("run", StatusRunning)

	assert.Equal(t, StatusFailure, NewInverter("inv", yes).Tick(ctx, bb, 0))
	assert.Equal(t, StatusRunning, NewInverter("inv", run).Tick(ctx, bb, 0))
}

func TestRepeater(t *testing.T) {
	ctx := context.Background()
	bb := NewBlackboard()
	a, calls := counter("a", StatusSuccess)
	r := NewRepeater("rep", 3, a)

	assert.Equal(t, StatusRunning, r.Tick(ctx, bb, 0))
	assert.Equal(t, StatusRunning, r.Tick(ctx, bb, 0))
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, StatusSuccess, r.Tick(ctx, bb, 0))
	assert.Equal(t, 3, *calls)
	assert.Zero(t, r.Count())
}

func TestWait(t *testing.T) {
	ctx := context.Background()
	w := NewWait("wait", 0.3)

	assert.Equal(t, StatusRunning, w.Tick(ctx, nil, 0.1))
	assert.Equal(t, StatusRunning, w.Tick(ctx, nil, 0.1))
	assert.Equal(t, StatusSuccess, w.Tick(ctx, nil, 0.1))
	assert.Equal(t, StatusRunning, w.Tick(ctx, nil, 0.1), "restarts after success")
}

func TestTreeResetsAfterCompletion(t *testing.T) {
	ctx := context.Background()
	a, aCalls := counter("a", StatusSuccess)
	tree := NewTree(NewSequence("root", a, NewWait("wait", 0.2)), nil)

	assert.Equal(t, StatusRunning, tree.Tick(ctx, 0.1))
	assert.Equal(t, StatusSuccess, tree.Tick(ctx, 0.1))
	assert.Equal(t, StatusRunning, tree.Tick(ctx, 0.1))
	assert.Equal(t, 2, *aCalls)

	tree.Blackboard().Set("target", 7)
	tree.Reset()
	assert.False(t, tree.Blackboard().Has("target"))
}

func TestBlackboardValue(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("n", 3)
	bb.Set("s", "x")

	n, ok := Value[int](bb, "n")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = Value[int](bb, "s")
	assert.False(t, ok)
	_, ok = Value[string](bb, "missing")
	assert.False(t, ok)

	bb.Delete("n")
	assert.False(t, bb.Has("n"))
	v, ok := bb.Get("s")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}
