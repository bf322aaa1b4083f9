package engine

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/AbyssPortal/Teros/pkg/eval"
	"github.com/AbyssPortal/Teros/pkg/rules/notnil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bfsWeights makes the depth penalty dominate every raw interest value, so
// all entries enqueued at construction pop before any deeper entry: the first
// expansions are exactly the root's children, whatever the worker scheduling.
func bfsWeights() eval.StaticWeights {
	w := eval.DefaultStaticWeights()
	w.DepthCost = 1000
	return w
}

// signature is a canonical rendering of the materialized tree shape.
func signature(t *MoveTree) string {
	var parts []string
	for _, m := range t.Moves() {
		child, _ := t.Child(m)
		parts = append(parts, m.String()+signature(child))
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, " ") + ")"
}

func TestMultiThreadThinkMatchesSequential(t *testing.T) {
	ctx := context.Background()
	const expansions = 20

	seq := New(ctx, notnil.Starting(), bfsWeights(), eval.DefaultInterestWeights(), DefaultSettings())
	for i := 0; i < expansions; i++ {
		require.NoError(t, seq.ThinkNextMove())
	}

	par := New(ctx, notnil.Starting(), bfsWeights(), eval.DefaultInterestWeights(), DefaultSettings())
	n, err := par.MultiThreadThink(ctx, 8, expansions)
	require.NoError(t, err)
	assert.Equal(t, uint64(expansions), n)

	// Children are a pure function of the parent and every popped entry is
	// expanded exactly once, so both runs materialize the same tree.
	assert.Equal(t, signature(seq.root), signature(par.root))
	assert.Equal(t, seq.FrontierSize(), par.FrontierSize())
}

func TestMultiThreadThinkCount(t *testing.T) {
	ctx := context.Background()

	e := New(ctx, notnil.Starting(), bfsWeights(), eval.DefaultInterestWeights(), DefaultSettings())
	n, err := e.MultiThreadThink(ctx, 4, 60)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), n)

	// Root plus exactly one node per expansion.
	assert.Equal(t, 61, countExpanded(e.root))
	checkInvariants(t, e)
}

func TestMultiThreadThinkFrontierDry(t *testing.T) {
	ctx := context.Background()

	// A terminal root has nothing to explore: workers exit immediately.
	e := newTestEngine(t, foolsMate)
	n, err := e.MultiThreadThink(ctx, 4, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)
}

func TestMultiThreadThinkUntil(t *testing.T) {
	ctx := context.Background()

	e := New(ctx, notnil.Starting(), bfsWeights(), eval.DefaultInterestWeights(), DefaultSettings())

	signal := make(chan struct{})
	done := make(chan struct{})
	var n uint64
	var err error
	go func() {
		defer close(done)
		n, err = e.MultiThreadThinkUntil(ctx, 4, signal)
	}()

	time.Sleep(200 * time.Millisecond)
	close(signal)
	<-done

	require.NoError(t, err)
	assert.Greater(t, n, uint64(0))
	checkInvariants(t, e)

	// Workers completed their in-flight expansions: the tree is consistent
	// with the reported count.
	assert.Equal(t, int(n)+1, countExpanded(e.root))
}

func TestMultiThreadThinkContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	e := New(ctx, notnil.Starting(), bfsWeights(), eval.DefaultInterestWeights(), DefaultSettings())

	done := make(chan struct{})
	var n uint64
	go func() {
		defer close(done)
		n, _ = e.MultiThreadThinkUntil(ctx, 2, nil)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("think did not stop on context cancellation")
	}
	checkInvariants(t, e)
	assert.Equal(t, int(n)+1, countExpanded(e.root))
}
