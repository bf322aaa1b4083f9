package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/AbyssPortal/Teros/pkg/eval"
	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/AbyssPortal/Teros/pkg/rules/notnil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const foolsMate = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

func newTestEngine(t *testing.T, fen string) *Engine {
	t.Helper()

	board := rules.Board(notnil.Starting())
	if fen != "" {
		b, err := notnil.FromFEN(fen)
		require.NoError(t, err)
		board = b
	}
	return New(context.Background(), board, eval.DefaultStaticWeights(), eval.DefaultInterestWeights(), DefaultSettings())
}

// checkInvariants asserts that every frontier entry names an existing,
// unexpanded node and that no two entries name the same node.
func checkInvariants(t *testing.T, e *Engine) {
	t.Helper()

	e.mu.Lock()
	defer e.mu.Unlock()

	seen := map[string]bool{}
	for _, en := range e.frontier {
		target := append(append([]rules.Move(nil), en.location...), en.move)
		node, err := e.root.descend(target)
		require.NoError(t, err, "entry %v at [%v] names a missing node", en.move, rules.PrintMoves(en.location))
		assert.True(t, node.IsLeaf(), "entry %v at [%v] names an expanded node", en.move, rules.PrintMoves(en.location))

		key := fmt.Sprintf("%v/%v", rules.PrintMoves(en.location), en.move)
		assert.False(t, seen[key], "duplicate entry %v", key)
		seen[key] = true
	}
}

func TestNew(t *testing.T) {
	e := newTestEngine(t, "")

	// The standard start has exactly 20 legal moves: the root is expanded one
	// ply and the frontier holds one entry per child, all at the root.
	assert.Len(t, e.root.Moves(), 20)
	assert.Equal(t, 20, e.FrontierSize())
	for _, en := range e.frontier {
		assert.Empty(t, en.location)
	}
	checkInvariants(t, e)
}

func TestThinkNextMove(t *testing.T) {
	e := newTestEngine(t, "")

	for i := 0; i < 5; i++ {
		require.NoError(t, e.ThinkNextMove())
		checkInvariants(t, e)
	}

	// Root plus five expansions.
	assert.Equal(t, 6, countExpanded(e.root))
}

func TestThinkNextMoveNoValidMoves(t *testing.T) {
	e := newTestEngine(t, foolsMate)

	// The root is terminal: expansion yields nothing to explore.
	assert.True(t, e.root.IsLeaf())
	assert.Equal(t, 0, e.FrontierSize())
	assert.ErrorIs(t, e.ThinkNextMove(), ErrNoValidMoves)
}

func TestMakeMove(t *testing.T) {
	e := newTestEngine(t, "")
	e4 := rules.NormalMove(rules.Square{Row: 1, Col: 4}, rules.Square{Row: 3, Col: 4})

	require.NoError(t, e.MakeMove(e4))

	// The root advanced. No former entry survives the commit (all were at the
	// root), so the new leaf root is auto-expanded into Black's 20 replies.
	assert.Equal(t, rules.Black, e.Board().Turn())
	assert.Len(t, e.root.Moves(), 20)
	assert.Equal(t, 20, e.FrontierSize())
	for _, en := range e.frontier {
		assert.Empty(t, en.location)
	}
	checkInvariants(t, e)
}

func TestMakeMovePrunesFrontier(t *testing.T) {
	e := newTestEngine(t, "")
	for i := 0; i < 8; i++ {
		require.NoError(t, e.ThinkNextMove())
	}

	// Count the entries on each root branch before committing.
	onBranch := map[rules.Move]int{}
	for _, en := range e.frontier {
		if len(en.location) > 0 {
			onBranch[en.location[0]]++
		}
	}

	// Commit the branch with the most pending work.
	var m rules.Move
	for cand, n := range onBranch {
		if n > onBranch[m] {
			m = cand
		}
	}
	require.Greater(t, onBranch[m], 0)

	require.NoError(t, e.MakeMove(m))
	assert.Equal(t, onBranch[m], e.FrontierSize())
	checkInvariants(t, e)
}

func TestMakeMoveIllegal(t *testing.T) {
	e := newTestEngine(t, "")

	err := e.MakeMove(rules.NormalMove(rules.Square{Row: 0, Col: 0}, rules.Square{Row: 5, Col: 5}))
	assert.ErrorIs(t, err, ErrIllegalMove)

	assert.ErrorIs(t, e.InterpretAndMakeMove("nonsense"), ErrIllegalMove)
	assert.ErrorIs(t, e.InterpretAndMakeMove("Qh5"), ErrIllegalMove)

	require.NoError(t, e.InterpretAndMakeMove("e4"))
	assert.Equal(t, rules.Black, e.Board().Turn())
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, "")
	require.NoError(t, e.ThinkNextMove())

	b, err := notnil.FromFEN(foolsMate)
	require.NoError(t, err)
	e.Reset(context.Background(), b)

	assert.Equal(t, 0, e.FrontierSize())
	assert.Equal(t, rules.WhiteMated, e.Board().Outcome())
}

func countExpanded(t *MoveTree) int {
	if t.IsLeaf() {
		return 0
	}
	n := 1
	for _, m := range t.Moves() {
		child, _ := t.Child(m)
		n += countExpanded(child)
	}
	return n
}
