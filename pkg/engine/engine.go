// Package engine implements a best-first exploration engine over an explicit
// move tree. A priority frontier of interest-scored candidate expansions
// decides which position to expand next; minimax over the materialized tree
// derives an evaluation and a preferred move.
package engine

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AbyssPortal/Teros/pkg/eval"
	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/seekerror/logw"
)

var (
	// ErrInvalidLocation indicates a path descended to a non-existent child.
	// Seeing it outside the engine is an internal bug.
	ErrInvalidLocation = errors.New("invalid tree location")
	// ErrNoValidMoves indicates an empty frontier: the game is over or the
	// materialized tree is fully explored.
	ErrNoValidMoves = errors.New("no valid moves")
	// ErrIllegalMove indicates a move that is not a child of the current root,
	// or input that does not parse as a move.
	ErrIllegalMove = errors.New("illegal move")
)

// Settings hold minimax settings.
type Settings struct {
	// MinDepth is the minimum exploration depth a branch needs before its
	// heuristic leaf evaluations are trusted. Shallower heuristic leaves
	// evaluate to an unknown-sentinel that minimax avoids.
	MinDepth int
}

func (s Settings) String() string {
	return fmt.Sprintf("{mindepth=%v}", s.MinDepth)
}

// DefaultSettings returns the default minimax settings.
func DefaultSettings() Settings {
	return Settings{MinDepth: 1}
}

// Engine owns the move tree and the expansion frontier. All state is guarded
// by a single mutex; weights are immutable after construction.
type Engine struct {
	root     *MoveTree
	frontier frontier

	static   eval.StaticWeights
	interest eval.InterestWeights
	settings Settings

	mu sync.Mutex
}

// New builds an engine rooted at the given board and expands the root one
// ply, so the frontier holds one entry per legal move.
func New(ctx context.Context, b rules.Board, sw eval.StaticWeights, iw eval.InterestWeights, settings Settings) *Engine {
	e := &Engine{
		static:   sw,
		interest: iw,
		settings: settings,
	}
	e.reset(b)

	logw.Infof(ctx, "Initialized engine: static=%v, interest=%v, settings=%v, moves=%v",
		sw, iw, settings, e.frontier.Len())
	return e
}

// Reset discards the tree and frontier and starts over from the given board.
func (e *Engine) Reset(ctx context.Context, b rules.Board) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset(b)
	logw.Infof(ctx, "Reset engine: moves=%v", e.frontier.Len())
}

func (e *Engine) reset(b rules.Board) {
	e.root = newMoveTree(b.Clone())
	e.frontier = nil
	if err := e.expandLocked(nil); err != nil {
		panic(fmt.Sprintf("root expansion failed: %v", err))
	}
}

// Board returns a clone of the current root position.
func (e *Engine) Board() rules.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.root.board.Clone()
}

// FrontierSize returns the number of pending expansions.
func (e *Engine) FrontierSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.frontier.Len()
}

// ThinkNextMove pops the most interesting pending expansion and expands the
// corresponding node one ply. It returns ErrNoValidMoves when the frontier
// is empty.
func (e *Engine) ThinkNextMove() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.frontier.Len() == 0 {
		return ErrNoValidMoves
	}
	en := heap.Pop(&e.frontier).(*entry)
	return e.expandLocked(append(en.location, en.move))
}

// MakeMove commits a move: the named child becomes the new root, the rest of
// the former tree is dropped, and frontier entries off the chosen branch are
// discarded. A never-expanded new root is expanded immediately.
func (e *Engine) MakeMove(m rules.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.makeMoveLocked(m)
}

// InterpretAndMakeMove parses a move in the context of the root position and
// commits it. Parse failures surface as ErrIllegalMove.
func (e *Engine) InterpretAndMakeMove(s string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.root.board.InterpretMove(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return e.makeMoveLocked(m)
}

func (e *Engine) makeMoveLocked(m rules.Move) error {
	child, ok := e.root.Child(m)
	if !ok {
		return fmt.Errorf("%w: %v", ErrIllegalMove, m)
	}
	e.root = child

	// Drain-filter the heap: keep entries on the committed branch, strip the
	// committed move from their location, and rebuild the heap ordering.
	kept := e.frontier[:0]
	for _, en := range e.frontier {
		if len(en.location) == 0 || en.location[0] != m {
			continue
		}
		en.location = en.location[1:]
		kept = append(kept, en)
	}
	e.frontier = kept
	heap.Init(&e.frontier)

	if e.root.IsLeaf() {
		return e.expandLocked(nil)
	}
	return nil
}

// expandLocked expands the node at the given location one ply and enqueues a
// frontier entry per new child. Requires the engine lock.
func (e *Engine) expandLocked(location []rules.Move) error {
	node, err := e.root.descend(location)
	if err != nil {
		return err
	}
	e.installLocked(node, location, expandBoard(node.board, e.interest), e.static.DepthCost)
	return nil
}

// installLocked replaces the node's children with the given expansion result
// and pushes a frontier entry per child, stamped with the given depth-cost
// snapshot. The location slice is copied per entry; entries own their paths
// by value. Requires the engine lock.
func (e *Engine) installLocked(node *MoveTree, location []rules.Move, exps []expansion, depthCost float32) {
	node.children = make(map[rules.Move]*MoveTree, len(exps))
	for _, x := range exps {
		node.children[x.move] = x.node
		heap.Push(&e.frontier, &entry{
			move:      x.move,
			location:  append([]rules.Move(nil), location...),
			value:     x.value,
			depthCost: depthCost,
		})
	}
}

// expansion is one freshly generated child with its interest score.
type expansion struct {
	move  rules.Move
	node  *MoveTree
	value float32
}

// expandBoard generates all legal children of the given position and scores
// their interest. It is a pure function of the position and weights and needs
// no lock, which is what lets parallel workers generate outside the engine
// mutex.
func expandBoard(parent rules.Board, w eval.InterestWeights) []expansion {
	var ret []expansion
	for row := 0; row < rules.Size; row++ {
		for col := 0; col < rules.Size; col++ {
			moves, err := parent.GenerateMoves(row, col)
			if err != nil {
				if errors.Is(err, rules.ErrNoPiece) || errors.Is(err, rules.ErrWrongTurn) {
					continue
				}
				panic(fmt.Sprintf("move generation failed at (%d,%d): %v", row, col, err))
			}
			for _, m := range moves {
				child := parent.Clone()
				if err := child.MakeLegalMove(m); err != nil {
					continue // pseudo-legal move filtered by legality
				}
				ret = append(ret, expansion{
					move:  m,
					node:  newMoveTree(child),
					value: eval.Interest(w, m, parent, child),
				})
			}
		}
	}
	return ret
}
