package engine

import (
	"sync"
	"sync/atomic"

	"github.com/AbyssPortal/Teros/pkg/eval"
	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/chewxy/math32"
	"github.com/seekerror/stdlib/pkg/lang"
)

// maxSearchDepth is a safety bound on minimax recursion. The materialized
// tree is orders of magnitude shallower in practice.
const maxSearchDepth = 1000

// EvalAndBestMove runs sequential minimax over the materialized tree and
// returns the evaluation and the preferred move, if any.
func (e *Engine) EvalAndBestMove() (eval.Score, lang.Optional[rules.Move]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	run := &runMinimax{weights: e.static, minDepth: e.settings.MinDepth}
	return run.search(e.root, 0, e.root.board.Turn() == rules.White)
}

// ParallelEvalAndBestMove runs minimax with up to threads-1 helper workers.
// The result is identical to the sequential search: scores are totally
// ordered and min/max is commutative, so join order does not matter.
func (e *Engine) ParallelEvalAndBestMove(threads int) (eval.Score, lang.Optional[rules.Move]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	run := &runMinimax{weights: e.static, minDepth: e.settings.MinDepth}
	budget := int32(threads - 1)
	return run.parallel(e.root, 0, e.root.board.Turn() == rules.White, &budget)
}

type runMinimax struct {
	weights  eval.StaticWeights
	minDepth int
	nodes    uint64
}

// search returns the minimax value of the node and the move realizing it.
// Heuristic leaves shallower than minDepth return an unknown-sentinel of
// +/-Inf so that the search prefers branches explored to at least minDepth.
func (r *runMinimax) search(node *MoveTree, depth int, maximizing bool) (eval.Score, lang.Optional[rules.Move]) {
	atomic.AddUint64(&r.nodes, 1)

	if depth == maxSearchDepth || node.IsLeaf() {
		return r.leaf(node, depth, maximizing)
	}

	best := worst(maximizing)
	var bestMove lang.Optional[rules.Move]
	for _, m := range node.Moves() {
		child, _ := node.Child(m)
		s, _ := r.search(child, depth+1, !maximizing)
		best, bestMove = pick(best, bestMove, s, m, maximizing)
	}
	return best, bestMove
}

// parallel is search with worker fan-out: while the shared budget has slots,
// children are searched on fresh goroutines; otherwise inline.
func (r *runMinimax) parallel(node *MoveTree, depth int, maximizing bool, budget *int32) (eval.Score, lang.Optional[rules.Move]) {
	atomic.AddUint64(&r.nodes, 1)

	if depth == maxSearchDepth || node.IsLeaf() {
		return r.leaf(node, depth, maximizing)
	}

	moves := node.Moves()
	scores := make([]eval.Score, len(moves))

	var wg sync.WaitGroup
	for i, m := range moves {
		child, _ := node.Child(m)
		if atomic.AddInt32(budget, -1) >= 0 {
			wg.Add(1)
			go func(i int, child *MoveTree) {
				defer wg.Done()
				scores[i], _ = r.parallel(child, depth+1, !maximizing, budget)
			}(i, child)
		} else {
			atomic.AddInt32(budget, 1)
			scores[i], _ = r.parallel(child, depth+1, !maximizing, budget)
		}
	}
	wg.Wait()

	best := worst(maximizing)
	var bestMove lang.Optional[rules.Move]
	for i, m := range moves {
		best, bestMove = pick(best, bestMove, scores[i], m, maximizing)
	}
	return best, bestMove
}

func (r *runMinimax) leaf(node *MoveTree, depth int, maximizing bool) (eval.Score, lang.Optional[rules.Move]) {
	s := eval.Evaluate(r.weights, node.board)
	if s.IsHeuristic() && depth < r.minDepth {
		// Not an evaluation: an "unknown, don't pick this branch" marker.
		if maximizing {
			return eval.HeuristicScore(math32.Inf(1)), lang.Optional[rules.Move]{}
		}
		return eval.HeuristicScore(math32.Inf(-1)), lang.Optional[rules.Move]{}
	}
	return s, lang.Optional[rules.Move]{}
}

// worst returns the initial best score for the side: a mate sentinel every
// real evaluation beats.
func worst(maximizing bool) eval.Score {
	side := rules.White
	if !maximizing {
		side = rules.Black
	}
	return eval.MateInScore(side.Other(), -1)
}

// pick folds one child result into the running best, bumping the child's
// mate distance one ply on the way up.
func pick(best eval.Score, bestMove lang.Optional[rules.Move], s eval.Score, m rules.Move, maximizing bool) (eval.Score, lang.Optional[rules.Move]) {
	s = eval.IncrementMateDistance(s)
	better := best.Less(s)
	if !maximizing {
		better = s.Less(best)
	}
	if better {
		return s, lang.Some(m)
	}
	return best, bestMove
}
