package engine

import (
	"sort"

	"github.com/AbyssPortal/Teros/pkg/rules"
)

// MoveTree is a node in the explored game tree: a position plus the children
// materialized so far, keyed by move. A node with no children is a leaf —
// either terminal or simply not yet expanded. Each child's position strictly
// descends from its parent, so the tree is acyclic by construction.
type MoveTree struct {
	board    rules.Board
	children map[rules.Move]*MoveTree
}

func newMoveTree(b rules.Board) *MoveTree {
	return &MoveTree{board: b}
}

// Board returns the node's position. Callers must not mutate it.
func (t *MoveTree) Board() rules.Board {
	return t.board
}

// IsLeaf reports whether the node has no materialized children.
func (t *MoveTree) IsLeaf() bool {
	return len(t.children) == 0
}

// Child returns the child reached by the given move, if materialized.
func (t *MoveTree) Child(m rules.Move) (*MoveTree, bool) {
	c, ok := t.children[m]
	return c, ok
}

// Moves returns the moves to materialized children in canonical order.
func (t *MoveTree) Moves() []rules.Move {
	ret := make([]rules.Move, 0, len(t.children))
	for m := range t.children {
		ret = append(ret, m)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Less(ret[j])
	})
	return ret
}

// descend walks the tree along the given move sequence.
func (t *MoveTree) descend(location []rules.Move) (*MoveTree, error) {
	cur := t
	for _, m := range location {
		next, ok := cur.children[m]
		if !ok {
			return nil, ErrInvalidLocation
		}
		cur = next
	}
	return cur, nil
}
