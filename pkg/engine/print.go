package engine

import (
	"container/heap"
	"fmt"
	"io"
	"strings"

	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/awalterschulze/gographviz"
)

// FprintTree renders the materialized tree to the writer, one move per line,
// indented by depth, down to maxDepth plies.
func (e *Engine) FprintTree(w io.Writer, maxDepth int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fprintTree(w, e.root, 0, maxDepth)
}

func fprintTree(w io.Writer, t *MoveTree, depth, maxDepth int) {
	if depth >= maxDepth {
		return
	}
	for _, m := range t.Moves() {
		fmt.Fprintf(w, "%v-%v\n", strings.Repeat("|", depth), t.board.MoveName(m))
		child, _ := t.Child(m)
		fprintTree(w, child, depth+1, maxDepth)
	}
}

// FprintFrontier renders the pending expansions in pop order. The frontier
// itself is not disturbed; the dump works on a copy.
func (e *Engine) FprintFrontier(w io.Writer) {
	e.mu.Lock()
	f := make(frontier, len(e.frontier))
	copy(f, e.frontier)
	e.mu.Unlock()

	heap.Init(&f)
	for f.Len() > 0 {
		en := heap.Pop(&f).(*entry)
		fmt.Fprintf(w, "%8.2f  %v  at [%v]  (raw %.2f)\n", en.key(), en.move, rules.PrintMoves(en.location), en.value)
	}
}

// WriteDOT renders the materialized tree as a Graphviz digraph down to
// maxDepth plies. Node labels are algebraic move names.
func (e *Engine) WriteDOT(w io.Writer, maxDepth int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := gographviz.NewGraph()
	if err := g.SetName("teros"); err != nil {
		return err
	}
	if err := g.SetDir(true); err != nil {
		return err
	}
	if err := g.AddNode("teros", "root", map[string]string{"label": `"root"`}); err != nil {
		return err
	}
	if err := writeDOTNode(g, e.root, "root", 0, maxDepth); err != nil {
		return err
	}
	_, err := io.WriteString(w, g.String())
	return err
}

func writeDOTNode(g *gographviz.Graph, t *MoveTree, name string, depth, maxDepth int) error {
	if depth >= maxDepth {
		return nil
	}
	for i, m := range t.Moves() {
		child, _ := t.Child(m)
		childName := fmt.Sprintf("%v_%v", name, i)
		label := fmt.Sprintf("%q", t.board.MoveName(m))
		if err := g.AddNode("teros", childName, map[string]string{"label": label}); err != nil {
			return err
		}
		if err := g.AddEdge(name, childName, true, nil); err != nil {
			return err
		}
		if err := writeDOTNode(g, child, childName, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}
