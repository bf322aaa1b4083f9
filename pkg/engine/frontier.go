package engine

import "github.com/AbyssPortal/Teros/pkg/rules"

// entry is a pending one-ply expansion: the move whose child node is the
// expansion target, the path from the root to that child's parent, the
// interest score computed at enqueue time, and a snapshot of the per-ply
// penalty in effect when the entry was enqueued.
type entry struct {
	move      rules.Move
	location  []rules.Move
	value     float32
	depthCost float32
}

// key is the effective priority: raw interest minus the depth penalty.
func (e *entry) key() float32 {
	return e.value - e.depthCost*float32(len(e.location))
}

// before is the total pop order: by key, then raw value, then move, then
// location. Two distinct entries never compare equal.
func (e *entry) before(o *entry) bool {
	if e.key() != o.key() {
		return e.key() > o.key()
	}
	if e.value != o.value {
		return e.value > o.value
	}
	if e.move != o.move {
		return e.move.Less(o.move)
	}
	return rules.LessMoves(e.location, o.location)
}

// frontier is a max-heap of pending expansions for container/heap.
type frontier []*entry

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].before(f[j]) }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*entry)) }

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return e
}
