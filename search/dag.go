// Package search implements the concurrent best-first search that ranks
// candidate placements: an arena-indexed DAG of board states, expanded and
// backed up by a pool of worker goroutines under a deadline.
package search

import (
	"sync"

	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/movegen"
)

// Naughty is an index into the arena rather than a pointer, so the search
// can free and reuse node slots without the garbage collector chasing a web
// of cross-referencing pointers.
type Naughty int32

const nilNode Naughty = -1

// state is the board position a node represents: the falling piece already
// popped off the queue, what remains of the known queue, and the hold slot.
type state struct {
	Board   *libtetris.Board
	Current libtetris.Piece
	Hold    *libtetris.Piece
}

// edge is one placement a node's state can reach: the move itself, the
// Reward it earns on the way, and the resulting child. Edges live on the
// parent rather than the child because fingerprint dedup means a child can
// be reached by more than one placement from more than one parent, each
// with its own edge data.
type edge struct {
	placement movegen.Placement
	reward    eval.Reward
	child     Naughty
}

// Node is one position in the search DAG: its identity (fingerprint), the
// back-pointers to every parent that reaches it, the edges to its own
// children, and the running Value estimate backed up from its subtree.
type Node struct {
	mu sync.Mutex

	parents  []Naughty
	children []edge

	state       *state
	fingerprint fingerprint

	value  eval.Value
	visits uint32

	expanding   bool
	speculative bool
	valid       bool
}

func (n *Node) Value() eval.Value {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

func (n *Node) Visits() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visits
}

func (n *Node) HasChildren() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.children) > 0
}

// DAG is the arena owning every Node, plus a freelist recycling pruned
// slots (the teacher's cleanup/cleanChildren/freelist pattern, generalized
// from a single best-move tree to a DAG since distinct move orders can
// reach the same board) and a fingerprint index so two paths landing on the
// same position collapse into one node instead of allocating a duplicate.
type DAG struct {
	mu sync.RWMutex

	nodes    []Node
	freelist []Naughty
	index    map[fingerprint]Naughty

	root Naughty
}

// NewDAG creates a DAG rooted at the given state.
func NewDAG(board *libtetris.Board, current libtetris.Piece, hold *libtetris.Piece) *DAG {
	d := &DAG{root: nilNode, index: make(map[fingerprint]Naughty)}
	st := &state{Board: board, Current: current, Hold: hold}
	fp := stateFingerprint(st)

	root := d.alloc()
	rn := d.node(root)
	rn.state = st
	rn.fingerprint = fp
	rn.valid = true
	d.root = root
	d.index[fp] = root
	return d
}

func (d *DAG) Root() Naughty { return d.root }

func (d *DAG) node(n Naughty) *Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return &d.nodes[n]
}

// alloc returns a fresh or recycled node index, its fields zeroed.
func (d *DAG) alloc() Naughty {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l := len(d.freelist); l > 0 {
		n := d.freelist[l-1]
		d.freelist = d.freelist[:l-1]
		return n
	}
	d.nodes = append(d.nodes, Node{})
	return Naughty(len(d.nodes) - 1)
}

// free resets a node, evicts it from the fingerprint index if it's still the
// index's current occupant, and returns its slot to the freelist.
func (d *DAG) free(n Naughty) {
	d.mu.Lock()
	nd := &d.nodes[n]
	if existing, ok := d.index[nd.fingerprint]; ok && existing == n {
		delete(d.index, nd.fingerprint)
	}
	*nd = Node{}
	d.freelist = append(d.freelist, n)
	d.mu.Unlock()
}

// internOrAlloc returns the live node for fp, allocating and registering a
// fresh one (seeded with st) only if fp hasn't been seen before. created
// reports whether this call did the allocating, so the caller knows whether
// st/the freshly evaluated Value actually apply or whether an existing
// node's data should be left alone.
func (d *DAG) internOrAlloc(fp fingerprint, st *state) (n Naughty, created bool) {
	d.mu.Lock()
	if existing, ok := d.index[fp]; ok {
		d.mu.Unlock()
		return existing, false
	}
	d.mu.Unlock()

	n = d.alloc()
	nd := d.node(n)
	nd.mu.Lock()
	nd.state = st
	nd.fingerprint = fp
	nd.valid = true
	nd.mu.Unlock()

	d.mu.Lock()
	if existing, ok := d.index[fp]; ok {
		d.mu.Unlock()
		d.free(n)
		return existing, false
	}
	d.index[fp] = n
	d.mu.Unlock()
	return n, true
}

// Children returns a node's child indices.
func (d *DAG) Children(n Naughty) []Naughty {
	nd := d.node(n)
	nd.mu.Lock()
	defer nd.mu.Unlock()
	out := make([]Naughty, len(nd.children))
	for i, e := range nd.children {
		out[i] = e.child
	}
	return out
}

// NodeCount reports the number of live (non-freed) node slots.
func (d *DAG) NodeCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes) - len(d.freelist)
}

// Advance re-roots the DAG at the child reached by the given placement,
// pruning every sibling edge not taken. A node reachable from more than one
// root child survives pruning as long as at least one of its parents does;
// see pruneEdge. Returns false if no matching child exists (the caller must
// start a fresh DAG in that case).
func (d *DAG) Advance(placement movegen.Placement) bool {
	root := d.node(d.root)
	root.mu.Lock()
	children := append([]edge(nil), root.children...)
	root.mu.Unlock()

	newRoot := nilNode
	for _, e := range children {
		if placementsEqual(e.placement, placement) {
			newRoot = e.child
			break
		}
	}
	if newRoot == nilNode {
		return false
	}

	for _, e := range children {
		if e.child != newRoot {
			d.pruneEdge(d.root, e.child)
		}
	}

	oldRoot := d.root
	d.removeParent(newRoot, oldRoot)
	d.root = newRoot
	d.free(oldRoot)
	return true
}

// pruneEdge removes parent from child's back-pointers, and once child has no
// parents left, recursively prunes child's own edges and frees it. A child
// reachable from a surviving node is left untouched even if this particular
// edge into it goes away.
func (d *DAG) pruneEdge(parent, child Naughty) {
	cn := d.node(child)
	cn.mu.Lock()
	for i, p := range cn.parents {
		if p == parent {
			cn.parents = append(cn.parents[:i], cn.parents[i+1:]...)
			break
		}
	}
	remaining := len(cn.parents)
	grandchildren := append([]edge(nil), cn.children...)
	cn.mu.Unlock()

	if remaining > 0 {
		return
	}
	for _, e := range grandchildren {
		d.pruneEdge(child, e.child)
	}
	d.free(child)
}

// removeParent strips parent from n's back-pointers unconditionally,
// regardless of how many parents remain afterward. Used when re-rooting:
// the new root keeps existing no matter how many other parents it has left.
func (d *DAG) removeParent(n, parent Naughty) {
	nd := d.node(n)
	nd.mu.Lock()
	for i, p := range nd.parents {
		if p == parent {
			nd.parents = append(nd.parents[:i], nd.parents[i+1:]...)
			break
		}
	}
	nd.mu.Unlock()
}

func placementsEqual(a, b movegen.Placement) bool {
	return a.Piece == b.Piece && a.UsedHold == b.UsedHold
}
