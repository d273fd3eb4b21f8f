package search

import (
	"testing"

	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/movegen"
	"github.com/stretchr/testify/assert"
)

func newTestDAG() *DAG {
	board := libtetris.NewBoard()
	board.Queue = []libtetris.Piece{libtetris.T, libtetris.I, libtetris.O}
	return NewDAG(board, libtetris.S, nil)
}

func TestNewDAGHasOneLiveRootNode(t *testing.T) {
	d := newTestDAG()
	assert.Equal(t, 1, d.NodeCount())
	assert.NotEqual(t, nilNode, d.Root())
}

func TestAllocReusesFreedSlots(t *testing.T) {
	d := newTestDAG()
	a := d.alloc()
	b := d.alloc()
	assert.NotEqual(t, a, b)

	d.free(a)
	c := d.alloc()
	assert.Equal(t, a, c, "alloc should recycle the freelist before growing the arena")
}

func TestChildrenAndHasChildren(t *testing.T) {
	d := newTestDAG()
	root := d.Root()
	rootNode := d.node(root)
	assert.False(t, rootNode.HasChildren())

	child := d.alloc()
	rootNode.mu.Lock()
	rootNode.children = append(rootNode.children, edge{child: child})
	rootNode.mu.Unlock()

	assert.True(t, rootNode.HasChildren())
	assert.Equal(t, []Naughty{child}, d.Children(root))
}

func TestAdvancePrunesSiblingsAndReRootsOnMatch(t *testing.T) {
	d := newTestDAG()
	root := d.Root()

	wantPlacement := movegen.Placement{Piece: libtetris.FallingPiece{PieceState: libtetris.PieceState{Piece: libtetris.T}}, UsedHold: false}
	otherPlacement := movegen.Placement{Piece: libtetris.FallingPiece{PieceState: libtetris.PieceState{Piece: libtetris.I}}, UsedHold: false}

	keep := d.alloc()
	d.node(keep).valid = true
	d.node(keep).parents = []Naughty{root}

	drop := d.alloc()
	d.node(drop).valid = true
	d.node(drop).parents = []Naughty{root}

	rn := d.node(root)
	rn.mu.Lock()
	rn.children = append(rn.children,
		edge{placement: wantPlacement, child: keep},
		edge{placement: otherPlacement, child: drop},
	)
	rn.mu.Unlock()

	before := d.NodeCount()
	ok := d.Advance(wantPlacement)
	assert.True(t, ok)
	assert.Equal(t, keep, d.Root())
	assert.Less(t, d.NodeCount(), before, "the dropped sibling's subtree and the old root should be freed")
}

func TestAdvanceReturnsFalseWhenNoChildMatches(t *testing.T) {
	d := newTestDAG()
	missing := movegen.Placement{Piece: libtetris.FallingPiece{PieceState: libtetris.PieceState{Piece: libtetris.L}}}
	ok := d.Advance(missing)
	assert.False(t, ok)
}

func TestNodeValueAndVisitsAccessors(t *testing.T) {
	d := newTestDAG()
	n := d.node(d.Root())
	n.mu.Lock()
	n.value = eval.Value{Total: 3}
	n.visits = 5
	n.mu.Unlock()

	assert.Equal(t, float32(3), n.Value().Total)
	assert.Equal(t, uint32(5), n.Visits())
}
