package search

import (
	"context"
	"runtime"
	"sync"
	"time"

	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/movegen"
)

const dirichletParam = 0.3

// Search grows a DAG of reachable placements until its time or node budget
// runs out, ranking the root's immediate children by the Evaluator's Value.
type Search struct {
	dag    *DAG
	eval   eval.Evaluator
	config libtetris.GameConfig
	cfg    Config

	tick uint64
}

// New starts a search from the current board/piece/hold, ready to run.
func New(board *libtetris.Board, current libtetris.Piece, hold *libtetris.Piece, gameConfig libtetris.GameConfig, evaluator eval.Evaluator, cfg Config) *Search {
	return &Search{
		dag:    NewDAG(board, current, hold),
		eval:   evaluator,
		config: gameConfig,
		cfg:    cfg,
	}
}

// Run drives the worker pool until ctx is cancelled, the configured timeout
// elapses, or the arena grows past MaxNodes.
func (s *Search) Run(ctx context.Context) {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(runCtx)
		}()
	}
	wg.Wait()
}

func (s *Search) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if s.dag.NodeCount() >= s.cfg.MaxNodes {
			return
		}
		leaf := s.selectLeaf()
		if leaf == nilNode {
			// another worker holds the selected leaf; try again.
			runtime.Gosched()
			continue
		}
		s.expandLeaf(leaf)
	}
}

// selectLeaf walks from the root picking, at each step, the child with the
// best Value (ties broken toward fewer visits, to keep exploring), stopping
// at the first node with no children or one currently being expanded by
// another worker.
func (s *Search) selectLeaf() Naughty {
	cur := s.dag.root

	for {
		node := s.dag.node(cur)
		node.mu.Lock()
		children := make([]Naughty, len(node.children))
		for i, e := range node.children {
			children[i] = e.child
		}
		expanding := node.expanding
		if len(children) == 0 && !expanding {
			node.expanding = true
			node.mu.Unlock()
			return cur
		}
		node.mu.Unlock()
		if len(children) == 0 {
			// another worker is already expanding this leaf; nothing to do.
			return nilNode
		}

		best := s.bestChild(cur, children)
		if best == nilNode {
			return nilNode
		}
		cur = best
	}
}

func (s *Search) bestChild(parent Naughty, children []Naughty) Naughty {
	var minVal eval.Value
	first := true
	for _, c := range children {
		v := s.dag.node(c).Value()
		if first || v.Cmp(minVal) < 0 {
			minVal = v
			first = false
		}
	}

	noise := s.rootNoise(parent, len(children))

	best := nilNode
	var bestWeight int64
	for i, c := range children {
		node := s.dag.node(c)
		weight := node.Value().Weight(minVal, int(node.Visits()))
		if noise != nil {
			weight += int64(noise[i] * 1000)
		}
		if best == nilNode || weight > bestWeight {
			best = c
			bestWeight = weight
		}
	}
	return best
}

// rootNoise returns Dirichlet noise for the root's children when
// ExplorationNoise is enabled, nil otherwise.
func (s *Search) rootNoise(parent Naughty, n int) []float64 {
	if parent != s.dag.root || s.cfg.ExplorationNoise <= 0 || n == 0 {
		return nil
	}
	alpha := make([]float64, n)
	for i := range alpha {
		alpha[i] = dirichletParam
	}
	dist := distmv.NewDirichlet(alpha, distrand.NewSource(uint64(time.Now().UnixNano())))
	sample := dist.Rand(nil)
	for i := range sample {
		sample[i] *= float64(s.cfg.ExplorationNoise)
	}
	return sample
}

// expandLeaf generates leaf's children (branching speculatively over all
// seven pieces if its queue is exhausted), evaluates each, then recomputes
// leaf's own Value and propagates any change up through every one of its
// parents.
func (s *Search) expandLeaf(leaf Naughty) {
	node := s.dag.node(leaf)
	node.mu.Lock()
	st := node.state
	node.mu.Unlock()

	placements := generate(st)

	for _, placement := range placements {
		childState, lock, needsSpeculation := applyPlacement(st, s.config, s.tick, placement)

		if needsSpeculation {
			s.expandSpeculative(leaf, placement, childState, lock)
			continue
		}

		v, r := s.eval.Evaluate(lock, childState.Board, placement.MoveTime, placement.Piece)
		if libtetris.SpawnObstructed(childState.Board, childState.Current) {
			v = v.ModifyDeath()
		}
		s.addChild(leaf, placement, childState, v, r)
	}

	node = s.dag.node(leaf)
	node.mu.Lock()
	node.expanding = false
	node.mu.Unlock()

	s.propagate(leaf)
}

// expandSpeculative adds a branch node for placement's resulting state and,
// under it, one child per placement of each of the seven possible next
// pieces; the branch node's Value is the per-piece-group average of those
// children (see averageByPiece).
func (s *Search) expandSpeculative(parent Naughty, placement movegen.Placement, base *state, lock libtetris.LockResult) {
	v, r := s.eval.Evaluate(lock, base.Board, placement.MoveTime, placement.Piece)

	branchNode := s.addChild(parent, placement, base, v, r)
	bn := s.dag.node(branchNode)
	bn.mu.Lock()
	bn.speculative = true
	bn.mu.Unlock()

	for _, p := range libtetris.AllPieces {
		childState := withSpeculativePiece(base, p)
		childPlacements := generate(childState)
		for _, cp := range childPlacements {
			cState, cLock, _ := applyPlacement(childState, s.config, s.tick, cp)
			cv, cr := s.eval.Evaluate(cLock, cState.Board, cp.MoveTime, cp.Piece)
			s.addChild(branchNode, cp, cState, cv, cr)
		}
	}

	s.recomputeValue(branchNode)
}

// addChild interns placement's resulting state by fingerprint, recording
// parent as one of its back-pointers and the placement/reward as an edge on
// parent's own child list. If another path has already reached the same
// fingerprint, the existing node is reused (and value/reward describe only
// the newly-discovered edge, not the shared node) rather than allocating a
// duplicate.
func (s *Search) addChild(parent Naughty, placement movegen.Placement, st *state, value eval.Value, reward eval.Reward) Naughty {
	fp := stateFingerprint(st)
	child, created := s.dag.internOrAlloc(fp, st)

	cn := s.dag.node(child)
	cn.mu.Lock()
	hasParent := false
	for _, p := range cn.parents {
		if p == parent {
			hasParent = true
			break
		}
	}
	if !hasParent {
		cn.parents = append(cn.parents, parent)
	}
	if created {
		cn.value = value
		cn.visits = 1
	}
	cn.mu.Unlock()

	p := s.dag.node(parent)
	p.mu.Lock()
	p.children = append(p.children, edge{placement: placement, reward: reward, child: child})
	p.mu.Unlock()
	return child
}

// propagate recomputes n's Value from its children and, if it changed,
// recurses into every one of n's parents — repeating level by level up
// toward the root, rather than broadcasting a single descendant's Value to
// every ancestor uniformly.
func (s *Search) propagate(n Naughty) {
	if !s.recomputeValue(n) {
		return
	}
	node := s.dag.node(n)
	node.mu.Lock()
	parents := append([]Naughty(nil), node.parents...)
	node.mu.Unlock()

	for _, p := range parents {
		s.propagate(p)
	}
}

// recomputeValue recomputes n's Value from its own children's edges: the
// max of (edge reward + child Value) for an ordinary node, or the
// per-next-piece-group average for a speculative branch node. It improves
// n's stored Value and reports whether that changed it.
func (s *Search) recomputeValue(n Naughty) bool {
	node := s.dag.node(n)
	node.mu.Lock()
	children := append([]edge(nil), node.children...)
	speculative := node.speculative
	old := node.value
	node.mu.Unlock()

	if len(children) == 0 {
		return false
	}

	var next eval.Value
	if speculative {
		next = s.averageByPiece(children)
	} else {
		next = s.bestEdgeValue(children)
	}

	node.mu.Lock()
	node.visits++
	node.value.Improve(next)
	changed := node.value.Cmp(old) != 0
	node.mu.Unlock()
	return changed
}

// bestEdgeValue returns the best (edge reward + child Value) over children.
func (s *Search) bestEdgeValue(children []edge) eval.Value {
	best := eval.Default()
	hasBest := false
	for _, e := range children {
		v := s.dag.node(e.child).Value().AddReward(e.reward)
		if !hasBest || v.Cmp(best) > 0 {
			best = v
			hasBest = true
		}
	}
	return best
}

// averageByPiece groups children by the next piece their placement used,
// keeps only the best (edge reward + child Value) within each group, and
// averages across all seven possible next pieces, per the search's
// speculative-branch rule (Value.Add/Div).
func (s *Search) averageByPiece(children []edge) eval.Value {
	var bestByPiece [len(libtetris.AllPieces)]eval.Value
	var seen [len(libtetris.AllPieces)]bool
	for _, e := range children {
		piece := e.placement.Piece.PieceState.Piece
		v := s.dag.node(e.child).Value().AddReward(e.reward)
		if !seen[piece] || v.Cmp(bestByPiece[piece]) > 0 {
			bestByPiece[piece] = v
			seen[piece] = true
		}
	}

	total := eval.Default()
	for i, v := range bestByPiece {
		if seen[i] {
			total = total.Add(v)
		}
	}
	return total.Div(len(libtetris.AllPieces))
}

// BestPlacement returns the root's highest-ranked child under PickMove,
// given incoming units of pending garbage, and its Value, or false if the
// root has not been expanded yet.
func (s *Search) BestPlacement(incoming uint32) (movegen.Placement, eval.Value, bool) {
	root := s.dag.node(s.dag.root)
	root.mu.Lock()
	children := append([]edge(nil), root.children...)
	root.mu.Unlock()

	if len(children) == 0 {
		return movegen.Placement{}, eval.Default(), false
	}

	candidates := make([]eval.MoveCandidate, len(children))
	for i, e := range children {
		candidates[i] = eval.MoveCandidate{
			Placement:  e.placement,
			ChildValue: s.dag.node(e.child).Value(),
			Reward:     e.reward,
		}
	}
	chosen := s.eval.PickMove(candidates, incoming)
	return chosen.Placement, chosen.ChildValue, true
}

// Advance re-roots the search on the placement actually taken, discarding
// every other branch, so the next move's search reuses this move's work.
func (s *Search) Advance(placement movegen.Placement) bool {
	return s.dag.Advance(placement)
}

// NodeCount reports how many nodes are currently live in the arena.
func (s *Search) NodeCount() int { return s.dag.NodeCount() }
