// Package eval implements the pluggable Evaluator abstraction the search
// consults when expanding nodes: a totally-ordered, propagatable Value
// combined with an edge-local additive Reward, and a Standard evaluator
// that scores board features.
package eval

import "github.com/chewxy/math32"

// deathPenalty is subtracted from a Value when the state it scores topped out.
const deathPenalty = 1000

// Value is the search's propagatable score: a small struct-of-scores reduced
// to a single totally-ordered float32, following the teacher's use of
// math32 for all node-score arithmetic (mcts/node.go's qsa/psa, mcts/search.go's
// Result). Value supports the monoid-ish operations the search needs to
// combine edge rewards and fold children, and to average across speculative
// branches over unknown next pieces (scale by 7, fold, divide by 7).
type Value struct {
	Total float32
}

// Reward is the edge-local, additive damage/benefit of a single placement
// (clearing lines, sending garbage). It is never propagated on its own;
// it is only ever added into a child's Value.
type Reward struct {
	Damage float32
}

// RewardFromGarbage builds a Reward from the garbage a lock sent.
func RewardFromGarbage(garbageSent int) Reward {
	return Reward{Damage: float32(garbageSent)}
}

// Add folds another Value into v (used when averaging speculative branches).
func (v Value) Add(o Value) Value { return Value{Total: v.Total + o.Total} }

// AddReward combines v with an edge's Reward, the quantity back-propagated
// from a child to its parent.
func (v Value) AddReward(r Reward) Value { return Value{Total: v.Total + r.Damage} }

// Mul scales v by n (the first half of the speculative-branch average).
func (v Value) Mul(n int) Value { return Value{Total: v.Total * float32(n)} }

// Div divides v by n (the second half of the speculative-branch average;
// division by a positive n preserves ordering, since float32 division is
// monotone).
func (v Value) Div(n int) Value {
	if n == 0 {
		return v
	}
	return Value{Total: v.Total / float32(n)}
}

// Cmp gives the total order over Value: negative if v < o, zero if equal,
// positive if v > o. NaN is treated as the minimum possible value so a
// corrupted Value never wins a comparison.
func (v Value) Cmp(o Value) int {
	a, b := v.Total, o.Total
	switch {
	case math32.IsNaN(a) && math32.IsNaN(b):
		return 0
	case math32.IsNaN(a):
		return -1
	case math32.IsNaN(b):
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ModifyDeath penalizes a terminal (topped-out) state's Value.
func (v Value) ModifyDeath() Value { return Value{Total: v.Total - deathPenalty} }

// Weight projects v to an integer used to rank sibling candidates in
// PickMove, relative to the worst candidate (min) among the set being
// ranked, with rank as a tie-break (lower rank, i.e. less-visited, wins
// ties in the search's leaf-selection rule).
func (v Value) Weight(min Value, rank int) int64 {
	delta := v.Total - min.Total
	return int64(delta*1000) - int64(rank)
}

// Debug gates improve()'s regression check; cmd/* binaries may turn it on.
var Debug = false

// Improve replaces v with other only if other is at least as good under the
// total order (monotone-in-order replacement, per SPEC_FULL's resolution of
// the "improve" open question). In Debug mode a genuine regression panics
// instead of being silently accepted.
func (v *Value) Improve(other Value) {
	if other.Cmp(*v) < 0 {
		if Debug {
			panic("eval: Improve called with a regressed Value")
		}
		return
	}
	*v = other
}

// Default is the zero Value, used when a node has not yet been evaluated.
func Default() Value { return Value{} }
