package libtetris

import "math/rand"

// Bag is a 7-bag piece randomizer. Each instance owns its own *rand.Rand so
// that callers (notably battle.Battle, which needs reproducible per-player
// sequences)
// can seed it deterministically instead of relying on process-global
// randomness.
type Bag struct {
	rng     *rand.Rand
	pending []Piece
}

// NewBag returns a Bag seeded from seed.
func NewBag(seed int64) *Bag {
	return &Bag{rng: rand.New(rand.NewSource(seed))}
}

// refill shuffles a fresh set of all seven pieces into the pending queue.
func (bag *Bag) refill() {
	next := AllPieces
	bag.rng.Shuffle(len(next), func(i, j int) { next[i], next[j] = next[j], next[i] })
	bag.pending = append(bag.pending, next[:]...)
}

// Next pops (refilling if necessary) the next piece from the bag.
func (bag *Bag) Next() Piece {
	if len(bag.pending) == 0 {
		bag.refill()
	}
	p := bag.pending[0]
	bag.pending = bag.pending[1:]
	return p
}

// Peek returns the next n pieces without consuming them, refilling as needed.
func (bag *Bag) Peek(n int) []Piece {
	for len(bag.pending) < n {
		bag.refill()
	}
	out := make([]Piece, n)
	copy(out, bag.pending[:n])
	return out
}
