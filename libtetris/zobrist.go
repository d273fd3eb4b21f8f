package libtetris

import "math/rand"

// Fingerprinting follows the same Zobrist-hashing idea a chess engine's
// transposition table uses to key positions: a fixed table of pseudo-random
// 64-bit numbers, one per (cell value, row, column), XORed together for
// every occupied cell plus a key for the hold slot. Two boards with
// identical cell contents, hold and queue collide to the same hash
// regardless of the sequence of locks that produced them.
var (
	zobristCell [Garbage + 1][Height][Width]uint64
	zobristHold [numPieces + 1]uint64 // last slot is "no hold"
)

func init() {
	rng := rand.New(rand.NewSource(0x12345678DEADBEEF))
	for v := range zobristCell {
		for y := range zobristCell[v] {
			for x := range zobristCell[v][y] {
				zobristCell[v][y][x] = rng.Uint64()
			}
		}
	}
	for i := range zobristHold {
		zobristHold[i] = rng.Uint64()
	}
}

// Fingerprint returns a compact hash of b's cell contents, hold slot, and
// queue (in order), suitable as a search node's identity: two boards that
// reach the same cells, hold, and remaining queue collide to the same value
// no matter what sequence of placements produced them.
func (b *Board) Fingerprint() uint64 {
	var h uint64
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if v := b.cells[y][x]; v != Empty {
				h ^= zobristCell[v][y][x]
			}
		}
	}
	if b.Hold != nil {
		h ^= zobristHold[*b.Hold]
	} else {
		h ^= zobristHold[numPieces]
	}

	// The queue's order matters (first-to-place differs from second), so it
	// is folded in sequentially rather than XORed in like the unordered
	// cell/hold keys above.
	const fnvOffset, fnvPrime = 14695981039346656037, 1099511628211
	q := uint64(fnvOffset)
	for _, p := range b.Queue {
		q = (q ^ uint64(p)) * fnvPrime
	}
	h ^= q

	return h
}
