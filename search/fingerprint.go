package search

import "math/rand"

// fingerprint identifies a search node's (board, hold, queue, current piece)
// position. Two reachable paths that land on the same fingerprint are the
// same node: this is what makes the arena a DAG instead of a tree.
type fingerprint uint64

// currentPieceSalt distinguishes otherwise-identical boards that differ only
// in which piece is currently falling (libtetris.Board.Fingerprint covers
// cells/hold/queue but has no notion of "current", since that lives in
// search.state, not the board itself).
var currentPieceSalt [7]uint64

func init() {
	rng := rand.New(rand.NewSource(0xC0FFEE1234567))
	for i := range currentPieceSalt {
		currentPieceSalt[i] = rng.Uint64()
	}
}

func stateFingerprint(s *state) fingerprint {
	h := s.Board.Fingerprint() ^ currentPieceSalt[s.Current]
	return fingerprint(h)
}
