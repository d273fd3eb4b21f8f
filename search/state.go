package search

import (
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/movegen"
)

func cloneState(s *state) *state {
	b := s.Board.Clone()
	var hold *libtetris.Piece
	if s.Hold != nil {
		h := *s.Hold
		hold = &h
	}
	return &state{Board: b, Current: s.Current, Hold: hold}
}

// applyPlacement locks placement's piece onto a clone of s, performs the
// hold swap movegen assumed, and pops the next current piece off the
// queue. needsSpeculation is true when the queue ran out, meaning the
// caller must branch over all seven possible next pieces rather than
// continue deterministically.
func applyPlacement(s *state, cfg libtetris.GameConfig, tick uint64, placement movegen.Placement) (next *state, lock libtetris.LockResult, needsSpeculation bool) {
	next = cloneState(s)

	if placement.UsedHold {
		if next.Hold == nil {
			h := next.Current
			next.Hold = &h
			next.Current = popQueue(next)
		} else {
			next.Current, *next.Hold = *next.Hold, next.Current
		}
	}

	lock = libtetris.Lock(next.Board, placement.Piece, cfg, tick)

	if len(next.Board.Queue) == 0 {
		needsSpeculation = true
		return next, lock, needsSpeculation
	}
	next.Current = popQueue(next)
	return next, lock, false
}

func popQueue(s *state) libtetris.Piece {
	if len(s.Board.Queue) == 0 {
		return s.Current
	}
	p := s.Board.Queue[0]
	s.Board.Queue = s.Board.Queue[1:]
	return p
}

// withSpeculativePiece returns a clone of s with p appended as the next
// known queue entry, used to build the seven children of a speculative
// branch node.
func withSpeculativePiece(s *state, p libtetris.Piece) *state {
	clone := cloneState(s)
	clone.Board.Queue = append(clone.Board.Queue, p)
	clone.Current = popQueue(clone)
	return clone
}

func generate(s *state) []movegen.Placement {
	return movegen.Generate(s.Board, s.Current, s.Hold)
}
