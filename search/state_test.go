package search

import (
	"testing"

	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/movegen"
	"github.com/stretchr/testify/assert"
)

func freshState() *state {
	board := libtetris.NewBoard()
	board.Queue = []libtetris.Piece{libtetris.I, libtetris.O, libtetris.S}
	return &state{Board: board, Current: libtetris.T, Hold: nil}
}

func TestCloneStateIsIndependent(t *testing.T) {
	s := freshState()
	clone := cloneState(s)

	clone.Board.Queue[0] = libtetris.Z
	assert.NotEqual(t, s.Board.Queue[0], clone.Board.Queue[0])

	clone.Current = libtetris.L
	assert.NotEqual(t, s.Current, clone.Current)
}

func TestPopQueueAdvancesQueue(t *testing.T) {
	s := freshState()
	first := popQueue(s)
	assert.Equal(t, libtetris.I, first)
	assert.Equal(t, []libtetris.Piece{libtetris.O, libtetris.S}, s.Board.Queue)
}

func TestPopQueueOnEmptyQueueReturnsCurrent(t *testing.T) {
	s := freshState()
	s.Board.Queue = nil
	assert.Equal(t, libtetris.T, popQueue(s))
}

func TestApplyPlacementWithoutHoldPopsNextQueueEntry(t *testing.T) {
	s := freshState()
	placement := findPlacement(t, s)

	next, _, needsSpeculation := applyPlacement(s, libtetris.DefaultGameConfig(), 0, placement)
	assert.False(t, needsSpeculation)
	assert.Equal(t, libtetris.I, next.Current)
	assert.Equal(t, []libtetris.Piece{libtetris.O, libtetris.S}, next.Board.Queue)
	assert.Nil(t, next.Hold)

	// original state must be untouched.
	assert.Equal(t, libtetris.T, s.Current)
	assert.Equal(t, []libtetris.Piece{libtetris.I, libtetris.O, libtetris.S}, s.Board.Queue)
}

// When hold starts empty, holding pulls the queue's head into play (the
// piece placement actually targets) and, after locking, the ordinary
// end-of-turn pop advances Current to the queue's new head — two pops in
// total for this single turn.
func TestApplyPlacementFirstHoldStashesCurrentAndPopsTwice(t *testing.T) {
	s := freshState()
	placement := findPlacement(t, s)
	placement.UsedHold = true

	next, _, needsSpeculation := applyPlacement(s, libtetris.DefaultGameConfig(), 0, placement)
	assert.False(t, needsSpeculation)
	assert.NotNil(t, next.Hold)
	assert.Equal(t, libtetris.T, *next.Hold)
	assert.Equal(t, libtetris.O, next.Current)
	assert.Equal(t, []libtetris.Piece{libtetris.S}, next.Board.Queue)
}

// When hold already holds a piece, swapping it into play consumes no
// queue entry itself, but the end-of-turn pop after locking still advances
// Current to the queue's head.
func TestApplyPlacementSwapsExistingHold(t *testing.T) {
	s := freshState()
	held := libtetris.J
	s.Hold = &held
	placement := findPlacement(t, s)
	placement.UsedHold = true

	next, _, needsSpeculation := applyPlacement(s, libtetris.DefaultGameConfig(), 0, placement)
	assert.False(t, needsSpeculation)
	assert.Equal(t, libtetris.I, next.Current)
	assert.NotNil(t, next.Hold)
	assert.Equal(t, libtetris.T, *next.Hold)
	assert.Equal(t, []libtetris.Piece{libtetris.O, libtetris.S}, next.Board.Queue)
}

func TestApplyPlacementSignalsSpeculationWhenQueueExhausted(t *testing.T) {
	s := freshState()
	s.Board.Queue = nil
	placement := findPlacement(t, s)

	_, _, needsSpeculation := applyPlacement(s, libtetris.DefaultGameConfig(), 0, placement)
	assert.True(t, needsSpeculation)
}

func TestWithSpeculativePieceAppendsAndPops(t *testing.T) {
	s := freshState()
	s.Board.Queue = nil
	spec := withSpeculativePiece(s, libtetris.Z)
	assert.Equal(t, libtetris.Z, spec.Current)
	assert.Empty(t, spec.Board.Queue)
}

func TestGenerateDelegatesToMovegen(t *testing.T) {
	s := freshState()
	placements := generate(s)
	assert.NotEmpty(t, placements)
}

// findPlacement returns the first generated placement for s's current piece.
func findPlacement(t *testing.T, s *state) movegen.Placement {
	t.Helper()
	placements := movegen.Generate(s.Board, s.Current, s.Hold)
	if len(placements) == 0 {
		t.Fatal("expected at least one placement on an empty board")
	}
	return placements[0]
}
