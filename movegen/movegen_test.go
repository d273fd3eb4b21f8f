package movegen

import (
	"testing"

	"github.com/coldclear/core/libtetris"
	"github.com/stretchr/testify/assert"
)

func TestGenerateOnEmptyBoardProducesPlacementsForEveryRotation(t *testing.T) {
	board := libtetris.NewBoard()
	placements := Generate(board, libtetris.T, nil)
	assert.NotEmpty(t, placements)

	seenRotations := map[libtetris.RotationState]bool{}
	for _, p := range placements {
		seenRotations[p.Piece.PieceState.Rotation] = true
		assert.False(t, p.UsedHold)
		assert.NotEmpty(t, p.Inputs)
		assert.Equal(t, HardDrop, p.Inputs[len(p.Inputs)-1])
	}
	for _, r := range []libtetris.RotationState{libtetris.North, libtetris.East, libtetris.South, libtetris.West} {
		assert.True(t, seenRotations[r], "expected a reachable placement in rotation %v", r)
	}
}

func TestGeneratePlacementsAreUniqueByFootprint(t *testing.T) {
	board := libtetris.NewBoard()
	placements := Generate(board, libtetris.O, nil)

	seen := map[[2]int]bool{}
	for _, p := range placements {
		key := [2]int{p.Piece.X, p.Piece.Y}
		assert.False(t, seen[key], "duplicate footprint at %v", key)
		seen[key] = true
	}
}

func TestGenerateIncludesHoldBranchWhenHoldDiffersFromCurrent(t *testing.T) {
	board := libtetris.NewBoard()
	hold := libtetris.I
	placements := Generate(board, libtetris.O, &hold)

	var sawHold bool
	for _, p := range placements {
		if p.UsedHold {
			sawHold = true
			assert.Equal(t, libtetris.I, p.Piece.PieceState.Piece)
			assert.Equal(t, Hold, p.Inputs[0])
		}
	}
	assert.True(t, sawHold, "expected at least one placement using the hold piece")
}

func TestGenerateOmitsHoldBranchWhenHoldEqualsCurrent(t *testing.T) {
	board := libtetris.NewBoard()
	hold := libtetris.O
	placements := Generate(board, libtetris.O, &hold)

	for _, p := range placements {
		assert.False(t, p.UsedHold, "holding an identical piece should not add a distinct branch")
	}
}

func TestGenerateOnEmptyBoardCoversMultipleColumns(t *testing.T) {
	board := libtetris.NewBoard()
	placements := Generate(board, libtetris.I, nil)

	cols := map[int]bool{}
	for _, p := range placements {
		cols[p.Piece.X] = true
	}
	assert.Greater(t, len(cols), 1, "an I piece should reach more than one column on an empty board")
}
