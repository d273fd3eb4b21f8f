package bot

import (
	"testing"

	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/movegen"
	"github.com/stretchr/testify/assert"
)

func TestMoveFromPlacementCopiesFields(t *testing.T) {
	placement := movegen.Placement{
		Piece:    libtetris.FallingPiece{PieceState: libtetris.PieceState{Piece: libtetris.T}, X: 4, Y: 0},
		UsedHold: true,
		Inputs:   []movegen.InputToken{movegen.Left, movegen.HardDrop},
	}
	move := moveFromPlacement(placement)

	assert.Equal(t, placement.Piece, move.ExpectedLocation)
	assert.True(t, move.Hold)
	assert.Equal(t, placement.Inputs, move.Inputs)
}
