// Package bot wires libtetris, movegen and search into an asynchronous
// player: a channel-based Interface the game loop feeds pieces into and
// polls moves from, and a PieceMoveExecutor that turns a chosen placement
// back into per-tick controller input.
package bot

import (
	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/movegen"
)

// Move is a suggested placement, expressed both as the final resting state
// and as the approximate input sequence that reaches it.
type Move struct {
	ExpectedLocation libtetris.FallingPiece
	Hold             bool
	Inputs           []movegen.InputToken
}

// Info is the diagnostic payload accompanying a Move: how much of the DAG
// was explored and what it considered instead.
type Info struct {
	Nodes      int
	Value      eval.Value
	Candidates []movegen.Placement
}

func moveFromPlacement(p movegen.Placement) Move {
	return Move{ExpectedLocation: p.Piece, Hold: p.UsedHold, Inputs: p.Inputs}
}
