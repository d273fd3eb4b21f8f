// Package libtetris implements the deterministic Tetris rules engine:
// piece kinematics (including SRS wall kicks and T-spin detection),
// board state, lock and scoring logic, and the per-player tick FSM.
package libtetris

// Piece is one of the seven tetromino kinds.
type Piece uint8

const (
	I Piece = iota
	O
	T
	L
	J
	S
	Z
	numPieces = 7
)

func (p Piece) String() string {
	switch p {
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case L:
		return "L"
	case J:
		return "J"
	case S:
		return "S"
	case Z:
		return "Z"
	}
	return "?"
}

// AllPieces lists the seven kinds in a stable order, used to seed 7-bags.
var AllPieces = [numPieces]Piece{I, O, T, L, J, S, Z}

// RotationState is one of the four SRS facings.
type RotationState uint8

const (
	North RotationState = iota
	East
	South
	West
)

// Cw returns the rotation state reached by rotating one quarter turn clockwise.
func (r RotationState) Cw() RotationState { return (r + 1) % 4 }

// Ccw returns the rotation state reached by rotating one quarter turn counter-clockwise.
func (r RotationState) Ccw() RotationState { return (r + 3) % 4 }

// PieceState pairs a tetromino kind with its current facing.
type PieceState struct {
	Piece    Piece
	Rotation RotationState
}

// TspinStatus classifies the T-spin (or lack thereof) associated with a placement.
type TspinStatus uint8

const (
	TspinNone TspinStatus = iota
	TspinMini
	TspinFull
)

// cellOffset is a local (dx, dy) offset within a piece's 4x4 bounding box, y increasing upward.
type cellOffset struct{ X, Y int }

// cellTable[piece][rotation] lists the four absolute-offset cells occupied by that
// piece in that rotation, relative to the FallingPiece's (X, Y) anchor.
var cellTable = map[Piece][4][4]cellOffset{
	I: {
		North: {{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		East:  {{2, 3}, {2, 2}, {2, 1}, {2, 0}},
		South: {{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		West:  {{1, 3}, {1, 2}, {1, 1}, {1, 0}},
	},
	O: {
		North: {{1, 2}, {2, 2}, {1, 1}, {2, 1}},
		East:  {{1, 2}, {2, 2}, {1, 1}, {2, 1}},
		South: {{1, 2}, {2, 2}, {1, 1}, {2, 1}},
		West:  {{1, 2}, {2, 2}, {1, 1}, {2, 1}},
	},
	T: {
		North: {{1, 2}, {0, 1}, {1, 1}, {2, 1}},
		East:  {{1, 2}, {1, 1}, {2, 1}, {1, 0}},
		South: {{0, 1}, {1, 1}, {2, 1}, {1, 0}},
		West:  {{1, 2}, {0, 1}, {1, 1}, {1, 0}},
	},
	S: {
		North: {{1, 2}, {2, 2}, {0, 1}, {1, 1}},
		East:  {{1, 2}, {1, 1}, {2, 1}, {2, 0}},
		South: {{1, 1}, {2, 1}, {0, 0}, {1, 0}},
		West:  {{0, 2}, {0, 1}, {1, 1}, {1, 0}},
	},
	Z: {
		North: {{0, 2}, {1, 2}, {1, 1}, {2, 1}},
		East:  {{2, 2}, {1, 1}, {2, 1}, {1, 0}},
		South: {{0, 1}, {1, 1}, {1, 0}, {2, 0}},
		West:  {{1, 2}, {0, 1}, {1, 1}, {0, 0}},
	},
	L: {
		North: {{2, 2}, {0, 1}, {1, 1}, {2, 1}},
		East:  {{1, 2}, {1, 1}, {1, 0}, {2, 0}},
		South: {{0, 1}, {1, 1}, {2, 1}, {0, 0}},
		West:  {{0, 2}, {1, 2}, {1, 1}, {1, 0}},
	},
	J: {
		North: {{0, 2}, {0, 1}, {1, 1}, {2, 1}},
		East:  {{1, 2}, {2, 2}, {1, 1}, {1, 0}},
		South: {{0, 1}, {1, 1}, {2, 1}, {2, 0}},
		West:  {{1, 2}, {1, 1}, {0, 0}, {1, 0}},
	},
}

// FallingPiece is an in-flight piece: its kind/facing, board-relative anchor, and
// whether its last rotation was classified as a T-spin. y grows upward from 0 at the floor.
type FallingPiece struct {
	PieceState PieceState
	X, Y       int
	Tspin      TspinStatus
}

// Cell is an absolute board coordinate occupied by a piece.
type Cell struct{ X, Y int }

// Cells returns the four absolute coordinates fp occupies.
func (fp FallingPiece) Cells() [4]Cell {
	offsets := cellTable[fp.PieceState.Piece][fp.PieceState.Rotation]
	var out [4]Cell
	for i, o := range offsets {
		out[i] = Cell{fp.X + o.X, fp.Y + o.Y}
	}
	return out
}

// spawnState returns the initial FallingPiece for p, centered with its spawn
// anchor at the top of the visible field.
func spawnState(p Piece) FallingPiece {
	// All cell tables are authored in a 4-wide local box; centering the anchor
	// at x=3 puts the piece's local columns 0..3 across board columns 3..6.
	return FallingPiece{
		PieceState: PieceState{Piece: p, Rotation: North},
		X:          3,
		Y:          VisibleHeight - 2,
		Tspin:      TspinNone,
	}
}

// center is the absolute coordinate of the piece's pivot cell, used for T-spin
// corner classification. Every T rotation table places a cell at local (1, 1),
// which is this pivot.
func (fp FallingPiece) center() Cell {
	return Cell{fp.X + 1, fp.Y + 1}
}

// SpawnObstructed reports whether p would be immediately blocked if spawned
// on b, the condition that tops a game out.
func SpawnObstructed(b *Board, p Piece) bool {
	return Obstructed(spawnState(p), b)
}
