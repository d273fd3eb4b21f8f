package libtetris

// kickOffset is a candidate (dx, dy) translation tried, in order, while
// attempting a rotation. Index 0 is always (0, 0) (the naive rotation).
type kickOffset struct{ dx, dy int }

type kickKey struct {
	from, to RotationState
}

// jlstzKicks and iKicks are the SRS wall-kick tables for the two piece
// families. Offsets are listed test-2..test-5; test-1 (the bare rotation,
// no translation) is prepended when the table is consulted.
var jlstzKicks = map[kickKey][4]kickOffset{
	{North, East}: {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{East, North}: {{1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{East, South}: {{1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{South, East}: {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{South, West}: {{1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{West, South}: {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{West, North}: {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{North, West}: {{1, 0}, {1, 1}, {0, -2}, {1, -2}},
}

var iKicks = map[kickKey][4]kickOffset{
	{North, East}: {{-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{East, North}: {{2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{East, South}: {{-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{South, East}: {{1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{South, West}: {{2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{West, South}: {{-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{West, North}: {{1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{North, West}: {{-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

// kicksFor returns the ordered list of (dx, dy) candidates to try for a
// rotation from -> to, including the leading (0, 0) naive attempt.
func kicksFor(piece Piece, from, to RotationState) []kickOffset {
	if piece == O {
		return []kickOffset{{0, 0}}
	}
	table := jlstzKicks
	if piece == I {
		table = iKicks
	}
	tests := table[kickKey{from, to}]
	return []kickOffset{{0, 0}, tests[0], tests[1], tests[2], tests[3]}
}

// Direction is a rotation direction.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// Rotate attempts to rotate fp one quarter turn in dir, trying the naive
// rotation and then each SRS kick in order. It returns the first
// non-obstructed result, classifying a T-spin if a T piece rotation
// succeeds. ok is false if every kick is obstructed.
func Rotate(fp FallingPiece, dir Direction, b *Board) (FallingPiece, bool) {
	from := fp.PieceState.Rotation
	var to RotationState
	if dir == Clockwise {
		to = from.Cw()
	} else {
		to = from.Ccw()
	}

	kicks := kicksFor(fp.PieceState.Piece, from, to)
	base := fp
	base.PieceState.Rotation = to
	base.Tspin = TspinNone

	for i, k := range kicks {
		cand := base
		cand.X += k.dx
		cand.Y += k.dy
		if Obstructed(cand, b) {
			continue
		}
		if fp.PieceState.Piece == T {
			cand.Tspin = classifyTspin(cand, b, i, len(kicks)-1)
		}
		return cand, true
	}
	return fp, false
}

// corner is one of the four cells diagonally adjacent to a T piece's pivot.
type corner int

const (
	topLeft corner = iota
	topRight
	bottomLeft
	bottomRight
)

// frontCorners returns which two corners are "in front of" a T piece facing r
// (the side its single protruding cell points toward).
func frontCorners(r RotationState) [2]corner {
	switch r {
	case North:
		return [2]corner{topLeft, topRight}
	case East:
		return [2]corner{topRight, bottomRight}
	case South:
		return [2]corner{bottomLeft, bottomRight}
	default: // West
		return [2]corner{topLeft, bottomLeft}
	}
}

// classifyTspin implements the corner-occupancy rule: a successful T
// rotation is a T-spin iff at least 3 of the 4 diagonal corners around the
// pivot are filled. It is a mini unless the kick used was the final test or
// both front corners are filled, in which case it is a full T-spin.
func classifyTspin(fp FallingPiece, b *Board, kickIndex, lastIndex int) TspinStatus {
	c := fp.center()
	filled := map[corner]bool{
		topLeft:     b.At(c.X-1, c.Y+1) != Empty,
		topRight:    b.At(c.X+1, c.Y+1) != Empty,
		bottomLeft:  b.At(c.X-1, c.Y-1) != Empty,
		bottomRight: b.At(c.X+1, c.Y-1) != Empty,
	}

	n := 0
	for _, f := range filled {
		if f {
			n++
		}
	}
	if n < 3 {
		return TspinNone
	}

	front := frontCorners(fp.PieceState.Rotation)
	bothFrontFilled := filled[front[0]] && filled[front[1]]

	if kickIndex == lastIndex || bothFrontFilled {
		return TspinFull
	}
	return TspinMini
}
