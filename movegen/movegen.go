// Package movegen enumerates the Tetris placements reachable from a given
// board and current (plus optional held) piece, via a breadth-first search
// over shift/rotate/drop inputs.
package movegen

import (
	"sort"

	"github.com/coldclear/core/libtetris"
)

// InputToken is one discrete controller action in an approximate input
// sequence leading to a placement.
type InputToken int

const (
	Left InputToken = iota
	Right
	Cw
	Ccw
	SoftDropOne
	SonicDrop
	HardDrop
	Hold
)

// Placement is a single reachable (piece, used_hold) placement, tagged with
// an approximate input sequence and move time.
type Placement struct {
	Piece    libtetris.FallingPiece
	UsedHold bool
	Inputs   []InputToken
	MoveTime uint32
}

type stateKey struct {
	rotation libtetris.RotationState
	x, y     int
	tspin    libtetris.TspinStatus
}

type node struct {
	piece  libtetris.FallingPiece
	parent int
	token  InputToken
	hasTok bool
}

// Generate enumerates every distinct placement reachable from current's
// spawn position, plus (if hold is non-nil, or board has a queued next
// piece, and that piece differs from current) every placement reachable
// after holding once. Placements are
// deduplicated by the set of cells they occupy at lock time, incorporating
// the T-spin flag, so a T-spin and non-T-spin placement sharing the same
// final cells remain distinct.
func Generate(board *libtetris.Board, current libtetris.Piece, hold *libtetris.Piece) []Placement {
	direct := search(board, current)
	for i := range direct {
		direct[i].UsedHold = false
	}

	var altPiece libtetris.Piece
	haveAlt := false
	if hold != nil {
		altPiece, haveAlt = *hold, true
	} else if len(board.Queue) > 0 {
		altPiece, haveAlt = board.Queue[0], true
	}

	out := direct
	if haveAlt && altPiece != current {
		held := search(board, altPiece)
		for i := range held {
			held[i].UsedHold = true
			held[i].Inputs = append([]InputToken{Hold}, held[i].Inputs...)
		}
		out = dedupe(append(out, held...))
	}
	return out
}

// search runs the best-first BFS for a single piece kind, with no hold
// involved.
func search(board *libtetris.Board, piece libtetris.Piece) []Placement {
	start := spawnPiece(piece)
	if libtetris.Obstructed(start, board) {
		return nil
	}

	nodes := []node{{piece: start}}
	visited := map[stateKey]int{key(start): 0}
	queue := []int{0}

	harvested := map[string]Placement{}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		cur := nodes[idx].piece

		if libtetris.Grounded(cur, board) {
			harvest(harvested, nodes, idx)
		}

		for _, t := range []InputToken{Left, Right, Cw, Ccw, SoftDropOne, SonicDrop} {
			next, ok := step(cur, t, board)
			if !ok {
				continue
			}
			k := key(next)
			if _, seen := visited[k]; seen {
				continue
			}
			nodes = append(nodes, node{piece: next, parent: idx, token: t, hasTok: true})
			ni := len(nodes) - 1
			visited[k] = ni
			queue = append(queue, ni)
		}
	}

	out := make([]Placement, 0, len(harvested))
	for _, p := range harvested {
		out = append(out, p)
	}
	return out
}

func step(fp libtetris.FallingPiece, t InputToken, board *libtetris.Board) (libtetris.FallingPiece, bool) {
	switch t {
	case Left:
		return libtetris.Shift(fp, board, -1)
	case Right:
		return libtetris.Shift(fp, board, 1)
	case Cw:
		return libtetris.Rotate(fp, libtetris.Clockwise, board)
	case Ccw:
		return libtetris.Rotate(fp, libtetris.CounterClockwise, board)
	case SoftDropOne:
		return libtetris.SoftDrop(fp, board)
	case SonicDrop:
		dropped := libtetris.SonicDrop(fp, board)
		if dropped == fp {
			return fp, false
		}
		return dropped, true
	}
	return fp, false
}

func key(fp libtetris.FallingPiece) stateKey {
	return stateKey{rotation: fp.PieceState.Rotation, x: fp.X, y: fp.Y, tspin: fp.Tspin}
}

// harvest records the placement reached at nodes[idx], deduplicated by its
// locked cell footprint plus T-spin status.
func harvest(out map[string]Placement, nodes []node, idx int) {
	fp := nodes[idx].piece
	cells := fp.Cells()
	sort.Slice(cells[:], func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	k := footprintKey(cells, fp.Tspin)
	if existing, ok := out[k]; ok && len(existing.Inputs) <= pathLen(nodes, idx) {
		return
	}
	out[k] = Placement{
		Piece:    fp,
		Inputs:   append(reconstructPath(nodes, idx), HardDrop),
		MoveTime: uint32(pathLen(nodes, idx)),
	}
}

func pathLen(nodes []node, idx int) int {
	n := 0
	for nodes[idx].hasTok {
		n++
		idx = nodes[idx].parent
	}
	return n
}

func reconstructPath(nodes []node, idx int) []InputToken {
	var rev []InputToken
	for nodes[idx].hasTok {
		rev = append(rev, nodes[idx].token)
		idx = nodes[idx].parent
	}
	out := make([]InputToken, len(rev))
	for i, t := range rev {
		out[len(rev)-1-i] = t
	}
	return out
}

func footprintKey(cells [4]libtetris.Cell, tspin libtetris.TspinStatus) string {
	buf := make([]byte, 0, 24)
	for _, c := range cells {
		buf = append(buf, byte(c.X), byte(c.X>>8), byte(c.Y), byte(c.Y>>8))
	}
	buf = append(buf, byte(tspin))
	return string(buf)
}

func dedupe(placements []Placement) []Placement {
	seen := map[string]bool{}
	out := make([]Placement, 0, len(placements))
	for _, p := range placements {
		cells := p.Piece.Cells()
		sort.Slice(cells[:], func(i, j int) bool {
			if cells[i].Y != cells[j].Y {
				return cells[i].Y < cells[j].Y
			}
			return cells[i].X < cells[j].X
		})
		k := footprintKey(cells, p.Piece.Tspin)
		if p.UsedHold {
			k = "h:" + k
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// spawnPiece mirrors libtetris's unexported spawn positioning so movegen can
// seed its search without depending on Game.
func spawnPiece(p libtetris.Piece) libtetris.FallingPiece {
	return libtetris.FallingPiece{
		PieceState: libtetris.PieceState{Piece: p, Rotation: libtetris.North},
		X:          3,
		Y:          libtetris.VisibleHeight - 2,
	}
}
