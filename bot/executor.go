package bot

import (
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/movegen"
)

// PieceMoveExecutor turns one Move's approximate input sequence into
// per-tick Controller states, and watches the game's events to catch a
// placement that didn't land where the search expected.
type PieceMoveExecutor struct {
	move   Move
	cursor int
}

// NewPieceMoveExecutor starts executing move.
func NewPieceMoveExecutor(move Move) *PieceMoveExecutor {
	return &PieceMoveExecutor{move: move}
}

// Done reports whether every input token has been issued.
func (e *PieceMoveExecutor) Done() bool { return e.cursor >= len(e.move.Inputs) }

// Tick returns the Controller state to apply this tick: the next queued
// input token held down, everything else released. Hold/rotate/hard-drop
// tokens are edge-triggered by the game's Tick, so issuing one for exactly
// one tick is sufficient.
func (e *PieceMoveExecutor) Tick() libtetris.Controller {
	var ctrl libtetris.Controller
	if e.Done() {
		return ctrl
	}
	switch e.move.Inputs[e.cursor] {
	case movegen.Left:
		ctrl = ctrl.With(libtetris.ButtonLeft)
	case movegen.Right:
		ctrl = ctrl.With(libtetris.ButtonRight)
	case movegen.Cw:
		ctrl = ctrl.With(libtetris.ButtonRotateCW)
	case movegen.Ccw:
		ctrl = ctrl.With(libtetris.ButtonRotateCCW)
	case movegen.SoftDropOne:
		ctrl = ctrl.With(libtetris.ButtonSoftDrop)
	case movegen.SonicDrop:
		ctrl = ctrl.With(libtetris.ButtonSoftDrop)
	case movegen.HardDrop:
		ctrl = ctrl.With(libtetris.ButtonHardDrop)
	case movegen.Hold:
		ctrl = ctrl.With(libtetris.ButtonHold)
	}
	e.cursor++
	return ctrl
}

// Verify inspects this tick's events for a PiecePlaced that doesn't match
// where the search expected the piece to land (the game applied DAS/ARR
// timing, garbage, or some other divergence the search didn't model), and
// reports whether a resync is needed.
func (e *PieceMoveExecutor) Verify(events []libtetris.Event) (mismatch bool) {
	for _, ev := range events {
		if placed, ok := ev.(libtetris.PiecePlaced); ok {
			return placed.Piece != e.move.ExpectedLocation
		}
	}
	return false
}
