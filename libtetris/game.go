package libtetris

// gameState is the per-player tick FSM's current phase.
type gameState uint8

const (
	stateSpawnDelay gameState = iota
	stateFalling
	stateLineClearDelay
	stateGameOver
)

// GarbageRow is one row of incoming garbage, queued with the column that
// will be left open when it is inserted.
type GarbageRow struct {
	HoleColumn int
}

// Game drives one player's board through the tick FSM: spawn delay, falling
// (with DAS/ARR, gravity, lock delay and hold), line clear delay, and a
// terminal game-over state.
type Game struct {
	Config GameConfig
	Board  *Board
	Bag    *Bag

	state   gameState
	counter uint32

	piece             FallingPiece
	gravityAcc        int32
	lockTimer         uint32
	movesUsed         uint32
	lowestYSeen       int
	usedHoldThisPiece bool

	dasDirection int8
	dasCharge    uint32

	pendingGarbage []GarbageRow

	prevController Controller
	tick           uint64
}

// NewGame constructs a Game with an empty board, fills its next queue from
// bag, and enters the initial spawn delay.
func NewGame(cfg GameConfig, bag *Bag) *Game {
	b := NewBoard()
	for i := uint32(0); i < cfg.NextQueueSize; i++ {
		b.Queue = append(b.Queue, bag.Next())
	}
	return &Game{
		Config: cfg,
		Board:  b,
		Bag:    bag,
		state:  stateSpawnDelay,
		counter: cfg.SpawnDelay,
	}
}

// IsGameOver reports whether the game has topped out.
func (g *Game) IsGameOver() bool { return g.state == stateGameOver }

// EnqueueGarbage adds n rows of incoming garbage, each with an independently
// chosen hole column, to be applied at the next line-clear-delay boundary
// at the next line-clear-delay boundary, capped by MaxGarbageAdd per
// application.
func (g *Game) EnqueueGarbage(rows []GarbageRow) {
	g.pendingGarbage = append(g.pendingGarbage, rows...)
}

// Tick advances the Game state machine by one tick given controller input,
// returning the events observed this tick.
func (g *Game) Tick(ctrl Controller) []Event {
	g.tick++
	var events []Event

	switch g.state {
	case stateSpawnDelay:
		events = g.tickSpawnDelay()
	case stateFalling:
		events = g.tickFalling(ctrl)
	case stateLineClearDelay:
		events = g.tickLineClearDelay()
	case stateGameOver:
		// terminal; no further events.
	}

	g.prevController = ctrl
	return events
}

func (g *Game) tickSpawnDelay() []Event {
	if g.counter > 0 {
		g.counter--
		return nil
	}
	return g.spawnNext()
}

// spawnNext pops the head of the queue, refills it from the bag, and either
// enters Falling or transitions to GameOver if the spawn is obstructed.
func (g *Game) spawnNext() []Event {
	if len(g.Board.Queue) == 0 {
		g.state = stateGameOver
		return []Event{GameOver{}}
	}
	next := g.Board.Queue[0]
	g.Board.Queue = g.Board.Queue[1:]
	newPiece := g.Bag.Next()
	g.Board.Queue = append(g.Board.Queue, newPiece)

	g.piece = spawnState(next)
	g.gravityAcc = 0
	g.lockTimer = 0
	g.movesUsed = 0
	g.lowestYSeen = g.piece.Y
	g.usedHoldThisPiece = false

	if Obstructed(g.piece, g.Board) {
		g.state = stateGameOver
		return []Event{PieceSpawned{NewInQueue: newPiece}, GameOver{}}
	}
	g.state = stateFalling
	return []Event{PieceSpawned{NewInQueue: newPiece}}
}

func pressed(cur, prev Controller, b Button) bool {
	return cur.Held(b) && !prev.Held(b)
}

func (g *Game) tickFalling(ctrl Controller) []Event {
	var events []Event

	if pressed(ctrl, g.prevController, ButtonHold) && !g.usedHoldThisPiece {
		g.performHold()
		g.usedHoldThisPiece = true
		return []Event{PieceMoved{}}
	}

	if ctrl.Held(ButtonLeft) || ctrl.Held(ButtonRight) {
		dir := int8(1)
		if ctrl.Held(ButtonLeft) {
			dir = -1
		}
		if dir != g.dasDirection {
			g.dasDirection = dir
			g.dasCharge = 0
		}
		if g.dasCharge == 0 {
			if g.shiftAndTrackGround(int(dir)) {
				events = append(events, PieceMoved{})
			}
			g.dasCharge = 1
		} else {
			g.dasCharge++
			if g.dasCharge > g.Config.DAS {
				arrPeriod := g.Config.ARR
				if arrPeriod == 0 {
					arrPeriod = 1
				}
				if (g.dasCharge-g.Config.DAS)%arrPeriod == 0 {
					if g.shiftAndTrackGround(int(dir)) {
						events = append(events, PieceMoved{})
					}
				}
			}
		}
	} else {
		g.dasDirection = 0
		g.dasCharge = 0
	}

	if pressed(ctrl, g.prevController, ButtonRotateCW) {
		if moved, ok := Rotate(g.piece, Clockwise, g.Board); ok {
			g.piece = moved
			g.trackGroundMove()
			events = append(events, PieceRotated{})
		}
	} else if pressed(ctrl, g.prevController, ButtonRotateCCW) {
		if moved, ok := Rotate(g.piece, CounterClockwise, g.Board); ok {
			g.piece = moved
			g.trackGroundMove()
			events = append(events, PieceRotated{})
		}
	}

	if pressed(ctrl, g.prevController, ButtonHardDrop) {
		dropped := SonicDrop(g.piece, g.Board)
		dist := g.piece.Y - dropped.Y
		g.piece = dropped
		lockEvents := g.lockPiece(dist)
		return append(events, lockEvents...)
	}

	gravity := g.Config.Gravity
	if ctrl.Held(ButtonSoftDrop) {
		softGravity := int32(g.Config.SoftDropSpeed) * 100
		if softGravity > gravity {
			gravity = softGravity
		}
		events = append(events, SoftDropped{})
	}

	g.gravityAcc += gravity
	cells := g.gravityAcc / 100
	g.gravityAcc %= 100
	for i := int32(0); i < cells; i++ {
		if moved, ok := SoftDrop(g.piece, g.Board); ok {
			g.piece = moved
			g.trackFallingMove()
		} else {
			g.gravityAcc = 0
			break
		}
	}

	if Grounded(g.piece, g.Board) {
		g.lockTimer++
		if g.lockTimer >= g.Config.LockDelay {
			return append(events, g.lockPiece(0)...)
		}
	} else {
		g.lockTimer = 0
	}

	return events
}

// shiftAndTrackGround shifts the piece horizontally and, if that placed it on
// the ground, counts it against move_lock_rule.
func (g *Game) shiftAndTrackGround(dx int) bool {
	moved, ok := Shift(g.piece, g.Board, dx)
	if !ok {
		return false
	}
	g.piece = moved
	g.trackGroundMove()
	return true
}

// trackFallingMove updates lowestYSeen and unconditionally resets the lock
// timer when the piece reaches a new lowest y.
func (g *Game) trackFallingMove() {
	if g.piece.Y < g.lowestYSeen {
		g.lowestYSeen = g.piece.Y
		g.lockTimer = 0
	}
}

// trackGroundMove resets the lock timer for a shift/rotate performed while
// grounded, but only up to Config.MoveLockRule times.
func (g *Game) trackGroundMove() {
	if g.piece.Y < g.lowestYSeen {
		g.lowestYSeen = g.piece.Y
		g.lockTimer = 0
		return
	}
	if !Grounded(g.piece, g.Board) {
		return
	}
	if g.movesUsed >= g.Config.MoveLockRule {
		return
	}
	g.movesUsed++
	g.lockTimer = 0
}

func (g *Game) performHold() {
	current := g.piece.PieceState.Piece
	var next Piece
	if g.Board.Hold == nil {
		if len(g.Board.Queue) == 0 {
			return
		}
		next = g.Board.Queue[0]
		g.Board.Queue = g.Board.Queue[1:]
		g.Board.Queue = append(g.Board.Queue, g.Bag.Next())
	} else {
		next = *g.Board.Hold
	}
	h := current
	g.Board.Hold = &h

	g.piece = spawnState(next)
	g.gravityAcc = 0
	g.lockTimer = 0
	g.movesUsed = 0
	g.lowestYSeen = g.piece.Y
}

// lockPiece runs the lock/score engine on the current piece and transitions
// to LineClearDelay or SpawnDelay as appropriate.
func (g *Game) lockPiece(hardDropDistance int) []Event {
	result := Lock(g.Board, g.piece, g.Config, g.tick)
	placed := PiecePlaced{Piece: g.piece, HardDropDistance: hardDropDistance, Locked: result}

	if result.LinesCleared > 0 {
		g.state = stateLineClearDelay
		g.counter = g.Config.LineClearDelay
	} else {
		g.state = stateSpawnDelay
		g.counter = g.Config.SpawnDelay
	}
	return []Event{placed}
}

func (g *Game) tickLineClearDelay() []Event {
	if g.counter > 0 {
		g.counter--
		return nil
	}
	events := []Event{EndOfLineClearDelay{}}
	if n := g.applyPendingGarbage(); n > 0 {
		events = append(events, GarbageAdded{Rows: n})
	}
	g.state = stateSpawnDelay
	g.counter = g.Config.SpawnDelay
	return append(events, FrameBeforePieceSpawns{})
}

// applyPendingGarbage inserts up to Config.MaxGarbageAdd queued rows into the
// bottom of the board, shifting existing rows up, and returns how many were
// applied.
func (g *Game) applyPendingGarbage() int {
	if len(g.pendingGarbage) == 0 {
		return 0
	}
	n := len(g.pendingGarbage)
	if uint32(n) > g.Config.MaxGarbageAdd {
		n = int(g.Config.MaxGarbageAdd)
	}
	rows := g.pendingGarbage[:n]
	g.pendingGarbage = g.pendingGarbage[n:]

	b := g.Board
	for y := Height - 1; y >= n; y-- {
		b.cells[y] = b.cells[y-n]
	}
	for i := 0; i < n; i++ {
		var row [Width]CellValue
		for x := 0; x < Width; x++ {
			if x != rows[i].HoleColumn {
				row[x] = Garbage
			}
		}
		b.cells[i] = row
	}
	return n
}
