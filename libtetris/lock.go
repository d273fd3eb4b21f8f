package libtetris

// PlacementKind classifies a completed lock by line-clear count and T-spin status.
type PlacementKind uint8

const (
	PlacementNone PlacementKind = iota
	PlacementClear1
	PlacementClear2
	PlacementClear3
	PlacementClear4
	PlacementMiniTspin
	PlacementMiniTspin1
	PlacementMiniTspin2
	PlacementTspin
	PlacementTspin1
	PlacementTspin2
	PlacementTspin3
)

// classifyPlacement derives a PlacementKind from the T-spin flag present on
// the locked piece and the number of lines it cleared.
func classifyPlacement(tspin TspinStatus, lines int) PlacementKind {
	switch tspin {
	case TspinMini:
		switch lines {
		case 0:
			return PlacementMiniTspin
		case 1:
			return PlacementMiniTspin1
		default:
			return PlacementMiniTspin2
		}
	case TspinFull:
		switch lines {
		case 0:
			return PlacementTspin
		case 1:
			return PlacementTspin1
		case 2:
			return PlacementTspin2
		default:
			return PlacementTspin3
		}
	default:
		switch lines {
		case 1:
			return PlacementClear1
		case 2:
			return PlacementClear2
		case 3:
			return PlacementClear3
		case 4:
			return PlacementClear4
		default:
			return PlacementNone
		}
	}
}

// isDifficultClear reports whether kind continues (rather than breaks) back-to-back.
func isDifficultClear(kind PlacementKind) bool {
	switch kind {
	case PlacementClear4, PlacementTspin1, PlacementTspin2, PlacementTspin3,
		PlacementMiniTspin1, PlacementMiniTspin2:
		return true
	}
	return false
}

// baseGarbage is the damage table keyed by PlacementKind, before combo/B2B/PC bonuses.
var baseGarbage = map[PlacementKind]int{
	PlacementClear1:     0,
	PlacementClear2:      1,
	PlacementClear3:      2,
	PlacementClear4:      4,
	PlacementMiniTspin:   0,
	PlacementMiniTspin1:  0,
	PlacementMiniTspin2:  1,
	PlacementTspin:       0,
	PlacementTspin1:      2,
	PlacementTspin2:      4,
	PlacementTspin3:      6,
}

// comboBonusTable mirrors common guideline combo tables: index is combo
// count (1-based), value is the extra garbage it contributes.
var comboBonusTable = []int{0, 0, 1, 1, 1, 2, 2, 3, 3, 4, 4, 4, 5}

func comboBonus(combo uint32) int {
	if combo == 0 {
		return 0
	}
	idx := int(combo)
	if idx >= len(comboBonusTable) {
		idx = len(comboBonusTable) - 1
	}
	return comboBonusTable[idx]
}

// LockResult is produced by a successful lock: clear count, placement
// classification, perfect-clear flag, outbound garbage, and the combo/B2B
// state as updated by this lock.
type LockResult struct {
	LinesCleared  int
	Kind          PlacementKind
	PerfectClear  bool
	GarbageSent   int
	Combo         uint32
	BackToBack    bool
}

// Lock writes fp's cells into b, clears any full rows, updates combo/B2B,
// computes garbage, and returns the resulting LockResult. If cfg.MarginTime
// is non-nil, damage is attenuated once currentTick has reached it; a nil
// MarginTime disables attenuation.
func Lock(b *Board, fp FallingPiece, cfg GameConfig, currentTick uint64) LockResult {
	for _, c := range fp.Cells() {
		if c.Y >= 0 && c.Y < Height {
			b.set(c.X, c.Y, pieceCell(fp.PieceState.Piece))
		}
	}

	cleared := clearLines(b)
	kind := classifyPlacement(fp.Tspin, cleared)

	if cleared > 0 {
		b.Combo++
	} else {
		b.Combo = 0
	}
	prevB2B := b.BackToBack
	if cleared > 0 {
		b.BackToBack = isDifficultClear(kind)
	}
	// cleared == 0 preserves BackToBack unchanged.

	perfect := cleared > 0 && b.Empty()

	damage := baseGarbage[kind]
	if cleared > 0 {
		damage += comboBonus(b.Combo - 1)
		if b.BackToBack && prevB2B && isDifficultClear(kind) {
			damage++
		}
	}
	if perfect {
		damage += 10
	}
	if cfg.MarginTime != nil && currentTick >= *cfg.MarginTime {
		damage = attenuate(damage)
	}

	return LockResult{
		LinesCleared: cleared,
		Kind:         kind,
		PerfectClear: perfect,
		GarbageSent:  damage,
		Combo:        b.Combo,
		BackToBack:   b.BackToBack,
	}
}

// attenuate halves damage (rounding down) once margin time has been reached.
func attenuate(damage int) int {
	return damage / 2
}

// clearLines removes every full row from b, shifting rows above down to fill
// the gap, and returns how many rows were cleared.
func clearLines(b *Board) int {
	cleared := 0
	write := 0
	for read := 0; read < Height; read++ {
		if b.RowFilled(read) {
			cleared++
			continue
		}
		if write != read {
			b.cells[write] = b.cells[read]
		}
		write++
	}
	for ; write < Height; write++ {
		b.cells[write] = [Width]CellValue{}
	}
	return cleared
}
