package libtetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fillRow(b *Board, y int, except int) {
	for x := 0; x < Width; x++ {
		if x == except {
			continue
		}
		b.set(x, y, Garbage)
	}
}

func TestLockClearsFullRowsAndShiftsDown(t *testing.T) {
	b := NewBoard()
	fillRow(b, 0, 4)
	cfg := DefaultGameConfig()

	// An I piece lying flat in row 0 across columns 1-4, filling the one
	// remaining gap; its other three cells land on already-filled cells.
	fp := FallingPiece{PieceState: PieceState{Piece: I, Rotation: South}, X: 1, Y: -1}
	result := Lock(b, fp, cfg, 0)

	assert.Equal(t, 1, result.LinesCleared)
	assert.False(t, b.RowFilled(0), "cleared row should have been replaced by the empty row above it")
}

func TestLockTracksCombo(t *testing.T) {
	b := NewBoard()
	cfg := DefaultGameConfig()

	fillRow(b, 0, 4)
	first := Lock(b, FallingPiece{PieceState: PieceState{Piece: I, Rotation: South}, X: 1, Y: -1}, cfg, 0)
	assert.Equal(t, uint32(1), first.Combo)

	fillRow(b, 0, 4)
	second := Lock(b, FallingPiece{PieceState: PieceState{Piece: I, Rotation: South}, X: 1, Y: -1}, cfg, 1)
	assert.Equal(t, uint32(2), second.Combo)
}

func TestLockDetectsPerfectClear(t *testing.T) {
	b := NewBoard()
	cfg := DefaultGameConfig()
	fillRow(b, 0, 4)

	result := Lock(b, FallingPiece{PieceState: PieceState{Piece: I, Rotation: South}, X: 1, Y: -1}, cfg, 0)
	assert.True(t, result.PerfectClear)
	assert.True(t, b.Empty())
}

func TestLockAttenuatesDamagePastMarginTime(t *testing.T) {
	b1 := NewBoard()
	fillRow(b1, 0, 4)
	cfg := DefaultGameConfig()
	before := Lock(b1, FallingPiece{PieceState: PieceState{Piece: I, Rotation: South}, X: 1, Y: -1}, cfg, 0)

	b2 := NewBoard()
	fillRow(b2, 0, 4)
	margin := uint64(100)
	cfg.MarginTime = &margin
	after := Lock(b2, FallingPiece{PieceState: PieceState{Piece: I, Rotation: South}, X: 1, Y: -1}, cfg, 100)

	assert.LessOrEqual(t, after.GarbageSent, before.GarbageSent)
}
