package battle

import (
	"testing"

	"github.com/coldclear/core/libtetris"
	"github.com/stretchr/testify/assert"
)

func TestReplayAppendAndAt(t *testing.T) {
	r := newReplay(7, libtetris.DefaultGameConfig(), libtetris.DefaultGameConfig())
	assert.Equal(t, 0, r.Len())

	a := libtetris.Controller(0).With(libtetris.ButtonLeft)
	b := libtetris.Controller(0).With(libtetris.ButtonHardDrop)
	r.append(a, b)

	assert.Equal(t, 1, r.Len())
	gotA, gotB := r.At(0)
	assert.Equal(t, a, gotA)
	assert.Equal(t, b, gotB)
}

func TestReplayerReplaysEveryRecordedTick(t *testing.T) {
	bt := newTestBattle(3)
	for i := 0; i < 10; i++ {
		bt.Tick(libtetris.Controller(0), libtetris.Controller(0))
	}

	rp := NewReplayer(bt.Replay)

	var ticks int
	rp.Run(func(u BattleUpdate) bool {
		ticks++
		return true
	})
	assert.Equal(t, 10, ticks)
}

func TestReplayerRunStopsEarlyWhenCallbackReturnsFalse(t *testing.T) {
	bt := newTestBattle(3)
	for i := 0; i < 10; i++ {
		bt.Tick(libtetris.Controller(0), libtetris.Controller(0))
	}

	rp := NewReplayer(bt.Replay)

	var ticks int
	rp.Run(func(u BattleUpdate) bool {
		ticks++
		return ticks < 3
	})
	assert.Equal(t, 3, ticks)
}
