package battle

import "github.com/coldclear/core/libtetris"

// controllerPair is one tick's worth of input for both players.
type controllerPair struct {
	A, B libtetris.Controller
}

// Replay is a flat, append-only record of a battle: the seed and both
// players' configs (everything needed to reconstruct their bags and rules
// deterministically) plus the full controller sequence. Replaying a Replay
// through a freshly-seeded Battle reproduces the original game bit for bit.
type Replay struct {
	Seed      int64
	ConfigA   libtetris.GameConfig
	ConfigB   libtetris.GameConfig
	Frames    []controllerPair
}

func newReplay(seed int64, cfgA, cfgB libtetris.GameConfig) *Replay {
	return &Replay{Seed: seed, ConfigA: cfgA, ConfigB: cfgB}
}

func (r *Replay) append(a, b libtetris.Controller) {
	r.Frames = append(r.Frames, controllerPair{A: a, B: b})
}

// Len reports how many ticks the replay covers.
func (r *Replay) Len() int { return len(r.Frames) }

// At returns the controller pair recorded for tick i.
func (r *Replay) At(i int) (libtetris.Controller, libtetris.Controller) {
	f := r.Frames[i]
	return f.A, f.B
}

// Replayer reconstructs a Battle from a Replay and drives it tick by tick,
// calling fn after every tick with the resulting update.
type Replayer struct {
	replay *Replay
	bt     *Battle
}

// NewReplayer wires a fresh Battle (bags re-derived from r.Seed, same as the
// original battle) to walk through r's recorded inputs.
func NewReplayer(r *Replay) *Replayer {
	return &Replayer{replay: r, bt: New(r.ConfigA, r.ConfigB, r.Seed)}
}

// Run drives every recorded tick through the reconstructed battle, invoking
// fn with each tick's BattleUpdate. Run stops early if fn returns false.
func (rp *Replayer) Run(fn func(BattleUpdate) bool) {
	for i := 0; i < rp.replay.Len(); i++ {
		a, b := rp.replay.At(i)
		update := rp.bt.Tick(a, b)
		if fn != nil && !fn(update) {
			return
		}
	}
}
