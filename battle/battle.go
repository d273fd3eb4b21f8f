// Package battle pairs two libtetris games, exchanging garbage between them
// tick by tick and recording a replay sufficient for bit-exact resimulation.
package battle

import (
	"math/rand"

	"github.com/coldclear/core/libtetris"
)

// PlayerUpdate is one player's observable slice of a single Tick.
type PlayerUpdate struct {
	Events        []libtetris.Event
	GarbageQueued uint32
	Dead          bool
}

// BattleUpdate is both players' updates for a single tick, plus the tick
// index it corresponds to.
type BattleUpdate struct {
	Tick uint64
	A, B PlayerUpdate
}

// Battle owns two games and the shared RNG used to pick garbage hole
// columns. The RNG lives on the Battle, never on a package-global source,
// so two Battles seeded identically replay identically regardless of what
// else is running concurrently.
type Battle struct {
	A, B *libtetris.Game

	rng *rand.Rand

	pendingToA uint32
	pendingToB uint32

	tick uint64

	Replay *Replay
}

// bagSeedSalt distinguishes player B's 7-bag seed from player A's, so a
// single battle seed deterministically derives two independent-looking
// piece sequences instead of requiring the caller to track bag seeds
// separately from the battle seed.
const bagSeedSalt = 0x9E3779B97F4A7C15

// New constructs a Battle for two freshly-spawned games under cfgA/cfgB, and
// a seed that governs both garbage hole-column selection and (via distinct
// derived seeds) each player's 7-bag piece order. A Replay built from this
// Battle is therefore sufficient on its own to resimulate bit-exact: every
// source of randomness traces back to the one seed.
func New(cfgA, cfgB libtetris.GameConfig, seed int64) *Battle {
	a := libtetris.NewGame(cfgA, libtetris.NewBag(seed))
	b := libtetris.NewGame(cfgB, libtetris.NewBag(int64(uint64(seed)^bagSeedSalt)))
	return &Battle{
		A:      a,
		B:      b,
		rng:    rand.New(rand.NewSource(seed)),
		Replay: newReplay(seed, cfgA, cfgB),
	}
}

// Tick advances both games by one tick, exchanges any garbage their locks
// generated, and appends the controller pair to the replay.
func (bt *Battle) Tick(ctrlA, ctrlB libtetris.Controller) BattleUpdate {
	bt.Replay.append(ctrlA, ctrlB)

	eventsA := bt.A.Tick(ctrlA)
	eventsB := bt.B.Tick(ctrlB)

	bt.queueOutgoing(eventsA, &bt.pendingToB)
	bt.queueOutgoing(eventsB, &bt.pendingToA)

	bt.cancel()

	sentToA := bt.drain(&bt.pendingToA, bt.A)
	sentToB := bt.drain(&bt.pendingToB, bt.B)

	update := BattleUpdate{
		Tick: bt.tick,
		A:    PlayerUpdate{Events: eventsA, GarbageQueued: sentToA, Dead: bt.A.IsGameOver()},
		B:    PlayerUpdate{Events: eventsB, GarbageQueued: sentToB, Dead: bt.B.IsGameOver()},
	}
	bt.tick++
	return update
}

// queueOutgoing adds the garbage sent by any PiecePlaced event this tick to
// the opponent's pending counter.
func (bt *Battle) queueOutgoing(events []libtetris.Event, pending *uint32) {
	for _, e := range events {
		if placed, ok := e.(libtetris.PiecePlaced); ok && placed.Locked.GarbageSent > 0 {
			*pending += uint32(placed.Locked.GarbageSent)
		}
	}
}

// cancel offsets simultaneous outgoing attacks against each other, so a
// player who clears right after being attacked reduces what lands on them.
func (bt *Battle) cancel() {
	switch {
	case bt.pendingToA > bt.pendingToB:
		bt.pendingToA -= bt.pendingToB
		bt.pendingToB = 0
	default:
		bt.pendingToB -= bt.pendingToA
		bt.pendingToA = 0
	}
}

// drain hands any remaining pending garbage to g, each row with an
// independently chosen hole column, and zeroes the counter.
func (bt *Battle) drain(pending *uint32, g *libtetris.Game) uint32 {
	n := *pending
	if n == 0 {
		return 0
	}
	rows := make([]libtetris.GarbageRow, n)
	for i := range rows {
		rows[i] = libtetris.GarbageRow{HoleColumn: bt.rng.Intn(libtetris.Width)}
	}
	g.EnqueueGarbage(rows)
	*pending = 0
	return n
}

// Over reports whether either player has topped out.
func (bt *Battle) Over() bool { return bt.A.IsGameOver() || bt.B.IsGameOver() }
