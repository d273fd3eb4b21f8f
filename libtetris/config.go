package libtetris

import "github.com/pkg/errors"

// GameConfig holds the integer tick-domain parameters governing a single
// player's game loop. Units are ticks, except Gravity which is in 1/100 of a
// cell per tick.
type GameConfig struct {
	SpawnDelay     uint32
	LineClearDelay uint32
	DAS            uint32
	ARR            uint32
	SoftDropSpeed  uint32
	LockDelay      uint32
	MarginTime     *uint64
	Gravity        int32
	NextQueueSize  uint32
	MaxGarbageAdd  uint32
	MoveLockRule   uint32
}

// DefaultGameConfig returns the defaults listed in the external interfaces
// table (approximating Puyo Puyo Tetris timings).
func DefaultGameConfig() GameConfig {
	return GameConfig{
		SpawnDelay:     7,
		LineClearDelay: 45,
		DAS:            12,
		ARR:            2,
		SoftDropSpeed:  2,
		LockDelay:      30,
		MarginTime:     nil,
		Gravity:        4500,
		NextQueueSize:  5,
		MaxGarbageAdd:  10,
		MoveLockRule:   15,
	}
}

// Validate rejects ill-formed configurations. It does not (and cannot) check
// the live queue; callers must check that themselves before constructing a
// Game.
func (c GameConfig) Validate() error {
	if c.NextQueueSize == 0 {
		return errors.New("libtetris: next_queue_size must be at least 1")
	}
	if c.LockDelay == 0 {
		return errors.New("libtetris: lock_delay must be positive")
	}
	return nil
}

// Button is one bit of controller input.
type Button uint8

const (
	ButtonLeft Button = 1 << iota
	ButtonRight
	ButtonSoftDrop
	ButtonHardDrop
	ButtonRotateCW
	ButtonRotateCCW
	ButtonHold
)

// Controller is a bitset of currently-held buttons.
type Controller uint8

// Held reports whether b is set in c.
func (c Controller) Held(b Button) bool { return c&Controller(b) != 0 }

// With returns c with b set.
func (c Controller) With(b Button) Controller { return c | Controller(b) }
