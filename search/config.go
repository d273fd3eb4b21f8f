package search

import (
	"time"

	"github.com/pkg/errors"
)

// Config tunes the search's concurrency and exploration behavior.
type Config struct {
	Workers int // goroutines racing to expand leaves; 0 means runtime.NumCPU()

	Timeout  time.Duration
	MaxNodes int

	// ExplorationNoise mixes Dirichlet noise into the root's child ranking,
	// matching AlphaZero-style self-play exploration. Zero disables it,
	// which is what a competitive bot wants.
	ExplorationNoise float32
}

// DefaultConfig returns a conservative baseline suitable for a single move
// decision under a soft real-time budget.
func DefaultConfig() Config {
	return Config{
		Workers:          0,
		Timeout:          100 * time.Millisecond,
		MaxNodes:         400000,
		ExplorationNoise: 0,
	}
}

func (c Config) IsValid() error {
	if c.Timeout <= 0 {
		return errors.New("search: Timeout must be positive")
	}
	if c.MaxNodes <= 0 {
		return errors.New("search: MaxNodes must be positive")
	}
	if c.ExplorationNoise < 0 {
		return errors.New("search: ExplorationNoise must not be negative")
	}
	return nil
}
