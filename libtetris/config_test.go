package libtetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGameConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultGameConfig().Validate())
}

func TestValidateRejectsZeroNextQueueSize(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.NextQueueSize = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsZeroLockDelay(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.LockDelay = 0
	assert.Error(t, cfg.Validate())
}

func TestControllerHeldAndWith(t *testing.T) {
	var c Controller
	assert.False(t, c.Held(ButtonHold))

	c = c.With(ButtonHold)
	assert.True(t, c.Held(ButtonHold))
	assert.False(t, c.Held(ButtonLeft))

	c = c.With(ButtonLeft)
	assert.True(t, c.Held(ButtonHold))
	assert.True(t, c.Held(ButtonLeft))
}
