package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().IsValid())
}

func TestConfigRejectsNonPositiveTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 0
	assert.Error(t, cfg.IsValid())
}

func TestConfigRejectsNonPositiveMaxNodes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxNodes = 0
	assert.Error(t, cfg.IsValid())
}

func TestConfigRejectsNegativeExplorationNoise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExplorationNoise = -0.1
	assert.Error(t, cfg.IsValid())
}

func TestConfigAcceptsCustomPositiveValues(t *testing.T) {
	cfg := Config{Workers: 4, Timeout: 50 * time.Millisecond, MaxNodes: 100, ExplorationNoise: 0.25}
	assert.NoError(t, cfg.IsValid())
}
