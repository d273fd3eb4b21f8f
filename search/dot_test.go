package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDOTRendersAGraphvizDocument(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 30 * time.Millisecond
	cfg.MaxNodes = 500
	s := newSearchOnEmptyBoard(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	s.Run(ctx)

	dot, err := s.DOT()
	assert.NoError(t, err)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, nodeName(s.dag.Root()))
}
