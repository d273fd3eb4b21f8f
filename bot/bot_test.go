package bot

import (
	"errors"
	"testing"
	"time"

	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/search"
	"github.com/stretchr/testify/assert"
)

func newTestInterface() *Interface {
	cfg := search.DefaultConfig()
	cfg.Timeout = 20 * time.Millisecond
	return NewInterface(libtetris.DefaultGameConfig(), eval.NewStandard(eval.DefaultWeights()), cfg)
}

func TestBotCloseStopsInterfaceAndRunsClosers(t *testing.T) {
	iface := newTestInterface()
	b := New(iface)

	var closed bool
	b.RegisterCloser(func() error {
		closed = true
		return nil
	})

	err := b.Close()
	assert.NoError(t, err)
	assert.True(t, closed)
}

func TestBotCloseAggregatesCloserErrors(t *testing.T) {
	iface := newTestInterface()
	b := New(iface)

	b.RegisterCloser(func() error { return errors.New("first") })
	b.RegisterCloser(func() error { return errors.New("second") })

	err := b.Close()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}
