package battle

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplayLoggerWritesLoggedFrames(t *testing.T) {
	var buf bytes.Buffer
	logger := NewReplayLogger(&buf)

	logger.Log(BattleUpdate{Tick: 1})
	logger.Log(BattleUpdate{Tick: 2})
	logger.Close()

	dec := json.NewDecoder(&buf)
	var entries []frameLogEntry
	for dec.More() {
		var e frameLogEntry
		assert.NoError(t, dec.Decode(&e))
		entries = append(entries, e)
	}
	assert.Len(t, entries, 2)
	assert.Equal(t, uint64(1), entries[0].Tick)
	assert.Equal(t, uint64(2), entries[1].Tick)
}

func TestReplayLoggerCloseWithNoEntriesWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	logger := NewReplayLogger(&buf)
	logger.Close()
	assert.Empty(t, buf.Bytes())
}
