package battle

import (
	"encoding/json"
	"io"
)

// frameLogEntry is one tick's worth of loggable state, written asynchronously
// by ReplayLogger so the battle loop never blocks on I/O.
type frameLogEntry struct {
	Tick uint64 `json:"tick"`
	A    PlayerUpdate
	B    PlayerUpdate
}

// ReplayLogger streams BattleUpdates to an io.Writer from a dedicated
// goroutine, buffering a bounded queue so a slow writer degrades by
// dropping log entries rather than stalling the worker pool driving the
// battle.
type ReplayLogger struct {
	w     io.Writer
	enc   *json.Encoder
	queue chan frameLogEntry
	done  chan struct{}
}

// NewReplayLogger starts the background writer goroutine and returns a
// ready-to-use logger. Close must be called to flush and stop it.
func NewReplayLogger(w io.Writer) *ReplayLogger {
	l := &ReplayLogger{
		w:     w,
		enc:   json.NewEncoder(w),
		queue: make(chan frameLogEntry, 256),
		done:  make(chan struct{}),
	}
	go l.writer()
	return l
}

// Log enqueues update for writing. If the queue is full the entry is
// dropped; the logger exists to aid debugging, not to guarantee a durable
// record.
func (l *ReplayLogger) Log(update BattleUpdate) {
	entry := frameLogEntry{Tick: update.Tick, A: update.A, B: update.B}
	select {
	case l.queue <- entry:
	default:
	}
}

// Close drains the queue and stops the writer goroutine.
func (l *ReplayLogger) Close() {
	close(l.queue)
	<-l.done
}

func (l *ReplayLogger) writer() {
	for entry := range l.queue {
		l.enc.Encode(entry)
	}
	close(l.done)
}
