// Package logtail keeps the bounded, arrival-ordered record buffer
// behind the operations log pane.
package logtail

import (
	"time"
)

// Record is one backend log line delivered over the push channel.
// Records are ordered by arrival, not necessarily by timestamp.
type Record struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// Capacity is the maximum number of records the pane retains.
const Capacity = 100

// Buffer is a FIFO of records bounded at Capacity. Appending at
// capacity evicts the oldest record.
type Buffer struct {
	records []Record
}

// Append adds r, dropping the oldest record when full.
func (b *Buffer) Append(r Record) {
	if len(b.records) == Capacity {
		copy(b.records, b.records[1:])
		b.records[len(b.records)-1] = r
		return
	}
	b.records = append(b.records, r)
}

// Len returns the number of buffered records.
func (b *Buffer) Len() int {
	return len(b.records)
}

// Records returns a copy of the buffered records, oldest first.
func (b *Buffer) Records() []Record {
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// ConnState tracks the push-channel lifecycle as reported by the
// stream collaborator.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateConnected
	StateDisconnected
	StateErrored
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateErrored:
		return "error"
	default:
		return "unknown"
	}
}

// Tail owns the log buffer and reacts to stream lifecycle callbacks.
// It never reconnects; that is the stream collaborator's job. All
// methods run on the UI's update loop, so there is no lock.
type Tail struct {
	buf   Buffer
	state ConnState
	now   func() time.Time
}

// New returns a Tail in the connecting state with an empty buffer.
func New() *Tail {
	return &Tail{now: time.Now}
}

// OnOpen marks the channel connected and records a synthetic INFO line.
func (t *Tail) OnOpen() {
	t.state = StateConnected
	t.buf.Append(t.synthetic("INFO", "log stream connected"))
}

// OnMessage appends a pushed record.
func (t *Tail) OnMessage(r Record) {
	t.buf.Append(r)
}

// OnClose marks the channel disconnected and records a synthetic ERROR
// line.
func (t *Tail) OnClose() {
	t.state = StateDisconnected
	t.buf.Append(t.synthetic("ERROR", "log stream disconnected"))
}

// OnError marks the channel errored and records a synthetic ERROR line
// carrying the detail.
func (t *Tail) OnError(detail string) {
	t.state = StateErrored
	t.buf.Append(t.synthetic("ERROR", "log stream error: "+detail))
}

// Backfill seeds the buffer with records fetched from the backend's
// log history endpoint, oldest first.
func (t *Tail) Backfill(records []Record) {
	for _, r := range records {
		t.buf.Append(r)
	}
}

// State returns the current connection state.
func (t *Tail) State() ConnState {
	return t.state
}

// Records returns a copy of the buffered records, oldest first.
func (t *Tail) Records() []Record {
	return t.buf.Records()
}

// Len returns the number of buffered records.
func (t *Tail) Len() int {
	return t.buf.Len()
}

func (t *Tail) synthetic(level, message string) Record {
	return Record{
		Timestamp: t.now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   message,
	}
}
