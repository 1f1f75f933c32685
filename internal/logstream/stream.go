// Package logstream owns the websocket connection to the daemon's
// /ws/logs push channel, including reconnection. Consumers only see
// lifecycle events; the log pane itself never redials.
package logstream

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ragdeck/ragdeck/internal/logtail"
)

// EventKind identifies one lifecycle callback.
type EventKind int

const (
	EventOpen EventKind = iota
	EventMessage
	EventClosed
	EventError
)

// Event is one lifecycle callback delivered to the UI.
type Event struct {
	Kind   EventKind
	Record logtail.Record
	Err    error
}

// frame is the wire shape of one push-channel message.
type frame struct {
	Event string         `json:"event"`
	Data  logtail.Record `json:"data"`
}

const (
	dialTimeout    = 10 * time.Second
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
	eventBuffer    = 64
)

// Streamer maintains the push-channel connection and emits events.
type Streamer struct {
	url    string
	events chan Event
	log    *zap.Logger
}

// New builds a Streamer for the given ws:// or wss:// URL.
func New(wsURL string, log *zap.Logger) *Streamer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Streamer{
		url:    wsURL,
		events: make(chan Event, eventBuffer),
		log:    log,
	}
}

// Events returns the channel lifecycle events are delivered on. It is
// closed when Run returns.
func (s *Streamer) Events() <-chan Event {
	return s.events
}

// Run dials and reads until ctx is cancelled, reconnecting with capped
// exponential backoff between attempts.
func (s *Streamer) Run(ctx context.Context) {
	defer close(s.events)
	backoff := initialBackoff
	for ctx.Err() == nil {
		conn, err := s.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn("log stream dial failed", zap.Error(err))
			s.emit(ctx, Event{Kind: EventError, Err: err})
			if !sleep(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = initialBackoff
		s.emit(ctx, Event{Kind: EventOpen})
		s.readLoop(ctx, conn)
		if ctx.Err() != nil {
			return
		}
		s.emit(ctx, Event{Kind: EventClosed})
		if !sleep(ctx, backoff) {
			return
		}
	}
}

func (s *Streamer) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, s.url, nil)
	return conn, err
}

func (s *Streamer) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				s.log.Warn("log stream read failed", zap.Error(err))
			}
			return
		}
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			s.log.Warn("log stream frame discarded", zap.Error(err))
			continue
		}
		if f.Event != "log_message" {
			continue
		}
		s.emit(ctx, Event{Kind: EventMessage, Record: f.Data})
	}
}

func (s *Streamer) emit(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
