package logstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, events <-chan Event, want int) []Event {
	t.Helper()
	var got []Event
	deadline := time.After(5 * time.Second)
	for len(got) < want {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-deadline:
			t.Fatalf("timed out after %d of %d events", len(got), want)
		}
	}
	return got
}

func TestStreamerDeliversFramesAndLifecycle(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		frames := []string{
			`{"event":"log_message","data":{"timestamp":"2025-06-01 12:00:00","level":"INFO","message":"indexing started"}}`,
			`{"event":"heartbeat"}`,
			`not json`,
			`{"event":"log_message","data":{"timestamp":"2025-06-01 12:00:01","level":"ERROR","message":"indexing failed"}}`,
		}
		for _, f := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
		}
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	s := New(wsURL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)

	got := collectEvents(t, s.Events(), 4)
	cancel()

	require.Equal(t, EventOpen, got[0].Kind)
	require.Equal(t, EventMessage, got[1].Kind)
	require.Equal(t, "indexing started", got[1].Record.Message)
	require.Equal(t, EventMessage, got[2].Kind)
	require.Equal(t, "indexing failed", got[2].Record.Message)
	// Server closed after sending; the stream reports the closure.
	require.Equal(t, EventClosed, got[3].Kind)
}

func TestStreamerEmitsErrorWhenUnreachable(t *testing.T) {
	s := New("ws://127.0.0.1:1/ws/logs", nil)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)

	got := collectEvents(t, s.Events(), 1)
	cancel()

	require.Equal(t, EventError, got[0].Kind)
	require.Error(t, got[0].Err)
}

func TestStreamerClosesEventsOnCancel(t *testing.T) {
	s := New("ws://127.0.0.1:1/ws/logs", nil)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	// Let the first dial attempt fail, then cancel during backoff.
	collectEvents(t, s.Events(), 1)
	cancel()

	select {
	case _, ok := <-s.events:
		require.False(t, ok, "events channel should be closed")
	case <-time.After(5 * time.Second):
		t.Fatal("events channel was not closed")
	}
}
