package client

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

// Event is one realtime notification from the server.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Listen subscribes to the announcement channel and feeds every event to
// onEvent until the context is cancelled or the connection drops. Delivery
// is at-most-once with no replay, so the caller should refresh the full
// list after Listen returns.
func Listen(ctx context.Context, wsURL string, onEvent func(Event)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// the watcher must not outlive this call
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		onEvent(ev)
	}
}
