package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func TestListenDeliversEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.WriteJSON(map[string]any{
			"type":    "new_announcement",
			"payload": map[string]any{"id": 1, "title": "공지", "content": "내용"},
		})
		conn.Close()
	}))
	defer srv.Close()

	var got []Event
	err := Listen(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), func(ev Event) {
		got = append(got, ev)
	})
	require.Error(t, err, "Listen returns once the server drops the connection")
	require.Len(t, got, 1)
	assert.Equal(t, "new_announcement", got[0].Type)
}

func TestListenReturnsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Listen(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), func(Event) {})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after context cancel")
	}
}

func TestListenDoesNotLeakWatcherGoroutines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ctx := context.Background()

	// warm up the dialer so one-time goroutines don't skew the baseline
	_ = Listen(ctx, wsURL, func(Event) {})
	time.Sleep(100 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	const rounds = 20
	for i := 0; i < rounds; i++ {
		_ = Listen(ctx, wsURL, func(Event) {})
	}
	time.Sleep(200 * time.Millisecond)

	// a leaked watcher per call would park ~20 goroutines here
	assert.Less(t, runtime.NumGoroutine(), baseline+rounds/2,
		"watcher goroutines must exit when Listen returns")
}
