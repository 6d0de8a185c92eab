package realtime

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	httpClient "github.com/iudanet/barkeeper/internal/client/api"
	"github.com/iudanet/barkeeper/pkg/api"
)

type staticToken string

func (t staticToken) AccessToken(ctx context.Context) (string, error) {
	if t == "" {
		return "", httpClient.ErrNoCredentials
	}
	return string(t), nil
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestFeedURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/realtime/v1", feedURL("http://localhost:8080/"))
	assert.Equal(t, "wss://pos.example.com/realtime/v1", feedURL("https://pos.example.com"))
}

func TestSubscriber_DeliversEventsAndReconnects(t *testing.T) {
	defer goleak.VerifyNone(t)

	var connections atomic.Int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() {
			_ = conn.Close()
		}()

		n := connections.Add(1)
		_ = conn.WriteJSON(api.ChangeEvent{Table: api.TableTickets, BarID: "b1", RecordID: "t1", Action: "insert"})
		_ = conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		if n == 1 {
			// Первое соединение сервер закрывает сам
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
			return
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	events := make(chan api.ChangeEvent, 4)
	sub := NewSubscriber(srv.URL, staticToken("token-1"), func(ctx context.Context, ev api.ChangeEvent) {
		events <- ev
	}, testLogger, WithBackoff(time.Millisecond, 5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sub.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case ev := <-events:
			assert.Equal(t, api.TableTickets, ev.Table)
			assert.Equal(t, "t1", ev.RecordID)
		case <-time.After(5 * time.Second):
			t.Fatalf("event %d not delivered", i+1)
		}
	}
	assert.GreaterOrEqual(t, connections.Load(), int32(2))

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

func TestSubscriber_WaitsForCredentials(t *testing.T) {
	defer goleak.VerifyNone(t)

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	sub := NewSubscriber(srv.URL, staticToken(""), func(ctx context.Context, ev api.ChangeEvent) {},
		testLogger, WithBackoff(time.Millisecond, 2*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	sub.Run(ctx)

	require.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	assert.Zero(t, requests.Load(), "no dial without a token")
}

func TestSubscriber_HandlerPanicDoesNotDropConnection(t *testing.T) {
	defer goleak.VerifyNone(t)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() {
			_ = conn.Close()
		}()
		_ = conn.WriteJSON(api.ChangeEvent{Table: api.TableBars, RecordID: "b1"})
		_ = conn.WriteJSON(api.ChangeEvent{Table: api.TableBars, RecordID: "b2"})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	seen := make(chan string, 2)
	sub := NewSubscriber(srv.URL, nil, func(ctx context.Context, ev api.ChangeEvent) {
		seen <- ev.RecordID
		if ev.RecordID == "b1" {
			panic("boom")
		}
	}, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sub.Run(ctx)
		close(done)
	}()

	for _, want := range []string{"b1", "b2"} {
		select {
		case got := <-seen:
			assert.Equal(t, want, got)
		case <-time.After(5 * time.Second):
			t.Fatalf("event %s not delivered", want)
		}
	}

	cancel()
	<-done
}
