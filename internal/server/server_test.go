package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iudanet/barkeeper/internal/config"
	"github.com/iudanet/barkeeper/internal/server/middleware"
	"github.com/iudanet/barkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/barkeeper/pkg/api"
)

func testConfig() *config.Server {
	return &config.Server{
		Addr:            "127.0.0.1:0",
		DBPath:          ":memory:",
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		ShutdownTimeout: 5 * time.Second,
		IdempotencyTTL:  time.Hour,
		CleanupInterval: time.Hour,
		RateLimit: config.RateLimit{
			Requests:     1000,
			AuthRequests: 100,
			Window:       time.Minute,
		},
	}
}

func newTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	return s
}

// testServer поднимает роутер на httptest сервере
func testServer(t *testing.T, cfg *config.Server) (*Server, *httptest.Server) {
	t.Helper()
	store := newTestStorage(t)
	srv := New(cfg, store, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
		_ = store.Close()
	})
	return srv, ts
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any, header http.Header) *http.Response {
	c.t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func signup(t *testing.T, base, email string) *client {
	t.Helper()
	c := &client{t: t, base: base}
	resp := c.do(http.MethodPost, "/auth/v1/signup", api.RegisterRequest{Email: email, Password: "correct-horse"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c.token = decode[api.TokenResponse](t, resp).AccessToken
	return c
}

func TestServer_EndToEnd(t *testing.T) {
	srv, ts := testServer(t, testConfig())
	owner := signup(t, ts.URL, "owner@example.com")

	t.Run("health", func(t *testing.T) {
		resp := (&client{t: t, base: ts.URL}).do(http.MethodGet, "/health", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", decode[api.HealthResponse](t, resp).Status)
	})

	t.Run("rest requires a token", func(t *testing.T) {
		resp := (&client{t: t, base: ts.URL}).do(http.MethodGet, "/rest/v1/bars", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	// Повтор мутации с тем же ключом не создаёт второй бар
	key := http.Header{api.IdempotencyKeyHeader: {"op-create-bar-1"}}
	first := owner.do(http.MethodPost, "/rest/v1/bars", api.CreateBarRequest{Name: "The Anchor"}, key)
	require.Equal(t, http.StatusCreated, first.StatusCode)
	bar := decode[api.Bar](t, first)

	replayed := owner.do(http.MethodPost, "/rest/v1/bars", api.CreateBarRequest{Name: "The Anchor"}, key)
	require.Equal(t, http.StatusCreated, replayed.StatusCode)
	assert.Equal(t, "true", replayed.Header.Get(middleware.ReplayedHeader))
	assert.Equal(t, bar.ID, decode[api.Bar](t, replayed).ID)

	list := owner.do(http.MethodGet, "/rest/v1/bars", nil, nil)
	require.Equal(t, http.StatusOK, list.StatusCode)
	assert.Len(t, decode[[]api.Bar](t, list), 1)

	// Подписка на ленту изменений
	header := http.Header{"Authorization": {"Bearer " + owner.token}}
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/realtime/v1", header)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	require.Eventually(t, func() bool { return srv.hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	created := owner.do(http.MethodPost, "/rpc/v1/create_ticket", api.CreateTicketRequest{BarID: bar.ID, TableLabel: "T4"},
		http.Header{api.IdempotencyKeyHeader: {"op-ticket-1"}})
	require.Equal(t, http.StatusCreated, created.StatusCode)
	ticket := decode[api.Ticket](t, created)
	assert.Equal(t, int64(1), ticket.Number)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev api.ChangeEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, api.TableTickets, ev.Table)
	assert.Equal(t, ticket.ID, ev.RecordID)
	assert.Equal(t, bar.ID, ev.BarID)

	t.Run("other users cannot read the bar", func(t *testing.T) {
		stranger := signup(t, ts.URL, "stranger@example.com")
		resp := stranger.do(http.MethodGet, "/rest/v1/tickets?bar_id="+bar.ID, nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("metrics use route patterns", func(t *testing.T) {
		owner.do(http.MethodPatch, "/rest/v1/bars/"+bar.ID, api.UpdateBarRequest{Phone: strPtr("555-0100")}, nil)

		resp := (&client{t: t, base: ts.URL}).do(http.MethodGet, "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `route="/rest/v1/bars/{id}"`)
		assert.Contains(t, string(body), `route="/rpc/v1/create_ticket"`)
	})
}

func TestServer_AuthRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.AuthRequests = 2
	_, ts := testServer(t, cfg)

	anon := &client{t: t, base: ts.URL}
	for i := 0; i < 2; i++ {
		resp := anon.do(http.MethodPost, "/auth/v1/login", api.LoginRequest{Email: "a@example.com", Password: "whatever1"}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp := anon.do(http.MethodPost, "/auth/v1/login", api.LoginRequest{Email: "a@example.com", Password: "whatever1"}, nil)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, api.CodeRateLimited, decode[api.ErrorResponse](t, resp).Error)

	// Общий лимит не зависит от лимита авторизации
	resp = anon.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Cleanup(t *testing.T) {
	srv, ts := testServer(t, testConfig())
	owner := signup(t, ts.URL, "owner@example.com")

	resp := owner.do(http.MethodPost, "/rest/v1/bars", api.CreateBarRequest{Name: "Old"},
		http.Header{api.IdempotencyKeyHeader: {"op-old"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Через два часа запись ключа устарела, повтор выполнится заново
	srv.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	require.NoError(t, srv.Cleanup(context.Background()))

	resp = owner.do(http.MethodPost, "/rest/v1/bars", api.CreateBarRequest{Name: "Old"},
		http.Header{api.IdempotencyKeyHeader: {"op-old"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(middleware.ReplayedHeader))
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := newTestStorage(t)
	defer func() { _ = store.Close() }()

	srv := New(testConfig(), store, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	httpClient := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := httpClient.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func strPtr(s string) *string { return &s }
