package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/barkeeper/internal/server/handlers"
	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/pkg/api"
)

// memIdempotencyStore хранилище ключей в памяти
type memIdempotencyStore struct {
	records map[string]storage.IdempotencyRecord
	mu      sync.Mutex
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{records: make(map[string]storage.IdempotencyRecord)}
}

func (m *memIdempotencyStore) GetIdempotencyRecord(_ context.Context, userID, key string) (*storage.IdempotencyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID+"/"+key]
	if !ok {
		return nil, storage.ErrIdempotencyKeyNotFound
	}
	return &rec, nil
}

func (m *memIdempotencyStore) SaveIdempotencyRecord(_ context.Context, rec *storage.IdempotencyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := rec.UserID + "/" + rec.Key
	if _, ok := m.records[k]; !ok {
		m.records[k] = *rec
	}
	return nil
}

func (m *memIdempotencyStore) DeleteIdempotencyRecordsBefore(_ context.Context, t time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, rec := range m.records {
		if rec.CreatedAt.Before(t) {
			delete(m.records, k)
			n++
		}
	}
	return n, nil
}

func (m *memIdempotencyStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// countingHandler считает реальные выполнения мутации
func countingHandler(calls *atomic.Int32, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"number":`+strconv.Itoa(int(n))+`}`)
	})
}

func idempotentRequest(method, path, userID, key string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(api.IdempotencyKeyHeader, key)
	}
	if userID != "" {
		req = req.WithContext(handlers.WithUser(req.Context(), userID, userID+"@example.com"))
	}
	return req
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	store := newMemIdempotencyStore()
	var calls atomic.Int32
	handler := Idempotency(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(countingHandler(&calls, http.StatusCreated))

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, idempotentRequest(http.MethodPost, "/rpc/v1/create_ticket", "u1", "op-1"))
	require.Equal(t, http.StatusCreated, w1.Code)
	assert.Empty(t, w1.Header().Get(ReplayedHeader))

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, idempotentRequest(http.MethodPost, "/rpc/v1/create_ticket", "u1", "op-1"))

	assert.Equal(t, int32(1), calls.Load(), "mutation must run once")
	assert.Equal(t, http.StatusCreated, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.Equal(t, "true", w2.Header().Get(ReplayedHeader))
	assert.Equal(t, "application/json", w2.Header().Get("Content-Type"))
}

func TestIdempotency_KeysAreScopedPerUser(t *testing.T) {
	store := newMemIdempotencyStore()
	var calls atomic.Int32
	handler := Idempotency(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(countingHandler(&calls, http.StatusCreated))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "/rpc/v1/create_sale", "u1", "same"))
	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "/rpc/v1/create_sale", "u2", "same"))

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, store.len())
}

func TestIdempotency_KeyReusedForAnotherPath(t *testing.T) {
	store := newMemIdempotencyStore()
	var calls atomic.Int32
	handler := Idempotency(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(countingHandler(&calls, http.StatusCreated))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "/rpc/v1/create_ticket", "u1", "op-1"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, idempotentRequest(http.MethodPost, "/rpc/v1/create_sale", "u1", "op-1"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), api.CodeConflict)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotency_ServerErrorsAreNotStored(t *testing.T) {
	store := newMemIdempotencyStore()
	var calls atomic.Int32
	handler := Idempotency(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(countingHandler(&calls, http.StatusInternalServerError))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "/rpc/v1/pay_ticket", "u1", "op-1"))
	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "/rpc/v1/pay_ticket", "u1", "op-1"))

	assert.Equal(t, int32(2), calls.Load(), "5xx must be retried for real")
	assert.Equal(t, 0, store.len())
}

func TestIdempotency_ClientErrorsAreStored(t *testing.T) {
	store := newMemIdempotencyStore()
	var calls atomic.Int32
	handler := Idempotency(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(countingHandler(&calls, http.StatusConflict))

	handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(http.MethodPost, "/rpc/v1/pay_ticket", "u1", "op-1"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, idempotentRequest(http.MethodPost, "/rpc/v1/pay_ticket", "u1", "op-1"))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIdempotency_PassThrough(t *testing.T) {
	tests := []struct {
		name   string
		method string
		userID string
		key    string
	}{
		{name: "no key", method: http.MethodPost, userID: "u1"},
		{name: "no user", method: http.MethodPost, key: "op-1"},
		{name: "read request", method: http.MethodGet, userID: "u1", key: "op-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemIdempotencyStore()
			var calls atomic.Int32
			handler := Idempotency(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(countingHandler(&calls, http.StatusOK))

			handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(tt.method, "/rest/v1/bars", tt.userID, tt.key))
			handler.ServeHTTP(httptest.NewRecorder(), idempotentRequest(tt.method, "/rest/v1/bars", tt.userID, tt.key))

			assert.Equal(t, int32(2), calls.Load())
			assert.Equal(t, 0, store.len())
		})
	}
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	var calls atomic.Int32
	handler := Idempotency(newMemIdempotencyStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))(countingHandler(&calls, http.StatusOK))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, idempotentRequest(http.MethodPost, "/rest/v1/bars", "u1", strings.Repeat("k", 300)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(0), calls.Load())
}

func TestIdempotency_ConcurrentDuplicates(t *testing.T) {
	store := newMemIdempotencyStore()
	var calls atomic.Int32
	handler := Idempotency(store, slog.New(slog.NewTextHandler(io.Discard, nil)))(countingHandler(&calls, http.StatusCreated))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, idempotentRequest(http.MethodPost, "/rpc/v1/create_ticket", "u1", "op-dup"))
			assert.Equal(t, http.StatusCreated, w.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
