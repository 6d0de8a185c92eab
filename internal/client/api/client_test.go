package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/barkeeper/pkg/api"
)

type staticToken string

func (s staticToken) AccessToken(ctx context.Context) (string, error) {
	return string(s), nil
}

type recordingObserver struct {
	failures  []error
	successes int
	mu        sync.Mutex
}

func (o *recordingObserver) ReportSuccess() {
	o.mu.Lock()
	o.successes++
	o.mu.Unlock()
}

func (o *recordingObserver) ReportFailure(err error) {
	o.mu.Lock()
	o.failures = append(o.failures, err)
	o.mu.Unlock()
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Login проверяет успешную аутентификацию
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/login", r.URL.Path)
		// Логин выполняется без токена
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "owner@example.com", req.Email)

		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			User:        api.User{ID: "user-1", Email: req.Email, Role: "owner"},
			AccessToken: "jwt",
			ExpiresIn:   900,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("ignored")))
	resp, err := client.Login(context.Background(), api.LoginRequest{Email: "owner@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.AccessToken)
	assert.Equal(t, "user-1", resp.User.ID)
}

// TestClient_MutationSendsIdempotencyKey проверяет заголовки мутирующих запросов
func TestClient_MutationSendsIdempotencyKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc/v1/create_ticket", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get(api.IdempotencyKeyHeader))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.CreateTicketRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.Ticket{ID: "t-1", BarID: req.BarID, Number: 7, Status: "open"})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("token-1")))
	ticket, err := client.CreateTicket(context.Background(), "key-123", api.CreateTicketRequest{BarID: "b1"})

	require.NoError(t, err)
	assert.Equal(t, "t-1", ticket.ID)
	assert.Equal(t, int64(7), ticket.Number)
}

// TestClient_ListMappingsQuery проверяет передачу bar_id
func TestClient_ListMappingsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/server_mappings", r.URL.Path)
		assert.Equal(t, "b 1", r.URL.Query().Get("bar_id"))
		assert.Empty(t, r.Header.Get(api.IdempotencyKeyHeader))

		_ = json.NewEncoder(w).Encode([]api.ServerMapping{{BarID: "b 1", ServerName: "Ahmed", UserID: "u1"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("t")))
	mappings, err := client.ListMappings(context.Background(), "b 1")

	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "u1", mappings[0].UserID)
}

// TestClient_DeleteMappingNoContent проверяет ответ без тела
func TestClient_DeleteMappingNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "Ahmed", r.URL.Query().Get("server_name"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.DeleteMapping(context.Background(), "k", "b1", "Ahmed")
	assert.NoError(t, err)
}

// TestClient_ErrorClassification проверяет разделение ошибок на отказы и временные сбои
func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		rejected  bool
		transient bool
		observed  string
	}{
		{name: "validation", status: http.StatusBadRequest, rejected: true, observed: "success"},
		{name: "forbidden", status: http.StatusForbidden, rejected: true, observed: "success"},
		{name: "conflict", status: http.StatusConflict, rejected: true, observed: "success"},
		{name: "request timeout", status: http.StatusRequestTimeout, transient: true, observed: "failure"},
		{name: "rate limited", status: http.StatusTooManyRequests, transient: true, observed: "failure"},
		{name: "server error", status: http.StatusInternalServerError, transient: true, observed: "failure"},
		{name: "bad gateway", status: http.StatusBadGateway, transient: true, observed: "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "some_code", Message: "nope"})
			}))
			defer server.Close()

			observer := &recordingObserver{}
			client := NewClient(server.URL, WithObserver(observer))
			_, err := client.ListBars(context.Background())
			require.Error(t, err)

			assert.Equal(t, tt.rejected, IsRejected(err))
			assert.Equal(t, tt.transient, IsTransient(err))

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "some_code", apiErr.Code)

			if tt.observed == "success" {
				assert.Equal(t, 1, observer.successes)
				assert.Empty(t, observer.failures)
			} else {
				assert.Zero(t, observer.successes)
				assert.Len(t, observer.failures, 1)
			}
		})
	}
}

// TestClient_TransportErrorIsTransient проверяет недоступный сервер
func TestClient_TransportErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	observer := &recordingObserver{}
	client := NewClient(url, WithObserver(observer))
	err := client.Probe(context.Background())

	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.False(t, IsRejected(err))
	assert.Len(t, observer.failures, 1)
}

// TestClient_ContextCancellation проверяет отмену запроса через контекст
func TestClient_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Имитируем долгий запрос
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	observer := &recordingObserver{}
	client := NewClient(server.URL, WithObserver(observer))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := client.ListBars(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, IsTransient(err))
	// Отмена не голос за офлайн
	assert.Empty(t, observer.failures)
}

// TestClient_InvalidJSON проверяет обработку невалидного JSON в ответе
func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("invalid json {{{"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.ListBars(context.Background())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to decode response")
}

// TestClient_UpdateBarPatchOmitsAbsentFields проверяет частичное обновление
func TestClient_UpdateBarPatchOmitsAbsentFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/v1/bars/b1", r.URL.Path)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, "X", raw["name"])
		assert.NotContains(t, raw, "address")

		_ = json.NewEncoder(w).Encode(api.Bar{ID: "b1", Name: "X", Address: "A"})
	}))
	defer server.Close()

	name := "X"
	client := NewClient(server.URL)
	bar, err := client.UpdateBar(context.Background(), "k", "b1", api.UpdateBarRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "A", bar.Address)
}
