package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/barkeeper/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestStorage поднимает sqlite в памяти с применёнными миграциями
func setupTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createTestUser(t *testing.T, s *sqlite.Storage, email string) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  email,
		PasswordHash: "hash",
		Role:         models.RoleOwner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestBar(t *testing.T, s *sqlite.Storage, ownerID, name string) *models.Bar {
	t.Helper()
	now := time.Now()
	bar := &models.Bar{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateBar(context.Background(), bar))
	return bar
}

// fakeNotifier запоминает опубликованные события
type fakeNotifier struct {
	events     []api.ChangeEvent
	recipients [][]string
	mu         sync.Mutex
}

func (n *fakeNotifier) Publish(ev api.ChangeEvent, userIDs []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	n.recipients = append(n.recipients, userIDs)
}

func (n *fakeNotifier) last(t *testing.T) (api.ChangeEvent, []string) {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.events, "expected a published change event")
	return n.events[len(n.events)-1], n.recipients[len(n.recipients)-1]
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

// newRequest строит запрос с JSON телом и, если userID не пуст, с пользователем в контексте
func newRequest(t *testing.T, method, target, userID string, body any) *http.Request {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(WithUser(req.Context(), userID, userID+"@example.com"))
	}
	return req
}

// withURLParam проставляет параметр маршрута chi
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[api.ErrorResponse](t, w).Error
}
