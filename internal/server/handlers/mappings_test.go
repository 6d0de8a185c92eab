package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/pkg/api"
)

func mappingsQuery(barID, serverName string) string {
	q := url.Values{"bar_id": {barID}}
	if serverName != "" {
		q.Set("server_name", serverName)
	}
	return "/rest/v1/server_mappings?" + q.Encode()
}

func TestMappingHandler(t *testing.T) {
	s := setupTestStorage(t)
	n := &fakeNotifier{}
	h := NewMappingHandler(testLogger(), s, s, s, n)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner@example.com")
	waiter := createTestUser(t, s, "anna@example.com")
	bar := createTestBar(t, s, owner.ID, "The Anchor")

	w := serve(h.Upsert, newRequest(t, http.MethodPut, "/rest/v1/server_mappings", owner.ID, api.UpsertMappingRequest{
		BarID:      bar.ID,
		ServerName: " Anna ",
		UserID:     waiter.ID,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decodeBody[api.ServerMapping](t, w)
	assert.Equal(t, "Anna", saved.ServerName)
	assert.Equal(t, waiter.ID, saved.UserID)

	role, err := s.GetMemberRole(ctx, bar.ID, waiter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleServer, role, "mapped user joins the bar as a server")

	ev, recipients := n.last(t)
	assert.Equal(t, api.TableServerMappings, ev.Table)
	assert.ElementsMatch(t, []string{owner.ID, waiter.ID}, recipients)

	t.Run("members can list", func(t *testing.T) {
		w := serve(h.List, newRequest(t, http.MethodGet, mappingsQuery(bar.ID, ""), waiter.ID, nil))
		require.Equal(t, http.StatusOK, w.Code)
		list := decodeBody[[]api.ServerMapping](t, w)
		require.Len(t, list, 1)
		assert.Equal(t, "Anna", list[0].ServerName)
	})

	t.Run("list requires bar_id", func(t *testing.T) {
		w := serve(h.List, newRequest(t, http.MethodGet, "/rest/v1/server_mappings", owner.ID, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("servers cannot change mappings", func(t *testing.T) {
		w := serve(h.Upsert, newRequest(t, http.MethodPut, "/rest/v1/server_mappings", waiter.ID, api.UpsertMappingRequest{
			BarID:      bar.ID,
			ServerName: "Boris",
			UserID:     waiter.ID,
		}))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, api.CodeForbidden, errorCode(t, w))
	})

	t.Run("unknown user", func(t *testing.T) {
		w := serve(h.Upsert, newRequest(t, http.MethodPut, "/rest/v1/server_mappings", owner.ID, api.UpsertMappingRequest{
			BarID:      bar.ID,
			ServerName: "Ghost",
			UserID:     "no-such-user",
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "user_id does not exist")
	})

	t.Run("invalid server name", func(t *testing.T) {
		w := serve(h.Upsert, newRequest(t, http.MethodPut, "/rest/v1/server_mappings", owner.ID, api.UpsertMappingRequest{
			BarID:      bar.ID,
			ServerName: "",
			UserID:     waiter.ID,
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := serve(h.Delete, newRequest(t, http.MethodDelete, mappingsQuery(bar.ID, "Anna"), owner.ID, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)

		ev, _ := n.last(t)
		assert.Equal(t, ActionDelete, ev.Action)

		w = serve(h.Delete, newRequest(t, http.MethodDelete, mappingsQuery(bar.ID, "Anna"), owner.ID, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = serve(h.Delete, newRequest(t, http.MethodDelete, mappingsQuery(bar.ID, ""), owner.ID, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
