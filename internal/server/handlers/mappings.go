package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/internal/validation"
	"github.com/iudanet/barkeeper/pkg/api"
)

// MappingHandler обрабатывает /rest/v1/server_mappings
type MappingHandler struct {
	logger   *slog.Logger
	bars     storage.BarStorage
	users    storage.UserStorage
	mappings storage.MappingStorage
	feed     changeFeed
	now      func() time.Time
}

// NewMappingHandler creates the server mappings REST handler. notifier may be nil.
func NewMappingHandler(
	logger *slog.Logger,
	bars storage.BarStorage,
	users storage.UserStorage,
	mappings storage.MappingStorage,
	notifier Notifier,
) *MappingHandler {
	return &MappingHandler{
		logger:   logger,
		bars:     bars,
		users:    users,
		mappings: mappings,
		feed:     changeFeed{logger: logger, bars: bars, notifier: notifier, now: time.Now},
		now:      time.Now,
	}
}

// List обрабатывает GET /rest/v1/server_mappings?bar_id=
func (h *MappingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	barID := r.URL.Query().Get("bar_id")
	if barID == "" {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "bar_id is required")
		return
	}
	if _, err := authorize(ctx, h.bars, barID, userID); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	mappings, err := h.mappings.ListMappings(ctx, barID)
	if err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	resp := make([]api.ServerMapping, 0, len(mappings))
	for _, m := range mappings {
		resp = append(resp, mappingToAPI(m))
	}
	SendJSON(h.logger, w, resp, http.StatusOK)
}

// Upsert обрабатывает PUT /rest/v1/server_mappings
// Привязанный пользователь получает доступ к бару с ролью официанта
func (h *MappingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	var req api.UpsertMappingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}
	if req.BarID == "" || req.UserID == "" {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "bar_id and user_id are required")
		return
	}
	if err := validation.ValidateServerName(req.ServerName); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}

	if _, err := authorize(ctx, h.bars, req.BarID, userID, managerRoles...); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	if _, err := h.users.GetUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "user_id does not exist")
			return
		}
		sendStorageError(h.logger, r, w, err)
		return
	}

	if err := h.bars.AddMember(ctx, req.BarID, req.UserID, models.RoleServer); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	mapping := &models.ServerMapping{
		ID:         uuid.New().String(),
		BarID:      req.BarID,
		ServerName: strings.TrimSpace(req.ServerName),
		UserID:     req.UserID,
		CreatedAt:  h.now(),
	}
	if err := h.mappings.UpsertMapping(ctx, mapping); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	h.logger.InfoContext(ctx, "server mapping saved",
		slog.String("bar_id", mapping.BarID),
		slog.String("server_name", mapping.ServerName))
	h.feed.notify(ctx, api.TableServerMappings, ActionUpdate, mapping.BarID, mapping.ID)
	SendJSON(h.logger, w, mappingToAPI(*mapping), http.StatusOK)
}

// Delete обрабатывает DELETE /rest/v1/server_mappings?bar_id=&server_name=
func (h *MappingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	barID := r.URL.Query().Get("bar_id")
	serverName := r.URL.Query().Get("server_name")
	if barID == "" || strings.TrimSpace(serverName) == "" {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "bar_id and server_name are required")
		return
	}

	if _, err := authorize(ctx, h.bars, barID, userID, managerRoles...); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	if err := h.mappings.DeleteMapping(ctx, barID, serverName); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	h.feed.notify(ctx, api.TableServerMappings, ActionDelete, barID, serverName)
	w.WriteHeader(http.StatusNoContent)
}
