package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/internal/validation"
	"github.com/iudanet/barkeeper/pkg/api"
)

// BarHandler обрабатывает /rest/v1/bars
type BarHandler struct {
	logger *slog.Logger
	bars   storage.BarStorage
	feed   changeFeed
	now    func() time.Time
}

// NewBarHandler creates the bars REST handler. notifier may be nil.
func NewBarHandler(logger *slog.Logger, bars storage.BarStorage, notifier Notifier) *BarHandler {
	return &BarHandler{
		logger: logger,
		bars:   bars,
		feed:   changeFeed{logger: logger, bars: bars, notifier: notifier, now: time.Now},
		now:    time.Now,
	}
}

// List обрабатывает GET /rest/v1/bars
// Возвращает бары, в которых состоит пользователь
func (h *BarHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	bars, err := h.bars.ListUserBars(r.Context(), userID)
	if err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	resp := make([]api.Bar, 0, len(bars))
	for _, b := range bars {
		resp = append(resp, barToAPI(b))
	}
	SendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /rest/v1/bars
// Создатель становится владельцем бара
func (h *BarHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}

	var req api.CreateBarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}
	if err := validation.ValidateBarName(req.Name); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}

	now := h.now()
	bar := &models.Bar{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Phone:     strings.TrimSpace(req.Phone),
		OwnerID:   userID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.bars.CreateBar(ctx, bar); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	h.logger.InfoContext(ctx, "bar created", slog.String("bar_id", bar.ID), slog.String("user_id", userID))
	h.feed.notify(ctx, api.TableBars, ActionInsert, bar.ID, bar.ID)
	SendJSON(h.logger, w, barToAPI(*bar), http.StatusCreated)
}

// Update обрабатывает PATCH /rest/v1/bars/{id}
// Правки разрешаются по last-write-wins на времени правки на клиенте.
// Проигравшая правка не ошибка: ответ содержит текущее состояние бара.
func (h *BarHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}
	barID := chi.URLParam(r, "id")

	var req api.UpdateBarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}

	patch := models.BarPatch{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	}
	if patch.IsEmpty() {
		SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "nothing to update")
		return
	}
	if patch.Name != nil {
		if err := validation.ValidateBarName(*patch.Name); err != nil {
			SendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
			return
		}
		patch.Name = models.StringPtr(strings.TrimSpace(*patch.Name))
	}

	if _, err := authorize(ctx, h.bars, barID, userID, managerRoles...); err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	now := h.now()
	clientUpdatedAt := req.ClientUpdatedAt
	if clientUpdatedAt.IsZero() {
		clientUpdatedAt = now
	}

	applied, err := h.bars.PatchBar(ctx, barID, patch, clientUpdatedAt, now)
	if err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}

	if applied {
		h.feed.notify(ctx, api.TableBars, ActionUpdate, barID, barID)
	} else {
		h.logger.InfoContext(ctx, "stale bar update ignored",
			slog.String("bar_id", barID),
			slog.Time("client_updated_at", clientUpdatedAt))
	}

	bar, err := h.bars.GetBar(ctx, barID)
	if err != nil {
		sendStorageError(h.logger, r, w, err)
		return
	}
	SendJSON(h.logger, w, barToAPI(*bar), http.StatusOK)
}
