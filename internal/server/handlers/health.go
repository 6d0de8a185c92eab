package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/barkeeper/pkg/api"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger *slog.Logger
	db     Pinger
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, db Pinger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		db:     db,
	}
}

// Health обрабатывает GET /health
// Клиенты используют его как пробу сети, поэтому ответ дешёвый и без авторизации
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Time:   time.Now().UTC(),
		Status: "ok",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.ErrorContext(ctx, "health check: database unavailable", slog.Any("error", err))
			resp.Status = "unavailable"
			SendJSON(h.logger, w, resp, http.StatusServiceUnavailable)
			return
		}
	}

	SendJSON(h.logger, w, resp, http.StatusOK)
}
