package handlers

import (
	"log/slog"
	"net/http"
)

// Subscriber обслуживает websocket подписку пользователя
type Subscriber interface {
	Serve(w http.ResponseWriter, r *http.Request, userID string)
}

// RealtimeHandler обрабатывает GET /realtime/v1
type RealtimeHandler struct {
	logger *slog.Logger
	hub    Subscriber
}

// NewRealtimeHandler creates the change feed endpoint.
func NewRealtimeHandler(logger *slog.Logger, hub Subscriber) *RealtimeHandler {
	return &RealtimeHandler{logger: logger, hub: hub}
}

// Subscribe upgrades the connection and streams change events of the user's bars.
func (h *RealtimeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(h.logger, w, r)
	if !ok {
		return
	}
	h.hub.Serve(w, r, userID)
}
