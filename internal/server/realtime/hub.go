// Package realtime fans out change events of the reference server to
// websocket subscribers. A subscriber only receives events of bars it is a
// member of; slow subscribers are disconnected instead of blocking writers.
package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/barkeeper/pkg/api"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer очередь событий на одного подписчика
	sendBuffer = 64
)

// subscriber одно websocket соединение
type subscriber struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	userID string
	once   sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// Hub хранит активные подписки и рассылает события
type Hub struct {
	logger   *slog.Logger
	subs     map[*subscriber]struct{}
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	closed   bool
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		subs:   make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Клиент кассы не браузер, заголовок Origin не проверяем
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades an authenticated request and streams events for userID
// until the peer goes away or the hub is closed.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту ошибкой
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	sub := &subscriber{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		userID: userID,
	}
	if !h.add(sub) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	h.logger.Debug("Subscriber connected", "user_id", userID)

	go h.writePump(sub)
	h.readPump(sub)
}

// Publish delivers ev to every subscriber whose user is in userIDs.
func (h *Hub) Publish(ev api.ChangeEvent, userIDs []string) {
	if len(userIDs) == 0 {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("Failed to encode change event", "error", err)
		return
	}

	allowed := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		allowed[id] = struct{}{}
	}

	var slow []*subscriber
	h.mu.RLock()
	for sub := range h.subs {
		if _, ok := allowed[sub.userID]; !ok {
			continue
		}
		select {
		case sub.send <- data:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	// Переполненный буфер значит клиент отстал, он перечитает данные после переподключения
	for _, sub := range slow {
		h.logger.Warn("Dropping slow subscriber", "user_id", sub.userID)
		h.remove(sub)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := h.subs
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()

	for sub := range subs {
		sub.close()
	}
}

func (h *Hub) add(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.subs[sub] = struct{}{}
	return true
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	sub.close()
}

// readPump читает входящие кадры только ради pong и обнаружения закрытия
func (h *Hub) readPump(sub *subscriber) {
	defer h.remove(sub)

	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("Subscriber read failed", "user_id", sub.userID, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.remove(sub)
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(sub)
				return
			}
		case <-sub.done:
			return
		}
	}
}
