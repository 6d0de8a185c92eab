// Package realtime subscribes to the server change feed over a websocket.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	httpClient "github.com/iudanet/barkeeper/internal/client/api"
	"github.com/iudanet/barkeeper/pkg/api"
)

// Path is the websocket endpoint of the change feed.
const Path = "/realtime/v1"

// Handler receives every change event. It runs on the read loop and should
// not block for long.
type Handler func(ctx context.Context, ev api.ChangeEvent)

// Subscriber keeps a websocket connection to the change feed open,
// reconnecting with backoff until its context is cancelled.
type Subscriber struct {
	tokens     httpClient.TokenSource
	handler    Handler
	logger     *slog.Logger
	dialer     *websocket.Dialer
	url        string
	minBackoff time.Duration
	maxBackoff time.Duration
}

// Option configures a Subscriber.
type Option func(*Subscriber)

// WithBackoff sets the reconnect delay range.
func WithBackoff(minDelay, maxDelay time.Duration) Option {
	return func(s *Subscriber) {
		s.minBackoff = minDelay
		s.maxBackoff = maxDelay
	}
}

// NewSubscriber creates a subscriber for the server at baseURL (http or https).
func NewSubscriber(baseURL string, tokens httpClient.TokenSource, handler Handler, logger *slog.Logger, opts ...Option) *Subscriber {
	s := &Subscriber{
		url:        feedURL(baseURL),
		tokens:     tokens,
		handler:    handler,
		logger:     logger,
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		minBackoff: time.Second,
		maxBackoff: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func feedURL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + Path
}

// Run blocks until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) {
	backoff := s.newBackoff()
	for {
		connected, err := s.session(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			// Соединение было установлено - начинаем паузы заново
			backoff = s.newBackoff()
		}

		delay, _ := backoff.Next()
		if isNormalClose(err) {
			s.logger.Info("Change feed closed by server", "retry_in", delay)
		} else {
			s.logger.Debug("Change feed disconnected", "error", err, "retry_in", delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (s *Subscriber) newBackoff() retry.Backoff {
	return retry.WithJitterPercent(10, retry.WithCappedDuration(s.maxBackoff, retry.NewExponential(s.minBackoff)))
}

// session подключается и читает события до обрыва соединения
func (s *Subscriber) session(ctx context.Context) (connected bool, err error) {
	header := http.Header{}
	if s.tokens != nil {
		token, err := s.tokens.AccessToken(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to get access token: %w", err)
		}
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := s.dialer.DialContext(ctx, s.url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return false, fmt.Errorf("failed to connect to change feed: %w", err)
	}
	s.logger.Info("Change feed connected", "url", s.url)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Закрытие соединения прерывает блокирующее чтение
			_ = conn.Close()
		case <-done:
		}
	}()
	defer func() {
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return true, ctx.Err()
			}
			return true, err
		}

		var ev api.ChangeEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Warn("Skipping malformed change event", "error", err)
			continue
		}
		s.dispatch(ctx, ev)
	}
}

func (s *Subscriber) dispatch(ctx context.Context, ev api.ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Change handler panicked", "table", ev.Table, "panic", r)
		}
	}()
	s.handler(ctx, ev)
}

func isNormalClose(err error) bool {
	var closeErr *websocket.CloseError
	return errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure
}
