// Package server wires the reference backend: chi routes, middleware chain,
// realtime hub and the background cleanup of expired tokens and
// idempotency records.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/barkeeper/internal/config"
	"github.com/iudanet/barkeeper/internal/metrics"
	"github.com/iudanet/barkeeper/internal/server/handlers"
	"github.com/iudanet/barkeeper/internal/server/middleware"
	"github.com/iudanet/barkeeper/internal/server/realtime"
	"github.com/iudanet/barkeeper/internal/server/storage"
)

const readHeaderTimeout = 10 * time.Second

// Storage все хранилища, которые нужны серверу
type Storage interface {
	storage.UserStorage
	storage.TokenStorage
	storage.BarStorage
	storage.TicketStorage
	storage.SaleStorage
	storage.MappingStorage
	storage.IdempotencyStorage
	handlers.Pinger
}

// Server собирает зависимости HTTP сервера
type Server struct {
	cfg         *config.Server
	logger      *slog.Logger
	store       Storage
	hub         *realtime.Hub
	limiter     *middleware.RateLimiter
	authLimiter *middleware.RateLimiter
	httpMetrics *metrics.HTTP
	gatherer    prometheus.Gatherer
	now         func() time.Time
}

// New creates the server. Collectors are registered on reg.
func New(cfg *config.Server, store Storage, logger *slog.Logger, reg *prometheus.Registry) *Server {
	return &Server{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		hub:         realtime.NewHub(logger),
		limiter:     middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger),
		authLimiter: middleware.NewRateLimiter(cfg.RateLimit.AuthRequests, cfg.RateLimit.Window, logger),
		httpMetrics: metrics.NewHTTP(reg),
		gatherer:    reg,
		now:         time.Now,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	jwtCfg := handlers.JWTConfig{
		Secret:          []byte(s.cfg.JWTSecret),
		AccessTokenTTL:  s.cfg.AccessTokenTTL,
		RefreshTokenTTL: s.cfg.RefreshTokenTTL,
	}

	health := handlers.NewHealthHandler(s.logger, s.store)
	auth := handlers.NewAuthHandler(s.logger, s.store, s.store, jwtCfg)
	bars := handlers.NewBarHandler(s.logger, s.store, s.hub)
	mappings := handlers.NewMappingHandler(s.logger, s.store, s.store, s.store, s.hub)
	pos := handlers.NewPOSHandler(s.logger, s.store, s.store, s.store, s.store, s.hub)
	feed := handlers.NewRealtimeHandler(s.logger, s.hub)

	authenticate := middleware.AuthMiddleware(s.logger, jwtCfg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.LoggingWithSkip(s.logger, []string{"/health", "/metrics"}))
	r.Use(middleware.MetricsMiddleware(s.httpMetrics))
	r.Use(middleware.RecoveryMiddleware(s.logger))

	r.Get("/health", health.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))

	r.Route("/auth/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			// Отдельный, более строгий лимит против подбора паролей
			r.Use(middleware.RateLimitMiddleware(s.authLimiter))
			r.Post("/signup", auth.Signup)
			r.Post("/login", auth.Login)
			r.Post("/refresh", auth.Refresh)
		})
		r.With(authenticate).Post("/logout", auth.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitMiddleware(s.limiter))
		r.Use(authenticate)
		r.Use(middleware.Idempotency(s.store, s.logger))

		r.Get("/realtime/v1", feed.Subscribe)

		r.Route("/rest/v1", func(r chi.Router) {
			r.Get("/bars", bars.List)
			r.Post("/bars", bars.Create)
			r.Patch("/bars/{id}", bars.Update)

			r.Get("/server_mappings", mappings.List)
			r.Put("/server_mappings", mappings.Upsert)
			r.Delete("/server_mappings", mappings.Delete)

			r.Get("/tickets", pos.ListTickets)
			r.Get("/sales", pos.ListSales)
		})

		r.Route("/rpc/v1", func(r chi.Router) {
			r.Post("/create_ticket", pos.CreateTicket)
			r.Post("/pay_ticket", pos.PayTicket)
			r.Post("/create_sale", pos.CreateSale)
		})
	})

	return r
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.Close()
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections from ln until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout. The server cannot be reused afterwards.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.Close()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.cleanupLoop(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()

		// Websocket соединения перехвачены у http.Server, Shutdown их не закрывает
		s.hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close stops background goroutines of the rate limiters and disconnects subscribers.
func (s *Server) Close() {
	s.hub.Close()
	s.limiter.Stop()
	s.authLimiter.Stop()
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Cleanup(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("Cleanup failed", "error", err)
			}
		}
	}
}

// Cleanup removes expired refresh tokens and idempotency records older than cfg.IdempotencyTTL.
func (s *Server) Cleanup(ctx context.Context) error {
	now := s.now()

	tokens, err := s.store.DeleteExpiredTokens(ctx, now)
	if err != nil {
		return err
	}

	keys, err := s.store.DeleteIdempotencyRecordsBefore(ctx, now.Add(-s.cfg.IdempotencyTTL))
	if err != nil {
		return err
	}

	if tokens > 0 || keys > 0 {
		s.logger.Info("Cleanup finished", "expired_tokens", tokens, "idempotency_records", keys)
	}
	return nil
}
