package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/barkeeper/internal/metrics"
)

// MetricsMiddleware records request counters and latency per chi route pattern.
// Шаблон маршрута вместо пути, иначе id баров раздуют кардинальность
func MetricsMiddleware(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			done := m.Started()

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			done(routePattern(r), r.Method, wrapped.statusCode, time.Since(start))
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
