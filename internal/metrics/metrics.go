// Package metrics holds the prometheus collectors of the client sync loop and
// the reference server.
//
// Collectors are registered on an explicit prometheus.Registerer so tests and
// multiple instances in one process do not collide on the default registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Replay outcomes
const (
	OutcomeDone      = "done"
	OutcomeRetried   = "retried"
	OutcomeRejected  = "rejected"
	OutcomeExhausted = "exhausted"
	OutcomeDeferred  = "deferred"
	OutcomeReleased  = "released"
)

// Sync собирает метрики воспроизведения очереди
type Sync struct {
	replays    *prometheus.CounterVec
	replayTime *prometheus.HistogramVec
	queueDepth *prometheus.GaugeVec
	drains     prometheus.Counter
	drainTime  prometheus.Histogram
}

// NewSync registers the sync collectors on reg.
func NewSync(reg prometheus.Registerer) *Sync {
	f := promauto.With(reg)
	return &Sync{
		replays: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barkeeper",
			Subsystem: "sync",
			Name:      "replays_total",
			Help:      "Queued operation replays by type and outcome",
		}, []string{"type", "outcome"}),
		replayTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barkeeper",
			Subsystem: "sync",
			Name:      "replay_duration_seconds",
			Help:      "Duration of a single replay attempt",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		queueDepth: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "barkeeper",
			Subsystem: "queue",
			Name:      "operations",
			Help:      "Operations in the offline queue by status",
		}, []string{"status"}),
		drains: f.NewCounter(prometheus.CounterOpts{
			Namespace: "barkeeper",
			Subsystem: "sync",
			Name:      "drains_total",
			Help:      "Completed queue drains",
		}),
		drainTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "barkeeper",
			Subsystem: "sync",
			Name:      "drain_duration_seconds",
			Help:      "Duration of a full queue drain",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
}

// ObserveReplay records one replay attempt of an operation type.
func (s *Sync) ObserveReplay(opType, outcome string, took time.Duration) {
	if s == nil {
		return
	}
	s.replays.WithLabelValues(opType, outcome).Inc()
	if took > 0 {
		s.replayTime.WithLabelValues(opType).Observe(took.Seconds())
	}
}

// ObserveDrain records a finished drain.
func (s *Sync) ObserveDrain(took time.Duration) {
	if s == nil {
		return
	}
	s.drains.Inc()
	s.drainTime.Observe(took.Seconds())
}

// SetQueueDepth publishes queue counts.
func (s *Sync) SetQueueDepth(pending, syncing, failed int) {
	if s == nil {
		return
	}
	s.queueDepth.WithLabelValues("pending").Set(float64(pending))
	s.queueDepth.WithLabelValues("syncing").Set(float64(syncing))
	s.queueDepth.WithLabelValues("failed").Set(float64(failed))
}

// HTTP собирает метрики HTTP сервера
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTP registers the HTTP server collectors on reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	f := promauto.With(reg)
	return &HTTP{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barkeeper",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barkeeper",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "barkeeper",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served",
		}),
	}
}

// Started marks a request as in flight. The returned func records it as finished.
func (h *HTTP) Started() func(route, method string, status int, took time.Duration) {
	h.inFlight.Inc()
	return func(route, method string, status int, took time.Duration) {
		h.inFlight.Dec()
		h.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		h.duration.WithLabelValues(route, method).Observe(took.Seconds())
	}
}

// Handler exposes gatherer in the prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
