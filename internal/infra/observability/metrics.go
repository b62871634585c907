package observability

import (
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFA.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	gatewayCalls    *prometheus.CounterVec
	gatewayErrors   *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	sessions        *prometheus.CounterVec
	typeMismatches  prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bfa_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		gatewayCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_gateway_calls_total",
				Help: "Total calls to the remote finance API.",
			},
			[]string{"endpoint"},
		),
		gatewayErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_gateway_errors_total",
				Help: "Total failed calls to the remote finance API.",
			},
			[]string{"endpoint"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		sessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bfa_sessions_total",
				Help: "Sessions opened and closed.",
			},
			[]string{"event"},
		),
		typeMismatches: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bfa_category_type_mismatches_total",
				Help: "Transactions whose type differs from their category domain.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrGatewayCall counts one call to a remote endpoint.
func (m *Metrics) IncrGatewayCall(endpoint string) {
	m.gatewayCalls.WithLabelValues(endpoint).Inc()
}

// IncrGatewayError counts one failed call to a remote endpoint.
func (m *Metrics) IncrGatewayError(endpoint string) {
	m.gatewayErrors.WithLabelValues(endpoint).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrSessionOpened counts a successful login.
func (m *Metrics) IncrSessionOpened() {
	m.sessions.WithLabelValues("opened").Inc()
}

// IncrSessionClosed counts a logout.
func (m *Metrics) IncrSessionClosed() {
	m.sessions.WithLabelValues("closed").Inc()
}

// AddTypeMismatches counts transactions filed under a category of the other domain.
func (m *Metrics) AddTypeMismatches(n int) {
	m.typeMismatches.Add(float64(n))
}

// GetGatewaySnapshot returns a snapshot of gateway-related metrics suitable
// for the GET /v1/metrics/gateway endpoint. breakerState is reported as is.
func (m *Metrics) GetGatewaySnapshot(breakerState string) *domain.GatewayMetrics {
	// Prometheus counters expose cumulative values.
	calls := sumCounterVec(m.gatewayCalls)
	errs := sumCounterVec(m.gatewayErrors)
	hits := sumCounterVec(m.cacheHits)
	misses := sumCounterVec(m.cacheMisses)

	errorRate := float64(0)
	cacheHitRate := float64(0)
	if calls > 0 {
		errorRate = errs / calls
	}
	if hits+misses > 0 {
		cacheHitRate = hits / (hits + misses)
	}

	return &domain.GatewayMetrics{
		GatewayCalls:   int64(calls),
		GatewayErrors:  int64(errs),
		ErrorRate:      errorRate,
		CacheHitRate:   cacheHitRate,
		SessionsOpened: int64(getCounterValue(m.sessions, "opened")),
		SessionsClosed: int64(getCounterValue(m.sessions, "closed")),
		CircuitBreaker: breakerState,
		Period:         "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

// sumCounterVec adds up the counters of every label combination seen so far.
func sumCounterVec(cv *prometheus.CounterVec) float64 {
	ch := make(chan prometheus.Metric)
	go func() {
		cv.Collect(ch)
		close(ch)
	}()

	var total float64
	for metric := range ch {
		m := &dto.Metric{}
		if err := metric.Write(m); err != nil {
			continue
		}
		if m.Counter != nil && m.Counter.Value != nil {
			total += *m.Counter.Value
		}
	}
	return total
}
