package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the outbound solver calls.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	solverDuration  *prometheus.HistogramVec
	solverTotal     *prometheus.CounterVec
	solutionsCount  prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheHitRatio   prometheus.Gauge
	decodedBlocks   prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solverDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_request_duration_seconds",
		Help:    "Duration of outbound solver calls",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"outcome"})

	solverTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_requests_total",
		Help: "Total outbound solver calls",
	}, []string{"outcome"})

	solutionsCount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_solutions_count",
		Help:    "Number of solutions returned per successful solve",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solve_cache_hits_total",
		Help: "Total solve-cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solve_cache_misses_total",
		Help: "Total solve-cache misses",
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solve_cache_hit_ratio",
		Help: "Ratio of solve-cache hits to total lookups",
	})

	decodedBlocks := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "decoded_schedule_blocks",
		Help:    "Grid blocks produced per decoded solution",
		Buckets: []float64{0, 5, 10, 15, 20, 30, 45},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solverDuration, solverTotal, solutionsCount, cacheHits, cacheMisses, cacheHitRatio, decodedBlocks, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solverDuration:  solverDuration,
		solverTotal:     solverTotal,
		solutionsCount:  solutionsCount,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		cacheHitRatio:   cacheHitRatio,
		decodedBlocks:   decodedBlocks,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveSolverCall records one outbound solve and, on success, the size of
// the returned solution set.
func (m *MetricsService) ObserveSolverCall(outcome string, duration time.Duration, solutions int) {
	if m == nil {
		return
	}
	m.solverDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	m.solverTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		m.solutionsCount.Observe(float64(solutions))
	}
}

// RecordCacheLookup records a solve-cache hit or miss.
func (m *MetricsService) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// SetCacheHitRatio publishes the running hit ratio.
func (m *MetricsService) SetCacheHitRatio(ratio float64) {
	if m == nil {
		return
	}
	m.cacheHitRatio.Set(ratio)
}

// ObserveDecodedBlocks records how many grid blocks one solution produced.
func (m *MetricsService) ObserveDecodedBlocks(count int) {
	if m == nil {
		return
	}
	m.decodedBlocks.Observe(float64(count))
}
