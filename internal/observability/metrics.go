// Package observability wires the Prometheus registry and the
// application metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the application.
type Metrics struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	calculations     *prometheus.CounterVec
	calcDuration     *prometheus.HistogramVec
	solverIterations *prometheus.HistogramVec
}

// NewMetrics initialises the registry and the base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remcalc_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remcalc_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remcalc_calculations_total",
		Help: "Scenario calculations by scenario and outcome.",
	}, []string{"scenario", "outcome"})
	calcDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remcalc_calculation_duration_seconds",
		Help:    "Scenario calculation duration.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 10, 6),
	}, []string{"scenario"})
	solver := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remcalc_solver_iterations",
		Help:    "Bisection iterations per back-solve.",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	}, []string{"scenario"})
	registry.MustRegister(requests, duration, calculations, calcDuration, solver)
	return &Metrics{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:    requests,
		requestDuration:  duration,
		calculations:     calculations,
		calcDuration:     calcDuration,
		solverIterations: solver,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request metrics for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveCalculation counts one scenario calculation and its duration.
// A calculation that could not reach the requested target is labelled
// capped.
func (m *Metrics) ObserveCalculation(scenario string, targetMet bool, seconds float64) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !targetMet {
		outcome = "capped"
	}
	m.calculations.WithLabelValues(scenario, outcome).Inc()
	m.calcDuration.WithLabelValues(scenario).Observe(seconds)
}

// ObserveSolverIterations tracks how many bisection steps a back-solve
// spent.
func (m *Metrics) ObserveSolverIterations(scenario string, iterations int) {
	if m == nil {
		return
	}
	m.solverIterations.WithLabelValues(scenario).Observe(float64(iterations))
}

// Registerer exposes the registry for registering custom metrics.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
