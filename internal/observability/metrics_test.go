package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMetricsHandlerExposesPrometheusMetrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveCalculation("sole_proprietorship", true, 0.000012)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	metrics.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "remcalc_calculations_total") {
		t.Fatalf("expected body to contain remcalc_calculations_total, got: %s", body)
	}
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	metricsRR := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	metricsBody := metricsRR.Body.String()
	if !strings.Contains(metricsBody, "remcalc_http_requests_total{code=\"418\",route=\"/test\"} 1") {
		t.Fatalf("expected metrics to record request, got: %s", metricsBody)
	}
	if !strings.Contains(metricsBody, "remcalc_http_request_duration_seconds_bucket{route=\"/test\"") {
		t.Fatalf("expected duration histogram to be present, got: %s", metricsBody)
	}
}

func TestObserveCalculationSeparatesOutcomes(t *testing.T) {
	metrics := NewMetrics()

	metrics.ObserveCalculation("salary", true, 0.00001)
	metrics.ObserveCalculation("salary", true, 0.00002)
	metrics.ObserveCalculation("dividends", false, 0.00003)

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rr.Body.String()
	if !strings.Contains(body, "remcalc_calculations_total{outcome=\"ok\",scenario=\"salary\"} 2") {
		t.Fatalf("expected two ok salary calculations, got: %s", body)
	}
	if !strings.Contains(body, "remcalc_calculations_total{outcome=\"capped\",scenario=\"dividends\"} 1") {
		t.Fatalf("expected one capped dividends calculation, got: %s", body)
	}
	if !strings.Contains(body, "remcalc_calculation_duration_seconds_bucket{scenario=\"salary\"") {
		t.Fatalf("expected calculation duration histogram, got: %s", body)
	}
}

func TestObserveSolverIterations(t *testing.T) {
	metrics := NewMetrics()

	metrics.ObserveSolverIterations("salary", 7)

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rr.Body.String()
	if !strings.Contains(body, "remcalc_solver_iterations_bucket{scenario=\"salary\"") {
		t.Fatalf("expected solver iterations histogram, got: %s", body)
	}
	if !strings.Contains(body, "remcalc_solver_iterations_count{scenario=\"salary\"} 1") {
		t.Fatalf("expected one solver observation, got: %s", body)
	}
}

func TestNilMetricsObserversAreNoOps(t *testing.T) {
	var metrics *Metrics

	metrics.ObserveCalculation("salary", true, 0.1)
	metrics.ObserveSolverIterations("salary", 3)
}
