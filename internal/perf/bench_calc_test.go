package perf

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/remcalc/remcalc/internal/observability"
	"github.com/remcalc/remcalc/internal/rates"
	"github.com/remcalc/remcalc/internal/scenario"
)

func newCalculator(tb testing.TB) *scenario.Calculator {
	tb.Helper()
	table, err := rates.Load()
	if err != nil {
		tb.Fatalf("load rates: %v", err)
	}
	return scenario.NewCalculator(table)
}

func TestCalculationLatencyTargets(t *testing.T) {
	table, err := rates.Load()
	if err != nil {
		t.Fatalf("load rates: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetrics()
	service := scenario.NewService(logger, scenario.NewCalculator(table), metrics)
	ctx := context.Background()

	const samples = 200
	scenarios := []struct {
		name      string
		threshold time.Duration
		run       func(income, target float64)
	}{
		{
			name:      "sole_proprietorship",
			threshold: 10 * time.Millisecond,
			run: func(income, _ float64) {
				service.SoleProprietorship(ctx, scenario.SolePropInput{BusinessIncome: income})
			},
		},
		{
			name:      "salary",
			threshold: 50 * time.Millisecond,
			run: func(income, target float64) {
				service.Salary(ctx, scenario.SalaryInput{BusinessIncome: income, TargetPersonalCash: target})
			},
		},
		{
			name:      "dividends",
			threshold: 50 * time.Millisecond,
			run: func(income, target float64) {
				service.Dividends(ctx, scenario.DividendInput{BusinessIncome: income, TargetPersonalCash: target})
			},
		},
	}

	for _, sc := range scenarios {
		durations := make([]time.Duration, 0, samples)
		for i := 0; i < samples; i++ {
			income := 50000 + float64(i)*2500
			target := income * 0.4
			start := time.Now()
			sc.run(income, target)
			durations = append(durations, time.Since(start))
		}
		if p95 := percentile95(durations); p95 > sc.threshold {
			t.Fatalf("%s latency regression: p95=%s threshold=%s", sc.name, p95, sc.threshold)
		}
	}

	gatherer, ok := metrics.Registerer().(prometheus.Gatherer)
	if !ok {
		t.Fatal("metrics registry must be gatherable")
	}
	families, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	mean := histogramMean(t, families, "remcalc_calculation_duration_seconds", map[string]string{"scenario": "salary"})
	if mean > 0.05 {
		t.Fatalf("salary calculation mean duration above budget: %fs", mean)
	}
	okCount := counterValue(t, families, "remcalc_calculations_total", map[string]string{"scenario": "salary", "outcome": "ok"})
	if okCount < samples {
		t.Fatalf("expected %d ok salary calculations, got %f", samples, okCount)
	}
}

func TestBackSolveEffortStaysBounded(t *testing.T) {
	calc := newCalculator(t)

	// Well-formed solves converge in under 30 bisections; 60 leaves
	// headroom while still catching a bracketing regression.
	const budget = 60
	for income := 40000.0; income <= 1000000; income += 60000 {
		for _, share := range []float64{0.2, 0.5, 0.8} {
			res := calc.Salary(scenario.SalaryInput{BusinessIncome: income, TargetPersonalCash: income * share})
			if res.SolverIterations() > budget {
				t.Fatalf("salary solve exceeded iteration budget: income=%f share=%f iterations=%d", income, share, res.SolverIterations())
			}
			res = calc.Dividends(scenario.DividendInput{BusinessIncome: income, TargetPersonalCash: income * share})
			if res.SolverIterations() > budget {
				t.Fatalf("dividend solve exceeded iteration budget: income=%f share=%f iterations=%d", income, share, res.SolverIterations())
			}
		}
	}
}

func BenchmarkSoleProprietorship(b *testing.B) {
	calc := newCalculator(b)
	in := scenario.SolePropInput{BusinessIncome: 150000}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calc.SoleProprietorship(in)
	}
}

func BenchmarkSalaryBackSolve(b *testing.B) {
	calc := newCalculator(b)
	in := scenario.SalaryInput{BusinessIncome: 300000, TargetPersonalCash: 120000}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calc.Salary(in)
	}
}

func BenchmarkDividendMixSolve(b *testing.B) {
	calc := newCalculator(b)
	in := scenario.DividendInput{BusinessIncome: 700000, TargetPersonalCash: 250000}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calc.Dividends(in)
	}
}

func percentile95(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)-1) * 0.95)
	return sorted[index]
}

func counterValue(t *testing.T, families []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if hasLabels(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s with labels %v not found", name, labels)
	return 0
}

func histogramMean(t *testing.T, families []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if hasLabels(metric, labels) {
				hist := metric.GetHistogram()
				if hist == nil || hist.GetSampleCount() == 0 {
					t.Fatalf("histogram %s missing samples", name)
				}
				return hist.GetSampleSum() / float64(hist.GetSampleCount())
			}
		}
	}
	t.Fatalf("histogram %s with labels %v not found", name, labels)
	return 0
}

func hasLabels(metric *dto.Metric, labels map[string]string) bool {
	seen := make(map[string]string, len(metric.GetLabel()))
	for _, lp := range metric.GetLabel() {
		seen[lp.GetName()] = lp.GetValue()
	}
	for key, val := range labels {
		if seen[key] != val {
			return false
		}
	}
	return true
}
