package solve

import (
	"math"
	"testing"
)

// steppedNet mimics net cash after a small progressive schedule with
// marginal rates 10%, 20%, 30%.
func steppedNet(x float64) float64 {
	if x <= 0 {
		return 0
	}
	tax := 0.0
	if x > 20000 {
		tax = 1000 + 2000 + (x-20000)*0.30
	} else if x > 10000 {
		tax = 1000 + (x-10000)*0.20
	} else {
		tax = x * 0.10
	}
	return x - tax
}

func TestNetTargetLinear(t *testing.T) {
	net := func(x float64) float64 { return 0.7 * x }
	res := NetTarget(net, 70000, Options{})

	if !res.Bracketed {
		t.Fatalf("expected bracketed solve")
	}
	if math.Abs(res.Net-70000) > DefaultTolerance {
		t.Fatalf("net = %v, want within %v of 70000", res.Net, DefaultTolerance)
	}
	if math.Abs(res.X-100000) > 1 {
		t.Fatalf("x = %v, want near 100000", res.X)
	}
	if res.Iterations > DefaultMaxIterations {
		t.Fatalf("iterations = %d, exceeds bound", res.Iterations)
	}
}

func TestNetTargetImmediateLowerBound(t *testing.T) {
	net := func(x float64) float64 { return x }
	res := NetTarget(net, 52340.55, Options{})

	if res.X != 52340.55 || res.Iterations != 0 {
		t.Fatalf("identity net should resolve at the lower bound, got %+v", res)
	}
}

func TestNetTargetZeroTarget(t *testing.T) {
	res := NetTarget(steppedNet, 0, Options{})
	if res.X != 0 || res.Net != 0 || res.Iterations != 0 {
		t.Fatalf("zero target should resolve immediately, got %+v", res)
	}
}

func TestNetTargetSteppedSchedule(t *testing.T) {
	for _, target := range []float64{500, 8999.99, 9000.01, 17000, 26000, 240000} {
		res := NetTarget(steppedNet, target, Options{})
		if !res.Bracketed {
			t.Fatalf("target %v: not bracketed", target)
		}
		if math.Abs(res.Residual) > DefaultTolerance {
			t.Fatalf("target %v: residual %v exceeds tolerance", target, res.Residual)
		}
		if back := steppedNet(res.X); math.Abs(back-target) > DefaultTolerance {
			t.Fatalf("target %v: net(%v) = %v", target, res.X, back)
		}
	}
}

func TestNetTargetDoublesToBracket(t *testing.T) {
	net := func(x float64) float64 { return 0.5 * x }
	res := NetTarget(net, 400, Options{InitialHigh: 500})

	if !res.Bracketed {
		t.Fatalf("expected doubling to bracket the root")
	}
	if math.Abs(res.X-800) > 1 {
		t.Fatalf("x = %v, want near 800", res.X)
	}
}

func TestNetTargetUnreachable(t *testing.T) {
	capped := func(x float64) float64 { return math.Min(x, 1000) }
	res := NetTarget(capped, 5000, Options{InitialHigh: 2000})

	if res.Bracketed {
		t.Fatalf("cap at 1000 cannot bracket target 5000")
	}
	if res.Residual > -1000 {
		t.Fatalf("residual %v should stay far from target", res.Residual)
	}
	if res.Iterations > DefaultMaxIterations {
		t.Fatalf("iterations = %d, exceeds bound", res.Iterations)
	}
}

func TestNetTargetRespectsIterationCap(t *testing.T) {
	net := func(x float64) float64 { return 0.7 * x }
	res := NetTarget(net, 70000.77, Options{MaxIterations: 5})

	if res.Iterations != 5 {
		t.Fatalf("iterations = %d, want exactly 5", res.Iterations)
	}

	full := NetTarget(net, 70000.77, Options{})
	if math.Abs(full.Residual) > DefaultTolerance {
		t.Fatalf("unbounded solve residual %v exceeds tolerance", full.Residual)
	}
}
