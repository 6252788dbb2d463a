// Package solve provides the binary-search root finder the scenario
// calculators use to back-solve a gross input from a target net cash
// figure.
package solve

import "math"

const (
	// DefaultTolerance is the absolute residual, in currency units, at
	// which a solve is considered converged.
	DefaultTolerance = 0.01
	// DefaultMaxIterations bounds the bisection loop.
	DefaultMaxIterations = 100

	maxDoublings = 20
	defaultSpan  = 50000.0
)

// Options tune a solve. Zero values select the defaults.
type Options struct {
	Tolerance     float64
	MaxIterations int
	// InitialHigh seeds the upper bound of the bracket. Callers that
	// know a hard cap on x should pass it here.
	InitialHigh float64
}

// Result reports the best estimate found. The solver never fails:
// callers decide what a large Residual or an unbracketed root means.
type Result struct {
	X          float64
	Net        float64
	Residual   float64
	Iterations int
	Bracketed  bool
}

// NetTarget finds x with net(x) close to target by bisection. net must
// be monotonically non-decreasing with net(x) <= x, which holds for
// net-cash-after-tax functions and makes low = max(0, target) a valid
// lower bound. If the initial high bound does not bracket the target it
// is doubled a bounded number of times first.
func NetTarget(net func(float64) float64, target float64, opts Options) Result {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	low := math.Max(0, target)
	if n := net(low); math.Abs(n-target) <= tol {
		return Result{X: low, Net: n, Residual: n - target, Bracketed: true}
	}

	high := opts.InitialHigh
	if high <= low {
		high = 2*low + defaultSpan
	}
	bracketed := net(high) >= target
	for i := 0; i < maxDoublings && !bracketed; i++ {
		high *= 2
		bracketed = net(high) >= target
	}

	x := low
	n := net(low)
	iterations := 0
	for iterations < maxIter {
		iterations++
		x = (low + high) / 2
		n = net(x)
		if math.Abs(n-target) <= tol || high-low <= tol {
			break
		}
		if n < target {
			low = x
		} else {
			high = x
		}
	}
	return Result{X: x, Net: n, Residual: n - target, Iterations: iterations, Bracketed: bracketed}
}
