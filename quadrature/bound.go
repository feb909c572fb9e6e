package quadrature

import (
	"fmt"
	"math"

	"github.com/tuneinsight/ghquad/eigen"
)

// CountEstimator provides the number of eigenvectors the Golub-Welsch solver
// allocates room for. It must be an upper bound of the number of eigenvalues of T
// in (lower, upper], else the computation fails with eigen.ErrCapacityExceeded.
type CountEstimator interface {
	Capacity(T eigen.Tridiagonal, lower, upper float64) int
}

// Heuristic estimates the number of eigenvalues in [-4, 4] of the Hermite Jacobi
// matrix of size n as
//
//	ceil(2^(Intercept + Slope * log2(n))) + Margin,
//
// capped at n. The fit with the default constants follows the actual count very
// closely for n > 8 and is an upper bound below. It ignores the range and the
// entries of T, and must be recalibrated for other ranges.
type Heuristic struct {
	Intercept float64
	Slope     float64
	Margin    int
}

// DefaultHeuristic returns the heuristic calibrated for the range [-4, 4].
func DefaultHeuristic() Heuristic {
	return Heuristic{
		Intercept: 1.8177530512018800,
		Slope:     0.5022347758669726,
		Margin:    100,
	}
}

// Predicted returns the estimate before the margin is added.
func (h Heuristic) Predicted(n int) int {
	return int(math.Ceil(math.Pow(2, h.Intercept+h.Slope*math.Log2(float64(n)))))
}

// Capacity implements CountEstimator.
func (h Heuristic) Capacity(T eigen.Tridiagonal, lower, upper float64) int {
	n := T.N()
	return min(h.Predicted(n)+h.Margin, n)
}

// Sturm counts the eigenvalues in range exactly with a Sturm sequence, at the
// cost of one O(n) pass per bound.
type Sturm struct{}

// Capacity implements CountEstimator.
func (Sturm) Capacity(T eigen.Tridiagonal, lower, upper float64) int {
	return T.CountRange(lower, upper)
}

// Bound methods accepted by BoundParameters.
const (
	BoundHeuristic = "heuristic"
	BoundSturm     = "sturm"
)

// BoundParameters is the serializable description of a CountEstimator.
// Zero heuristic constants are replaced by the defaults.
type BoundParameters struct {
	Method    string  `toml:"method" json:"method"`
	Intercept float64 `toml:"intercept" json:"intercept,omitempty"`
	Slope     float64 `toml:"slope" json:"slope,omitempty"`
	Margin    int     `toml:"margin" json:"margin,omitempty"`
}

// Estimator returns the CountEstimator described by p.
func (p BoundParameters) Estimator() (CountEstimator, error) {
	switch p.Method {
	case "", BoundHeuristic:
		h := DefaultHeuristic()
		if p.Intercept != 0 || p.Slope != 0 {
			h.Intercept, h.Slope = p.Intercept, p.Slope
		}
		if p.Margin != 0 {
			h.Margin = p.Margin
		}
		return h, nil
	case BoundSturm:
		return Sturm{}, nil
	default:
		return nil, fmt.Errorf("bound method %q, want %q or %q: %w", p.Method, BoundHeuristic, BoundSturm, ErrInvalidParameters)
	}
}
