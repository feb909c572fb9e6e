package quadrature

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tuneinsight/ghquad/eigen"
)

// GolubWelsch computes quadrature rules from the eigendecomposition of a Jacobi matrix.
type GolubWelsch struct {
	params GolubWelschParameters
	bound  CountEstimator
	solver eigen.SymmetricRange
	logger *log.Logger
}

// NewGolubWelsch instantiates a new GolubWelsch solver.
// A nil solver selects eigen.Bisection and a nil logger discards the output.
func NewGolubWelsch(params GolubWelschParameters, solver eigen.SymmetricRange, logger *log.Logger) (gw *GolubWelsch, err error) {

	if err = params.Validate(); err != nil {
		return nil, fmt.Errorf("cannot NewGolubWelsch: %w", err)
	}

	var bound CountEstimator
	if bound, err = params.Bound.Estimator(); err != nil {
		return nil, fmt.Errorf("cannot NewGolubWelsch: %w", err)
	}

	if solver == nil {
		solver = eigen.Bisection{}
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &GolubWelsch{
		params: params,
		bound:  bound,
		solver: solver,
		logger: logger,
	}, nil
}

// WithBound returns a copy of gw using the given estimator.
func (gw GolubWelsch) WithBound(bound CountEstimator) *GolubWelsch {
	gw.bound = bound
	return &gw
}

// Parameters returns the parameters of the solver.
func (gw GolubWelsch) Parameters() GolubWelschParameters {
	return gw.params
}

// Rule returns the n-point Gauss-Hermite rule, without the points of negligible
// weight or lying outside the scan range.
func (gw GolubWelsch) Rule(n int) (r Rule, err error) {

	if n < 1 {
		return Rule{}, fmt.Errorf("cannot Rule: n=%d < 1: %w", n, ErrInvalidDegree)
	}

	return gw.Solve(HermiteJacobi(n), HermiteMoment)
}

// Solve returns the rule associated to the Jacobi matrix T of a weight function
// of zeroth moment mu0: the nodes are the eigenvalues of T in the scan range and
// the weights mu0 times the squared first components of the unit eigenvectors.
// Nodes are returned in increasing order.
func (gw GolubWelsch) Solve(T eigen.Tridiagonal, mu0 float64) (r Rule, err error) {

	if err = T.Validate(); err != nil {
		return Rule{}, fmt.Errorf("cannot Solve: %w", err)
	}

	n := T.N()
	p := gw.params

	capacity := gw.bound.Capacity(T, p.Lower, p.Upper)

	gw.logger.Debug("predicted number of eigenvalues", "n", n, "lower", p.Lower, "upper", p.Upper, "capacity", capacity)

	z := make([]float64, capacity*n)

	w, err := gw.solver.EigenRange(T, p.Lower, p.Upper, p.Tolerance, z, capacity)
	if err != nil {
		return Rule{}, fmt.Errorf("cannot Solve: %w", err)
	}

	gw.logger.Debug("actual number of eigenvalues", "n", n, "count", len(w))

	r.Nodes = make([]float64, 0, len(w))
	r.Weights = make([]float64, 0, len(w))

	for i := range w {
		v := z[i*n]
		if weight := mu0 * v * v; weight >= p.Threshold {
			r.Nodes = append(r.Nodes, w[i])
			r.Weights = append(r.Weights, weight)
		}
	}

	gw.logger.Debug("points with significant weight", "n", n, "count", r.Len())

	return
}
