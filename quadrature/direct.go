package quadrature

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/ghquad/eigen"
	"github.com/tuneinsight/ghquad/hermite"
	"github.com/tuneinsight/ghquad/polynomial"
	"github.com/tuneinsight/ghquad/utils/bignum"
)

// Direct computes quadrature rules from the roots of the Hermite polynomials and
// the closed form of the weights.
type Direct struct {
	params DirectParameters
	solver eigen.General
}

// NewDirect instantiates a new Direct solver. A nil solver selects eigen.LAPACK.
func NewDirect(params DirectParameters, solver eigen.General) *Direct {
	if solver == nil {
		solver = eigen.LAPACK{}
	}
	return &Direct{params: params, solver: solver}
}

// Parameters returns the parameters of the solver.
func (d Direct) Parameters() DirectParameters {
	return d.params
}

// Rule returns the n-point Gauss-Hermite rule, with nodes in increasing order.
func (d Direct) Rule(n int) (r Rule, err error) {

	if n < 1 {
		return Rule{}, fmt.Errorf("cannot Rule: n=%d < 1: %w", n, ErrInvalidDegree)
	}

	if n == 1 {
		return Rule{Nodes: []float64{0}, Weights: []float64{HermiteMoment}}, nil
	}

	nodes, err := polynomial.Roots(hermite.Coefficients(n), n, d.solver, d.params.ImaginaryTolerance)
	if err != nil {
		return Rule{}, fmt.Errorf("cannot Rule: %w", err)
	}

	weights := make([]float64, n)

	if d.params.Precision > 53 {
		for i, x := range nodes {
			weights[i] = logWeightBig(x, n, d.params.Precision)
		}
	} else {
		c := logWeightConstant(n)
		for i, x := range nodes {
			weights[i] = math.Exp(c - 2*math.Log(math.Abs(hermite.Value(x, n-1))))
		}
	}

	r = Rule{Nodes: nodes, Weights: weights}
	r.Sort()

	if d.params.MomentTolerance > 0 {
		if err = r.CheckMoment(HermiteMoment, d.params.MomentTolerance); err != nil {
			return Rule{}, fmt.Errorf("cannot Rule: %w", err)
		}
	}

	return
}

// logWeightConstant returns (n-1) ln(2) + ln(n!) + ln(pi)/2 - 2 ln(n).
func logWeightConstant(n int) float64 {
	lgamma, _ := math.Lgamma(float64(n + 1))
	return float64(n-1)*math.Ln2 + lgamma + 0.5*math.Log(math.Pi) - 2*math.Log(float64(n))
}

// logWeightBig evaluates the weight of the node x of the n-point rule
// with prec bits of precision.
func logWeightBig(x float64, n int, prec uint) float64 {

	h := hermite.ValueBig(bignum.NewFloat(x, prec), n-1)
	h.Abs(h)

	if h.Sign() == 0 {
		return math.Inf(1)
	}

	lw := new(big.Float).SetPrec(prec)
	lw.Mul(bignum.NewFloat(n-1, prec), bignum.Log2(prec))
	lw.Add(lw, bignum.LogFactorial(n, prec))

	logPi := bignum.Log(bignum.Pi(prec))
	logPi.Quo(logPi, bignum.NewFloat(2, prec))
	lw.Add(lw, logPi)

	logN := bignum.Log(bignum.NewFloat(n, prec))
	logN.Mul(logN, bignum.NewFloat(2, prec))
	lw.Sub(lw, logN)

	logH := bignum.Log(h)
	logH.Mul(logH, bignum.NewFloat(2, prec))
	lw.Sub(lw, logH)

	w, _ := bignum.Exp(lw).Float64()

	return w
}
