// Package quadrature computes Gauss-Hermite quadrature rules, i.e. nodes x_i and
// weights w_i such that
//
//	int_{-inf}^{+inf} f(x) exp(-x^2) dx ≈ sum_i w_i f(x_i),
//
// exactly for polynomials f of degree up to 2n-1.
//
// Two solvers are provided:
//
//   - Direct: the nodes are the roots of H_n, found as the eigenvalues of its
//     companion matrix, and the weights follow from the closed form
//     w_i = 2^(n-1) n! sqrt(pi) / (n^2 H_{n-1}(x_i)^2), evaluated in log-space.
//     It is numerically unstable beyond n ≈ 20.
//   - GolubWelsch: the nodes are the eigenvalues of the symmetric tridiagonal
//     Jacobi matrix of the Hermite recurrence and the weights are mu0 times the
//     squared first components of the unit eigenvectors. Only the eigenpairs in
//     a fixed range are computed, which keeps memory at O(n sqrt(n)) and makes
//     very large rules (n ~ 10^6) tractable. Points of negligible weight are dropped.
package quadrature

import (
	"errors"
	"math"
)

// HermiteMoment is the zeroth moment of the Hermite weight function:
// int exp(-x^2) dx = sqrt(pi).
var HermiteMoment = math.Sqrt(math.Pi)

var (
	// ErrInvalidDegree is returned when the requested number of points is smaller than one.
	ErrInvalidDegree = errors.New("quadrature: invalid degree")
	// ErrInvalidParameters is returned by the constructors on inconsistent parameters.
	ErrInvalidParameters = errors.New("quadrature: invalid parameters")
	// ErrMomentMismatch is returned when the weights of a rule do not sum to the zeroth moment.
	ErrMomentMismatch = errors.New("quadrature: weights do not sum to the zeroth moment")
)

// GaussHermiteDirect returns the n-point rule computed by the direct method
// with the default parameters.
func GaussHermiteDirect(n int) (Rule, error) {
	return NewDirect(DefaultDirectParameters(), nil).Rule(n)
}

// GaussHermiteGolubWelsch returns the n-point rule computed by the Golub-Welsch
// algorithm with the default parameters.
func GaussHermiteGolubWelsch(n int) (Rule, error) {
	gw, err := NewGolubWelsch(DefaultGolubWelschParameters(), nil, nil)
	if err != nil {
		return Rule{}, err
	}
	return gw.Rule(n)
}
