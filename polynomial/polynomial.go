// Package polynomial implements real polynomials in the monomial basis and
// their root finding through the eigenvalues of the companion matrix.
package polynomial

import (
	"fmt"

	"github.com/tuneinsight/ghquad/eigen"
)

// Polynomial is a real polynomial in the monomial basis:
// Coeffs[i] is the coefficient of x^i.
type Polynomial struct {
	Coeffs []float64
}

// NewPolynomial creates a new polynomial from a copy of coeffs.
func NewPolynomial(coeffs []float64) Polynomial {
	if len(coeffs) == 0 {
		panic(fmt.Errorf("cannot NewPolynomial: empty coefficients"))
	}
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return Polynomial{Coeffs: c}
}

// Clone returns a deep copy of the polynomial.
func (p Polynomial) Clone() Polynomial {
	return NewPolynomial(p.Coeffs)
}

// Degree returns the degree of the polynomial, i.e. len(Coeffs)-1.
func (p Polynomial) Degree() int {
	return len(p.Coeffs) - 1
}

// Evaluate returns p(x) using Horner's scheme.
func (p Polynomial) Evaluate(x float64) (y float64) {
	coeffs := p.Coeffs
	n := len(coeffs)
	y = coeffs[n-1]
	for i := n - 2; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return
}

// Roots returns the real roots of p using solver.
// See the package function Roots.
func (p Polynomial) Roots(solver eigen.General, tol float64) ([]float64, error) {
	return Roots(p.Coeffs, p.Degree(), solver, tol)
}
