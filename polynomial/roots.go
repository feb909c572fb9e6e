package polynomial

import (
	"errors"
	"fmt"
	"math"

	"github.com/tuneinsight/ghquad/eigen"
)

// DefaultImaginaryTolerance is the default relative tolerance under which
// the imaginary part of an eigenvalue of the companion matrix is considered zero.
const DefaultImaginaryTolerance = 1e-8

var (
	// ErrInvalidDegree is returned when the degree is smaller than one or
	// inconsistent with the number of coefficients.
	ErrInvalidDegree = errors.New("polynomial: invalid degree")
	// ErrZeroLeadingCoefficient is returned when coeffs[degree] is zero.
	ErrZeroLeadingCoefficient = errors.New("polynomial: zero leading coefficient")
	// ErrComplexRoot is returned when the polynomial has a non-real root.
	ErrComplexRoot = errors.New("polynomial: complex root")
)

// ComplexRootError reports a non-real root found by Roots.
type ComplexRootError struct {
	Root complex128
}

func (e *ComplexRootError) Error() string {
	return fmt.Sprintf("polynomial: complex root %v", e.Root)
}

// Unwrap returns ErrComplexRoot.
func (e *ComplexRootError) Unwrap() error {
	return ErrComplexRoot
}

// Companion returns the degree x degree companion matrix of the polynomial
// with coefficients coeffs[:degree+1], in column-major order: ones on the
// subdiagonal and -coeffs[i]/coeffs[degree] in the last column.
// Its characteristic polynomial is the monic version of the input.
func Companion(coeffs []float64, degree int) (a []float64) {

	n := degree

	a = make([]float64, n*n)

	for i := 1; i < n; i++ {
		a[i+n*(i-1)] = 1
	}

	lead := coeffs[n]
	for i := 0; i < n; i++ {
		a[i+n*(n-1)] = -coeffs[i] / lead
	}

	return
}

// Roots returns the degree roots of the polynomial with coefficients
// coeffs[:degree+1] (coeffs[i] multiplying x^i), computed as the eigenvalues of
// its companion matrix with solver. The roots are returned in the order of the solver.
//
// All roots must be real: if an eigenvalue has an imaginary part larger than
// tol * max(1, |lambda|), a *ComplexRootError is returned. A non-positive tol
// selects DefaultImaginaryTolerance.
func Roots(coeffs []float64, degree int, solver eigen.General, tol float64) (roots []float64, err error) {

	if degree < 1 || len(coeffs) < degree+1 {
		return nil, fmt.Errorf("cannot Roots: degree=%d with %d coefficients: %w", degree, len(coeffs), ErrInvalidDegree)
	}

	if coeffs[degree] == 0 {
		return nil, fmt.Errorf("cannot Roots: %w", ErrZeroLeadingCoefficient)
	}

	if tol <= 0 {
		tol = DefaultImaginaryTolerance
	}

	n := degree

	// Consumed by the solver.
	a := Companion(coeffs, degree)

	work := make([]float64, solver.Workspace(n))

	wr := make([]float64, n)
	wi := make([]float64, n)

	if err = solver.Eigenvalues(n, a, wr, wi, work); err != nil {
		return nil, fmt.Errorf("cannot Roots: %w", err)
	}

	for i := range wr {
		if math.Abs(wi[i]) > tol*math.Max(1, math.Hypot(wr[i], wi[i])) {
			return nil, fmt.Errorf("cannot Roots: %w", &ComplexRootError{Root: complex(wr[i], wi[i])})
		}
	}

	return wr, nil
}
