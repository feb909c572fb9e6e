// Package eigen defines the two eigensolver capabilities used by the quadrature
// solvers and provides implementations for them:
//
//   - General: eigenvalues of a dense real nonsymmetric matrix, following the
//     LAPACK "query workspace, then compute" protocol. Implemented by LAPACK
//     (gonum's pure Go Dgeev) and Dense (gonum mat.Eigen).
//   - SymmetricRange: eigenvalues and unit eigenvectors of a symmetric tridiagonal
//     matrix restricted to a value range, written into a caller-sized buffer.
//     Implemented by Bisection (Sturm bisection and inverse iteration, O(n) memory
//     per eigenvector) and DenseSymmetric (gonum mat.EigenSym, O(n²) memory).
//
// Matrices handed to a solver are owned by it for the duration of the call and
// may be overwritten: callers must not reuse them afterwards.
package eigen

import (
	"errors"
)

var (
	// ErrNoConvergence is returned when a solver fails to converge.
	ErrNoConvergence = errors.New("eigen: no convergence")
	// ErrCapacityExceeded is returned when a SymmetricRange solver finds more
	// eigenvalues than the eigenvector buffer can hold.
	ErrCapacityExceeded = errors.New("eigen: eigenvector capacity exceeded")
	// ErrDimension is returned on inconsistent matrix or buffer dimensions.
	ErrDimension = errors.New("eigen: dimension mismatch")
	// ErrRange is returned when lower >= upper.
	ErrRange = errors.New("eigen: empty range")
)

// General computes the eigenvalues of real n x n matrices.
type General interface {
	// Workspace returns the length of the work buffer Eigenvalues needs for
	// an n x n matrix.
	Workspace(n int) int

	// Eigenvalues computes the eigenvalues of the n x n column-major matrix a,
	// writing their real parts into wr and imaginary parts into wi.
	// The content of a is destroyed.
	Eigenvalues(n int, a, wr, wi, work []float64) (err error)
}

// SymmetricRange computes eigenpairs of symmetric tridiagonal matrices whose
// eigenvalues lie in a given range.
type SymmetricRange interface {
	// EigenRange returns, in ascending order, the M eigenvalues of T in (lower, upper]
	// computed to the absolute tolerance abstol, and writes the associated unit
	// eigenvectors into z, eigenvector i occupying z[i*n:(i+1)*n] where n = T.N().
	// z must have length at least capacity*n. If M > capacity, an error wrapping
	// ErrCapacityExceeded is returned and z is left unspecified.
	// The content of T is destroyed.
	EigenRange(T Tridiagonal, lower, upper, abstol float64, z []float64, capacity int) (w []float64, err error)
}
