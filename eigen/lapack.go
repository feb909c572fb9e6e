package eigen

import (
	"fmt"

	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/gonum"
)

// LAPACK is a General solver backed by the pure Go LAPACK implementation of gonum (Dgeev).
type LAPACK struct{}

// Workspace queries Dgeev for its optimal workspace size.
func (LAPACK) Workspace(n int) int {

	if n < 0 {
		panic(fmt.Errorf("cannot Workspace: n=%d < 0", n))
	}

	work := []float64{0}
	gonum.Implementation{}.Dgeev(lapack.LeftEVNone, lapack.RightEVNone, n, nil, max(1, n), nil, nil, nil, 1, nil, 1, work, -1)
	return int(work[0])
}

// Eigenvalues implements General.
// gonum stores matrices in row-major order, so the column-major input is
// seen as its transpose, which has the same eigenvalues.
func (LAPACK) Eigenvalues(n int, a, wr, wi, work []float64) (err error) {

	if err = checkGeneral(n, a, wr, wi); err != nil {
		return
	}

	if n == 0 {
		return
	}

	if len(work) < max(1, 3*n) {
		return fmt.Errorf("cannot Eigenvalues: len(work)=%d < %d: %w", len(work), max(1, 3*n), ErrDimension)
	}

	if first := (gonum.Implementation{}).Dgeev(lapack.LeftEVNone, lapack.RightEVNone, n, a, n, wr, wi, nil, 1, nil, 1, work, len(work)); first > 0 {
		return fmt.Errorf("cannot Eigenvalues: Dgeev converged for %d/%d eigenvalues: %w", n-first, n, ErrNoConvergence)
	}

	return
}

func checkGeneral(n int, a, wr, wi []float64) error {
	switch {
	case n < 0:
		return fmt.Errorf("cannot Eigenvalues: n=%d < 0: %w", n, ErrDimension)
	case len(a) < n*n:
		return fmt.Errorf("cannot Eigenvalues: len(a)=%d < n*n=%d: %w", len(a), n*n, ErrDimension)
	case len(wr) < n || len(wi) < n:
		return fmt.Errorf("cannot Eigenvalues: len(wr)=%d, len(wi)=%d < n=%d: %w", len(wr), len(wi), n, ErrDimension)
	}
	return nil
}
