package eigen

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense is a General solver backed by gonum's mat.Eigen. It needs no workspace.
type Dense struct{}

// Workspace implements General.
func (Dense) Workspace(n int) int {
	return 0
}

// Eigenvalues implements General.
func (Dense) Eigenvalues(n int, a, wr, wi, work []float64) (err error) {

	if err = checkGeneral(n, a, wr, wi); err != nil {
		return
	}

	if n == 0 {
		return
	}

	m := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			m.Set(i, j, a[i+j*n])
		}
	}

	var eig mat.Eigen
	if ok := eig.Factorize(m, mat.EigenNone); !ok {
		return fmt.Errorf("cannot Eigenvalues: mat.Eigen: %w", ErrNoConvergence)
	}

	for i, v := range eig.Values(nil) {
		wr[i], wi[i] = real(v), imag(v)
	}

	return
}

// DenseSymmetric is a SymmetricRange solver that factorizes the full matrix
// with gonum's mat.EigenSym and keeps the eigenpairs in range. It requires
// O(n²) memory and is meant for small matrices and cross-checks.
type DenseSymmetric struct{}

// EigenRange implements SymmetricRange. abstol is ignored: eigenvalues are
// computed to working precision.
func (DenseSymmetric) EigenRange(T Tridiagonal, lower, upper, abstol float64, z []float64, capacity int) (w []float64, err error) {

	if err = checkRange(T, lower, upper, z, capacity); err != nil {
		return
	}

	n := T.N()

	var eig mat.EigenSym
	if ok := eig.Factorize(T.Dense(), true); !ok {
		return nil, fmt.Errorf("cannot EigenRange: mat.EigenSym: %w", ErrNoConvergence)
	}

	values := eig.Values(nil)

	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	for _, v := range values {
		if v > lower && v <= upper {
			w = append(w, v)
		}
	}

	if len(w) > capacity {
		return nil, fmt.Errorf("cannot EigenRange: found %d eigenvalues in (%g, %g] for a capacity of %d: %w", len(w), lower, upper, capacity, ErrCapacityExceeded)
	}

	var k int
	for j, v := range values {
		if v > lower && v <= upper {
			for i := 0; i < n; i++ {
				z[k*n+i] = vectors.At(i, j)
			}
			k++
		}
	}

	return
}

func checkRange(T Tridiagonal, lower, upper float64, z []float64, capacity int) error {
	if err := T.Validate(); err != nil {
		return fmt.Errorf("cannot EigenRange: %w", err)
	}
	if !(lower < upper) {
		return fmt.Errorf("cannot EigenRange: (%g, %g]: %w", lower, upper, ErrRange)
	}
	if capacity < 0 || len(z) < capacity*T.N() {
		return fmt.Errorf("cannot EigenRange: len(z)=%d < capacity*n=%d: %w", len(z), capacity*T.N(), ErrDimension)
	}
	return nil
}
