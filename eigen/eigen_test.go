package eigen_test

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/ghquad/eigen"
	"github.com/tuneinsight/ghquad/utils/sampling"
)

// laplacian returns the n x n matrix tridiag(-1, 2, -1), whose eigenvalues are
// 2 - 2cos(k*pi/(n+1)) for k = 1..n.
func laplacian(n int) eigen.Tridiagonal {
	T := eigen.NewTridiagonal(n)
	for i := range T.D {
		T.D[i] = 2
	}
	for i := range T.E {
		T.E[i] = -1
	}
	return T
}

func laplacianEigenvalues(n int) (w []float64) {
	w = make([]float64, n)
	for k := 1; k <= n; k++ {
		w[k-1] = 2 - 2*math.Cos(float64(k)*math.Pi/float64(n+1))
	}
	sort.Float64s(w)
	return
}

func randomTridiagonal(t *testing.T, n int, key string) eigen.Tridiagonal {
	prng, err := sampling.NewKeyedPRNG([]byte(key))
	require.NoError(t, err)
	T := eigen.NewTridiagonal(n)
	sampling.Float64Slice(prng, T.D, -1, 1)
	sampling.Float64Slice(prng, T.E, -1, 1)
	return T
}

func TestTridiagonal(t *testing.T) {

	t.Run("Validate", func(t *testing.T) {
		require.NoError(t, eigen.NewTridiagonal(1).Validate())
		require.ErrorIs(t, eigen.Tridiagonal{}.Validate(), eigen.ErrDimension)
		require.ErrorIs(t, eigen.Tridiagonal{D: []float64{1, 2}, E: []float64{1, 2}}.Validate(), eigen.ErrDimension)
		require.Panics(t, func() { eigen.NewTridiagonal(0) })
	})

	t.Run("Norm&Gershgorin", func(t *testing.T) {
		T := laplacian(5)
		require.Equal(t, 4.0, T.Norm())
		lo, hi := T.Gershgorin()
		require.Equal(t, 0.0, lo)
		require.Equal(t, 4.0, hi)
	})

	t.Run("Count", func(t *testing.T) {
		n := 17
		T := laplacian(n)
		w := laplacianEigenvalues(n)
		for k := range w {
			require.Equal(t, k, T.Count(w[k]-1e-9))
			require.Equal(t, k+1, T.Count(w[k]+1e-9))
		}
		require.Equal(t, 0, T.Count(-1))
		require.Equal(t, n, T.Count(5))
		require.Equal(t, 3, T.CountRange(w[4]+1e-9, w[7]+1e-9))
	})

	t.Run("MulVec", func(t *testing.T) {
		T := laplacian(3)
		dst := make([]float64, 3)
		T.MulVec(dst, []float64{1, 2, 3})
		require.Equal(t, []float64{0, 0, 4}, dst)
	})

	t.Run("Clone", func(t *testing.T) {
		T := laplacian(4)
		C := T.Clone()
		C.D[0] = 7
		require.Equal(t, 2.0, T.D[0])
	})
}

func TestGeneral(t *testing.T) {

	// Column-major companion matrix of (x-1)(x-2)(x-3)(x+4) = x^4 - 2x^3 - 13x^2 + 38x - 24.
	companion := func() []float64 {
		coeffs := []float64{-24, 38, -13, -2, 1}
		n := 4
		a := make([]float64, n*n)
		for i := 1; i < n; i++ {
			a[i+n*(i-1)] = 1
		}
		for i := 0; i < n; i++ {
			a[i+n*(n-1)] = -coeffs[i] / coeffs[n]
		}
		return a
	}

	for _, solver := range []eigen.General{eigen.LAPACK{}, eigen.Dense{}} {
		t.Run(fmt.Sprintf("%T", solver), func(t *testing.T) {

			n := 4
			work := make([]float64, solver.Workspace(n))
			wr, wi := make([]float64, n), make([]float64, n)

			require.NoError(t, solver.Eigenvalues(n, companion(), wr, wi, work))

			sort.Float64s(wr)
			require.True(t, cmp.Equal([]float64{-4, 1, 2, 3}, wr, cmpopts.EquateApprox(0, 1e-10)), wr)
			require.True(t, cmp.Equal(make([]float64, n), wi, cmpopts.EquateApprox(0, 1e-10)), wi)

			require.ErrorIs(t, solver.Eigenvalues(n, make([]float64, 3), wr, wi, work), eigen.ErrDimension)
			require.NoError(t, solver.Eigenvalues(0, nil, nil, nil, work))
		})
	}

	t.Run("LAPACK/Workspace", func(t *testing.T) {
		for _, n := range []int{1, 4, 32} {
			require.GreaterOrEqual(t, eigen.LAPACK{}.Workspace(n), 3*n)
		}
		require.ErrorIs(t, eigen.LAPACK{}.Eigenvalues(4, make([]float64, 16), make([]float64, 4), make([]float64, 4), []float64{0}), eigen.ErrDimension)
	})

	t.Run("ComplexPair", func(t *testing.T) {
		// x^2 + 1
		a := []float64{0, 1, -1, 0}
		wr, wi := make([]float64, 2), make([]float64, 2)
		require.NoError(t, eigen.LAPACK{}.Eigenvalues(2, a, wr, wi, make([]float64, eigen.LAPACK{}.Workspace(2))))
		sort.Float64s(wi)
		require.InDeltaSlice(t, []float64{-1, 1}, wi, 1e-12)
		require.InDeltaSlice(t, []float64{0, 0}, wr, 1e-12)
	})
}

func TestSymmetricRange(t *testing.T) {

	solvers := []eigen.SymmetricRange{eigen.Bisection{}, eigen.DenseSymmetric{}}

	for _, solver := range solvers {

		name := fmt.Sprintf("%T", solver)

		t.Run(name+"/Laplacian", func(t *testing.T) {
			n := 40
			want := laplacianEigenvalues(n)

			z := make([]float64, n*n)
			w, err := solver.EigenRange(laplacian(n), 1, 3, 0, z, n)
			require.NoError(t, err)

			var expected []float64
			for _, v := range want {
				if v > 1 && v <= 3 {
					expected = append(expected, v)
				}
			}
			require.InDeltaSlice(t, expected, w, 1e-12)

			T := laplacian(n)
			checkEigenpairs(t, T, w, z, 1e-10)
		})

		t.Run(name+"/FullRange", func(t *testing.T) {
			n := 25
			z := make([]float64, n*n)
			w, err := solver.EigenRange(laplacian(n), -1, 5, 0, z, n)
			require.NoError(t, err)
			require.InDeltaSlice(t, laplacianEigenvalues(n), w, 1e-12)
			checkEigenpairs(t, laplacian(n), w, z, 1e-10)
		})

		t.Run(name+"/Capacity", func(t *testing.T) {
			n := 30
			z := make([]float64, 5*n)
			_, err := solver.EigenRange(laplacian(n), 0, 4, 0, z, 5)
			require.ErrorIs(t, err, eigen.ErrCapacityExceeded)
		})

		t.Run(name+"/Errors", func(t *testing.T) {
			_, err := solver.EigenRange(laplacian(4), 1, 1, 0, make([]float64, 16), 4)
			require.ErrorIs(t, err, eigen.ErrRange)
			_, err = solver.EigenRange(laplacian(4), 0, 1, 0, make([]float64, 3), 4)
			require.ErrorIs(t, err, eigen.ErrDimension)
			_, err = solver.EigenRange(eigen.Tridiagonal{D: []float64{1}, E: []float64{1}}, 0, 1, 0, make([]float64, 16), 4)
			require.ErrorIs(t, err, eigen.ErrDimension)
		})

		t.Run(name+"/Scalar", func(t *testing.T) {
			z := make([]float64, 1)
			w, err := solver.EigenRange(eigen.Tridiagonal{D: []float64{0.5}, E: []float64{}}, -1, 1, 0, z, 1)
			require.NoError(t, err)
			require.InDeltaSlice(t, []float64{0.5}, w, 1e-15)
			require.InDelta(t, 1, math.Abs(z[0]), 1e-15)

			w, err = solver.EigenRange(eigen.Tridiagonal{D: []float64{2}, E: []float64{}}, -1, 1, 0, z, 1)
			require.NoError(t, err)
			require.Empty(t, w)
		})

		t.Run(name+"/Zero", func(t *testing.T) {
			z := make([]float64, 1)
			w, err := solver.EigenRange(eigen.NewTridiagonal(1), -4, 4, 0, z, 1)
			require.NoError(t, err)
			require.InDeltaSlice(t, []float64{0}, w, 1e-15)
			require.InDelta(t, 1, math.Abs(z[0]), 1e-15)

			n := 6
			z = make([]float64, n*n)
			w, err = solver.EigenRange(eigen.NewTridiagonal(n), -1, 1, 0, z, n)
			require.NoError(t, err)
			require.InDeltaSlice(t, make([]float64, n), w, 1e-15)
			checkEigenpairs(t, eigen.NewTridiagonal(n), w, z, 1e-12)
		})
	}

	t.Run("Bisection/Random", func(t *testing.T) {

		n := 60
		T := randomTridiagonal(t, n, "random-tridiagonal")

		zb := make([]float64, n*n)
		wb, err := eigen.Bisection{}.EigenRange(T.Clone(), -0.5, 0.75, 0, zb, n)
		require.NoError(t, err)

		zd := make([]float64, n*n)
		wd, err := eigen.DenseSymmetric{}.EigenRange(T.Clone(), -0.5, 0.75, 0, zd, n)
		require.NoError(t, err)

		require.Equal(t, len(wd), len(wb))
		require.InDeltaSlice(t, wd, wb, 1e-12)

		// Eigenvectors agree up to their sign.
		for j := range wb {
			var d float64
			for i := 0; i < n; i++ {
				d += zb[j*n+i] * zd[j*n+i]
			}
			require.InDelta(t, 1, math.Abs(d), 1e-8)
		}

		checkEigenpairs(t, T, wb, zb, 1e-10)
	})

	t.Run("Bisection/Tolerance", func(t *testing.T) {
		n := 40
		z := make([]float64, n*n)
		w, err := eigen.Bisection{}.EigenRange(laplacian(n), 0, 4, math.Sqrt(0x1p-52), z, n)
		require.NoError(t, err)
		require.InDeltaSlice(t, laplacianEigenvalues(n), w, 1e-8)
		checkEigenpairs(t, laplacian(n), w, z, 1e-7)
	})

	t.Run("Bisection/Deterministic", func(t *testing.T) {
		n := 50
		T := randomTridiagonal(t, n, "deterministic")
		z0, z1 := make([]float64, n*n), make([]float64, n*n)
		w0, err := eigen.Bisection{Key: []byte("k")}.EigenRange(T.Clone(), -1, 1, 0, z0, n)
		require.NoError(t, err)
		w1, err := eigen.Bisection{Key: []byte("k")}.EigenRange(T.Clone(), -1, 1, 0, z1, n)
		require.NoError(t, err)
		require.Equal(t, w0, w1)
		require.Equal(t, z0, z1)
	})

	t.Run("Bisection/Aliasing", func(t *testing.T) {
		T := laplacian(4)
		require.Panics(t, func() {
			_, _ = eigen.Bisection{}.EigenRange(T, 0, 4, 0, T.D, 1)
		})
	})
}

// checkEigenpairs checks that the vectors stored in z are orthonormal eigenvectors
// of T associated to w.
func checkEigenpairs(t *testing.T, T eigen.Tridiagonal, w, z []float64, delta float64) {
	n := T.N()
	tmp := make([]float64, n)
	for j := range w {
		v := z[j*n : (j+1)*n]
		T.MulVec(tmp, v)
		for i := range tmp {
			require.InDelta(t, w[j]*v[i], tmp[i], delta, "eigenpair %d", j)
		}
		for k := 0; k <= j; k++ {
			u := z[k*n : (k+1)*n]
			var d float64
			for i := range u {
				d += u[i] * v[i]
			}
			if k == j {
				require.InDelta(t, 1, d, delta)
			} else {
				require.InDelta(t, 0, d, delta)
			}
		}
	}
}
