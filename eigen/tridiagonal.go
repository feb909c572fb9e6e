package eigen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// safmin is the smallest normalized float64.
const safmin = 0x1p-1022

// Tridiagonal is a symmetric tridiagonal matrix given by its diagonal D
// and its subdiagonal E, with len(E) = len(D) - 1.
type Tridiagonal struct {
	D []float64
	E []float64
}

// NewTridiagonal allocates a zero n x n symmetric tridiagonal matrix.
func NewTridiagonal(n int) Tridiagonal {
	if n < 1 {
		panic(fmt.Errorf("cannot NewTridiagonal: n=%d < 1", n))
	}
	return Tridiagonal{
		D: make([]float64, n),
		E: make([]float64, n-1),
	}
}

// N returns the dimension of the matrix.
func (T Tridiagonal) N() int {
	return len(T.D)
}

// Validate checks the consistency of the dimensions of T.
func (T Tridiagonal) Validate() error {
	if len(T.D) == 0 {
		return fmt.Errorf("empty diagonal: %w", ErrDimension)
	}
	if len(T.E) != len(T.D)-1 {
		return fmt.Errorf("len(E)=%d but len(D)=%d: %w", len(T.E), len(T.D), ErrDimension)
	}
	return nil
}

// Clone returns a deep copy of T.
func (T Tridiagonal) Clone() Tridiagonal {
	D := make([]float64, len(T.D))
	E := make([]float64, len(T.E))
	copy(D, T.D)
	copy(E, T.E)
	return Tridiagonal{D: D, E: E}
}

// Norm returns the infinity norm (largest absolute row sum) of T.
func (T Tridiagonal) Norm() (norm float64) {
	n := T.N()
	for i := 0; i < n; i++ {
		r := math.Abs(T.D[i])
		if i > 0 {
			r += math.Abs(T.E[i-1])
		}
		if i < n-1 {
			r += math.Abs(T.E[i])
		}
		norm = math.Max(norm, r)
	}
	return
}

// Gershgorin returns an interval [lo, hi] containing all the eigenvalues of T.
func (T Tridiagonal) Gershgorin() (lo, hi float64) {
	n := T.N()
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		var r float64
		if i > 0 {
			r += math.Abs(T.E[i-1])
		}
		if i < n-1 {
			r += math.Abs(T.E[i])
		}
		lo = math.Min(lo, T.D[i]-r)
		hi = math.Max(hi, T.D[i]+r)
	}
	return
}

// Count returns the number of eigenvalues of T smaller than or equal to x,
// evaluated with a Sturm sequence.
func (T Tridiagonal) Count(x float64) int {
	return newSturm(T).count(x)
}

// CountRange returns the number of eigenvalues of T in (lower, upper].
func (T Tridiagonal) CountRange(lower, upper float64) int {
	s := newSturm(T)
	return s.count(upper) - s.count(lower)
}

// MulVec sets dst = T * v.
func (T Tridiagonal) MulVec(dst, v []float64) {
	n := T.N()
	for i := 0; i < n; i++ {
		s := T.D[i] * v[i]
		if i > 0 {
			s += T.E[i-1] * v[i-1]
		}
		if i < n-1 {
			s += T.E[i] * v[i+1]
		}
		dst[i] = s
	}
}

// Dense returns T as a dense symmetric matrix.
func (T Tridiagonal) Dense() *mat.SymDense {
	n := T.N()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		sym.SetSym(i, i, T.D[i])
		if i < n-1 {
			sym.SetSym(i, i+1, T.E[i])
		}
	}
	return sym
}

// sturm holds the precomputed quantities of the Sturm sequence of a
// symmetric tridiagonal matrix.
type sturm struct {
	d      []float64
	e2     []float64
	pivmin float64
}

func newSturm(T Tridiagonal) (s sturm) {
	s.d = T.D
	s.e2 = make([]float64, len(T.E))
	var max float64
	for i, e := range T.E {
		s.e2[i] = e * e
		max = math.Max(max, s.e2[i])
	}
	s.pivmin = safmin * math.Max(1, max)
	return
}

// count returns the number of negative pivots of the LDL^T factorization
// of T - xI, i.e. the number of eigenvalues smaller than or equal to x.
func (s sturm) count(x float64) (c int) {
	q := s.d[0] - x
	if math.Abs(q) < s.pivmin {
		q = -s.pivmin
	}
	if q <= 0 {
		c++
	}
	for i := 1; i < len(s.d); i++ {
		q = s.d[i] - x - s.e2[i-1]/q
		if math.Abs(q) < s.pivmin {
			q = -s.pivmin
		}
		if q <= 0 {
			c++
		}
	}
	return
}
