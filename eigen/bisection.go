package eigen

import (
	"fmt"
	"math"

	"github.com/tuneinsight/ghquad/utils"
	"github.com/tuneinsight/ghquad/utils/sampling"
)

const (
	ulp = 0x1p-52

	// DefaultInverseIterations is the default number of inverse iteration
	// steps performed per eigenvector before the Rayleigh quotient refinement.
	DefaultInverseIterations = 3

	// maxBisections bounds the number of Sturm bisections per eigenvalue.
	maxBisections = 256

	// clusterTolerance is the relative (to the norm of T) distance under which
	// two eigenvalues are treated as clustered and their eigenvectors reorthogonalized.
	clusterTolerance = 1e-3
)

// Bisection is a SymmetricRange solver in the manner of LAPACK's dstevx:
// eigenvalues are located by bisection on Sturm counts, eigenvectors are computed
// by inverse iteration, with reorthogonalization inside clusters. Memory usage
// is O(n) besides the eigenvector buffer.
type Bisection struct {
	// Key seeds the deterministic PRNG drawing the starting vectors
	// of the inverse iterations. A nil key is valid.
	Key []byte
	// Iterations is the number of inverse iteration steps per eigenvector.
	// A value <= 0 selects DefaultInverseIterations.
	Iterations int
}

// EigenRange implements SymmetricRange.
// A non-positive abstol is replaced by ulp * ||T||.
func (b Bisection) EigenRange(T Tridiagonal, lower, upper, abstol float64, z []float64, capacity int) (w []float64, err error) {

	if err = checkRange(T, lower, upper, z, capacity); err != nil {
		return
	}

	if utils.Alias1D(z, T.D) || utils.Alias1D(z, T.E) {
		panic("cannot EigenRange: z aliases T")
	}

	n := T.N()
	norm := T.Norm()
	s := newSturm(T)

	if abstol <= 0 {
		abstol = ulp * norm
	}

	// Clamps the range to the Gershgorin interval, which does not change the counts.
	gl, gu := T.Gershgorin()
	pad := 2*ulp*math.Max(norm, 1) + 2*s.pivmin
	lo := math.Max(lower, gl-pad)
	hi := math.Min(upper, gu+pad)

	if lo >= hi {
		return []float64{}, nil
	}

	il, iu := s.count(lo), s.count(hi)
	m := iu - il

	if m > capacity {
		return nil, fmt.Errorf("cannot EigenRange: found %d eigenvalues in (%g, %g] for a capacity of %d: %w", m, lower, upper, capacity, ErrCapacityExceeded)
	}

	w = make([]float64, m)
	brackets := make([][2]float64, m)

	a := lo
	for j := 0; j < m; j++ {
		k := il + j
		left, right := a, hi
		for it := 0; it < maxBisections; it++ {
			if right-left <= math.Max(abstol, math.Max(2*ulp*math.Max(math.Abs(left), math.Abs(right)), s.pivmin)) {
				break
			}
			mid := left + (right-left)/2
			if s.count(mid) > k {
				right = mid
			} else {
				left = mid
			}
		}
		w[j] = left + (right-left)/2
		brackets[j] = [2]float64{left, right}
		a = left
	}

	iterations := b.Iterations
	if iterations <= 0 {
		iterations = DefaultInverseIterations
	}

	prng, err := sampling.NewKeyedPRNG(b.Key)
	if err != nil {
		return nil, fmt.Errorf("cannot EigenRange: %w", err)
	}

	it := newInverseIteration(T, norm)
	tmp := make([]float64, n)
	restol := 16 * math.Max(abstol, ulp*norm)
	ortol := clusterTolerance * norm

	for j := 0; j < m; j++ {

		v := z[j*n : (j+1)*n]
		sampling.Float64Slice(prng, v, -1, 1)

		// Start of the cluster w[first:j] the eigenvector must be orthogonal to.
		first := j
		for first > 0 && w[j]-w[first-1] <= ortol {
			first--
		}

		lambda := w[j]
		it.factorize(lambda)

		for i := 0; i < iterations; i++ {
			if err = it.step(v, z, first, j); err != nil {
				return nil, fmt.Errorf("cannot EigenRange: eigenvalue %d (%g): %w", j, lambda, err)
			}
		}

		// Rayleigh quotient refinement, kept only if it stays inside the bisection bracket.
		T.MulVec(tmp, v)
		if rq := dot(v, tmp); rq >= brackets[j][0] && rq <= brackets[j][1] && rq != lambda {
			lambda = rq
			it.factorize(lambda)
			if err = it.step(v, z, first, j); err != nil {
				return nil, fmt.Errorf("cannot EigenRange: eigenvalue %d (%g): %w", j, lambda, err)
			}
			T.MulVec(tmp, v)
		}

		var res float64
		for i := range tmp {
			r := tmp[i] - lambda*v[i]
			res += r * r
		}

		if res = math.Sqrt(res); res > restol {
			return nil, fmt.Errorf("cannot EigenRange: eigenvalue %d (%g): residual %g > %g: %w", j, lambda, res, restol, ErrNoConvergence)
		}

		w[j] = lambda
	}

	return
}

// inverseIteration holds the LU factorization with partial pivoting of T - lambda*I,
// following the layout of LAPACK's dgttrf: dl holds the multipliers, d the diagonal
// of U, du and du2 its first and second superdiagonals.
type inverseIteration struct {
	T    Tridiagonal
	tiny float64
	dl   []float64
	d    []float64
	du   []float64
	du2  []float64
	swap []bool
}

func newInverseIteration(T Tridiagonal, norm float64) *inverseIteration {
	n := T.N()
	return &inverseIteration{
		T:    T,
		tiny: ulp * math.Max(norm, 1),
		dl:   make([]float64, max(n-1, 0)),
		d:    make([]float64, n),
		du:   make([]float64, max(n-1, 0)),
		du2:  make([]float64, max(n-2, 0)),
		swap: make([]bool, max(n-1, 0)),
	}
}

func (it *inverseIteration) factorize(lambda float64) {

	n := it.T.N()
	dl, d, du, du2 := it.dl, it.d, it.du, it.du2

	for i := 0; i < n; i++ {
		d[i] = it.T.D[i] - lambda
	}
	copy(dl, it.T.E)
	copy(du, it.T.E)
	for i := range du2 {
		du2[i] = 0
	}

	for i := 0; i < n-1; i++ {
		if math.Abs(d[i]) >= math.Abs(dl[i]) {
			it.swap[i] = false
			if d[i] != 0 {
				fact := dl[i] / d[i]
				dl[i] = fact
				d[i+1] -= fact * du[i]
			}
		} else {
			it.swap[i] = true
			fact := d[i] / dl[i]
			d[i] = dl[i]
			dl[i] = fact
			tmp := du[i]
			du[i] = d[i+1]
			d[i+1] = tmp - fact*d[i+1]
			if i < n-2 {
				du2[i] = du[i+1]
				du[i+1] = -fact * du[i+1]
			}
		}
	}

	// Exactly singular pivots are perturbed: the shift is an eigenvalue
	// approximation, so U is expected to be numerically singular.
	for i := range d {
		if math.Abs(d[i]) < it.tiny {
			d[i] = math.Copysign(it.tiny, d[i])
		}
	}
}

// solve overwrites b with the solution of (T - lambda*I) x = b.
func (it *inverseIteration) solve(b []float64) {

	n := len(b)
	dl, d, du, du2 := it.dl, it.d, it.du, it.du2

	for i := 0; i < n-1; i++ {
		if !it.swap[i] {
			b[i+1] -= dl[i] * b[i]
		} else {
			tmp := b[i]
			b[i] = b[i+1]
			b[i+1] = tmp - dl[i]*b[i]
		}
	}

	b[n-1] /= d[n-1]
	if n > 1 {
		b[n-2] = (b[n-2] - du[n-2]*b[n-1]) / d[n-2]
	}
	for i := n - 3; i >= 0; i-- {
		b[i] = (b[i] - du[i]*b[i+1] - du2[i]*b[i+2]) / d[i]
	}
}

// step performs one inverse iteration on v, orthogonalizes it against the
// eigenvectors first..last-1 stored in z and normalizes it.
func (it *inverseIteration) step(v, z []float64, first, last int) error {

	n := len(v)

	// Rescales to avoid overflows in the solve.
	if scale := utils.MaxAbsSlice(v); scale > 0 {
		for i := range v {
			v[i] /= scale
		}
	}

	it.solve(v)

	for k := first; k < last; k++ {
		u := z[k*n : (k+1)*n]
		c := dot(u, v)
		for i := range v {
			v[i] -= c * u[i]
		}
	}

	return normalize(v)
}

func dot(u, v []float64) (s float64) {
	for i := range u {
		s += u[i] * v[i]
	}
	return
}

// normalize scales v to unit length.
func normalize(v []float64) error {

	scale := utils.MaxAbsSlice(v)

	if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return fmt.Errorf("degenerate iterate: %w", ErrNoConvergence)
	}

	var norm float64
	for i := range v {
		v[i] /= scale
		norm += v[i] * v[i]
	}

	if norm = math.Sqrt(norm); math.IsNaN(norm) || math.IsInf(norm, 0) {
		return fmt.Errorf("degenerate iterate: %w", ErrNoConvergence)
	}

	for i := range v {
		v[i] /= norm
	}

	return nil
}
