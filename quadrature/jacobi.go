package quadrature

import (
	"fmt"
	"math"

	"github.com/tuneinsight/ghquad/eigen"
)

// HermiteJacobi returns the n x n symmetric tridiagonal matrix similar to the
// Jacobi matrix of the Hermite polynomials.
//
// The monic polynomials p_i = H_i / 2^i satisfy
//
//	p_{i+1}(x) + (B_i - x) p_i(x) + A_i p_{i-1}(x) = 0, with B_i = 0 and A_i = i/2,
//
// hence J_{i,i} = B_i = 0 and J_{i+1,i} = J_{i,i+1} = sqrt(A_{i+1}) = sqrt((i+1)/2).
func HermiteJacobi(n int) (T eigen.Tridiagonal) {

	if n < 1 {
		panic(fmt.Errorf("cannot HermiteJacobi: n=%d < 1", n))
	}

	T = eigen.NewTridiagonal(n)

	for i := range T.E {
		T.E[i] = math.Sqrt(float64(i+1) / 2)
	}

	return
}
