// Package hermite implements the physicists' Hermite polynomials H_n, defined by the
// three-term recurrence
//
//	H_0(x) = 1, H_1(x) = 2x, H_{i+1}(x) = 2x H_i(x) - 2i H_{i-1}(x).
//
// Coefficients are generated exactly on *big.Int and only rounded to float64 on output,
// while point evaluation runs the recurrence directly in O(n) time and O(1) space.
package hermite

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/tuneinsight/ghquad/utils/bignum"
)

var (
	// ErrEmptyInput is returned by Values when one of the inputs is empty.
	ErrEmptyInput = errors.New("hermite: empty input")
	// ErrNegativeDegree is returned by Values when a degree is negative.
	ErrNegativeDegree = errors.New("hermite: negative degree")
)

// CoefficientsInt returns the n+1 exact coefficients of H_n, index i holding
// the coefficient of x^i.
func CoefficientsInt(n int) (coeffs []*big.Int) {

	if n < 0 {
		panic(fmt.Errorf("cannot CoefficientsInt: n=%d < 0", n))
	}

	switch n {
	case 0:
		return []*big.Int{bignum.NewInt(1)}
	case 1:
		return []*big.Int{bignum.NewInt(0), bignum.NewInt(2)}
	}

	// Triangular table, row i holds the i+1 coefficients of H_i.
	table := make([][]*big.Int, n+1)
	table[0] = []*big.Int{bignum.NewInt(1)}
	table[1] = []*big.Int{bignum.NewInt(0), bignum.NewInt(2)}

	tmp := new(big.Int)
	for i := 2; i <= n; i++ {

		prev, prevprev := table[i-1], table[i-2]
		factor := bignum.NewInt(2 * (i - 1))

		row := make([]*big.Int, i+1)

		// order 0: -2(i-1) H_{i-2}[0]
		row[0] = new(big.Int).Mul(factor, prevprev[0])
		row[0].Neg(row[0])

		for j := 1; j <= i; j++ {
			row[j] = new(big.Int).Lsh(prev[j-1], 1)
			if j < len(prevprev) {
				row[j].Sub(row[j], tmp.Mul(factor, prevprev[j]))
			}
		}

		table[i] = row
	}

	return table[n]
}

// Coefficients returns the n+1 coefficients of H_n as float64, index i holding
// the coefficient of x^i.
func Coefficients(n int) (coeffs []float64) {

	if n < 0 {
		panic(fmt.Errorf("cannot Coefficients: n=%d < 0", n))
	}

	switch n {
	case 0:
		return []float64{1}
	case 1:
		return []float64{0, 2}
	}

	exact := CoefficientsInt(n)
	coeffs = make([]float64, n+1)
	for i := range exact {
		coeffs[i] = bignum.Float64(exact[i])
	}

	return
}

// Value returns H_n(x).
func Value(x float64, n int) float64 {

	if n < 0 {
		panic(fmt.Errorf("cannot Value: n=%d < 0", n))
	}

	switch n {
	case 0:
		return 1
	case 1:
		return 2 * x
	}

	hnm2, hnm1 := 1.0, 2*x

	var hn float64
	for i := 2; i <= n; i++ {
		hn = 2*x*hnm1 - 2*float64(i-1)*hnm2
		hnm2, hnm1 = hnm1, hn
	}

	return hn
}

// ValueBig returns H_n(x) computed with the precision of x.
func ValueBig(x *big.Float, n int) (hn *big.Float) {

	if n < 0 {
		panic(fmt.Errorf("cannot ValueBig: n=%d < 0", n))
	}

	prec := x.Prec()

	hnm2 := bignum.NewFloat(1, prec)
	hnm1 := bignum.NewFloat(x, prec)
	hnm1.Add(hnm1, hnm1)

	switch n {
	case 0:
		return hnm2
	case 1:
		return hnm1
	}

	twoX := new(big.Float).SetPrec(prec).Add(x, x)
	tmp := new(big.Float).SetPrec(prec)

	for i := 2; i <= n; i++ {
		hn = new(big.Float).SetPrec(prec).Mul(twoX, hnm1)
		tmp.Mul(bignum.NewFloat(2*(i-1), prec), hnm2)
		hn.Sub(hn, tmp)
		hnm2, hnm1 = hnm1, hn
	}

	return hn
}

// Values evaluates H_n(x) elementwise.
// If x and n have the same length, h[i] = H_{n[i]}(x[i]).
// Otherwise the shorter input is reduced to its first element and broadcast:
// h[i] = H_{n[0]}(x[i]) if len(x) > len(n), else h[i] = H_{n[i]}(x[0]).
func Values(x []float64, n []int) (h []float64, err error) {

	if len(x) == 0 || len(n) == 0 {
		return nil, fmt.Errorf("cannot Values: len(x)=%d, len(n)=%d: %w", len(x), len(n), ErrEmptyInput)
	}

	for i := range n {
		if n[i] < 0 {
			return nil, fmt.Errorf("cannot Values: n[%d]=%d: %w", i, n[i], ErrNegativeDegree)
		}
	}

	switch {
	case len(x) == len(n):
		h = make([]float64, len(x))
		for i := range x {
			h[i] = Value(x[i], n[i])
		}
	case len(x) > len(n):
		h = make([]float64, len(x))
		for i := range x {
			h[i] = Value(x[i], n[0])
		}
	default:
		h = make([]float64, len(n))
		for i := range n {
			h[i] = Value(x[0], n[i])
		}
	}

	return
}
