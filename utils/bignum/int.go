package bignum

import (
	"fmt"
	"math/big"
)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, int64, int, *big.Float or *big.Int.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		y.SetString(x, 0)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case int64:
		y.SetInt64(x)
	case int:
		y.SetInt64(int64(x))
	case *big.Float:
		x.Int(y)
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot Newint: accepted types are string, uint, uint64, int, int64, *big.Float, *big.Int, but is %T", x))
	}

	return
}

// Factorial returns n! as a *big.Int.
func Factorial(n int) (f *big.Int) {

	if n < 0 {
		panic(fmt.Sprintf("cannot Factorial: n=%d < 0", n))
	}

	f = NewInt(1)

	if n < 2 {
		return
	}

	return f.MulRange(2, int64(n))
}

// Float64 rounds x to the nearest float64.
func Float64(x *big.Int) (f float64) {
	f, _ = new(big.Float).SetInt(x).Float64()
	return
}
