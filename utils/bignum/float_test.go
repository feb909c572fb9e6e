package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	testFunc1("Log", 1.4142135623730951, math.Log, Log, 1e-15, t)
	testFunc1("Exp", 1.4142135623730951, math.Exp, Exp, 1e-15, t)

	t.Run("Pi", func(t *testing.T) {
		y, _ := Pi(53).Float64()
		require.Equal(t, math.Pi, y)
	})

	t.Run("Log2", func(t *testing.T) {
		y, _ := Log2(53).Float64()
		require.Equal(t, math.Ln2, y)
	})

	t.Run("LogFactorial", func(t *testing.T) {
		for _, n := range []int{0, 1, 2, 5, 20, 170} {
			lgamma, _ := math.Lgamma(float64(n + 1))
			y, _ := LogFactorial(n, 128).Float64()
			require.InDelta(t, lgamma, y, 1e-12*math.Max(1, lgamma))
		}
	})
}

func TestInt(t *testing.T) {
	require.Equal(t, "1", Factorial(0).String())
	require.Equal(t, "1", Factorial(1).String())
	require.Equal(t, "120", Factorial(5).String())
	require.Equal(t, "2432902008176640000", Factorial(20).String())
	require.Panics(t, func() { Factorial(-1) })

	require.Equal(t, 0, NewInt("0x10").Cmp(NewInt(16)))
	require.Equal(t, 120.0, Float64(Factorial(5)))
}

func testFunc1(name string, x float64, f func(x float64) (y float64), g func(x *big.Float) (y *big.Float), delta float64, t *testing.T) {
	t.Run(name, func(t *testing.T) {
		y, _ := g(NewFloat(x, 53)).Float64()
		require.InDelta(t, f(x), y, delta)
	})
}
