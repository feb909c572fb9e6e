package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortSlice(t *testing.T) {
	s := []float64{3, -1, 2, 0}
	SortSlice(s)
	require.Equal(t, []float64{-1, 0, 2, 3}, s)
	require.True(t, IsSortedSlice(s))
	require.False(t, IsSortedSlice([]int{1, 3, 2}))
}

func TestSortByKey(t *testing.T) {
	keys := []float64{0.5, -2, 1, -0.5}
	values := []string{"a", "b", "c", "d"}
	SortByKey(keys, values)
	require.Equal(t, []float64{-2, -0.5, 0.5, 1}, keys)
	require.Equal(t, []string{"b", "d", "a", "c"}, values)

	require.Panics(t, func() { SortByKey([]int{1}, []int{}) })
}

func TestMaxAbsSlice(t *testing.T) {
	require.Equal(t, 0.0, MaxAbsSlice([]float64{}))
	require.Equal(t, 4.5, MaxAbsSlice([]float64{1, -4.5, 3}))
	require.Equal(t, float32(2), MaxAbsSlice([]float32{2, -1}))
}

func TestAlias1D(t *testing.T) {
	s := make([]float64, 8)
	require.True(t, Alias1D(s, s[2:]))
	require.False(t, Alias1D(s, make([]float64, 8)))
}
