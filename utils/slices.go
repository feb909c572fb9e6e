// Package utils implements various helper functions.
package utils

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// Alias1D returns true if x and y share the same base array.
// Taken from http://golang.org/src/pkg/math/big/nat.go#L340 .
func Alias1D[V any](x, y []V) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}

// SortSlice sorts a slice in place.
func SortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}

// SortByKey sorts keys in increasing order and applies the same
// permutation to values. Both slices must have the same length.
func SortByKey[K constraints.Ordered, V any](keys []K, values []V) {

	if len(keys) != len(values) {
		panic("cannot SortByKey: keys and values of different lengths")
	}

	sort.Sort(&pairs[K, V]{keys: keys, values: values})
}

type pairs[K constraints.Ordered, V any] struct {
	keys   []K
	values []V
}

func (p *pairs[K, V]) Len() int {
	return len(p.keys)
}

func (p *pairs[K, V]) Less(i, j int) bool {
	return p.keys[i] < p.keys[j]
}

func (p *pairs[K, V]) Swap(i, j int) {
	p.keys[i], p.keys[j] = p.keys[j], p.keys[i]
	p.values[i], p.values[j] = p.values[j], p.values[i]
}

// MaxAbsSlice returns max |s[i]|, or zero for an empty slice.
func MaxAbsSlice[T constraints.Float](s []T) (max T) {
	for i := range s {
		if a := T(math.Abs(float64(s[i]))); a > max {
			max = a
		}
	}
	return
}

// IsSortedSlice returns true if s is sorted in increasing order.
func IsSortedSlice[T constraints.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}
