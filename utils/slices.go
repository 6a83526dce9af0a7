// Package utils contains generic helpers shared by the other packages.
package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// GetKeys returns the keys of the input map.
// Order is not guaranteed.
func GetKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {

	keys = make([]K, len(m))

	var i int
	for key := range m {
		keys[i] = key
		i++
	}

	return
}

// GetSortedKeys returns the sorted keys of a map.
func GetSortedKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {
	keys = GetKeys(m)
	SortSlice(keys)
	return
}

// SortSlice sorts a slice in place.
func SortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}

// IsStrictlyIncreasing returns true if s[i] < s[i+1] for all i.
func IsStrictlyIncreasing[T constraints.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if !(s[i-1] < s[i]) {
			return false
		}
	}
	return true
}

// Range returns the values start, start+step, ... that are smaller or equal to end.
// It returns nil if step is not positive or end < start.
func Range[T constraints.Integer](start, end, step T) (r []T) {

	if step <= 0 || end < start {
		return nil
	}

	r = make([]T, 0, int((end-start)/step)+1)
	for v := start; v <= end; v += step {
		r = append(r, v)
		// Guards the wrap-around when end is close to the maximum of T.
		if v > end-step {
			break
		}
	}

	return
}
