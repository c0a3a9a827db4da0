package filter

import "sort"

// Sort directions accepted by list pages.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Sort returns a sorted copy of items using less. The input slice is left
// untouched, same as Apply. The sort is stable so equal records keep their
// fetch order.
func Sort[T any](items []T, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Reversed adapts less for descending order.
func Reversed[T any](less func(a, b T) bool) func(a, b T) bool {
	return func(a, b T) bool { return less(b, a) }
}
