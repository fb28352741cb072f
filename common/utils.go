package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// RemoveFirst removes the first element equal to v, preserving the order of the rest.
//
// Parameters:
//   - s: the slice to remove from
//   - v: the value to remove
//
// Returns:
//   - []T: the shortened slice (shares the backing array with s)
//   - bool: false if v was not present
func RemoveFirst[T comparable](s []T, v T) ([]T, bool) {
	for i := range s {
		if s[i] == v {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1], true
		}
	}
	return s, false
}
