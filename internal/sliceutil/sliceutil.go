// Package sliceutil provides small generic slice helpers
// that the standard slices package does not cover.
package sliceutil

// Transform applies f to every element of from
// and returns the results in a new slice of the same length.
// A nil or empty input yields a nil slice.
func Transform[From, To any](from []From, f func(From) To) []To {
	if len(from) == 0 {
		return nil
	}
	to := make([]To, len(from))
	for i, v := range from {
		to[i] = f(v)
	}
	return to
}

// RemoveCommonPrefix removes the shared prefix from the two provided slices,
// returning what remains for each slice as the result.
func RemoveCommonPrefix[T comparable](a, b []T) (newA, newB []T) {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i:], b[i:]
		}
	}
	switch na, nb := len(a), len(b); {
	case na < nb:
		return nil, b[na:]
	case na > nb:
		return a[nb:], nil
	default:
		return nil, nil
	}
}
