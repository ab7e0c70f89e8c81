package util

// Map returns a slice holding mapFn applied to every element of s.
// A nil s results in a nil slice.
func Map[T, U any](s []T, mapFn func(T) U) []U {
	if s == nil {
		return nil
	}
	mapped := make([]U, len(s))
	for i, v := range s {
		mapped[i] = mapFn(v)
	}
	return mapped
}

// FirstOrNil returns a pointer to the first element of s or nil if s is empty.
// The pointer aliases the backing array of s.
func FirstOrNil[T any](s []T) *T {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}
