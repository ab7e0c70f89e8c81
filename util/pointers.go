package util

// ToPtr returns a pointer to a copy of a.
func ToPtr[T any](a T) *T {
	return &a
}

// EqPtrVals reports whether a and b are both nil or point to equal values.
// Optional filter bounds are compared with it.
func EqPtrVals[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
