package util

// MapKeys returns the keys of m in unspecified order.
// The returned slice is never nil.
func MapKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
