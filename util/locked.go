package util

import "sync"

// Locked guards a value of type T with a mutex.
// The value is only reachable inside Do, which makes every critical section explicit.
type Locked[T any] struct {
	mu    sync.Mutex
	value T
}

func NewLocked[T any](value T) *Locked[T] {
	return &Locked[T]{value: value}
}

// Do calls fn with exclusive access to the guarded value.
func (l *Locked[T]) Do(fn func(v *T) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(&l.value)
}

// Get returns the result of fn, called with exclusive access to the guarded value.
func Get[T, U any](l *Locked[T], fn func(v *T) U) U {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(&l.value)
}
