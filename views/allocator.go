package views

import "sync/atomic"

// IDAllocator hands out model ids. Ids are never reused within one allocator.
type IDAllocator struct {
	last atomic.Int64
}

// NewIDAllocator returns an allocator whose first id is start.
func NewIDAllocator(start int64) *IDAllocator {
	a := &IDAllocator{}
	a.last.Store(start - 1)
	return a
}

func (a *IDAllocator) Next() int64 {
	return a.last.Add(1)
}
