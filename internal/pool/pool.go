// Package pool provides bucketed sync.Pool instances for reducing allocations
// on copy-on-write paths. Buffers are organized by size class (in elements,
// not bytes) to minimize waste.
package pool

import "sync"

// Size classes for bucketed pools, in elements.
const (
	Size256  = 256
	Size1K   = 1024
	Size4K   = 4096
	Size16K  = 16384
	Size64K  = 65536
	Size256K = 262144
	Size1M   = 1048576
)

var sizes = [7]int{Size256, Size1K, Size4K, Size16K, Size64K, Size256K, Size1M}

// bucketIndex returns the pool index for a given element count.
func bucketIndex(n int) int {
	switch {
	case n <= Size256:
		return 0
	case n <= Size1K:
		return 1
	case n <= Size4K:
		return 2
	case n <= Size16K:
		return 3
	case n <= Size64K:
		return 4
	case n <= Size256K:
		return 5
	default:
		return 6
	}
}

// Buffers is a set of bucketed pools for slices of one element type.
// The zero value is ready to use.
type Buffers[T any] struct {
	once  sync.Once
	pools [7]sync.Pool
}

func (p *Buffers[T]) init() {
	p.once.Do(func() {
		for i := range p.pools {
			sz := sizes[i]
			p.pools[i] = sync.Pool{
				New: func() any {
					s := make([]T, sz)
					return &s
				},
			}
		}
	})
}

// Get returns a slice of exactly n elements from the pool. The returned
// slice may have a larger capacity. The caller must call Put when done.
func (p *Buffers[T]) Get(n int) []T {
	p.init()
	idx := bucketIndex(n)
	sp := p.pools[idx].Get().(*[]T)
	s := *sp
	if cap(s) < n {
		s = make([]T, n)
		*sp = s
		return s
	}
	return s[:n]
}

// Put returns a slice to the pool. The slice must have been obtained from
// Get and must no longer be referenced. Slices with capacity below Size256
// are not pooled.
func (p *Buffers[T]) Put(s []T) {
	c := cap(s)
	if c < Size256 {
		return
	}
	p.init()
	idx := bucketIndex(c)
	s = s[:c]
	p.pools[idx].Put(&s)
}
