package imagebuf

import (
	"sync/atomic"

	"github.com/mineichen/image-buffer/internal/pool"
)

// backing is the storage strategy behind a Channel. The three operations are
// resolved from the strategy value alone; the element type is carried by the
// type parameter. Strategies may rebind the channel to a different strategy
// (copy-on-write promotes shared storage to exclusive storage), so clone and
// makeMut return the backing and view the channel should use afterwards.
type backing[T Element] interface {
	// clone duplicates the logical view for a second channel. The returned
	// backing and view belong to the new channel; the receiver is unchanged
	// apart from reference accounting.
	clone(view []T) (backing[T], []T)

	// makeMut ensures the view may be written through. Exclusive storage is
	// a no-op; shared storage copies unless it is the only live reference.
	makeMut(view []T) (backing[T], []T)

	// release drops this channel's claim on the storage. Runs exactly once
	// per channel.
	release()
}

// Per-element-type pools for buffers allocated internally (copy-on-write
// copies, clone targets). Buffers handed in by callers are never pooled.
var (
	u8Pool  pool.Buffers[uint8]
	u16Pool pool.Buffers[uint16]
	f32Pool pool.Buffers[float32]
)

func getBuf[T Element](n int) []T {
	var z T
	switch any(z).(type) {
	case uint8:
		return any(u8Pool.Get(n)).([]T)
	case uint16:
		return any(u16Pool.Get(n)).([]T)
	default:
		return any(f32Pool.Get(n)).([]T)
	}
}

func putBuf[T Element](s []T) {
	switch s := any(s).(type) {
	case []uint8:
		u8Pool.Put(s)
	case []uint16:
		u16Pool.Put(s)
	case []float32:
		f32Pool.Put(s)
	}
}

// exclusive is the sole-owner strategy. The channel's view is the whole
// logical buffer; nobody else can observe it, so makeMut is free and release
// may recycle pool-allocated buffers.
type exclusive[T Element] struct {
	buf    []T
	pooled bool // buf came from internal/pool and may be recycled on release
}

func (e *exclusive[T]) clone(view []T) (backing[T], []T) {
	// Two channels cannot both own one allocation exclusively, so the clone
	// gets a fresh reference-counted copy. The receiver stays exclusive.
	data := getBuf[T](len(view))
	copy(data, view)
	sb := &sharedBuf[T]{data: data, pooled: true}
	sb.refs.Store(1)
	return &shared[T]{buf: sb}, data
}

func (e *exclusive[T]) makeMut(view []T) (backing[T], []T) {
	// Already unique.
	return e, view
}

func (e *exclusive[T]) release() {
	if e.pooled {
		putBuf(e.buf)
	}
	e.buf = nil
}

// disown detaches the buffer from the strategy without recycling it, for
// zero-copy handover to the caller.
func (e *exclusive[T]) disown() []T {
	buf := e.buf
	e.buf = nil
	e.pooled = false
	return buf
}

// sharedBuf is one reference-counted allocation. Clone and release of
// aliasing channels may run concurrently from multiple goroutines, so the
// count is atomic; the decrement that observes zero is the unique one that
// recycles the buffer.
type sharedBuf[T Element] struct {
	data     []T
	refs     atomic.Int64
	pooled   bool
	freeHook func() // invoked exactly once when the count reaches zero
}

func (b *sharedBuf[T]) retain() {
	b.refs.Add(1)
}

func (b *sharedBuf[T]) drop() {
	if b.refs.Add(-1) != 0 {
		return
	}
	if b.freeHook != nil {
		b.freeHook()
	}
	if b.pooled {
		putBuf(b.data)
	}
	b.data = nil
}

// shared is the reference-counted strategy: one claim on a sharedBuf.
type shared[T Element] struct {
	buf *sharedBuf[T]
}

func (s *shared[T]) clone(view []T) (backing[T], []T) {
	s.buf.retain()
	return &shared[T]{buf: s.buf}, view
}

func (s *shared[T]) makeMut(view []T) (backing[T], []T) {
	if s.buf.refs.Load() == 1 {
		// Only live reference: mutate in place. The channel stays tagged
		// shared but is effectively exclusive.
		return s, view
	}
	data := getBuf[T](len(view))
	copy(data, view)
	s.buf.drop()
	return &exclusive[T]{buf: data, pooled: true}, data
}

func (s *shared[T]) release() {
	s.buf.drop()
}

// Shared is an exported handle to a reference-counted element slice, the
// input accepted by NewSharedChannel. Constructing a channel from the handle
// moves the handle's reference into the channel; clone the handle first to
// keep using it.
type Shared[T Element] struct {
	buf *sharedBuf[T]
}

// NewShared wraps data in a reference-counted allocation without copying.
// The caller must not write through data afterwards; all mutation goes
// through the channel copy-on-write gate.
func NewShared[T Element](data []T) *Shared[T] {
	sb := &sharedBuf[T]{data: data}
	sb.refs.Store(1)
	return &Shared[T]{buf: sb}
}

// Clone returns a second handle to the same allocation.
func (s *Shared[T]) Clone() *Shared[T] {
	s.buf.retain()
	return &Shared[T]{buf: s.buf}
}

// Data returns a read-only view of the shared slice.
func (s *Shared[T]) Data() []T {
	return s.buf.data
}

// Release drops the handle's reference. The handle must not be used
// afterwards.
func (s *Shared[T]) Release() {
	if s.buf == nil {
		return
	}
	s.buf.drop()
	s.buf = nil
}

// take moves the handle's reference out, invalidating the handle.
func (s *Shared[T]) take() *sharedBuf[T] {
	buf := s.buf
	if buf == nil {
		panic("imagebuf: use of spent Shared handle")
	}
	s.buf = nil
	return buf
}
