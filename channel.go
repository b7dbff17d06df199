package imagebuf

import "fmt"

// Channel is one rectangular plane of same-typed pixel elements. Its view
// always holds exactly width*height*pixelElems elements; the backing
// strategy decides how that storage is owned, cloned, and released.
//
// Read access through Buffer is always O(1). Mutation goes through
// MutBuffer, which copies first unless the storage is uniquely referenced.
// A channel must be finished with Release (or consumed by IntoBuffer)
// exactly once; afterwards it must not be used.
type Channel[T Element] struct {
	view   []T
	width  int
	height int
	elems  int
	b      backing[T]
}

// NewChannel wraps buf as an exclusively owned channel with one element per
// position. No copy is made; the channel adopts the buffer, and the caller
// must not use buf afterwards.
//
// Panics if width or height is not positive or len(buf) != width*height.
func NewChannel[T Element](buf []T, width, height int) Channel[T] {
	return NewPixelChannel(buf, width, height, 1)
}

// NewPixelChannel wraps buf as an exclusively owned channel with elems
// elements per position (interleaved layout, e.g. 3 for packed RGB). No
// copy is made.
//
// Panics if the dimensions are not positive, elems is outside 1..255, or
// len(buf) != width*height*elems.
func NewPixelChannel[T Element](buf []T, width, height, elems int) Channel[T] {
	checkChannelArgs(len(buf), width, height, elems)
	return Channel[T]{
		view:   buf,
		width:  width,
		height: height,
		elems:  elems,
		b:      &exclusive[T]{buf: buf},
	}
}

// NewSharedChannel wraps a reference-counted slice as a shared channel with
// elems elements per position. No copy is made. The handle's reference moves
// into the channel; clone the handle first to keep using it.
//
// Panics like NewPixelChannel on invalid dimensions or length.
func NewSharedChannel[T Element](s *Shared[T], width, height, elems int) Channel[T] {
	buf := s.take()
	checkChannelArgs(len(buf.data), width, height, elems)
	return Channel[T]{
		view:   buf.data,
		width:  width,
		height: height,
		elems:  elems,
		b:      &shared[T]{buf: buf},
	}
}

// Width returns the channel width in pixels.
func (c *Channel[T]) Width() int { return c.width }

// Height returns the channel height in pixels.
func (c *Channel[T]) Height() int { return c.height }

// PixelElems returns the number of elements per pixel position.
func (c *Channel[T]) PixelElems() int { return c.elems }

// Len returns the number of pixel positions (width * height).
func (c *Channel[T]) Len() int { return c.width * c.height }

// FlatLen returns the number of elements (width * height * PixelElems).
func (c *Channel[T]) FlatLen() int { return c.width * c.height * c.elems }

// Buffer returns the channel's elements for reading. The slice stays valid
// until the channel is mutated, released, or consumed. Callers must not
// write through it; use MutBuffer instead.
func (c *Channel[T]) Buffer() []T {
	return c.view
}

// Pixel returns the elements of one pixel position as a subslice of the
// channel's storage. Like Buffer, the result is read-only.
func (c *Channel[T]) Pixel(x, y int) []T {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		panic("imagebuf: pixel coordinates out of range")
	}
	i := (y*c.width + x) * c.elems
	return c.view[i : i+c.elems : i+c.elems]
}

// MutBuffer returns a mutable view of the channel's elements. If the
// backing storage is aliased by other channels, its contents are copied
// into a fresh exclusive allocation first, so writes never become visible
// through clones. O(1) when the storage is uniquely referenced, O(n)
// otherwise.
func (c *Channel[T]) MutBuffer() []T {
	c.b, c.view = c.b.makeMut(c.view)
	return c.view
}

// Clone duplicates the logical view. Shared-backed channels share storage
// with the clone in O(1); exclusively backed channels copy into a fresh
// reference-counted buffer, because two channels cannot both own one
// allocation exclusively.
func (c *Channel[T]) Clone() Channel[T] {
	b, view := c.b.clone(c.view)
	return Channel[T]{
		view:   view,
		width:  c.width,
		height: c.height,
		elems:  c.elems,
		b:      b,
	}
}

// IntoBuffer consumes the channel and returns its elements as an owned
// slice. An exclusively backed channel hands back its original allocation
// without copying; any other backing performs exactly one copy. The channel
// must not be used afterwards.
func (c *Channel[T]) IntoBuffer() []T {
	if ex, ok := c.b.(*exclusive[T]); ok {
		c.b, c.view = nil, nil
		return ex.disown()
	}
	out := make([]T, len(c.view))
	copy(out, c.view)
	c.Release()
	return out
}

// Release drops the channel's claim on its storage. The active backing
// strategy's release operation runs exactly once; calling Release again is
// a no-op. Reference-counted storage is recycled when the last claim is
// dropped.
func (c *Channel[T]) Release() {
	if c.b == nil {
		return
	}
	c.b.release()
	c.b, c.view = nil, nil
}

// Equal reports whether two channels have the same dimensions, the same
// number of elements per position, and elementwise equal contents. Storage
// identity is never compared.
func (c *Channel[T]) Equal(other *Channel[T]) bool {
	if c.width != other.width || c.height != other.height || c.elems != other.elems {
		return false
	}
	for i, v := range c.view {
		if other.view[i] != v {
			return false
		}
	}
	return true
}

func (c *Channel[T]) String() string {
	return fmt.Sprintf("Channel(%dx%d, elems=%d, kind=%s)", c.width, c.height, c.elems, kindOf[T]())
}

// The methods below let a statically typed channel live behind the
// runtime-tagged DynamicChannel.

func (c *Channel[T]) kind() Kind { return kindOf[T]() }

func (c *Channel[T]) cloneDynamic() anyChannel {
	cl := c.Clone()
	return &cl
}

func (c *Channel[T]) equalDynamic(other anyChannel) bool {
	o, ok := other.(*Channel[T])
	return ok && c.Equal(o)
}
