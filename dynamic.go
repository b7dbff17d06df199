package imagebuf

import "fmt"

// anyChannel is the capability set a statically typed channel exposes to the
// runtime-tagged wrapper. Only *Channel[T] implements it.
type anyChannel interface {
	Width() int
	Height() int
	PixelElems() int
	Release()
	String() string

	kind() Kind
	cloneDynamic() anyChannel
	equalDynamic(anyChannel) bool
}

// DynamicChannel wraps a channel whose element type is only known at
// runtime. The tag always matches the element type of the wrapped channel;
// the pixel-elements-per-position becomes a runtime value. Convert back to a
// statically typed channel with Specialize.
type DynamicChannel struct {
	k  Kind
	ch anyChannel
}

// EraseChannel wraps a statically typed channel for runtime dispatch. The
// channel moves into the wrapper and must not be used directly afterwards.
func EraseChannel[T Element](c Channel[T]) DynamicChannel {
	return DynamicChannel{k: kindOf[T](), ch: &c}
}

// Specialize narrows a dynamic channel back to a static element type and
// pixel-element count. On success the wrapper is consumed and the typed
// channel returned. On mismatch the returned *SpecializeError carries the
// input back unchanged, so the caller can retry with a different target.
func Specialize[T Element](d DynamicChannel, elems int) (Channel[T], error) {
	want := kindOf[T]()
	ch, ok := d.ch.(*Channel[T])
	if !ok {
		return Channel[T]{}, &SpecializeError{
			Channel:  d,
			Reason:   KindMismatch,
			Expected: want.String(),
			Actual:   d.k.String(),
		}
	}
	if ch.PixelElems() != elems {
		return Channel[T]{}, &SpecializeError{
			Channel:  d,
			Reason:   PixelElemsMismatch,
			Expected: fmt.Sprint(elems),
			Actual:   fmt.Sprint(ch.PixelElems()),
		}
	}
	return *ch, nil
}

// Kind returns the runtime element type tag.
func (d DynamicChannel) Kind() Kind { return d.k }

// Width returns the channel width in pixels.
func (d DynamicChannel) Width() int { return d.ch.Width() }

// Height returns the channel height in pixels.
func (d DynamicChannel) Height() int { return d.ch.Height() }

// PixelElems returns the number of elements per pixel position.
func (d DynamicChannel) PixelElems() int { return d.ch.PixelElems() }

// Clone duplicates the wrapped channel with the same sharing semantics as
// Channel.Clone.
func (d DynamicChannel) Clone() DynamicChannel {
	return DynamicChannel{k: d.k, ch: d.ch.cloneDynamic()}
}

// Release drops the wrapped channel's claim on its storage.
func (d DynamicChannel) Release() {
	d.ch.Release()
}

// Equal reports whether two dynamic channels have the same element type and
// equal wrapped channels. The tag is discriminated first.
func (d DynamicChannel) Equal(other DynamicChannel) bool {
	return d.k == other.k && d.ch.equalDynamic(other.ch)
}

func (d DynamicChannel) String() string {
	return fmt.Sprintf("Dynamic%s", d.ch.String())
}
