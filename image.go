package imagebuf

import "fmt"

// Image is an ordered, non-empty collection of channels sharing identical
// width and height. The channels of a planar image built by NewImage share
// one allocation with independent copy-on-write accounting.
type Image[T Element] struct {
	channels []Channel[T]
}

// NewImage wraps a contiguous planar buffer as an image with the given
// number of channels. A single-channel image adopts the buffer exclusively;
// a multi-channel image carves the buffer into channels sharing one
// allocation. No copy is made either way.
//
// Panics if the dimensions or channel count are not positive or
// len(buf) != width*height*channels.
func NewImage[T Element](buf []T, width, height, channels int) Image[T] {
	if channels <= 0 {
		panic("imagebuf: image must have at least one channel")
	}
	if channels == 1 {
		return Image[T]{channels: []Channel[T]{NewChannel(buf, width, height)}}
	}
	return Image[T]{channels: SplitChannels(buf, width, height, channels)}
}

// NewInterleavedImage wraps buf as a single-channel image with elems
// elements per pixel position (e.g. 4 for packed RGBA). No copy is made.
func NewInterleavedImage[T Element](buf []T, width, height, elems int) Image[T] {
	return Image[T]{channels: []Channel[T]{NewPixelChannel(buf, width, height, elems)}}
}

// ImageFromChannels assembles channels into an image after validating that
// they agree on dimensions and pixel-element count. On mismatch the channels
// are returned unmodified inside the error, never dropped.
//
// Panics if channels is empty (programmer error); dimension disagreement is
// a recoverable condition because the channels may come from far away.
func ImageFromChannels[T Element](channels []Channel[T]) (Image[T], error) {
	if len(channels) == 0 {
		panic("imagebuf: image must have at least one channel")
	}
	first := Dimensions{channels[0].Width(), channels[0].Height()}
	for i := 1; i < len(channels); i++ {
		d := Dimensions{channels[i].Width(), channels[i].Height()}
		if d != first {
			return Image[T]{}, &IncompatibleImageError[T]{
				Channels: channels,
				Reason:   MixedDimensions,
				A:        first,
				B:        d,
			}
		}
		if channels[i].PixelElems() != channels[0].PixelElems() {
			return Image[T]{}, &IncompatibleImageError[T]{
				Channels: channels,
				Reason:   MixedPixelElems,
				A:        first,
				B:        d,
				AElems:   channels[0].PixelElems(),
				BElems:   channels[i].PixelElems(),
			}
		}
	}
	return Image[T]{channels: channels}, nil
}

// Width returns the width shared by all channels.
func (img *Image[T]) Width() int { return img.channels[0].Width() }

// Height returns the height shared by all channels.
func (img *Image[T]) Height() int { return img.channels[0].Height() }

// ChannelCount returns the number of channels.
func (img *Image[T]) ChannelCount() int { return len(img.channels) }

// PixelElems returns the elements per pixel position shared by all channels.
func (img *Image[T]) PixelElems() int { return img.channels[0].PixelElems() }

// PixelsPerChannel returns the number of pixel positions per channel.
func (img *Image[T]) PixelsPerChannel() int { return img.channels[0].Len() }

// Channel returns a pointer to the i-th channel. The channel stays owned by
// the image; clone it to take an independent reference.
func (img *Image[T]) Channel(i int) *Channel[T] { return &img.channels[i] }

// IntoChannels consumes the image and returns its channels. The image must
// not be used afterwards.
func (img *Image[T]) IntoChannels() []Channel[T] {
	channels := img.channels
	img.channels = nil
	return channels
}

// Buffers returns each channel's elements for reading.
func (img *Image[T]) Buffers() [][]T {
	out := make([][]T, len(img.channels))
	for i := range img.channels {
		out[i] = img.channels[i].Buffer()
	}
	return out
}

// MutBuffers returns a mutable view per channel, applying the copy-on-write
// gate to each channel independently.
func (img *Image[T]) MutBuffers() [][]T {
	out := make([][]T, len(img.channels))
	for i := range img.channels {
		out[i] = img.channels[i].MutBuffer()
	}
	return out
}

// IntoBuffer consumes the image and returns all elements as one owned
// slice. A single-channel image backed exclusively hands back its original
// allocation without copying; otherwise the channels are concatenated into
// one copy. The image must not be used afterwards.
func (img *Image[T]) IntoBuffer() []T {
	channels := img.IntoChannels()
	if len(channels) == 1 {
		return channels[0].IntoBuffer()
	}
	out := make([]T, 0, len(channels)*channels[0].FlatLen())
	for i := range channels {
		out = append(out, channels[i].Buffer()...)
		channels[i].Release()
	}
	return out
}

// Clone duplicates every channel; sharing semantics follow Channel.Clone.
func (img *Image[T]) Clone() Image[T] {
	channels := make([]Channel[T], len(img.channels))
	for i := range img.channels {
		channels[i] = img.channels[i].Clone()
	}
	return Image[T]{channels: channels}
}

// Release drops every channel's claim on its storage.
func (img *Image[T]) Release() {
	for i := range img.channels {
		img.channels[i].Release()
	}
	img.channels = nil
}

// Equal reports whether two images have the same channel count and pairwise
// equal channels.
func (img *Image[T]) Equal(other *Image[T]) bool {
	if len(img.channels) != len(other.channels) {
		return false
	}
	for i := range img.channels {
		if !img.channels[i].Equal(&other.channels[i]) {
			return false
		}
	}
	return true
}

func (img *Image[T]) String() string {
	return fmt.Sprintf("Image(%dx%d, channels=%d, kind=%s)",
		img.Width(), img.Height(), len(img.channels), kindOf[T]())
}

// Interleave converts a planar image into a single-channel interleaved
// image: pixel position p of the result holds channel 0..N-1 of position p.
// The input is read only; the result owns a fresh buffer.
func Interleave[T Element](img *Image[T]) Image[T] {
	n := len(img.channels)
	if n == 1 && img.PixelElems() == 1 {
		buf := make([]T, img.channels[0].FlatLen())
		copy(buf, img.channels[0].Buffer())
		return NewInterleavedImage(buf, img.Width(), img.Height(), 1)
	}
	if img.PixelElems() != 1 {
		panic("imagebuf: interleave requires planar channels")
	}
	pixels := img.PixelsPerChannel()
	buf := make([]T, pixels*n)
	for c := range img.channels {
		src := img.channels[c].Buffer()
		for p := 0; p < pixels; p++ {
			buf[p*n+c] = src[p]
		}
	}
	return NewInterleavedImage(buf, img.Width(), img.Height(), n)
}

// Deinterleave converts a single-channel interleaved image into a planar
// image with one channel per pixel element. The input is read only; the
// result owns a fresh buffer.
func Deinterleave[T Element](img *Image[T]) Image[T] {
	if len(img.channels) != 1 {
		panic("imagebuf: deinterleave requires a single interleaved channel")
	}
	elems := img.PixelElems()
	if elems == 1 {
		buf := make([]T, img.channels[0].FlatLen())
		copy(buf, img.channels[0].Buffer())
		return NewImage(buf, img.Width(), img.Height(), 1)
	}
	pixels := img.PixelsPerChannel()
	src := img.channels[0].Buffer()
	buf := make([]T, pixels*elems)
	for p := 0; p < pixels; p++ {
		for c := 0; c < elems; c++ {
			buf[c*pixels+p] = src[p*elems+c]
		}
	}
	return NewImage(buf, img.Width(), img.Height(), elems)
}
