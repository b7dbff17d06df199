package imagebuf

import "fmt"

// DynamicImage is a runtime-sized collection of dynamic channels. Unlike
// Image it does not enforce shape consistency on construction: channels may
// be replaced freely, and consistency is validated when the image is
// specialized back to a static type.
type DynamicImage struct {
	channels []DynamicChannel
}

// EraseImage wraps a statically typed image for runtime dispatch. The image
// moves into the wrapper and must not be used directly afterwards.
func EraseImage[T Element](img Image[T]) DynamicImage {
	channels := img.IntoChannels()
	out := make([]DynamicChannel, len(channels))
	for i := range channels {
		out[i] = EraseChannel(channels[i])
	}
	return DynamicImage{channels: out}
}

// DynamicImageFromChannels assembles dynamic channels into a dynamic image
// without validation.
func DynamicImageFromChannels(channels []DynamicChannel) DynamicImage {
	return DynamicImage{channels: channels}
}

// SpecializeImage narrows a dynamic image to a static element type, channel
// count, and pixel-element count. Requesting fewer channels than present
// succeeds with the leading channels (taking RGB from a dynamic RGBA is
// allowed); requesting more fails. On any mismatch the returned
// *SpecializeImageError carries the input back unchanged.
//
// On success the wrapper is consumed and must not be used afterwards.
func SpecializeImage[T Element](d DynamicImage, channels, elems int) (Image[T], error) {
	if channels <= 0 {
		panic("imagebuf: image must have at least one channel")
	}
	if len(d.channels) < channels {
		return Image[T]{}, &SpecializeImageError{
			Image:    d,
			Reason:   TooFewChannels,
			Index:    len(d.channels),
			Expected: fmt.Sprint(channels),
			Actual:   fmt.Sprint(len(d.channels)),
		}
	}

	want := kindOf[T]()
	typed := make([]Channel[T], channels)
	for i := 0; i < channels; i++ {
		ch, ok := d.channels[i].ch.(*Channel[T])
		if !ok {
			return Image[T]{}, &SpecializeImageError{
				Image:    d,
				Reason:   KindMismatch,
				Index:    i,
				Expected: want.String(),
				Actual:   d.channels[i].Kind().String(),
			}
		}
		if ch.PixelElems() != elems {
			return Image[T]{}, &SpecializeImageError{
				Image:    d,
				Reason:   PixelElemsMismatch,
				Index:    i,
				Expected: fmt.Sprint(elems),
				Actual:   fmt.Sprint(ch.PixelElems()),
			}
		}
		typed[i] = *ch
	}

	first := Dimensions{typed[0].Width(), typed[0].Height()}
	for i := 1; i < channels; i++ {
		got := Dimensions{typed[i].Width(), typed[i].Height()}
		if got != first {
			return Image[T]{}, &SpecializeImageError{
				Image:    d,
				Reason:   MixedChannelSizes,
				Index:    i,
				Expected: first.String(),
				Actual:   got.String(),
			}
		}
	}

	// Channels beyond the requested count stay owned by nobody reachable;
	// drop their claims so a narrowed RGBA does not leak its alpha plane.
	for i := channels; i < len(d.channels); i++ {
		d.channels[i].Release()
	}
	return Image[T]{channels: typed}, nil
}

// ChannelCount returns the number of channels.
func (d DynamicImage) ChannelCount() int { return len(d.channels) }

// Channel returns the i-th dynamic channel.
func (d DynamicImage) Channel(i int) DynamicChannel { return d.channels[i] }

// SetChannel replaces the i-th channel. The previous channel's storage claim
// passes to the caller.
func (d DynamicImage) SetChannel(i int, ch DynamicChannel) DynamicChannel {
	old := d.channels[i]
	d.channels[i] = ch
	return old
}

// Clone duplicates every channel; sharing semantics follow Channel.Clone.
func (d DynamicImage) Clone() DynamicImage {
	out := make([]DynamicChannel, len(d.channels))
	for i := range d.channels {
		out[i] = d.channels[i].Clone()
	}
	return DynamicImage{channels: out}
}

// Release drops every channel's claim on its storage.
func (d DynamicImage) Release() {
	for i := range d.channels {
		d.channels[i].Release()
	}
}

// Equal reports whether two dynamic images have the same channel count and
// pairwise equal channels, tags compared first.
func (d DynamicImage) Equal(other DynamicImage) bool {
	if len(d.channels) != len(other.channels) {
		return false
	}
	for i := range d.channels {
		if !d.channels[i].Equal(other.channels[i]) {
			return false
		}
	}
	return true
}

func (d DynamicImage) String() string {
	return fmt.Sprintf("DynamicImage(channels=%d)", len(d.channels))
}
