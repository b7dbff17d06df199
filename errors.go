package imagebuf

import "fmt"

// Dimensions is a width/height pair, used in error reporting.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// ImageErrorReason enumerates why channels could not be assembled into an
// image.
type ImageErrorReason uint8

const (
	// MixedDimensions means two channels disagreed on width or height.
	MixedDimensions ImageErrorReason = iota
	// MixedPixelElems means two channels disagreed on elements per position.
	MixedPixelElems
)

// IncompatibleImageError is returned when channels cannot be assembled into
// an image. The rejected channels are carried back unmodified so the caller
// keeps its data; A and B describe the first conflicting pair.
type IncompatibleImageError[T Element] struct {
	Channels []Channel[T]
	Reason   ImageErrorReason
	A, B     Dimensions
	AElems   int
	BElems   int
}

func (e *IncompatibleImageError[T]) Error() string {
	if e.Reason == MixedPixelElems {
		return fmt.Sprintf("imagebuf: incompatible image: mixed pixel elements %d and %d", e.AElems, e.BElems)
	}
	return fmt.Sprintf("imagebuf: incompatible image: mixed channel sizes %s and %s", e.A, e.B)
}

// SpecializeReason enumerates why a dynamic channel or image could not be
// narrowed to the requested static type.
type SpecializeReason uint8

const (
	// KindMismatch means the runtime element type differs from the
	// requested one.
	KindMismatch SpecializeReason = iota
	// PixelElemsMismatch means the runtime elements-per-position differs
	// from the requested one.
	PixelElemsMismatch
	// TooFewChannels means the dynamic image holds fewer channels than
	// requested.
	TooFewChannels
	// MixedChannelSizes means the dynamic image's channels disagree on
	// dimensions.
	MixedChannelSizes
)

func (r SpecializeReason) String() string {
	switch r {
	case KindMismatch:
		return "kind mismatch"
	case PixelElemsMismatch:
		return "pixel elements mismatch"
	case TooFewChannels:
		return "too few channels"
	case MixedChannelSizes:
		return "mixed channel sizes"
	default:
		return "unknown"
	}
}

// SpecializeError is returned when a DynamicChannel does not match the
// requested static type. Channel carries the input back unchanged.
type SpecializeError struct {
	Channel DynamicChannel
	Reason  SpecializeReason

	// Expected and Actual hold the mismatching kind or pixel-element
	// values, depending on Reason.
	Expected, Actual string
}

func (e *SpecializeError) Error() string {
	return fmt.Sprintf("imagebuf: cannot specialize channel: %s (expected %s, got %s)", e.Reason, e.Expected, e.Actual)
}

// SpecializeImageError is returned when a DynamicImage does not match the
// requested static shape. Image carries the input back unchanged; Index is
// the offending channel for per-channel reasons.
type SpecializeImageError struct {
	Image  DynamicImage
	Reason SpecializeReason
	Index  int

	Expected, Actual string
}

func (e *SpecializeImageError) Error() string {
	return fmt.Sprintf("imagebuf: cannot specialize image: %s at channel %d (expected %s, got %s)",
		e.Reason, e.Index, e.Expected, e.Actual)
}

// ConvertReason enumerates failures converting to or from the standard
// library image types.
type ConvertReason uint8

const (
	// ZeroDimension means the external image has zero width or height.
	ZeroDimension ConvertReason = iota
	// UnsupportedFormat means the pixel format has no counterpart on the
	// other side of the conversion.
	UnsupportedFormat
	// IncompatibleBufferSize means the external pixel buffer is shorter
	// than its declared dimensions require.
	IncompatibleBufferSize
)

func (r ConvertReason) String() string {
	switch r {
	case ZeroDimension:
		return "zero dimension"
	case UnsupportedFormat:
		return "unsupported format"
	case IncompatibleBufferSize:
		return "incompatible buffer size"
	default:
		return "unknown"
	}
}

// ConvertError reports a failed conversion between a DynamicImage and a
// standard library image. Malformed external input is always reported this
// way, never by panicking.
type ConvertError struct {
	Reason ConvertReason

	// Format names the offending pixel format or shape.
	Format string

	// Expected and Actual hold element counts for IncompatibleBufferSize.
	Expected, Actual int
}

func (e *ConvertError) Error() string {
	switch e.Reason {
	case IncompatibleBufferSize:
		return fmt.Sprintf("imagebuf: convert %s: expected %d elements, got %d", e.Format, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("imagebuf: convert %s: %s", e.Format, e.Reason)
	}
}
