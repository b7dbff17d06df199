package imagebuf

import (
	"encoding/binary"
	"fmt"
	"image"
)

// FromImage converts a standard library image into a DynamicImage without
// loss. Tightly packed pixel buffers are adopted without copying; sub-images
// and padded strides are copied row by row. 16-bit formats are decoded from
// the big-endian layout the image package uses.
//
// The channel carries only element kind and layout, not the source's color
// model: NRGBA, RGBA and CMYK all become a 4-element uint8 channel, and
// ToImage reconstructs that shape as NRGBA. Callers round-tripping
// premultiplied or CMYK data must track the color model themselves.
//
// Malformed input (zero dimensions, truncated pixel buffers) and pixel
// formats without a counterpart here are reported as *ConvertError, never by
// panicking: external images are data, not programmer state.
func FromImage(img image.Image) (DynamicImage, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return DynamicImage{}, &ConvertError{Reason: ZeroDimension, Format: fmt.Sprintf("%T", img)}
	}

	switch im := img.(type) {
	case *image.Gray:
		return fromPix8(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 1, im)
	case *image.Alpha:
		return fromPix8(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 1, im)
	case *image.NRGBA:
		return fromPix8(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 4, im)
	case *image.RGBA:
		return fromPix8(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 4, im)
	case *image.CMYK:
		return fromPix8(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 4, im)
	case *image.Gray16:
		return fromPix16(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 1, im)
	case *image.Alpha16:
		return fromPix16(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 1, im)
	case *image.NRGBA64:
		return fromPix16(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 4, im)
	case *image.RGBA64:
		return fromPix16(im.Pix, im.PixOffset(b.Min.X, b.Min.Y), im.Stride, w, h, 4, im)
	default:
		return DynamicImage{}, &ConvertError{Reason: UnsupportedFormat, Format: fmt.Sprintf("%T", img)}
	}
}

// fromPix8 wraps an 8-bit pixel buffer as a single-channel dynamic image
// with elems elements per position.
func fromPix8(pix []uint8, offset, stride, w, h, elems int, src image.Image) (DynamicImage, error) {
	row := w * elems
	need := offset + (h-1)*stride + row
	if len(pix) < need {
		return DynamicImage{}, &ConvertError{
			Reason:   IncompatibleBufferSize,
			Format:   fmt.Sprintf("%T", src),
			Expected: need,
			Actual:   len(pix),
		}
	}

	var buf []uint8
	if offset == 0 && stride == row && len(pix) == h*row {
		// Tightly packed: adopt the image's storage without copying.
		buf = pix
	} else {
		buf = make([]uint8, h*row)
		for y := 0; y < h; y++ {
			copy(buf[y*row:(y+1)*row], pix[offset+y*stride:])
		}
	}
	ch := NewPixelChannel(buf, w, h, elems)
	return DynamicImage{channels: []DynamicChannel{EraseChannel(ch)}}, nil
}

// fromPix16 decodes a big-endian 16-bit pixel buffer into a single-channel
// dynamic image with elems elements per position. Always one copy.
func fromPix16(pix []uint8, offset, stride, w, h, elems int, src image.Image) (DynamicImage, error) {
	row := w * elems * 2
	need := offset + (h-1)*stride + row
	if len(pix) < need {
		return DynamicImage{}, &ConvertError{
			Reason:   IncompatibleBufferSize,
			Format:   fmt.Sprintf("%T", src),
			Expected: need,
			Actual:   len(pix),
		}
	}

	buf := make([]uint16, h*w*elems)
	i := 0
	for y := 0; y < h; y++ {
		line := pix[offset+y*stride : offset+y*stride+row]
		for x := 0; x < row; x += 2 {
			buf[i] = binary.BigEndian.Uint16(line[x:])
			i++
		}
	}
	ch := NewPixelChannel(buf, w, h, elems)
	return DynamicImage{channels: []DynamicChannel{EraseChannel(ch)}}, nil
}

// ToImage converts a single-channel dynamic image back into the standard
// library image type matching its element kind and pixel layout:
//
//	uint8,  1 element  -> *image.Gray
//	uint8,  4 elements -> *image.NRGBA
//	uint16, 1 element  -> *image.Gray16
//	uint16, 4 elements -> *image.NRGBA64
//
// 8-bit conversions reclaim the channel's buffer without copying when it is
// exclusively owned. Shapes without a standard library counterpart (float32
// elements, planar multi-channel, 2 or 3 elements per position) are reported
// as *ConvertError; planar images can be made convertible with Interleave.
//
// Dynamic images do not remember which color model they came from, so
// 4-element uint8 data is always rebuilt as non-premultiplied NRGBA, even
// when FromImage read it from an RGBA or CMYK source. The bytes pass through
// unaltered; only the tag differs.
//
// On success the dynamic image is consumed and must not be used afterwards.
func ToImage(d DynamicImage) (image.Image, error) {
	if len(d.channels) != 1 {
		return nil, &ConvertError{
			Reason: UnsupportedFormat,
			Format: fmt.Sprintf("%d-channel planar image", len(d.channels)),
		}
	}
	dc := d.channels[0]
	w, h, elems := dc.Width(), dc.Height(), dc.PixelElems()
	rect := image.Rect(0, 0, w, h)

	switch ch := dc.ch.(type) {
	case *Channel[uint8]:
		switch elems {
		case 1:
			return &image.Gray{Pix: ch.IntoBuffer(), Stride: w, Rect: rect}, nil
		case 4:
			return &image.NRGBA{Pix: ch.IntoBuffer(), Stride: 4 * w, Rect: rect}, nil
		}
	case *Channel[uint16]:
		switch elems {
		case 1:
			return &image.Gray16{Pix: toBigEndian(ch), Stride: 2 * w, Rect: rect}, nil
		case 4:
			return &image.NRGBA64{Pix: toBigEndian(ch), Stride: 8 * w, Rect: rect}, nil
		}
	}
	return nil, &ConvertError{
		Reason: UnsupportedFormat,
		Format: fmt.Sprintf("%sx%d", dc.Kind(), elems),
	}
}

// toBigEndian consumes a 16-bit channel into the byte layout the image
// package expects.
func toBigEndian(ch *Channel[uint16]) []uint8 {
	src := ch.Buffer()
	out := make([]uint8, 2*len(src))
	for i, v := range src {
		binary.BigEndian.PutUint16(out[2*i:], v)
	}
	ch.Release()
	return out
}
