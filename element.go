package imagebuf

// Element is the closed set of pixel element types supported by this
// package: 8-bit and 16-bit unsigned samples and 32-bit float samples.
type Element interface {
	uint8 | uint16 | float32
}

// Kind identifies the element type of a runtime-typed channel.
type Kind uint8

// Supported element kinds.
const (
	KindUint8 Kind = iota
	KindUint16
	KindFloat32
)

func (k Kind) String() string {
	switch k {
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindFloat32:
		return "float32"
	default:
		return "unknown"
	}
}

// kindOf returns the runtime tag for a static element type.
func kindOf[T Element]() Kind {
	var z T
	switch any(z).(type) {
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	default:
		return KindFloat32
	}
}

// maxPixelElems bounds the pixel-elements-per-position value so it stays
// representable in compact layout descriptors.
const maxPixelElems = 255

// checkChannelArgs validates the constructor contract shared by all channel
// construction paths. Violations are programmer errors and abort immediately
// rather than surfacing as recoverable values.
func checkChannelArgs(bufLen, width, height, elems int) {
	if width <= 0 || height <= 0 {
		panic("imagebuf: width and height must be positive")
	}
	if elems <= 0 || elems > maxPixelElems {
		panic("imagebuf: pixel elements per position must be in 1..255")
	}
	if bufLen != width*height*elems {
		panic("imagebuf: incompatible buffer size")
	}
}
