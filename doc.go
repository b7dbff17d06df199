// Package imagebuf provides an allocation-aware container for multi-channel
// pixel data with copy-on-write mutation semantics.
//
// The core type is [Channel], one rectangular plane of fixed-size pixel
// elements. A channel is backed by one of two storage strategies: an
// exclusively owned buffer that can be reclaimed without copying, or a
// reference-counted buffer that can be shared cheaply between many channels.
// Mutation always goes through the copy-on-write gate: a uniquely referenced
// buffer is mutated in place, an aliased buffer is copied first.
//
// Channels aggregate into an [Image], a list of same-dimensioned channels.
// A planar image built from one contiguous buffer carves that buffer into N
// channels sharing one allocation, each with independent copy-on-write
// accounting, so mutating one channel never disturbs its siblings.
//
// [DynamicChannel] and [DynamicImage] carry channels whose element type is
// only known at runtime, tagged with a [Kind] from the closed set of
// supported element types (uint8, uint16, float32). They convert back to
// statically typed channels via [Specialize] and [SpecializeImage], which
// return the input unchanged on mismatch so no data is lost.
//
// Basic usage:
//
//	ch := imagebuf.NewChannel([]uint8{0, 64, 128, 192}, 2, 2)
//	cl := ch.Clone()
//	px := ch.MutBuffer() // copy-on-write: cl keeps reading the old data
//	px[0] = 255
//
// Conversion to and from the standard library's image package is provided by
// [FromImage] and [ToImage].
package imagebuf
