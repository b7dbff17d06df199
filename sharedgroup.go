package imagebuf

import "sync/atomic"

// sharedGroup is one contiguous allocation carved into several logical
// slices, each served to an independent channel. The global count tracks how
// many channels reference any part of the allocation and gates recycling;
// the per-slice counts decide copy-on-write uniqueness per channel, so one
// slice can be mutated in place while a sibling slice is still aliased.
//
// A channel that diverges through copy-on-write leaves the group entirely
// and no longer holds any claim on it, which is why recycling only consults
// the global count.
type sharedGroup[T Element] struct {
	data     []T
	total    atomic.Int64
	slices   []atomic.Int64
	pooled   bool
	freeHook func() // invoked exactly once when the global count reaches zero
}

func (g *sharedGroup[T]) retain(slice int) {
	g.slices[slice].Add(1)
	g.total.Add(1)
}

func (g *sharedGroup[T]) drop(slice int) {
	g.slices[slice].Add(-1)
	if g.total.Add(-1) != 0 {
		return
	}
	if g.freeHook != nil {
		g.freeHook()
	}
	if g.pooled {
		putBuf(g.data)
	}
	g.data = nil
}

// grouped is the strategy for a channel carved out of a sharedGroup: a
// handle to the group record plus the channel's slice index.
type grouped[T Element] struct {
	group *sharedGroup[T]
	slice int
}

func (gr *grouped[T]) clone(view []T) (backing[T], []T) {
	gr.group.retain(gr.slice)
	return &grouped[T]{group: gr.group, slice: gr.slice}, view
}

func (gr *grouped[T]) makeMut(view []T) (backing[T], []T) {
	if gr.group.slices[gr.slice].Load() == 1 {
		// This slice is not aliased; other slices' counts are irrelevant.
		return gr, view
	}
	data := getBuf[T](len(view))
	copy(data, view)
	gr.group.drop(gr.slice)
	return &exclusive[T]{buf: data, pooled: true}, data
}

func (gr *grouped[T]) release() {
	gr.group.drop(gr.slice)
}

// sliceDesc describes one logical slice of a group allocation.
type sliceDesc struct {
	offset int
	width  int
	height int
	elems  int
}

// splitShared carves buf into one channel per descriptor, all sharing one
// allocation and one group record. The global count starts at the number of
// slices and each slice count at one.
//
// Panics if a descriptor is invalid, reaches outside buf, or the descriptors
// do not cover buf exactly.
func splitShared[T Element](buf []T, descs []sliceDesc) []Channel[T] {
	if len(descs) == 0 {
		panic("imagebuf: at least one slice descriptor is required")
	}
	covered := 0
	for _, d := range descs {
		n := d.width * d.height * d.elems
		checkChannelArgs(n, d.width, d.height, d.elems)
		if d.offset < 0 || d.offset+n > len(buf) {
			panic("imagebuf: slice descriptor out of range")
		}
		covered += n
	}
	if covered != len(buf) {
		panic("imagebuf: incompatible buffer size")
	}

	g := &sharedGroup[T]{
		data:   buf,
		slices: make([]atomic.Int64, len(descs)),
	}
	g.total.Store(int64(len(descs)))
	for i := range g.slices {
		g.slices[i].Store(1)
	}

	channels := make([]Channel[T], len(descs))
	for i, d := range descs {
		n := d.width * d.height * d.elems
		channels[i] = Channel[T]{
			view:   buf[d.offset : d.offset+n : d.offset+n],
			width:  d.width,
			height: d.height,
			elems:  d.elems,
			b:      &grouped[T]{group: g, slice: i},
		}
	}
	return channels
}

// SplitChannels carves one contiguous planar buffer into channels of
// identical dimensions without additional allocations. The channels share
// the buffer behind independent copy-on-write accounting: cloning or
// mutating one never disturbs the others.
//
// Panics if the dimensions are not positive, channels is not positive, or
// len(buf) != width*height*channels.
func SplitChannels[T Element](buf []T, width, height, channels int) []Channel[T] {
	if channels <= 0 {
		panic("imagebuf: channel count must be positive")
	}
	plane := width * height
	descs := make([]sliceDesc, channels)
	for i := range descs {
		descs[i] = sliceDesc{offset: i * plane, width: width, height: height, elems: 1}
	}
	return splitShared(buf, descs)
}
