package imagebuf_test

import (
	"fmt"
	"image"

	imagebuf "github.com/mineichen/image-buffer"
)

func ExampleNewChannel() {
	ch := imagebuf.NewChannel([]uint8{0, 64, 128, 192}, 2, 2)
	fmt.Printf("%dx%d\n", ch.Width(), ch.Height())
	fmt.Println(ch.Buffer())
	ch.Release()
	// Output:
	// 2x2
	// [0 64 128 192]
}

func ExampleChannel_MutBuffer() {
	ch := imagebuf.NewSharedChannel(imagebuf.NewShared([]uint8{1, 2, 3, 4}), 2, 2, 1)
	clone := ch.Clone()

	// The clone still references the buffer, so mutation copies first.
	ch.MutBuffer()[0] = 100

	fmt.Println(ch.Buffer())
	fmt.Println(clone.Buffer())
	ch.Release()
	clone.Release()
	// Output:
	// [100 2 3 4]
	// [1 2 3 4]
}

func ExampleSplitChannels() {
	chs := imagebuf.SplitChannels([]uint8{0, 1, 2, 3, 4, 5}, 2, 1, 3)
	for _, ch := range chs {
		fmt.Println(ch.Buffer())
	}
	for i := range chs {
		chs[i].Release()
	}
	// Output:
	// [0 1]
	// [2 3]
	// [4 5]
}

func ExampleSpecialize() {
	d := imagebuf.EraseChannel(imagebuf.NewChannel([]uint16{10, 20}, 2, 1))
	fmt.Println(d.Kind())

	ch, err := imagebuf.Specialize[uint16](d, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ch.Buffer())
	ch.Release()
	// Output:
	// uint16
	// [10 20]
}

func ExampleInterleave() {
	planar := imagebuf.NewImage([]uint8{0, 1, 2, 3, 4, 5}, 2, 1, 3)
	inter := imagebuf.Interleave(&planar)
	fmt.Println(inter.Channel(0).Buffer())
	planar.Release()
	inter.Release()
	// Output:
	// [0 2 4 1 3 5]
}

func ExampleFromImage() {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	copy(src.Pix, []uint8{0, 64, 128, 192})

	d, err := imagebuf.FromImage(src)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d.Channel(0))
	d.Release()
	// Output:
	// DynamicChannel(2x2, elems=1, kind=uint8)
}
