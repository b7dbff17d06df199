package imagebuf

import (
	"errors"
	"testing"
)

func TestDynamicImage_RoundTrip(t *testing.T) {
	img := NewImage([]float32{1, 2, 3, 4, 5, 6}, 2, 1, 3)
	ref := img.Clone()
	defer ref.Release()

	d := EraseImage(img)
	if d.ChannelCount() != 3 {
		t.Fatalf("ChannelCount = %d, want 3", d.ChannelCount())
	}
	back, err := SpecializeImage[float32](d, 3, 1)
	if err != nil {
		t.Fatalf("SpecializeImage: %v", err)
	}
	if !back.Equal(&ref) {
		t.Error("round-tripped image differs from original")
	}
	back.Release()
}

func TestSpecializeImage_MixedChannelSizes(t *testing.T) {
	d := EraseImage(NewImage([]float32{1, 2, 3, 4, 5, 6}, 2, 1, 3))

	// Swap in a channel with different dimensions; the mismatch surfaces at
	// specialization, not on insertion.
	odd := EraseChannel(NewChannel([]float32{7}, 1, 1))
	old := d.SetChannel(1, odd)
	old.Release()

	_, err := SpecializeImage[float32](d, 3, 1)
	var serr *SpecializeImageError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SpecializeImageError", err)
	}
	if serr.Reason != MixedChannelSizes || serr.Index != 1 {
		t.Errorf("got reason %s at index %d, want mixed channel sizes at 1", serr.Reason, serr.Index)
	}

	// The image comes back intact and stays usable.
	if serr.Image.ChannelCount() != 3 {
		t.Errorf("ChannelCount = %d after failure, want 3", serr.Image.ChannelCount())
	}
	serr.Image.Release()
}

func TestSpecializeImage_KindMismatch(t *testing.T) {
	d := EraseImage(NewImage([]float32{1, 2, 3, 4}, 2, 1, 2))
	odd := EraseChannel(NewChannel([]uint8{1, 2}, 2, 1))
	old := d.SetChannel(1, odd)
	old.Release()

	_, err := SpecializeImage[float32](d, 2, 1)
	var serr *SpecializeImageError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SpecializeImageError", err)
	}
	if serr.Reason != KindMismatch || serr.Index != 1 {
		t.Errorf("got reason %s at index %d, want kind mismatch at 1", serr.Reason, serr.Index)
	}
	serr.Image.Release()
}

func TestSpecializeImage_TooFewChannels(t *testing.T) {
	d := EraseImage(NewImage([]float32{1, 2, 3}, 1, 1, 3))

	_, err := SpecializeImage[float32](d, 4, 1)
	var serr *SpecializeImageError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SpecializeImageError", err)
	}
	if serr.Reason != TooFewChannels {
		t.Errorf("Reason = %s, want too few channels", serr.Reason)
	}
	serr.Image.Release()
}

func TestSpecializeImage_Narrowing(t *testing.T) {
	d := EraseImage(NewImage([]float32{42, 42, 7}, 1, 1, 3))

	// Taking two channels out of three succeeds with the leading pair.
	img, err := SpecializeImage[float32](d, 2, 1)
	if err != nil {
		t.Fatalf("SpecializeImage: %v", err)
	}
	want := NewImage([]float32{42, 42}, 1, 1, 2)
	defer want.Release()
	if !img.Equal(&want) {
		t.Error("narrowed image must keep the leading channels")
	}
	img.Release()
}

func TestDynamicImage_CloneAndEqual(t *testing.T) {
	d := EraseImage(NewImage([]uint16{1, 2, 3, 4}, 2, 1, 2))
	cl := d.Clone()

	if !d.Equal(cl) {
		t.Error("clone must compare equal")
	}
	other := EraseImage(NewImage([]uint16{1, 2}, 2, 1, 1))
	if d.Equal(other) {
		t.Error("different channel counts must compare unequal")
	}
	d.Release()
	cl.Release()
	other.Release()
}

func TestDynamicImageFromChannels(t *testing.T) {
	channels := []DynamicChannel{
		EraseChannel(NewChannel([]uint8{1, 2}, 2, 1)),
		EraseChannel(NewChannel([]uint16{3, 4}, 2, 1)),
	}
	d := DynamicImageFromChannels(channels)
	if d.ChannelCount() != 2 {
		t.Fatalf("ChannelCount = %d, want 2", d.ChannelCount())
	}
	if d.Channel(0).Kind() != KindUint8 || d.Channel(1).Kind() != KindUint16 {
		t.Error("channel kinds not preserved")
	}
	d.Release()
}
