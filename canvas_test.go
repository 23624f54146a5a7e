package libassmod

import (
	"image"
	"image/color"
	"testing"
)

func TestFlatten(t *testing.T) {
	c := NewConverter()
	red := solidImage(1, 1, 2, 2, 0xFF000000)
	blue := solidImage(2, 2, 2, 2, 0x0000FF80)
	list := c.Convert([]*CoverageImage{red, blue})
	defer FreeRGBAList(list)

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	Flatten(dst, append(list, nil))

	if got := dst.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("(0, 0) = %v, want transparent", got)
	}
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Errorf("(1, 1) = %v, want opaque red", got)
	}

	// Half-transparent blue over red keeps full alpha and mixes channels.
	got := dst.RGBAAt(2, 2)
	if got.A != 0xFF || got.B == 0 || got.R == 0 || got.R == 0xFF {
		t.Errorf("(2, 2) = %v, want blue blended over red", got)
	}
	if got := dst.RGBAAt(3, 3); got.A == 0xFF || got.B == 0 || got.R != 0 {
		t.Errorf("(3, 3) = %v, want half-transparent blue", got)
	}
}

func TestFlattenClips(t *testing.T) {
	list := NewConverter().Convert([]*CoverageImage{solidImage(-1, -1, 3, 3, 0x00FF0000)})
	defer FreeRGBAList(list)

	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	Flatten(dst, list)
	if got := dst.RGBAAt(1, 1); got.G != 0xFF {
		t.Errorf("(1, 1) = %v, want green", got)
	}
}

func TestFlattenScaled(t *testing.T) {
	list := NewConverter().Convert([]*CoverageImage{solidImage(0, 0, 4, 4, 0xFF000000)})
	defer FreeRGBAList(list)

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	FlattenScaled(dst, list, 4, 4)
	if got := dst.RGBAAt(4, 4); got.R < 0xF0 || got.A < 0xF0 || got.B != 0 {
		t.Errorf("(4, 4) = %v, want red", got)
	}

	empty := image.NewRGBA(image.Rect(0, 0, 2, 2))
	FlattenScaled(empty, list, 0, 4)
	if got := empty.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("zero frame size drew %v", got)
	}
}
