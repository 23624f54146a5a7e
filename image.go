package libassmod

import (
	"image"

	"github.com/amanosatosi/libassmod/gradient"
)

// ImageType tags which style layer an image was rendered for.
type ImageType int

const (
	// TypeCharacter is glyph fill.
	TypeCharacter ImageType = iota
	// TypeOutline is the glyph border or opaque box.
	TypeOutline
	// TypeShadow is the drop shadow.
	TypeShadow
)

// String returns the name of the image type.
func (t ImageType) String() string {
	switch t {
	case TypeCharacter:
		return "character"
	case TypeOutline:
		return "outline"
	case TypeShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// GradientLayer returns the gradient style layer that colors images of
// type t.
func (t ImageType) GradientLayer() int {
	switch t {
	case TypeOutline:
		return gradient.LayerBorder
	case TypeShadow:
		return gradient.LayerShadow
	default:
		return gradient.LayerFill
	}
}

// CoverageImage is a single-channel coverage bitmap positioned on the frame.
//
// Bitmap holds one coverage byte per pixel, rows Stride bytes apart. Color
// is packed 0xRRGGBBAA where AA is the alpha complement (0 opaque).
type CoverageImage struct {
	W, H   int
	Stride int
	Bitmap []byte
	Color  uint32
	DstX   int
	DstY   int
	Type   ImageType
}

// Bounds returns the frame-space rectangle covered by img.
func (img *CoverageImage) Bounds() image.Rectangle {
	return image.Rect(img.DstX, img.DstY, img.DstX+img.W, img.DstY+img.H)
}

// valid reports whether img can be converted: positive size, a bitmap, and
// enough bytes for every row.
func (img *CoverageImage) valid() bool {
	if img == nil || img.W <= 0 || img.H <= 0 || img.Bitmap == nil {
		return false
	}
	if img.Stride < img.W {
		return false
	}
	return len(img.Bitmap) >= (img.H-1)*img.Stride+img.W
}

// RGBAImage is a premultiplied RGBA image positioned on the frame.
//
// Pix starts on an alignment boundary and holds 4 bytes per pixel in
// R, G, B, A order, rows Stride bytes apart. Release it with FreeRGBAList.
type RGBAImage struct {
	W, H   int
	Stride int
	Pix    []byte
	DstX   int
	DstY   int
	Type   ImageType

	alloc Allocator
}

// Bounds returns the frame-space rectangle covered by img.
func (img *RGBAImage) Bounds() image.Rectangle {
	return image.Rect(img.DstX, img.DstY, img.DstX+img.W, img.DstY+img.H)
}

// Image returns an *image.RGBA view of img positioned at its destination
// offset. The view shares Pix; image.RGBA is premultiplied, like Pix.
func (img *RGBAImage) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pix,
		Stride: img.Stride,
		Rect:   img.Bounds(),
	}
}

// FreeRGBAList returns every pixel buffer in list to the allocator that
// produced it and clears each node. Freed nodes are left zeroed so stale
// references see an empty image. An empty or nil list is a no-op.
func FreeRGBAList(list []*RGBAImage) {
	for i, img := range list {
		if img == nil {
			continue
		}
		if img.alloc != nil && img.Pix != nil {
			img.alloc.Free(img.Pix)
		}
		*img = RGBAImage{}
		list[i] = nil
	}
}
