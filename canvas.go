package libassmod

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Flatten composites list onto dst in order with source-over blending.
// Each image is drawn at its destination offset; parts outside dst are
// clipped.
func Flatten(dst xdraw.Image, list []*RGBAImage) {
	for _, img := range list {
		if img == nil || img.Pix == nil {
			continue
		}
		src := img.Image()
		xdraw.Draw(dst, src.Rect, src, src.Rect.Min, xdraw.Over)
	}
}

// FlattenScaled composites list onto a canvas of the frame size and scales
// the result into dst's bounds. It is used to present frames rendered at
// script resolution on a differently sized surface.
func FlattenScaled(dst xdraw.Image, list []*RGBAImage, frameW, frameH int) {
	if frameW <= 0 || frameH <= 0 {
		return
	}
	canvas := image.NewRGBA(image.Rect(0, 0, frameW, frameH))
	Flatten(canvas, list)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), xdraw.Over, nil)
}
