// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster is a reference EventRenderer that draws single-line text
// events into coverage images.
//
// Text coverage comes from golang.org/x/image/font (Go Regular by default);
// background boxes and their shadows are filled with golang.org/x/image/vector.
// Events carrying an enabled gradient get native RGBA output colored from
// their corner gradients.
package raster

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/amanosatosi/libassmod"
	"github.com/amanosatosi/libassmod/gradient"
)

// DefaultFontSize is used for styles without a positive FontSize.
const DefaultFontSize = 24

// Renderer draws the events of one track.
//
// A Renderer is not safe for concurrent use; it is driven by the
// libassmod.Renderer it is installed in.
type Renderer struct {
	track *libassmod.Track
	conv  *libassmod.Converter
	font  *opentype.Font
	faces map[float64]font.Face
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConverter sets the converter used for gradient RGBA output.
func WithConverter(c *libassmod.Converter) Option {
	return func(r *Renderer) {
		if c != nil {
			r.conv = c
		}
	}
}

// WithFont sets the font used for text. The default is Go Regular.
func WithFont(f *opentype.Font) Option {
	return func(r *Renderer) {
		if f != nil {
			r.font = f
		}
	}
}

// New creates a renderer for track.
func New(track *libassmod.Track, opts ...Option) *Renderer {
	r := &Renderer{
		track: track,
		faces: make(map[float64]font.Face),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.conv == nil {
		r.conv = libassmod.NewConverter()
	}
	if r.font == nil {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			libassmod.Logger().Warn("raster: parsing Go Regular failed, using basic font", "err", err)
		} else {
			r.font = f
		}
	}
	return r
}

// Close releases the cached font faces.
func (r *Renderer) Close() {
	for size, f := range r.faces {
		_ = f.Close()
		delete(r.faces, size)
	}
}

// face returns the font face for size, creating it on first use.
func (r *Renderer) face(size float64) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	if f, ok := r.faces[size]; ok {
		return f
	}

	var f font.Face = basicfont.Face7x13
	if r.font != nil {
		otFace, err := opentype.NewFace(r.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			libassmod.Logger().Warn("raster: creating face failed", "size", size, "err", err)
		} else {
			f = otFace
		}
	}
	r.faces[size] = f
	return f
}

// RenderEvent implements libassmod.EventRenderer. Events with an unknown
// style or empty text produce nothing.
func (r *Renderer) RenderEvent(ev *libassmod.Event, out *libassmod.EventImages) bool {
	if ev.Style < 0 || ev.Style >= len(r.track.Styles) || ev.Text == "" {
		return false
	}
	style := &r.track.Styles[ev.Style]

	text := r.drawText(ev, style)
	if text == nil {
		return false
	}

	var box *libassmod.CoverageImage
	if style.Border > 0 {
		box = drawBox(text.Bounds().Inset(-style.Border), float32(style.Border))
		box.Color = style.Colors[gradient.LayerBorder]
		box.Type = libassmod.TypeOutline
	}

	if style.Shadow > 0 {
		caster := text
		if box != nil {
			caster = box
		}
		shadow := *caster
		shadow.DstX += style.Shadow
		shadow.DstY += style.Shadow
		shadow.Color = style.Colors[gradient.LayerShadow]
		shadow.Type = libassmod.TypeShadow
		out.Images = append(out.Images, &shadow)
	}
	if box != nil {
		out.Images = append(out.Images, box)
	}
	out.Images = append(out.Images, text)

	out.ComputeBox()
	out.DetectCollisions = !ev.Positioned
	if style.StackUp {
		out.Shift = libassmod.ShiftUp
	}

	if ev.Gradient.Enabled() {
		r.colorize(ev.Gradient, out)
	}
	return true
}

// drawText rasterizes the event text with its top-left corner at (X, Y).
func (r *Renderer) drawText(ev *libassmod.Event, style *libassmod.Style) *libassmod.CoverageImage {
	face := r.face(style.FontSize)

	bounds, _ := font.BoundString(face, ev.Text)
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: -fixed.I(minX), Y: -fixed.I(minY)},
	}
	d.DrawString(ev.Text)

	return &libassmod.CoverageImage{
		W:      w,
		H:      h,
		Stride: mask.Stride,
		Bitmap: mask.Pix,
		Color:  style.Colors[gradient.LayerFill],
		DstX:   ev.X,
		DstY:   ev.Y,
		Type:   libassmod.TypeCharacter,
	}
}

// drawBox fills rect with a rounded rectangle of corner radius rad.
func drawBox(rect image.Rectangle, rad float32) *libassmod.CoverageImage {
	w, h := rect.Dx(), rect.Dy()
	fw, fh := float32(w), float32(h)
	rad = min(rad, fw/2, fh/2)

	z := vector.NewRasterizer(w, h)
	z.MoveTo(rad, 0)
	z.LineTo(fw-rad, 0)
	z.QuadTo(fw, 0, fw, rad)
	z.LineTo(fw, fh-rad)
	z.QuadTo(fw, fh, fw-rad, fh)
	z.LineTo(rad, fh)
	z.QuadTo(0, fh, 0, fh-rad)
	z.LineTo(0, rad)
	z.QuadTo(0, 0, rad, 0)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &libassmod.CoverageImage{
		W:      w,
		H:      h,
		Stride: mask.Stride,
		Bitmap: mask.Pix,
		DstX:   rect.Min.X,
		DstY:   rect.Min.Y,
	}
}

// colorize produces gradient RGBA for every image of out. The gradient is
// stretched over the event's box, so all layers of the event share one
// field.
func (r *Renderer) colorize(state *gradient.State, out *libassmod.EventImages) {
	rect := gradient.Rect{
		X0:    float64(out.Box.Min.X),
		Y0:    float64(out.Box.Min.Y),
		X1:    float64(out.Box.Max.X),
		Y1:    float64(out.Box.Max.Y),
		Valid: true,
	}
	for _, img := range out.Images {
		val := &state.Layer[img.Type.GradientLayer()]
		if rgba := r.conv.ConvertGradient(img, val, rect); rgba != nil {
			out.RGBA = append(out.RGBA, rgba)
		}
	}
	out.NeedsRGBA = true
}
