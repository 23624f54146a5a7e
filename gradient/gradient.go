// Package gradient implements four-corner color and alpha gradients for the
// style layers of a subtitle event.
//
// Each layer (fill, karaoke, border, shadow) carries a Values field: four
// corner colors and four corner alpha bytes over the unit square. Override
// tags blend new corner values into the field with ApplyColor and
// ApplyAlpha, and fade it back toward flat colors with DisableColor and
// DisableAlpha. The field is evaluated per pixel with SampleColor and
// SampleAlpha.
//
// # Corners
//
//	corner 0 = (u=0, v=0)   corner 1 = (u=1, v=0)
//	corner 2 = (u=0, v=1)   corner 3 = (u=1, v=1)
//
// # Colors
//
// Colors are packed as 0xRRGGBBAA where AA is the alpha complement:
// 0 is opaque, 255 fully transparent.
package gradient

import "github.com/amanosatosi/libassmod/internal/blend"

// Style layers.
const (
	LayerFill    = iota // primary color
	LayerKaraoke        // secondary color
	LayerBorder         // outline color
	LayerShadow         // back color

	// Layers is the number of style layers in a State.
	Layers = 4
)

// Corners is the number of corners in a gradient field.
const Corners = 4

// Values is the gradient field of one style layer.
type Values struct {
	ColorEnabled bool
	AlphaEnabled bool
	Color        [Corners]uint32
	Alpha        [Corners]uint8
}

// State holds the gradient fields of all style layers.
//
// State is comparable; two states are equal when every flag and corner
// byte matches.
type State struct {
	Layer [Layers]Values
}

// R returns the red channel of a packed color.
func R(c uint32) uint8 { return uint8(c >> 24) }

// G returns the green channel of a packed color.
func G(c uint32) uint8 { return uint8(c >> 16) }

// B returns the blue channel of a packed color.
func B(c uint32) uint8 { return uint8(c >> 8) }

// A returns the alpha complement byte of a packed color.
func A(c uint32) uint8 { return uint8(c) }

// Pack builds a packed color from its channels.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// WithAlpha replaces the alpha complement byte of c.
func WithAlpha(c uint32, a uint8) uint32 {
	return c&^0xFF | uint32(a)
}

// Reset clears every layer. For each base color supplied (one per layer, in
// layer order) the four corners of that layer are seeded with the flat
// color, and its corner alphas with the color's alpha byte, so the layer
// behaves as a solid fill until overridden. Enabled flags stay false.
func (s *State) Reset(base []uint32) {
	if s == nil {
		return
	}
	*s = State{}

	for i, c := range base {
		if i >= Layers {
			break
		}
		dst := &s.Layer[i]
		for j := range Corners {
			dst.Color[j] = c
			dst.Alpha[j] = A(c)
		}
	}
}

// ApplyColor blends values into the corner colors of layer with weight w
// and marks the layer's color gradient enabled. Up to four values are used;
// if fewer are supplied, the last one fills the remaining corners.
//
// Out-of-range layers and empty values are ignored.
func (s *State) ApplyColor(layer int, values []uint32, w float64) {
	if s == nil || layer < 0 || layer >= Layers || len(values) == 0 {
		return
	}

	dst := &s.Layer[layer]
	for i := range Corners {
		dst.Color[i] = mixColor(dst.Color[i], values[min(i, len(values)-1)], w)
	}
	dst.ColorEnabled = true
}

// ApplyAlpha blends values into the corner alphas of layer with weight w
// and marks the layer's alpha gradient enabled. Corner replication follows
// ApplyColor.
func (s *State) ApplyAlpha(layer int, values []uint8, w float64) {
	if s == nil || layer < 0 || layer >= Layers || len(values) == 0 {
		return
	}

	dst := &s.Layer[layer]
	for i := range Corners {
		dst.Alpha[i] = blend.MixByte(dst.Alpha[i], values[min(i, len(values)-1)], w)
	}
	dst.AlphaEnabled = true
}

// DisableColor blends every corner color of layer toward fallback with
// weight w. The enabled flag is cleared only on a full revert (w >= 1); a
// partially faded gradient stays enabled.
func (s *State) DisableColor(layer int, fallback uint32, w float64) {
	if s == nil || layer < 0 || layer >= Layers {
		return
	}

	dst := &s.Layer[layer]
	for i := range Corners {
		dst.Color[i] = mixColor(dst.Color[i], fallback, w)
	}
	if w >= 1 {
		dst.ColorEnabled = false
	}
}

// DisableAlpha blends every corner alpha of layer toward fallback with
// weight w. Flag handling follows DisableColor.
func (s *State) DisableAlpha(layer int, fallback uint8, w float64) {
	if s == nil || layer < 0 || layer >= Layers {
		return
	}

	dst := &s.Layer[layer]
	for i := range Corners {
		dst.Alpha[i] = blend.MixByte(dst.Alpha[i], fallback, w)
	}
	if w >= 1 {
		dst.AlphaEnabled = false
	}
}

// Enabled reports whether any layer has a color or alpha gradient enabled.
func (s *State) Enabled() bool {
	if s == nil {
		return false
	}
	for i := range s.Layer {
		if s.Layer[i].ColorEnabled || s.Layer[i].AlphaEnabled {
			return true
		}
	}
	return false
}

// Equal reports whether a and b hold identical gradient state.
// Two nil states are equal; a nil and a non-nil state are not.
func Equal(a, b *State) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// mixColor blends each channel of oldc toward newc.
func mixColor(oldc, newc uint32, w float64) uint32 {
	if w <= 0 {
		return oldc
	}
	if w >= 1 {
		return newc
	}
	return Pack(
		blend.MixByte(R(oldc), R(newc), w),
		blend.MixByte(G(oldc), G(newc), w),
		blend.MixByte(B(oldc), B(newc), w),
		blend.MixByte(A(oldc), A(newc), w),
	)
}
