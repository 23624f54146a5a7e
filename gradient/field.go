package gradient

import "github.com/amanosatosi/libassmod/internal/cache"

// Rect is the screen-space box a gradient field is stretched over.
// Corner 0 maps to (X0, Y0) and corner 3 to (X1, Y1).
type Rect struct {
	X0, Y0, X1, Y1 float64
	Valid          bool
}

// UV maps a screen position into field coordinates. Positions outside the
// box map outside [0, 1] and are clamped by the samplers. A degenerate axis
// maps to 0; an invalid Rect maps everything to (0, 0).
func (r Rect) UV(x, y float64) (u, v float64) {
	if !r.Valid {
		return 0, 0
	}
	if dx := r.X1 - r.X0; dx != 0 {
		u = (x - r.X0) / dx
	}
	if dy := r.Y1 - r.Y0; dy != 0 {
		v = (y - r.Y0) / dy
	}
	return u, v
}

// fieldKey identifies a rasterized field. Values is comparable, so two
// layers with byte-identical gradients share one entry.
type fieldKey struct {
	val  Values
	w, h int
}

// fieldCacheSize bounds the number of memoized fields.
const fieldCacheSize = 64

var fields = cache.New[fieldKey, []uint32](fieldCacheSize)

// Field returns the w*h grid of packed colors obtained by sampling val with
// the field's corners on the grid's corner pixels. Row y, column x is at
// index y*w+x. When the alpha gradient is enabled, each pixel's alpha byte
// is the sampled alpha field; otherwise it is the color sample's.
//
// Results are memoized by exact Values equality and size. The returned
// slice is shared and must not be modified. Non-positive sizes and a nil
// val return nil.
func Field(val *Values, w, h int) []uint32 {
	if val == nil || w <= 0 || h <= 0 {
		return nil
	}
	key := fieldKey{val: *val, w: w, h: h}
	return fields.GetOrCreate(key, func() []uint32 {
		return rasterize(&key.val, w, h)
	})
}

// FieldStats reports hit and miss counts of the field cache.
func FieldStats() (hits, misses uint64) {
	s := fields.Stats()
	return s.Hits, s.Misses
}

func rasterize(val *Values, w, h int) []uint32 {
	out := make([]uint32, w*h)
	for y := range h {
		v := axis(y, h)
		row := out[y*w : (y+1)*w]
		for x := range w {
			row[x] = samplePixel(val, axis(x, w), v)
		}
	}
	return out
}

// axis maps pixel i of n onto [0, 1] so the first and last pixels land on
// the field's corners.
func axis(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// samplePixel combines the color and alpha fields at (u, v).
func samplePixel(val *Values, u, v float64) uint32 {
	c := SampleColor(val, u, v)
	if val.AlphaEnabled {
		c = WithAlpha(c, SampleAlpha(val, u, v))
	}
	return c
}

// SamplePixel returns SampleColor at (u, v) with the alpha byte taken from
// the alpha field when the layer's alpha gradient is enabled.
func SamplePixel(val *Values, u, v float64) uint32 {
	if val == nil {
		return 0
	}
	return samplePixel(val, u, v)
}
