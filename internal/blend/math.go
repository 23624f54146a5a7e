// Package blend provides byte-level math for alpha premultiplication and
// color mixing.
//
// Every helper rounds half-up so that results are byte-exact across
// platforms. The RGBA converter and the gradient engine both depend on these
// rounding rules.
package blend

import "math"

// Div255 divides x by 255, rounding half-up.
//
// Formula: (x + 127) / 255
//
// Valid for x in [0, 255*255]. The result is within [0, 255].
func Div255(x uint32) uint8 {
	return uint8((x + 127) / 255)
}

// MulDiv255 multiplies two bytes and divides by 255, rounding half-up.
//
// MulDiv255(a, 255) == a and MulDiv255(a, 0) == 0 for every a.
func MulDiv255(a, b uint8) uint8 {
	return Div255(uint32(a) * uint32(b))
}

// Inv255 computes 255 - x (inverse alpha).
func Inv255(x uint8) uint8 {
	return 255 - x
}

// Premultiply scales a color channel by coverage cov and base alpha
// (255 minus the alpha complement byte). It returns the premultiplied
// channel and the resulting alpha.
func Premultiply(c, cov, base uint8) (channel, alpha uint8) {
	alpha = MulDiv255(cov, base)
	return MulDiv255(c, alpha), alpha
}

// MixByte linearly interpolates from old toward new by weight w.
//
// A weight <= 0 returns old, a weight >= 1 returns new. Otherwise the result
// is (1-w)*old + w*new rounded to nearest, halves away from zero.
func MixByte(old, new uint8, w float64) uint8 {
	if w <= 0 {
		return old
	}
	if w >= 1 {
		return new
	}
	return uint8(math.Round((1-w)*float64(old) + w*float64(new)))
}
