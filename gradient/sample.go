package gradient

// fixedOne is 1.0 in the 16.16 fixed-point format used for sample weights.
const fixedOne = 1 << 16

// SampleColor evaluates the color field of v at (u, v).
//
// u and v are clamped to [0, 1] independently. The RGB channels are
// interpolated bilinearly across the four corners; the alpha byte of the
// result is the alpha byte of corner 0. Use SampleAlpha for the separately
// tracked alpha field.
//
// Sampling at a corner returns that corner's stored value exactly.
func SampleColor(val *Values, u, v float64) uint32 {
	if val == nil {
		return 0
	}
	uf, vf := toFixed(u), toFixed(v)

	c := &val.Color
	r := sampleChannel(R(c[0]), R(c[1]), R(c[2]), R(c[3]), uf, vf)
	g := sampleChannel(G(c[0]), G(c[1]), G(c[2]), G(c[3]), uf, vf)
	b := sampleChannel(B(c[0]), B(c[1]), B(c[2]), B(c[3]), uf, vf)
	return Pack(r, g, b, A(c[0]))
}

// SampleAlpha evaluates the alpha field of v at (u, v), interpolating all
// four corner alpha bytes bilinearly.
func SampleAlpha(val *Values, u, v float64) uint8 {
	if val == nil {
		return 0
	}
	uf, vf := toFixed(u), toFixed(v)

	a := &val.Alpha
	return sampleChannel(a[0], a[1], a[2], a[3], uf, vf)
}

// toFixed clamps t to [0, 1] and converts it to 16.16 fixed point,
// truncating.
func toFixed(t float64) uint64 {
	// NaN fails both comparisons and lands on 0.
	if !(t > 0) {
		return 0
	}
	if t >= 1 {
		return fixedOne
	}
	f := uint64(t * fixedOne)
	if f > fixedOne {
		f = fixedOne
	}
	return f
}

// sampleChannel interpolates one byte channel with weights in 16.16 fixed
// point. The four weights sum to exactly 1<<32, so the accumulator shifted
// right by 32 is the truncated weighted mean; a field whose corners are all
// equal samples to that value everywhere.
func sampleChannel(c0, c1, c2, c3 uint8, uf, vf uint64) uint8 {
	w0 := fixedOne - uf
	w1 := uf
	h0 := fixedOne - vf
	h1 := vf

	acc := w0*h0*uint64(c0) +
		w1*h0*uint64(c1) +
		w0*h1*uint64(c2) +
		w1*h1*uint64(c3)

	res := acc >> 32
	if res > 255 {
		return 255
	}
	return uint8(res)
}
