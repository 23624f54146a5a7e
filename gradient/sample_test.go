package gradient

import (
	"math"
	"math/rand"
	"testing"
)

// referenceChannel is the floating-point bilinear reference, rounded to
// nearest.
func referenceChannel(c [Corners]uint8, u, v float64) int {
	u = math.Max(0, math.Min(1, u))
	v = math.Max(0, math.Min(1, v))
	x := (1-u)*(1-v)*float64(c[0]) +
		u*(1-v)*float64(c[1]) +
		(1-u)*v*float64(c[2]) +
		u*v*float64(c[3])
	return int(math.Round(x))
}

func channels(colors [Corners]uint32, ch func(uint32) uint8) [Corners]uint8 {
	var out [Corners]uint8
	for i, c := range colors {
		out[i] = ch(c)
	}
	return out
}

func testValues() *Values {
	return &Values{
		ColorEnabled: true,
		AlphaEnabled: true,
		Color:        [Corners]uint32{0x10203040, 0xF0E0D0C0, 0x7F00FF11, 0x01FE8022},
		Alpha:        [Corners]uint8{0, 255, 17, 200},
	}
}

func TestSampleCornersExact(t *testing.T) {
	val := testValues()
	corners := []struct {
		u, v float64
		idx  int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{1, 1, 3},
	}

	for _, c := range corners {
		got := SampleColor(val, c.u, c.v)
		// Alpha of a color sample always comes from corner 0.
		want := WithAlpha(val.Color[c.idx], A(val.Color[0]))
		if got != want {
			t.Errorf("SampleColor(%v, %v) = %#08x, want %#08x", c.u, c.v, got, want)
		}
		if a := SampleAlpha(val, c.u, c.v); a != val.Alpha[c.idx] {
			t.Errorf("SampleAlpha(%v, %v) = %d, want %d", c.u, c.v, a, val.Alpha[c.idx])
		}
	}
}

func TestSampleUniform(t *testing.T) {
	const c = 0x336699CC
	var s State
	s.ApplyColor(LayerFill, []uint32{c, c, c, c}, 1)
	val := &s.Layer[LayerFill]

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		u, v := rng.Float64()*1.4-0.2, rng.Float64()*1.4-0.2
		if got := SampleColor(val, u, v); got != c {
			t.Fatalf("SampleColor(%v, %v) = %#08x, want %#08x", u, v, got, c)
		}
	}
}

func TestSampleClamp(t *testing.T) {
	val := testValues()
	tests := []struct {
		name           string
		u, v           float64
		clampU, clampV float64
	}{
		{"below", -3, -0.5, 0, 0},
		{"above", 2, 7, 1, 1},
		{"mixed", -1, 1.5, 0, 1},
		{"nan", math.NaN(), math.NaN(), 0, 0},
		{"inf", math.Inf(1), math.Inf(-1), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleColor(val, tt.u, tt.v)
			want := SampleColor(val, tt.clampU, tt.clampV)
			if got != want {
				t.Errorf("SampleColor(%v, %v) = %#08x, want %#08x", tt.u, tt.v, got, want)
			}
			if a, wa := SampleAlpha(val, tt.u, tt.v), SampleAlpha(val, tt.clampU, tt.clampV); a != wa {
				t.Errorf("SampleAlpha(%v, %v) = %d, want %d", tt.u, tt.v, a, wa)
			}
		})
	}
}

func TestSampleMatchesReference(t *testing.T) {
	val := testValues()
	rr := channels(val.Color, R)
	gg := channels(val.Color, G)
	bb := channels(val.Color, B)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		u, v := rng.Float64(), rng.Float64()
		c := SampleColor(val, u, v)

		for _, ch := range []struct {
			name string
			got  uint8
			ref  [Corners]uint8
		}{
			{"R", R(c), rr},
			{"G", G(c), gg},
			{"B", B(c), bb},
			{"alpha", SampleAlpha(val, u, v), val.Alpha},
		} {
			want := referenceChannel(ch.ref, u, v)
			if d := int(ch.got) - want; d < -1 || d > 1 {
				t.Fatalf("%s at (%v, %v) = %d, reference %d", ch.name, u, v, ch.got, want)
			}
		}
		if A(c) != A(val.Color[0]) {
			t.Fatalf("SampleColor alpha byte = %d, want corner 0's %d", A(c), A(val.Color[0]))
		}
	}
}

func TestSampleMonotonic(t *testing.T) {
	val := &Values{
		Color: [Corners]uint32{0x00000000, 0xFF000000, 0x00FF0000, 0xFFFF0000},
		Alpha: [Corners]uint8{0, 255, 0, 255},
	}

	prevR, prevA := -1, -1
	for i := 0; i <= 256; i++ {
		u := float64(i) / 256
		r := int(R(SampleColor(val, u, 0.3)))
		a := int(SampleAlpha(val, u, 0.7))
		if r < prevR {
			t.Fatalf("red not monotonic in u at %v: %d < %d", u, r, prevR)
		}
		if a < prevA {
			t.Fatalf("alpha not monotonic in u at %v: %d < %d", u, a, prevA)
		}
		prevR, prevA = r, a
	}

	prevG := -1
	for i := 0; i <= 256; i++ {
		v := float64(i) / 256
		g := int(G(SampleColor(val, 0.5, v)))
		if g < prevG {
			t.Fatalf("green not monotonic in v at %v: %d < %d", v, g, prevG)
		}
		prevG = g
	}
}

func TestSampleNil(t *testing.T) {
	if got := SampleColor(nil, 0.5, 0.5); got != 0 {
		t.Errorf("SampleColor(nil) = %#08x, want 0", got)
	}
	if got := SampleAlpha(nil, 0.5, 0.5); got != 0 {
		t.Errorf("SampleAlpha(nil) = %d, want 0", got)
	}
}

func TestApplyThenSample(t *testing.T) {
	const c = 0xC0FFEE7F
	var s State
	s.Reset([]uint32{0x11111111, 0x22222222, 0x33333333, 0x44444444})
	s.ApplyColor(LayerKaraoke, []uint32{c, c, c, c}, 1)

	for _, uv := range [][2]float64{{0, 0}, {0.25, 0.75}, {0.5, 0.5}, {1, 1}, {0.999, 0.001}} {
		if got := SampleColor(&s.Layer[LayerKaraoke], uv[0], uv[1]); got != c {
			t.Errorf("SampleColor(%v, %v) = %#08x, want %#08x", uv[0], uv[1], got, c)
		}
	}
}

func BenchmarkSampleColor(b *testing.B) {
	val := testValues()
	for i := 0; i < b.N; i++ {
		SampleColor(val, 0.37, 0.61)
	}
}
