package libassmod

import "testing"

func TestChangeCodeString(t *testing.T) {
	tests := []struct {
		code ChangeCode
		want string
	}{
		{ChangeUnchanged, "unchanged"},
		{ChangeChanged, "changed"},
		{ChangeUnknown, "unknown"},
		{ChangeCode(7), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ChangeCode(%d).String() = %q, want %q", int(tt.code), got, tt.want)
		}
	}
	if ChangeUnchanged != 0 || ChangeChanged != 1 || ChangeUnknown != 2 {
		t.Error("change code values must stay 0, 1, 2")
	}
}

func TestFrameRefUnref(t *testing.T) {
	f := newFrame([]*CoverageImage{solidImage(0, 0, 1, 1, 0)})

	f.Ref()
	f.Ref()
	if f.Refs() != 2 {
		t.Fatalf("Refs() = %d, want 2", f.Refs())
	}

	f.Unref()
	if f.Released() || f.Len() != 1 {
		t.Error("frame released while referenced")
	}

	f.Unref()
	if !f.Released() || f.Len() != 0 || f.Images() != nil {
		t.Error("frame not released after last Unref")
	}

	f.Unref()
	f.Ref()
	if f.Refs() != 0 {
		t.Errorf("released frame Refs() = %d, want 0", f.Refs())
	}
}

func TestFrameNil(t *testing.T) {
	var f *Frame
	f.Ref()
	f.Unref()
	if f.Images() != nil || f.Len() != 0 || f.Refs() != 0 || f.Released() {
		t.Error("nil frame should behave as empty and unreleased")
	}
}

func TestCompareFrames(t *testing.T) {
	base := func() *CoverageImage { return solidImage(2, 3, 4, 2, 0x11223300) }
	shared := base()

	tests := []struct {
		name string
		cur  *Frame
		prev *Frame
		want ChangeCode
	}{
		{"both nil", nil, nil, ChangeUnchanged},
		{"empty vs nil", newFrame(nil), nil, ChangeUnchanged},
		{"first frame with images", newFrame([]*CoverageImage{base()}), nil, ChangeChanged},
		{"equal content", newFrame([]*CoverageImage{base()}), newFrame([]*CoverageImage{base()}), ChangeUnchanged},
		{"same image", newFrame([]*CoverageImage{shared}), newFrame([]*CoverageImage{shared}), ChangeUnchanged},
		{"count", newFrame([]*CoverageImage{base(), base()}), newFrame([]*CoverageImage{base()}), ChangeChanged},
		{"nil entry", newFrame([]*CoverageImage{nil}), newFrame([]*CoverageImage{base()}), ChangeChanged},
	}

	mutations := []struct {
		name string
		fn   func(img *CoverageImage)
	}{
		{"position", func(img *CoverageImage) { img.DstX++ }},
		{"color", func(img *CoverageImage) { img.Color = 0x11223301 }},
		{"type", func(img *CoverageImage) { img.Type = TypeOutline }},
		{"stride", func(img *CoverageImage) { img.Stride = 5; img.Bitmap = make([]byte, 10) }},
		{"bitmap", func(img *CoverageImage) { img.Bitmap[3] = 7 }},
	}
	for _, m := range mutations {
		img := base()
		m.fn(img)
		tests = append(tests, struct {
			name string
			cur  *Frame
			prev *Frame
			want ChangeCode
		}{m.name, newFrame([]*CoverageImage{img}), newFrame([]*CoverageImage{base()}), ChangeChanged})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareFrames(tt.cur, tt.prev); got != tt.want {
				t.Errorf("CompareFrames() = %v, want %v", got, tt.want)
			}
		})
	}
}
