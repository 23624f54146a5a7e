package libassmod

import (
	"image"
	"testing"
)

func TestEventActive(t *testing.T) {
	ev := Event{Start: 1000, Duration: 500}
	tests := []struct {
		now  int64
		want bool
	}{
		{999, false},
		{1000, true},
		{1499, true},
		{1500, false},
	}
	for _, tt := range tests {
		if got := ev.Active(tt.now); got != tt.want {
			t.Errorf("Active(%d) = %v, want %v", tt.now, got, tt.want)
		}
	}
	if ev.End() != 1500 {
		t.Errorf("End() = %d, want 1500", ev.End())
	}

	empty := Event{Start: 10}
	if empty.Active(10) {
		t.Error("zero-duration event should never be active")
	}
}

func TestTrackAddEvent(t *testing.T) {
	track := NewTrack(640, 480)
	if track.PruneDelay >= 0 {
		t.Errorf("NewTrack PruneDelay = %d, want negative", track.PruneDelay)
	}

	for i := range 3 {
		ev := track.AddEvent(Event{Start: int64(i)})
		if ev.ReadOrder != i {
			t.Errorf("event %d ReadOrder = %d", i, ev.ReadOrder)
		}
	}
	if len(track.Events) != 3 {
		t.Errorf("len(Events) = %d, want 3", len(track.Events))
	}
}

func TestTrackPrune(t *testing.T) {
	track := NewTrack(10, 10)
	track.AddEvent(Event{Start: 0, Duration: 10})
	track.AddEvent(Event{Start: 0, Duration: 100})
	track.AddEvent(Event{Start: 5, Duration: 15})
	track.AddEvent(Event{Start: 200, Duration: 1})

	if n := track.Prune(20); n != 1 {
		t.Errorf("Prune(20) = %d, want 1", n)
	}
	if len(track.Events) != 3 || track.Events[0].Duration != 100 {
		t.Errorf("events after prune = %+v", track.Events)
	}

	if n := track.Prune(0); n != 0 {
		t.Errorf("Prune(0) = %d, want 0", n)
	}
}

func TestEventImagesTranslate(t *testing.T) {
	e := EventImages{
		Images: []*CoverageImage{solidImage(1, 2, 3, 4, 0), solidImage(5, 6, 2, 2, 0)},
		RGBA:   []*RGBAImage{{W: 3, H: 4, DstX: 1, DstY: 2}},
	}
	e.ComputeBox()
	if want := image.Rect(1, 2, 7, 8); e.Box != want {
		t.Fatalf("Box = %v, want %v", e.Box, want)
	}

	e.Translate(10, -2)
	if e.Images[0].DstX != 11 || e.Images[0].DstY != 0 {
		t.Errorf("image 0 at (%d, %d), want (11, 0)", e.Images[0].DstX, e.Images[0].DstY)
	}
	if e.Images[1].DstX != 15 || e.Images[1].DstY != 4 {
		t.Errorf("image 1 at (%d, %d), want (15, 4)", e.Images[1].DstX, e.Images[1].DstY)
	}
	if e.RGBA[0].DstX != 11 || e.RGBA[0].DstY != 0 {
		t.Errorf("rgba at (%d, %d), want (11, 0)", e.RGBA[0].DstX, e.RGBA[0].DstY)
	}
	if want := image.Rect(11, 0, 17, 6); e.Box != want {
		t.Errorf("Box = %v, want %v", e.Box, want)
	}
	if e.ImageCount() != 2 {
		t.Errorf("ImageCount() = %d, want 2", e.ImageCount())
	}
}

func TestImageType(t *testing.T) {
	tests := []struct {
		typ   ImageType
		name  string
		layer int
	}{
		{TypeCharacter, "character", 0},
		{TypeOutline, "outline", 2},
		{TypeShadow, "shadow", 3},
		{ImageType(9), "unknown", 0},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.typ.GradientLayer(); got != tt.layer {
			t.Errorf("%s GradientLayer() = %d, want %d", tt.name, got, tt.layer)
		}
	}
}
