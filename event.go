package libassmod

import (
	"image"
	"slices"

	"github.com/amanosatosi/libassmod/gradient"
)

// Event is one subtitle event of a track. Times are in milliseconds.
//
// The compositor reads Start, Duration and Layer. The remaining fields are
// payload for the EventRenderer.
type Event struct {
	Start     int64
	Duration  int64
	Layer     int
	ReadOrder int

	Style int    // index into Track.Styles
	Text  string // single line of text

	// X, Y is the top-left corner of the event's text box in play
	// resolution pixels.
	X, Y int

	// Positioned events keep their place; collision resolution skips them.
	Positioned bool

	// Gradient holds per-layer corner gradients set by override tags.
	// nil means flat style colors.
	Gradient *gradient.State
}

// Active reports whether the event is displayed at now: start inclusive,
// end exclusive.
func (e *Event) Active(now int64) bool {
	return e.Start <= now && now < e.Start+e.Duration
}

// End returns the first timestamp at which the event is no longer shown.
func (e *Event) End() int64 {
	return e.Start + e.Duration
}

// Style describes how events are drawn by the reference renderer.
type Style struct {
	Name string

	// Colors holds the primary, secondary, outline and back colors in
	// gradient layer order, packed 0xRRGGBBAA.
	Colors [gradient.Layers]uint32

	FontSize float64

	// Border pads an opaque box drawn behind the text, in pixels.
	// 0 disables the box.
	Border int

	// Shadow offsets a drop shadow of the box or text, in pixels.
	// 0 disables the shadow.
	Shadow int

	// StackUp makes colliding events move up instead of down.
	StackUp bool
}

// Track is a list of events with shared styles.
type Track struct {
	Styles []Style
	Events []Event

	// PlayResX and PlayResY are the script resolution.
	PlayResX, PlayResY int

	// PruneDelay is how long after an event ends it may be dropped from
	// Events, in milliseconds. A negative value disables pruning.
	PruneDelay int64
}

// NewTrack returns an empty track of the given resolution with pruning
// disabled.
func NewTrack(w, h int) *Track {
	return &Track{
		PlayResX:   w,
		PlayResY:   h,
		PruneDelay: -1,
	}
}

// AddEvent appends ev and assigns its read order.
func (t *Track) AddEvent(ev Event) *Event {
	ev.ReadOrder = len(t.Events)
	t.Events = append(t.Events, ev)
	return &t.Events[len(t.Events)-1]
}

// Prune drops events that ended before cutoff. It returns the number of
// removed events.
func (t *Track) Prune(cutoff int64) int {
	n := len(t.Events)
	t.Events = slices.DeleteFunc(t.Events, func(e Event) bool {
		return e.End() < cutoff
	})
	return n - len(t.Events)
}

// ShiftDirection is the direction collision resolution moves an event.
type ShiftDirection int

const (
	// ShiftDown moves colliding events toward larger Y.
	ShiftDown ShiftDirection = iota
	// ShiftUp moves colliding events toward smaller Y.
	ShiftUp
)

// EventImages is the rendered output of one active event for one frame.
//
// The compositor moves Images and RGBA into the frame once the event has
// been placed; after that both fields are nil.
type EventImages struct {
	Event *Event

	Images    []*CoverageImage
	RGBA      []*RGBAImage
	NeedsRGBA bool

	// Box is the frame-space bounding box of the event's images.
	Box image.Rectangle

	DetectCollisions bool
	Shift            ShiftDirection

	index int // position in the track's scan order
}

// Translate moves every image of the event and its box by (dx, dy).
func (e *EventImages) Translate(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	for _, img := range e.Images {
		img.DstX += dx
		img.DstY += dy
	}
	for _, img := range e.RGBA {
		img.DstX += dx
		img.DstY += dy
	}
	e.Box = e.Box.Add(image.Pt(dx, dy))
}

// ComputeBox sets Box to the union of the event's image bounds.
func (e *EventImages) ComputeBox() {
	var box image.Rectangle
	for _, img := range e.Images {
		box = box.Union(img.Bounds())
	}
	for _, img := range e.RGBA {
		box = box.Union(img.Bounds())
	}
	e.Box = box
}

// ImageCount returns the number of coverage images of the event.
func (e *EventImages) ImageCount() int {
	return len(e.Images)
}
