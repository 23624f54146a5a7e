package libassmod

// EventRenderer rasterizes one event into out.
//
// out arrives with Event set and every other field zeroed. The renderer
// fills Images, optionally RGBA and NeedsRGBA, and the collision fields.
// Returning false drops the event from the frame.
type EventRenderer interface {
	RenderEvent(ev *Event, out *EventImages) bool
}

// EventRendererFunc adapts a function to EventRenderer.
type EventRendererFunc func(ev *Event, out *EventImages) bool

// RenderEvent calls f(ev, out).
func (f EventRendererFunc) RenderEvent(ev *Event, out *EventImages) bool { return f(ev, out) }

// FrameStarter prepares per-frame state before events are rendered.
type FrameStarter interface {
	StartFrame(r *Renderer, track *Track, now int64) error
}

// FrameStarterFunc adapts a function to FrameStarter.
type FrameStarterFunc func(r *Renderer, track *Track, now int64) error

// StartFrame calls f(r, track, now).
func (f FrameStarterFunc) StartFrame(r *Renderer, track *Track, now int64) error {
	return f(r, track, now)
}

// CollisionResolver moves the events of one layer so they do not overlap.
//
// Resolve is called once per maximal run of events sharing a layer, in
// layer order. It may change image positions through EventImages.Translate
// but must not add or remove images.
type CollisionResolver interface {
	Resolve(run []EventImages)
}

// CollisionResolverFunc adapts a function to CollisionResolver.
type CollisionResolverFunc func(run []EventImages)

// Resolve calls f(run).
func (f CollisionResolverFunc) Resolve(run []EventImages) { f(run) }

// ChangeDetector compares the new frame against the previous one.
// prev is nil on the first frame. It returns ChangeUnchanged or
// ChangeChanged.
type ChangeDetector interface {
	Detect(cur, prev *Frame) ChangeCode
}

// ChangeDetectorFunc adapts a function to ChangeDetector.
type ChangeDetectorFunc func(cur, prev *Frame) ChangeCode

// Detect calls f(cur, prev).
func (f ChangeDetectorFunc) Detect(cur, prev *Frame) ChangeCode { return f(cur, prev) }

// Pruner drops events that can no longer become active.
type Pruner interface {
	Prune(track *Track, cutoff int64)
}

// PrunerFunc adapts a function to Pruner.
type PrunerFunc func(track *Track, cutoff int64)

// Prune calls f(track, cutoff).
func (f PrunerFunc) Prune(track *Track, cutoff int64) { f(track, cutoff) }

// Allocator hands out aligned pixel buffers.
//
// Alloc returns a zeroed buffer of size bytes whose first byte is aligned to
// align, a power of two. Free returns a buffer obtained from Alloc.
type Allocator interface {
	Alloc(size, align int) ([]byte, error)
	Free(buf []byte)
}
