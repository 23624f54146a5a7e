package libassmod

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Common errors. RenderFrame reports them only through logging and
// ChangeUnknown; custom FrameStarters may return them too.
var (
	// ErrNilTrack is returned when RenderFrame is called without a track.
	ErrNilTrack = errors.New("libassmod: nil track")

	// ErrClosed is returned when the renderer has been closed.
	ErrClosed = errors.New("libassmod: renderer closed")

	// ErrTooManyEvents is returned when a frame needs more active events
	// than the configured maximum.
	ErrTooManyEvents = errors.New("libassmod: too many active events")
)

// FrameStats describes the most recent successful RenderFrame call.
type FrameStats struct {
	// Active is the number of events that produced output.
	Active int
	// Runs is the number of same-layer runs passed to collision resolution.
	Runs int
	// Images is the number of coverage images in the frame.
	Images int
	// RGBA is the number of RGBA images returned.
	RGBA int
	// NeedsRGBA reports whether any event asked for RGBA output.
	NeedsRGBA bool
	// Synthesized reports whether the RGBA output came from converting the
	// merged coverage images.
	Synthesized bool
	// Change is the change code returned.
	Change ChangeCode
}

// Renderer composites the active events of a track into frames.
//
// A Renderer is not safe for concurrent use. Calls against one renderer,
// and against the tracks it renders, must be serialized by the caller.
type Renderer struct {
	opts options
	conv *Converter

	// events is the active event array. It grows in fixed steps, never
	// shrinks, and is reused across frames.
	events []EventImages

	cur  *Frame
	prev *Frame

	stats  FrameStats
	closed bool
}

// NewRenderer creates a renderer configured by opts.
func NewRenderer(opts ...Option) *Renderer {
	o := buildOptions(opts)
	return &Renderer{
		opts: o,
		conv: newConverter(&o),
	}
}

// defaultStartFrame rejects frames for a closed renderer or a nil track.
func defaultStartFrame(r *Renderer, track *Track, _ int64) error {
	if r.closed {
		return ErrClosed
	}
	if track == nil {
		return ErrNilTrack
	}
	return nil
}

// RenderFrame renders the frame of track at now (milliseconds).
//
// It returns the frame's RGBA images, which the caller owns and releases
// with FreeRGBAList, and how the frame compares to the previous successful
// one. When the frame cannot be rendered it returns nil and ChangeUnknown
// and leaves the renderer's frame state untouched.
func (r *Renderer) RenderFrame(track *Track, now int64) ([]*RGBAImage, ChangeCode) {
	if err := r.opts.starter.StartFrame(r, track, now); err != nil {
		Logger().Warn("libassmod: frame start failed", "now", now, "err", err)
		return nil, ChangeUnknown
	}
	if track == nil {
		return nil, ChangeUnknown
	}

	active, needsRGBA, err := r.collect(track, now)
	if err != nil {
		Logger().Warn("libassmod: frame aborted", "now", now, "err", err)
		return nil, ChangeUnknown
	}

	slices.SortFunc(active, func(a, b EventImages) int {
		if c := cmp.Compare(a.Event.Layer, b.Event.Layer); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	runs := r.resolveCollisions(active)

	images, rgba := r.merge(active, needsRGBA)

	r.prev = r.cur
	r.cur = newFrame(images)
	r.cur.Ref()
	code := r.opts.detector.Detect(r.cur, r.prev)
	r.prev.Unref()
	r.prev = nil

	synthesized := false
	if len(rgba) == 0 && len(images) > 0 {
		rgba = r.conv.Convert(images)
		synthesized = true
	}

	if track.PruneDelay >= 0 {
		r.opts.pruner.Prune(track, now-track.PruneDelay)
	}

	r.stats = FrameStats{
		Active:      len(active),
		Runs:        runs,
		Images:      len(images),
		RGBA:        len(rgba),
		NeedsRGBA:   needsRGBA,
		Synthesized: synthesized,
		Change:      code,
	}
	Logger().Debug("libassmod: frame rendered",
		"now", now,
		"active", r.stats.Active,
		"runs", r.stats.Runs,
		"images", r.stats.Images,
		"rgba", r.stats.RGBA,
		"synthesized", synthesized,
		"change", code.String())

	return rgba, code
}

// collect renders every event active at now into the event array and
// returns the filled prefix.
func (r *Renderer) collect(track *Track, now int64) ([]EventImages, bool, error) {
	n := 0
	needsRGBA := false
	for i := range track.Events {
		ev := &track.Events[i]
		if !ev.Active(now) {
			continue
		}
		if err := r.reserve(n + 1); err != nil {
			for j := range n {
				FreeRGBAList(r.events[j].RGBA)
			}
			clear(r.events[:n])
			return nil, false, err
		}

		slot := &r.events[n]
		*slot = EventImages{Event: ev, index: i}
		if r.opts.events == nil || !r.opts.events.RenderEvent(ev, slot) {
			*slot = EventImages{}
			continue
		}
		if slot.Box.Empty() {
			slot.ComputeBox()
		}
		needsRGBA = needsRGBA || slot.NeedsRGBA
		n++
	}
	return r.events[:n], needsRGBA, nil
}

// reserve makes room for need entries in the event array, growing it in
// fixed steps. It fails when need exceeds the active event limit.
func (r *Renderer) reserve(need int) error {
	if r.opts.maxActive > 0 && need > r.opts.maxActive {
		return fmt.Errorf("%w: %d > %d", ErrTooManyEvents, need, r.opts.maxActive)
	}
	if need <= len(r.events) {
		return nil
	}
	size := len(r.events)
	for size < need {
		size += eventsGrowStep
	}
	grown := make([]EventImages, size)
	copy(grown, r.events)
	r.events = grown
	return nil
}

// resolveCollisions calls the resolver once per maximal run of equal layers
// of the sorted active list and returns the number of runs.
func (r *Renderer) resolveCollisions(active []EventImages) int {
	runs := 0
	start := 0
	for i := 1; i <= len(active); i++ {
		if i < len(active) && active[i].Event.Layer == active[start].Event.Layer {
			continue
		}
		r.opts.resolver.Resolve(active[start:i])
		runs++
		start = i
	}
	return runs
}

// merge moves every event's images into frame-wide lists in sorted order.
// When some event asked for RGBA, events without native RGBA output are
// converted in place so the RGBA list keeps stacking order.
func (r *Renderer) merge(active []EventImages, needsRGBA bool) ([]*CoverageImage, []*RGBAImage) {
	nImages, nRGBA := 0, 0
	for i := range active {
		nImages += len(active[i].Images)
		nRGBA += max(len(active[i].RGBA), len(active[i].Images))
	}

	var images []*CoverageImage
	if nImages > 0 {
		images = make([]*CoverageImage, 0, nImages)
	}
	var rgba []*RGBAImage
	for i := range active {
		e := &active[i]
		if needsRGBA && len(e.RGBA) == 0 && len(e.Images) > 0 {
			e.RGBA = r.conv.Convert(e.Images)
		}
		if len(e.RGBA) > 0 && rgba == nil {
			rgba = make([]*RGBAImage, 0, nRGBA)
		}

		images = append(images, e.Images...)
		rgba = append(rgba, e.RGBA...)
		e.Images = nil
		e.RGBA = nil
	}
	return images, rgba
}

// Frame returns the current frame, or nil before the first successful
// RenderFrame. The renderer's reference is dropped when the next frame
// replaces it; take a reference with Frame.Ref to keep it longer.
func (r *Renderer) Frame() *Frame {
	return r.cur
}

// Images returns the coverage images of the current frame.
func (r *Renderer) Images() []*CoverageImage {
	return r.cur.Images()
}

// Stats returns statistics about the most recent successful frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// SetEventRenderer replaces the per-event renderer. It lets an event
// renderer share the renderer's Converter:
//
//	r := libassmod.NewRenderer()
//	r.SetEventRenderer(raster.New(track, raster.WithConverter(r.Converter())))
func (r *Renderer) SetEventRenderer(er EventRenderer) {
	r.opts.events = er
}

// Converter returns the renderer's RGBA converter.
func (r *Renderer) Converter() *Converter {
	return r.conv
}

// Close releases the current frame and stops conversion workers. Later
// RenderFrame calls return ChangeUnknown. Close is safe to call multiple
// times.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.cur.Unref()
	r.cur = nil
	r.conv.Close()
}
