// Package libassmod composites rendered subtitle events into frames.
//
// # Overview
//
// For a playback timestamp a Renderer selects the events of a Track that
// are on screen, has an EventRenderer rasterize each one into coverage
// bitmaps, resolves collisions between events that share a layer, merges
// all output into one Frame in stacking order, and reports whether the
// frame differs from the previous one. The final images are premultiplied
// RGBA, either produced natively by the event renderer (for example from
// four-corner gradients, see package gradient) or converted from coverage.
//
// # Quick Start
//
//	track := libassmod.NewTrack(640, 360)
//	track.Styles = append(track.Styles, libassmod.Style{
//	    Colors:   [4]uint32{0xFFFFFF00, 0, 0x00000000, 0x00000080},
//	    FontSize: 32,
//	})
//	track.AddEvent(libassmod.Event{Start: 0, Duration: 2000, Text: "Hello"})
//
//	r := libassmod.NewRenderer(libassmod.WithEventRenderer(raster.New(track)))
//	defer r.Close()
//
//	imgs, change := r.RenderFrame(track, 500)
//	defer libassmod.FreeRGBAList(imgs)
//
// # Frame Lifecycle
//
// RenderFrame runs these steps:
//   - start the frame (FrameStarter); failure returns ChangeUnknown
//   - render every event with Start <= now < Start+Duration
//   - sort by layer and resolve collisions once per layer run
//   - move all images into the frame and compare it with the previous one
//   - convert coverage to RGBA if no event produced RGBA
//   - prune events that ended more than Track.PruneDelay ago
//
// # Colors
//
// Colors are packed 0xRRGGBBAA. The low byte is the alpha complement
// (0 opaque, 255 transparent), matching subtitle script conventions.
//
// # Thread Safety
//
// A Renderer and the Track it renders must be used from one goroutine at a
// time. SetLogger and package gradient are safe for concurrent use.
package libassmod
