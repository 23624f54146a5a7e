// Command subdemo renders one frame of a small built-in subtitle track to a
// PNG file.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/amanosatosi/libassmod"
	"github.com/amanosatosi/libassmod/gradient"
	"github.com/amanosatosi/libassmod/raster"
)

func main() {
	var (
		width   = flag.Int("width", 640, "output width")
		height  = flag.Int("height", 360, "output height")
		at      = flag.Int64("at", 1500, "frame timestamp in milliseconds")
		output  = flag.String("output", "frame.png", "output file")
		verbose = flag.Bool("v", false, "log frame diagnostics")
	)
	flag.Parse()

	if *verbose {
		libassmod.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	track := demoTrack()

	r := libassmod.NewRenderer(libassmod.WithWorkers(4))
	defer r.Close()
	er := raster.New(track, raster.WithConverter(r.Converter()))
	defer er.Close()
	r.SetEventRenderer(er)

	imgs, change := r.RenderFrame(track, *at)
	defer libassmod.FreeRGBAList(imgs)
	if change == libassmod.ChangeUnknown {
		log.Fatalf("Failed to render frame at %dms", *at)
	}

	dst := image.NewRGBA(image.Rect(0, 0, *width, *height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{R: 0x20, G: 0x30, B: 0x40, A: 0xFF}), image.Point{}, draw.Src)
	if *width == track.PlayResX && *height == track.PlayResY {
		libassmod.Flatten(dst, imgs)
	} else {
		libassmod.FlattenScaled(dst, imgs, track.PlayResX, track.PlayResY)
	}

	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := r.Stats()
	log.Printf("Frame at %dms saved to %s (%d events, %d images, %s)\n",
		*at, *output, st.Active, st.RGBA, change)
}

// demoTrack builds a track with stacked dialogue, a boxed sign and a
// gradient title.
func demoTrack() *libassmod.Track {
	track := libassmod.NewTrack(640, 360)
	track.PruneDelay = 10000
	track.Styles = []libassmod.Style{
		{
			Name:     "Default",
			Colors:   [gradient.Layers]uint32{0xFFFFFF00, 0x0000FF00, 0x00000000, 0x00000080},
			FontSize: 28,
		},
		{
			Name:     "Sign",
			Colors:   [gradient.Layers]uint32{0xFFF0C000, 0x0000FF00, 0x10101040, 0x00000060},
			FontSize: 22,
			Border:   6,
			Shadow:   3,
		},
	}

	track.AddEvent(libassmod.Event{Start: 0, Duration: 3000, Text: "Where are we going?", X: 180, Y: 280})
	track.AddEvent(libassmod.Event{Start: 1000, Duration: 3000, Text: "Somewhere new.", X: 200, Y: 280})
	track.AddEvent(libassmod.Event{
		Start: 500, Duration: 5000, Layer: 1, Style: 1,
		Text: "NORTH STATION", X: 40, Y: 40, Positioned: true,
	})

	var g gradient.State
	g.Reset(track.Styles[0].Colors[:])
	g.ApplyColor(gradient.LayerFill, []uint32{0xFF404000, 0xFFC04000, 0x40A0FF00, 0xC040FF00}, 1)
	g.ApplyAlpha(gradient.LayerFill, []uint8{0x00, 0x00, 0x60, 0x60}, 1)
	track.AddEvent(libassmod.Event{
		Start: 0, Duration: 6000, Layer: 2,
		Text: "Chapter One", X: 240, Y: 150, Positioned: true, Gradient: &g,
	})

	return track
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
