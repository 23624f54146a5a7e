package libassmod

import (
	"github.com/amanosatosi/libassmod/gradient"
	"github.com/amanosatosi/libassmod/internal/blend"
	"github.com/amanosatosi/libassmod/internal/mem"
	"github.com/amanosatosi/libassmod/internal/parallel"
)

// parallelThreshold is the minimum number of images converted on the
// worker pool. Smaller lists convert serially.
const parallelThreshold = 4

// Converter turns coverage images into premultiplied RGBA images.
//
// A Converter without workers is safe for concurrent use. With workers,
// Convert may be called concurrently as well; Close stops the workers.
type Converter struct {
	alloc Allocator
	align int
	pool  *parallel.WorkerPool
}

// NewConverter creates a converter. It honors WithAllocator, WithAlignOrder
// and WithWorkers; other options are ignored.
func NewConverter(opts ...Option) *Converter {
	o := buildOptions(opts)
	return newConverter(&o)
}

func newConverter(o *options) *Converter {
	c := &Converter{
		alloc: o.alloc,
		align: o.alignment(),
	}
	if o.workers > 1 {
		c.pool = parallel.NewWorkerPool(o.workers)
	}
	return c
}

// Close stops the converter's workers. Convert keeps working serially
// afterwards.
func (c *Converter) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Alignment returns the byte alignment of converted rows and buffers.
func (c *Converter) Alignment() int {
	return c.align
}

// ConvertImages converts list with the shared allocator. alignment is
// rounded up to a power of two; values below 1 mean 1.
func ConvertImages(list []*CoverageImage, alignment int) []*RGBAImage {
	c := &Converter{alloc: mem.Default(), align: powerOfTwo(alignment)}
	return c.Convert(list)
}

// Convert converts every usable image of list, in order.
//
// Images with zero width or height, a missing bitmap, or a bitmap too small
// for its stride are skipped. An image whose buffer cannot be allocated is
// skipped and logged; the rest of the list still converts.
func (c *Converter) Convert(list []*CoverageImage) []*RGBAImage {
	if len(list) == 0 {
		return nil
	}

	out := make([]*RGBAImage, len(list))
	if c.pool != nil && c.pool.IsRunning() && len(list) >= parallelThreshold {
		c.pool.ForEach(len(list), func(i int) {
			out[i] = c.convertOne(list[i], nil, gradient.Rect{})
		})
	} else {
		for i, img := range list {
			out[i] = c.convertOne(img, nil, gradient.Rect{})
		}
	}
	return compact(out)
}

// ConvertGradient converts img with per-pixel colors taken from val.
//
// When rect is valid, pixel centers are mapped through rect, so images of
// one event share a single field. Otherwise the field spans img itself, with
// its corners on the image's corner pixels. RGB comes from the color field
// when ColorEnabled is set and alpha from the alpha field when AlphaEnabled
// is set; the rest comes from img.Color. It returns nil for images Convert
// would skip.
func (c *Converter) ConvertGradient(img *CoverageImage, val *gradient.Values, rect gradient.Rect) *RGBAImage {
	return c.convertOne(img, val, rect)
}

func (c *Converter) convertOne(img *CoverageImage, val *gradient.Values, rect gradient.Rect) *RGBAImage {
	if !img.valid() {
		return nil
	}

	stride := mem.AlignUp(img.W*4, c.align)
	buf, err := c.alloc.Alloc(stride*img.H, c.align)
	if err != nil {
		Logger().Warn("libassmod: skipping image, allocation failed",
			"w", img.W, "h", img.H, "err", err)
		return nil
	}

	if val == nil || (!val.ColorEnabled && !val.AlphaEnabled) {
		premultiplyFlat(buf, stride, img)
	} else {
		premultiplyGradient(buf, stride, img, val, rect)
	}

	return &RGBAImage{
		W:      img.W,
		H:      img.H,
		Stride: stride,
		Pix:    buf,
		DstX:   img.DstX,
		DstY:   img.DstY,
		Type:   img.Type,
		alloc:  c.alloc,
	}
}

// premultiplyFlat fills dst from a single color. Every coverage value maps
// to the same output pixel, so a 256-entry table is built once per image.
func premultiplyFlat(dst []byte, stride int, img *CoverageImage) {
	var lut [256][4]byte
	r, g, b := gradient.R(img.Color), gradient.G(img.Color), gradient.B(img.Color)
	base := blend.Inv255(gradient.A(img.Color))
	for cov := range 256 {
		a := blend.MulDiv255(uint8(cov), base)
		lut[cov] = [4]byte{
			blend.MulDiv255(r, a),
			blend.MulDiv255(g, a),
			blend.MulDiv255(b, a),
			a,
		}
	}

	for y := range img.H {
		src := img.Bitmap[y*img.Stride : y*img.Stride+img.W]
		row := dst[y*stride : y*stride+img.W*4]
		for x, cov := range src {
			copy(row[x*4:x*4+4], lut[cov][:])
		}
	}
}

// premultiplyGradient fills dst with colors sampled from val.
func premultiplyGradient(dst []byte, stride int, img *CoverageImage, val *gradient.Values, rect gradient.Rect) {
	var field []uint32
	if !rect.Valid {
		field = gradient.Field(val, img.W, img.H)
	}

	for y := range img.H {
		src := img.Bitmap[y*img.Stride : y*img.Stride+img.W]
		row := dst[y*stride : y*stride+img.W*4]
		for x, cov := range src {
			var sample uint32
			if field != nil {
				sample = field[y*img.W+x]
			} else {
				u, v := rect.UV(float64(img.DstX+x)+0.5, float64(img.DstY+y)+0.5)
				sample = gradient.SamplePixel(val, u, v)
			}

			col := img.Color
			if val.ColorEnabled {
				col = gradient.WithAlpha(sample, gradient.A(col))
			}
			if val.AlphaEnabled {
				col = gradient.WithAlpha(col, gradient.A(sample))
			}

			base := blend.Inv255(gradient.A(col))
			r, a := blend.Premultiply(gradient.R(col), cov, base)
			g, _ := blend.Premultiply(gradient.G(col), cov, base)
			b, _ := blend.Premultiply(gradient.B(col), cov, base)
			p := row[x*4 : x*4+4]
			p[0], p[1], p[2], p[3] = r, g, b, a
		}
	}
}

// compact removes nil entries in place, keeping order.
func compact(list []*RGBAImage) []*RGBAImage {
	n := 0
	for _, img := range list {
		if img != nil {
			list[n] = img
			n++
		}
	}
	clear(list[n:])
	if n == 0 {
		return nil
	}
	return list[:n]
}

// powerOfTwo rounds n up to a power of two, capped at 1<<maxAlignOrder.
func powerOfTwo(n int) int {
	p := 1
	for p < n && p < 1<<maxAlignOrder {
		p <<= 1
	}
	return p
}
